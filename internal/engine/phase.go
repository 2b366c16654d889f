package engine

// GamePhase names the variant of the current Turn.
type GamePhase int

const (
	PhaseDraft GamePhase = iota + 1
	PhaseCall
	PhaseGameOver
)

var phaseNames = map[GamePhase]string{
	PhaseDraft:    "Draft",
	PhaseCall:     "Call",
	PhaseGameOver: "GameOver",
}

func (p GamePhase) String() string {
	if s, ok := phaseNames[p]; ok {
		return s
	}
	return "Unknown"
}

// Turn is the phase state machine: one of *Draft, *Call or GameOver.
type Turn interface {
	Phase() GamePhase
}

// GameOver is the terminal turn.
type GameOver struct{}

func (GameOver) Phase() GamePhase { return PhaseGameOver }

// Call walks the roster in rank order. EndOfRound marks the final step where
// a killed Emperor's heir hands off the crown.
type Call struct {
	Index      int  `json:"index"`
	EndOfRound bool `json:"end_of_round"`
}

func (*Call) Phase() GamePhase { return PhaseCall }
