package engine

import "slices"

// Draft is the role-picking sub-phase that opens every round.
type Draft struct {
	PlayerCount    int             `json:"player_count"`
	Player         PlayerIndex     `json:"player"`
	Remaining      []CharacterRole `json:"remaining"`
	InitialDiscard CharacterRole   `json:"-"` // face down; RoleNone once revealed
	FaceupDiscard  []CharacterRole `json:"faceup_discard"`
	TheaterStep    bool            `json:"theater_step"`
}

func (*Draft) Phase() GamePhase { return PhaseDraft }

// BeginDraft removes the face-up and face-down discards from the round's
// roles and leaves the rest sorted by rank for picking.
func BeginDraft(playerCount int, player PlayerIndex, roles []CharacterRole, rng *Prng) *Draft {
	d := &Draft{
		PlayerCount: playerCount,
		Player:      player,
		Remaining:   slices.Clone(roles),
	}
	roleCount := len(d.Remaining)

	if playerCount >= 4 {
		for i := playerCount + 2; i < roleCount; i++ {
			var index int
			for {
				index = rng.IntN(len(d.Remaining))
				if d.Remaining[index].CanBeDiscardedFaceUp() {
					break
				}
			}
			d.FaceupDiscard = append(d.FaceupDiscard, swapRemove(&d.Remaining, index))
		}
	}

	d.InitialDiscard = swapRemove(&d.Remaining, rng.IntN(len(d.Remaining)))

	slices.SortStableFunc(d.Remaining, func(a, b CharacterRole) int { return int(a.Rank()) - int(b.Rank()) })
	return d
}

// Take removes a role from the pickable pool.
func (d *Draft) Take(role CharacterRole) bool {
	i := slices.Index(d.Remaining, role)
	if i < 0 {
		return false
	}
	d.Remaining = slices.Delete(d.Remaining, i, i+1)
	return true
}

func swapRemove[T any](s *[]T, i int) T {
	v := (*s)[i]
	last := len(*s) - 1
	(*s)[i] = (*s)[last]
	*s = (*s)[:last]
	return v
}
