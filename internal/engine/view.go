package engine

// PublicViewData is the game state visible on the shared table screen.
type PublicViewData struct {
	Phase          string             `json:"phase"`
	Round          int                `json:"round"`
	Players        []PublicPlayerData `json:"players"`
	Roster         []PublicRoleData   `json:"roster"`
	ActivePlayer   string             `json:"active_player,omitempty"`
	Responding     string             `json:"responding_player,omitempty"`
	CurrentRole    string             `json:"current_role,omitempty"`
	DraftFaceUp    []CharacterRole    `json:"draft_face_up,omitempty"`
	DraftAvailable int                `json:"draft_available,omitempty"`
	Scores         []ScoreEntry       `json:"scores,omitempty"`
	DeckSize       int                `json:"deck_size"`
	MuseumSize     int                `json:"museum_size,omitempty"`
	TaxCollector   int                `json:"tax_collector,omitempty"`
	Logs           []string           `json:"logs"`
}

type PublicPlayerData struct {
	Name        string         `json:"name"`
	Gold        int            `json:"gold"`
	HandSize    int            `json:"hand_size"`
	City        []CityDistrict `json:"city"`
	HasCrown    bool           `json:"has_crown"`
	PublicScore int            `json:"public_score"`
	// Roles already called this round.
	RevealedRoles []CharacterRole `json:"revealed_roles,omitempty"`
}

// PublicRoleData is one roster slot. Markers show their kind only, so a
// signed warrant or a flowered threat stays hidden.
type PublicRoleData struct {
	Role     CharacterRole `json:"role"`
	Revealed bool          `json:"revealed"`
	Player   string        `json:"player,omitempty"`
	Markers  []string      `json:"markers,omitempty"`
	Logs     []string      `json:"logs,omitempty"`
}

func (g *Game) PublicView() PublicViewData {
	pv := PublicViewData{
		Phase:        g.Turn.Phase().String(),
		Round:        g.Round,
		DeckSize:     g.Deck.Size(),
		MuseumSize:   len(g.Museum),
		TaxCollector: g.TaxCollector,
		Logs:         g.Logs,
	}

	if p, err := g.ActivePlayer(); err == nil {
		pv.ActivePlayer = p.Name
	}
	if g.Followup != nil {
		if p, err := g.RespondingPlayer(); err == nil {
			pv.Responding = p.Name
		}
	}
	if role, err := g.ActiveRole(); err == nil {
		pv.CurrentRole = role.Role.String()
	}
	if d, err := g.Draft(); err == nil {
		pv.DraftFaceUp = d.FaceupDiscard
		pv.DraftAvailable = len(d.Remaining)
	}
	if g.Turn.Phase() == PhaseGameOver {
		pv.Scores = g.CalculateScores()
	}

	for _, slot := range g.Characters.Slots() {
		rd := PublicRoleData{Role: slot.Role, Revealed: slot.Revealed}
		if slot.Revealed && slot.Occupied() {
			rd.Player = g.Players[slot.Player].Name
			rd.Logs = slot.Logs
		}
		for _, m := range slot.Markers {
			rd.Markers = append(rd.Markers, m.Kind.String())
		}
		pv.Roster = append(pv.Roster, rd)
	}

	for _, p := range g.Players {
		ppd := PublicPlayerData{
			Name:        p.Name,
			Gold:        p.Gold,
			HandSize:    len(p.Hand),
			City:        p.City,
			HasCrown:    p.Index == g.Crowned,
			PublicScore: g.PublicScore(p),
		}
		for _, r := range p.Roles {
			if slot := g.Characters.Get(r); slot != nil && slot.Revealed {
				ppd.RevealedRoles = append(ppd.RevealedRoles, r)
			}
		}
		pv.Players = append(pv.Players, ppd)
	}

	return pv
}

// PlayerViewData is the game state visible to one player.
type PlayerViewData struct {
	PublicViewData
	Hand       []DistrictName  `json:"hand"`
	Roles      []CharacterRole `json:"roles"`
	IsMyTurn   bool            `json:"is_my_turn"`
	Allowed    []ActionTag     `json:"allowed"`
	TotalScore int             `json:"total_score"`

	DraftChoices []CharacterRole `json:"draft_choices,omitempty"`
	Followup     string          `json:"followup,omitempty"`
	Revealed     []DistrictName  `json:"revealed,omitempty"`
	PeekedHand   []DistrictName  `json:"peeked_hand,omitempty"`
	// Players the Seer owes a card to.
	SeerOwed    []string `json:"seer_owed,omitempty"`
	WarrantGold int      `json:"warrant_gold,omitempty"`
}

func (g *Game) ViewFor(playerID string) PlayerViewData {
	pv := PlayerViewData{
		PublicViewData: g.PublicView(),
	}

	p := g.PlayerByID(playerID)
	if p == nil {
		return pv
	}

	pv.Hand = p.Hand
	pv.Roles = p.Roles
	pv.TotalScore = g.TotalScore(p)
	pv.Allowed = g.AllowedFor(playerID)
	if active, err := g.ActivePlayer(); err == nil {
		pv.IsMyTurn = active.ID == playerID
	}

	if d, err := g.Draft(); err == nil && pv.IsMyTurn && !d.TheaterStep {
		pv.DraftChoices = d.Remaining
	}

	if g.Followup == nil {
		return pv
	}
	if responder, err := g.RespondingPlayer(); err != nil || responder.ID != playerID {
		return pv
	}
	pv.Followup = FollowupName(g.Followup)
	switch f := g.Followup.(type) {
	case FollowupGatherCardsPick:
		pv.Revealed = f.Revealed
	case FollowupScholarPick:
		pv.Revealed = f.Revealed
	case FollowupSpyAcknowledge:
		pv.Revealed = f.Revealed
	case FollowupWizardPick:
		if target := g.Player(f.Player); target != nil {
			pv.PeekedHand = target.Hand
		}
	case FollowupSeerDistribute:
		for _, i := range f.Players {
			pv.SeerOwed = append(pv.SeerOwed, g.Players[i].Name)
		}
	case FollowupWarrant:
		pv.WarrantGold = f.Gold
	}
	return pv
}

// FollowupName names a pending followup for clients.
func FollowupName(f Followup) string {
	switch f.(type) {
	case FollowupBewitch:
		return "Bewitch"
	case FollowupGatherCardsPick:
		return "GatherCardsPick"
	case FollowupScholarPick:
		return "ScholarPick"
	case FollowupWizardPick:
		return "WizardPick"
	case FollowupSeerDistribute:
		return "SeerDistribute"
	case FollowupSpyAcknowledge:
		return "SpyAcknowledge"
	case FollowupWarrant:
		return "Warrant"
	case FollowupBlackmail:
		return "Blackmail"
	case FollowupHandleBlackmail:
		return "HandleBlackmail"
	}
	return ""
}
