package engine

// CallRole jumps the game to the given role's turn, as if the roster walk had
// just reached it.
func (g *Game) CallRole(r CharacterRole) {
	for i, slot := range g.Characters.Slots() {
		if slot.Role == r {
			g.Turn = &Call{Index: i}
			g.TurnActions = nil
			g.Followup = nil
			g.startTurn()
			return
		}
	}
}
