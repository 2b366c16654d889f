package abilities

import "citadels-engine/internal/engine"

// Assassin (rank 1): names a role to kill. That role skips its turn.
func assassinate(g *engine.Game, a engine.Assassinate) (engine.ActionOutput, error) {
	if a.Role == engine.RoleAssassin {
		return engine.ActionOutput{}, engine.Illegal("Cannot kill self.")
	}
	target, err := rosterRole(g, a.Role)
	if err != nil {
		return engine.ActionOutput{}, err
	}
	p, err := g.ActivePlayer()
	if err != nil {
		return engine.ActionOutput{}, err
	}
	mark(target, engine.Marker{Kind: engine.MarkerKilled})
	return engine.Output("The Assassin (%s) kills the %s; Their turn will be skipped.", p.Name, a.Role), nil
}

// Witch (rank 1): after gathering, bewitches a role and ends the turn. The
// Witch plays the bewitched role's turn once its occupant has gathered.
func bewitch(g *engine.Game, a engine.Bewitch) (engine.ActionOutput, error) {
	if a.Role == engine.RoleWitch {
		return engine.ActionOutput{}, engine.Illegal("Cannot target self")
	}
	target, err := rosterRole(g, a.Role)
	if err != nil {
		return engine.ActionOutput{}, err
	}
	mark(target, engine.Marker{Kind: engine.MarkerBewitched})
	return engine.Output("The Witch bewitches the %s.", a.Role).WithEndTurn(), nil
}

// Magistrate (rank 1): hands out one signed and two unsigned warrants.
func sendWarrants(g *engine.Game, a engine.SendWarrants) (engine.ActionOutput, error) {
	roles := []engine.CharacterRole{a.Signed, a.Unsigned[0], a.Unsigned[1]}
	seen := make(map[engine.CharacterRole]bool, len(roles))
	slots := make([]*engine.GameRole, len(roles))
	for i, r := range roles {
		if seen[r] {
			return engine.ActionOutput{}, engine.Illegal("Cannot assign more than 1 warrant to a role.")
		}
		seen[r] = true
		if r == engine.RoleMagistrate {
			return engine.ActionOutput{}, engine.Illegal("Cannot assign warrant to self.")
		}
		slot, err := rosterRole(g, r)
		if err != nil {
			return engine.ActionOutput{}, err
		}
		slots[i] = slot
	}
	p, err := g.ActivePlayer()
	if err != nil {
		return engine.ActionOutput{}, err
	}

	for i, slot := range slots {
		mark(slot, engine.Marker{Kind: engine.MarkerWarrant, Signed: i == 0})
	}
	engine.SortRoles(roles)
	return engine.Output("The Magistrate (%s) sends warrants to the %s, the %s, and the %s.",
		p.Name, roles[0], roles[1], roles[2]), nil
}
