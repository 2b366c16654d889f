package engine

import (
	"cmp"
	"slices"
)

// SortRoles orders roles by rank, keeping ties in place.
func SortRoles(rs []CharacterRole) {
	slices.SortStableFunc(rs, func(a, b CharacterRole) int { return cmp.Compare(a.Rank(), b.Rank()) })
}

func applyDraftPick(g *Game, a DraftPick) (ActionOutput, error) {
	d, err := g.Draft()
	if err != nil {
		return ActionOutput{}, err
	}
	slot := g.Characters.Get(a.Role)
	if slot == nil || !slices.Contains(d.Remaining, a.Role) {
		return ActionOutput{}, Illegal("selected role is not available")
	}

	d.Take(a.Role)
	slot.Player = d.Player
	player := g.Players[d.Player]
	player.Roles = append(player.Roles, a.Role)
	SortRoles(player.Roles)

	out := Output("%s drafts a role.", player.Name)
	// In the two player game the second and third picks are followed by a
	// discard. The opening pick and the last pick between two roles are not.
	if len(g.Players) == 2 && (len(d.Remaining) == 5 || len(d.Remaining) == 3) {
		return out, nil
	}
	return out.WithEndTurn(), nil
}

func applyDraftDiscard(g *Game, a DraftDiscard) (ActionOutput, error) {
	d, err := g.Draft()
	if err != nil {
		return ActionOutput{}, err
	}
	if !d.Take(a.Role) {
		return ActionOutput{}, Illegal("selected role is not available")
	}
	return Output("%s discards a role face down.", g.Players[d.Player].Name).WithEndTurn(), nil
}

func applyTheaterPass(g *Game, _ TheaterPass) (ActionOutput, error) {
	p, err := g.ActivePlayer()
	if err != nil {
		return ActionOutput{}, err
	}
	return Output("%s decided not to use the Theater.", p.Name).WithEndTurn(), nil
}

// applyTheater swaps one of the active player's roles for a random role of
// another player.
func applyTheater(g *Game, a Theater) (ActionOutput, error) {
	active, err := g.ActivePlayer()
	if err != nil {
		return ActionOutput{}, err
	}
	if active.Name == a.Player {
		return ActionOutput{}, Illegal("Cannot swap with yourself.")
	}
	if !active.HasRole(a.Role) {
		return ActionOutput{}, Illegal("You cannot give away a role you don't have.")
	}
	target, err := g.PlayerByName(a.Player)
	if err != nil {
		return ActionOutput{}, err
	}
	if len(target.Roles) == 0 {
		return ActionOutput{}, Illegal("%s has no roles to swap.", target.Name)
	}

	taken := swapRemove(&target.Roles, g.rng.IntN(len(target.Roles)))
	target.Roles = append(target.Roles, a.Role)
	SortRoles(target.Roles)

	i := slices.Index(active.Roles, a.Role)
	active.Roles = slices.Delete(active.Roles, i, i+1)
	active.Roles = append(active.Roles, taken)
	SortRoles(active.Roles)

	for _, p := range []*Player{target, active} {
		for _, r := range p.Roles {
			if slot := g.Characters.Get(r); slot != nil {
				slot.Player = p.Index
			}
		}
	}
	return Output("Theater: %s swaps roles with %s.", active.Name, target.Name).WithEndTurn(), nil
}

func applyEndTurn(g *Game, _ EndTurn) (ActionOutput, error) {
	p, err := g.ActivePlayer()
	if err != nil {
		return ActionOutput{}, err
	}
	return Output("%s ends their turn.", p.Name).WithEndTurn(), nil
}

func applyGatherGold(g *Game, _ GatherResourceGold) (ActionOutput, error) {
	p, err := g.ActivePlayer()
	if err != nil {
		return ActionOutput{}, err
	}
	var out ActionOutput
	if p.CityHas(DistrictGoldMine) {
		p.Gold += 3
		out = Output("%s gathers 3 gold. (1 extra from their Gold Mine).", p.Name)
	} else {
		p.Gold += 2
		out = Output("%s gathers 2 gold.", p.Name)
	}
	return out.WithFollowup(g.AfterGatherResources()), nil
}

func applyGatherCards(g *Game, _ GatherResourceCards) (ActionOutput, error) {
	p, err := g.ActivePlayer()
	if err != nil {
		return ActionOutput{}, err
	}
	n := 2
	if p.CityHas(DistrictObservatory) {
		n++
	}
	drawn := g.Deck.DrawN(n)

	if p.CityHas(DistrictLibrary) {
		p.Hand = append(p.Hand, drawn...)
		return Output("%s gathers cards. With the aid of their library they keep all %d cards.", p.Name, len(drawn)).
			WithFollowup(g.AfterGatherResources()), nil
	}

	out := Output("%s reveals %d cards from the top of the deck.", p.Name, len(drawn))
	if len(drawn) == 0 {
		return out.WithFollowup(g.AfterGatherResources()), nil
	}
	return out.WithFollowup(FollowupGatherCardsPick{Revealed: drawn}), nil
}

func applyGatherCardsPick(g *Game, a GatherCardsPick) (ActionOutput, error) {
	f, ok := g.Followup.(FollowupGatherCardsPick)
	if !ok {
		return ActionOutput{}, Illegal("action is not allowed")
	}
	i := slices.Index(f.Revealed, a.District)
	if i < 0 {
		return ActionOutput{}, Illegal("invalid choice")
	}
	p, err := g.ActivePlayer()
	if err != nil {
		return ActionOutput{}, err
	}

	// computed while the pick is still pending, so the gather counts as unfinished
	followup := g.AfterGatherResources()

	rest := slices.Delete(slices.Clone(f.Revealed), i, i+1)
	ShuffleSlice(g.rng, rest)
	for _, c := range rest {
		g.Deck.DiscardToBottom(c)
	}
	p.Hand = append(p.Hand, a.District)

	return Output("They pick a card.").WithFollowup(followup), nil
}

func applyRevealWarrant(g *Game, _ RevealWarrant) (ActionOutput, error) {
	f, ok := g.Followup.(FollowupWarrant)
	if !ok {
		return ActionOutput{}, Illegal("cannot reveal warrant")
	}
	if !f.Signed {
		return ActionOutput{}, Illegal("Cannot reveal unsigned warrant.")
	}
	magistrate := g.Player(f.Magistrate)
	if magistrate == nil {
		return ActionOutput{}, Illegal("no magistrate")
	}
	if magistrate.CityHas(f.District) {
		return ActionOutput{}, Illegal("Cannot confiscate a district you already have.")
	}
	builder, err := g.ActivePlayer()
	if err != nil {
		return ActionOutput{}, err
	}

	builder.Gold += f.Gold
	magistrate.City = append(magistrate.City, CityDistrict{Name: f.District})
	g.CheckCityForCompletion(magistrate)
	g.Characters.ClearMarkers(MarkerWarrant)

	return Output("The Magistrate (%s) reveals a signed warrant and confiscates the %s; %d gold is refunded.",
		magistrate.Name, f.District, f.Gold), nil
}

func applyPayBribe(g *Game, _ PayBribe) (ActionOutput, error) {
	blackmailer, err := g.RoleHolder(RoleBlackmailer)
	if err != nil {
		return ActionOutput{}, err
	}
	role, err := g.ActiveRole()
	if err != nil {
		return ActionOutput{}, err
	}
	p, err := g.ActivePlayer()
	if err != nil {
		return ActionOutput{}, err
	}
	half := p.Gold / 2
	p.Gold -= half
	blackmailer.Gold += half
	role.removeMarkers(MarkerBlackmail)
	return Output("They bribed the Blackmailer (%s) with %d gold.", blackmailer.Name, half), nil
}

func applyIgnoreBlackmail(g *Game, _ IgnoreBlackmail) (ActionOutput, error) {
	blackmailer, err := g.RoleHolder(RoleBlackmailer)
	if err != nil {
		return ActionOutput{}, err
	}
	return Output("They ignored the blackmail. Waiting on the Blackmailer's response.").
		WithFollowup(FollowupBlackmail{Blackmailer: blackmailer.Index}), nil
}

func applyRevealBlackmail(g *Game, _ RevealBlackmail) (ActionOutput, error) {
	f, ok := g.Followup.(FollowupBlackmail)
	if !ok {
		return ActionOutput{}, Illegal("Cannot reveal blackmail.")
	}
	role, err := g.ActiveRole()
	if err != nil {
		return ActionOutput{}, err
	}
	target, err := g.ActivePlayer()
	if err != nil {
		return ActionOutput{}, err
	}
	blackmailer := g.Players[f.Blackmailer]

	// once one threat is revealed, the other is known too
	flowered, _ := role.Blackmail()
	g.Characters.ClearMarkers(MarkerBlackmail)
	if !flowered {
		return Output("The Blackmailer (%s) reveals an empty threat. Nothing happens.", blackmailer.Name), nil
	}
	gold := target.Gold
	target.Gold = 0
	blackmailer.Gold += gold
	return Output("The Blackmailer (%s) reveals an active threat, and takes all %d of their gold.", blackmailer.Name, gold), nil
}

func applyPass(g *Game, _ Pass) (ActionOutput, error) {
	switch f := g.Followup.(type) {
	case FollowupWarrant:
		builder, err := g.ActivePlayer()
		if err != nil {
			return ActionOutput{}, err
		}
		g.CompleteBuild(builder, f.Gold, f.District)
		return Output("The Magistrate (%s) did not reveal the warrant.", g.Players[f.Magistrate].Name), nil
	case FollowupBlackmail:
		return Output("The Blackmailer (%s) did not reveal the blackmail.", g.Players[f.Blackmailer].Name), nil
	}
	return ActionOutput{}, Illegal("nothing to pass on")
}

func applySmithy(g *Game, _ Smithy) (ActionOutput, error) {
	p, err := g.ActivePlayer()
	if err != nil {
		return ActionOutput{}, err
	}
	if p.Gold < 2 {
		return ActionOutput{}, Illegal("Not enough gold.")
	}
	p.Gold -= 2
	g.DrawInto(p, 3)
	return Output("At the Smithy, %s forges 2 gold into 3 cards.", p.Name), nil
}

func applyLaboratory(g *Game, a Laboratory) (ActionOutput, error) {
	p, err := g.ActivePlayer()
	if err != nil {
		return ActionOutput{}, err
	}
	if !p.RemoveFromHand(a.District) {
		return ActionOutput{}, Illegal("district not in hand")
	}
	p.Gold += 2
	g.Deck.DiscardToBottom(a.District)
	return Output("At the Laboratory, %s transmutes 1 card into 2 gold.", p.Name), nil
}

func applyMuseum(g *Game, a Museum) (ActionOutput, error) {
	p, err := g.ActivePlayer()
	if err != nil {
		return ActionOutput{}, err
	}
	if !p.RemoveFromHand(a.District) {
		return ActionOutput{}, Illegal("district not in hand")
	}
	g.Museum = append(g.Museum, a.District)
	return Output("%s tucks a card face down under their Museum.", p.Name), nil
}

// applyArmory sacrifices the Armory to destroy any district outside a
// completed city.
func applyArmory(g *Game, a Armory) (ActionOutput, error) {
	switch a.Target.District {
	case DistrictKeep:
		return ActionOutput{}, Illegal("Cannot destroy the Keep.")
	case DistrictArmory:
		return ActionOutput{}, Illegal("The Armory cannot destroy itself.")
	}
	p, err := g.ActivePlayer()
	if err != nil {
		return ActionOutput{}, err
	}
	target, err := g.PlayerByName(a.Target.Player)
	if err != nil {
		return ActionOutput{}, err
	}
	if target.CitySize() >= g.CompleteCitySize() {
		return ActionOutput{}, Illegal("Cannot destroy from a completed city.")
	}
	ti := target.CityIndex(a.Target.CityDistrict())
	if ti < 0 {
		return ActionOutput{}, Illegal("%s does not exist in the targeted player's city", a.Target.District)
	}
	if !p.CityHas(DistrictArmory) {
		return ActionOutput{}, Illegal("You do not have the Armory.")
	}

	target.City = slices.Delete(target.City, ti, ti+1)
	ai := slices.IndexFunc(p.City, func(d CityDistrict) bool { return d.Name == DistrictArmory })
	p.City = slices.Delete(p.City, ai, ai+1)
	g.DiscardDistrict(DistrictArmory)
	g.DiscardDistrict(a.Target.District)

	return Output("%s sacrifices their Armory to destroy %s's %s.", p.Name, target.Name, a.Target.District), nil
}
