package engine

import "slices"

func applyBuild(g *Game, a Build) (ActionOutput, error) {
	return g.PerformBuild(a.Method, nil)
}

// PerformBuild builds a district for the active player. When from is set the
// card comes out of that player's hand instead: the Wizard's build, which may
// duplicate districts and uses neither the gather step nor the build limit.
func (g *Game) PerformBuild(m BuildMethod, from *Player) (ActionOutput, error) {
	role, err := g.ActiveRole()
	if err != nil {
		return ActionOutput{}, err
	}
	builder, err := g.ActivePlayer()
	if err != nil {
		return ActionOutput{}, err
	}
	wizard := from != nil
	if !wizard {
		from = builder
	}

	if role.Role == RoleNavigator {
		return ActionOutput{}, Illegal("The navigator is not allowed to build.")
	}

	var district DistrictName
	switch m.Kind {
	case BuildRegular, BuildFramework:
		district = m.District
	case BuildCardinal:
		if wizard {
			return ActionOutput{}, Illegal("The Wizard cannot build with the Cardinal's method.")
		}
		district = m.District
	case BuildThievesDen:
		district = DistrictThievesDen
	case BuildNecropolis:
		district = DistrictNecropolis
	default:
		return ActionOutput{}, Illegal("unknown build method %s", m.Kind)
	}

	if !from.HandHas(district) {
		return ActionOutput{}, Illegal("Card not in hand")
	}
	if !wizard && !g.HasGatheredResources() {
		return ActionOutput{}, Illegal("Must gather resources before building")
	}

	free := district == DistrictStables || (district.Suit() == ColorTrade && role.Role == RoleTrader)
	if !wizard && !free && g.RemainingBuilds <= 0 {
		return ActionOutput{}, Illegal("With your role, you cannot build more than %d time(s), this turn.", role.Role.BuildLimit())
	}
	if builder.CityHas(district) && !builder.CityHas(DistrictQuarry) && role.Role != RoleWizard {
		return ActionOutput{}, Illegal("cannot build duplicate")
	}
	if district == DistrictSecretVault {
		return ActionOutput{}, Illegal("The Secret Vault can never be built.")
	}
	if district == DistrictMonument && len(builder.City) >= 5 {
		return ActionOutput{}, Illegal("You can only build the Monument, if you have less than 5 districts in your city")
	}

	cost := district.Cost()
	if district.IsUnique() && builder.CityHas(DistrictFactory) {
		cost--
	}

	// the builder's hand once the built card and any discards are gone
	hand := slices.Clone(builder.Hand)
	if !wizard {
		i := slices.Index(hand, district)
		hand = slices.Delete(hand, i, i+1)
	}
	for _, d := range m.Discard {
		i := slices.Index(hand, d)
		if i < 0 {
			return ActionOutput{}, Illegal("Can't discard cards not in your hand")
		}
		hand = slices.Delete(hand, i, i+1)
	}

	spent := cost
	var (
		donee     *Player
		sacrifice = -1
	)
	switch m.Kind {
	case BuildRegular:
		if len(m.Discard) > 0 {
			return ActionOutput{}, Illegal("A regular build cannot discard cards")
		}
		if cost > builder.Gold {
			return ActionOutput{}, Illegal("Not enough gold")
		}

	case BuildCardinal:
		if role.Role != RoleCardinal {
			return ActionOutput{}, Illegal("You are not the cardinal")
		}
		n := len(m.Discard)
		if builder.Gold+n < cost {
			return ActionOutput{}, Illegal("Not enough gold or discarded")
		}
		if builder.Gold+n > cost {
			return ActionOutput{}, Illegal("Must spend own gold first, before taking from others")
		}
		if n > 0 {
			donee, err = g.PlayerByName(m.Player)
			if err != nil {
				return ActionOutput{}, err
			}
			if donee == builder {
				return ActionOutput{}, Illegal("Cannot take gold from yourself")
			}
			if donee.Gold < n {
				return ActionOutput{}, Illegal("Cannot give more cards than the target has gold")
			}
		}
		spent = cost - n

	case BuildThievesDen:
		n := len(m.Discard)
		if n > cost {
			return ActionOutput{}, Illegal("Cannot discard more cards than the cost")
		}
		if builder.Gold+n < cost {
			return ActionOutput{}, Illegal("Not enough gold or cards discarded")
		}
		spent = cost - n

	case BuildFramework:
		sacrifice = slices.IndexFunc(builder.City, func(d CityDistrict) bool { return d.Name == DistrictFramework })
		if sacrifice < 0 {
			return ActionOutput{}, Illegal("You don't own a framework!")
		}
		spent = 0

	case BuildNecropolis:
		sacrifice = builder.CityIndex(m.Sacrifice.CityDistrict())
		if sacrifice < 0 {
			return ActionOutput{}, Illegal("Cannot sacrifice a district you don't own!")
		}
		spent = 0
	}

	// validated; apply
	builder.Hand = hand
	if wizard {
		from.RemoveFromHand(district)
	}
	builder.Gold -= spent

	switch m.Kind {
	case BuildCardinal:
		if donee != nil {
			donee.Gold -= len(m.Discard)
			donee.Hand = append(donee.Hand, m.Discard...)
		}
	case BuildThievesDen:
		for _, d := range m.Discard {
			g.Deck.DiscardToBottom(d)
		}
	case BuildFramework, BuildNecropolis:
		gone := builder.City[sacrifice]
		builder.City = slices.Delete(builder.City, sacrifice, sacrifice+1)
		g.DiscardDistrict(gone.Name)
	}

	if !wizard && !free {
		g.RemainingBuilds--
	}

	if role.Role != RoleTaxCollector && g.Characters.HasTaxCollector() && builder.Gold > 0 {
		builder.Gold--
		g.TaxCollector++
	}

	who := builder.Name
	if wizard {
		who = "The Wizard"
	}

	// the magistrate can only confiscate the first build of a turn
	if signed, ok := role.Warrant(); ok && !g.HasBuilt() {
		if magistrate, err := g.RoleHolder(RoleMagistrate); err == nil {
			return Output("%s begins to build a %s; waiting on the Magistrate's response.", who, district).
				WithFollowup(FollowupWarrant{
					Signed:     signed,
					Magistrate: magistrate.Index,
					Gold:       spent,
					District:   district,
				}), nil
		}
	}

	g.CompleteBuild(builder, spent, district)
	return Output("%s builds a %s.", who, district), nil
}
