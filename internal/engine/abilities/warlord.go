package abilities

import (
	"fmt"
	"slices"

	"citadels-engine/internal/engine"
)

func goldFromMilitary(g *engine.Game, _ engine.GoldFromMilitary) (engine.ActionOutput, error) {
	return g.GainGoldForSuit(engine.ColorMilitary)
}

// Warlord (rank 8): destroys a district for one less than its cost.
func warlordDestroy(g *engine.Game, a engine.WarlordDestroy) (engine.ActionOutput, error) {
	p, err := g.ActivePlayer()
	if err != nil {
		return engine.ActionOutput{}, err
	}
	target, i, err := targetDistrict(g, a.Target)
	if err != nil {
		return engine.ActionOutput{}, err
	}
	cost := target.City[i].EffectiveCost() - 1
	if target.CityHas(engine.DistrictGreatWall) {
		cost++
	}
	if p.Gold < cost {
		return engine.ActionOutput{}, engine.Illegal("not enough gold to destroy")
	}

	target.City = slices.Delete(target.City, i, i+1)
	p.Gold -= cost
	g.DiscardDistrict(a.Target.District)
	return engine.Output("The Warlord (%s) destroys %s's %s.", p.Name, target.Name, a.Target.District), nil
}

// Marshal (rank 8): seizes a district costing 3 or less, paying its owner.
func marshalSeize(g *engine.Game, a engine.MarshalSeize) (engine.ActionOutput, error) {
	p, err := g.ActivePlayer()
	if err != nil {
		return engine.ActionOutput{}, err
	}
	if p.CityHas(a.Target.District) {
		return engine.ActionOutput{}, engine.Illegal("Cannot seize a copy of your own district")
	}
	target, i, err := targetDistrict(g, a.Target)
	if err != nil {
		return engine.ActionOutput{}, err
	}
	if target == p {
		return engine.ActionOutput{}, engine.Illegal("Cannot seize from yourself")
	}
	cost := target.City[i].EffectiveCost()
	if cost > 3 {
		return engine.ActionOutput{}, engine.Illegal("Cannot seize district because it costs more than 3")
	}
	if target.CityHas(engine.DistrictGreatWall) {
		cost++
	}
	if p.Gold < cost {
		return engine.ActionOutput{}, engine.Illegal("Not enough gold to seize")
	}

	seized := target.City[i]
	target.City = slices.Delete(target.City, i, i+1)
	target.Gold += cost
	p.Gold -= cost
	p.City = append(p.City, seized)
	g.CheckCityForCompletion(p)
	return engine.Output("The Marshal (%s) seizes %s's %s.", p.Name, target.Name, a.Target.District), nil
}

// Diplomat (rank 8): swaps one of its districts for another player's,
// paying the difference in cost.
func diplomatTrade(g *engine.Game, a engine.DiplomatTrade) (engine.ActionOutput, error) {
	p, err := g.ActivePlayer()
	if err != nil {
		return engine.ActionOutput{}, err
	}
	target, theirs, err := targetDistrict(g, a.Theirs)
	if err != nil {
		return engine.ActionOutput{}, err
	}
	if target == p {
		return engine.ActionOutput{}, engine.Illegal("Cannot trade with yourself")
	}
	mine := p.CityIndex(a.District)
	if mine < 0 {
		return engine.ActionOutput{}, engine.Illegal("%s does not exist in your city", a.District.Name)
	}

	cost := max(target.City[theirs].EffectiveCost()-p.City[mine].EffectiveCost(), 0)
	if target.CityHas(engine.DistrictGreatWall) {
		cost++
	}
	if cost > p.Gold {
		return engine.ActionOutput{}, engine.Illegal("Not enough gold")
	}
	if target.CityHas(a.District.Name) {
		return engine.ActionOutput{}, engine.Illegal("The targeted player already has a copy of that district")
	}
	if p.CityHas(a.Theirs.District) {
		return engine.ActionOutput{}, engine.Illegal("You already have a copy of that district")
	}

	target.Gold += cost
	p.Gold -= cost
	p.City[mine], target.City[theirs] = target.City[theirs], p.City[mine]

	suffix := ""
	if cost > 0 {
		suffix = fmt.Sprintf("; they paid %d gold for the difference", cost)
	}
	return engine.Output("The Diplomat (%s) traded their %s for %s's %s%s.",
		p.Name, a.District.Name, target.Name, a.Theirs.District, suffix), nil
}
