// Package abilities holds the role abilities. Each rank's file groups the
// three roles that can fill that rank.
package abilities

import "citadels-engine/internal/engine"

// NewRegistry returns the core handlers plus every role ability.
func NewRegistry() *engine.AbilityRegistry {
	r := engine.NewAbilityRegistry()
	Register(r)
	return r
}

// Register adds the role abilities to r.
func Register(r *engine.AbilityRegistry) {
	// rank 1
	r.Register(engine.Handle(assassinate))
	r.Register(engine.Handle(bewitch))
	r.Register(engine.Handle(sendWarrants))
	// rank 2
	r.Register(engine.Handle(steal))
	r.Register(engine.Handle(spy))
	r.Register(engine.Handle(spyAcknowledge))
	r.Register(engine.Handle(blackmail))
	// rank 3
	r.Register(engine.Handle(magic))
	r.Register(engine.Handle(wizardPeek))
	r.Register(engine.Handle(wizardPick))
	r.Register(engine.Handle(seerTake))
	r.Register(engine.Handle(seerDistribute))
	// rank 4
	r.Register(engine.Handle(takeCrown))
	r.Register(engine.Handle(emperorGiveCrown))
	r.Register(engine.Handle(emperorHeirGiveCrown))
	r.Register(engine.Handle(goldFromNobility))
	r.Register(engine.Handle(cardsFromNobility))
	// rank 5
	r.Register(engine.Handle(goldFromReligion))
	r.Register(engine.Handle(cardsFromReligion))
	r.Register(engine.Handle(resourcesFromReligion))
	r.Register(engine.Handle(takeFromRich))
	// rank 6
	r.Register(engine.Handle(goldFromTrade))
	r.Register(engine.Handle(merchantGainOneGold))
	// rank 7
	r.Register(engine.Handle(architectGainCards))
	r.Register(engine.Handle(navigatorGain))
	r.Register(engine.Handle(scholarReveal))
	r.Register(engine.Handle(scholarPick))
	// rank 8
	r.Register(engine.Handle(goldFromMilitary))
	r.Register(engine.Handle(warlordDestroy))
	r.Register(engine.Handle(diplomatTrade))
	r.Register(engine.Handle(marshalSeize))
	// rank 9
	r.Register(engine.Handle(queenGainGold))
	r.Register(engine.Handle(beautify))
	r.Register(engine.Handle(collectTaxes))
}

func rosterRole(g *engine.Game, r engine.CharacterRole) (*engine.GameRole, error) {
	slot := g.Characters.Get(r)
	if slot == nil {
		return nil, engine.Illegal("Role %s is not in this game", r)
	}
	return slot, nil
}

func mark(slot *engine.GameRole, m engine.Marker) {
	slot.Markers = append(slot.Markers, m)
}

// targetDistrict resolves a district in another player's city, refusing the
// Keep, Bishop-protected cities and completed cities.
func targetDistrict(g *engine.Game, t engine.CityDistrictTarget) (*engine.Player, int, error) {
	if t.District == engine.DistrictKeep {
		return nil, 0, engine.Illegal("Cannot target the Keep")
	}
	p, err := g.PlayerByName(t.Player)
	if err != nil {
		return nil, 0, err
	}
	if g.Characters.HasBishopProtection(p.Index) {
		return nil, 0, engine.Illegal("Cannot target the Bishop")
	}
	if p.CitySize() >= g.CompleteCitySize() {
		return nil, 0, engine.Illegal("Cannot target a completed city")
	}
	i := p.CityIndex(t.CityDistrict())
	if i < 0 {
		return nil, 0, engine.Illegal("%s does not exist in the targeted player's city", t.District)
	}
	return p, i, nil
}
