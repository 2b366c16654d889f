package abilities

import "citadels-engine/internal/engine"

// Bishop (rank 5): gold from religious districts. Its protection of the
// occupant's city is checked by the destroying abilities.
func goldFromReligion(g *engine.Game, _ engine.GoldFromReligion) (engine.ActionOutput, error) {
	return g.GainGoldForSuit(engine.ColorReligious)
}

// Cardinal (rank 5): cards from religious districts. Its build method lives
// with the other builds.
func cardsFromReligion(g *engine.Game, _ engine.CardsFromReligion) (engine.ActionOutput, error) {
	return g.GainCardsForSuit(engine.ColorReligious)
}

// Abbot (rank 5): splits its religious income between gold and cards.
func resourcesFromReligion(g *engine.Game, a engine.ResourcesFromReligion) (engine.ActionOutput, error) {
	p, err := g.ActivePlayer()
	if err != nil {
		return engine.ActionOutput{}, err
	}
	if a.Gold < 0 || a.Cards < 0 {
		return engine.ActionOutput{}, engine.Illegal("Resource counts cannot be negative")
	}
	count := p.CountSuitForResourceGain(engine.ColorReligious)
	switch total := a.Gold + a.Cards; {
	case total < count:
		return engine.ActionOutput{}, engine.Illegal("Too few resources, you should select %d", count)
	case total > count:
		return engine.ActionOutput{}, engine.Illegal("Too many resources, you should select %d", count)
	}

	p.Gold += a.Gold
	drawn := g.DrawInto(p, a.Cards)
	return engine.Output("The Abbot (%s) gained %d gold and %d cards from their Religious districts", p.Name, a.Gold, drawn), nil
}

// takeFromRich takes 1 gold from one of the richest players, who must be
// strictly richer than the Abbot.
func takeFromRich(g *engine.Game, a engine.TakeFromRich) (engine.ActionOutput, error) {
	p, err := g.ActivePlayer()
	if err != nil {
		return engine.ActionOutput{}, err
	}
	if a.Player == p.Name {
		return engine.ActionOutput{}, engine.Illegal("Cannot take from yourself")
	}
	target, err := g.PlayerByName(a.Player)
	if err != nil {
		return engine.ActionOutput{}, err
	}

	richest := 0
	for _, other := range g.Players {
		richest = max(richest, other.Gold)
	}
	if target.Gold <= p.Gold || target.Gold < richest {
		return engine.ActionOutput{}, engine.Illegal("Not among the richest")
	}

	target.Gold--
	p.Gold++
	return engine.Output("The Abbot (%s) takes 1 gold from the richest: %s", p.Name, target.Name), nil
}
