package abilities

import "citadels-engine/internal/engine"

// Queen (rank 9): 3 gold when seated next to a revealed rank 4 role.
func queenGainGold(g *engine.Game, _ engine.QueenGainGold) (engine.ActionOutput, error) {
	p, err := g.ActivePlayer()
	if err != nil {
		return engine.ActionOutput{}, err
	}
	n := len(g.Players)
	left := engine.PlayerIndex((int(p.Index) + n - 1) % n)
	right := engine.PlayerIndex((int(p.Index) + 1) % n)

	for _, slot := range g.Characters.Slots() {
		if slot.Revealed && slot.Role.Rank() == 4 && slot.Occupied() && (slot.Player == left || slot.Player == right) {
			p.Gold += 3
			return engine.Output("The Queen is seated next to the %s, and gains 3 gold.", slot.Role), nil
		}
	}
	return engine.Output("The Queen is not seated next to royalty."), nil
}

// Artist (rank 9): beautifies an own district for 1 gold, once per district.
func beautify(g *engine.Game, a engine.Beautify) (engine.ActionOutput, error) {
	p, err := g.ActivePlayer()
	if err != nil {
		return engine.ActionOutput{}, err
	}
	if p.Gold < 1 {
		return engine.ActionOutput{}, engine.Illegal("Not enough gold")
	}
	i := p.CityIndex(engine.CityDistrict{Name: a.District.Name})
	if i < 0 {
		return engine.ActionOutput{}, engine.Illegal("Invalid target. Is it already beautified?")
	}
	p.City[i].Beautified = true
	p.Gold--
	return engine.Output("The Artist (%s) beautifies their %s.", p.Name, a.District.Name), nil
}

// Tax Collector (rank 9): collects the gold paid in taxes on builds.
func collectTaxes(g *engine.Game, _ engine.CollectTaxes) (engine.ActionOutput, error) {
	p, err := g.ActivePlayer()
	if err != nil {
		return engine.ActionOutput{}, err
	}
	taxes := g.TaxCollector
	g.TaxCollector = 0
	p.Gold += taxes
	return engine.Output("The Tax Collector (%s) collects %d gold in taxes.", p.Name, taxes), nil
}
