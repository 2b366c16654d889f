package abilities

import "citadels-engine/internal/engine"

// Merchant (rank 6): gold from trade districts and one extra gold. The
// Alchemist refund and Trader free builds are handled on build.
func goldFromTrade(g *engine.Game, _ engine.GoldFromTrade) (engine.ActionOutput, error) {
	return g.GainGoldForSuit(engine.ColorTrade)
}

func merchantGainOneGold(g *engine.Game, _ engine.MerchantGainOneGold) (engine.ActionOutput, error) {
	p, err := g.ActivePlayer()
	if err != nil {
		return engine.ActionOutput{}, err
	}
	p.Gold++
	return engine.Output("The Merchant (%s) gains 1 extra gold.", p.Name), nil
}
