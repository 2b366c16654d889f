package abilities

import (
	"slices"

	"citadels-engine/internal/engine"
)

// Architect (rank 7): draws 2 extra cards and may build up to 3 districts.
func architectGainCards(g *engine.Game, _ engine.ArchitectGainCards) (engine.ActionOutput, error) {
	p, err := g.ActivePlayer()
	if err != nil {
		return engine.ActionOutput{}, err
	}
	g.DrawInto(p, 2)
	return engine.Output("The Architect (%s) gains 2 extra cards.", p.Name), nil
}

// Navigator (rank 7): 4 extra gold or 4 extra cards, and no building.
func navigatorGain(g *engine.Game, a engine.NavigatorGain) (engine.ActionOutput, error) {
	p, err := g.ActivePlayer()
	if err != nil {
		return engine.ActionOutput{}, err
	}
	switch a.Resource {
	case engine.ResourceGold:
		p.Gold += 4
		return engine.Output("The Navigator (%s) gains 4 extra gold.", p.Name), nil
	case engine.ResourceCards:
		g.DrawInto(p, 4)
		return engine.Output("The Navigator (%s) gains 4 extra cards.", p.Name), nil
	}
	return engine.ActionOutput{}, engine.Illegal("unknown resource")
}

// Scholar (rank 7): looks at the top 7 cards, keeps one and shuffles the rest
// back into the deck.
func scholarReveal(g *engine.Game, _ engine.ScholarReveal) (engine.ActionOutput, error) {
	p, err := g.ActivePlayer()
	if err != nil {
		return engine.ActionOutput{}, err
	}
	drawn := g.Deck.DrawN(7)
	out := engine.Output("The Scholar (%s) is choosing from the top %d cards of the deck.", p.Name, len(drawn))
	if len(drawn) == 0 {
		return out, nil
	}
	return out.WithFollowup(engine.FollowupScholarPick{Revealed: drawn}), nil
}

func scholarPick(g *engine.Game, a engine.ScholarPick) (engine.ActionOutput, error) {
	f, ok := g.Followup.(engine.FollowupScholarPick)
	if !ok {
		return engine.ActionOutput{}, engine.Illegal("action is not allowed")
	}
	i := slices.Index(f.Revealed, a.District)
	if i < 0 {
		return engine.ActionOutput{}, engine.Illegal("invalid choice")
	}
	p, err := g.ActivePlayer()
	if err != nil {
		return engine.ActionOutput{}, err
	}

	for _, d := range slices.Delete(slices.Clone(f.Revealed), i, i+1) {
		g.Deck.DiscardToBottom(d)
	}
	g.Deck.Shuffle(g.Rng())
	p.Hand = append(p.Hand, a.District)
	return engine.Output("The Scholar (%s) picks a card, discarding the rest and shuffling the deck.", p.Name), nil
}
