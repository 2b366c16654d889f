package abilities

import (
	"slices"

	"citadels-engine/internal/engine"
)

// King and Patrician (rank 4): take the crown. The crown goes to the role's
// occupant even when the Witch is playing the turn.
func takeCrown(g *engine.Game, _ engine.TakeCrown) (engine.ActionOutput, error) {
	slot, err := g.ActiveRole()
	if err != nil {
		return engine.ActionOutput{}, err
	}
	if !slot.Occupied() {
		return engine.ActionOutput{}, engine.Illegal("No Royalty to take crown!")
	}
	g.Crowned = slot.Player
	return engine.Output("%s takes the crown.", g.Players[slot.Player].Name), nil
}

func goldFromNobility(g *engine.Game, _ engine.GoldFromNobility) (engine.ActionOutput, error) {
	return g.GainGoldForSuit(engine.ColorNoble)
}

func cardsFromNobility(g *engine.Game, _ engine.CardsFromNobility) (engine.ActionOutput, error) {
	return g.GainCardsForSuit(engine.ColorNoble)
}

// crownRecipient checks that the crown can pass from the active player to name.
func crownRecipient(g *engine.Game, name string) (*engine.Player, *engine.Player, error) {
	p, err := g.ActivePlayer()
	if err != nil {
		return nil, nil, err
	}
	if name == p.Name {
		return nil, nil, engine.Illegal("Cannot give the crown to yourself.")
	}
	target, err := g.PlayerByName(name)
	if err != nil {
		return nil, nil, err
	}
	if target.Index == g.Crowned {
		return nil, nil, engine.Illegal("Cannot give the crown to the already crowned player.")
	}
	return p, target, nil
}

// Emperor (rank 4): gives the crown to another player and takes one gold or
// one random card from them in return.
func emperorGiveCrown(g *engine.Game, a engine.EmperorGiveCrown) (engine.ActionOutput, error) {
	if a.Resource != engine.ResourceGold && a.Resource != engine.ResourceCards {
		return engine.ActionOutput{}, engine.Illegal("unknown resource")
	}
	p, target, err := crownRecipient(g, a.Player)
	if err != nil {
		return engine.ActionOutput{}, err
	}

	g.Crowned = target.Index
	switch {
	case a.Resource == engine.ResourceGold && target.Gold > 0:
		target.Gold--
		p.Gold++
	case a.Resource == engine.ResourceCards && len(target.Hand) > 0:
		i := g.Rng().IntN(len(target.Hand))
		card := target.Hand[i]
		target.Hand = slices.Delete(target.Hand, i, i+1)
		p.Hand = append(p.Hand, card)
	}

	what := "gold"
	if a.Resource == engine.ResourceCards {
		what = "cards"
	}
	return engine.Output("The Emperor (%s) gives %s the crown and takes one of their %s.", p.Name, target.Name, what), nil
}

// emperorHeirGiveCrown runs in the end-of-round step when the Emperor was
// killed; the occupant still hands the crown on, without taking anything.
func emperorHeirGiveCrown(g *engine.Game, a engine.EmperorHeirGiveCrown) (engine.ActionOutput, error) {
	p, target, err := crownRecipient(g, a.Player)
	if err != nil {
		return engine.ActionOutput{}, err
	}
	g.Crowned = target.Index
	return engine.Output("The Emperor's advisor (%s) gives %s the crown.", p.Name, target.Name).WithEndTurn(), nil
}
