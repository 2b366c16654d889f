package abilities

import (
	"slices"

	"citadels-engine/internal/engine"
)

// Magician (rank 3): either swap hands with another player, or discard any
// number of cards and draw that many.
func magic(g *engine.Game, a engine.Magic) (engine.ActionOutput, error) {
	p, err := g.ActivePlayer()
	if err != nil {
		return engine.ActionOutput{}, err
	}

	switch a.Target {
	case engine.MagicTargetPlayer:
		if a.Player == p.Name {
			return engine.ActionOutput{}, engine.Illegal("Cannot swap hands with yourself.")
		}
		target, err := g.PlayerByName(a.Player)
		if err != nil {
			return engine.ActionOutput{}, err
		}
		mine, theirs := len(p.Hand), len(target.Hand)
		p.Hand, target.Hand = target.Hand, p.Hand
		return engine.Output("The Magician (%s) swaps their hand of %d cards with %s's hand of %d cards.",
			p.Name, mine, target.Name, theirs), nil

	case engine.MagicTargetDeck:
		if !p.HandHasAll(a.Districts) {
			return engine.ActionOutput{}, engine.Illegal("Can't discard cards not in your hand")
		}
		for _, d := range a.Districts {
			p.RemoveFromHand(d)
			g.Deck.DiscardToBottom(d)
		}
		drawn := g.DrawInto(p, len(a.Districts))
		return engine.Output("The Magician (%s) discarded %d cards and drew %d more.", p.Name, len(a.Districts), drawn), nil
	}
	return engine.ActionOutput{}, engine.Illegal("unknown magic target")
}

// Wizard (rank 3): looks at another player's hand, then takes one card or
// builds it on the spot.
func wizardPeek(g *engine.Game, a engine.WizardPeek) (engine.ActionOutput, error) {
	p, err := g.ActivePlayer()
	if err != nil {
		return engine.ActionOutput{}, err
	}
	if a.Player == p.Name {
		return engine.ActionOutput{}, engine.Illegal("Cannot peek at your own hand.")
	}
	target, err := g.PlayerByName(a.Player)
	if err != nil {
		return engine.ActionOutput{}, err
	}
	// an empty hand would leave the pick unresolvable
	if len(target.Hand) == 0 {
		return engine.ActionOutput{}, engine.Illegal("%s has no cards in hand.", target.Name)
	}
	return engine.Output("The Wizard (%s) peeks at %s's hand.", p.Name, target.Name).
		WithFollowup(engine.FollowupWizardPick{Player: target.Index}), nil
}

func wizardPick(g *engine.Game, a engine.WizardPick) (engine.ActionOutput, error) {
	f, ok := g.Followup.(engine.FollowupWizardPick)
	if !ok {
		return engine.ActionOutput{}, engine.Illegal("impossible")
	}
	target := g.Player(f.Player)
	if target == nil {
		return engine.ActionOutput{}, engine.Illegal("invalid player target")
	}

	if a.Method.Kind != engine.BuildTake {
		return g.PerformBuild(a.Method, target)
	}

	p, err := g.ActivePlayer()
	if err != nil {
		return engine.ActionOutput{}, err
	}
	if !target.RemoveFromHand(a.Method.District) {
		return engine.ActionOutput{}, engine.Illegal("district not in target player's hand")
	}
	p.Hand = append(p.Hand, a.Method.District)
	return engine.Output("The Wizard (%s) takes a card from %s's hand.", p.Name, target.Name), nil
}

// Seer (rank 3): takes a random card from every other hand, then gives one
// card back to each of those players.
func seerTake(g *engine.Game, _ engine.SeerTake) (engine.ActionOutput, error) {
	p, err := g.ActivePlayer()
	if err != nil {
		return engine.ActionOutput{}, err
	}
	var from []engine.PlayerIndex
	for _, other := range g.Players {
		if other.Index == p.Index || len(other.Hand) == 0 {
			continue
		}
		i := g.Rng().IntN(len(other.Hand))
		card := other.Hand[i]
		other.Hand = slices.Delete(other.Hand, i, i+1)
		p.Hand = append(p.Hand, card)
		from = append(from, other.Index)
	}

	out := engine.Output("The Seer (%s) takes 1 card from everyone.", p.Name)
	if len(from) == 0 {
		return out, nil
	}
	return out.WithFollowup(engine.FollowupSeerDistribute{Players: from}), nil
}

func seerDistribute(g *engine.Game, a engine.SeerDistribute) (engine.ActionOutput, error) {
	f, ok := g.Followup.(engine.FollowupSeerDistribute)
	if !ok {
		return engine.ActionOutput{}, engine.Illegal("impossible")
	}
	p, err := g.ActivePlayer()
	if err != nil {
		return engine.ActionOutput{}, err
	}
	if len(a.Gifts) != len(f.Players) {
		return engine.ActionOutput{}, engine.Illegal("Give exactly one card to each of the %d players you took from.", len(f.Players))
	}

	recipients := make([]*engine.Player, len(a.Gifts))
	cards := make([]engine.DistrictName, len(a.Gifts))
	given := make(map[engine.PlayerIndex]bool, len(a.Gifts))
	for i, gift := range a.Gifts {
		to, err := g.PlayerByName(gift.Player)
		if err != nil {
			return engine.ActionOutput{}, err
		}
		if !slices.Contains(f.Players, to.Index) || given[to.Index] {
			return engine.ActionOutput{}, engine.Illegal("Cannot give %s a card.", to.Name)
		}
		given[to.Index] = true
		recipients[i] = to
		cards[i] = gift.District
	}
	if !p.HandHasAll(cards) {
		return engine.ActionOutput{}, engine.Illegal("cannot assign district not in hand!")
	}

	for i, to := range recipients {
		p.RemoveFromHand(cards[i])
		to.Hand = append(to.Hand, cards[i])
	}
	return engine.Output("The Seer gives cards back."), nil
}
