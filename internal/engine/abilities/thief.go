package abilities

import (
	"slices"

	"citadels-engine/internal/engine"
)

// Thief (rank 2): robs a role that has not yet played. The robbed occupant's
// gold goes to the Thief when that role's turn starts.
func steal(g *engine.Game, a engine.Steal) (engine.ActionOutput, error) {
	if a.Role == engine.RoleThief {
		return engine.ActionOutput{}, engine.Illegal("Cannot steal from self.")
	}
	target, err := rosterRole(g, a.Role)
	if err != nil {
		return engine.ActionOutput{}, err
	}
	switch {
	case target.Revealed:
		return engine.ActionOutput{}, engine.Illegal("Cannot steal from %s who has already taken their turn.", a.Role)
	case target.Killed():
		return engine.ActionOutput{}, engine.Illegal("Cannot rob from the dead.")
	case target.Bewitched():
		return engine.ActionOutput{}, engine.Illegal("Cannot rob from the bewitched.")
	}
	p, err := g.ActivePlayer()
	if err != nil {
		return engine.ActionOutput{}, err
	}
	mark(target, engine.Marker{Kind: engine.MarkerRobbed})
	return engine.Output("The Thief (%s) robs the %s; At the start of their turn, all their gold will be taken.", p.Name, a.Role), nil
}

// Spy (rank 2): names a suit and a player, takes a gold and draws a card for
// each matching card in their hand, then looks at that hand.
func spy(g *engine.Game, a engine.Spy) (engine.ActionOutput, error) {
	p, err := g.ActivePlayer()
	if err != nil {
		return engine.ActionOutput{}, err
	}
	if a.Player == p.Name {
		return engine.ActionOutput{}, engine.Illegal("Cannot spy on yourself.")
	}
	if !slices.Contains(engine.AllColors(), a.Suit) {
		return engine.ActionOutput{}, engine.Illegal("unknown suit")
	}
	target, err := g.PlayerByName(a.Player)
	if err != nil {
		return engine.ActionOutput{}, err
	}

	matches := 0
	for _, d := range target.Hand {
		if d.Suit() == a.Suit {
			matches++
		}
	}
	gold := min(target.Gold, matches)
	target.Gold -= gold
	p.Gold += gold
	drawn := g.DrawInto(p, matches)

	return engine.Output(
		"The Spy (%s) is counting %s districts. They spy on %s, and find %d matches. They take %d gold, and draw %d cards.",
		p.Name, a.Suit, target.Name, matches, gold, drawn,
	).WithFollowup(engine.FollowupSpyAcknowledge{
		Player:   target.Name,
		Revealed: slices.Clone(target.Hand),
	}), nil
}

func spyAcknowledge(_ *engine.Game, _ engine.SpyAcknowledge) (engine.ActionOutput, error) {
	return engine.Output("Spy is done peeking at the revealed hand"), nil
}

// Blackmailer (rank 2): threatens two roles that have yet to play, one of
// them for real.
func blackmail(g *engine.Game, a engine.Blackmail) (engine.ActionOutput, error) {
	if a.Flowered == a.Unmarked {
		return engine.ActionOutput{}, engine.Illegal("Cannot blackmail someone twice.")
	}
	var slots [2]*engine.GameRole
	for i, r := range []engine.CharacterRole{a.Flowered, a.Unmarked} {
		if r == engine.RoleBlackmailer {
			return engine.ActionOutput{}, engine.Illegal("Cannot blackmail yourself.")
		}
		slot, err := rosterRole(g, r)
		if err != nil {
			return engine.ActionOutput{}, engine.Illegal("Can not blackmail someone not in the game")
		}
		if slot.Revealed {
			return engine.ActionOutput{}, engine.Illegal("Cannot blackmail the %s, who has already taken their turn.", r)
		}
		if slot.Killed() || slot.Bewitched() {
			return engine.ActionOutput{}, engine.Illegal("Cannot blackmail the killed or bewitched")
		}
		slots[i] = slot
	}
	p, err := g.ActivePlayer()
	if err != nil {
		return engine.ActionOutput{}, err
	}

	mark(slots[0], engine.Marker{Kind: engine.MarkerBlackmail, Flowered: true})
	mark(slots[1], engine.Marker{Kind: engine.MarkerBlackmail})
	roles := []engine.CharacterRole{a.Flowered, a.Unmarked}
	engine.SortRoles(roles)
	return engine.Output("The Blackmailer (%s) sends blackmail to the %s and the %s", p.Name, roles[0], roles[1]), nil
}
