package engine

import "slices"

// ForcedReason says why the active role must gather resources first.
type ForcedReason int

const (
	NotForced ForcedReason = iota
	ForcedWitch
	ForcedBewitched
	ForcedBlackmailed
)

// AllowedFor returns the action tags the participant may submit right now.
// A pending followup restricts the set to its resolving actions for the
// player who owes it, and to nothing for everyone else.
func (g *Game) AllowedFor(actorID string) []ActionTag {
	if actorID == "" {
		return nil
	}
	if g.Followup != nil {
		if p, err := g.RespondingPlayer(); err == nil && p.ID == actorID {
			return g.Followup.Actions()
		}
		return nil
	}
	if p, err := g.ActivePlayer(); err == nil && p.ID == actorID {
		return g.ActivePlayerActions()
	}
	return nil
}

// HasGatheredResources reports whether the turn's resource step is finished.
// A pending card pick does not count yet.
func (g *Game) HasGatheredResources() bool {
	if _, picking := g.Followup.(FollowupGatherCardsPick); picking {
		return false
	}
	return slices.ContainsFunc(g.TurnActions, func(a Action) bool {
		return a.Tag().IsResourceGathering()
	})
}

// ForcedToGatherResources reports whether the active role must gather before
// anything else. The Witch takes priority over being bewitched or blackmailed.
func (g *Game) ForcedToGatherResources() ForcedReason {
	if g.HasGatheredResources() {
		return NotForced
	}
	c, err := g.ActiveRole()
	if err != nil {
		return NotForced
	}
	switch {
	case c.Role == RoleWitch:
		return ForcedWitch
	case c.Bewitched():
		return ForcedBewitched
	case c.HasMarker(MarkerBlackmail):
		return ForcedBlackmailed
	}
	return NotForced
}

// ActivePlayerActions lists what the active player may do when no followup
// is pending.
func (g *Game) ActivePlayerActions() []ActionTag {
	switch t := g.Turn.(type) {
	case *Draft:
		if t.TheaterStep {
			if g.PerformCount(TagTheater) > 0 || g.PerformCount(TagTheaterPass) > 0 {
				return nil
			}
			return []ActionTag{TagTheater, TagTheaterPass}
		}
		if g.PerformCount(TagDraftPick) == 0 {
			return []ActionTag{TagDraftPick}
		}
		return []ActionTag{TagDraftDiscard}

	case *Call:
		if t.EndOfRound {
			c := g.Characters.At(t.Index)
			if c == nil || c.Role != RoleEmperor || g.PerformCount(TagEmperorHeirGiveCrown) > 0 {
				return nil
			}
			return []ActionTag{TagEmperorHeirGiveCrown}
		}
		return g.callActions(t)
	}
	return nil
}

func (g *Game) callActions(call *Call) []ActionTag {
	player, err := g.ActivePlayer()
	if err != nil {
		return nil
	}
	if g.ForcedToGatherResources() != NotForced {
		return []ActionTag{TagGatherResourceGold, TagGatherResourceCards}
	}

	var actions []ActionTag
	c := g.Characters.At(call.Index)
	for _, ac := range c.Role.Actions() {
		if g.PerformCount(ac.Tag) < ac.Max {
			actions = append(actions, ac.Tag)
		}
	}
	for _, d := range player.City {
		if tag, ok := d.Name.DistrictAction(); ok && g.PerformCount(tag) < 1 && !slices.Contains(actions, tag) {
			actions = append(actions, tag)
		}
	}

	if !g.HasGatheredResources() {
		actions = append(actions, TagGatherResourceGold, TagGatherResourceCards)
	} else if c.Role != RoleNavigator {
		actions = append(actions, TagBuild)
	}

	if !slices.ContainsFunc(actions, ActionTag.IsRequired) {
		actions = append(actions, TagEndTurn)
	}
	return actions
}
