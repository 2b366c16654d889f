package engine

import "fmt"

// Submission is one accepted action together with who sent it.
type Submission struct {
	ActorID string `json:"actor_id"`
	Action  Action `json:"action"`
}

// Replay rebuilds a game from its lobby, seed and accepted actions. Since
// every random draw comes from the seeded generator, the result matches the
// game that originally produced the log.
func Replay(lobby Lobby, seed uint64, abilities *AbilityRegistry, log []Submission, opts ...Option) (*Game, error) {
	g, err := Start(lobby, seed, abilities, opts...)
	if err != nil {
		return nil, fmt.Errorf("start: %w", err)
	}
	for i, s := range log {
		if s.Action == nil {
			return g, fmt.Errorf("replay action %d: %w", i, Illegal("no action"))
		}
		if err := g.Perform(s.Action, s.ActorID); err != nil {
			return g, fmt.Errorf("replay action %d (%s): %w", i, s.Action.Tag(), err)
		}
	}
	return g, nil
}
