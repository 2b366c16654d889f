package engine

import "fmt"

// ActionOutput is what a handler produces on success.
type ActionOutput struct {
	Log      string
	Followup Followup
	EndTurn  bool
}

// Output starts an ActionOutput with a formatted log line.
func Output(format string, args ...any) ActionOutput {
	return ActionOutput{Log: fmt.Sprintf(format, args...)}
}

func (o ActionOutput) WithFollowup(f Followup) ActionOutput {
	o.Followup = f
	return o
}

func (o ActionOutput) WithEndTurn() ActionOutput {
	o.EndTurn = true
	return o
}

// Ability validates and applies one action variant. Apply must check every
// precondition before it mutates the game, so a returned error leaves the
// game untouched.
type Ability interface {
	Tag() ActionTag
	Apply(g *Game, a Action) (ActionOutput, error)
}

type handler[T Action] struct {
	tag ActionTag
	fn  func(*Game, T) (ActionOutput, error)
}

// Handle adapts a typed handler function into an Ability.
func Handle[T Action](fn func(*Game, T) (ActionOutput, error)) Ability {
	var zero T
	return handler[T]{tag: zero.Tag(), fn: fn}
}

func (h handler[T]) Tag() ActionTag { return h.tag }

func (h handler[T]) Apply(g *Game, a Action) (ActionOutput, error) {
	switch v := any(a).(type) {
	case T:
		return h.fn(g, v)
	case *T:
		if v != nil {
			return h.fn(g, *v)
		}
	}
	return ActionOutput{}, Illegal("malformed %s action", h.tag)
}

// AbilityRegistry maps action tags to their handlers.
type AbilityRegistry struct {
	abilities map[ActionTag]Ability
}

// NewAbilityRegistry returns a registry holding the core handlers: drafting,
// resource gathering, building, ending turns and district actions. Role
// abilities are registered on top.
func NewAbilityRegistry() *AbilityRegistry {
	r := &AbilityRegistry{abilities: make(map[ActionTag]Ability)}
	registerCore(r)
	return r
}

func (r *AbilityRegistry) Register(a Ability) {
	r.abilities[a.Tag()] = a
}

func (r *AbilityRegistry) Get(tag ActionTag) (Ability, error) {
	a, ok := r.abilities[tag]
	if !ok {
		return nil, Illegal("no handler registered for %s", tag)
	}
	return a, nil
}

func registerCore(r *AbilityRegistry) {
	r.Register(Handle(applyDraftPick))
	r.Register(Handle(applyDraftDiscard))
	r.Register(Handle(applyTheater))
	r.Register(Handle(applyTheaterPass))
	r.Register(Handle(applyEndTurn))
	r.Register(Handle(applyGatherGold))
	r.Register(Handle(applyGatherCards))
	r.Register(Handle(applyGatherCardsPick))
	r.Register(Handle(applyBuild))
	r.Register(Handle(applyRevealWarrant))
	r.Register(Handle(applyPayBribe))
	r.Register(Handle(applyIgnoreBlackmail))
	r.Register(Handle(applyRevealBlackmail))
	r.Register(Handle(applyPass))
	r.Register(Handle(applySmithy))
	r.Register(Handle(applyLaboratory))
	r.Register(Handle(applyMuseum))
	r.Register(Handle(applyArmory))
}
