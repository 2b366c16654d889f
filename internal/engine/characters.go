package engine

import (
	"slices"
	"strings"
)

// MarkerKind is a round-scoped status attached to a role slot.
type MarkerKind int

const (
	MarkerKilled MarkerKind = iota + 1
	MarkerRobbed
	MarkerBewitched
	MarkerBlackmail
	MarkerWarrant
	MarkerDiscarded
)

var markerNames = map[MarkerKind]string{
	MarkerKilled:    "Killed",
	MarkerRobbed:    "Robbed",
	MarkerBewitched: "Bewitched",
	MarkerBlackmail: "Blackmail",
	MarkerWarrant:   "Warrant",
	MarkerDiscarded: "Discarded",
}

func (k MarkerKind) String() string {
	if s, ok := markerNames[k]; ok {
		return s
	}
	return "Unknown"
}

// Marker is a status on a role. Flowered applies to Blackmail and Signed to
// Warrant; both are hidden from other players.
type Marker struct {
	Kind     MarkerKind `json:"kind"`
	Flowered bool       `json:"-"`
	Signed   bool       `json:"-"`
}

// GameRole is one slot of the round's roster.
type GameRole struct {
	Role     CharacterRole `json:"role"`
	Player   PlayerIndex   `json:"player"`
	Revealed bool          `json:"revealed"`
	Markers  []Marker      `json:"markers"`
	Logs     []string      `json:"logs"`
}

func (r *GameRole) HasMarker(kind MarkerKind) bool {
	return slices.ContainsFunc(r.Markers, func(m Marker) bool { return m.Kind == kind })
}

func (r *GameRole) Occupied() bool { return r.Player != NoPlayer }
func (r *GameRole) Killed() bool   { return r.HasMarker(MarkerKilled) }
func (r *GameRole) Bewitched() bool {
	return r.HasMarker(MarkerBewitched)
}

// Warrant returns the warrant on the role, if any.
func (r *GameRole) Warrant() (signed, ok bool) {
	for _, m := range r.Markers {
		if m.Kind == MarkerWarrant {
			return m.Signed, true
		}
	}
	return false, false
}

// Blackmail returns the blackmail threat on the role, if any.
func (r *GameRole) Blackmail() (flowered, ok bool) {
	for _, m := range r.Markers {
		if m.Kind == MarkerBlackmail {
			return m.Flowered, true
		}
	}
	return false, false
}

func (r *GameRole) removeMarkers(kind MarkerKind) {
	r.Markers = slices.DeleteFunc(r.Markers, func(m Marker) bool { return m.Kind == kind })
}

// Characters is the roster for the current round, ordered by rank.
type Characters struct {
	slots []GameRole
}

func NewCharacters(rs []CharacterRole) *Characters {
	sorted := slices.Clone(rs)
	slices.SortStableFunc(sorted, func(a, b CharacterRole) int { return int(a.Rank()) - int(b.Rank()) })
	c := &Characters{slots: make([]GameRole, len(sorted))}
	for i, r := range sorted {
		c.slots[i] = GameRole{Role: r, Player: NoPlayer}
	}
	return c
}

func (c *Characters) Len() int { return len(c.slots) }

// At returns the slot at a roster index, or nil when out of range.
func (c *Characters) At(i int) *GameRole {
	if i < 0 || i >= len(c.slots) {
		return nil
	}
	return &c.slots[i]
}

// Get returns the slot for the role, or nil when it is not in play.
func (c *Characters) Get(role CharacterRole) *GameRole {
	for i := range c.slots {
		if c.slots[i].Role == role {
			return &c.slots[i]
		}
	}
	return nil
}

func (c *Characters) Has(role CharacterRole) bool { return c.Get(role) != nil }

// Roles lists the roles in play, in rank order.
func (c *Characters) Roles() []CharacterRole {
	out := make([]CharacterRole, len(c.slots))
	for i, s := range c.slots {
		out[i] = s.Role
	}
	return out
}

// Slots exposes the roster for read-only iteration.
func (c *Characters) Slots() []GameRole { return c.slots }

// Next returns the roster index after i, if there is one.
func (c *Characters) Next(i int) (int, bool) {
	if i+1 >= len(c.slots) {
		return 0, false
	}
	return i + 1, true
}

// HasBishopProtection reports whether the player's city is shielded this
// round. A revealed Bishop protects its occupant, unless bewitched, in which
// case the Witch's occupant is protected instead.
func (c *Characters) HasBishopProtection(p PlayerIndex) bool {
	bishop := c.Get(RoleBishop)
	if bishop == nil || !bishop.Revealed || !bishop.Occupied() {
		return false
	}
	if bishop.Bewitched() {
		witch := c.Get(RoleWitch)
		return witch != nil && witch.Player == p
	}
	return bishop.Player == p
}

func (c *Characters) HasTaxCollector() bool {
	return c.Has(RoleTaxCollector)
}

// ClearMarkers drops the marker kind from every slot.
func (c *Characters) ClearMarkers(kind MarkerKind) {
	for i := range c.slots {
		c.slots[i].removeMarkers(kind)
	}
}

func (c *Characters) cleanup() {
	for i := range c.slots {
		c.slots[i] = GameRole{Role: c.slots[i].Role, Player: NoPlayer}
	}
}

func (c *Characters) String() string {
	names := make([]string, len(c.slots))
	for i, s := range c.slots {
		names[i] = s.Role.String()
	}
	return strings.Join(names, ", ")
}
