package engine

import (
	"errors"
	"fmt"
	"slices"
)

// DistrictOption controls whether a unique district enters the deck.
type DistrictOption int

const (
	DistrictSometimes DistrictOption = iota
	DistrictAlways
	DistrictNever
)

var districtOptionNames = map[DistrictOption]string{
	DistrictSometimes: "Sometimes",
	DistrictAlways:    "Always",
	DistrictNever:     "Never",
}

func (o DistrictOption) String() string {
	if s, ok := districtOptionNames[o]; ok {
		return s
	}
	return "Unknown"
}

func (o DistrictOption) MarshalText() ([]byte, error) { return []byte(o.String()), nil }

func (o *DistrictOption) UnmarshalText(b []byte) error {
	for k, v := range districtOptionNames {
		if v == string(b) {
			*o = k
			return nil
		}
	}
	return fmt.Errorf("unknown district option %q", b)
}

// UniqueDistrictCount is how many unique districts join the 54 normal cards.
const UniqueDistrictCount = 14

const (
	MinPlayers = 2
	MaxPlayers = 8
)

// GameConfig holds configuration for creating a new game.
type GameConfig struct {
	Roles       []CharacterRole                 `json:"roles"`     // enabled roles
	Districts   map[DistrictName]DistrictOption `json:"districts"` // missing means Sometimes
	RoleAnarchy bool                            `json:"role_anarchy"`
}

// DefaultConfig enables every role and leaves every unique district on Sometimes.
func DefaultConfig() GameConfig {
	return GameConfig{
		Roles:     AllRoles(),
		Districts: map[DistrictName]DistrictOption{},
	}
}

// BaseSetConfig enables the classic eight roles plus the Artist.
func BaseSetConfig() GameConfig {
	return GameConfig{
		Roles: []CharacterRole{
			RoleAssassin, RoleThief, RoleMagician, RoleKing,
			RoleBishop, RoleMerchant, RoleArchitect, RoleWarlord, RoleArtist,
		},
		Districts: map[DistrictName]DistrictOption{},
	}
}

// Validate checks that every rank has at least one enabled role.
func (c GameConfig) Validate() error {
	for rank := Rank(1); rank <= 9; rank++ {
		if !slices.ContainsFunc(c.Roles, func(r CharacterRole) bool { return r.Rank() == rank }) {
			return fmt.Errorf("must enable a role of rank %d", rank)
		}
	}
	return nil
}

func (c GameConfig) roleEnabled(r CharacterRole) bool {
	return slices.Contains(c.Roles, r)
}

func (c GameConfig) districtOption(d DistrictName) DistrictOption {
	if o, ok := c.Districts[d]; ok {
		return o
	}
	return DistrictSometimes
}

// SelectRoles picks the round's roster: 8 roles for two players, else 9.
// Standard mode picks one role per rank; anarchy picks any eligible roles.
func (c GameConfig) SelectRoles(rng *Prng, players int) ([]CharacterRole, error) {
	roleCount := 9
	if players == 2 {
		roleCount = 8
	}

	var eligible []CharacterRole
	for _, r := range AllRoles() {
		if players >= r.MinPlayerCount() && c.roleEnabled(r) {
			eligible = append(eligible, r)
		}
	}

	if c.RoleAnarchy {
		if len(eligible) < roleCount {
			return nil, fmt.Errorf("need %d eligible roles, have %d", roleCount, len(eligible))
		}
		ShuffleSlice(rng, eligible)
		return eligible[:roleCount], nil
	}

	out := make([]CharacterRole, 0, roleCount)
	for rank := Rank(1); rank <= Rank(roleCount); rank++ {
		var group []CharacterRole
		for _, r := range eligible {
			if r.Rank() == rank {
				group = append(group, r)
			}
		}
		if len(group) == 0 {
			return nil, fmt.Errorf("no enabled roles for rank %d", rank)
		}
		out = append(out, group[rng.IntN(len(group))])
	}
	return out, nil
}

// SelectUniqueDistricts returns the Always districts followed by shuffled
// Sometimes districts, truncated to UniqueDistrictCount.
func (c GameConfig) SelectUniqueDistricts(rng *Prng) ([]DistrictName, error) {
	var always, sometimes []DistrictName
	for _, d := range UniqueDistricts() {
		switch c.districtOption(d) {
		case DistrictAlways:
			always = append(always, d)
		case DistrictSometimes:
			sometimes = append(sometimes, d)
		}
	}
	if len(always) < UniqueDistrictCount {
		ShuffleSlice(rng, sometimes)
	}
	out := append(always, sometimes...)
	if len(out) < UniqueDistrictCount {
		return nil, errors.New("not enough unique districts enabled")
	}
	return out[:UniqueDistrictCount], nil
}

// LobbyPlayer is a participant as known before seating.
type LobbyPlayer struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Lobby is everything needed to start a game.
type Lobby struct {
	Players []LobbyPlayer `json:"players"`
	Config  GameConfig    `json:"config"`
}
