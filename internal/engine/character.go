package engine

import "fmt"

// CharacterRole identifies one of the 27 characters. The zero value means no role.
type CharacterRole int

const (
	RoleNone CharacterRole = iota

	RoleAssassin
	RoleWitch
	RoleMagistrate
	RoleThief
	RoleSpy
	RoleBlackmailer
	RoleMagician
	RoleWizard
	RoleSeer
	RoleKing
	RoleEmperor
	RolePatrician
	RoleBishop
	RoleAbbot
	RoleCardinal
	RoleMerchant
	RoleAlchemist
	RoleTrader
	RoleArchitect
	RoleNavigator
	RoleScholar
	RoleWarlord
	RoleDiplomat
	RoleMarshal
	RoleQueen
	RoleArtist
	RoleTaxCollector

	roleCount
)

// Rank is the call order of a role, 1 through 9.
type Rank int

// ActionCap is a role action and how many times per turn it may be taken.
type ActionCap struct {
	Tag ActionTag
	Max int
}

type roleData struct {
	id         string
	display    string
	rank       Rank
	color      DistrictColor
	buildLimit int
	minPlayers int
	actions    []ActionCap
}

var roles [roleCount]roleData

func init() {
	once := func(tags ...ActionTag) []ActionCap {
		caps := make([]ActionCap, len(tags))
		for i, t := range tags {
			caps[i] = ActionCap{Tag: t, Max: 1}
		}
		return caps
	}
	add := func(r CharacterRole, id string, rank Rank, color DistrictColor, actions []ActionCap) {
		roles[r] = roleData{id: id, display: id, rank: rank, color: color, buildLimit: 1, minPlayers: 2, actions: actions}
	}

	add(RoleAssassin, "Assassin", 1, ColorNone, once(TagAssassinate))
	add(RoleWitch, "Witch", 1, ColorNone, once(TagBewitch))
	add(RoleMagistrate, "Magistrate", 1, ColorNone, once(TagSendWarrants))

	add(RoleThief, "Thief", 2, ColorNone, once(TagSteal))
	add(RoleSpy, "Spy", 2, ColorNone, once(TagSpy))
	add(RoleBlackmailer, "Blackmailer", 2, ColorNone, once(TagBlackmail))

	add(RoleMagician, "Magician", 3, ColorNone, once(TagMagic))
	add(RoleWizard, "Wizard", 3, ColorNone, once(TagWizardPeek))
	add(RoleSeer, "Seer", 3, ColorNone, once(TagSeerTake))

	add(RoleKing, "King", 4, ColorNoble, once(TagTakeCrown, TagGoldFromNobility))
	add(RoleEmperor, "Emperor", 4, ColorNoble, once(TagEmperorGiveCrown, TagGoldFromNobility))
	add(RolePatrician, "Patrician", 4, ColorNoble, once(TagTakeCrown, TagCardsFromNobility))

	add(RoleBishop, "Bishop", 5, ColorReligious, once(TagGoldFromReligion))
	add(RoleAbbot, "Abbot", 5, ColorReligious, once(TagTakeFromRich, TagResourcesFromReligion))
	add(RoleCardinal, "Cardinal", 5, ColorReligious, once(TagCardsFromReligion))

	add(RoleMerchant, "Merchant", 6, ColorTrade, once(TagMerchantGainOneGold, TagGoldFromTrade))
	add(RoleAlchemist, "Alchemist", 6, ColorNone, nil)
	add(RoleTrader, "Trader", 6, ColorTrade, once(TagGoldFromTrade))

	add(RoleArchitect, "Architect", 7, ColorNone, once(TagArchitectGainCards))
	add(RoleNavigator, "Navigator", 7, ColorNone, once(TagNavigatorGain))
	add(RoleScholar, "Scholar", 7, ColorNone, once(TagScholarReveal))

	add(RoleWarlord, "Warlord", 8, ColorMilitary, once(TagGoldFromMilitary, TagWarlordDestroy))
	add(RoleDiplomat, "Diplomat", 8, ColorMilitary, once(TagGoldFromMilitary, TagDiplomatTrade))
	add(RoleMarshal, "Marshal", 8, ColorMilitary, once(TagGoldFromMilitary, TagMarshalSeize))

	add(RoleQueen, "Queen", 9, ColorNone, once(TagQueenGainGold))
	add(RoleArtist, "Artist", 9, ColorNone, []ActionCap{{Tag: TagBeautify, Max: 2}})
	add(RoleTaxCollector, "TaxCollector", 9, ColorNone, once(TagCollectTaxes))
	roles[RoleTaxCollector].display = "Tax Collector"

	roles[RoleArchitect].buildLimit = 3
	roles[RoleNavigator].buildLimit = 0
	roles[RoleSeer].buildLimit = 2
	roles[RoleScholar].buildLimit = 2

	roles[RoleQueen].minPlayers = 5
	roles[RoleEmperor].minPlayers = 3
	roles[RoleArtist].minPlayers = 3
	roles[RoleTaxCollector].minPlayers = 3
}

func (r CharacterRole) valid() bool { return r > RoleNone && r < roleCount }

func (r CharacterRole) String() string {
	if r.valid() {
		return roles[r].display
	}
	return "Unknown"
}

func (r CharacterRole) MarshalText() ([]byte, error) {
	if !r.valid() {
		return nil, fmt.Errorf("unknown role %d", int(r))
	}
	return []byte(roles[r].id), nil
}

func (r *CharacterRole) UnmarshalText(b []byte) error {
	for i := RoleNone + 1; i < roleCount; i++ {
		if roles[i].id == string(b) {
			*r = i
			return nil
		}
	}
	return fmt.Errorf("unknown role %q", b)
}

func (r CharacterRole) Rank() Rank {
	if r.valid() {
		return roles[r].rank
	}
	return 0
}

// Color is the suit the role collects resources for, or ColorNone.
func (r CharacterRole) Color() DistrictColor {
	if r.valid() {
		return roles[r].color
	}
	return ColorNone
}

// Actions lists the role's own actions with their per-turn caps.
func (r CharacterRole) Actions() []ActionCap {
	if r.valid() {
		return roles[r].actions
	}
	return nil
}

func (r CharacterRole) BuildLimit() int {
	if r.valid() {
		return roles[r].buildLimit
	}
	return 0
}

func (r CharacterRole) MinPlayerCount() int {
	if r.valid() {
		return roles[r].minPlayers
	}
	return 0
}

// CanBeDiscardedFaceUp reports whether the role may be among the face-up
// discards of a 4+ player draft. The crown roles never are.
func (r CharacterRole) CanBeDiscardedFaceUp() bool {
	return r.Rank() != 4
}

// AllRoles returns the 27 roles in rank order.
func AllRoles() []CharacterRole {
	out := make([]CharacterRole, 0, roleCount-1)
	for r := RoleNone + 1; r < roleCount; r++ {
		out = append(out, r)
	}
	return out
}
