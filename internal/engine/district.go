package engine

import "fmt"

// DistrictColor represents the five district suits.
type DistrictColor int

const (
	ColorNone      DistrictColor = 0
	ColorReligious DistrictColor = 1 // Blue
	ColorMilitary  DistrictColor = 2 // Red
	ColorTrade     DistrictColor = 3 // Green
	ColorNoble     DistrictColor = 4 // Yellow
	ColorUnique    DistrictColor = 5 // Purple
)

var colorNames = map[DistrictColor]string{
	ColorNone:      "None",
	ColorReligious: "Religious",
	ColorMilitary:  "Military",
	ColorTrade:     "Trade",
	ColorNoble:     "Noble",
	ColorUnique:    "Unique",
}

func (c DistrictColor) String() string {
	if s, ok := colorNames[c]; ok {
		return s
	}
	return "Unknown"
}

func (c DistrictColor) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

func (c *DistrictColor) UnmarshalText(b []byte) error {
	for k, v := range colorNames {
		if v == string(b) && k != ColorNone {
			*c = k
			return nil
		}
	}
	return fmt.Errorf("unknown suit %q", b)
}

// AllColors lists the suits in the order the Haunted Quarter tries them.
func AllColors() []DistrictColor {
	return []DistrictColor{ColorReligious, ColorMilitary, ColorTrade, ColorNoble, ColorUnique}
}

// DistrictName identifies a kind of district card. Copies of the same kind are
// interchangeable, so hands and piles hold names rather than card objects.
type DistrictName int

const (
	DistrictNone DistrictName = iota

	// Religious
	DistrictTemple
	DistrictChurch
	DistrictMonastery
	DistrictCathedral
	// Military
	DistrictWatchtower
	DistrictPrison
	DistrictBarracks
	DistrictFortress
	// Noble
	DistrictManor
	DistrictCastle
	DistrictPalace
	// Trade
	DistrictTavern
	DistrictMarket
	DistrictTradingPost
	DistrictDocks
	DistrictHarbor
	DistrictTownHall

	// Unique
	DistrictSmithy
	DistrictLaboratory
	DistrictSchoolOfMagic
	DistrictKeep
	DistrictDragonGate
	DistrictHauntedQuarter
	DistrictGreatWall
	DistrictObservatory
	DistrictLibrary
	DistrictQuarry
	DistrictArmory
	DistrictFactory
	DistrictPark
	DistrictMuseum
	DistrictPoorHouse
	DistrictMapRoom
	DistrictWishingWell
	DistrictImperialTreasury
	DistrictFramework
	DistrictStatue
	DistrictGoldMine
	DistrictIvoryTower
	DistrictNecropolis
	DistrictThievesDen
	DistrictTheater
	DistrictStables
	DistrictBasilica
	DistrictSecretVault
	DistrictCapitol
	DistrictMonument

	districtCount
)

// DistrictData is the static description of a district kind.
type DistrictData struct {
	Name         DistrictName  `json:"name"`
	DisplayName  string        `json:"display_name"`
	Suit         DistrictColor `json:"suit"`
	Cost         int           `json:"cost"`
	Multiplicity int           `json:"multiplicity"`
	ID           string        `json:"-"`
}

var districts [districtCount]DistrictData

func init() {
	add := func(name DistrictName, id, display string, suit DistrictColor, cost, n int) {
		districts[name] = DistrictData{Name: name, ID: id, DisplayName: display, Suit: suit, Cost: cost, Multiplicity: n}
	}

	// Religious (blue)
	add(DistrictTemple, "Temple", "Temple", ColorReligious, 1, 3)
	add(DistrictChurch, "Church", "Church", ColorReligious, 2, 3)
	add(DistrictMonastery, "Monastery", "Monastery", ColorReligious, 3, 3)
	add(DistrictCathedral, "Cathedral", "Cathedral", ColorReligious, 5, 2)

	// Military (red)
	add(DistrictWatchtower, "Watchtower", "Watchtower", ColorMilitary, 1, 3)
	add(DistrictPrison, "Prison", "Prison", ColorMilitary, 2, 3)
	add(DistrictBarracks, "Barracks", "Barracks", ColorMilitary, 3, 3)
	add(DistrictFortress, "Fortress", "Fortress", ColorMilitary, 5, 2)

	// Noble (yellow)
	add(DistrictManor, "Manor", "Manor", ColorNoble, 3, 5)
	add(DistrictCastle, "Castle", "Castle", ColorNoble, 4, 4)
	add(DistrictPalace, "Palace", "Palace", ColorNoble, 5, 3)

	// Trade (green)
	add(DistrictTavern, "Tavern", "Tavern", ColorTrade, 1, 5)
	add(DistrictMarket, "Market", "Market", ColorTrade, 2, 4)
	add(DistrictTradingPost, "TradingPost", "Trading Post", ColorTrade, 2, 3)
	add(DistrictDocks, "Docks", "Docks", ColorTrade, 3, 3)
	add(DistrictHarbor, "Harbor", "Harbor", ColorTrade, 4, 3)
	add(DistrictTownHall, "TownHall", "Town Hall", ColorTrade, 5, 2)

	// Unique (purple), one copy each
	unique := func(name DistrictName, id, display string, cost int) {
		add(name, id, display, ColorUnique, cost, 1)
	}
	unique(DistrictSmithy, "Smithy", "Smithy", 5)
	unique(DistrictLaboratory, "Laboratory", "Laboratory", 5)
	unique(DistrictSchoolOfMagic, "SchoolOfMagic", "School of Magic", 6)
	unique(DistrictKeep, "Keep", "Keep", 3)
	unique(DistrictDragonGate, "DragonGate", "Dragon Gate", 6)
	unique(DistrictHauntedQuarter, "HauntedQuarter", "Haunted Quarter", 2)
	unique(DistrictGreatWall, "GreatWall", "Great Wall", 6)
	unique(DistrictObservatory, "Observatory", "Observatory", 4)
	unique(DistrictLibrary, "Library", "Library", 6)
	unique(DistrictQuarry, "Quarry", "Quarry", 5)
	unique(DistrictArmory, "Armory", "Armory", 3)
	unique(DistrictFactory, "Factory", "Factory", 5)
	unique(DistrictPark, "Park", "Park", 6)
	unique(DistrictMuseum, "Museum", "Museum", 4)
	unique(DistrictPoorHouse, "PoorHouse", "Poor House", 4)
	unique(DistrictMapRoom, "MapRoom", "Map Room", 5)
	unique(DistrictWishingWell, "WishingWell", "Wishing Well", 5)
	unique(DistrictImperialTreasury, "ImperialTreasury", "Imperial Treasury", 5)
	unique(DistrictFramework, "Framework", "Framework", 3)
	unique(DistrictStatue, "Statue", "Statue", 3)
	unique(DistrictGoldMine, "GoldMine", "Gold Mine", 6)
	unique(DistrictIvoryTower, "IvoryTower", "Ivory Tower", 5)
	unique(DistrictNecropolis, "Necropolis", "Necropolis", 5)
	unique(DistrictThievesDen, "ThievesDen", "Thieves' Den", 6)
	unique(DistrictTheater, "Theater", "Theater", 6)
	unique(DistrictStables, "Stables", "Stables", 2)
	unique(DistrictBasilica, "Basilica", "Basilica", 4)
	unique(DistrictSecretVault, "SecretVault", "Secret Vault", 0)
	unique(DistrictCapitol, "Capitol", "Capitol", 5)
	unique(DistrictMonument, "Monument", "Monument", 4)
}

// Data returns the static description of the district.
func (n DistrictName) Data() DistrictData {
	if n <= DistrictNone || n >= districtCount {
		return DistrictData{Name: n, ID: "Unknown", DisplayName: "Unknown"}
	}
	return districts[n]
}

func (n DistrictName) String() string      { return n.Data().DisplayName }
func (n DistrictName) Suit() DistrictColor { return n.Data().Suit }
func (n DistrictName) Cost() int           { return n.Data().Cost }
func (n DistrictName) IsUnique() bool      { return n.Data().Suit == ColorUnique }

func (n DistrictName) MarshalText() ([]byte, error) {
	if n <= DistrictNone || n >= districtCount {
		return nil, fmt.Errorf("unknown district %d", int(n))
	}
	return []byte(districts[n].ID), nil
}

func (n *DistrictName) UnmarshalText(b []byte) error {
	for i := DistrictNone + 1; i < districtCount; i++ {
		if districts[i].ID == string(b) {
			*n = i
			return nil
		}
	}
	return fmt.Errorf("unknown district %q", b)
}

// DistrictAction returns the once-per-turn action a district grants its owner.
func (n DistrictName) DistrictAction() (ActionTag, bool) {
	switch n {
	case DistrictSmithy:
		return TagSmithy, true
	case DistrictMuseum:
		return TagMuseum, true
	case DistrictLaboratory:
		return TagLaboratory, true
	case DistrictArmory:
		return TagArmory, true
	default:
		return 0, false
	}
}

// NormalDistricts returns the non-unique district kinds.
func NormalDistricts() []DistrictName {
	var out []DistrictName
	for i := DistrictNone + 1; i < districtCount; i++ {
		if !i.IsUnique() {
			out = append(out, i)
		}
	}
	return out
}

// UniqueDistricts returns every unique district kind.
func UniqueDistricts() []DistrictName {
	var out []DistrictName
	for i := DistrictNone + 1; i < districtCount; i++ {
		if i.IsUnique() {
			out = append(out, i)
		}
	}
	return out
}

// BaseDistricts returns the 54-card normal part of the deck, one entry per copy.
func BaseDistricts() []DistrictName {
	var cards []DistrictName
	for _, d := range NormalDistricts() {
		for range d.Data().Multiplicity {
			cards = append(cards, d)
		}
	}
	return cards
}
