package engine

import "fmt"

// ActionTag identifies an action variant. Tags drive authorization and
// per-turn counting.
type ActionTag int

const (
	TagDraftPick ActionTag = iota + 1
	TagDraftDiscard
	TagTheater
	TagTheaterPass
	TagGatherResourceGold
	TagGatherResourceCards
	TagGatherCardsPick
	TagBuild
	TagEndTurn
	TagGoldFromNobility
	TagGoldFromReligion
	TagGoldFromTrade
	TagGoldFromMilitary
	TagCardsFromNobility
	TagCardsFromReligion
	TagResourcesFromReligion
	TagMerchantGainOneGold
	TagArchitectGainCards
	TagTakeCrown
	TagAssassinate
	TagBewitch
	TagSendWarrants
	TagRevealWarrant
	TagSteal
	TagSpy
	TagSpyAcknowledge
	TagBlackmail
	TagPayBribe
	TagIgnoreBlackmail
	TagRevealBlackmail
	TagPass
	TagMagic
	TagWizardPeek
	TagWizardPick
	TagSeerTake
	TagSeerDistribute
	TagEmperorGiveCrown
	TagEmperorHeirGiveCrown
	TagTakeFromRich
	TagNavigatorGain
	TagScholarReveal
	TagScholarPick
	TagWarlordDestroy
	TagDiplomatTrade
	TagMarshalSeize
	TagQueenGainGold
	TagBeautify
	TagCollectTaxes
	TagSmithy
	TagLaboratory
	TagMuseum
	TagArmory

	tagCount
)

var tagNames = [tagCount]string{
	TagDraftPick:             "DraftPick",
	TagDraftDiscard:          "DraftDiscard",
	TagTheater:               "Theater",
	TagTheaterPass:           "TheaterPass",
	TagGatherResourceGold:    "GatherResourceGold",
	TagGatherResourceCards:   "GatherResourceCards",
	TagGatherCardsPick:       "GatherCardsPick",
	TagBuild:                 "Build",
	TagEndTurn:               "EndTurn",
	TagGoldFromNobility:      "GoldFromNobility",
	TagGoldFromReligion:      "GoldFromReligion",
	TagGoldFromTrade:         "GoldFromTrade",
	TagGoldFromMilitary:      "GoldFromMilitary",
	TagCardsFromNobility:     "CardsFromNobility",
	TagCardsFromReligion:     "CardsFromReligion",
	TagResourcesFromReligion: "ResourcesFromReligion",
	TagMerchantGainOneGold:   "MerchantGainOneGold",
	TagArchitectGainCards:    "ArchitectGainCards",
	TagTakeCrown:             "TakeCrown",
	TagAssassinate:           "Assassinate",
	TagBewitch:               "Bewitch",
	TagSendWarrants:          "SendWarrants",
	TagRevealWarrant:         "RevealWarrant",
	TagSteal:                 "Steal",
	TagSpy:                   "Spy",
	TagSpyAcknowledge:        "SpyAcknowledge",
	TagBlackmail:             "Blackmail",
	TagPayBribe:              "PayBribe",
	TagIgnoreBlackmail:       "IgnoreBlackmail",
	TagRevealBlackmail:       "RevealBlackmail",
	TagPass:                  "Pass",
	TagMagic:                 "Magic",
	TagWizardPeek:            "WizardPeek",
	TagWizardPick:            "WizardPick",
	TagSeerTake:              "SeerTake",
	TagSeerDistribute:        "SeerDistribute",
	TagEmperorGiveCrown:      "EmperorGiveCrown",
	TagEmperorHeirGiveCrown:  "EmperorHeirGiveCrown",
	TagTakeFromRich:          "TakeFromRich",
	TagNavigatorGain:         "NavigatorGain",
	TagScholarReveal:         "ScholarReveal",
	TagScholarPick:           "ScholarPick",
	TagWarlordDestroy:        "WarlordDestroy",
	TagDiplomatTrade:         "DiplomatTrade",
	TagMarshalSeize:          "MarshalSeize",
	TagQueenGainGold:         "QueenGainGold",
	TagBeautify:              "Beautify",
	TagCollectTaxes:          "CollectTaxes",
	TagSmithy:                "Smithy",
	TagLaboratory:            "Laboratory",
	TagMuseum:                "Museum",
	TagArmory:                "Armory",
}

func (t ActionTag) String() string {
	if t > 0 && t < tagCount {
		return tagNames[t]
	}
	return "Unknown"
}

func (t ActionTag) MarshalText() ([]byte, error) {
	if t <= 0 || t >= tagCount {
		return nil, fmt.Errorf("unknown action tag %d", int(t))
	}
	return []byte(tagNames[t]), nil
}

func (t *ActionTag) UnmarshalText(b []byte) error {
	tag, ok := ParseActionTag(string(b))
	if !ok {
		return fmt.Errorf("unknown action tag %q", b)
	}
	*t = tag
	return nil
}

func ParseActionTag(s string) (ActionTag, bool) {
	for t := ActionTag(1); t < tagCount; t++ {
		if tagNames[t] == s {
			return t, true
		}
	}
	return 0, false
}

// AllActionTags lists every tag in declaration order.
func AllActionTags() []ActionTag {
	out := make([]ActionTag, 0, tagCount-1)
	for t := ActionTag(1); t < tagCount; t++ {
		out = append(out, t)
	}
	return out
}

// IsRequired reports whether the action must be taken before the turn can end.
func (t ActionTag) IsRequired() bool {
	switch t {
	case TagDraftPick, TagGatherResourceGold, TagGatherResourceCards,
		TagTakeCrown, TagEmperorGiveCrown, TagEndTurn:
		return true
	}
	return false
}

// IsResourceGathering reports whether the action counts as the turn's
// resource gathering step.
func (t ActionTag) IsResourceGathering() bool {
	switch t {
	case TagGatherResourceGold, TagGatherResourceCards, TagGatherCardsPick:
		return true
	}
	return false
}

// Action is the closed union of everything a player can submit.
type Action interface {
	Tag() ActionTag
}

// Resource is a choice between gold and cards.
type Resource int

const (
	ResourceGold Resource = iota + 1
	ResourceCards
)

func (r Resource) String() string {
	switch r {
	case ResourceGold:
		return "Gold"
	case ResourceCards:
		return "Cards"
	}
	return "Unknown"
}

func (r Resource) MarshalText() ([]byte, error) { return []byte(r.String()), nil }

func (r *Resource) UnmarshalText(b []byte) error {
	switch string(b) {
	case "Gold":
		*r = ResourceGold
	case "Cards":
		*r = ResourceCards
	default:
		return fmt.Errorf("unknown resource %q", b)
	}
	return nil
}

// CityDistrictTarget names a built district in some player's city.
type CityDistrictTarget struct {
	Player     string       `json:"player"`
	District   DistrictName `json:"district"`
	Beautified bool         `json:"beautified"`
}

func (t CityDistrictTarget) CityDistrict() CityDistrict {
	return CityDistrict{Name: t.District, Beautified: t.Beautified}
}

// BuildKind selects how a Build or WizardPick pays for its district.
type BuildKind int

const (
	BuildRegular BuildKind = iota + 1
	BuildFramework
	BuildNecropolis
	BuildThievesDen
	BuildCardinal
	// BuildTake is WizardPick only: the card goes to hand instead of the city.
	BuildTake
)

var buildKindNames = map[BuildKind]string{
	BuildRegular:    "Regular",
	BuildFramework:  "Framework",
	BuildNecropolis: "Necropolis",
	BuildThievesDen: "ThievesDen",
	BuildCardinal:   "Cardinal",
	BuildTake:       "Pick",
}

func (k BuildKind) String() string {
	if s, ok := buildKindNames[k]; ok {
		return s
	}
	return "Unknown"
}

func (k BuildKind) MarshalText() ([]byte, error) { return []byte(k.String()), nil }

func (k *BuildKind) UnmarshalText(b []byte) error {
	for kind, name := range buildKindNames {
		if name == string(b) {
			*k = kind
			return nil
		}
	}
	return fmt.Errorf("unknown build method %q", b)
}

// BuildMethod describes one build. Which fields apply depends on Kind:
// Regular/Framework/Take use District, Necropolis uses Sacrifice, ThievesDen
// uses Discard, Cardinal uses District, Discard and Player.
type BuildMethod struct {
	Kind      BuildKind          `json:"tag"`
	District  DistrictName       `json:"district,omitempty"`
	Sacrifice CityDistrictTarget `json:"sacrifice,omitzero"`
	Discard   []DistrictName     `json:"discard,omitempty"`
	Player    string             `json:"player,omitempty"`
}

// MagicTarget selects the Magician's exchange.
type MagicTarget int

const (
	MagicTargetPlayer MagicTarget = iota + 1
	MagicTargetDeck
)

func (m MagicTarget) MarshalText() ([]byte, error) {
	switch m {
	case MagicTargetPlayer:
		return []byte("trade"), nil
	case MagicTargetDeck:
		return []byte("discard"), nil
	}
	return nil, fmt.Errorf("unknown magic target %d", int(m))
}

func (m *MagicTarget) UnmarshalText(b []byte) error {
	switch string(b) {
	case "trade":
		*m = MagicTargetPlayer
	case "discard":
		*m = MagicTargetDeck
	default:
		return fmt.Errorf("unknown magic target %q", b)
	}
	return nil
}

type SeerGift struct {
	Player   string       `json:"player"`
	District DistrictName `json:"district"`
}

type (
	DraftPick    struct{ Role CharacterRole `json:"role"` }
	DraftDiscard struct{ Role CharacterRole `json:"role"` }
	Theater      struct {
		Role   CharacterRole `json:"role"`
		Player string        `json:"player"`
	}
	TheaterPass struct{}

	GatherResourceGold  struct{}
	GatherResourceCards struct{}
	GatherCardsPick     struct{ District DistrictName `json:"district"` }
	Build               struct{ Method BuildMethod `json:"build"` }
	EndTurn             struct{}

	GoldFromNobility      struct{}
	GoldFromReligion      struct{}
	GoldFromTrade         struct{}
	GoldFromMilitary      struct{}
	CardsFromNobility     struct{}
	CardsFromReligion     struct{}
	ResourcesFromReligion struct {
		Gold  int `json:"gold"`
		Cards int `json:"cards"`
	}
	MerchantGainOneGold struct{}
	ArchitectGainCards  struct{}
	TakeCrown           struct{}

	Assassinate  struct{ Role CharacterRole `json:"role"` }
	Bewitch      struct{ Role CharacterRole `json:"role"` }
	SendWarrants struct {
		Signed   CharacterRole    `json:"signed"`
		Unsigned [2]CharacterRole `json:"unsigned"`
	}
	RevealWarrant struct{}

	Steal struct{ Role CharacterRole `json:"role"` }
	Spy   struct {
		Player string        `json:"player"`
		Suit   DistrictColor `json:"suit"`
	}
	SpyAcknowledge struct{}
	Blackmail      struct {
		Flowered CharacterRole `json:"flowered"`
		Unmarked CharacterRole `json:"unmarked"`
	}
	PayBribe        struct{}
	IgnoreBlackmail struct{}
	RevealBlackmail struct{}
	Pass            struct{}

	// Magic swaps hands with Player, or discards Districts and redraws as many.
	Magic struct {
		Target    MagicTarget    `json:"target"`
		Player    string         `json:"player,omitempty"`
		Districts []DistrictName `json:"districts,omitempty"`
	}
	WizardPeek     struct{ Player string `json:"player"` }
	WizardPick     struct{ Method BuildMethod `json:"method"` }
	SeerTake       struct{}
	SeerDistribute struct{ Gifts []SeerGift `json:"gifts"` }

	EmperorGiveCrown struct {
		Player   string   `json:"player"`
		Resource Resource `json:"resource"`
	}
	EmperorHeirGiveCrown struct{ Player string `json:"player"` }
	TakeFromRich         struct{ Player string `json:"player"` }
	NavigatorGain        struct{ Resource Resource `json:"resource"` }
	ScholarReveal        struct{}
	ScholarPick          struct{ District DistrictName `json:"district"` }

	WarlordDestroy struct{ Target CityDistrictTarget `json:"district"` }
	DiplomatTrade  struct {
		District CityDistrict       `json:"district"`
		Theirs   CityDistrictTarget `json:"theirs"`
	}
	MarshalSeize  struct{ Target CityDistrictTarget `json:"district"` }
	QueenGainGold struct{}
	Beautify      struct{ District CityDistrict `json:"district"` }
	CollectTaxes  struct{}

	Smithy     struct{}
	Laboratory struct{ District DistrictName `json:"district"` }
	Museum     struct{ District DistrictName `json:"district"` }
	Armory     struct{ Target CityDistrictTarget `json:"district"` }
)

func (DraftPick) Tag() ActionTag             { return TagDraftPick }
func (DraftDiscard) Tag() ActionTag          { return TagDraftDiscard }
func (Theater) Tag() ActionTag               { return TagTheater }
func (TheaterPass) Tag() ActionTag           { return TagTheaterPass }
func (GatherResourceGold) Tag() ActionTag    { return TagGatherResourceGold }
func (GatherResourceCards) Tag() ActionTag   { return TagGatherResourceCards }
func (GatherCardsPick) Tag() ActionTag       { return TagGatherCardsPick }
func (Build) Tag() ActionTag                 { return TagBuild }
func (EndTurn) Tag() ActionTag               { return TagEndTurn }
func (GoldFromNobility) Tag() ActionTag      { return TagGoldFromNobility }
func (GoldFromReligion) Tag() ActionTag      { return TagGoldFromReligion }
func (GoldFromTrade) Tag() ActionTag         { return TagGoldFromTrade }
func (GoldFromMilitary) Tag() ActionTag      { return TagGoldFromMilitary }
func (CardsFromNobility) Tag() ActionTag     { return TagCardsFromNobility }
func (CardsFromReligion) Tag() ActionTag     { return TagCardsFromReligion }
func (ResourcesFromReligion) Tag() ActionTag { return TagResourcesFromReligion }
func (MerchantGainOneGold) Tag() ActionTag   { return TagMerchantGainOneGold }
func (ArchitectGainCards) Tag() ActionTag    { return TagArchitectGainCards }
func (TakeCrown) Tag() ActionTag             { return TagTakeCrown }
func (Assassinate) Tag() ActionTag           { return TagAssassinate }
func (Bewitch) Tag() ActionTag               { return TagBewitch }
func (SendWarrants) Tag() ActionTag          { return TagSendWarrants }
func (RevealWarrant) Tag() ActionTag         { return TagRevealWarrant }
func (Steal) Tag() ActionTag                 { return TagSteal }
func (Spy) Tag() ActionTag                   { return TagSpy }
func (SpyAcknowledge) Tag() ActionTag        { return TagSpyAcknowledge }
func (Blackmail) Tag() ActionTag             { return TagBlackmail }
func (PayBribe) Tag() ActionTag              { return TagPayBribe }
func (IgnoreBlackmail) Tag() ActionTag       { return TagIgnoreBlackmail }
func (RevealBlackmail) Tag() ActionTag       { return TagRevealBlackmail }
func (Pass) Tag() ActionTag                  { return TagPass }
func (Magic) Tag() ActionTag                 { return TagMagic }
func (WizardPeek) Tag() ActionTag            { return TagWizardPeek }
func (WizardPick) Tag() ActionTag            { return TagWizardPick }
func (SeerTake) Tag() ActionTag              { return TagSeerTake }
func (SeerDistribute) Tag() ActionTag        { return TagSeerDistribute }
func (EmperorGiveCrown) Tag() ActionTag      { return TagEmperorGiveCrown }
func (EmperorHeirGiveCrown) Tag() ActionTag  { return TagEmperorHeirGiveCrown }
func (TakeFromRich) Tag() ActionTag          { return TagTakeFromRich }
func (NavigatorGain) Tag() ActionTag         { return TagNavigatorGain }
func (ScholarReveal) Tag() ActionTag         { return TagScholarReveal }
func (ScholarPick) Tag() ActionTag           { return TagScholarPick }
func (WarlordDestroy) Tag() ActionTag        { return TagWarlordDestroy }
func (DiplomatTrade) Tag() ActionTag         { return TagDiplomatTrade }
func (MarshalSeize) Tag() ActionTag          { return TagMarshalSeize }
func (QueenGainGold) Tag() ActionTag         { return TagQueenGainGold }
func (Beautify) Tag() ActionTag              { return TagBeautify }
func (CollectTaxes) Tag() ActionTag          { return TagCollectTaxes }
func (Smithy) Tag() ActionTag                { return TagSmithy }
func (Laboratory) Tag() ActionTag            { return TagLaboratory }
func (Museum) Tag() ActionTag                { return TagMuseum }
func (Armory) Tag() ActionTag                { return TagArmory }

// NewAction returns a zero value of the variant with the given tag, ready to
// be decoded into.
func NewAction(t ActionTag) (Action, bool) {
	switch t {
	case TagDraftPick:
		return &DraftPick{}, true
	case TagDraftDiscard:
		return &DraftDiscard{}, true
	case TagTheater:
		return &Theater{}, true
	case TagTheaterPass:
		return &TheaterPass{}, true
	case TagGatherResourceGold:
		return &GatherResourceGold{}, true
	case TagGatherResourceCards:
		return &GatherResourceCards{}, true
	case TagGatherCardsPick:
		return &GatherCardsPick{}, true
	case TagBuild:
		return &Build{}, true
	case TagEndTurn:
		return &EndTurn{}, true
	case TagGoldFromNobility:
		return &GoldFromNobility{}, true
	case TagGoldFromReligion:
		return &GoldFromReligion{}, true
	case TagGoldFromTrade:
		return &GoldFromTrade{}, true
	case TagGoldFromMilitary:
		return &GoldFromMilitary{}, true
	case TagCardsFromNobility:
		return &CardsFromNobility{}, true
	case TagCardsFromReligion:
		return &CardsFromReligion{}, true
	case TagResourcesFromReligion:
		return &ResourcesFromReligion{}, true
	case TagMerchantGainOneGold:
		return &MerchantGainOneGold{}, true
	case TagArchitectGainCards:
		return &ArchitectGainCards{}, true
	case TagTakeCrown:
		return &TakeCrown{}, true
	case TagAssassinate:
		return &Assassinate{}, true
	case TagBewitch:
		return &Bewitch{}, true
	case TagSendWarrants:
		return &SendWarrants{}, true
	case TagRevealWarrant:
		return &RevealWarrant{}, true
	case TagSteal:
		return &Steal{}, true
	case TagSpy:
		return &Spy{}, true
	case TagSpyAcknowledge:
		return &SpyAcknowledge{}, true
	case TagBlackmail:
		return &Blackmail{}, true
	case TagPayBribe:
		return &PayBribe{}, true
	case TagIgnoreBlackmail:
		return &IgnoreBlackmail{}, true
	case TagRevealBlackmail:
		return &RevealBlackmail{}, true
	case TagPass:
		return &Pass{}, true
	case TagMagic:
		return &Magic{}, true
	case TagWizardPeek:
		return &WizardPeek{}, true
	case TagWizardPick:
		return &WizardPick{}, true
	case TagSeerTake:
		return &SeerTake{}, true
	case TagSeerDistribute:
		return &SeerDistribute{}, true
	case TagEmperorGiveCrown:
		return &EmperorGiveCrown{}, true
	case TagEmperorHeirGiveCrown:
		return &EmperorHeirGiveCrown{}, true
	case TagTakeFromRich:
		return &TakeFromRich{}, true
	case TagNavigatorGain:
		return &NavigatorGain{}, true
	case TagScholarReveal:
		return &ScholarReveal{}, true
	case TagScholarPick:
		return &ScholarPick{}, true
	case TagWarlordDestroy:
		return &WarlordDestroy{}, true
	case TagDiplomatTrade:
		return &DiplomatTrade{}, true
	case TagMarshalSeize:
		return &MarshalSeize{}, true
	case TagQueenGainGold:
		return &QueenGainGold{}, true
	case TagBeautify:
		return &Beautify{}, true
	case TagCollectTaxes:
		return &CollectTaxes{}, true
	case TagSmithy:
		return &Smithy{}, true
	case TagLaboratory:
		return &Laboratory{}, true
	case TagMuseum:
		return &Museum{}, true
	case TagArmory:
		return &Armory{}, true
	}
	return nil, false
}
