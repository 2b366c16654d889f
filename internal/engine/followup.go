package engine

// Followup is a pending sub-decision that must be resolved before the turn
// moves on. At most one is pending at a time.
type Followup interface {
	// Actions lists the tags that resolve the followup.
	Actions() []ActionTag
}

// FollowupBewitch: the Witch picks a role to bewitch after gathering.
type FollowupBewitch struct{}

type FollowupGatherCardsPick struct {
	Revealed []DistrictName `json:"revealed"`
}

type FollowupScholarPick struct {
	Revealed []DistrictName `json:"revealed"`
}

// FollowupWizardPick: the Wizard has peeked at Player's hand.
type FollowupWizardPick struct {
	Player PlayerIndex `json:"player"`
}

// FollowupSeerDistribute lists the players the Seer took a card from, each
// of whom is owed one card back.
type FollowupSeerDistribute struct {
	Players []PlayerIndex `json:"players"`
}

type FollowupSpyAcknowledge struct {
	Player   string         `json:"player"`
	Revealed []DistrictName `json:"revealed"`
}

// FollowupWarrant holds a first build under warrant, awaiting the Magistrate.
type FollowupWarrant struct {
	Signed     bool         `json:"-"`
	Magistrate PlayerIndex  `json:"magistrate"`
	Gold       int          `json:"gold"`
	District   DistrictName `json:"district"`
}

// FollowupBlackmail: the target ignored the threat; the Blackmailer may reveal.
type FollowupBlackmail struct {
	Blackmailer PlayerIndex `json:"blackmailer"`
}

// FollowupHandleBlackmail: the blackmailed player pays or ignores.
type FollowupHandleBlackmail struct{}

func (FollowupBewitch) Actions() []ActionTag         { return []ActionTag{TagBewitch} }
func (FollowupGatherCardsPick) Actions() []ActionTag { return []ActionTag{TagGatherCardsPick} }
func (FollowupScholarPick) Actions() []ActionTag     { return []ActionTag{TagScholarPick} }
func (FollowupWizardPick) Actions() []ActionTag      { return []ActionTag{TagWizardPick} }
func (FollowupSeerDistribute) Actions() []ActionTag  { return []ActionTag{TagSeerDistribute} }
func (FollowupSpyAcknowledge) Actions() []ActionTag  { return []ActionTag{TagSpyAcknowledge} }
func (FollowupBlackmail) Actions() []ActionTag {
	return []ActionTag{TagRevealBlackmail, TagPass}
}
func (FollowupHandleBlackmail) Actions() []ActionTag {
	return []ActionTag{TagPayBribe, TagIgnoreBlackmail}
}

func (f FollowupWarrant) Actions() []ActionTag {
	if f.Signed {
		return []ActionTag{TagRevealWarrant, TagPass}
	}
	return []ActionTag{TagPass}
}
