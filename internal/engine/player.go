package engine

import "slices"

// PlayerIndex is a player's seat, fixed for the whole game.
type PlayerIndex int

// NoPlayer marks an empty role slot.
const NoPlayer PlayerIndex = -1

// CityDistrict is a built district. Beautified districts cost one more.
type CityDistrict struct {
	Name       DistrictName `json:"name"`
	Beautified bool         `json:"beautified,omitempty"`
}

func (d CityDistrict) EffectiveCost() int {
	if d.Beautified {
		return d.Name.Cost() + 1
	}
	return d.Name.Cost()
}

// Player represents a seated player.
type Player struct {
	Index PlayerIndex     `json:"index"`
	ID    string          `json:"id"`
	Name  string          `json:"name"`
	Gold  int             `json:"gold"`
	Hand  []DistrictName  `json:"hand"`
	City  []CityDistrict  `json:"city"`
	Roles []CharacterRole `json:"roles"`
}

func newPlayer(index PlayerIndex, id, name string) *Player {
	return &Player{
		Index: index,
		ID:    id,
		Name:  name,
		Gold:  2,
	}
}

// CityHas returns true if the player has built a district with this name.
func (p *Player) CityHas(name DistrictName) bool {
	return slices.ContainsFunc(p.City, func(d CityDistrict) bool { return d.Name == name })
}

// CitySize counts districts toward city completion. The Monument counts twice.
func (p *Player) CitySize() int {
	n := len(p.City)
	if p.CityHas(DistrictMonument) {
		n++
	}
	return n
}

// CityIndex finds a built district by name and beautified state.
func (p *Player) CityIndex(target CityDistrict) int {
	return slices.Index(p.City, target)
}

// CountSuitForResourceGain counts districts of the suit, with the School of
// Magic counting toward any suit.
func (p *Player) CountSuitForResourceGain(suit DistrictColor) int {
	n := 0
	for _, d := range p.City {
		if d.Name.Suit() == suit || d.Name == DistrictSchoolOfMagic {
			n++
		}
	}
	return n
}

func (p *Player) HandHas(name DistrictName) bool {
	return slices.Contains(p.Hand, name)
}

// HandHasAll reports whether every card in names can be taken from the hand,
// respecting multiplicity.
func (p *Player) HandHasAll(names []DistrictName) bool {
	hand := slices.Clone(p.Hand)
	for _, n := range names {
		i := slices.Index(hand, n)
		if i < 0 {
			return false
		}
		hand = slices.Delete(hand, i, i+1)
	}
	return true
}

// RemoveFromHand removes one copy of the named card and reports success.
func (p *Player) RemoveFromHand(name DistrictName) bool {
	i := slices.Index(p.Hand, name)
	if i < 0 {
		return false
	}
	p.Hand = slices.Delete(p.Hand, i, i+1)
	return true
}

func (p *Player) HasRole(r CharacterRole) bool {
	return slices.Contains(p.Roles, r)
}

func (p *Player) cleanupRound() {
	p.Roles = nil
}
