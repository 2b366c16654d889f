package engine_test

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"citadels-engine/internal/engine"
	"citadels-engine/internal/engine/abilities"
)

func TestTheaterSwapsRoles(t *testing.T) {
	g := newTestGame(t, 3)
	holder, other := g.Players[1], g.Players[2]
	holder.City = city(engine.DistrictTheater)

	d, err := g.Draft()
	require.NoError(t, err)
	for range 6 {
		perform(t, g, g.Players[d.Player], engine.DraftPick{Role: d.Remaining[0]})
	}
	require.True(t, d.TheaterStep)
	require.Equal(t, holder.Index, d.Player)
	assert.Equal(t, []engine.ActionTag{engine.TagTheater, engine.TagTheaterPass}, g.AllowedFor(holder.ID))

	given := holder.Roles[0]
	err = g.Perform(engine.Theater{Role: given, Player: holder.Name}, holder.ID)
	require.ErrorIs(t, err, engine.ErrIllegalAction)
	err = g.Perform(engine.Theater{Role: other.Roles[0], Player: other.Name}, holder.ID)
	require.ErrorIs(t, err, engine.ErrIllegalAction)

	before := slices.Clone(other.Roles)
	perform(t, g, holder, engine.Theater{Role: given, Player: other.Name})

	assert.Len(t, holder.Roles, 2)
	assert.Len(t, other.Roles, 2)
	assert.NotContains(t, holder.Roles, given)
	assert.Contains(t, other.Roles, given)

	i := slices.IndexFunc(holder.Roles, func(r engine.CharacterRole) bool { return slices.Contains(before, r) })
	require.GreaterOrEqual(t, i, 0, "holder did not receive one of %v", before)
	taken := holder.Roles[i]
	assert.NotContains(t, other.Roles, taken)

	assert.Equal(t, other.Index, g.Characters.Get(given).Player)
	assert.Equal(t, holder.Index, g.Characters.Get(taken).Player)
	assert.Equal(t, engine.PhaseCall, g.Turn.Phase())
}

func TestThreePlayerDraftDropsRandomRole(t *testing.T) {
	g := newTestGame(t, 3)
	d, err := g.Draft()
	require.NoError(t, err)
	require.Len(t, d.Remaining, 8)

	for range 3 {
		perform(t, g, g.Players[d.Player], engine.DraftPick{Role: d.Remaining[0]})
	}
	// nine roles: three drafted, one face down, one dropped, four left
	assert.Len(t, d.Remaining, 4)

	for range 3 {
		perform(t, g, g.Players[d.Player], engine.DraftPick{Role: d.Remaining[0]})
	}
	assert.Len(t, d.Remaining, 1)
	for _, p := range g.Players {
		assert.Len(t, p.Roles, 2, p.Name)
	}
}

func TestEightPlayerDraftRevealsHiddenRole(t *testing.T) {
	g, err := engine.Start(newLobby(8, engine.DefaultConfig()), 3, abilities.NewRegistry())
	require.NoError(t, err)
	d, err := g.Draft()
	require.NoError(t, err)
	require.Empty(t, d.FaceupDiscard)
	hidden := d.InitialDiscard
	require.NotEqual(t, engine.RoleNone, hidden)
	require.NotContains(t, d.Remaining, hidden)

	for range 7 {
		perform(t, g, g.Players[d.Player], engine.DraftPick{Role: d.Remaining[0]})
	}
	last := g.Players[d.Player]
	assert.Empty(t, last.Roles)
	assert.Len(t, d.Remaining, 2)
	assert.Contains(t, d.Remaining, hidden)
	assert.Equal(t, engine.RoleNone, d.InitialDiscard)

	perform(t, g, last, engine.DraftPick{Role: hidden})
	assert.Equal(t, []engine.CharacterRole{hidden}, last.Roles)
	assert.Equal(t, engine.PhaseCall, g.Turn.Phase())
}

func TestSmithy(t *testing.T) {
	g := newTestGame(t, 3)
	clearMarkers(g)
	p := turnFor(t, g, engine.RoleMerchant, 0)
	p.City = city(engine.DistrictSmithy)
	p.Hand = nil
	p.Gold = 1
	deck := g.Deck.Size()

	require.Contains(t, g.AllowedFor(p.ID), engine.TagSmithy)
	err := g.Perform(engine.Smithy{}, p.ID)
	require.ErrorIs(t, err, engine.ErrIllegalAction)

	p.Gold = 2
	perform(t, g, p, engine.Smithy{})
	assert.Equal(t, 0, p.Gold)
	assert.Len(t, p.Hand, 3)
	assert.Equal(t, deck-3, g.Deck.Size())
	assert.NotContains(t, g.AllowedFor(p.ID), engine.TagSmithy)
}

func TestLaboratory(t *testing.T) {
	g := newTestGame(t, 3)
	clearMarkers(g)
	p := turnFor(t, g, engine.RoleMerchant, 0)
	p.City = city(engine.DistrictLaboratory)
	p.Hand = []engine.DistrictName{engine.DistrictTemple}
	p.Gold = 0
	deck := g.Deck.Size()

	err := g.Perform(engine.Laboratory{District: engine.DistrictPalace}, p.ID)
	require.ErrorIs(t, err, engine.ErrIllegalAction)

	perform(t, g, p, engine.Laboratory{District: engine.DistrictTemple})
	assert.Equal(t, 2, p.Gold)
	assert.Empty(t, p.Hand)
	assert.Equal(t, deck+1, g.Deck.Size())
	assert.NotContains(t, g.AllowedFor(p.ID), engine.TagLaboratory)
}

func TestMuseumTucksCard(t *testing.T) {
	g := newTestGame(t, 3)
	clearMarkers(g)
	p := turnFor(t, g, engine.RoleMerchant, 0)
	p.City = city(engine.DistrictMuseum)
	p.Hand = []engine.DistrictName{engine.DistrictTemple, engine.DistrictChurch}

	perform(t, g, p, engine.Museum{District: engine.DistrictTemple})
	assert.Equal(t, []engine.DistrictName{engine.DistrictTemple}, g.Museum)
	assert.Equal(t, []engine.DistrictName{engine.DistrictChurch}, p.Hand)
	assert.Equal(t, 1, g.CalculateScores()[p.Index].SpecialBonus)
}

func TestArmoryDestroysDistrict(t *testing.T) {
	g := newTestGame(t, 3)
	clearMarkers(g)
	target, complete := g.Players[1], g.Players[2]
	target.City = city(engine.DistrictTemple, engine.DistrictKeep)
	complete.City = city(engine.DistrictTemple, engine.DistrictChurch, engine.DistrictWatchtower,
		engine.DistrictPrison, engine.DistrictManor, engine.DistrictCastle, engine.DistrictTavern, engine.DistrictMarket)
	require.Equal(t, g.CompleteCitySize(), complete.CitySize())

	p := turnFor(t, g, engine.RoleMerchant, 0)
	p.City = city(engine.DistrictArmory)
	deck := g.Deck.Size()

	tests := []struct {
		name   string
		target engine.CityDistrictTarget
	}{
		{"keep", engine.CityDistrictTarget{Player: target.Name, District: engine.DistrictKeep}},
		{"itself", engine.CityDistrictTarget{Player: p.Name, District: engine.DistrictArmory}},
		{"completed city", engine.CityDistrictTarget{Player: complete.Name, District: engine.DistrictTemple}},
		{"not built", engine.CityDistrictTarget{Player: target.Name, District: engine.DistrictPalace}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := g.Perform(engine.Armory{Target: tt.target}, p.ID)
			assert.ErrorIs(t, err, engine.ErrIllegalAction)
		})
	}
	require.Len(t, target.City, 2)

	perform(t, g, p, engine.Armory{Target: engine.CityDistrictTarget{Player: target.Name, District: engine.DistrictTemple}})
	assert.Equal(t, city(engine.DistrictKeep), target.City)
	assert.Empty(t, p.City)
	assert.Equal(t, deck+2, g.Deck.Size())
	assert.NotContains(t, g.AllowedFor(p.ID), engine.TagArmory)
}

func TestDestroyedMuseumReleasesTuckedCards(t *testing.T) {
	g := newTestGame(t, 3)
	clearMarkers(g)
	owner := g.Players[1]
	owner.City = city(engine.DistrictMuseum, engine.DistrictTemple)
	g.Museum = []engine.DistrictName{engine.DistrictPalace, engine.DistrictCastle}

	p := turnFor(t, g, engine.RoleMerchant, 0)
	p.City = city(engine.DistrictArmory)
	deck := g.Deck.Size()

	perform(t, g, p, engine.Armory{Target: engine.CityDistrictTarget{Player: owner.Name, District: engine.DistrictMuseum}})
	assert.Empty(t, g.Museum)
	assert.Equal(t, city(engine.DistrictTemple), owner.City)
	// armory, museum and both tucked cards
	assert.Equal(t, deck+4, g.Deck.Size())
	assert.Equal(t, 0, g.CalculateScores()[owner.Index].SpecialBonus)
}

func TestBuildWithFramework(t *testing.T) {
	g := newTestGame(t, 3)
	clearMarkers(g)
	p := turnFor(t, g, engine.RoleMerchant, 0)
	p.City = nil
	p.Hand = []engine.DistrictName{engine.DistrictPalace}
	p.Gold = 0
	framework := engine.Build{Method: engine.BuildMethod{Kind: engine.BuildFramework, District: engine.DistrictPalace}}

	perform(t, g, p, engine.GatherResourceGold{})
	err := g.Perform(framework, p.ID)
	require.ErrorIs(t, err, engine.ErrIllegalAction)

	p.City = city(engine.DistrictFramework)
	deck := g.Deck.Size()
	perform(t, g, p, framework)
	assert.Equal(t, city(engine.DistrictPalace), p.City)
	assert.Equal(t, 2, p.Gold)
	assert.Empty(t, p.Hand)
	assert.Equal(t, deck+1, g.Deck.Size())
}

func TestMonument(t *testing.T) {
	g := newTestGame(t, 4)
	clearMarkers(g)
	p := turnFor(t, g, engine.RoleArchitect, 0)
	p.City = city(engine.DistrictTemple, engine.DistrictChurch, engine.DistrictWatchtower,
		engine.DistrictManor, engine.DistrictCastle)
	p.Hand = []engine.DistrictName{engine.DistrictMonument, engine.DistrictMarket}
	p.Gold = 10
	require.Equal(t, 7, g.CompleteCitySize())

	perform(t, g, p, engine.GatherResourceGold{})
	monument := engine.Build{Method: engine.BuildMethod{Kind: engine.BuildRegular, District: engine.DistrictMonument}}
	err := g.Perform(monument, p.ID)
	require.ErrorIs(t, err, engine.ErrIllegalAction)

	p.City = p.City[:4]
	perform(t, g, p, monument)
	assert.Equal(t, 6, p.CitySize())
	assert.Equal(t, engine.NoPlayer, g.FirstToComplete)

	perform(t, g, p, engine.Build{Method: engine.BuildMethod{Kind: engine.BuildRegular, District: engine.DistrictMarket}})
	assert.Len(t, p.City, 6)
	assert.Equal(t, 7, p.CitySize())
	assert.Equal(t, p.Index, g.FirstToComplete)
}

func TestPoorHouseAndParkAtEndOfTurn(t *testing.T) {
	g := newTestGame(t, 3)
	clearMarkers(g)
	p := turnFor(t, g, engine.RoleMerchant, 0)
	p.City = city(engine.DistrictPoorHouse, engine.DistrictPark)

	perform(t, g, p, engine.GatherResourceGold{})
	p.Gold = 0
	p.Hand = nil
	perform(t, g, p, engine.EndTurn{})

	assert.Equal(t, 1, p.Gold)
	assert.Len(t, p.Hand, 2)
}

func TestPoorHouseAndParkSkipTheWitch(t *testing.T) {
	g := newTestGame(t, 3, engine.RoleWitch)
	clearMarkers(g)
	victim := occupy(t, g, engine.RoleMerchant, 1)
	witch := turnFor(t, g, engine.RoleWitch, 0)
	witch.City = city(engine.DistrictPoorHouse, engine.DistrictPark)

	perform(t, g, witch, engine.GatherResourceGold{})
	witch.Gold = 0
	witch.Hand = nil
	perform(t, g, witch, engine.Bewitch{Role: engine.RoleMerchant})

	active, err := g.ActivePlayer()
	require.NoError(t, err)
	require.Equal(t, victim.ID, active.ID)
	assert.Equal(t, 0, witch.Gold)
	assert.Empty(t, witch.Hand)
}
