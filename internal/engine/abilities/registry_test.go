package abilities_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"citadels-engine/internal/engine"
	"citadels-engine/internal/engine/abilities"
)

func TestEveryActionHasAHandler(t *testing.T) {
	r := abilities.NewRegistry()
	for _, tag := range engine.AllActionTags() {
		h, err := r.Get(tag)
		require.NoError(t, err, tag.String())
		assert.Equal(t, tag, h.Tag())
	}
}

func TestEveryRoleActionIsRegistered(t *testing.T) {
	r := abilities.NewRegistry()
	for _, role := range engine.AllRoles() {
		for _, ac := range role.Actions() {
			_, err := r.Get(ac.Tag)
			assert.NoError(t, err, "%s: %s", role, ac.Tag)
		}
	}
}

func TestCoreRegistryLacksRoleAbilities(t *testing.T) {
	r := engine.NewAbilityRegistry()
	_, err := r.Get(engine.TagAssassinate)
	assert.Error(t, err)
	_, err = r.Get(engine.TagBuild)
	assert.NoError(t, err)
}

func TestHandlersAcceptPointers(t *testing.T) {
	lobby := engine.Lobby{
		Config: engine.DefaultConfig(),
		Players: []engine.LobbyPlayer{
			{ID: "a", Name: "Ann"},
			{ID: "b", Name: "Bob"},
		},
	}
	g, err := engine.Start(lobby, 5, abilities.NewRegistry())
	require.NoError(t, err)
	d, err := g.Draft()
	require.NoError(t, err)
	p, err := g.ActivePlayer()
	require.NoError(t, err)

	require.NoError(t, g.Perform(&engine.DraftPick{Role: d.Remaining[0]}, p.ID))
	assert.Len(t, p.Roles, 1)
}

func TestHandleAcceptsValuesAndPointers(t *testing.T) {
	var got []engine.CharacterRole
	h := engine.Handle(func(_ *engine.Game, a engine.DraftPick) (engine.ActionOutput, error) {
		got = append(got, a.Role)
		return engine.ActionOutput{}, nil
	})
	assert.Equal(t, engine.TagDraftPick, h.Tag())

	_, err := h.Apply(nil, engine.DraftPick{Role: engine.RoleKing})
	require.NoError(t, err)
	_, err = h.Apply(nil, &engine.DraftPick{Role: engine.RoleThief})
	require.NoError(t, err)
	assert.Equal(t, []engine.CharacterRole{engine.RoleKing, engine.RoleThief}, got)

	_, err = h.Apply(nil, (*engine.DraftPick)(nil))
	assert.ErrorIs(t, err, engine.ErrIllegalAction)
	_, err = h.Apply(nil, engine.EndTurn{})
	assert.ErrorIs(t, err, engine.ErrIllegalAction)
	assert.Len(t, got, 2)
}
