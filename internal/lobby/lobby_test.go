package lobby_test

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"citadels-engine/internal/engine"
	"citadels-engine/internal/lobby"
)

func TestJoinAndStart(t *testing.T) {
	l := lobby.NewLobby("g1", engine.DefaultConfig())
	require.NoError(t, l.Join("a", "Ann"))
	require.NoError(t, l.Join("b", "Bob"))
	assert.False(t, l.CanStart())

	l.SetReady("a", true)
	l.SetReady("b", true)
	require.True(t, l.CanStart())

	el, err := l.Start()
	require.NoError(t, err)
	assert.Equal(t, []engine.LobbyPlayer{{ID: "a", Name: "Ann"}, {ID: "b", Name: "Bob"}}, el.Players)
	assert.True(t, l.IsStarted())

	_, err = l.Start()
	assert.ErrorIs(t, err, lobby.ErrStarted)
	assert.ErrorIs(t, l.Join("c", "Cid"), lobby.ErrStarted)
}

func TestStartNeedsReadyPlayers(t *testing.T) {
	l := lobby.NewLobby("g1", engine.DefaultConfig())
	require.NoError(t, l.Join("a", "Ann"))
	l.SetReady("a", true)

	_, err := l.Start()
	assert.ErrorIs(t, err, lobby.ErrNotReady)
	assert.False(t, l.IsStarted())
}

func TestJoinRejectsDuplicateNamesAndRenames(t *testing.T) {
	l := lobby.NewLobby("g1", engine.DefaultConfig())
	require.NoError(t, l.Join("a", "Ann"))
	assert.Error(t, l.Join("b", "Ann"))
	assert.Error(t, l.Join("b", "  "))

	require.NoError(t, l.Join("a", "Annie"))
	players := l.GetPlayers()
	require.Len(t, players, 1)
	assert.Equal(t, "Annie", players[0].Name)
}

func TestLobbyHoldsEightPlayers(t *testing.T) {
	l := lobby.NewLobby("g1", engine.DefaultConfig())
	for i := range engine.MaxPlayers {
		require.NoError(t, l.Join(fmt.Sprint(i), fmt.Sprintf("P%d", i)))
	}
	assert.ErrorIs(t, l.Join("late", "Late"), lobby.ErrFull)

	l.Leave("0")
	assert.NoError(t, l.Join("late", "Late"))
}

func TestConfigureValidates(t *testing.T) {
	l := lobby.NewLobby("g1", engine.DefaultConfig())
	bad := engine.DefaultConfig()
	bad.Roles = []engine.CharacterRole{engine.RoleKing}
	assert.Error(t, l.Configure(bad))

	require.NoError(t, l.Configure(engine.BaseSetConfig()))
	assert.Equal(t, engine.BaseSetConfig().Roles, l.Snapshot().Config.Roles)
}

func TestManagerCopiesDefaults(t *testing.T) {
	defaults := engine.BaseSetConfig()
	m := lobby.NewManager(defaults)
	a := m.Get(m.Create())
	b := m.Get(m.Create())
	require.NotNil(t, a)
	require.NotNil(t, b)
	assert.NotEqual(t, a.ID, b.ID)

	a.Config.Roles[0] = engine.RoleWitch
	assert.Equal(t, engine.RoleAssassin, b.Config.Roles[0])
	assert.Equal(t, engine.RoleAssassin, defaults.Roles[0])

	m.Remove(a.ID)
	assert.Nil(t, m.Get(a.ID))
}

func TestReadPreset(t *testing.T) {
	cfg, err := lobby.ReadPreset(strings.NewReader(`
roles: [Witch, Spy, Seer, Emperor, Abbot, Alchemist, Navigator, Diplomat, Queen]
role_anarchy: true
districts:
  Library: Always
  SecretVault: Never
`))
	require.NoError(t, err)
	assert.True(t, cfg.RoleAnarchy)
	assert.Len(t, cfg.Roles, 9)
	assert.Equal(t, engine.RoleWitch, cfg.Roles[0])
	assert.Equal(t, engine.DistrictAlways, cfg.Districts[engine.DistrictLibrary])
	assert.Equal(t, engine.DistrictNever, cfg.Districts[engine.DistrictSecretVault])
}

func TestReadPresetDefaultsToAllRoles(t *testing.T) {
	cfg, err := lobby.ReadPreset(strings.NewReader(""))
	require.NoError(t, err)
	assert.Equal(t, engine.AllRoles(), cfg.Roles)
}

func TestReadPresetErrors(t *testing.T) {
	tests := map[string]string{
		"unknown role":     "roles: [Jester]",
		"missing rank":     "roles: [King]",
		"unknown district": "districts: {Castle9: Always}",
		"normal district":  "districts: {Temple: Always}",
		"bad option":       "districts: {Library: Often}",
		"not yaml":         "roles: [",
	}
	for name, in := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := lobby.ReadPreset(strings.NewReader(in))
			assert.Error(t, err)
		})
	}
}

func TestLoadPreset(t *testing.T) {
	path := filepath.Join(t.TempDir(), "preset.yaml")
	require.NoError(t, os.WriteFile(path, []byte("districts: {Museum: Always}\n"), 0o600))

	cfg, err := lobby.LoadPreset(path)
	require.NoError(t, err)
	assert.Equal(t, engine.DistrictAlways, cfg.Districts[engine.DistrictMuseum])

	_, err = lobby.LoadPreset(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
