package cmd

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"citadels-engine/internal/engine"
	"citadels-engine/internal/store"
)

func run(t *testing.T, args ...string) string {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	require.NoError(t, rootCmd.Execute())
	return out.String()
}

func TestVersion(t *testing.T) {
	assert.Contains(t, run(t, "version"), "citadels version dev")
}

func TestReplay(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "citadels.db")
	st, err := store.Open(ctx, path)
	require.NoError(t, err)
	lobby := engine.Lobby{
		Config: engine.DefaultConfig(),
		Players: []engine.LobbyPlayer{
			{ID: "a", Name: "Ann"},
			{ID: "b", Name: "Bob"},
		},
	}
	require.NoError(t, st.CreateGame(ctx, store.GameRecord{ID: "g1", Seed: 3, Lobby: lobby}))
	require.NoError(t, st.Close())

	list := run(t, "replay", "--db", path)
	assert.Contains(t, list, "g1")
	assert.Contains(t, list, "2 players")

	out := run(t, "replay", "--db", path, "g1")
	assert.Contains(t, out, "Replayed 0 actions.")
	assert.Contains(t, out, "Round 1, Draft")
	assert.Contains(t, out, "Ann")
	assert.Contains(t, out, "Bob")
}
