package store_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"citadels-engine/internal/engine"
	"citadels-engine/internal/engine/abilities"
	"citadels-engine/internal/store"
)

func openTemp(t *testing.T) *store.Store {
	t.Helper()
	s, err := store.Open(context.Background(), filepath.Join(t.TempDir(), "citadels.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func testLobby() engine.Lobby {
	return engine.Lobby{
		Config: engine.DefaultConfig(),
		Players: []engine.LobbyPlayer{
			{ID: "a", Name: "Ann"},
			{ID: "b", Name: "Bob"},
			{ID: "c", Name: "Cid"},
		},
	}
}

// playDraft performs n draft picks and returns what was submitted.
func playDraft(t *testing.T, g *engine.Game, n int) []engine.Submission {
	t.Helper()
	var subs []engine.Submission
	for range n {
		d, err := g.Draft()
		require.NoError(t, err)
		p, err := g.ActivePlayer()
		require.NoError(t, err)
		sub := engine.Submission{ActorID: p.ID, Action: engine.DraftPick{Role: d.Remaining[0]}}
		require.NoError(t, g.Perform(sub.Action, sub.ActorID))
		subs = append(subs, sub)
	}
	return subs
}

func TestOpenIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "citadels.db")
	s, err := store.Open(context.Background(), path)
	require.NoError(t, err)
	require.NoError(t, s.Close())

	s, err = store.Open(context.Background(), path)
	require.NoError(t, err)
	require.NoError(t, s.Close())
}

func TestOpenRequiresPath(t *testing.T) {
	_, err := store.Open(context.Background(), " ")
	assert.Error(t, err)
}

func TestRestoreReplaysLog(t *testing.T) {
	ctx := context.Background()
	s := openTemp(t)
	reg := abilities.NewRegistry()

	lobby := testLobby()
	g, err := engine.Start(lobby, 42, reg)
	require.NoError(t, err)
	require.NoError(t, s.CreateGame(ctx, store.GameRecord{ID: "g1", Seed: 42, Lobby: lobby}))

	for i, sub := range playDraft(t, g, 2) {
		require.NoError(t, s.AppendAction(ctx, "g1", i, sub))
	}

	restored, n, err := s.Restore(ctx, "g1", reg)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Equal(t, g.PublicView(), restored.PublicView())
	assert.Equal(t, g.ViewFor("a"), restored.ViewFor("a"))
}

func TestSeedKeepsHighBit(t *testing.T) {
	ctx := context.Background()
	s := openTemp(t)
	seed := uint64(1<<63 | 7)
	require.NoError(t, s.CreateGame(ctx, store.GameRecord{ID: "g1", Seed: seed, Lobby: testLobby()}))

	rec, subs, err := s.LoadGame(ctx, "g1")
	require.NoError(t, err)
	assert.Equal(t, seed, rec.Seed)
	assert.Empty(t, subs)
	assert.Len(t, rec.Lobby.Players, 3)
}

func TestLoadGameNotFound(t *testing.T) {
	_, _, err := openTemp(t).LoadGame(context.Background(), "nope")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestAppendActionRejectsDuplicatesAndUnknownGames(t *testing.T) {
	ctx := context.Background()
	s := openTemp(t)
	require.NoError(t, s.CreateGame(ctx, store.GameRecord{ID: "g1", Seed: 1, Lobby: testLobby()}))

	sub := engine.Submission{ActorID: "a", Action: engine.EndTurn{}}
	require.NoError(t, s.AppendAction(ctx, "g1", 0, sub))
	assert.Error(t, s.AppendAction(ctx, "g1", 0, sub))
	assert.Error(t, s.AppendAction(ctx, "missing", 0, sub))
}

func TestListGames(t *testing.T) {
	ctx := context.Background()
	s := openTemp(t)
	older := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	require.NoError(t, s.CreateGame(ctx, store.GameRecord{ID: "old", Seed: 1, Lobby: testLobby(), CreatedAt: older}))
	require.NoError(t, s.CreateGame(ctx, store.GameRecord{ID: "new", Seed: 2, Lobby: testLobby(), CreatedAt: older.Add(time.Hour)}))
	require.NoError(t, s.AppendAction(ctx, "old", 0, engine.Submission{ActorID: "a", Action: engine.EndTurn{}}))

	games, err := s.ListGames(ctx)
	require.NoError(t, err)
	require.Len(t, games, 2)
	assert.Equal(t, "new", games[0].ID)
	assert.Equal(t, 0, games[0].Actions)
	assert.Equal(t, "old", games[1].ID)
	assert.Equal(t, 1, games[1].Actions)
	assert.Equal(t, 3, games[1].Players)
	assert.True(t, games[1].CreatedAt.Equal(older))
}

func TestCanceledContext(t *testing.T) {
	s := openTemp(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, s.CreateGame(ctx, store.GameRecord{ID: "g1", Lobby: testLobby()}), context.Canceled)
	_, err := s.ListGames(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}
