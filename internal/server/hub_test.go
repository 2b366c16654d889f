package server

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"citadels-engine/internal/config"
	"citadels-engine/internal/engine"
	"citadels-engine/internal/lobby"
	"citadels-engine/internal/protocol"
)

func startedLobby(t *testing.T, id string) (*lobby.Lobby, engine.Lobby) {
	t.Helper()
	lob := lobby.NewLobby(id, engine.DefaultConfig())
	require.NoError(t, lob.Join("a", "Ann"))
	require.NoError(t, lob.Join("b", "Bob"))
	lob.SetReady("a", true)
	lob.SetReady("b", true)
	el, err := lob.Start()
	require.NoError(t, err)
	return lob, el
}

func TestFinishedGameLeavesServer(t *testing.T) {
	s := New(config.Config{Port: 8080, QRSize: 64, LogLevel: "info"}, zap.NewNop(), nil, engine.DefaultConfig())
	t.Cleanup(s.Close)

	lob, el := startedLobby(t, "g1")
	g, err := engine.Start(el, 1, s.abilities)
	require.NoError(t, err)
	g.Turn = engine.GameOver{}

	h := NewHub(HubConfig{GameID: "g1", Lobby: lob, Abilities: s.abilities, Logger: zap.NewNop(), OnFinish: s.evict})
	h.resume(g, 0)
	s.mu.Lock()
	s.hubs["g1"] = h
	s.mu.Unlock()
	go h.Run()

	c := &Client{hub: h, send: make(chan []byte, 16), log: zap.NewNop(), PlayerID: "a", Type: ClientPlayer}
	require.True(t, h.Register(c))

	raw, err := protocol.EncodeAction(engine.EndTurn{})
	require.NoError(t, err)
	h.incoming <- IncomingMessage{Client: c, Envelope: protocol.Envelope{Type: protocol.MsgAction, Payload: raw}}

	select {
	case <-h.done:
	case <-time.After(5 * time.Second):
		t.Fatal("hub still running after the game ended")
	}

	s.mu.Lock()
	_, ok := s.hubs["g1"]
	s.mu.Unlock()
	assert.False(t, ok)
	assert.False(t, h.Register(c))

	var queued int
	for range c.send {
		queued++
	}
	assert.Positive(t, queued, "final state is flushed before the channel closes")
}

func TestCloseStopsHubs(t *testing.T) {
	s := New(config.Config{Port: 8080, QRSize: 64, LogLevel: "info"}, zap.NewNop(), nil, engine.DefaultConfig())
	lob, _ := startedLobby(t, "g1")
	h := s.newHub("g1", lob)

	s.Close()
	select {
	case <-h.done:
	default:
		t.Fatal("hub still running after Close")
	}
}
