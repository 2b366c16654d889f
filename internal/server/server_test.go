package server_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"citadels-engine/internal/config"
	"citadels-engine/internal/engine"
	"citadels-engine/internal/protocol"
	"citadels-engine/internal/server"
	"citadels-engine/internal/store"
)

func testConfig() config.Config {
	return config.Config{Port: 8080, QRSize: 128, LogLevel: "info", BaseURL: "http://tv.local"}
}

func newTestServer(t *testing.T, st *store.Store) *httptest.Server {
	t.Helper()
	s := server.New(testConfig(), zap.NewNop(), st, engine.DefaultConfig())
	ts := httptest.NewServer(s.Handler())
	t.Cleanup(func() {
		ts.Close()
		s.Close()
	})
	return ts
}

func createGame(t *testing.T, ts *httptest.Server) server.CreatedGame {
	t.Helper()
	resp, err := http.Post(ts.URL+"/api/games", "application/json", nil)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var created server.CreatedGame
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&created))
	return created
}

func dial(t *testing.T, ts *httptest.Server, gameID, playerID string) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws?game=" + gameID + "&player=" + playerID
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}

func send(t *testing.T, conn *websocket.Conn, typ string, payload any) {
	t.Helper()
	require.NoError(t, conn.WriteJSON(protocol.MustEnvelope(typ, payload)))
}

// readUntil skips messages until one of type typ satisfies match.
func readUntil(t *testing.T, conn *websocket.Conn, typ string, match func(protocol.Envelope) bool) protocol.Envelope {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
	for {
		var env protocol.Envelope
		require.NoError(t, conn.ReadJSON(&env))
		if env.Type == typ && (match == nil || match(env)) {
			return env
		}
	}
}

func lobbySize(n int) func(protocol.Envelope) bool {
	return func(env protocol.Envelope) bool {
		var lu protocol.LobbyUpdate
		return env.Decode(&lu) == nil && len(lu.Players) == n
	}
}

type turnView struct {
	IsMyTurn     bool                   `json:"is_my_turn"`
	DraftChoices []engine.CharacterRole `json:"draft_choices"`
}

func TestPlayerID(t *testing.T) {
	ts := newTestServer(t, nil)
	resp, err := http.Get(ts.URL + "/api/player-id")
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	_, err = uuid.Parse(string(body))
	assert.NoError(t, err)
}

func TestCreateGameAndQR(t *testing.T) {
	ts := newTestServer(t, nil)
	created := createGame(t, ts)
	assert.NotEmpty(t, created.GameID)
	assert.Equal(t, "http://tv.local/lobby.html?game="+created.GameID, created.JoinURL)

	resp, err := http.Get(ts.URL + "/api/qr?game=" + created.GameID)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "image/png", resp.Header.Get("Content-Type"))

	resp2, err := http.Get(ts.URL + "/api/qr")
	require.NoError(t, err)
	resp2.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp2.StatusCode)
}

func TestUnknownGame(t *testing.T) {
	ts := newTestServer(t, nil)
	resp, err := http.Get(ts.URL + "/api/games/nope")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, err = http.Get(ts.URL + "/ws?game=nope")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestPlayFirstPickAndRestore(t *testing.T) {
	ctx := context.Background()
	st, err := store.Open(ctx, filepath.Join(t.TempDir(), "citadels.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	ts := newTestServer(t, st)
	gameID := createGame(t, ts).GameID

	ann := dial(t, ts, gameID, "a")
	send(t, ann, protocol.MsgJoin, protocol.JoinMsg{PlayerID: "a", Name: "Ann"})
	readUntil(t, ann, protocol.MsgLobbyUpdate, lobbySize(1))

	bob := dial(t, ts, gameID, "b")
	send(t, bob, protocol.MsgJoin, protocol.JoinMsg{PlayerID: "b", Name: "Bob"})
	readUntil(t, bob, protocol.MsgLobbyUpdate, lobbySize(2))

	send(t, ann, protocol.MsgStartGame, struct{}{})
	env := readUntil(t, ann, protocol.MsgError, nil)
	var e protocol.ErrorMsg
	require.NoError(t, env.Decode(&e))
	assert.Equal(t, "not all players ready", e.Message)

	send(t, ann, protocol.MsgReady, protocol.ReadyMsg{Ready: true})
	send(t, bob, protocol.MsgReady, protocol.ReadyMsg{Ready: true})
	readUntil(t, ann, protocol.MsgLobbyUpdate, func(env protocol.Envelope) bool {
		var lu protocol.LobbyUpdate
		return env.Decode(&lu) == nil && len(lu.Players) == 2 && lu.Players[0].Ready && lu.Players[1].Ready
	})
	send(t, ann, protocol.MsgStartGame, struct{}{})

	views := map[*websocket.Conn]turnView{}
	for _, conn := range []*websocket.Conn{ann, bob} {
		env := readUntil(t, conn, protocol.MsgPlayerState, nil)
		var v turnView
		require.NoError(t, env.Decode(&v))
		views[conn] = v
		readUntil(t, conn, protocol.MsgAllowed, nil)
	}

	var active *websocket.Conn
	for conn, v := range views {
		if v.IsMyTurn {
			active = conn
		}
	}
	require.NotNil(t, active)
	require.NotEmpty(t, views[active].DraftChoices)

	raw, err := protocol.EncodeAction(engine.DraftPick{Role: views[active].DraftChoices[0]})
	require.NoError(t, err)
	require.NoError(t, active.WriteJSON(protocol.Envelope{Type: protocol.MsgAction, Payload: raw}))
	readUntil(t, active, protocol.MsgPlayerState, func(env protocol.Envelope) bool {
		var v turnView
		return env.Decode(&v) == nil && !v.IsMyTurn
	})

	_, subs, err := st.LoadGame(ctx, gameID)
	require.NoError(t, err)
	require.Len(t, subs, 1)
	assert.Equal(t, engine.TagDraftPick, subs[0].Action.Tag())

	restarted := newTestServer(t, st)
	resp, err := http.Get(restarted.URL + "/api/games/" + gameID)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var info server.GameInfo
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&info))
	assert.True(t, info.Started)
	assert.Equal(t, 2, info.Players)
}
