package server

import (
	"context"
	"encoding/json"
	"errors"
	"math/rand/v2"
	"time"

	"go.uber.org/zap"

	"citadels-engine/internal/engine"
	"citadels-engine/internal/lobby"
	"citadels-engine/internal/protocol"
	"citadels-engine/internal/store"
)

const storeTimeout = 5 * time.Second

// HubConfig holds what a hub needs besides its clients.
type HubConfig struct {
	GameID    string
	Lobby     *lobby.Lobby
	Store     *store.Store
	Abilities *engine.AbilityRegistry
	Logger    *zap.Logger
	// OnFinish runs on the hub goroutine once the game is over, just before
	// the hub stops.
	OnFinish func(*Hub)
}

// Hub manages WebSocket connections and game state for one game room. Every
// lobby change and game action goes through Run, so the game has a single
// writer.
type Hub struct {
	gameID    string
	lobby     *lobby.Lobby
	store     *store.Store
	abilities *engine.AbilityRegistry
	log       *zap.Logger
	onFinish  func(*Hub)

	game *engine.Game
	seq  int

	clients    map[*Client]bool
	register   chan *Client
	unregister chan *Client
	incoming   chan IncomingMessage
	quit       chan struct{}
	done       chan struct{}
}

func NewHub(cfg HubConfig) *Hub {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Hub{
		gameID:     cfg.GameID,
		lobby:      cfg.Lobby,
		store:      cfg.Store,
		abilities:  cfg.Abilities,
		log:        logger,
		onFinish:   cfg.OnFinish,
		clients:    make(map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		incoming:   make(chan IncomingMessage, 256),
		quit:       make(chan struct{}),
		done:       make(chan struct{}),
	}
}

// resume installs a game restored from the store. Call before Run.
func (h *Hub) resume(g *engine.Game, seq int) {
	h.game = g
	h.seq = seq
}

func (h *Hub) Run() {
	defer close(h.done)
	for {
		select {
		case client := <-h.register:
			h.clients[client] = true
			h.log.Debug("client connected", zap.String("player", client.PlayerID), zap.Stringer("type", client.Type))
			h.sendLobbyUpdate()
			if h.game != nil {
				h.sendStateToClient(client)
			}

		case client := <-h.unregister:
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
				h.log.Debug("client disconnected", zap.String("player", client.PlayerID))
			}

		case msg := <-h.incoming:
			h.handleMessage(msg)
			if h.gameOver() {
				h.log.Info("game finished, closing hub")
				if h.onFinish != nil {
					h.onFinish(h)
				}
				h.closeClients()
				return
			}

		case <-h.quit:
			h.closeClients()
			return
		}
	}
}

func (h *Hub) gameOver() bool {
	return h.game != nil && h.game.Turn.Phase() == engine.PhaseGameOver
}

// closeClients closes every send channel; the write pumps flush what is
// queued and then close their connections.
func (h *Hub) closeClients() {
	for client := range h.clients {
		delete(h.clients, client)
		close(client.send)
	}
}

// ID is the game the hub serves.
func (h *Hub) ID() string { return h.gameID }

// Stop ends Run and waits for it to return.
func (h *Hub) Stop() {
	select {
	case <-h.quit:
	default:
		close(h.quit)
	}
	<-h.done
}

// Register attaches a client. It returns false once the hub has stopped.
func (h *Hub) Register(c *Client) bool {
	select {
	case h.register <- c:
		return true
	case <-h.done:
		return false
	}
}

func (h *Hub) handleMessage(msg IncomingMessage) {
	switch msg.Envelope.Type {
	case protocol.MsgJoin:
		h.handleJoin(msg)
	case protocol.MsgReady:
		h.handleReady(msg)
	case protocol.MsgConfigure:
		h.handleConfigure(msg)
	case protocol.MsgStartGame:
		h.handleStartGame(msg)
	case protocol.MsgAction:
		h.handleGameAction(msg)
	default:
		h.sendError(msg.Client, "unknown message type "+msg.Envelope.Type)
	}
}

func (h *Hub) handleJoin(msg IncomingMessage) {
	var join protocol.JoinMsg
	if err := msg.Envelope.Decode(&join); err != nil {
		h.sendError(msg.Client, "invalid join message")
		return
	}
	if err := h.lobby.Join(join.PlayerID, join.Name); err != nil {
		h.sendError(msg.Client, err.Error())
		return
	}
	msg.Client.PlayerID = join.PlayerID
	h.sendLobbyUpdate()
}

func (h *Hub) handleReady(msg IncomingMessage) {
	var ready protocol.ReadyMsg
	if err := msg.Envelope.Decode(&ready); err != nil {
		h.sendError(msg.Client, "invalid ready message")
		return
	}
	h.lobby.SetReady(msg.Client.PlayerID, ready.Ready)
	h.sendLobbyUpdate()
}

func (h *Hub) handleConfigure(msg IncomingMessage) {
	var cm protocol.ConfigureMsg
	if err := msg.Envelope.Decode(&cm); err != nil {
		h.sendError(msg.Client, "invalid configure message")
		return
	}
	if err := h.lobby.Configure(cm.Config); err != nil {
		h.sendError(msg.Client, err.Error())
		return
	}
	h.sendLobbyUpdate()
}

func (h *Hub) handleStartGame(msg IncomingMessage) {
	el, err := h.lobby.Start()
	if err != nil {
		h.sendError(msg.Client, err.Error())
		return
	}

	seed := rand.Uint64()
	g, err := engine.Start(el, seed, h.abilities, engine.WithLogger(h.log))
	if err != nil {
		h.log.Error("start game", zap.Error(err))
		h.sendError(msg.Client, err.Error())
		return
	}
	if h.store != nil {
		ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
		err := h.store.CreateGame(ctx, store.GameRecord{ID: h.gameID, Seed: seed, Lobby: el})
		cancel()
		if err != nil {
			h.log.Error("persist game", zap.Error(err))
		}
	}

	h.game = g
	h.log.Info("game started", zap.Int("players", len(el.Players)))
	h.sendLobbyUpdate()
	h.broadcastState()
}

func (h *Hub) handleGameAction(msg IncomingMessage) {
	if h.game == nil {
		h.sendError(msg.Client, "game not started")
		return
	}

	action, err := protocol.DecodeAction(msg.Envelope.Payload)
	if err != nil {
		h.sendError(msg.Client, err.Error())
		return
	}

	if err := h.game.Perform(action, msg.Client.PlayerID); err != nil {
		if errors.Is(err, engine.ErrIllegalAction) {
			h.log.Debug("action rejected",
				zap.String("player", msg.Client.PlayerID),
				zap.Stringer("tag", action.Tag()),
				zap.Error(err))
		} else {
			h.log.Error("perform", zap.Error(err))
		}
		h.sendError(msg.Client, err.Error())
		return
	}

	if h.store != nil {
		ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
		err := h.store.AppendAction(ctx, h.gameID, h.seq, engine.Submission{ActorID: msg.Client.PlayerID, Action: action})
		cancel()
		if err != nil {
			h.log.Error("persist action", zap.Int("seq", h.seq), zap.Error(err))
		}
	}
	h.seq++

	h.broadcastState()
}

func (h *Hub) broadcastState() {
	if h.game == nil {
		return
	}
	for client := range h.clients {
		h.sendStateToClient(client)
	}
}

func (h *Hub) sendStateToClient(client *Client) {
	if h.game == nil {
		return
	}
	if client.Type == ClientTV {
		client.SendEnvelope(protocol.MustEnvelope(protocol.MsgGameState, h.game.PublicView()))
		return
	}
	client.SendEnvelope(protocol.MustEnvelope(protocol.MsgPlayerState, h.game.ViewFor(client.PlayerID)))
	client.SendEnvelope(protocol.MustEnvelope(protocol.MsgAllowed, protocol.AllowedMsg{
		Actions: h.game.AllowedFor(client.PlayerID),
	}))
}

func (h *Hub) sendLobbyUpdate() {
	players := h.lobby.GetPlayers()
	lps := make([]protocol.LobbyPlayer, len(players))
	for i, p := range players {
		lps[i] = protocol.LobbyPlayer{ID: p.ID, Name: p.Name, Ready: p.Ready}
	}
	snap := h.lobby.Snapshot()
	h.broadcastAll(protocol.MustEnvelope(protocol.MsgLobbyUpdate, protocol.LobbyUpdate{
		GameID:  h.gameID,
		Players: lps,
		Config:  snap.Config,
		Started: h.lobby.IsStarted(),
	}))
}

func (h *Hub) broadcastAll(env protocol.Envelope) {
	data, err := json.Marshal(env)
	if err != nil {
		h.log.Error("broadcast marshal", zap.Error(err))
		return
	}
	for client := range h.clients {
		client.enqueue(data)
	}
}

func (h *Hub) sendError(client *Client, message string) {
	client.SendEnvelope(protocol.MustEnvelope(protocol.MsgError, protocol.ErrorMsg{Message: message}))
}
