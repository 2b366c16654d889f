package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"citadels-engine/internal/qrcode"
	"citadels-engine/internal/store"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// CreatedGame is the response to POST /api/games.
type CreatedGame struct {
	GameID  string `json:"game_id"`
	JoinURL string `json:"join_url"`
}

// GameInfo is the response to GET /api/games/{id}.
type GameInfo struct {
	GameID  string `json:"game_id"`
	Players int    `json:"players"`
	Started bool   `json:"started"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func (s *Server) baseURL(r *http.Request) string {
	if s.cfg.BaseURL != "" {
		return s.cfg.BaseURL
	}
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	return scheme + "://" + r.Host
}

// HandleCreateGame creates a new game lobby and returns its ID.
func (s *Server) HandleCreateGame(w http.ResponseWriter, r *http.Request) {
	id := s.lobbies.Create()
	s.newHub(id, s.lobbies.Get(id))
	s.log.Info("lobby created", zap.String("game", id))

	writeJSON(w, http.StatusCreated, CreatedGame{
		GameID:  id,
		JoinURL: qrcode.JoinURL(s.baseURL(r), id),
	})
}

// HandleGame reports whether a game exists and how far along it is.
func (s *Server) HandleGame(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	h, err := s.hub(r.Context(), id)
	if err != nil {
		s.notFound(w, id, err)
		return
	}
	writeJSON(w, http.StatusOK, GameInfo{
		GameID:  id,
		Players: len(h.lobby.GetPlayers()),
		Started: h.lobby.IsStarted(),
	})
}

// HandleQR generates a QR code PNG for joining the game.
func (s *Server) HandleQR(w http.ResponseWriter, r *http.Request) {
	gameID := r.URL.Query().Get("game")
	if gameID == "" {
		http.Error(w, "missing game parameter", http.StatusBadRequest)
		return
	}
	png, err := qrcode.Generate(qrcode.JoinURL(s.baseURL(r), gameID), s.cfg.QRSize)
	if err != nil {
		s.log.Error("qr", zap.Error(err))
		http.Error(w, "QR generation failed", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	_, _ = w.Write(png)
}

// HandleWS handles WebSocket connections.
func (s *Server) HandleWS(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	gameID := q.Get("game")
	if gameID == "" {
		http.Error(w, "missing game parameter", http.StatusBadRequest)
		return
	}
	hub, err := s.hub(r.Context(), gameID)
	if err != nil {
		s.notFound(w, gameID, err)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.Warn("ws upgrade", zap.Error(err))
		return
	}

	ct := ClientPlayer
	if q.Get("type") == "tv" {
		ct = ClientTV
	}

	client := NewClient(hub, conn, q.Get("player"), ct)
	if !hub.Register(client) {
		_ = conn.Close()
		return
	}

	go client.WritePump()
	go client.ReadPump()
}

// HandlePlayerID returns a new player ID.
func (s *Server) HandlePlayerID(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain")
	_, _ = w.Write([]byte(uuid.NewString()))
}

func (s *Server) notFound(w http.ResponseWriter, id string, err error) {
	if errors.Is(err, store.ErrNotFound) {
		http.Error(w, "game not found", http.StatusNotFound)
		return
	}
	s.log.Error("load game", zap.String("game", id), zap.Error(err))
	http.Error(w, "game unavailable", http.StatusInternalServerError)
}
