package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/handlers"
	"go.uber.org/zap"

	"citadels-engine/internal/config"
	"citadels-engine/internal/engine"
	"citadels-engine/internal/engine/abilities"
	"citadels-engine/internal/lobby"
	"citadels-engine/internal/store"
)

// Server ties together HTTP serving and WebSocket handling.
type Server struct {
	cfg       config.Config
	log       *zap.Logger
	store     *store.Store
	lobbies   *lobby.Manager
	abilities *engine.AbilityRegistry

	mu   sync.Mutex
	hubs map[string]*Hub
}

// New creates a server. st may be nil, in which case games are not persisted.
func New(cfg config.Config, logger *zap.Logger, st *store.Store, defaults engine.GameConfig) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Server{
		cfg:       cfg,
		log:       logger,
		store:     st,
		lobbies:   lobby.NewManager(defaults),
		abilities: abilities.NewRegistry(),
		hubs:      make(map[string]*Hub),
	}
}

// Handler returns the HTTP routes wrapped in access logging, panic
// recovery and CORS.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/games", s.HandleCreateGame)
	mux.HandleFunc("GET /api/games/{id}", s.HandleGame)
	mux.HandleFunc("GET /api/qr", s.HandleQR)
	mux.HandleFunc("GET /api/player-id", s.HandlePlayerID)
	mux.HandleFunc("GET /ws", s.HandleWS)

	access := zap.NewStdLog(s.log.Named("http")).Writer()
	var h http.Handler = mux
	h = handlers.CORS(
		handlers.AllowedMethods([]string{http.MethodGet, http.MethodPost}),
		handlers.AllowedHeaders([]string{"Content-Type"}),
	)(h)
	h = handlers.RecoveryHandler(handlers.RecoveryLogger(zap.NewStdLog(s.log)))(h)
	return handlers.CombinedLoggingHandler(access, h)
}

// ListenAndServe serves until ctx is done, then shuts down gracefully and
// stops every hub.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", s.cfg.Port),
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info("citadels server starting", zap.String("addr", srv.Addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		s.Close()
		return fmt.Errorf("listen: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	err := srv.Shutdown(shutdownCtx)
	s.Close()
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

// Close stops every running hub.
func (s *Server) Close() {
	s.mu.Lock()
	hubs := make([]*Hub, 0, len(s.hubs))
	for id, h := range s.hubs {
		hubs = append(hubs, h)
		delete(s.hubs, id)
	}
	s.mu.Unlock()

	for _, h := range hubs {
		h.Stop()
	}
}

// evict forgets a hub whose game has ended. A later request for the game
// restores it from the store.
func (s *Server) evict(h *Hub) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.hubs[h.ID()] == h {
		delete(s.hubs, h.ID())
	}
	s.lobbies.Remove(h.ID())
	s.log.Info("hub evicted", zap.String("game", h.ID()))
}

func (s *Server) newHub(id string, lob *lobby.Lobby) *Hub {
	h := NewHub(HubConfig{
		GameID:    id,
		Lobby:     lob,
		Store:     s.store,
		Abilities: s.abilities,
		Logger:    s.log.With(zap.String("game", id)),
		OnFinish:  s.evict,
	})
	s.mu.Lock()
	s.hubs[id] = h
	s.mu.Unlock()
	go h.Run()
	return h
}

// hub returns the running hub for id. A game that is only in the store is
// restored by replaying its log.
func (s *Server) hub(ctx context.Context, id string) (*Hub, error) {
	s.mu.Lock()
	h, ok := s.hubs[id]
	s.mu.Unlock()
	if ok {
		return h, nil
	}
	if s.store == nil {
		return nil, store.ErrNotFound
	}

	rec, subs, err := s.store.LoadGame(ctx, id)
	if err != nil {
		return nil, err
	}
	g, err := engine.Replay(rec.Lobby, rec.Seed, s.abilities, subs,
		engine.WithLogger(s.log.With(zap.String("game", id))))
	if err != nil {
		return nil, fmt.Errorf("restore %s: %w", id, err)
	}

	lob := lobby.NewLobby(id, rec.Lobby.Config)
	for _, p := range rec.Lobby.Players {
		if err := lob.Join(p.ID, p.Name); err != nil {
			return nil, fmt.Errorf("restore %s: %w", id, err)
		}
		lob.SetReady(p.ID, true)
	}
	if _, err := lob.Start(); err != nil {
		return nil, fmt.Errorf("restore %s: %w", id, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if h, ok := s.hubs[id]; ok {
		return h, nil
	}
	h = NewHub(HubConfig{
		GameID:    id,
		Lobby:     lob,
		Store:     s.store,
		Abilities: s.abilities,
		Logger:    s.log.With(zap.String("game", id)),
		OnFinish:  s.evict,
	})
	h.resume(g, len(subs))
	s.hubs[id] = h
	go h.Run()
	s.log.Info("game restored", zap.String("game", id), zap.Int("actions", len(subs)))
	return h, nil
}
