package lobby

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"citadels-engine/internal/engine"
)

var (
	ErrStarted  = errors.New("game already started")
	ErrFull     = errors.New("lobby is full")
	ErrNotReady = errors.New("not all players ready")
)

// PlayerInfo holds lobby-level player information.
type PlayerInfo struct {
	ID    string
	Name  string
	Ready bool
}

// Lobby gathers players and the game configuration until the game starts.
type Lobby struct {
	mu      sync.Mutex
	ID      string
	Players []*PlayerInfo
	Config  engine.GameConfig
	Started bool
}

// NewLobby creates a new lobby using cfg for the game configuration.
func NewLobby(id string, cfg engine.GameConfig) *Lobby {
	return &Lobby{
		ID:     id,
		Config: cfg,
	}
}

// Join adds a player to the lobby. Joining again with the same ID renames.
func (l *Lobby) Join(id, name string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	name = strings.TrimSpace(name)
	if id == "" || name == "" {
		return fmt.Errorf("player id and name are required")
	}
	if l.Started {
		return ErrStarted
	}
	var self *PlayerInfo
	for _, p := range l.Players {
		if p.ID == id {
			self = p
			continue
		}
		if p.Name == name {
			return fmt.Errorf("name %q is taken", name)
		}
	}
	if self != nil {
		self.Name = name
		return nil
	}
	if len(l.Players) >= engine.MaxPlayers {
		return ErrFull
	}
	l.Players = append(l.Players, &PlayerInfo{ID: id, Name: name})
	return nil
}

// Leave removes a player from the lobby.
func (l *Lobby) Leave(id string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.Started {
		return
	}
	for i, p := range l.Players {
		if p.ID == id {
			l.Players = append(l.Players[:i], l.Players[i+1:]...)
			return
		}
	}
}

// SetReady toggles a player's ready state.
func (l *Lobby) SetReady(id string, ready bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	for _, p := range l.Players {
		if p.ID == id {
			p.Ready = ready
			return
		}
	}
}

// Configure replaces the game configuration before the game starts.
func (l *Lobby) Configure(cfg engine.GameConfig) error {
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configure: %w", err)
	}
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.Started {
		return ErrStarted
	}
	l.Config = cfg
	return nil
}

// CanStart returns true if enough players are ready.
func (l *Lobby) CanStart() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.canStart()
}

func (l *Lobby) canStart() bool {
	if len(l.Players) < engine.MinPlayers {
		return false
	}
	for _, p := range l.Players {
		if !p.Ready {
			return false
		}
	}
	return true
}

// Start marks the lobby as started and returns what the engine needs to
// seat the players.
func (l *Lobby) Start() (engine.Lobby, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.Started {
		return engine.Lobby{}, ErrStarted
	}
	if !l.canStart() {
		return engine.Lobby{}, ErrNotReady
	}
	l.Started = true
	return l.snapshot(), nil
}

// Snapshot returns the lobby as an engine.Lobby without starting it.
func (l *Lobby) Snapshot() engine.Lobby {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.snapshot()
}

func (l *Lobby) snapshot() engine.Lobby {
	out := engine.Lobby{Config: l.Config}
	for _, p := range l.Players {
		out.Players = append(out.Players, engine.LobbyPlayer{ID: p.ID, Name: p.Name})
	}
	return out
}

// GetPlayers returns a copy of the player list.
func (l *Lobby) GetPlayers() []PlayerInfo {
	l.mu.Lock()
	defer l.mu.Unlock()

	out := make([]PlayerInfo, len(l.Players))
	for i, p := range l.Players {
		out[i] = *p
	}
	return out
}

func (l *Lobby) IsStarted() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.Started
}
