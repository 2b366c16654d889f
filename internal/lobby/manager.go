package lobby

import (
	"sync"

	"github.com/google/uuid"

	"citadels-engine/internal/engine"
)

// Manager manages multiple lobbies.
type Manager struct {
	mu       sync.Mutex
	lobbies  map[string]*Lobby
	defaults engine.GameConfig
}

// NewManager returns a manager whose new lobbies start from defaults.
func NewManager(defaults engine.GameConfig) *Manager {
	return &Manager{
		lobbies:  make(map[string]*Lobby),
		defaults: defaults,
	}
}

// Create creates a new lobby and returns its ID.
func (m *Manager) Create() string {
	m.mu.Lock()
	defer m.mu.Unlock()

	id := uuid.NewString()
	m.lobbies[id] = NewLobby(id, cloneConfig(m.defaults))
	return id
}

// Get returns a lobby by ID.
func (m *Manager) Get(id string) *Lobby {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.lobbies[id]
}

func (m *Manager) Remove(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.lobbies, id)
}

func cloneConfig(c engine.GameConfig) engine.GameConfig {
	out := engine.GameConfig{
		Roles:       append([]engine.CharacterRole(nil), c.Roles...),
		Districts:   make(map[engine.DistrictName]engine.DistrictOption, len(c.Districts)),
		RoleAnarchy: c.RoleAnarchy,
	}
	for k, v := range c.Districts {
		out.Districts[k] = v
	}
	return out
}
