package protocol

import "citadels-engine/internal/engine"

// Message types: Server → Client
const (
	MsgLobbyUpdate = "lobby_update"
	MsgGameState   = "game_state"
	MsgPlayerState = "player_state"
	MsgAllowed     = "allowed"
	MsgError       = "error"
)

// Message types: Client → Server
const (
	MsgJoin      = "join"
	MsgReady     = "ready"
	MsgConfigure = "configure"
	MsgStartGame = "start_game"
	MsgAction    = "action"
)

// LobbyUpdate is sent to all clients when lobby state changes.
type LobbyUpdate struct {
	GameID  string            `json:"game_id"`
	Players []LobbyPlayer     `json:"players"`
	Config  engine.GameConfig `json:"config"`
	Started bool              `json:"started"`
}

type LobbyPlayer struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Ready bool   `json:"ready"`
}

// JoinMsg is sent by a player to join the game.
type JoinMsg struct {
	PlayerID string `json:"player_id"`
	Name     string `json:"name"`
}

// ReadyMsg is sent by a player to toggle ready state.
type ReadyMsg struct {
	Ready bool `json:"ready"`
}

// ConfigureMsg replaces the lobby's game configuration.
type ConfigureMsg struct {
	Config engine.GameConfig `json:"config"`
}

// AllowedMsg lists the actions the receiving player may submit now.
type AllowedMsg struct {
	Actions []engine.ActionTag `json:"actions"`
}

// ErrorMsg is sent to a client on error.
type ErrorMsg struct {
	Message string `json:"message"`
}
