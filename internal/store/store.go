// Package store keeps a replay log of every game in SQLite: the seed, the
// lobby and each accepted action. A game is restored by replaying its log.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"citadels-engine/internal/engine"
	"citadels-engine/internal/protocol"
	"citadels-engine/internal/store/migrations"
)

var ErrNotFound = errors.New("game not found")

// Store persists replay logs in SQLite.
type Store struct {
	db *sql.DB
}

// GameRecord is a stored game's starting point.
type GameRecord struct {
	ID        string
	Seed      uint64
	Lobby     engine.Lobby
	CreatedAt time.Time
}

// GameSummary is one row of ListGames.
type GameSummary struct {
	ID        string
	Players   int
	Actions   int
	CreatedAt time.Time
}

func toMillis(t time.Time) int64 { return t.UTC().UnixMilli() }

func fromMillis(v int64) time.Time { return time.UnixMilli(v).UTC() }

// Open opens the database at path and applies the embedded migrations.
func Open(ctx context.Context, path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}
	dsn := filepath.Clean(path) + "?_pragma=foreign_keys(1)&_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if err := applyMigrations(ctx, db, migrations.FS); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// CreateGame records a new game before its first action.
func (s *Store) CreateGame(ctx context.Context, g GameRecord) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if strings.TrimSpace(g.ID) == "" {
		return fmt.Errorf("game id is required")
	}
	lobby, err := json.Marshal(g.Lobby)
	if err != nil {
		return fmt.Errorf("encode lobby: %w", err)
	}
	created := g.CreatedAt
	if created.IsZero() {
		created = time.Now()
	}
	if _, err := s.db.ExecContext(ctx,
		`INSERT INTO games (id, seed, lobby, created_at) VALUES (?, ?, ?, ?)`,
		g.ID, int64(g.Seed), string(lobby), toMillis(created),
	); err != nil {
		return fmt.Errorf("create game %s: %w", g.ID, err)
	}
	return nil
}

// AppendAction stores the accepted action with sequence number seq.
// Sequence numbers start at 0 and must be contiguous.
func (s *Store) AppendAction(ctx context.Context, gameID string, seq int, sub engine.Submission) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	action, err := protocol.EncodeAction(sub.Action)
	if err != nil {
		return err
	}
	if _, err := s.db.ExecContext(ctx,
		`INSERT INTO actions (game_id, seq, actor_id, action, created_at) VALUES (?, ?, ?, ?, ?)`,
		gameID, seq, sub.ActorID, string(action), toMillis(time.Now()),
	); err != nil {
		return fmt.Errorf("append action %d to %s: %w", seq, gameID, err)
	}
	return nil
}

// LoadGame returns the game's record and its actions in order.
func (s *Store) LoadGame(ctx context.Context, id string) (GameRecord, []engine.Submission, error) {
	if err := ctx.Err(); err != nil {
		return GameRecord{}, nil, err
	}
	rec := GameRecord{ID: id}
	var (
		seed    int64
		lobby   string
		created int64
	)
	err := s.db.QueryRowContext(ctx,
		`SELECT seed, lobby, created_at FROM games WHERE id = ?`, id,
	).Scan(&seed, &lobby, &created)
	if errors.Is(err, sql.ErrNoRows) {
		return GameRecord{}, nil, fmt.Errorf("%s: %w", id, ErrNotFound)
	}
	if err != nil {
		return GameRecord{}, nil, fmt.Errorf("load game %s: %w", id, err)
	}
	rec.Seed = uint64(seed)
	rec.CreatedAt = fromMillis(created)
	if err := json.Unmarshal([]byte(lobby), &rec.Lobby); err != nil {
		return GameRecord{}, nil, fmt.Errorf("decode lobby of %s: %w", id, err)
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT seq, actor_id, action FROM actions WHERE game_id = ? ORDER BY seq`, id)
	if err != nil {
		return GameRecord{}, nil, fmt.Errorf("load actions of %s: %w", id, err)
	}
	defer rows.Close()

	var subs []engine.Submission
	for rows.Next() {
		var (
			seq    int
			actor  string
			action string
		)
		if err := rows.Scan(&seq, &actor, &action); err != nil {
			return GameRecord{}, nil, fmt.Errorf("scan action of %s: %w", id, err)
		}
		if seq != len(subs) {
			return GameRecord{}, nil, fmt.Errorf("game %s: action %d missing", id, len(subs))
		}
		a, err := protocol.DecodeAction([]byte(action))
		if err != nil {
			return GameRecord{}, nil, fmt.Errorf("game %s action %d: %w", id, seq, err)
		}
		subs = append(subs, engine.Submission{ActorID: actor, Action: a})
	}
	if err := rows.Err(); err != nil {
		return GameRecord{}, nil, fmt.Errorf("load actions of %s: %w", id, err)
	}
	return rec, subs, nil
}

// Restore rebuilds a stored game by replaying its log.
func (s *Store) Restore(ctx context.Context, id string, abilities *engine.AbilityRegistry, opts ...engine.Option) (*engine.Game, int, error) {
	rec, subs, err := s.LoadGame(ctx, id)
	if err != nil {
		return nil, 0, err
	}
	g, err := engine.Replay(rec.Lobby, rec.Seed, abilities, subs, opts...)
	if err != nil {
		return nil, 0, fmt.Errorf("restore %s: %w", id, err)
	}
	return g, len(subs), nil
}

// ListGames returns every stored game, newest first.
func (s *Store) ListGames(ctx context.Context) ([]GameSummary, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	rows, err := s.db.QueryContext(ctx, `
SELECT g.id, g.lobby, g.created_at, COUNT(a.seq)
FROM games g LEFT JOIN actions a ON a.game_id = g.id
GROUP BY g.id
ORDER BY g.created_at DESC, g.id`)
	if err != nil {
		return nil, fmt.Errorf("list games: %w", err)
	}
	defer rows.Close()

	var out []GameSummary
	for rows.Next() {
		var (
			sum     GameSummary
			lobby   string
			created int64
		)
		if err := rows.Scan(&sum.ID, &lobby, &created, &sum.Actions); err != nil {
			return nil, fmt.Errorf("scan game: %w", err)
		}
		var l engine.Lobby
		if err := json.Unmarshal([]byte(lobby), &l); err != nil {
			return nil, fmt.Errorf("decode lobby of %s: %w", sum.ID, err)
		}
		sum.Players = len(l.Players)
		sum.CreatedAt = fromMillis(created)
		out = append(out, sum)
	}
	return out, rows.Err()
}
