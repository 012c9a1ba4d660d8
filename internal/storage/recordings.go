package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/goldrun/internal/config"
	gcore "github.com/vovakirdan/goldrun/internal/games/goldrun/core"
)

// ErrNotFound is returned when a recording does not exist.
var ErrNotFound = errors.New("storage: not found")

// Recording is everything needed to replay a game: the seed, the settings
// that shape the simulation and the inputs applied, tick by tick.
type Recording struct {
	ID        int64
	GameID    string
	Seed      int64
	Start     int
	LevelsDir string // empty for the built-in pack
	Rules     string
	Config    config.GoldrunConfig
	Inputs    []gcore.Input
	Ticks     uint64
	Score     int
	Result    string
	CreatedAt time.Time
}

// SaveRecording stores a recording and returns its ID.
func (s *Store) SaveRecording(r Recording) (int64, error) {
	cfg, err := yaml.Marshal(r.Config)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot encode config: %w", err)
	}
	inputs, err := yaml.Marshal(r.Inputs)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot encode inputs: %w", err)
	}

	result, err := s.db.Exec(
		`INSERT INTO recordings
		 (game_id, seed, start_level, levels_dir, rules, config, inputs, ticks, score, result)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.GameID, r.Seed, r.Start, r.LevelsDir, r.Rules, string(cfg), string(inputs),
		int64(r.Ticks), r.Score, r.Result,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save recording: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}
	return id, nil
}

const recordingColumns = `id, game_id, seed, start_level, levels_dir, rules, config, inputs, ticks, score, result, created_at`

type scanner interface {
	Scan(dest ...any) error
}

func scanRecording(sc scanner) (Recording, error) {
	var (
		r           Recording
		cfg, inputs string
		ticks       int64
		createdAt   any
	)
	if err := sc.Scan(&r.ID, &r.GameID, &r.Seed, &r.Start, &r.LevelsDir, &r.Rules,
		&cfg, &inputs, &ticks, &r.Score, &r.Result, &createdAt); err != nil {
		return r, err
	}
	r.Ticks = uint64(ticks)
	r.CreatedAt = parseTime(createdAt)

	r.Config = config.DefaultGoldrunConfig()
	if err := yaml.Unmarshal([]byte(cfg), &r.Config); err != nil {
		return r, fmt.Errorf("storage: recording %d: bad config: %w", r.ID, err)
	}
	if err := yaml.Unmarshal([]byte(inputs), &r.Inputs); err != nil {
		return r, fmt.Errorf("storage: recording %d: bad inputs: %w", r.ID, err)
	}
	return r, nil
}

// Recording loads one recording by ID.
func (s *Store) Recording(id int64) (Recording, error) {
	row := s.db.QueryRow(`SELECT `+recordingColumns+` FROM recordings WHERE id = ?`, id)
	r, err := scanRecording(row)
	if errors.Is(err, sql.ErrNoRows) {
		return r, fmt.Errorf("%w: recording %d", ErrNotFound, id)
	}
	if err != nil {
		return r, fmt.Errorf("storage: cannot load recording: %w", err)
	}
	return r, nil
}

// RecentRecordings lists the latest recordings, newest first. Inputs are
// decoded as well, so keep limit small.
func (s *Store) RecentRecordings(limit int) ([]Recording, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		`SELECT `+recordingColumns+` FROM recordings ORDER BY id DESC LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query recordings: %w", err)
	}
	defer rows.Close()

	var recs []Recording
	for rows.Next() {
		r, err := scanRecording(rows)
		if err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		recs = append(recs, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return recs, nil
}

// DeleteRecording removes a recording.
func (s *Store) DeleteRecording(id int64) error {
	res, err := s.db.Exec("DELETE FROM recordings WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("storage: cannot delete recording: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("%w: recording %d", ErrNotFound, id)
	}
	return nil
}
