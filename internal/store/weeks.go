package store

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"songboard/internal/domain"
)

// GetCurrentWeek returns the single active week, or nil when none exists.
func (db *DB) GetCurrentWeek() (*domain.Week, error) {
	week := &domain.Week{}
	err := db.Get(week, `SELECT * FROM weeks WHERE is_active = 1 LIMIT 1`)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return week, nil
}

// CreateWeek deactivates every week and inserts a new active one. Both
// statements run in one transaction so no reader ever observes two active
// weeks.
func (db *DB) CreateWeek(weekStart, weekEnd string) (*domain.Week, error) {
	tx, err := db.Beginx()
	if err != nil {
		return nil, fmt.Errorf("failed to begin tx: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	week, err := insertActiveWeek(tx, weekStart, weekEnd)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit week: %w", err)
	}
	return week, nil
}

// RolloverWeek performs a full week transition in a single transaction:
// deactivate all songs, deactivate all weeks, open a new active week and
// record an audit row. Returns the new week and the number of songs
// deactivated.
func (db *DB) RolloverWeek(runID, weekStart, weekEnd string) (*domain.Week, int64, error) {
	tx, err := db.Beginx()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to begin tx: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	result, err := tx.Exec(`UPDATE songs SET is_active = 0 WHERE is_active = 1`)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to deactivate songs: %w", err)
	}
	deactivated, err := result.RowsAffected()
	if err != nil {
		return nil, 0, err
	}

	week, err := insertActiveWeek(tx, weekStart, weekEnd)
	if err != nil {
		return nil, 0, err
	}

	if _, err := tx.Exec(`INSERT INTO rollovers (id, week_id, songs_deactivated, ran_at) VALUES (?, ?, ?, ?)`,
		runID, week.ID, deactivated, time.Now()); err != nil {
		return nil, 0, fmt.Errorf("failed to record rollover: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, 0, fmt.Errorf("failed to commit rollover: %w", err)
	}
	return week, deactivated, nil
}

// ListRollovers returns rollover audit rows, newest first.
func (db *DB) ListRollovers(limit int) ([]*domain.Rollover, error) {
	var rollovers []*domain.Rollover
	err := db.Select(&rollovers, `SELECT * FROM rollovers ORDER BY ran_at DESC LIMIT ?`, limit)
	return rollovers, err
}

func insertActiveWeek(tx *sqlx.Tx, weekStart, weekEnd string) (*domain.Week, error) {
	if _, err := tx.Exec(`UPDATE weeks SET is_active = 0 WHERE is_active = 1`); err != nil {
		return nil, fmt.Errorf("failed to deactivate weeks: %w", err)
	}

	var id int64
	err := tx.Get(&id, `INSERT INTO weeks (week_start, week_end, is_active) VALUES (?, ?, 1) RETURNING id`,
		weekStart, weekEnd)
	if err != nil {
		return nil, fmt.Errorf("failed to create week: %w", err)
	}

	return &domain.Week{ID: id, WeekStart: weekStart, WeekEnd: weekEnd, Active: true}, nil
}
