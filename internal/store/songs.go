package store

import (
	"fmt"
	"strings"
	"time"

	"songboard/internal/domain"
)

func (db *DB) CreateSong(song *domain.Song) error {
	if song.AddedDate.IsZero() {
		song.AddedDate = time.Now()
	}

	query := `INSERT INTO songs (
		source_url, title, artist, album, image_url, added_by, is_active, week_id, added_date
	) VALUES (
		:source_url, :title, :artist, :album, :image_url, :added_by, :is_active, :week_id, :added_date
	) RETURNING id`

	rows, err := db.NamedQuery(query, song)
	if err != nil {
		if IsUniqueViolation(err) {
			return fmt.Errorf("%w: %s", domain.ErrDuplicateSong, song.SourceURL)
		}
		return fmt.Errorf("failed to create song: %w", err)
	}
	defer rows.Close() //nolint:errcheck // deferred cleanup

	if rows.Next() {
		if err := rows.Scan(&song.ID); err != nil {
			return fmt.Errorf("failed to scan song id: %w", err)
		}
	} else if err := rows.Err(); err != nil {
		return fmt.Errorf("error iterating returning rows: %w", err)
	}

	return nil
}

func (db *DB) GetSongByID(id int64) (*domain.Song, error) {
	query := `SELECT * FROM songs WHERE id = ?`

	var song domain.Song
	err := db.Get(&song, query, id)
	if err != nil {
		return nil, err
	}
	return &song, nil
}

// ListActiveSongs returns the active songs joined with their aggregate
// rating, most recently added first.
func (db *DB) ListActiveSongs() ([]*domain.SongWithRating, error) {
	query := `SELECT s.*,
		AVG(r.rating) AS avg_rating,
		COUNT(r.id) AS rating_count
	FROM songs s
	LEFT JOIN ratings r ON s.id = r.song_id
	WHERE s.is_active = 1
	GROUP BY s.id
	ORDER BY s.added_date DESC`

	var songs []*domain.SongWithRating
	err := db.Select(&songs, query)
	return songs, err
}

// DeactivateAllSongs clears the active flag on every song and reports how
// many rows changed.
func (db *DB) DeactivateAllSongs() (int64, error) {
	result, err := db.Exec(`UPDATE songs SET is_active = 0 WHERE is_active = 1`)
	if err != nil {
		return 0, fmt.Errorf("failed to deactivate songs: %w", err)
	}
	return result.RowsAffected()
}

// IsUniqueViolation reports whether err is a sqlite unique constraint error.
func IsUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}
