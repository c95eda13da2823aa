package store

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"songboard/internal/domain"
)

// UpsertRating stores a rating, replacing any prior rating by the same user
// for the same song. The write itself is a single ON CONFLICT statement, so
// two concurrent submissions for the same (song, user) pair can never both
// insert. The returned updated flag reports whether a row pre-existed.
func (db *DB) UpsertRating(rating *domain.Rating) (int64, bool, error) {
	var existingID int64
	err := db.Get(&existingID, `SELECT id FROM ratings WHERE song_id = ? AND user_id = ?`,
		rating.SongID, rating.UserID)
	updated := err == nil
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return 0, false, fmt.Errorf("failed to look up rating: %w", err)
	}

	if rating.CreatedAt.IsZero() {
		rating.CreatedAt = time.Now()
	}

	query := `INSERT INTO ratings (song_id, user_id, rating, review, created_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(song_id, user_id) DO UPDATE SET
			rating = excluded.rating,
			review = excluded.review,
			created_at = excluded.created_at
		RETURNING id`

	var id int64
	if err := db.Get(&id, query, rating.SongID, rating.UserID, rating.Rating, rating.Review, rating.CreatedAt); err != nil {
		return 0, false, fmt.Errorf("failed to upsert rating: %w", err)
	}
	rating.ID = id

	return id, updated, nil
}

// ListRatingsForSong returns a song's ratings joined with the song's title
// and artist, newest first.
func (db *DB) ListRatingsForSong(songID int64) ([]*domain.SongRating, error) {
	query := `SELECT r.*, s.title, s.artist, s.source_url, s.added_by
		FROM ratings r
		JOIN songs s ON r.song_id = s.id
		WHERE r.song_id = ?
		ORDER BY r.created_at DESC`

	var ratings []*domain.SongRating
	err := db.Select(&ratings, query, songID)
	return ratings, err
}

// ListAllRatings returns every rating joined with song info, newest first.
func (db *DB) ListAllRatings() ([]*domain.SongRating, error) {
	query := `SELECT r.*, s.title, s.artist, s.source_url, s.added_by
		FROM ratings r
		JOIN songs s ON r.song_id = s.id
		ORDER BY r.created_at DESC`

	var ratings []*domain.SongRating
	err := db.Select(&ratings, query)
	return ratings, err
}
