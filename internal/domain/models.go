package domain

import "time"

// Song is a submitted track. A song belongs to at most one week; the active
// songs are exactly those attached to the currently active week.
type Song struct {
	ID        int64     `json:"id" db:"id"`
	SourceURL string    `json:"source_url" db:"source_url"`
	Title     *string   `json:"title" db:"title"`
	Artist    *string   `json:"artist" db:"artist"`
	Album     *string   `json:"album" db:"album"`
	ImageURL  *string   `json:"image_url" db:"image_url"`
	AddedBy   *string   `json:"added_by" db:"added_by"`
	Active    bool      `json:"is_active" db:"is_active"`
	WeekID    *int64    `json:"week_id" db:"week_id"`
	AddedDate time.Time `json:"added_date" db:"added_date"`
}

// SongWithRating is a song joined with its aggregate rating.
type SongWithRating struct {
	Song
	AvgRating   *float64 `json:"avg_rating" db:"avg_rating"`
	RatingCount int      `json:"rating_count" db:"rating_count"`
}

// Rating is one user's score for one song. At most one rating exists per
// (song, user) pair; re-rating replaces score and review.
type Rating struct {
	ID        int64     `json:"id" db:"id"`
	SongID    int64     `json:"song_id" db:"song_id"`
	UserID    string    `json:"user_id" db:"user_id"`
	Rating    int       `json:"rating" db:"rating"`
	Review    *string   `json:"review" db:"review"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// SongRating is a rating joined with the song it belongs to, for listings.
type SongRating struct {
	Rating
	Title     *string `json:"title" db:"title"`
	Artist    *string `json:"artist" db:"artist"`
	SourceURL string  `json:"source_url,omitempty" db:"source_url"`
	AddedBy   *string `json:"added_by,omitempty" db:"added_by"`
}

// Week is one voting period. At most one week is active at any time.
type Week struct {
	ID        int64  `json:"id" db:"id"`
	WeekStart string `json:"week_start" db:"week_start"`
	WeekEnd   string `json:"week_end" db:"week_end"`
	Active    bool   `json:"is_active" db:"is_active"`
}

// Rollover is an audit record of one week transition.
type Rollover struct {
	ID               string    `json:"id" db:"id"`
	WeekID           int64     `json:"week_id" db:"week_id"`
	SongsDeactivated int64     `json:"songs_deactivated" db:"songs_deactivated"`
	RanAt            time.Time `json:"ran_at" db:"ran_at"`
}
