package app

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"songboard/internal/domain"
	"songboard/internal/logger"
	"songboard/internal/store"
)

// Submission is a validated song submission.
type Submission struct {
	SourceURL string
	Title     *string
	Artist    *string
	Album     *string
	ImageURL  *string
	AddedBy   *string
}

// SongService records submissions and ratings against the active week.
type SongService struct {
	Repo      *store.DB
	Weeks     *WeekService
	RatingMax int
	Logger    *logger.Logger
}

func NewSongService(repo *store.DB, weeks *WeekService, ratingMax int, log *logger.Logger) *SongService {
	return &SongService{Repo: repo, Weeks: weeks, RatingMax: ratingMax, Logger: log}
}

// SubmitSong attaches a new song to the active week, creating the week if
// none exists.
func (s *SongService) SubmitSong(sub Submission) (*domain.Song, error) {
	if strings.TrimSpace(sub.SourceURL) == "" {
		return nil, fmt.Errorf("%w: source_url is required", domain.ErrValidation)
	}

	week, err := s.Weeks.EnsureActiveWeek(time.Now())
	if err != nil {
		return nil, err
	}

	song := &domain.Song{
		SourceURL: sub.SourceURL,
		Title:     sub.Title,
		Artist:    sub.Artist,
		Album:     sub.Album,
		ImageURL:  sub.ImageURL,
		AddedBy:   sub.AddedBy,
		Active:    true,
		WeekID:    &week.ID,
	}
	if err := s.Repo.CreateSong(song); err != nil {
		return nil, err
	}

	s.Logger.Info("Song added",
		"song_id", song.ID,
		"source_url", song.SourceURL,
		"added_by", deref(song.AddedBy),
		"week_id", week.ID)
	return song, nil
}

// SubmitRating stores or replaces the user's rating for a song. Returns the
// rating id and whether an existing rating was replaced.
func (s *SongService) SubmitRating(songID int64, userID string, ratingVal int, review *string) (int64, bool, error) {
	if strings.TrimSpace(userID) == "" {
		return 0, false, fmt.Errorf("%w: user_id is required", domain.ErrValidation)
	}
	if ratingVal < 1 || ratingVal > s.RatingMax {
		return 0, false, fmt.Errorf("%w: rating must be between 1 and %d", domain.ErrValidation, s.RatingMax)
	}

	if _, err := s.Repo.GetSongByID(songID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, false, fmt.Errorf("%w: song %d", domain.ErrNotFound, songID)
		}
		return 0, false, fmt.Errorf("failed to look up song: %w", err)
	}

	rating := &domain.Rating{
		SongID: songID,
		UserID: userID,
		Rating: ratingVal,
		Review: review,
	}
	id, updated, err := s.Repo.UpsertRating(rating)
	if err != nil {
		return 0, false, err
	}

	s.Logger.Info("Rating stored", "rating_id", id, "song_id", songID, "user_id", userID, "updated", updated)
	return id, updated, nil
}

// ListActiveSongs returns the current week's songs with rating aggregates.
func (s *SongService) ListActiveSongs() ([]*domain.SongWithRating, error) {
	return s.Repo.ListActiveSongs()
}

// ListRatings returns a song's ratings, newest first. A song with no
// ratings yields an empty list, not an error.
func (s *SongService) ListRatings(songID int64) ([]*domain.SongRating, error) {
	return s.Repo.ListRatingsForSong(songID)
}

// ListAllRatings returns every rating with song info, newest first.
func (s *SongService) ListAllRatings() ([]*domain.SongRating, error) {
	return s.Repo.ListAllRatings()
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
