package app

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"songboard/internal/domain"
)

func strptr(s string) *string {
	return &s
}

func TestSongService_SubmitSong(t *testing.T) {
	weeks, songs := newTestServices(t)

	// Submitting before any week exists creates one
	song, err := songs.SubmitSong(Submission{
		SourceURL: "https://open.spotify.com/track/abc123",
		Title:     strptr("Test Song"),
		Artist:    strptr("Test Artist"),
		AddedBy:   strptr("tester"),
	})
	require.NoError(t, err)
	assert.NotZero(t, song.ID)
	assert.True(t, song.Active)
	require.NotNil(t, song.WeekID)
	assert.False(t, song.AddedDate.IsZero())

	week, err := weeks.CurrentWeek()
	require.NoError(t, err)
	require.NotNil(t, week)
	assert.Equal(t, week.ID, *song.WeekID)

	// Blank URL is rejected
	_, err = songs.SubmitSong(Submission{SourceURL: "   "})
	assert.ErrorIs(t, err, domain.ErrValidation)

	// Same URL in the same week is rejected
	_, err = songs.SubmitSong(Submission{SourceURL: "https://open.spotify.com/track/abc123"})
	assert.ErrorIs(t, err, domain.ErrDuplicateSong)

	// After a rollover the same URL is welcome again
	_, _, err = weeks.Rollover(song.AddedDate.AddDate(0, 0, 7))
	require.NoError(t, err)
	resubmitted, err := songs.SubmitSong(Submission{SourceURL: "https://open.spotify.com/track/abc123"})
	require.NoError(t, err)
	assert.NotEqual(t, song.ID, resubmitted.ID)
}

func TestSongService_SubmitRating(t *testing.T) {
	_, songs := newTestServices(t)

	song, err := songs.SubmitSong(Submission{SourceURL: "https://open.spotify.com/track/abc123"})
	require.NoError(t, err)

	tests := []struct {
		name    string
		userID  string
		rating  int
		wantErr error
	}{
		{name: "minimum score", userID: "u1", rating: 1},
		{name: "maximum score", userID: "u2", rating: 7},
		{name: "below minimum", userID: "u3", rating: 0, wantErr: domain.ErrValidation},
		{name: "above maximum", userID: "u3", rating: 8, wantErr: domain.ErrValidation},
		{name: "missing user", userID: "  ", rating: 5, wantErr: domain.ErrValidation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := songs.SubmitRating(song.ID, tt.userID, tt.rating, nil)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			assert.NoError(t, err)
		})
	}

	// Unknown song
	_, _, err = songs.SubmitRating(9999, "u1", 5, nil)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	// Re-rating replaces the previous score
	id1, updated, err := songs.SubmitRating(song.ID, "u1", 3, strptr("changed my mind"))
	require.NoError(t, err)
	assert.True(t, updated)

	id2, updated, err := songs.SubmitRating(song.ID, "u1", 6, nil)
	require.NoError(t, err)
	assert.True(t, updated)
	assert.Equal(t, id1, id2)

	ratings, err := songs.ListRatings(song.ID)
	require.NoError(t, err)
	assert.Len(t, ratings, 2) // u1 and u2, one row each

	all, err := songs.ListAllRatings()
	require.NoError(t, err)
	assert.Len(t, all, 2)
}
