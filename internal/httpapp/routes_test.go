package httpapp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"songboard/internal/app"
	"songboard/internal/bot"
	"songboard/internal/logger"
	"songboard/internal/spotify"
	"songboard/internal/store"
)

func setupTestServer(t *testing.T) (*httptest.Server, *Handler) {
	t.Helper()
	db, err := store.NewSQLiteDB(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	log := logger.Default()
	weeks := app.NewWeekService(db, store.NewSettingsRepo(db), time.Wednesday, log)
	songs := app.NewSongService(db, weeks, 7, log)

	h := NewHandler(songs, weeks, log)
	r := chi.NewRouter()
	h.RegisterRoutes(r)

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv, h
}

func doJSON(t *testing.T, method, url string, body any) (*http.Response, map[string]any) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req, err := http.NewRequest(method, url, &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })

	var payload map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		payload = nil
	}
	return resp, payload
}

func getList(t *testing.T, url string) (*http.Response, []map[string]any) {
	t.Helper()
	resp, err := http.Get(url)
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })

	var list []map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&list))
	return resp, list
}

func TestHealth(t *testing.T) {
	srv, _ := setupTestServer(t)

	resp, payload := doJSON(t, http.MethodGet, srv.URL+"/api/health", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "ok", payload["status"])
}

func TestSubmitRateAndReset(t *testing.T) {
	srv, _ := setupTestServer(t)

	// Empty board before anything happens
	resp, songs := getList(t, srv.URL+"/api/songs")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Empty(t, songs)

	// Submit a song
	resp, payload := doJSON(t, http.MethodPost, srv.URL+"/api/songs", map[string]any{
		"source_url": "https://open.spotify.com/track/abc123",
		"title":      "Test Song",
		"artist":     "Test Artist",
		"added_by":   "tester",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, "Song added successfully", payload["message"])
	songID := int64(payload["id"].(float64))
	require.NotZero(t, songID)

	// The board lists it with no ratings yet
	resp, songs = getList(t, srv.URL+"/api/songs")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Len(t, songs, 1)
	assert.Equal(t, float64(0), songs[0]["rating_count"])
	assert.Nil(t, songs[0]["avg_rating"])

	rateURL := fmt.Sprintf("%s/api/songs/%d/rate", srv.URL, songID)

	// First rating inserts
	resp, payload = doJSON(t, http.MethodPost, rateURL, map[string]any{
		"user_id": "u1",
		"rating":  5,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Rating added successfully", payload["message"])
	assert.Equal(t, false, payload["updated"])

	// Same user re-rates: replaced, not duplicated
	resp, payload = doJSON(t, http.MethodPost, rateURL, map[string]any{
		"user_id": "u1",
		"rating":  7,
		"review":  "grew on me",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, true, payload["updated"])

	// Aggregates reflect the replacement
	_, songs = getList(t, srv.URL+"/api/songs")
	require.Len(t, songs, 1)
	assert.Equal(t, float64(1), songs[0]["rating_count"])
	assert.Equal(t, float64(7), songs[0]["avg_rating"])

	// Ratings listings
	_, ratings := getList(t, fmt.Sprintf("%s/api/songs/%d/ratings", srv.URL, songID))
	require.Len(t, ratings, 1)
	assert.Equal(t, "u1", ratings[0]["user_id"])
	assert.Equal(t, "grew on me", ratings[0]["review"])

	_, ratings = getList(t, srv.URL+"/api/ratings")
	assert.Len(t, ratings, 1)

	// Current week exists now
	resp, payload = doJSON(t, http.MethodGet, srv.URL+"/api/weeks/current", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, true, payload["is_active"])

	// Admin reset clears the board
	resp, payload = doJSON(t, http.MethodPost, srv.URL+"/api/admin/reset", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Songs reset for new week", payload["message"])
	assert.Equal(t, float64(1), payload["songs_deactivated"])

	_, songs = getList(t, srv.URL+"/api/songs")
	assert.Empty(t, songs)
}

func TestSubmitSongErrors(t *testing.T) {
	srv, _ := setupTestServer(t)

	// Missing source_url
	resp, payload := doJSON(t, http.MethodPost, srv.URL+"/api/songs", map[string]any{
		"title": "No URL",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, payload["error"], "source_url")

	// Malformed body
	req, _ := http.NewRequest(http.MethodPost, srv.URL+"/api/songs", bytes.NewBufferString("{not json"))
	req.Header.Set("Content-Type", "application/json")
	raw, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer raw.Body.Close()
	assert.Equal(t, http.StatusBadRequest, raw.StatusCode)

	// Duplicate within the week
	body := map[string]any{"source_url": "https://open.spotify.com/track/dup"}
	resp, _ = doJSON(t, http.MethodPost, srv.URL+"/api/songs", body)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp, _ = doJSON(t, http.MethodPost, srv.URL+"/api/songs", body)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
}

func TestRateSongErrors(t *testing.T) {
	srv, _ := setupTestServer(t)

	resp, payload := doJSON(t, http.MethodPost, srv.URL+"/api/songs", map[string]any{
		"source_url": "https://open.spotify.com/track/abc123",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	songID := int64(payload["id"].(float64))

	rateURL := fmt.Sprintf("%s/api/songs/%d/rate", srv.URL, songID)

	// Out-of-range score
	resp, _ = doJSON(t, http.MethodPost, rateURL, map[string]any{"user_id": "u1", "rating": 8})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	// Missing rating field entirely
	resp, _ = doJSON(t, http.MethodPost, rateURL, map[string]any{"user_id": "u1"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	// Unknown song
	resp, _ = doJSON(t, http.MethodPost, srv.URL+"/api/songs/9999/rate", map[string]any{"user_id": "u1", "rating": 5})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	// Non-numeric id
	resp, _ = doJSON(t, http.MethodPost, srv.URL+"/api/songs/nope/rate", map[string]any{"user_id": "u1", "rating": 5})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestCurrentWeekNotFound(t *testing.T) {
	srv, _ := setupTestServer(t)

	resp, _ := doJSON(t, http.MethodGet, srv.URL+"/api/weeks/current", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

type stubTracks struct{}

func (stubTracks) GetTrack(ctx context.Context, trackID string) (*spotify.Track, error) {
	return &spotify.Track{
		ID:      trackID,
		Name:    "Stub Song",
		Artists: []spotify.Artist{{Name: "Stub Artist"}},
	}, nil
}

func (stubTracks) GetPlaylistTracks(ctx context.Context, playlistID string) ([]spotify.Track, error) {
	return nil, nil
}

func TestBotMessageEndpoint(t *testing.T) {
	db, err := store.NewSQLiteDB(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	log := logger.Default()
	weeks := app.NewWeekService(db, store.NewSettingsRepo(db), time.Wednesday, log)
	songs := app.NewSongService(db, weeks, 7, log)

	h := NewHandler(songs, weeks, log)
	h.Bot = bot.NewProcessor(songs, stubTracks{}, "chan-1", log)
	r := chi.NewRouter()
	h.RegisterRoutes(r)
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)

	// A track link in the watched channel becomes a submission
	resp, payload := doJSON(t, http.MethodPost, srv.URL+"/api/bot/message", map[string]any{
		"channel_id": "chan-1",
		"message_id": "m1",
		"author":     "tester",
		"content":    "check this out https://open.spotify.com/track/abc123",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, payload["reply"], "Stub Song")

	_, list := getList(t, srv.URL+"/api/songs")
	require.Len(t, list, 1)
	assert.Equal(t, "Stub Song", list[0]["title"])

	// Messages from other channels are ignored
	resp, payload = doJSON(t, http.MethodPost, srv.URL+"/api/bot/message", map[string]any{
		"channel_id": "chan-2",
		"content":    "https://open.spotify.com/track/other",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "", payload["reply"])

	// Missing channel id is rejected
	resp, _ = doJSON(t, http.MethodPost, srv.URL+"/api/bot/message", map[string]any{
		"content": "hello",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestBotRouteAbsentWithoutProcessor(t *testing.T) {
	srv, _ := setupTestServer(t)

	resp, _ := doJSON(t, http.MethodPost, srv.URL+"/api/bot/message", map[string]any{
		"channel_id": "chan-1",
		"content":    "https://open.spotify.com/track/abc123",
	})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
