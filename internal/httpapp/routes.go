package httpapp

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"songboard/internal/app"
	"songboard/internal/domain"
	"songboard/internal/httpapp/dto"
)

func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) ListSongs(w http.ResponseWriter, r *http.Request) {
	songs, err := h.Songs.ListActiveSongs()
	if err != nil {
		h.Logger.Error("Failed to fetch songs", "error", err)
		h.writeError(w, http.StatusInternalServerError, "Failed to fetch songs")
		return
	}
	if songs == nil {
		songs = []*domain.SongWithRating{}
	}
	h.writeJSON(w, http.StatusOK, songs)
}

func (h *Handler) SubmitSong(w http.ResponseWriter, r *http.Request) {
	var req dto.SubmitSongRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if errs := req.Validate(); len(errs) > 0 {
		h.writeError(w, http.StatusBadRequest, dto.ToResponse(errs))
		return
	}

	song, err := h.Songs.SubmitSong(app.Submission{
		SourceURL: req.SourceURL,
		Title:     req.Title,
		Artist:    req.Artist,
		Album:     req.Album,
		ImageURL:  req.ImageURL,
		AddedBy:   req.AddedBy,
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrValidation):
			h.writeError(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, domain.ErrDuplicateSong):
			h.writeError(w, http.StatusConflict, "Song already submitted this week")
		default:
			h.Logger.Error("Failed to add song", "error", err)
			h.writeError(w, http.StatusInternalServerError, "Failed to add song")
		}
		return
	}

	h.writeJSON(w, http.StatusCreated, map[string]any{
		"id":      song.ID,
		"message": "Song added successfully",
		"song":    song,
	})
}

func (h *Handler) RateSong(w http.ResponseWriter, r *http.Request) {
	songID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.writeError(w, http.StatusBadRequest, "Invalid song id")
		return
	}

	var req dto.SubmitRatingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if errs := req.Validate(h.Songs.RatingMax); len(errs) > 0 {
		h.writeError(w, http.StatusBadRequest, dto.ToResponse(errs))
		return
	}

	ratingID, updated, err := h.Songs.SubmitRating(songID, req.UserID, *req.Rating, req.Review)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrValidation):
			h.writeError(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, domain.ErrNotFound):
			h.writeError(w, http.StatusNotFound, "Song not found")
		default:
			h.Logger.Error("Failed to add rating", "error", err)
			h.writeError(w, http.StatusInternalServerError, "Failed to add rating")
		}
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]any{
		"message":   "Rating added successfully",
		"rating_id": ratingID,
		"updated":   updated,
	})
}

func (h *Handler) ListSongRatings(w http.ResponseWriter, r *http.Request) {
	songID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.writeError(w, http.StatusBadRequest, "Invalid song id")
		return
	}

	ratings, err := h.Songs.ListRatings(songID)
	if err != nil {
		h.Logger.Error("Failed to fetch ratings", "song_id", songID, "error", err)
		h.writeError(w, http.StatusInternalServerError, "Failed to fetch ratings")
		return
	}
	if ratings == nil {
		ratings = []*domain.SongRating{}
	}
	h.writeJSON(w, http.StatusOK, ratings)
}

func (h *Handler) ListAllRatings(w http.ResponseWriter, r *http.Request) {
	ratings, err := h.Songs.ListAllRatings()
	if err != nil {
		h.Logger.Error("Failed to fetch all ratings", "error", err)
		h.writeError(w, http.StatusInternalServerError, "Failed to fetch all ratings")
		return
	}
	if ratings == nil {
		ratings = []*domain.SongRating{}
	}
	h.writeJSON(w, http.StatusOK, ratings)
}

func (h *Handler) CurrentWeek(w http.ResponseWriter, r *http.Request) {
	week, err := h.Weeks.CurrentWeek()
	if err != nil {
		h.Logger.Error("Failed to fetch current week", "error", err)
		h.writeError(w, http.StatusInternalServerError, "Failed to fetch current week")
		return
	}
	if week == nil {
		h.writeError(w, http.StatusNotFound, "No active week")
		return
	}
	h.writeJSON(w, http.StatusOK, week)
}

func (h *Handler) AdminReset(w http.ResponseWriter, r *http.Request) {
	week, deactivated, err := h.Weeks.Rollover(time.Now())
	if err != nil {
		h.Logger.Error("Failed to reset songs", "error", err)
		h.writeError(w, http.StatusInternalServerError, "Failed to reset songs")
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]any{
		"message":           "Songs reset for new week",
		"week_id":           week.ID,
		"songs_deactivated": deactivated,
	})
}
