package httpapp

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"songboard/internal/app"
	"songboard/internal/bot"
	"songboard/internal/logger"
)

type Handler struct {
	Songs  *app.SongService
	Weeks  *app.WeekService
	Bot    *bot.Processor // optional; enables the message ingest endpoint
	Logger *logger.Logger
}

func NewHandler(songs *app.SongService, weeks *app.WeekService, log *logger.Logger) *Handler {
	return &Handler{
		Songs:  songs,
		Weeks:  weeks,
		Logger: log,
	}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/api/health", h.Health)
	r.Get("/api/songs", h.ListSongs)
	r.Post("/api/songs", h.SubmitSong)
	r.Post("/api/songs/{id}/rate", h.RateSong)
	r.Get("/api/songs/{id}/ratings", h.ListSongRatings)
	r.Get("/api/ratings", h.ListAllRatings)
	r.Get("/api/weeks/current", h.CurrentWeek)
	r.Post("/api/admin/reset", h.AdminReset)
	if h.Bot != nil {
		r.Post("/api/bot/message", h.BotMessage)
	}
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		h.Logger.Error("Failed to encode response", "error", err)
	}
}

func (h *Handler) writeError(w http.ResponseWriter, status int, message string) {
	h.writeJSON(w, status, map[string]string{"error": message})
}
