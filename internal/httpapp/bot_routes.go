package httpapp

import (
	"encoding/json"
	"net/http"

	"songboard/internal/bot"
	"songboard/internal/httpapp/dto"
)

// BotMessage ingests one chat message relayed by the gateway and returns
// the reply text the gateway should post back, if any.
func (h *Handler) BotMessage(w http.ResponseWriter, r *http.Request) {
	var req dto.BotMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if errs := req.Validate(); len(errs) > 0 {
		h.writeError(w, http.StatusBadRequest, dto.ToResponse(errs))
		return
	}

	reply, err := h.Bot.HandleMessage(r.Context(), bot.ChatMessage{
		ChannelID: req.ChannelID,
		MessageID: req.MessageID,
		Author:    req.Author,
		Content:   req.Content,
	})
	if err != nil {
		h.Logger.Error("Failed to process chat message", "message_id", req.MessageID, "error", err)
		h.writeError(w, http.StatusInternalServerError, "Failed to process message")
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]string{"reply": reply})
}
