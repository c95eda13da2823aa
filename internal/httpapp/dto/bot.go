package dto

import "strings"

// BotMessageRequest is one chat message relayed by the gateway to
// POST /api/bot/message.
type BotMessageRequest struct {
	ChannelID string `json:"channel_id"`
	MessageID string `json:"message_id"`
	Author    string `json:"author"`
	Content   string `json:"content"`
}

func (r *BotMessageRequest) Validate() []ValidationError {
	var errs []ValidationError

	if strings.TrimSpace(r.ChannelID) == "" {
		errs = append(errs, ValidationError{Field: "channel_id", Message: "is required"})
	}
	if strings.TrimSpace(r.Content) == "" {
		errs = append(errs, ValidationError{Field: "content", Message: "is required"})
	}

	return errs
}
