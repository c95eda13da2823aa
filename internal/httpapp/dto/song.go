package dto

import (
	"net/url"
	"strings"
)

// SubmitSongRequest is the body of POST /api/songs.
type SubmitSongRequest struct {
	SourceURL string  `json:"source_url"`
	Title     *string `json:"title"`
	Artist    *string `json:"artist"`
	Album     *string `json:"album"`
	ImageURL  *string `json:"image_url"`
	AddedBy   *string `json:"added_by"`
}

func (r *SubmitSongRequest) Validate() []ValidationError {
	var errs []ValidationError

	if strings.TrimSpace(r.SourceURL) == "" {
		errs = append(errs, ValidationError{Field: "source_url", Message: "is required"})
	} else if _, err := url.ParseRequestURI(r.SourceURL); err != nil {
		errs = append(errs, ValidationError{Field: "source_url", Message: "invalid URL format"})
	}

	if r.ImageURL != nil && *r.ImageURL != "" {
		if _, err := url.ParseRequestURI(*r.ImageURL); err != nil {
			errs = append(errs, ValidationError{Field: "image_url", Message: "invalid URL format"})
		}
	}

	return errs
}
