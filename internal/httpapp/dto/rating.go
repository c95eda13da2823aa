package dto

import (
	"fmt"
	"strings"
)

// SubmitRatingRequest is the body of POST /api/songs/{id}/rate.
type SubmitRatingRequest struct {
	UserID string  `json:"user_id"`
	Rating *int    `json:"rating"`
	Review *string `json:"review"`
}

func (r *SubmitRatingRequest) Validate(ratingMax int) []ValidationError {
	var errs []ValidationError

	if strings.TrimSpace(r.UserID) == "" {
		errs = append(errs, ValidationError{Field: "user_id", Message: "is required"})
	}

	if r.Rating == nil {
		errs = append(errs, ValidationError{Field: "rating", Message: "is required"})
	} else if *r.Rating < 1 || *r.Rating > ratingMax {
		errs = append(errs, ValidationError{
			Field:   "rating",
			Message: fmt.Sprintf("must be between 1 and %d", ratingMax),
		})
	}

	return errs
}
