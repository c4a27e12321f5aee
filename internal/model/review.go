package model

import "time"

// Review is unique per (user, event) and only admitted for users holding an
// ATTENDED booking for that event.
type Review struct {
	ID                 int       `json:"id" db:"id"`
	UserID             int       `json:"user_id" db:"user_id"`
	EventID            int       `json:"event_id" db:"event_id"`
	Rating             int       `json:"rating" db:"rating"`
	Comment            *string   `json:"comment,omitempty" db:"comment"`
	MediaFiles         []string  `json:"media_files,omitempty" db:"media_files"`
	IsVerifiedAttendee bool      `json:"is_verified_attendee" db:"is_verified_attendee"`
	CreatedAt          time.Time `json:"created_at" db:"created_at"`
	UpdatedAt          time.Time `json:"updated_at" db:"updated_at"`
}

type CreateReviewRequest struct {
	Rating     int      `json:"rating" binding:"required"`
	Comment    *string  `json:"comment"`
	MediaFiles []string `json:"mediaFiles"`
}

type UpdateReviewRequest struct {
	Rating  *int    `json:"rating"`
	Comment *string `json:"comment"`
}
