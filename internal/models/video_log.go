package models

import (
	"time"

	"github.com/google/uuid"
)

// VideoLog is an append-only record of a status transition. Rows are never
// mutated or deleted except by cascade when the video itself is deleted.
type VideoLog struct {
	ID              uuid.UUID   `json:"id"`
	VideoID         uuid.UUID   `json:"video_id"`
	CompanyID       uuid.UUID   `json:"company_id"`
	UserID          uuid.UUID   `json:"user_id"`
	FreelancerID    *uuid.UUID  `json:"freelancer_id,omitempty"`
	Action          string      `json:"action"`
	FromStatus      VideoStatus `json:"from_status"`
	ToStatus        VideoStatus `json:"to_status"`
	DurationSeconds int64       `json:"duration_seconds"`
	IsUser          bool        `json:"is_user"`
	Created_At      time.Time   `json:"created_at"`
}

// VideoLogWithNames joins in display names for reporting and export.
type VideoLogWithNames struct {
	VideoLog
	VideoTitle string `json:"video_title"`
	ActorName  string `json:"actor_name"`
}
