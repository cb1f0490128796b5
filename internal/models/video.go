package models

import (
	"time"

	"github.com/google/uuid"
)

type VideoStatus string

const (
	StatusPending VideoStatus = "Pending"

	StatusScriptRequested  VideoStatus = "Script_Requested"
	StatusScriptInProgress VideoStatus = "Script_InProgress"
	StatusScriptCompleted  VideoStatus = "Script_Completed"

	StatusNarrationRequested  VideoStatus = "Narration_Requested"
	StatusNarrationInProgress VideoStatus = "Narration_InProgress"
	StatusNarrationCompleted  VideoStatus = "Narration_Completed"

	StatusEditingRequested  VideoStatus = "Editing_Requested"
	StatusEditingInProgress VideoStatus = "Editing_InProgress"
	StatusEditingCompleted  VideoStatus = "Editing_Completed"

	StatusThumbnailRequested  VideoStatus = "Thumbnail_Requested"
	StatusThumbnailInProgress VideoStatus = "Thumbnail_InProgress"
	StatusThumbnailCompleted  VideoStatus = "Thumbnail_Completed"

	StatusPublished VideoStatus = "Published"
	StatusCancelled VideoStatus = "Cancelled"
)

var allStatuses = map[VideoStatus]bool{
	StatusPending:             true,
	StatusScriptRequested:     true,
	StatusScriptInProgress:    true,
	StatusScriptCompleted:     true,
	StatusNarrationRequested:  true,
	StatusNarrationInProgress: true,
	StatusNarrationCompleted:  true,
	StatusEditingRequested:    true,
	StatusEditingInProgress:   true,
	StatusEditingCompleted:    true,
	StatusThumbnailRequested:  true,
	StatusThumbnailInProgress: true,
	StatusThumbnailCompleted:  true,
	StatusPublished:           true,
	StatusCancelled:           true,
}

func (s VideoStatus) Valid() bool {
	return allStatuses[s]
}

type Video struct {
	ID           uuid.UUID   `json:"id"`
	CompanyID    uuid.UUID   `json:"company_id"`
	ChannelID    uuid.UUID   `json:"channel_id"`
	Title        string      `json:"title"`
	Status       VideoStatus `json:"status"`
	Observations string      `json:"observations"`
	YoutubeURL   string      `json:"youtube_url"`
	CreatedAt    time.Time   `json:"created_at"`
	UpdatedAt    time.Time   `json:"updated_at"`
}

type CreateVideoRequest struct {
	ChannelID    string `json:"channel_id" validate:"required,uuid4"`
	Title        string `json:"title" validate:"required"`
	Status       string `json:"status"`
	Observations string `json:"observations"`
	YoutubeURL   string `json:"youtube_url"`
}

type UpdateVideoStatusRequest struct {
	CompanyID string `json:"company_id"`
	Status    string `json:"status"`
	UserID    string `json:"user_id"`
	IsUser    *bool  `json:"is_user"`
	Notify    bool   `json:"notify"`
}
