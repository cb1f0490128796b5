package models

import (
	"time"

	"github.com/google/uuid"
)

// Settings holds per-company notification configuration. The workflow only
// reads it; lifecycle is owned by the settings endpoints.
type Settings struct {
	CompanyID         uuid.UUID `json:"company_id"`
	AutoNotify        bool      `json:"auto_notify"`
	ScriptTemplate    string    `json:"script_template"`
	NarrationTemplate string    `json:"narration_template"`
	EditingTemplate   string    `json:"editing_template"`
	ThumbnailTemplate string    `json:"thumbnail_template"`
	GeneralTemplate   string    `json:"general_template"`
	WhatsappURL       string    `json:"whatsapp_url"`
	WhatsappToken     string    `json:"-"`
	WhatsappInstance  string    `json:"whatsapp_instance"`
	Updated_At        time.Time `json:"updated_at"`
}

type UpdateSettingsRequest struct {
	AutoNotify        *bool   `json:"auto_notify"`
	ScriptTemplate    *string `json:"script_template"`
	NarrationTemplate *string `json:"narration_template"`
	EditingTemplate   *string `json:"editing_template"`
	ThumbnailTemplate *string `json:"thumbnail_template"`
	GeneralTemplate   *string `json:"general_template"`
	WhatsappURL       *string `json:"whatsapp_url"`
	WhatsappToken     *string `json:"whatsapp_token"`
	WhatsappInstance  *string `json:"whatsapp_instance"`
}
