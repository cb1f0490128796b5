package models

import (
	"time"

	"github.com/google/uuid"
)

type Company struct {
	ID         uuid.UUID `json:"id"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	Phone      string    `json:"phone"`
	Plan       string    `json:"plan"`
	Is_Active  bool      `json:"is_active"`
	Created_At time.Time `json:"created_at"`
	Updated_At time.Time `json:"updated_at"`
}

type Channel struct {
	ID         uuid.UUID `json:"id"`
	CompanyID  uuid.UUID `json:"company_id"`
	Name       string    `json:"name"`
	YoutubeURL string    `json:"youtube_url"`
	Created_At time.Time `json:"created_at"`
	Updated_At time.Time `json:"updated_at"`
}

type CreateCompanyRequest struct {
	Name  string `json:"name" validate:"required"`
	Email string `json:"email" validate:"required,email"`
	Phone string `json:"phone"`
	Plan  string `json:"plan" validate:"required,oneof=free starter pro"`
}

type CreateChannelRequest struct {
	Name       string `json:"name" validate:"required"`
	YoutubeURL string `json:"youtube_url"`
}
