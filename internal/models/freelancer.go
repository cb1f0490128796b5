package models

import (
	"time"

	"github.com/google/uuid"
)

type FreelancerRole string

const (
	RoleScriptwriter FreelancerRole = "roteirista"
	RoleNarrator     FreelancerRole = "narrador"
	RoleEditor       FreelancerRole = "editor"
	RoleThumbMaker   FreelancerRole = "thumb_maker"
)

func (r FreelancerRole) Valid() bool {
	switch r {
	case RoleScriptwriter, RoleNarrator, RoleEditor, RoleThumbMaker:
		return true
	}
	return false
}

type Freelancer struct {
	ID         uuid.UUID      `json:"id"`
	CompanyID  uuid.UUID      `json:"company_id"`
	Name       string         `json:"name"`
	Email      string         `json:"email"`
	Whatsapp   string         `json:"whatsapp"`
	Role       FreelancerRole `json:"role"`
	Rate       float64        `json:"rate"`
	Created_At time.Time      `json:"created_at"`
	Updated_At time.Time      `json:"updated_at"`
}

// VideoFreelancerRole assigns a freelancer to one production stage of a
// video. Current usage keeps at most one active freelancer per
// (video, role); notification lookups assume it.
type VideoFreelancerRole struct {
	VideoID      uuid.UUID      `json:"video_id"`
	FreelancerID uuid.UUID      `json:"freelancer_id"`
	Role         FreelancerRole `json:"role"`
}

type CreateFreelancerRequest struct {
	Name     string  `json:"name" validate:"required"`
	Email    string  `json:"email" validate:"required,email"`
	Whatsapp string  `json:"whatsapp"`
	Role     string  `json:"role" validate:"required,oneof=roteirista narrador editor thumb_maker"`
	Rate     float64 `json:"rate"`
}

type AssignFreelancerRequest struct {
	FreelancerID string `json:"freelancer_id" validate:"required,uuid4"`
	Role         string `json:"role" validate:"required,oneof=roteirista narrador editor thumb_maker"`
}
