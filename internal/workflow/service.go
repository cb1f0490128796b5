package workflow

import (
	"database/sql"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/vidflow/vidflow_server/internal/models"
	"github.com/vidflow/vidflow_server/internal/notifier"
	"github.com/vidflow/vidflow_server/internal/utils"
)

// Store interfaces are kept narrow so the service only depends on what the
// status update actually needs. The Postgres/MySQL stores satisfy them.

type VideoStore interface {
	GetVideoByID(videoID uuid.UUID, companyID uuid.UUID) (*models.Video, error)
	ApplyStatusChange(change *StatusChange) error
}

type UserStore interface {
	GetUserByID(userID uuid.UUID, companyID uuid.UUID) (*models.User, error)
	GetCompanyAdmin(companyID uuid.UUID) (*models.User, error)
	GetCompanyAdmins(companyID uuid.UUID) ([]models.User, error)
}

type FreelancerStore interface {
	GetFreelancerByID(freelancerID uuid.UUID, companyID uuid.UUID) (*models.Freelancer, error)
	GetVideoFreelancerByRole(videoID uuid.UUID, role models.FreelancerRole) (*models.Freelancer, error)
	GetVideoFreelancers(videoID uuid.UUID) ([]models.Freelancer, error)
}

type SettingsStore interface {
	GetSettingsByCompanyID(companyID uuid.UUID) (*models.Settings, error)
}

// EventRecorder receives status-change events for analytics. Recording is
// best effort; failures are logged and never affect the operation.
type EventRecorder interface {
	RecordStatusChange(ev StatusEvent) error
}

type StatusEvent struct {
	CompanyID       uuid.UUID
	VideoID         uuid.UUID
	FromStatus      models.VideoStatus
	ToStatus        models.VideoStatus
	DurationSeconds int64
	OccurredAt      time.Time
}

// StatusChange is the unit the video store persists atomically: the primary
// status write, the log row, and the auto-advance write when Final differs
// from Requested.
type StatusChange struct {
	VideoID   uuid.UUID
	CompanyID uuid.UUID
	Requested models.VideoStatus
	Final     models.VideoStatus
	UpdatedAt time.Time
	Log       models.VideoLog
}

type UpdateStatusParams struct {
	VideoID   uuid.UUID
	CompanyID uuid.UUID
	Status    models.VideoStatus
	ActorID   uuid.UUID
	IsUser    bool
	Notify    bool
}

type UpdateStatusResult struct {
	PreviousStatus  models.VideoStatus `json:"previous_status"`
	NewStatus       models.VideoStatus `json:"new_status"`
	NextStatus      string             `json:"next_status"`
	DurationSeconds int64              `json:"duration_seconds"`
	PerformedBy     string             `json:"performed_by"`
	PerformedByUser bool               `json:"performed_by_user"`
}

type Service struct {
	Videos      VideoStore
	Users       UserStore
	Freelancers FreelancerStore
	Settings    SettingsStore
	Dispatcher  notifier.Dispatcher
	Analytics   EventRecorder
	Logger      *log.Logger
}

func NewService(videos VideoStore, users UserStore, freelancers FreelancerStore, settings SettingsStore, dispatcher notifier.Dispatcher, analytics EventRecorder, logger *log.Logger) *Service {
	return &Service{
		Videos:      videos,
		Users:       users,
		Freelancers: freelancers,
		Settings:    settings,
		Dispatcher:  dispatcher,
		Analytics:   analytics,
		Logger:      logger,
	}
}

// UpdateStatus performs the status update operation: validates the request,
// resolves the acting party, persists the new status together with its log
// row and the auto-advance write in one transaction, and queues
// notifications. Notification and analytics failures never propagate.
func (s *Service) UpdateStatus(params UpdateStatusParams) (*UpdateStatusResult, error) {
	if params.CompanyID == uuid.Nil {
		return nil, utils.NewValidationError("company_id is required")
	}
	if params.Status == "" {
		return nil, utils.NewValidationError("status is required")
	}
	if params.ActorID == uuid.Nil {
		return nil, utils.NewValidationError("user_id is required")
	}
	if !params.Status.Valid() {
		return nil, utils.NewValidationError(fmt.Sprintf("unknown status %q", params.Status))
	}

	actorUser, actorFreelancer, err := s.resolveActor(params)
	if err != nil {
		return nil, err
	}

	video, err := s.Videos.GetVideoByID(params.VideoID, params.CompanyID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, utils.NewNotFoundError(utils.CodeVideoNotFound, "video not found")
		}
		return nil, fmt.Errorf("loading video %s: %w", params.VideoID, err)
	}

	now := time.Now().UTC()
	previous := video.Status
	duration := Duration(previous, params.Status, video.UpdatedAt, now)

	final := params.Status
	nextField := NextStatusFinished
	if next, ok := NextStatus(params.Status); ok {
		final = next
		nextField = string(next)
	}

	logRow := models.VideoLog{
		ID:              uuid.New(),
		VideoID:         video.ID,
		CompanyID:       params.CompanyID,
		UserID:          actorUser.ID,
		Action:          "status_change",
		FromStatus:      previous,
		ToStatus:        params.Status,
		DurationSeconds: duration,
		IsUser:          params.IsUser,
		Created_At:      now,
	}
	if actorFreelancer != nil {
		id := actorFreelancer.ID
		logRow.FreelancerID = &id
	}

	change := &StatusChange{
		VideoID:   video.ID,
		CompanyID: params.CompanyID,
		Requested: params.Status,
		Final:     final,
		UpdatedAt: now,
		Log:       logRow,
	}

	err = s.Videos.ApplyStatusChange(change)
	if err != nil {
		return nil, fmt.Errorf("applying status change for video %s (company %s): %w", video.ID, params.CompanyID, err)
	}

	if s.Analytics != nil {
		recErr := s.Analytics.RecordStatusChange(StatusEvent{
			CompanyID:       params.CompanyID,
			VideoID:         video.ID,
			FromStatus:      previous,
			ToStatus:        final,
			DurationSeconds: duration,
			OccurredAt:      now,
		})
		if recErr != nil {
			s.Logger.Println("Error recording status event:", recErr)
		}
	}

	s.notify(params, video, final, actorUser, actorFreelancer)

	performedBy := actorUser.Name
	if actorFreelancer != nil {
		performedBy = actorFreelancer.Name
	}

	return &UpdateStatusResult{
		PreviousStatus:  previous,
		NewStatus:       final,
		NextStatus:      nextField,
		DurationSeconds: duration,
		PerformedBy:     performedBy,
		PerformedByUser: params.IsUser,
	}, nil
}

// resolveActor returns the internal user the change is attributed to and,
// when the initiator is a freelancer, the freelancer as well. Every log row
// needs an internal user; for freelancer-initiated changes that is a company
// admin, which every company must have.
func (s *Service) resolveActor(params UpdateStatusParams) (*models.User, *models.Freelancer, error) {
	if params.IsUser {
		user, err := s.Users.GetUserByID(params.ActorID, params.CompanyID)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return nil, nil, utils.NewNotFoundError(utils.CodeUserNotFound, "user not found")
			}
			return nil, nil, fmt.Errorf("loading user %s: %w", params.ActorID, err)
		}
		return user, nil, nil
	}

	freelancer, err := s.Freelancers.GetFreelancerByID(params.ActorID, params.CompanyID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil, utils.NewNotFoundError(utils.CodeFreelancerNotFound, "freelancer not found")
		}
		return nil, nil, fmt.Errorf("loading freelancer %s: %w", params.ActorID, err)
	}

	admin, err := s.Users.GetCompanyAdmin(params.CompanyID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil, utils.NewConfigurationError(utils.CodeMissingAdmin, "company has no admin user")
		}
		return nil, nil, fmt.Errorf("loading admin for company %s: %w", params.CompanyID, err)
	}
	return admin, freelancer, nil
}

// notify queues the side-effect notifications for a committed status change.
// Everything here is best effort: lookups and dispatch failures are logged
// and dropped, never returned.
func (s *Service) notify(params UpdateStatusParams, video *models.Video, final models.VideoStatus, actorUser *models.User, actorFreelancer *models.Freelancer) {
	settings, err := s.Settings.GetSettingsByCompanyID(params.CompanyID)
	if err != nil {
		s.Logger.Println("Error loading notification settings:", err)
		settings = nil
	}

	if role, ok := RoleForStage(final); ok {
		autoNotify := settings != nil && settings.AutoNotify
		if !autoNotify && !params.Notify {
			return
		}

		freelancer, err := s.Freelancers.GetVideoFreelancerByRole(video.ID, role)
		if err != nil {
			s.Logger.Printf("No freelancer to notify for video %s role %s: %v", video.ID, role, err)
			return
		}

		s.enqueueFor(freelancer.Name, freelancer.Whatsapp, freelancer.Email, video, final, settings, stageTemplate(settings, role))
		return
	}

	// Not a stage start: tell everyone involved except whoever made the
	// change.
	freelancers, err := s.Freelancers.GetVideoFreelancers(video.ID)
	if err != nil {
		s.Logger.Printf("Error listing freelancers for video %s: %v", video.ID, err)
	}
	for _, fl := range freelancers {
		if actorFreelancer != nil && fl.ID == actorFreelancer.ID {
			continue
		}
		s.enqueueFor(fl.Name, fl.Whatsapp, fl.Email, video, final, settings, generalTemplate(settings))
	}

	admins, err := s.Users.GetCompanyAdmins(params.CompanyID)
	if err != nil {
		s.Logger.Printf("Error listing admins for company %s: %v", params.CompanyID, err)
	}
	for _, admin := range admins {
		if params.IsUser && admin.ID == actorUser.ID {
			continue
		}
		s.enqueueFor(admin.Name, admin.Whatsapp, admin.Email, video, final, settings, generalTemplate(settings))
	}
}

func (s *Service) enqueueFor(name, whatsapp, email string, video *models.Video, status models.VideoStatus, settings *models.Settings, template string) {
	message := notifier.Render(template, map[string]string{
		"name":   name,
		"video":  video.Title,
		"status": string(status),
	})

	n := notifier.Notification{
		Recipient: email,
		Channel:   notifier.ChannelEmail,
		Subject:   "Atualização de produção: " + video.Title,
		Message:   message,
		CompanyID: video.CompanyID,
		VideoID:   video.ID,
	}
	if whatsapp != "" && settings != nil && settings.WhatsappURL != "" {
		n.Channel = notifier.ChannelWhatsApp
		n.Recipient = whatsapp
		n.Creds = notifier.WhatsappCreds{
			URL:      settings.WhatsappURL,
			Token:    settings.WhatsappToken,
			Instance: settings.WhatsappInstance,
		}
	}
	if n.Recipient == "" {
		return
	}
	s.Dispatcher.Enqueue(n)
}

func stageTemplate(settings *models.Settings, role models.FreelancerRole) string {
	if settings != nil {
		switch role {
		case models.RoleScriptwriter:
			if settings.ScriptTemplate != "" {
				return settings.ScriptTemplate
			}
		case models.RoleNarrator:
			if settings.NarrationTemplate != "" {
				return settings.NarrationTemplate
			}
		case models.RoleEditor:
			if settings.EditingTemplate != "" {
				return settings.EditingTemplate
			}
		case models.RoleThumbMaker:
			if settings.ThumbnailTemplate != "" {
				return settings.ThumbnailTemplate
			}
		}
	}
	return notifier.DefaultStageTemplate
}

func generalTemplate(settings *models.Settings) string {
	if settings != nil && settings.GeneralTemplate != "" {
		return settings.GeneralTemplate
	}
	return notifier.DefaultGeneralTemplate
}
