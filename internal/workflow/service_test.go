package workflow

import (
	"database/sql"
	"errors"
	"io"
	"log"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vidflow/vidflow_server/internal/models"
	"github.com/vidflow/vidflow_server/internal/notifier"
	"github.com/vidflow/vidflow_server/internal/utils"
)

type fakeVideoStore struct {
	video        *models.Video
	getErr       error
	applied      []*StatusChange
	applyErr     error
	getCallCount int
}

func (f *fakeVideoStore) GetVideoByID(videoID uuid.UUID, companyID uuid.UUID) (*models.Video, error) {
	f.getCallCount++
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.video, nil
}

func (f *fakeVideoStore) ApplyStatusChange(change *StatusChange) error {
	if f.applyErr != nil {
		return f.applyErr
	}
	f.applied = append(f.applied, change)
	return nil
}

type fakeUserStore struct {
	user     *models.User
	userErr  error
	admin    *models.User
	adminErr error
	admins   []models.User
}

func (f *fakeUserStore) GetUserByID(userID uuid.UUID, companyID uuid.UUID) (*models.User, error) {
	if f.userErr != nil {
		return nil, f.userErr
	}
	return f.user, nil
}

func (f *fakeUserStore) GetCompanyAdmin(companyID uuid.UUID) (*models.User, error) {
	if f.adminErr != nil {
		return nil, f.adminErr
	}
	return f.admin, nil
}

func (f *fakeUserStore) GetCompanyAdmins(companyID uuid.UUID) ([]models.User, error) {
	return f.admins, nil
}

type fakeFreelancerStore struct {
	freelancer    *models.Freelancer
	freelancerErr error
	byRole        *models.Freelancer
	byRoleErr     error
	all           []models.Freelancer
}

func (f *fakeFreelancerStore) GetFreelancerByID(freelancerID uuid.UUID, companyID uuid.UUID) (*models.Freelancer, error) {
	if f.freelancerErr != nil {
		return nil, f.freelancerErr
	}
	return f.freelancer, nil
}

func (f *fakeFreelancerStore) GetVideoFreelancerByRole(videoID uuid.UUID, role models.FreelancerRole) (*models.Freelancer, error) {
	if f.byRoleErr != nil {
		return nil, f.byRoleErr
	}
	return f.byRole, nil
}

func (f *fakeFreelancerStore) GetVideoFreelancers(videoID uuid.UUID) ([]models.Freelancer, error) {
	return f.all, nil
}

type fakeSettingsStore struct {
	settings *models.Settings
	err      error
}

func (f *fakeSettingsStore) GetSettingsByCompanyID(companyID uuid.UUID) (*models.Settings, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.settings, nil
}

type fakeDispatcher struct {
	sent []notifier.Notification
}

func (f *fakeDispatcher) Enqueue(n notifier.Notification) {
	f.sent = append(f.sent, n)
}

type fakeRecorder struct {
	events []StatusEvent
	err    error
}

func (f *fakeRecorder) RecordStatusChange(ev StatusEvent) error {
	if f.err != nil {
		return f.err
	}
	f.events = append(f.events, ev)
	return nil
}

type fixture struct {
	videos      *fakeVideoStore
	users       *fakeUserStore
	freelancers *fakeFreelancerStore
	settings    *fakeSettingsStore
	dispatcher  *fakeDispatcher
	recorder    *fakeRecorder
	service     *Service

	companyID uuid.UUID
	videoID   uuid.UUID
	userID    uuid.UUID
}

func newFixture() *fixture {
	companyID := uuid.New()
	videoID := uuid.New()
	userID := uuid.New()

	f := &fixture{
		videos: &fakeVideoStore{
			video: &models.Video{
				ID:        videoID,
				CompanyID: companyID,
				Title:     "Launch video",
				Status:    models.StatusScriptInProgress,
				UpdatedAt: time.Now().UTC().Add(-2 * time.Minute),
			},
		},
		users: &fakeUserStore{
			user: &models.User{ID: userID, CompanyID: companyID, Name: "Ana", Email: "ana@acme.test", Role: models.RoleAdmin},
		},
		freelancers: &fakeFreelancerStore{},
		settings:    &fakeSettingsStore{err: sql.ErrNoRows},
		dispatcher:  &fakeDispatcher{},
		recorder:    &fakeRecorder{},
		companyID:   companyID,
		videoID:     videoID,
		userID:      userID,
	}
	logger := log.New(io.Discard, "", 0)
	f.service = NewService(f.videos, f.users, f.freelancers, f.settings, f.dispatcher, f.recorder, logger)
	return f
}

func (f *fixture) params(status models.VideoStatus) UpdateStatusParams {
	return UpdateStatusParams{
		VideoID:   f.videoID,
		CompanyID: f.companyID,
		Status:    status,
		ActorID:   f.userID,
		IsUser:    true,
	}
}

func TestUpdateStatusAutoAdvance(t *testing.T) {
	f := newFixture()

	result, err := f.service.UpdateStatus(f.params(models.StatusScriptCompleted))
	require.NoError(t, err)

	assert.Equal(t, models.StatusScriptInProgress, result.PreviousStatus)
	assert.Equal(t, models.StatusNarrationRequested, result.NewStatus)
	assert.Equal(t, string(models.StatusNarrationRequested), result.NextStatus)

	require.Len(t, f.videos.applied, 1)
	change := f.videos.applied[0]
	assert.Equal(t, models.StatusScriptCompleted, change.Requested)
	assert.Equal(t, models.StatusNarrationRequested, change.Final)

	// The log records the requested transition, not the advanced one.
	assert.Equal(t, models.StatusScriptInProgress, change.Log.FromStatus)
	assert.Equal(t, models.StatusScriptCompleted, change.Log.ToStatus)
}

func TestUpdateStatusNoAdvanceReturnsSentinel(t *testing.T) {
	tests := []models.VideoStatus{
		models.StatusThumbnailCompleted,
		models.StatusPublished,
		models.StatusCancelled,
		models.StatusEditingInProgress,
	}

	for _, status := range tests {
		t.Run(string(status), func(t *testing.T) {
			f := newFixture()

			result, err := f.service.UpdateStatus(f.params(status))
			require.NoError(t, err)

			assert.Equal(t, status, result.NewStatus)
			assert.Equal(t, NextStatusFinished, result.NextStatus)

			require.Len(t, f.videos.applied, 1)
			assert.Equal(t, status, f.videos.applied[0].Final)
		})
	}
}

func TestUpdateStatusDuration(t *testing.T) {
	f := newFixture()
	f.videos.video.Status = models.StatusEditingInProgress
	f.videos.video.UpdatedAt = time.Now().UTC().Add(-150 * time.Second)

	result, err := f.service.UpdateStatus(f.params(models.StatusEditingCompleted))
	require.NoError(t, err)

	assert.InDelta(t, 150, result.DurationSeconds, 2)
	require.Len(t, f.videos.applied, 1)
	assert.Equal(t, result.DurationSeconds, f.videos.applied[0].Log.DurationSeconds)
}

func TestUpdateStatusDurationZeroOutsideCompletion(t *testing.T) {
	f := newFixture()
	f.videos.video.Status = models.StatusScriptRequested
	f.videos.video.UpdatedAt = time.Now().UTC().Add(-time.Hour)

	result, err := f.service.UpdateStatus(f.params(models.StatusScriptInProgress))
	require.NoError(t, err)

	assert.Equal(t, int64(0), result.DurationSeconds)
}

func TestUpdateStatusValidation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*UpdateStatusParams)
	}{
		{"missing company", func(p *UpdateStatusParams) { p.CompanyID = uuid.Nil }},
		{"missing status", func(p *UpdateStatusParams) { p.Status = "" }},
		{"missing actor", func(p *UpdateStatusParams) { p.ActorID = uuid.Nil }},
		{"unknown status", func(p *UpdateStatusParams) { p.Status = "Rendering_Requested" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()
			params := f.params(models.StatusScriptCompleted)
			tt.mutate(&params)

			_, err := f.service.UpdateStatus(params)
			require.Error(t, err)

			var appErr *utils.AppError
			require.ErrorAs(t, err, &appErr)
			assert.Equal(t, utils.CodeValidation, appErr.Code)

			// Validation failures never reach the stores.
			assert.Zero(t, f.videos.getCallCount)
			assert.Empty(t, f.videos.applied)
		})
	}
}

func TestUpdateStatusUserNotFound(t *testing.T) {
	f := newFixture()
	f.users.userErr = sql.ErrNoRows

	_, err := f.service.UpdateStatus(f.params(models.StatusScriptCompleted))

	var appErr *utils.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, utils.CodeUserNotFound, appErr.Code)
	assert.Empty(t, f.videos.applied)
}

func TestUpdateStatusFreelancerNotFound(t *testing.T) {
	f := newFixture()
	f.freelancers.freelancerErr = sql.ErrNoRows

	params := f.params(models.StatusScriptCompleted)
	params.IsUser = false

	_, err := f.service.UpdateStatus(params)

	var appErr *utils.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, utils.CodeFreelancerNotFound, appErr.Code)
	assert.Empty(t, f.videos.applied)
}

func TestUpdateStatusMissingAdmin(t *testing.T) {
	f := newFixture()
	f.freelancers.freelancer = &models.Freelancer{
		ID: uuid.New(), CompanyID: f.companyID, Name: "Bia", Role: models.RoleScriptwriter,
	}
	f.users.adminErr = sql.ErrNoRows

	params := f.params(models.StatusScriptCompleted)
	params.ActorID = f.freelancers.freelancer.ID
	params.IsUser = false

	_, err := f.service.UpdateStatus(params)

	var appErr *utils.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, utils.CodeMissingAdmin, appErr.Code)

	// Actor resolution happens before any write.
	assert.Empty(t, f.videos.applied)
}

func TestUpdateStatusFreelancerActorLoggedAgainstAdmin(t *testing.T) {
	f := newFixture()
	freelancerID := uuid.New()
	adminID := uuid.New()
	f.freelancers.freelancer = &models.Freelancer{
		ID: freelancerID, CompanyID: f.companyID, Name: "Bia", Role: models.RoleScriptwriter,
	}
	f.users.admin = &models.User{ID: adminID, CompanyID: f.companyID, Name: "Ana", Role: models.RoleAdmin}

	params := f.params(models.StatusScriptCompleted)
	params.ActorID = freelancerID
	params.IsUser = false

	result, err := f.service.UpdateStatus(params)
	require.NoError(t, err)

	require.Len(t, f.videos.applied, 1)
	logRow := f.videos.applied[0].Log
	assert.Equal(t, adminID, logRow.UserID)
	require.NotNil(t, logRow.FreelancerID)
	assert.Equal(t, freelancerID, *logRow.FreelancerID)
	assert.False(t, logRow.IsUser)
	assert.Equal(t, "Bia", result.PerformedBy)
}

func TestUpdateStatusVideoNotFound(t *testing.T) {
	f := newFixture()
	f.videos.getErr = sql.ErrNoRows

	_, err := f.service.UpdateStatus(f.params(models.StatusScriptCompleted))

	var appErr *utils.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, utils.CodeVideoNotFound, appErr.Code)
}

func TestUpdateStatusPersistFailureReturnsError(t *testing.T) {
	f := newFixture()
	f.videos.applyErr = errors.New("deadlock")

	_, err := f.service.UpdateStatus(f.params(models.StatusScriptCompleted))
	require.Error(t, err)

	var appErr *utils.AppError
	assert.False(t, errors.As(err, &appErr), "persist errors stay internal")
	assert.Empty(t, f.dispatcher.sent)
}

func TestUpdateStatusAnalyticsFailureIsIgnored(t *testing.T) {
	f := newFixture()
	f.recorder.err = errors.New("clickhouse down")

	result, err := f.service.UpdateStatus(f.params(models.StatusScriptCompleted))
	require.NoError(t, err)
	assert.Equal(t, models.StatusNarrationRequested, result.NewStatus)
}

func TestUpdateStatusRecordsAnalyticsEvent(t *testing.T) {
	f := newFixture()

	_, err := f.service.UpdateStatus(f.params(models.StatusScriptCompleted))
	require.NoError(t, err)

	require.Len(t, f.recorder.events, 1)
	ev := f.recorder.events[0]
	assert.Equal(t, models.StatusScriptInProgress, ev.FromStatus)
	assert.Equal(t, models.StatusNarrationRequested, ev.ToStatus)
	assert.Equal(t, f.videoID, ev.VideoID)
}

func TestStageStartNotifiesAssignedFreelancer(t *testing.T) {
	f := newFixture()
	f.settings.err = nil
	f.settings.settings = &models.Settings{CompanyID: f.companyID, AutoNotify: true}
	f.freelancers.byRole = &models.Freelancer{
		ID: uuid.New(), Name: "Caio", Email: "caio@studio.test", Role: models.RoleNarrator,
	}

	// Script_Completed advances to Narration_Requested, which starts the
	// narrator's stage.
	_, err := f.service.UpdateStatus(f.params(models.StatusScriptCompleted))
	require.NoError(t, err)

	require.Len(t, f.dispatcher.sent, 1)
	n := f.dispatcher.sent[0]
	assert.Equal(t, notifier.ChannelEmail, n.Channel)
	assert.Equal(t, "caio@studio.test", n.Recipient)
	assert.Contains(t, n.Message, "Launch video")
}

func TestStageStartUsesWhatsAppWhenConfigured(t *testing.T) {
	f := newFixture()
	f.settings.err = nil
	f.settings.settings = &models.Settings{
		CompanyID:   f.companyID,
		AutoNotify:  true,
		WhatsappURL: "https://wa.example/send",
	}
	f.freelancers.byRole = &models.Freelancer{
		ID: uuid.New(), Name: "Caio", Email: "caio@studio.test", Whatsapp: "+5511999990000",
	}

	_, err := f.service.UpdateStatus(f.params(models.StatusScriptCompleted))
	require.NoError(t, err)

	require.Len(t, f.dispatcher.sent, 1)
	n := f.dispatcher.sent[0]
	assert.Equal(t, notifier.ChannelWhatsApp, n.Channel)
	assert.Equal(t, "+5511999990000", n.Recipient)
	assert.Equal(t, "https://wa.example/send", n.Creds.URL)
}

func TestStageStartSkippedWithoutAutoNotifyOrFlag(t *testing.T) {
	f := newFixture()
	f.settings.err = nil
	f.settings.settings = &models.Settings{CompanyID: f.companyID, AutoNotify: false}

	_, err := f.service.UpdateStatus(f.params(models.StatusScriptCompleted))
	require.NoError(t, err)

	assert.Empty(t, f.dispatcher.sent)
}

func TestStageStartHonorsExplicitNotifyFlag(t *testing.T) {
	f := newFixture()
	f.settings.err = nil
	f.settings.settings = &models.Settings{CompanyID: f.companyID, AutoNotify: false}
	f.freelancers.byRole = &models.Freelancer{
		ID: uuid.New(), Name: "Caio", Email: "caio@studio.test",
	}

	params := f.params(models.StatusScriptCompleted)
	params.Notify = true

	_, err := f.service.UpdateStatus(params)
	require.NoError(t, err)

	require.Len(t, f.dispatcher.sent, 1)
}

func TestNonStageTransitionNotifiesOthersExcludingActor(t *testing.T) {
	f := newFixture()
	actorFreelancerID := uuid.New()
	otherFreelancer := models.Freelancer{ID: uuid.New(), Name: "Davi", Email: "davi@studio.test"}
	adminID := uuid.New()

	f.freelancers.freelancer = &models.Freelancer{
		ID: actorFreelancerID, CompanyID: f.companyID, Name: "Bia", Email: "bia@studio.test",
	}
	f.freelancers.all = []models.Freelancer{
		{ID: actorFreelancerID, Name: "Bia", Email: "bia@studio.test"},
		otherFreelancer,
	}
	f.users.admin = &models.User{ID: adminID, CompanyID: f.companyID, Name: "Ana", Email: "ana@acme.test"}
	f.users.admins = []models.User{{ID: adminID, Name: "Ana", Email: "ana@acme.test"}}

	// Published is not a stage start, so everyone but the actor hears
	// about it.
	params := f.params(models.StatusPublished)
	params.ActorID = actorFreelancerID
	params.IsUser = false

	_, err := f.service.UpdateStatus(params)
	require.NoError(t, err)

	recipients := make([]string, 0, len(f.dispatcher.sent))
	for _, n := range f.dispatcher.sent {
		recipients = append(recipients, n.Recipient)
	}
	assert.ElementsMatch(t, []string{"davi@studio.test", "ana@acme.test"}, recipients)
}

func TestNonStageTransitionExcludesActingUser(t *testing.T) {
	f := newFixture()
	f.users.admins = []models.User{
		{ID: f.userID, Name: "Ana", Email: "ana@acme.test"},
		{ID: uuid.New(), Name: "Eva", Email: "eva@acme.test"},
	}

	_, err := f.service.UpdateStatus(f.params(models.StatusPublished))
	require.NoError(t, err)

	require.Len(t, f.dispatcher.sent, 1)
	assert.Equal(t, "eva@acme.test", f.dispatcher.sent[0].Recipient)
}

func TestNotifyFailuresNeverSurface(t *testing.T) {
	f := newFixture()
	f.settings.err = errors.New("settings table gone")
	f.freelancers.byRoleErr = errors.New("lookup failed")

	result, err := f.service.UpdateStatus(f.params(models.StatusScriptCompleted))
	require.NoError(t, err)
	assert.Equal(t, models.StatusNarrationRequested, result.NewStatus)
}
