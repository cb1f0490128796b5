package store

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/vidflow/vidflow_server/internal/models"
	"github.com/vidflow/vidflow_server/internal/workflow"
)

type SQLVideoStore struct {
	db *DB
}

func NewSQLVideoStore(db *DB) *SQLVideoStore {
	if db == nil {
		panic("db cannot be nil for SQLVideoStore")
	}
	return &SQLVideoStore{db: db}
}

type VideoStore interface {
	CreateVideo(video *models.Video) error
	GetVideoByID(videoID uuid.UUID, companyID uuid.UUID) (*models.Video, error)
	GetVideosByCompanyID(companyID uuid.UUID, status models.VideoStatus) ([]models.Video, error)
	GetVideosForFreelancer(freelancerID uuid.UUID) ([]models.Video, error)
	UpdateVideo(videoID uuid.UUID, companyID uuid.UUID, title *string, observations *string, youtubeURL *string) error
	ApplyStatusChange(change *workflow.StatusChange) error
	DeleteVideo(videoID uuid.UUID, companyID uuid.UUID) error
}

const videoColumns = `id, company_id, channel_id, title, status, observations, youtube_url, created_at, updated_at`

func scanVideo(row interface{ Scan(...interface{}) error }, v *models.Video) error {
	return row.Scan(
		&v.ID,
		&v.CompanyID,
		&v.ChannelID,
		&v.Title,
		&v.Status,
		&v.Observations,
		&v.YoutubeURL,
		&v.CreatedAt,
		&v.UpdatedAt,
	)
}

func (s *SQLVideoStore) CreateVideo(video *models.Video) error {
	if video.ID == uuid.Nil {
		video.ID = uuid.New()
	}
	if video.Status == "" {
		video.Status = models.StatusPending
	}

	query := s.db.Rebind(`
	INSERT INTO videos (id, company_id, channel_id, title, status, observations, youtube_url)
	VALUES (?, ?, ?, ?, ?, ?, ?)
	`)

	_, err := s.db.Exec(query, video.ID.String(), video.CompanyID.String(), video.ChannelID.String(), video.Title, string(video.Status), video.Observations, video.YoutubeURL)
	if err != nil {
		return fmt.Errorf("error running create video query: %w", err)
	}

	return nil
}

func (s *SQLVideoStore) GetVideoByID(videoID uuid.UUID, companyID uuid.UUID) (*models.Video, error) {
	video := &models.Video{}

	query := s.db.Rebind(`
	SELECT ` + videoColumns + `
	FROM videos
	WHERE id = ? AND company_id = ?
	`)

	err := scanVideo(s.db.QueryRow(query, videoID.String(), companyID.String()), video)
	if err != nil {
		return nil, fmt.Errorf("error running get video by id query: %w", err)
	}

	return video, nil
}

func (s *SQLVideoStore) GetVideosByCompanyID(companyID uuid.UUID, status models.VideoStatus) ([]models.Video, error) {
	query := `
	SELECT ` + videoColumns + `
	FROM videos
	WHERE company_id = ?
	`
	args := []interface{}{companyID.String()}

	if status != "" {
		query += ` AND status = ?`
		args = append(args, string(status))
	}
	query += ` ORDER BY updated_at DESC`

	rows, err := s.db.Query(s.db.Rebind(query), args...)
	if err != nil {
		return nil, fmt.Errorf("failed to get videos: %w", err)
	}
	defer rows.Close()

	var videos []models.Video
	for rows.Next() {
		var video models.Video
		if err := scanVideo(rows, &video); err != nil {
			return nil, fmt.Errorf("failed to scan video: %w", err)
		}
		videos = append(videos, video)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating over video rows: %w", err)
	}

	return videos, nil
}

func (s *SQLVideoStore) GetVideosForFreelancer(freelancerID uuid.UUID) ([]models.Video, error) {
	query := s.db.Rebind(`
	SELECT v.id, v.company_id, v.channel_id, v.title, v.status, v.observations, v.youtube_url, v.created_at, v.updated_at
	FROM videos v
	INNER JOIN video_freelancer_roles vfr ON v.id = vfr.video_id
	WHERE vfr.freelancer_id = ?
	ORDER BY v.updated_at DESC
	`)

	rows, err := s.db.Query(query, freelancerID.String())
	if err != nil {
		return nil, fmt.Errorf("failed to get freelancer videos: %w", err)
	}
	defer rows.Close()

	var videos []models.Video
	for rows.Next() {
		var video models.Video
		if err := scanVideo(rows, &video); err != nil {
			return nil, fmt.Errorf("failed to scan freelancer video: %w", err)
		}
		videos = append(videos, video)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating over freelancer video rows: %w", err)
	}

	return videos, nil
}

func (s *SQLVideoStore) UpdateVideo(videoID uuid.UUID, companyID uuid.UUID, title *string, observations *string, youtubeURL *string) error {
	setClauses := []string{}
	args := []interface{}{}

	if title != nil {
		setClauses = append(setClauses, "title = ?")
		args = append(args, *title)
	}
	if observations != nil {
		setClauses = append(setClauses, "observations = ?")
		args = append(args, *observations)
	}
	if youtubeURL != nil {
		setClauses = append(setClauses, "youtube_url = ?")
		args = append(args, *youtubeURL)
	}

	if len(setClauses) == 0 {
		return fmt.Errorf("no fields provided to update")
	}

	setClauses = append(setClauses, "updated_at = CURRENT_TIMESTAMP")

	query := "UPDATE videos SET "
	for i, clause := range setClauses {
		if i > 0 {
			query += ", "
		}
		query += clause
	}
	query += " WHERE id = ? AND company_id = ?"
	args = append(args, videoID.String(), companyID.String())

	_, err := s.db.Exec(s.db.Rebind(query), args...)
	if err != nil {
		return fmt.Errorf("failed to update video: %w", err)
	}

	return nil
}

// ApplyStatusChange persists a status transition atomically: the requested
// status write, its log row, and the auto-advance write when the transition
// table schedules one. A crash can no longer leave the video on an
// intermediate status with no log row.
func (s *SQLVideoStore) ApplyStatusChange(change *workflow.StatusChange) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to start transaction: %w", err)
	}

	defer tx.Rollback()

	updateQuery := s.db.Rebind(`
	UPDATE videos
	SET status = ?, updated_at = ?
	WHERE id = ? AND company_id = ?
	`)

	res, err := tx.Exec(updateQuery, string(change.Requested), change.UpdatedAt, change.VideoID.String(), change.CompanyID.String())
	if err != nil {
		return fmt.Errorf("failed to update video status: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("video %s not found for company %s", change.VideoID, change.CompanyID)
	}

	var freelancerID interface{}
	if change.Log.FreelancerID != nil {
		freelancerID = change.Log.FreelancerID.String()
	}

	logQuery := s.db.Rebind(`
	INSERT INTO video_logs (id, video_id, company_id, user_id, freelancer_id, action, from_status, to_status, duration_seconds, is_user, created_at)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)

	_, err = tx.Exec(logQuery,
		change.Log.ID.String(),
		change.Log.VideoID.String(),
		change.Log.CompanyID.String(),
		change.Log.UserID.String(),
		freelancerID,
		change.Log.Action,
		string(change.Log.FromStatus),
		string(change.Log.ToStatus),
		change.Log.DurationSeconds,
		change.Log.IsUser,
		change.Log.Created_At,
	)
	if err != nil {
		return fmt.Errorf("failed to insert video log: %w", err)
	}

	if change.Final != change.Requested {
		_, err = tx.Exec(updateQuery, string(change.Final), change.UpdatedAt, change.VideoID.String(), change.CompanyID.String())
		if err != nil {
			return fmt.Errorf("failed to auto-advance video status: %w", err)
		}
	}

	err = tx.Commit()
	if err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

func (s *SQLVideoStore) DeleteVideo(videoID uuid.UUID, companyID uuid.UUID) error {
	query := s.db.Rebind(`
	DELETE FROM videos
	WHERE id = ? AND company_id = ?
	`)

	_, err := s.db.Exec(query, videoID.String(), companyID.String())
	if err != nil {
		return fmt.Errorf("failed to delete video: %w", err)
	}

	return nil
}
