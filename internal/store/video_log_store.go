package store

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/vidflow/vidflow_server/internal/models"
)

type SQLVideoLogStore struct {
	db *DB
}

func NewSQLVideoLogStore(db *DB) *SQLVideoLogStore {
	if db == nil {
		panic("db cannot be nil for SQLVideoLogStore")
	}
	return &SQLVideoLogStore{db: db}
}

type GetVideoLogsParams struct {
	CompanyID uuid.UUID
	VideoID   uuid.UUID
	From      time.Time
	To        time.Time
}

type VideoLogStore interface {
	GetVideoLogs(params GetVideoLogsParams) ([]models.VideoLogWithNames, error)
}

// GetVideoLogs returns transition logs for reporting, newest first. The
// actor name prefers the freelancer when one initiated the change.
func (s *SQLVideoLogStore) GetVideoLogs(params GetVideoLogsParams) ([]models.VideoLogWithNames, error) {
	query := `
	SELECT
		vl.id,
		vl.video_id,
		vl.company_id,
		vl.user_id,
		vl.freelancer_id,
		vl.action,
		vl.from_status,
		vl.to_status,
		vl.duration_seconds,
		vl.is_user,
		vl.created_at,
		v.title,
		COALESCE(f.name, u.name, '') AS actor_name
	FROM video_logs vl
	INNER JOIN videos v ON vl.video_id = v.id
	LEFT JOIN users u ON vl.user_id = u.id
	LEFT JOIN freelancers f ON vl.freelancer_id = f.id
	WHERE vl.company_id = ?
	`
	args := []interface{}{params.CompanyID.String()}

	if params.VideoID != uuid.Nil {
		query += ` AND vl.video_id = ?`
		args = append(args, params.VideoID.String())
	}
	if !params.From.IsZero() {
		query += ` AND vl.created_at >= ?`
		args = append(args, params.From)
	}
	if !params.To.IsZero() {
		query += ` AND vl.created_at <= ?`
		args = append(args, params.To)
	}
	query += ` ORDER BY vl.created_at DESC`

	rows, err := s.db.Query(s.db.Rebind(query), args...)
	if err != nil {
		return nil, fmt.Errorf("failed to get video logs: %w", err)
	}
	defer rows.Close()

	var logs []models.VideoLogWithNames
	for rows.Next() {
		var entry models.VideoLogWithNames

		err := rows.Scan(
			&entry.ID,
			&entry.VideoID,
			&entry.CompanyID,
			&entry.UserID,
			&entry.FreelancerID,
			&entry.Action,
			&entry.FromStatus,
			&entry.ToStatus,
			&entry.DurationSeconds,
			&entry.IsUser,
			&entry.Created_At,
			&entry.VideoTitle,
			&entry.ActorName,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan video log: %w", err)
		}
		logs = append(logs, entry)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating over video log rows: %w", err)
	}

	return logs, nil
}
