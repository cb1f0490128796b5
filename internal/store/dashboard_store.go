package store

import (
	"fmt"

	"github.com/google/uuid"
)

type Dashboard struct {
	InProduction int `json:"in_production"`
	Pending      int `json:"pending"`
	Published    int `json:"published"`
	Freelancers  int `json:"freelancers"`
	Channels     int `json:"channels"`
}

type SQLDashboardStore struct {
	db *DB
}

func NewSQLDashboardStore(db *DB) *SQLDashboardStore {
	return &SQLDashboardStore{db: db}
}

type DashboardStore interface {
	GetDashboardMetricsByCompanyID(companyID uuid.UUID) (*Dashboard, error)
}

func (s *SQLDashboardStore) GetDashboardMetricsByCompanyID(companyID uuid.UUID) (*Dashboard, error) {

	var dashboard Dashboard

	query := s.db.Rebind(`
		SELECT
			(SELECT COUNT(*) FROM videos WHERE company_id = ? AND status NOT IN ('Pending', 'Published', 'Cancelled')) as in_production,
			(SELECT COUNT(*) FROM videos WHERE company_id = ? AND status = 'Pending') as pending_videos,
			(SELECT COUNT(*) FROM videos WHERE company_id = ? AND status = 'Published') as published_videos,
			(SELECT COUNT(*) FROM freelancers WHERE company_id = ?) as total_freelancers,
			(SELECT COUNT(*) FROM channels WHERE company_id = ?) as total_channels
	`)

	id := companyID.String()
	err := s.db.QueryRow(query, id, id, id, id, id).Scan(
		&dashboard.InProduction,
		&dashboard.Pending,
		&dashboard.Published,
		&dashboard.Freelancers,
		&dashboard.Channels,
	)
	if err != nil {
		return nil, fmt.Errorf("error getting dashboard metrics: %w", err)
	}

	return &dashboard, nil
}
