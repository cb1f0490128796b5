package store

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/vidflow/vidflow_server/internal/models"
)

type SQLFreelancerStore struct {
	db *DB
}

func NewSQLFreelancerStore(db *DB) *SQLFreelancerStore {
	if db == nil {
		panic("db cannot be nil for SQLFreelancerStore")
	}
	return &SQLFreelancerStore{db: db}
}

type FreelancerStore interface {
	CreateFreelancer(freelancer *models.Freelancer) error
	GetFreelancerByID(freelancerID uuid.UUID, companyID uuid.UUID) (*models.Freelancer, error)
	GetFreelancersByCompanyID(companyID uuid.UUID) ([]models.Freelancer, error)
	GetVideoFreelancerByRole(videoID uuid.UUID, role models.FreelancerRole) (*models.Freelancer, error)
	GetVideoFreelancers(videoID uuid.UUID) ([]models.Freelancer, error)
	AssignToVideo(videoID uuid.UUID, freelancerID uuid.UUID, role models.FreelancerRole) error
	UnassignFromVideo(videoID uuid.UUID, role models.FreelancerRole) error
	DeleteFreelancer(freelancerID uuid.UUID, companyID uuid.UUID) error
}

const freelancerColumns = `id, company_id, name, email, whatsapp, role, rate, created_at, updated_at`

func scanFreelancer(row interface{ Scan(...interface{}) error }, f *models.Freelancer) error {
	return row.Scan(
		&f.ID,
		&f.CompanyID,
		&f.Name,
		&f.Email,
		&f.Whatsapp,
		&f.Role,
		&f.Rate,
		&f.Created_At,
		&f.Updated_At,
	)
}

func (s *SQLFreelancerStore) CreateFreelancer(freelancer *models.Freelancer) error {
	if freelancer.ID == uuid.Nil {
		freelancer.ID = uuid.New()
	}

	query := s.db.Rebind(`
	INSERT INTO freelancers (id, company_id, name, email, whatsapp, role, rate)
	VALUES (?, ?, ?, ?, ?, ?, ?)
	`)

	_, err := s.db.Exec(query, freelancer.ID.String(), freelancer.CompanyID.String(), freelancer.Name, freelancer.Email, freelancer.Whatsapp, string(freelancer.Role), freelancer.Rate)
	if err != nil {
		return fmt.Errorf("error running create freelancer query: %w", err)
	}

	return nil
}

func (s *SQLFreelancerStore) GetFreelancerByID(freelancerID uuid.UUID, companyID uuid.UUID) (*models.Freelancer, error) {
	freelancer := &models.Freelancer{}

	query := s.db.Rebind(`
	SELECT ` + freelancerColumns + `
	FROM freelancers
	WHERE id = ? AND company_id = ?
	`)

	err := scanFreelancer(s.db.QueryRow(query, freelancerID.String(), companyID.String()), freelancer)
	if err != nil {
		return nil, fmt.Errorf("error running get freelancer by id query: %w", err)
	}

	return freelancer, nil
}

func (s *SQLFreelancerStore) GetFreelancersByCompanyID(companyID uuid.UUID) ([]models.Freelancer, error) {
	query := s.db.Rebind(`
	SELECT ` + freelancerColumns + `
	FROM freelancers
	WHERE company_id = ?
	ORDER BY name ASC
	`)

	rows, err := s.db.Query(query, companyID.String())
	if err != nil {
		return nil, fmt.Errorf("failed to get freelancers: %w", err)
	}
	defer rows.Close()

	var freelancers []models.Freelancer
	for rows.Next() {
		var freelancer models.Freelancer
		if err := scanFreelancer(rows, &freelancer); err != nil {
			return nil, fmt.Errorf("failed to scan freelancer: %w", err)
		}
		freelancers = append(freelancers, freelancer)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating over freelancer rows: %w", err)
	}

	return freelancers, nil
}

func (s *SQLFreelancerStore) GetVideoFreelancerByRole(videoID uuid.UUID, role models.FreelancerRole) (*models.Freelancer, error) {
	freelancer := &models.Freelancer{}

	query := s.db.Rebind(`
	SELECT f.id, f.company_id, f.name, f.email, f.whatsapp, f.role, f.rate, f.created_at, f.updated_at
	FROM freelancers f
	INNER JOIN video_freelancer_roles vfr ON f.id = vfr.freelancer_id
	WHERE vfr.video_id = ? AND vfr.role = ?
	`)

	err := scanFreelancer(s.db.QueryRow(query, videoID.String(), string(role)), freelancer)
	if err != nil {
		return nil, fmt.Errorf("error running get video freelancer by role query: %w", err)
	}

	return freelancer, nil
}

func (s *SQLFreelancerStore) GetVideoFreelancers(videoID uuid.UUID) ([]models.Freelancer, error) {
	query := s.db.Rebind(`
	SELECT f.id, f.company_id, f.name, f.email, f.whatsapp, f.role, f.rate, f.created_at, f.updated_at
	FROM freelancers f
	INNER JOIN video_freelancer_roles vfr ON f.id = vfr.freelancer_id
	WHERE vfr.video_id = ?
	`)

	rows, err := s.db.Query(query, videoID.String())
	if err != nil {
		return nil, fmt.Errorf("failed to get video freelancers: %w", err)
	}
	defer rows.Close()

	var freelancers []models.Freelancer
	for rows.Next() {
		var freelancer models.Freelancer
		if err := scanFreelancer(rows, &freelancer); err != nil {
			return nil, fmt.Errorf("failed to scan video freelancer: %w", err)
		}
		freelancers = append(freelancers, freelancer)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating over video freelancer rows: %w", err)
	}

	return freelancers, nil
}

// AssignToVideo replaces the freelancer on the given stage. One active
// freelancer per (video, role) is assumed by the notification lookups.
func (s *SQLFreelancerStore) AssignToVideo(videoID uuid.UUID, freelancerID uuid.UUID, role models.FreelancerRole) error {
	deleteQuery := s.db.Rebind(`
	DELETE FROM video_freelancer_roles
	WHERE video_id = ? AND role = ?
	`)

	_, err := s.db.Exec(deleteQuery, videoID.String(), string(role))
	if err != nil {
		return fmt.Errorf("failed to clear existing assignment: %w", err)
	}

	insertQuery := s.db.Rebind(`
	INSERT INTO video_freelancer_roles (video_id, freelancer_id, role)
	VALUES (?, ?, ?)
	`)

	_, err = s.db.Exec(insertQuery, videoID.String(), freelancerID.String(), string(role))
	if err != nil {
		return fmt.Errorf("failed to assign freelancer to video: %w", err)
	}

	return nil
}

func (s *SQLFreelancerStore) UnassignFromVideo(videoID uuid.UUID, role models.FreelancerRole) error {
	query := s.db.Rebind(`
	DELETE FROM video_freelancer_roles
	WHERE video_id = ? AND role = ?
	`)

	_, err := s.db.Exec(query, videoID.String(), string(role))
	if err != nil {
		return fmt.Errorf("failed to unassign freelancer: %w", err)
	}

	return nil
}

func (s *SQLFreelancerStore) DeleteFreelancer(freelancerID uuid.UUID, companyID uuid.UUID) error {
	query := s.db.Rebind(`
	DELETE FROM freelancers
	WHERE id = ? AND company_id = ?
	`)

	_, err := s.db.Exec(query, freelancerID.String(), companyID.String())
	if err != nil {
		return fmt.Errorf("failed to delete freelancer: %w", err)
	}

	return nil
}
