package store

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/vidflow/vidflow_server/internal/models"
)

type SQLUserStore struct {
	db *DB
}

func NewSQLUserStore(db *DB) *SQLUserStore {
	if db == nil {
		panic("db cannot be nil for SQLUserStore")
	}
	return &SQLUserStore{db: db}
}

type UserStore interface {
	CreateUser(user *models.User) error
	GetUserByID(userID uuid.UUID, companyID uuid.UUID) (*models.User, error)
	GetUserByEmail(email string) (*models.User, error)
	GetUsersByCompanyID(companyID uuid.UUID) ([]models.User, error)
	GetCompanyAdmin(companyID uuid.UUID) (*models.User, error)
	GetCompanyAdmins(companyID uuid.UUID) ([]models.User, error)
	UpdatePassword(userID uuid.UUID, passwordHash string) error
	DeleteUser(userID uuid.UUID, companyID uuid.UUID) error
}

const userColumns = `id, company_id, name, email, password_hash, role, whatsapp, is_superuser, created_at, updated_at`

func scanUser(row interface{ Scan(...interface{}) error }, user *models.User) error {
	return row.Scan(
		&user.ID,
		&user.CompanyID,
		&user.Name,
		&user.Email,
		&user.PasswordHash,
		&user.Role,
		&user.Whatsapp,
		&user.IsSuperuser,
		&user.Created_At,
		&user.Updated_At,
	)
}

func (s *SQLUserStore) CreateUser(user *models.User) error {
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}

	query := s.db.Rebind(`
	INSERT INTO users (id, company_id, name, email, password_hash, role, whatsapp, is_superuser)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`)

	_, err := s.db.Exec(query, user.ID.String(), user.CompanyID.String(), user.Name, user.Email, user.PasswordHash, user.Role, user.Whatsapp, user.IsSuperuser)
	if err != nil {
		return fmt.Errorf("error running create user query: %w", err)
	}

	return nil
}

func (s *SQLUserStore) GetUserByID(userID uuid.UUID, companyID uuid.UUID) (*models.User, error) {
	user := &models.User{}

	query := s.db.Rebind(`
	SELECT ` + userColumns + `
	FROM users
	WHERE id = ? AND company_id = ?
	`)

	err := scanUser(s.db.QueryRow(query, userID.String(), companyID.String()), user)
	if err != nil {
		return nil, fmt.Errorf("error running get user by id query: %w", err)
	}

	return user, nil
}

func (s *SQLUserStore) GetUserByEmail(email string) (*models.User, error) {
	user := &models.User{}

	query := s.db.Rebind(`
	SELECT ` + userColumns + `
	FROM users
	WHERE email = ?
	`)

	err := scanUser(s.db.QueryRow(query, email), user)
	if err != nil {
		return nil, fmt.Errorf("error running get user by email query: %w", err)
	}

	return user, nil
}

func (s *SQLUserStore) GetUsersByCompanyID(companyID uuid.UUID) ([]models.User, error) {
	query := s.db.Rebind(`
	SELECT ` + userColumns + `
	FROM users
	WHERE company_id = ?
	ORDER BY created_at ASC
	`)

	rows, err := s.db.Query(query, companyID.String())
	if err != nil {
		return nil, fmt.Errorf("failed to get users: %w", err)
	}
	defer rows.Close()

	var users []models.User
	for rows.Next() {
		var user models.User
		if err := scanUser(rows, &user); err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, user)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating over user rows: %w", err)
	}

	return users, nil
}

// GetCompanyAdmin returns the company's designated admin: the oldest user
// with the admin role. Freelancer-initiated status changes are attributed
// to this user in the audit log.
func (s *SQLUserStore) GetCompanyAdmin(companyID uuid.UUID) (*models.User, error) {
	user := &models.User{}

	query := s.db.Rebind(`
	SELECT ` + userColumns + `
	FROM users
	WHERE company_id = ? AND role = 'admin'
	ORDER BY created_at ASC
	LIMIT 1
	`)

	err := scanUser(s.db.QueryRow(query, companyID.String()), user)
	if err != nil {
		return nil, fmt.Errorf("error running get company admin query: %w", err)
	}

	return user, nil
}

func (s *SQLUserStore) GetCompanyAdmins(companyID uuid.UUID) ([]models.User, error) {
	query := s.db.Rebind(`
	SELECT ` + userColumns + `
	FROM users
	WHERE company_id = ? AND role = 'admin'
	ORDER BY created_at ASC
	`)

	rows, err := s.db.Query(query, companyID.String())
	if err != nil {
		return nil, fmt.Errorf("failed to get company admins: %w", err)
	}
	defer rows.Close()

	var admins []models.User
	for rows.Next() {
		var user models.User
		if err := scanUser(rows, &user); err != nil {
			return nil, fmt.Errorf("failed to scan admin: %w", err)
		}
		admins = append(admins, user)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating over admin rows: %w", err)
	}

	return admins, nil
}

func (s *SQLUserStore) UpdatePassword(userID uuid.UUID, passwordHash string) error {
	query := s.db.Rebind(`
	UPDATE users
	SET password_hash = ?, updated_at = CURRENT_TIMESTAMP
	WHERE id = ?
	`)

	_, err := s.db.Exec(query, passwordHash, userID.String())
	if err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}

	return nil
}

func (s *SQLUserStore) DeleteUser(userID uuid.UUID, companyID uuid.UUID) error {
	query := s.db.Rebind(`
	DELETE FROM users
	WHERE id = ? AND company_id = ?
	`)

	_, err := s.db.Exec(query, userID.String(), companyID.String())
	if err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}

	return nil
}
