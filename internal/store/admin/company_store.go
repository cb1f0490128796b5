package admin

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/vidflow/vidflow_server/internal/models"
	"github.com/vidflow/vidflow_server/internal/store"
)

// Company management for the platform-admin surface.
type AdminSQLCompanyStore struct {
	db *store.DB
}

func NewSQLAdminCompanyStore(db *store.DB) *AdminSQLCompanyStore {
	return &AdminSQLCompanyStore{db: db}
}

type AdminCompanyStore interface {
	GetCompanies() ([]models.Company, error)
	CreateCompany(company *models.Company) error
	PatchCompany(companyID uuid.UUID, name *string, plan *string, isActive *bool) error
}

func (a *AdminSQLCompanyStore) GetCompanies() ([]models.Company, error) {
	query := a.db.Rebind(`
	SELECT id, name, email, phone, plan, is_active, created_at, updated_at
	FROM companies
	ORDER BY created_at DESC
	`)

	rows, err := a.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("ADMIN: failed to get companies: %w", err)
	}
	defer rows.Close()

	var companies []models.Company
	for rows.Next() {
		var company models.Company

		err := rows.Scan(
			&company.ID,
			&company.Name,
			&company.Email,
			&company.Phone,
			&company.Plan,
			&company.Is_Active,
			&company.Created_At,
			&company.Updated_At,
		)
		if err != nil {
			return nil, fmt.Errorf("ADMIN: failed to scan company: %w", err)
		}
		companies = append(companies, company)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ADMIN: error iterating over company rows: %w", err)
	}

	return companies, nil
}

func (a *AdminSQLCompanyStore) CreateCompany(company *models.Company) error {
	if company.ID == uuid.Nil {
		company.ID = uuid.New()
	}
	if company.Plan == "" {
		company.Plan = "free"
	}

	query := a.db.Rebind(`
	INSERT INTO companies (id, name, email, phone, plan, is_active)
	VALUES (?, ?, ?, ?, ?, ?)
	`)

	_, err := a.db.Exec(query, company.ID.String(), company.Name, company.Email, company.Phone, company.Plan, true)
	if err != nil {
		return fmt.Errorf("ADMIN: failed to create company: %w", err)
	}

	return nil
}

func (a *AdminSQLCompanyStore) PatchCompany(companyID uuid.UUID, name *string, plan *string, isActive *bool) error {
	setClauses := []string{}
	args := []interface{}{}

	if name != nil {
		setClauses = append(setClauses, "name = ?")
		args = append(args, *name)
	}
	if plan != nil {
		setClauses = append(setClauses, "plan = ?")
		args = append(args, *plan)
	}
	if isActive != nil {
		setClauses = append(setClauses, "is_active = ?")
		args = append(args, *isActive)
	}

	if len(setClauses) == 0 {
		return fmt.Errorf("no fields provided to update")
	}

	setClauses = append(setClauses, "updated_at = CURRENT_TIMESTAMP")

	query := fmt.Sprintf(`
		UPDATE companies
		SET %s
		WHERE id = ?
	`, strings.Join(setClauses, ", "))

	args = append(args, companyID.String())

	_, err := a.db.Exec(a.db.Rebind(query), args...)
	if err != nil {
		return fmt.Errorf("ADMIN: failed to update company: %w", err)
	}

	return nil
}
