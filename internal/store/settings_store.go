package store

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/vidflow/vidflow_server/internal/models"
)

type SQLSettingsStore struct {
	db *DB
}

func NewSQLSettingsStore(db *DB) *SQLSettingsStore {
	if db == nil {
		panic("db cannot be nil for SQLSettingsStore")
	}
	return &SQLSettingsStore{db: db}
}

type SettingsStore interface {
	GetSettingsByCompanyID(companyID uuid.UUID) (*models.Settings, error)
	UpsertSettings(settings *models.Settings) error
}

func (s *SQLSettingsStore) GetSettingsByCompanyID(companyID uuid.UUID) (*models.Settings, error) {
	settings := &models.Settings{}

	query := s.db.Rebind(`
	SELECT company_id, auto_notify, script_template, narration_template, editing_template, thumbnail_template, general_template, whatsapp_url, whatsapp_token, whatsapp_instance, updated_at
	FROM settings
	WHERE company_id = ?
	`)

	err := s.db.QueryRow(query, companyID.String()).Scan(
		&settings.CompanyID,
		&settings.AutoNotify,
		&settings.ScriptTemplate,
		&settings.NarrationTemplate,
		&settings.EditingTemplate,
		&settings.ThumbnailTemplate,
		&settings.GeneralTemplate,
		&settings.WhatsappURL,
		&settings.WhatsappToken,
		&settings.WhatsappInstance,
		&settings.Updated_At,
	)
	if err != nil {
		return nil, fmt.Errorf("error running get settings query: %w", err)
	}

	return settings, nil
}

func (s *SQLSettingsStore) UpsertSettings(settings *models.Settings) error {
	deleteQuery := s.db.Rebind(`
	DELETE FROM settings
	WHERE company_id = ?
	`)

	insertQuery := s.db.Rebind(`
	INSERT INTO settings (company_id, auto_notify, script_template, narration_template, editing_template, thumbnail_template, general_template, whatsapp_url, whatsapp_token, whatsapp_instance)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to start transaction: %w", err)
	}

	defer tx.Rollback()

	_, err = tx.Exec(deleteQuery, settings.CompanyID.String())
	if err != nil {
		return fmt.Errorf("failed to clear settings: %w", err)
	}

	_, err = tx.Exec(insertQuery,
		settings.CompanyID.String(),
		settings.AutoNotify,
		settings.ScriptTemplate,
		settings.NarrationTemplate,
		settings.EditingTemplate,
		settings.ThumbnailTemplate,
		settings.GeneralTemplate,
		settings.WhatsappURL,
		settings.WhatsappToken,
		settings.WhatsappInstance,
	)
	if err != nil {
		return fmt.Errorf("failed to insert settings: %w", err)
	}

	err = tx.Commit()
	if err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}
