package store

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/vidflow/vidflow_server/internal/models"
)

type SQLChannelStore struct {
	db *DB
}

func NewSQLChannelStore(db *DB) *SQLChannelStore {
	if db == nil {
		panic("db cannot be nil for SQLChannelStore")
	}
	return &SQLChannelStore{db: db}
}

type ChannelStore interface {
	CreateChannel(channel *models.Channel) error
	GetChannelsByCompanyID(companyID uuid.UUID) ([]models.Channel, error)
	DeleteChannel(channelID uuid.UUID, companyID uuid.UUID) error
}

func (s *SQLChannelStore) CreateChannel(channel *models.Channel) error {
	if channel.ID == uuid.Nil {
		channel.ID = uuid.New()
	}

	query := s.db.Rebind(`
	INSERT INTO channels (id, company_id, name, youtube_url)
	VALUES (?, ?, ?, ?)
	`)

	_, err := s.db.Exec(query, channel.ID.String(), channel.CompanyID.String(), channel.Name, channel.YoutubeURL)
	if err != nil {
		return fmt.Errorf("error running create channel query: %w", err)
	}

	return nil
}

func (s *SQLChannelStore) GetChannelsByCompanyID(companyID uuid.UUID) ([]models.Channel, error) {
	query := s.db.Rebind(`
	SELECT id, company_id, name, youtube_url, created_at, updated_at
	FROM channels
	WHERE company_id = ?
	ORDER BY name ASC
	`)

	rows, err := s.db.Query(query, companyID.String())
	if err != nil {
		return nil, fmt.Errorf("failed to get channels: %w", err)
	}
	defer rows.Close()

	var channels []models.Channel
	for rows.Next() {
		var channel models.Channel

		err := rows.Scan(
			&channel.ID,
			&channel.CompanyID,
			&channel.Name,
			&channel.YoutubeURL,
			&channel.Created_At,
			&channel.Updated_At,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan channel: %w", err)
		}
		channels = append(channels, channel)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating over channel rows: %w", err)
	}

	return channels, nil
}

func (s *SQLChannelStore) DeleteChannel(channelID uuid.UUID, companyID uuid.UUID) error {
	query := s.db.Rebind(`
	DELETE FROM channels
	WHERE id = ? AND company_id = ?
	`)

	_, err := s.db.Exec(query, channelID.String(), companyID.String())
	if err != nil {
		return fmt.Errorf("failed to delete channel: %w", err)
	}

	return nil
}
