package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRebindPostgres(t *testing.T) {
	db := &DB{Driver: DriverPostgres}

	tests := []struct {
		name  string
		query string
		want  string
	}{
		{"no placeholders", "SELECT 1", "SELECT 1"},
		{"single placeholder", "SELECT * FROM videos WHERE id = ?", "SELECT * FROM videos WHERE id = $1"},
		{
			"numbered in order",
			"UPDATE videos SET status = ?, updated_at = ? WHERE id = ? AND company_id = ?",
			"UPDATE videos SET status = $1, updated_at = $2 WHERE id = $3 AND company_id = $4",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, db.Rebind(tt.query))
		})
	}
}

func TestRebindMySQLPassthrough(t *testing.T) {
	db := &DB{Driver: DriverMySQL}
	query := "SELECT * FROM videos WHERE id = ? AND company_id = ?"
	assert.Equal(t, query, db.Rebind(query))
}
