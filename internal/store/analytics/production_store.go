package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/ClickHouse/clickhouse-go/v2/lib/driver"
	"github.com/vidflow/vidflow_server/internal/workflow"
)

type ClickhouseProductionStore struct {
	conn driver.Conn
}

func NewClickhouseProductionStore(conn driver.Conn) *ClickhouseProductionStore {
	return &ClickhouseProductionStore{conn: conn}
}

type StageDuration struct {
	Stage           string  `json:"stage"`
	Transitions     uint64  `json:"transitions"`
	AverageDuration float64 `json:"average_duration_seconds"`
}

type ThroughputPoint struct {
	Day       time.Time `json:"day"`
	Published uint64    `json:"published"`
}

type ProductionStore interface {
	RecordStatusChange(ev workflow.StatusEvent) error
	GetStageDurations(companyID string) ([]StageDuration, error)
	GetPublishThroughput(companyID string, days int) ([]ThroughputPoint, error)
}

func (c *ClickhouseProductionStore) RecordStatusChange(ev workflow.StatusEvent) error {
	query := `
		INSERT INTO default.production_events (company_id, video_id, from_status, to_status, duration_seconds, occurred_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`

	err := c.conn.Exec(context.Background(), query,
		ev.CompanyID.String(),
		ev.VideoID.String(),
		string(ev.FromStatus),
		string(ev.ToStatus),
		ev.DurationSeconds,
		ev.OccurredAt,
	)
	if err != nil {
		return fmt.Errorf("failed to record production event: %w", err)
	}

	return nil
}

// GetStageDurations averages the logged stage durations per completed stage.
// Only completion transitions carry a non-zero duration.
func (c *ClickhouseProductionStore) GetStageDurations(companyID string) ([]StageDuration, error) {
	query := `
		SELECT to_status, COUNT(*) AS transitions, AVG(duration_seconds) AS avg_duration
		FROM default.production_events
		WHERE company_id = ? AND duration_seconds > 0
		GROUP BY to_status
		ORDER BY to_status
	`

	rows, err := c.conn.Query(context.Background(), query, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to get stage durations: %w", err)
	}
	defer rows.Close()

	var durations []StageDuration
	for rows.Next() {
		var d StageDuration

		err := rows.Scan(&d.Stage, &d.Transitions, &d.AverageDuration)
		if err != nil {
			return nil, fmt.Errorf("failed to scan stage duration: %w", err)
		}
		durations = append(durations, d)
	}

	return durations, nil
}

func (c *ClickhouseProductionStore) GetPublishThroughput(companyID string, days int) ([]ThroughputPoint, error) {
	query := `
		SELECT toStartOfDay(occurred_at) AS day, COUNT(*) AS published
		FROM default.production_events
		WHERE company_id = ? AND to_status = 'Published' AND occurred_at >= now() - INTERVAL ? DAY
		GROUP BY day
		ORDER BY day
	`

	rows, err := c.conn.Query(context.Background(), query, companyID, days)
	if err != nil {
		return nil, fmt.Errorf("failed to get publish throughput: %w", err)
	}
	defer rows.Close()

	var points []ThroughputPoint
	for rows.Next() {
		var p ThroughputPoint

		err := rows.Scan(&p.Day, &p.Published)
		if err != nil {
			return nil, fmt.Errorf("failed to scan throughput point: %w", err)
		}
		points = append(points, p)
	}

	return points, nil
}
