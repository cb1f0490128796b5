package export

import (
	"bytes"
	"fmt"

	"github.com/vidflow/vidflow_server/internal/models"
	"github.com/xuri/excelize/v2"
)

const logSheetName = "Production Log"

var logHeaders = []string{"Video", "From", "To", "Actor", "Internal User", "Duration (s)", "Date"}

// VideoLogsExcel renders the transition log as a spreadsheet, newest entry
// first as delivered by the store.
func VideoLogsExcel(logs []models.VideoLogWithNames) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(logSheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to create log sheet: %w", err)
	}
	f.SetActiveSheet(index)
	f.DeleteSheet("Sheet1")

	for col, header := range logHeaders {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return nil, fmt.Errorf("failed to compute header cell: %w", err)
		}
		if err := f.SetCellValue(logSheetName, cell, header); err != nil {
			return nil, fmt.Errorf("failed to write header: %w", err)
		}
	}

	for i, entry := range logs {
		row := i + 2
		values := []interface{}{
			entry.VideoTitle,
			string(entry.FromStatus),
			string(entry.ToStatus),
			entry.ActorName,
			entry.IsUser,
			entry.DurationSeconds,
			entry.Created_At.Format("2006-01-02 15:04:05"),
		}
		for col, value := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, row)
			if err != nil {
				return nil, fmt.Errorf("failed to compute cell: %w", err)
			}
			if err := f.SetCellValue(logSheetName, cell, value); err != nil {
				return nil, fmt.Errorf("failed to write row %d: %w", row, err)
			}
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("failed to serialize spreadsheet: %w", err)
	}
	return buf.Bytes(), nil
}
