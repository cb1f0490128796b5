package export

import (
	"bytes"
	"fmt"

	"github.com/go-pdf/fpdf"
	"github.com/vidflow/vidflow_server/internal/models"
)

var pdfColumnWidths = []float64{60, 35, 35, 40, 25, 40}

// VideoLogsPDF renders the transition log as a landscape A4 table.
func VideoLogsPDF(companyName string, logs []models.VideoLogWithNames) ([]byte, error) {
	pdf := fpdf.New("L", "mm", "A4", "")
	pdf.SetAutoPageBreak(true, 15)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 14)
	pdf.CellFormat(0, 10, "Relatório de produção - "+companyName, "", 1, "L", false, 0, "")
	pdf.Ln(2)

	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetFillColor(230, 230, 230)
	headers := []string{"Vídeo", "De", "Para", "Responsável", "Duração (s)", "Data"}
	for i, header := range headers {
		pdf.CellFormat(pdfColumnWidths[i], 8, header, "1", 0, "L", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 8)
	for _, entry := range logs {
		cells := []string{
			entry.VideoTitle,
			string(entry.FromStatus),
			string(entry.ToStatus),
			entry.ActorName,
			fmt.Sprintf("%d", entry.DurationSeconds),
			entry.Created_At.Format("02/01/2006 15:04"),
		}
		for i, cell := range cells {
			pdf.CellFormat(pdfColumnWidths[i], 7, cell, "1", 0, "L", false, 0, "")
		}
		pdf.Ln(-1)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render pdf: %w", err)
	}
	return buf.Bytes(), nil
}
