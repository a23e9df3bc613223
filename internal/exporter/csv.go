// Package exporter renders a cleaned record set as downloadable CSV or
// Excel files, display-formatted the way the dashboard table shows it.
package exporter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"pragati/pkg/contracts/domain"
)

// displayHeaders is the column order of the downloaded table.
var displayHeaders = []string{
	"SNO", "Agency", "Division", "Project_Name", "Description",
	"Project_Status", "Physical_Progress", "UC_Status", "Current_Status",
	"Projected_Completion_Pct", "Expenditure_Pct", "Stuck_Reason",
}

// WriteOptions configures CSV writing behavior
type WriteOptions struct {
	// BOMPrefix adds a UTF-8 BOM so Excel opens the file correctly.
	BOMPrefix bool
}

// WriteCSV streams the records as display-formatted CSV.
func WriteCSV(w io.Writer, records []domain.ProjectRecord, options WriteOptions) error {
	if options.BOMPrefix {
		if _, err := w.Write([]byte{0xEF, 0xBB, 0xBF}); err != nil {
			return fmt.Errorf("failed to write BOM: %w", err)
		}
	}

	writer := csv.NewWriter(w)

	if err := writer.Write(displayHeaders); err != nil {
		return fmt.Errorf("failed to write headers: %w", err)
	}

	for i := range records {
		if err := writer.Write(displayRow(&records[i])); err != nil {
			return fmt.Errorf("failed to write record %d: %w", i, err)
		}
	}

	writer.Flush()
	return writer.Error()
}

// displayRow formats one record the way the dashboard table shows it:
// percentages carry a "%" suffix, missing values are blank.
func displayRow(r *domain.ProjectRecord) []string {
	return []string{
		r.SNO,
		r.Agency,
		r.Division,
		r.ProjectName,
		r.Description,
		r.ProjectStatus,
		formatPercent(r.PhysicalProgress),
		r.UCStatus,
		r.CurrentStatus,
		formatPercent(r.ProjectedCompletionPct),
		formatPercent(r.ExpenditurePct),
		r.StuckReason,
	}
}

// formatPercent renders a percentage for display, blank when missing.
func formatPercent(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', -1, 64) + "%"
}

// ExportFilename names a download: projects_<timestamp>.<ext>.
func ExportFilename(ext string, now time.Time) string {
	return fmt.Sprintf("projects_%s.%s", now.Format("20060102_150405"), ext)
}
