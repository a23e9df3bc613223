package sheet

import (
	"context"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"pragati/pkg/contracts/domain"
)

// Loader turns raw sheet rows into a cleaned ProjectTable.
type Loader struct {
	fetcher Fetcher
	source  string
	logger  *slog.Logger
	now     func() time.Time
}

// NewLoader creates a loader over the given fetcher. source is a
// human-readable note recorded on each table (the export URL or
// spreadsheet id).
func NewLoader(fetcher Fetcher, source string, logger *slog.Logger) *Loader {
	if logger == nil {
		logger = slog.Default()
	}
	return &Loader{
		fetcher: fetcher,
		source:  source,
		logger:  logger.With(slog.String("component", "sheet_loader")),
		now:     time.Now,
	}
}

// Load fetches and cleans the sheet. The returned table is complete or
// the error is typed (FetchError, ParseError, SchemaError); there is no
// partial success. Per-cell percentage failures are not errors.
func (l *Loader) Load(ctx context.Context) (*domain.ProjectTable, error) {
	rows, err := l.fetcher.Fetch(ctx)
	if err != nil {
		return nil, err
	}

	records, dropped, err := l.clean(rows)
	if err != nil {
		return nil, err
	}

	l.logger.InfoContext(ctx, "sheet cleaned",
		slog.Int("raw_rows", len(rows)),
		slog.Int("records", len(records)),
		slog.Int("dropped_rows", dropped))

	return &domain.ProjectTable{
		Records:   records,
		FetchedAt: l.now(),
		Source:    l.source,
	}, nil
}

// clean applies the row exclusion rules, the positional mapping, and
// percent coercion to the raw rows. Exclusion runs first: banner rows
// carry fewer cells than the data region and must not trip the width
// check; drift is only meaningful on rows that claim to be data.
func (l *Loader) clean(rows [][]string) ([]domain.ProjectRecord, int, error) {
	records := make([]domain.ProjectRecord, 0, len(rows))
	dropped := 0

	for i, row := range rows {
		if isExcludedRow(row) {
			dropped++
			continue
		}
		if err := checkWidth(row, i); err != nil {
			return nil, 0, err
		}

		records = append(records, domain.ProjectRecord{
			SNO:                    strings.TrimSpace(row[colSNO]),
			Agency:                 strings.TrimSpace(row[colAgency]),
			Division:               strings.TrimSpace(row[colDivision]),
			ProjectName:            strings.TrimSpace(row[colProjectName]),
			Description:            strings.TrimSpace(row[colDescription]),
			ProjectStatus:          strings.TrimSpace(row[colProjectStatus]),
			PhysicalProgress:       parsePercent(row[colPhysicalProgress]),
			UCStatus:               strings.TrimSpace(row[colUCStatus]),
			CurrentStatus:          strings.TrimSpace(row[colCurrentStatus]),
			ProjectedCompletionPct: parsePercent(row[colProjectedCompletionPct]),
			ExpenditurePct:         parsePercent(row[colExpenditurePct]),
			StuckReason:            strings.TrimSpace(row[colStuckReason]),
		})
	}

	return records, dropped, nil
}

// parsePercent coerces a percent-formatted cell ("45%", " 45.5 % ") to
// a number. Upstream data is hand-typed, so unparsable or out-of-range
// values become missing rather than errors.
func parsePercent(cell string) *float64 {
	s := strings.TrimSpace(cell)
	s = strings.TrimSuffix(s, "%")
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}

	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	if v < 0 || v > 100 {
		return nil
	}
	return &v
}
