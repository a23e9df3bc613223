package sheet

import "strings"

// The published sheet has a fixed 22-column positional layout. Columns
// are mapped by ordinal position, not by header text: the header row is
// itself decorative and leaks into the data region.
const sourceColumnCount = 22

// Ordinal positions of the source columns the dashboard consumes.
// The remaining positions (district, block, sanction amounts, dates,
// contractor, remarks, last-updated) are dropped by the projection.
const (
	colSNO                    = 0
	colAgency                 = 1
	colDivision               = 2
	colProjectName            = 5
	colDescription            = 6
	colExpenditurePct         = 10
	colProjectStatus          = 11
	colPhysicalProgress       = 12
	colProjectedCompletionPct = 15
	colUCStatus               = 16
	colCurrentStatus          = 17
	colStuckReason            = 19
)

// sentinelSNOs are serial-number cells that mark non-data rows: blank
// banner rows and the leaked header row.
var sentinelSNOs = map[string]bool{
	"":      true,
	"SNO":   true,
	"S.No":  true,
	"S.No.": true,
	"Sl.No": true,
}

// sentinelProjectNames are project-name cells that mark the leaked
// header row, spelled the ways the sheet has spelled them.
var sentinelProjectNames = map[string]bool{
	"":                true,
	"Project Name":    true,
	"Name of Project": true,
	"Project_Name":    true,
}

// bannerAgencies are agency cells that mark title banner rows.
var bannerAgencies = map[string]bool{
	"Agency":              true,
	"Name of Agency":      true,
	"Implementing Agency": true,
}

// isExcludedRow reports whether a positionally-mapped row is a banner,
// header, or otherwise non-data row that must not reach the table.
// Banner rows are often narrower than the data region, so cells are
// read bounds-safe; exclusion runs before any width check.
func isExcludedRow(row []string) bool {
	sno := strings.TrimSpace(cellAt(row, colSNO))
	name := strings.TrimSpace(cellAt(row, colProjectName))
	agency := strings.TrimSpace(cellAt(row, colAgency))

	if sentinelSNOs[sno] {
		return true
	}
	if sentinelProjectNames[name] {
		return true
	}
	return bannerAgencies[agency]
}

// cellAt returns the cell at position i, or "" when the row is too
// short to carry it.
func cellAt(row []string, i int) string {
	if i >= len(row) {
		return ""
	}
	return row[i]
}

// checkWidth validates a row against the fixed layout, returning a
// SchemaError on drift.
func checkWidth(row []string, rowIdx int) error {
	if len(row) != sourceColumnCount {
		return &SchemaError{
			WantColumns: sourceColumnCount,
			GotColumns:  len(row),
			Row:         rowIdx,
		}
	}
	return nil
}
