package domain

import "time"

// ProjectRecord is one cleaned row of the published project spreadsheet.
// Percentage fields are pointers: a nil value means the source cell was
// empty or unparsable, which is distinct from 0%.
type ProjectRecord struct {
	SNO                     string   `json:"sno" csv:"SNO"`
	Agency                  string   `json:"agency" csv:"Agency"`
	Division                string   `json:"division,omitempty" csv:"Division"`
	ProjectName             string   `json:"project_name" csv:"Project_Name"`
	Description             string   `json:"description,omitempty" csv:"Description"`
	ProjectStatus           string   `json:"project_status" csv:"Project_Status"`
	PhysicalProgress        *float64 `json:"physical_progress,omitempty" csv:"Physical_Progress"`
	UCStatus                string   `json:"uc_status,omitempty" csv:"UC_Status"`
	CurrentStatus           string   `json:"current_status,omitempty" csv:"Current_Status"`
	ProjectedCompletionPct  *float64 `json:"projected_completion_pct,omitempty" csv:"Projected_Completion_Pct"`
	ExpenditurePct          *float64 `json:"expenditure_pct,omitempty" csv:"Expenditure_Pct"`
	StuckReason             string   `json:"stuck_reason,omitempty" csv:"Stuck_Reason"`
}

// Status values as they appear in the source sheet. CurrentStatusDelayed
// keeps the sheet's own spelling; normalizing it would break matching
// against upstream data.
const (
	StatusCompleted      = "Completed"
	StatusOngoing        = "Ongoing"
	CurrentStatusDelayed = "Project Delaid"
)

// FilterAll is the selector value that matches every record.
const FilterAll = "All"

// HasPhysicalProgress reports whether the record carries a parsed
// physical progress value.
func (r *ProjectRecord) HasPhysicalProgress() bool {
	return r.PhysicalProgress != nil
}

// IsCompleted reports whether the project is marked completed.
func (r *ProjectRecord) IsCompleted() bool {
	return r.ProjectStatus == StatusCompleted
}

// IsAtRisk reports whether the record qualifies for the at-risk view:
// physical progress below 50% or an explicit delayed marker. A record
// with no progress value is not at risk on progress grounds alone.
func (r *ProjectRecord) IsAtRisk() bool {
	if r.CurrentStatus == CurrentStatusDelayed {
		return true
	}
	return r.PhysicalProgress != nil && *r.PhysicalProgress < 50
}

// ProjectTable is the cleaned record set produced by one load. It is
// rebuilt in full on every fetch and treated as immutable afterwards.
type ProjectTable struct {
	Records   []ProjectRecord `json:"records"`
	FetchedAt time.Time       `json:"fetched_at"`
	Source    string          `json:"source"`
}

// Empty reports whether the table holds no records.
func (t *ProjectTable) Empty() bool {
	return t == nil || len(t.Records) == 0
}

// ProjectFilter narrows a record set by the two sidebar selectors.
// The zero value and FilterAll both mean "no restriction".
type ProjectFilter struct {
	Agency string `json:"agency"`
	Status string `json:"status"`
}

// Matches reports whether the record passes the filter.
func (f ProjectFilter) Matches(r *ProjectRecord) bool {
	if f.Agency != "" && f.Agency != FilterAll && r.Agency != f.Agency {
		return false
	}
	if f.Status != "" && f.Status != FilterAll && r.ProjectStatus != f.Status {
		return false
	}
	return true
}
