package domain

// DashboardSummary holds the five headline metrics for the currently
// filtered record set. Share fields are percentages of Total and are 0
// when Total is 0.
type DashboardSummary struct {
	Total           int      `json:"total"`
	Completed       int      `json:"completed"`
	Ongoing         int      `json:"ongoing"`
	Delayed         int      `json:"delayed"`
	CompletedShare  float64  `json:"completed_share"`
	OngoingShare    float64  `json:"ongoing_share"`
	DelayedShare    float64  `json:"delayed_share"`
	AverageProgress *float64 `json:"average_progress,omitempty"`
}

// GroupBreakdown is one group row of the By Agency / By Division views.
type GroupBreakdown struct {
	Name            string   `json:"name"`
	Total           int      `json:"total"`
	Completed       int      `json:"completed"`
	AverageProgress *float64 `json:"average_progress,omitempty"`
}

// ProgressBucket is one bar of the progress histogram. Records without
// a parsed progress value are excluded from every bucket.
type ProgressBucket struct {
	Label string  `json:"label"`
	From  float64 `json:"from"`
	To    float64 `json:"to"`
	Count int     `json:"count"`
}

// FilterOptions carries the distinct selector values for the sidebar,
// each list starting with FilterAll.
type FilterOptions struct {
	Agencies []string `json:"agencies"`
	Statuses []string `json:"statuses"`
}
