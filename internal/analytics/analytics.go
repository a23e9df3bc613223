// Package analytics computes the dashboard's views over a cleaned
// project record set: filtering, headline metrics, group breakdowns,
// the at-risk selection, and the progress histogram. All functions are
// pure over their inputs; missing percentages are skipped, never
// treated as zero.
package analytics

import (
	"sort"

	"pragati/pkg/contracts/domain"
)

// Filter returns the records matching the sidebar selectors. A zero
// filter (or "All" in either field) is a no-op.
func Filter(records []domain.ProjectRecord, f domain.ProjectFilter) []domain.ProjectRecord {
	out := make([]domain.ProjectRecord, 0, len(records))
	for i := range records {
		if f.Matches(&records[i]) {
			out = append(out, records[i])
		}
	}
	return out
}

// Summarize computes the five headline metrics over a record set.
// Shares guard the empty set: zero records means zero shares, not a
// division panic.
func Summarize(records []domain.ProjectRecord) domain.DashboardSummary {
	s := domain.DashboardSummary{Total: len(records)}

	var progressSum float64
	var progressN int

	for i := range records {
		r := &records[i]
		switch r.ProjectStatus {
		case domain.StatusCompleted:
			s.Completed++
		case domain.StatusOngoing:
			s.Ongoing++
		}
		if r.CurrentStatus == domain.CurrentStatusDelayed {
			s.Delayed++
		}
		if r.PhysicalProgress != nil {
			progressSum += *r.PhysicalProgress
			progressN++
		}
	}

	if s.Total > 0 {
		s.CompletedShare = float64(s.Completed) / float64(s.Total) * 100
		s.OngoingShare = float64(s.Ongoing) / float64(s.Total) * 100
		s.DelayedShare = float64(s.Delayed) / float64(s.Total) * 100
	}
	if progressN > 0 {
		avg := progressSum / float64(progressN)
		s.AverageProgress = &avg
	}

	return s
}

// AtRisk returns the records flagged by low physical progress or an
// explicit delayed marker. A record matching both conditions appears
// once.
func AtRisk(records []domain.ProjectRecord) []domain.ProjectRecord {
	out := make([]domain.ProjectRecord, 0)
	for i := range records {
		if records[i].IsAtRisk() {
			out = append(out, records[i])
		}
	}
	return out
}

// ByAgency groups records by implementing agency.
func ByAgency(records []domain.ProjectRecord) []domain.GroupBreakdown {
	return groupBy(records, func(r *domain.ProjectRecord) string { return r.Agency })
}

// ByDivision groups records by division. Records without a division
// are grouped under "Unspecified".
func ByDivision(records []domain.ProjectRecord) []domain.GroupBreakdown {
	return groupBy(records, func(r *domain.ProjectRecord) string {
		if r.Division == "" {
			return "Unspecified"
		}
		return r.Division
	})
}

// groupBy aggregates count, completed count, and mean progress per
// group key, ordered by count descending then name ascending.
func groupBy(records []domain.ProjectRecord, key func(*domain.ProjectRecord) string) []domain.GroupBreakdown {
	type agg struct {
		total       int
		completed   int
		progressSum float64
		progressN   int
	}
	groups := make(map[string]*agg)

	for i := range records {
		r := &records[i]
		k := key(r)
		g, ok := groups[k]
		if !ok {
			g = &agg{}
			groups[k] = g
		}
		g.total++
		if r.IsCompleted() {
			g.completed++
		}
		if r.PhysicalProgress != nil {
			g.progressSum += *r.PhysicalProgress
			g.progressN++
		}
	}

	out := make([]domain.GroupBreakdown, 0, len(groups))
	for name, g := range groups {
		b := domain.GroupBreakdown{
			Name:      name,
			Total:     g.total,
			Completed: g.completed,
		}
		if g.progressN > 0 {
			avg := g.progressSum / float64(g.progressN)
			b.AverageProgress = &avg
		}
		out = append(out, b)
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Total != out[j].Total {
			return out[i].Total > out[j].Total
		}
		return out[i].Name < out[j].Name
	})

	return out
}

// ProgressBuckets builds the four-bar progress histogram. Records
// without a parsed progress value are excluded. 100% lands in the top
// bucket.
func ProgressBuckets(records []domain.ProjectRecord) []domain.ProgressBucket {
	buckets := []domain.ProgressBucket{
		{Label: "0-25%", From: 0, To: 25},
		{Label: "25-50%", From: 25, To: 50},
		{Label: "50-75%", From: 50, To: 75},
		{Label: "75-100%", From: 75, To: 100},
	}

	for i := range records {
		p := records[i].PhysicalProgress
		if p == nil {
			continue
		}
		for b := range buckets {
			last := b == len(buckets)-1
			if *p >= buckets[b].From && (*p < buckets[b].To || (last && *p <= buckets[b].To)) {
				buckets[b].Count++
				break
			}
		}
	}

	return buckets
}

// FilterOptions collects the distinct selector values, sorted, with
// "All" prepended to each list.
func FilterOptions(records []domain.ProjectRecord) domain.FilterOptions {
	agencySet := make(map[string]bool)
	statusSet := make(map[string]bool)
	for i := range records {
		if records[i].Agency != "" {
			agencySet[records[i].Agency] = true
		}
		if records[i].ProjectStatus != "" {
			statusSet[records[i].ProjectStatus] = true
		}
	}

	return domain.FilterOptions{
		Agencies: withAll(sortedKeys(agencySet)),
		Statuses: withAll(sortedKeys(statusSet)),
	}
}

func sortedKeys(set map[string]bool) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func withAll(values []string) []string {
	return append([]string{domain.FilterAll}, values...)
}
