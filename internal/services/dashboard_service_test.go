package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pragati/internal/sheet"
	"pragati/pkg/contracts/domain"
)

// fakeFetcher serves canned source rows through the real loader and
// cache, so these tests exercise the full clean-memoize-aggregate path.
type fakeFetcher struct {
	rows [][]string
	err  error
}

func (f *fakeFetcher) Fetch(ctx context.Context) ([][]string, error) {
	return f.rows, f.err
}

// row builds a 22-column source row. Positions follow the published
// sheet layout.
func row(sno, agency, name, status, progress, current string) []string {
	r := make([]string, 22)
	r[0] = sno
	r[1] = agency
	r[5] = name
	r[11] = status
	r[12] = progress
	r[17] = current
	return r
}

func newTestService(f sheet.Fetcher) *DashboardService {
	loader := sheet.NewLoader(f, "test-sheet", nil)
	return NewDashboardService(sheet.NewCache(loader, nil), nil, nil, nil)
}

func TestOverviewHappyPath(t *testing.T) {
	svc := newTestService(&fakeFetcher{rows: [][]string{
		row("1", "PWD", "Road X", "Completed", "100%", "On Track"),
		row("2", "PWD", "Bridge Y", "Ongoing", "40%", "On Track"),
		row("3", "RWD", "Canal Z", "Ongoing", "70%", "Project Delaid"),
	}})

	overview := svc.Overview(context.Background(), domain.ProjectFilter{})
	require.Empty(t, overview.Error)
	assert.Len(t, overview.Projects, 3)
	assert.Equal(t, 3, overview.Summary.Total)
	assert.Equal(t, 1, overview.Summary.Completed)
	assert.Equal(t, 1, overview.Summary.Delayed)
	require.NotNil(t, overview.FetchedAt)
}

func TestOverviewCollapsesLoadFailure(t *testing.T) {
	svc := newTestService(&fakeFetcher{err: &sheet.FetchError{URL: "test", Err: errors.New("timeout")}})

	overview := svc.Overview(context.Background(), domain.ProjectFilter{})
	assert.NotEmpty(t, overview.Error)
	assert.Empty(t, overview.Projects)
	assert.Equal(t, 0, overview.Summary.Total)
	assert.Nil(t, overview.FetchedAt)
}

func TestSummaryRespectsFilter(t *testing.T) {
	svc := newTestService(&fakeFetcher{rows: [][]string{
		row("1", "PWD", "Road X", "Completed", "100%", "On Track"),
		row("2", "PWD", "Bridge Y", "Ongoing", "40%", "On Track"),
		row("3", "RWD", "Canal Z", "Completed", "100%", "On Track"),
	}})

	summary, err := svc.Summary(context.Background(), domain.ProjectFilter{Agency: "PWD"})
	require.NoError(t, err)
	assert.Equal(t, 2, summary.Total)
	assert.Equal(t, 1, summary.Completed)
	assert.InDelta(t, 50.0, summary.CompletedShare, 1e-9)
}

func TestAtRiskThroughService(t *testing.T) {
	svc := newTestService(&fakeFetcher{rows: [][]string{
		row("1", "PWD", "Road X", "Ongoing", "30%", "Project Delaid"), // both conditions, once
		row("2", "PWD", "Bridge Y", "Ongoing", "80%", "On Track"),
		row("3", "RWD", "Canal Z", "Ongoing", "45%", "On Track"),
	}})

	atRisk, err := svc.AtRisk(context.Background(), domain.ProjectFilter{})
	require.NoError(t, err)
	require.Len(t, atRisk, 2)
	assert.Equal(t, "1", atRisk[0].SNO)
	assert.Equal(t, "3", atRisk[1].SNO)
}

func TestRefreshReloadsTable(t *testing.T) {
	fetcher := &fakeFetcher{rows: [][]string{
		row("1", "PWD", "Road X", "Ongoing", "30%", "On Track"),
	}}
	svc := newTestService(fetcher)

	_, err := svc.Projects(context.Background(), domain.ProjectFilter{})
	require.NoError(t, err)
	assert.True(t, svc.Loaded())

	fetcher.rows = append(fetcher.rows, row("2", "PWD", "Bridge Y", "Ongoing", "50%", "On Track"))

	table, err := svc.Refresh(context.Background())
	require.NoError(t, err)
	assert.Len(t, table.Records, 2)
}

func TestSchemaDriftSurfacesAsError(t *testing.T) {
	svc := newTestService(&fakeFetcher{rows: [][]string{make([]string, 7)}})

	_, err := svc.Projects(context.Background(), domain.ProjectFilter{})
	require.Error(t, err)

	var schemaErr *sheet.SchemaError
	assert.ErrorAs(t, err, &schemaErr)
}
