package sheet

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// sourceRow builds a full-width source row with the given cells set by
// ordinal position.
func sourceRow(cells map[int]string) []string {
	row := make([]string, sourceColumnCount)
	for i, v := range cells {
		row[i] = v
	}
	return row
}

// realRow is a representative data row as the sheet publishes it.
func realRow(sno, name string) []string {
	return sourceRow(map[int]string{
		colSNO:                    sno,
		colAgency:                 "PWD",
		colDivision:               "Division 1",
		colProjectName:            name,
		colDescription:            "Widening and strengthening",
		colExpenditurePct:         "60%",
		colProjectStatus:          "Ongoing",
		colPhysicalProgress:       "45%",
		colProjectedCompletionPct: "80 %",
		colUCStatus:               "Pending",
		colCurrentStatus:          "On Track",
		colStuckReason:            "",
	})
}

// stubFetcher returns canned rows or an error.
type stubFetcher struct {
	rows [][]string
	err  error
}

func (s *stubFetcher) Fetch(ctx context.Context) ([][]string, error) {
	return s.rows, s.err
}

func TestParsePercent(t *testing.T) {
	tests := []struct {
		name string
		cell string
		want *float64
	}{
		{name: "plain percent", cell: "45%", want: ptr(45.0)},
		{name: "decimal percent", cell: "45.5%", want: ptr(45.5)},
		{name: "spaces around suffix", cell: " 45.5 % ", want: ptr(45.5)},
		{name: "bare number", cell: "45", want: ptr(45.0)},
		{name: "zero", cell: "0%", want: ptr(0.0)},
		{name: "hundred", cell: "100%", want: ptr(100.0)},
		{name: "empty", cell: "", want: nil},
		{name: "whitespace only", cell: "   ", want: nil},
		{name: "free text", cell: "NA", want: nil},
		{name: "double suffix", cell: "45%%", want: nil},
		{name: "negative out of range", cell: "-5%", want: nil},
		{name: "above hundred out of range", cell: "120%", want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := parsePercent(tt.cell)
			if tt.want == nil {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.InDelta(t, *tt.want, *got, 1e-9)
		})
	}
}

func TestLoaderClean(t *testing.T) {
	banner := sourceRow(nil) // all-empty banner row
	header := sourceRow(map[int]string{
		colSNO:         "S.No",
		colAgency:      "Agency",
		colProjectName: "Project Name",
	})

	fetcher := &stubFetcher{rows: [][]string{banner, header, realRow("1", "Road X")}}
	loader := NewLoader(fetcher, "test-sheet", nil)

	table, err := loader.Load(context.Background())
	require.NoError(t, err)
	require.Len(t, table.Records, 1)

	r := table.Records[0]
	assert.Equal(t, "1", r.SNO)
	assert.Equal(t, "Road X", r.ProjectName)
	assert.Equal(t, "PWD", r.Agency)
	assert.Equal(t, "Ongoing", r.ProjectStatus)
	require.NotNil(t, r.PhysicalProgress)
	assert.InDelta(t, 45.0, *r.PhysicalProgress, 1e-9)
	require.NotNil(t, r.ProjectedCompletionPct)
	assert.InDelta(t, 80.0, *r.ProjectedCompletionPct, 1e-9)
	require.NotNil(t, r.ExpenditurePct)
	assert.InDelta(t, 60.0, *r.ExpenditurePct, 1e-9)
}

func TestLoaderCleanInvariants(t *testing.T) {
	rows := [][]string{
		sourceRow(nil),
		sourceRow(map[int]string{colSNO: "S.No", colProjectName: "Project Name"}),
		realRow("1", "Road X"),
		realRow("2", "Bridge Y"),
		sourceRow(map[int]string{colSNO: "3", colAgency: "Implementing Agency", colProjectName: "leaked banner"}),
		sourceRow(map[int]string{colSNO: "4", colAgency: "RWD"}), // empty project name
		realRow("5", "Canal Z"),
	}

	loader := NewLoader(&stubFetcher{rows: rows}, "test-sheet", nil)
	table, err := loader.Load(context.Background())
	require.NoError(t, err)

	assert.Len(t, table.Records, 3)
	for _, r := range table.Records {
		assert.NotEmpty(t, r.SNO)
		assert.NotEmpty(t, r.ProjectName)
		assert.NotEqual(t, "Project Name", r.ProjectName)
		assert.False(t, bannerAgencies[r.Agency])
	}
}

// driftRow is a data-looking row (non-sentinel serial and name) at the
// wrong width, so it must reach the width check rather than be dropped
// as a banner.
func driftRow(width int) []string {
	row := make([]string, width)
	row[colSNO] = "7"
	row[colAgency] = "PWD"
	row[colProjectName] = "Road X"
	return row
}

func TestLoaderSchemaDrift(t *testing.T) {
	tests := []struct {
		name string
		rows [][]string
	}{
		{name: "narrow row", rows: [][]string{driftRow(10)}},
		{name: "wide row", rows: [][]string{driftRow(25)}},
		{name: "drift mid-file", rows: [][]string{realRow("1", "Road X"), driftRow(21)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			loader := NewLoader(&stubFetcher{rows: tt.rows}, "test-sheet", nil)
			_, err := loader.Load(context.Background())
			require.Error(t, err)

			var schemaErr *SchemaError
			require.ErrorAs(t, err, &schemaErr)
			assert.Equal(t, sourceColumnCount, schemaErr.WantColumns)
		})
	}
}

func TestLoaderDropsNarrowBannerRows(t *testing.T) {
	// Banner and header rows in the wild carry fewer cells than the
	// data region; they are dropped, not treated as drift.
	rows := [][]string{
		make([]string, sourceColumnCount-1), // blank banner, one cell short
		{"S.No", "Agency", "", "", "", "Project Name"},
		{""},
		realRow("1", "Road X"),
	}

	loader := NewLoader(&stubFetcher{rows: rows}, "test-sheet", nil)
	table, err := loader.Load(context.Background())
	require.NoError(t, err)

	require.Len(t, table.Records, 1)
	assert.Equal(t, "Road X", table.Records[0].ProjectName)
}

func TestLoaderPercentFailuresAreNotErrors(t *testing.T) {
	row := realRow("1", "Road X")
	row[colPhysicalProgress] = "not a number"
	row[colExpenditurePct] = ""

	loader := NewLoader(&stubFetcher{rows: [][]string{row}}, "test-sheet", nil)
	table, err := loader.Load(context.Background())
	require.NoError(t, err)
	require.Len(t, table.Records, 1)

	assert.Nil(t, table.Records[0].PhysicalProgress)
	assert.Nil(t, table.Records[0].ExpenditurePct)
	assert.NotNil(t, table.Records[0].ProjectedCompletionPct)
}

func TestEndToEndCSVExport(t *testing.T) {
	// Raw CSV as the export endpoint serves it: a blank banner row
	// (narrower than the data region, as published), the leaked header
	// row, one real row.
	var b strings.Builder
	b.WriteString(",,,,,,,,,,,,,,,,,,,,\n")
	header := sourceRow(map[int]string{colSNO: "S.No", colProjectName: "Project Name"})
	b.WriteString(strings.Join(header, ",") + "\n")
	b.WriteString(strings.Join(realRow("1", "Road X"), ",") + "\n")

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/csv")
		w.Write([]byte(b.String()))
	}))
	defer srv.Close()

	fetcher := NewCSVExportFetcher(srv.URL, 5*time.Second, nil)
	loader := NewLoader(fetcher, srv.URL, nil)

	table, err := loader.Load(context.Background())
	require.NoError(t, err)
	require.Len(t, table.Records, 1)
	assert.Equal(t, "Road X", table.Records[0].ProjectName)
	require.NotNil(t, table.Records[0].PhysicalProgress)
	assert.InDelta(t, 45.0, *table.Records[0].PhysicalProgress, 1e-9)
}

func TestCSVExportFetcherErrors(t *testing.T) {
	t.Run("non-2xx status", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "gone", http.StatusNotFound)
		}))
		defer srv.Close()

		fetcher := NewCSVExportFetcher(srv.URL, 5*time.Second, nil)
		_, err := fetcher.Fetch(context.Background())
		require.Error(t, err)

		var fetchErr *FetchError
		assert.ErrorAs(t, err, &fetchErr)
	})

	t.Run("malformed csv", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte("a,\"unterminated\n"))
		}))
		defer srv.Close()

		fetcher := NewCSVExportFetcher(srv.URL, 5*time.Second, nil)
		_, err := fetcher.Fetch(context.Background())
		require.Error(t, err)

		var parseErr *ParseError
		assert.ErrorAs(t, err, &parseErr)
	})

	t.Run("connection refused", func(t *testing.T) {
		fetcher := NewCSVExportFetcher("http://127.0.0.1:1/export", time.Second, nil)
		_, err := fetcher.Fetch(context.Background())
		require.Error(t, err)

		var fetchErr *FetchError
		assert.ErrorAs(t, err, &fetchErr)
	})
}

func ptr(v float64) *float64 { return &v }
