package exporter

import (
	"bytes"
	"encoding/csv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pragati/pkg/contracts/domain"
)

func ptr(v float64) *float64 { return &v }

func sampleRecords() []domain.ProjectRecord {
	return []domain.ProjectRecord{
		{
			SNO:              "1",
			Agency:           "PWD",
			Division:         "Div A",
			ProjectName:      "Road X",
			ProjectStatus:    "Ongoing",
			PhysicalProgress: ptr(45),
			CurrentStatus:    "On Track",
			ExpenditurePct:   ptr(60.5),
		},
		{
			SNO:           "2",
			Agency:        "RWD",
			ProjectName:   "Bridge Y",
			ProjectStatus: "Completed",
		},
	}
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	err := WriteCSV(&buf, sampleRecords(), WriteOptions{})
	require.NoError(t, err)

	reader := csv.NewReader(&buf)
	rows, err := reader.ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, displayHeaders, rows[0])

	// Percentages render with the display suffix, missing values blank.
	assert.Equal(t, "45%", rows[1][6])
	assert.Equal(t, "60.5%", rows[1][10])
	assert.Equal(t, "", rows[2][6])
	assert.Equal(t, "Bridge Y", rows[2][3])
}

func TestWriteCSVBOMPrefix(t *testing.T) {
	var buf bytes.Buffer
	err := WriteCSV(&buf, nil, WriteOptions{BOMPrefix: true})
	require.NoError(t, err)

	raw := buf.Bytes()
	require.True(t, len(raw) >= 3)
	assert.Equal(t, []byte{0xEF, 0xBB, 0xBF}, raw[:3])
	assert.True(t, strings.HasPrefix(string(raw[3:]), "SNO,"))
}

func TestExportFilename(t *testing.T) {
	now := time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC)
	assert.Equal(t, "projects_20260314_092653.csv", ExportFilename("csv", now))
	assert.Equal(t, "projects_20260314_092653.xlsx", ExportFilename("xlsx", now))
}

func TestFormatPercent(t *testing.T) {
	assert.Equal(t, "", formatPercent(nil))
	assert.Equal(t, "0%", formatPercent(ptr(0)))
	assert.Equal(t, "45.5%", formatPercent(ptr(45.5)))
	assert.Equal(t, "100%", formatPercent(ptr(100)))
}
