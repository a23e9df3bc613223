package sheet

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValuesToRows(t *testing.T) {
	short := []interface{}{"1", "PWD", "Division 1", "", "", "Road X"}
	wide := make([]interface{}, 25)
	for i := range wide {
		wide[i] = "x"
	}

	rows := valuesToRows([][]interface{}{short, wide})
	require.Len(t, rows, 2)

	// Trailing cells the API omitted come back as blanks at the fixed
	// layout width.
	assert.Len(t, rows[0], sourceColumnCount)
	assert.Equal(t, "Road X", rows[0][colProjectName])
	assert.Equal(t, "", rows[0][colCurrentStatus])

	// Over-wide rows keep their natural width.
	assert.Len(t, rows[1], 25)
}

func TestLoaderRejectsOverWideAPIRows(t *testing.T) {
	// A sheet that grew past the fixed layout must fail loudly on the
	// API path too, not load misaligned.
	wide := make([]interface{}, 25)
	for i, cell := range driftRow(25) {
		wide[i] = cell
	}

	loader := NewLoader(&stubFetcher{rows: valuesToRows([][]interface{}{wide})}, "test-sheet", nil)
	_, err := loader.Load(context.Background())
	require.Error(t, err)

	var schemaErr *SchemaError
	require.ErrorAs(t, err, &schemaErr)
	assert.Equal(t, 25, schemaErr.GotColumns)
}
