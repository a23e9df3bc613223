package errors

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestHandler() *ErrorHandler {
	return NewErrorHandler(slog.New(slog.NewTextHandler(io.Discard, nil)), false)
}

func TestErrorToProblemMapping(t *testing.T) {
	h := newTestHandler()
	r := httptest.NewRequest(http.MethodGet, "/api/projects", nil)

	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantType   string
	}{
		{
			name:       "deadline exceeded",
			err:        context.DeadlineExceeded,
			wantStatus: http.StatusGatewayTimeout,
			wantType:   TypeTimeout,
		},
		{
			name:       "fetch marker",
			err:        fmt.Errorf("load table: sheet fetch failed: GET: connection refused"),
			wantStatus: http.StatusBadGateway,
			wantType:   TypeSheetFetch,
		},
		{
			name:       "parse marker",
			err:        fmt.Errorf("load table: sheet parse failed: malformed csv: bare quote"),
			wantStatus: http.StatusBadGateway,
			wantType:   TypeSheetParse,
		},
		{
			name:       "schema marker",
			err:        fmt.Errorf("sheet schema drift: row 4 has 19 columns, expected 22"),
			wantStatus: http.StatusBadGateway,
			wantType:   TypeSheetSchema,
		},
		{
			name:       "api error",
			err:        fmt.Errorf("service: %w", ErrSheetLoadFailed),
			wantStatus: http.StatusBadGateway,
			wantType:   TypeSheetFetch,
		},
		{
			name:       "validation api error",
			err:        ErrValidation("format", "must be csv or xlsx"),
			wantStatus: http.StatusBadRequest,
			wantType:   TypeValidation,
		},
		{
			name:       "unknown error",
			err:        fmt.Errorf("something broke"),
			wantStatus: http.StatusInternalServerError,
			wantType:   TypeInternal,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			problem := h.ErrorToProblem(tt.err, r)
			require.NotNil(t, problem)
			assert.Equal(t, tt.wantStatus, problem.Status)
			assert.Equal(t, tt.wantType, problem.Type)
			assert.Equal(t, "/api/projects", problem.Instance)
		})
	}
}

func TestHandleErrorWritesProblemJSON(t *testing.T) {
	h := newTestHandler()
	r := httptest.NewRequest(http.MethodGet, "/api/summary", nil)
	w := httptest.NewRecorder()

	h.HandleError(w, r, fmt.Errorf("sheet fetch failed: status 500"))

	assert.Equal(t, http.StatusBadGateway, w.Code)
	assert.Contains(t, w.Body.String(), TypeSheetFetch)
}

func TestHandleErrorIgnoresNil(t *testing.T) {
	h := newTestHandler()
	r := httptest.NewRequest(http.MethodGet, "/api/summary", nil)
	w := httptest.NewRecorder()

	h.HandleError(w, r, nil)

	assert.Empty(t, w.Body.String())
}
