package sheet

import "fmt"

// FetchError reports a transport-level failure: timeout, connection
// refusal, or a non-2xx response from the sheet host.
type FetchError struct {
	URL string
	Err error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("sheet fetch failed: %s: %v", e.URL, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// ParseError reports that the response body was not well-formed CSV.
type ParseError struct {
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("sheet parse failed: malformed csv: %v", e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// SchemaError reports that the sheet layout no longer matches the
// fixed 22-column mapping. The loader fails loudly here instead of
// silently misaligning columns.
type SchemaError struct {
	WantColumns int
	GotColumns  int
	Row         int
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("sheet schema drift: row %d has %d columns, expected %d",
		e.Row, e.GotColumns, e.WantColumns)
}
