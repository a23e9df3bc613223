// Package sheet loads the published project spreadsheet and cleans it
// into the domain record set the dashboard serves.
//
// The source sheet is authored for human viewing: the first rows are
// title banners, the column header row leaks into the data region, and
// percentage cells are free-typed strings. The loader downloads the
// CSV export (or reads the same range through the Sheets API), maps the
// fixed 22-column positional layout to semantic names, coerces the
// three percentage columns, and drops banner and sentinel rows.
//
// One load produces one immutable ProjectTable. Cache memoizes it for
// the process lifetime; invalidation happens on restart or an explicit
// Invalidate call.
package sheet
