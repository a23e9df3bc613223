// Package services holds the application service layer between the
// HTTP transport and the sheet pipeline.
package services
