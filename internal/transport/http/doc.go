// Package http contains the chi HTTP handlers for the dashboard API.
// Handlers depend on service interfaces, render JSON via go-chi/render,
// and route failures through the central RFC 7807 error handler.
package http
