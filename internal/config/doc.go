// Package config loads and validates application configuration from
// environment variables (prefix PRAGATI), with an optional YAML file
// layered on top. All knobs have working defaults except the source
// spreadsheet, which must be identified by id or export URL.
package config
