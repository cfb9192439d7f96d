// Package history stores a record of every batch run in SQLite so recent
// jobs can be listed from the CLI and the HTTP API.
package history
