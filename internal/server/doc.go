// Package server exposes the chat and spreadsheet translation paths over
// HTTP. Each request is handled independently; the only shared state is
// the provider (with its circuit breaker) and the optional job history.
//
// Routes:
//
//	POST /translate        {"message": "...", "language": "de"}
//	POST /translate-batch  multipart form with "file" and "language"
//	GET  /jobs?limit=N     recent batch jobs
//	GET  /healthz          liveness and provider name
package server
