// Package processor contains the application logic behind each CLI mode:
// single-text translation, local batch translation, the chat REPL, job
// listing and the HTTP server. It builds the provider and translator from
// the merged configuration and coordinates the other packages.
package processor
