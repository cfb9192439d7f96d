// Package translation turns text plus a target language into completion
// requests. It owns the system prompts for batch rows and chat messages,
// resolves language codes to display names, and enforces per-call
// timeouts. Calls are never retried.
package translation
