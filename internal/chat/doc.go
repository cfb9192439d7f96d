// Package chat implements the conversational translation path: one user
// message in, one assistant reply out, with an optional session log.
package chat
