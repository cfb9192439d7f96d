// Package models lists the models offered by the configured
// OpenAI-compatible endpoint, grouped into chat models suitable for
// translation and everything else.
package models
