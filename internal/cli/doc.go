// Package cli provides command-line interface setup and configuration
// for the lingosheet application. It handles flag parsing, command
// creation, and configuration management using cobra and viper, and
// turns the merged configuration into the settings each component needs.
package cli
