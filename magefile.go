//go:build mage

package main

import (
	"fmt"
	"os"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

const (
	binaryName = "lingosheet"
	mainPath   = "./cmd/lingosheet"
)

// Default target to run when none is specified
var Default = Build

// Build builds the lingosheet binary
func Build() error {
	fmt.Println("Building", binaryName)
	// go-sqlite3 needs cgo
	return sh.RunWith(map[string]string{"CGO_ENABLED": "1"}, "go", "build", "-o", binaryName, mainPath)
}

// Install installs lingosheet into GOPATH/bin
func Install() error {
	mg.Deps(Test)
	return sh.RunWith(map[string]string{"CGO_ENABLED": "1"}, "go", "install", mainPath)
}

// Run builds and starts the HTTP server
func Run() error {
	mg.Deps(Build)
	return sh.RunV("./" + binaryName)
}

// Test runs all tests
func Test() error {
	return sh.RunV("go", "test", "./...")
}

// TestRace runs all tests with the race detector
func TestRace() error {
	return sh.RunV("go", "test", "-race", "./...")
}

// Integration runs the tests that talk to the real completion API
func Integration() error {
	if os.Getenv("INFINI_API_KEY") == "" {
		return fmt.Errorf("INFINI_API_KEY must be set for integration tests")
	}
	return sh.RunV("go", "test", "-count=1", "./internal/llm/...", "./internal/translation/...", "./internal/models/...")
}

// Vet runs go vet
func Vet() error {
	return sh.RunV("go", "vet", "./...")
}

// Fmt formats all Go sources
func Fmt() error {
	return sh.RunV("gofmt", "-s", "-w", ".")
}

// Clean removes build artifacts
func Clean() error {
	return sh.Rm(binaryName)
}
