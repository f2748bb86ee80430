//go:build mage

package main

import (
	"os"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

// Default target - build the binary
var Default = Build

// Build builds the reqtrace binary
func Build() error {
	return sh.RunV("go", "build", "-o", "bin/reqtrace", "./cmd/reqtrace")
}

// Test runs the full test suite with race detection
func Test() error {
	return sh.RunV("go", "test", "-race", "./...")
}

// Lint runs go vet across the module
func Lint() error {
	return sh.RunV("go", "vet", "./...")
}

// CI runs lint and tests, the way the pipeline does
func CI() {
	mg.SerialDeps(Lint, Test)
}

// Clean removes build artifacts
func Clean() error {
	return os.RemoveAll("bin")
}
