//go:build mage

// Package main provides build targets for the wordloom project using Mage.
//
// Usage:
//
//	mage build       Compile wordloom binary to bin/
//	mage test:all    Run all tests
//	mage test:unit   Run only unit tests (short mode)
//	mage test:cover  Run tests with a coverage summary
//	mage lint        Run golangci-lint
//	mage clean       Remove build artifacts
//	mage install     Install wordloom to GOPATH/bin
package main

const (
	binGo      = "go"
	binaryName = "wordloom"
	binaryDir  = "bin"
	cmdDir     = "./cmd/wordloom"
)
