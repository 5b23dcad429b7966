// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

//go:build mage

// Package main provides build targets for the furnish project using Mage.
//
// Usage:
//
//	mage build          Compile furnish binary to bin/
//	mage test:all       Run all tests
//	mage test:cover     Run all tests with a coverage profile
//	mage lint           Run golangci-lint
//	mage clean          Remove build artifacts
//	mage install        Install furnish to GOPATH/bin
package main

const (
	binGo      = "go"
	binaryName = "furnish"
	binaryDir  = "bin"
	cmdDir     = "./cmd/furnish"
)
