// Package main is the CurrencySentinel entry point.
//
// Usage:
//
//	go run ./cmd/sentinel analyze
//	go run ./cmd/sentinel serve
package main

import (
	"os"

	"CurrencySentinel/cmd/sentinel/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
