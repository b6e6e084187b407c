// Package main provides the entry point for the mdq CLI.
package main

import (
	"os"

	"github.com/mdquery/mdq/cmd/mdq/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
