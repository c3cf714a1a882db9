// Package main is the entry point for the budgetctl CLI.
package main

import (
	"os"

	"github.com/budget-tracker/backend/cmd/budgetctl/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
