// Package main provides the entry point for the business development agent CLI.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "bizdev_agent",
	Short: "Company discovery and partnership analysis agent",
	Long:  "Discovers companies in a target sector and region, researches each one into a detailed report, and scores partnership fit against a reference corpus.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
