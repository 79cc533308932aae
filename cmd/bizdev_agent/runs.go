package main

import (
	"context"
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/anujpndt/bizdev-agent/internal/db"
)

var runsCommand = &cobra.Command{
	Use:   "runs",
	Short: "List recent discovery runs stored in the database",
	RunE:  runRunsCmd,
}

var (
	runsDatabaseURL string
	runsLimit       int
	runsShowID      string
	runsCompany     string
)

func init() {
	runsCommand.Flags().StringVar(&runsDatabaseURL, "db-url", "", "PostgreSQL connection URL (optional, defaults to DATABASE_URL env var)")
	runsCommand.Flags().IntVarP(&runsLimit, "limit", "n", 20, "Maximum runs to list")
	runsCommand.Flags().StringVar(&runsShowID, "show", "", "Run ID to show companies for")
	runsCommand.Flags().StringVar(&runsCompany, "company", "", "Company name to print the detailed report for (requires --show)")

	rootCmd.AddCommand(runsCommand)
}

func runRunsCmd(_ *cobra.Command, _ []string) error {
	ctx := context.Background()

	databaseURL := runsDatabaseURL
	if databaseURL == "" {
		databaseURL = os.Getenv("DATABASE_URL")
	}
	if databaseURL == "" {
		return fmt.Errorf("DATABASE_URL environment variable or --db-url flag is required")
	}

	database, err := db.Connect(ctx, databaseURL)
	if err != nil {
		return err
	}
	defer database.Close()

	if runsShowID != "" {
		runID, err := uuid.Parse(runsShowID)
		if err != nil {
			return fmt.Errorf("invalid run ID: %w", err)
		}
		run, err := database.GetRun(ctx, runID)
		if err != nil {
			return err
		}
		if run == nil {
			return fmt.Errorf("run %s not found", runID)
		}

		if runsCompany != "" {
			company, err := database.GetCompanyByName(ctx, runID, runsCompany)
			if err != nil {
				return err
			}
			if company == nil {
				return fmt.Errorf("company %q not found in run %s", runsCompany, runID)
			}
			fmt.Printf("%s (%s)\n%s\n\n%s\n", company.Name, company.Location, company.Website, company.DetailedReport)
			return nil
		}

		fmt.Printf("Run %s: %s in %s (target=%d, status=%s)\n",
			run.ID, run.Sector, run.Location, run.TargetCount, run.Status)
		companies, err := database.ListCompanies(ctx, runID)
		if err != nil {
			return err
		}
		for i, c := range companies {
			fmt.Printf("%d. %s (%s) %s\n", i+1, c.Name, c.Location, c.Website)
		}
		return nil
	}

	runs, err := database.ListRuns(ctx, runsLimit)
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("No runs found.")
		return nil
	}
	for _, r := range runs {
		completed := "running"
		if r.CompletedAt != nil {
			completed = r.CompletedAt.Format("2006-01-02 15:04")
		}
		fmt.Printf("%s  %-20s %-15s target=%-4d %s (%s)\n",
			r.ID, r.Sector, r.Location, r.TargetCount, r.Status, completed)
	}
	return nil
}
