package cmd

import (
	"context"
	"fmt"

	"github.com/abhisek/quizter/internal/telemetry"
	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show recorded event counts",
	RunE: func(cmd *cobra.Command, args []string) error {
		dbPath, err := resolveDBPath(cmd)
		if err != nil {
			return fmt.Errorf("resolve DB path: %w", err)
		}
		st, err := telemetry.Open(dbPath)
		if err != nil {
			return fmt.Errorf("open store: %w", err)
		}
		defer st.Close()

		ctx := context.Background()
		checks, err := st.CheckCount(ctx)
		if err != nil {
			return err
		}
		faults, err := st.FaultCount(ctx)
		if err != nil {
			return err
		}

		fmt.Printf("Database: %s\n", dbPath)
		fmt.Printf("Answer checks: %d\n", checks)
		fmt.Printf("Faults:        %d\n", faults)
		return nil
	},
}
