package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/olusolaa/flagsync/internal/app"
)

func newApplyCmd() *cobra.Command {
	var dryRun bool
	cmd := &cobra.Command{
		Use:   "apply",
		Short: "Reconcile the flag service with the declarations",
		PreRunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("dry-run") {
				viper.Set("target.dry_run", dryRun)
			}
			return nil
		},
		RunE: runReconcile,
	}
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Compute and report the diff without changing the flag service")
	return cmd
}

func newPlanCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "plan",
		Short: "Report the changes apply would make, without making them",
		PreRunE: func(cmd *cobra.Command, args []string) error {
			viper.Set("target.dry_run", true)
			return nil
		},
		RunE: runReconcile,
	}
}

func runReconcile(cmd *cobra.Command, args []string) error {
	application, err := buildApplication(cmd, app.ModeRemote)
	if err != nil {
		return err
	}

	result, err := application.Run(cmd.Context())
	if err != nil {
		printRunError(err)
		return err
	}
	if failures := result.Failures(); len(failures) > 0 {
		fmt.Fprintf(os.Stderr, "WARNING: %d operations failed, see the report for details\n", len(failures))
	}
	return nil
}

func newLintCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "lint",
		Short: "Validate declarations and policy without contacting the flag service",
		RunE: func(cmd *cobra.Command, args []string) error {
			application, err := buildApplication(cmd, app.ModeLocal)
			if err != nil {
				return err
			}
			if err := application.Lint(cmd.Context()); err != nil {
				printRunError(err)
				return err
			}
			fmt.Fprintln(os.Stdout, "Declarations are valid.")
			return nil
		},
	}
}

func newScanCmd() *cobra.Command {
	var writeBaseline bool
	cmd := &cobra.Command{
		Use:   "scan",
		Short: "List toggles that use organization targeting and check them against the policy baseline",
		RunE: func(cmd *cobra.Command, args []string) error {
			application, err := buildApplication(cmd, app.ModeLocal)
			if err != nil {
				return err
			}
			found, err := application.Scan(cmd.Context(), writeBaseline)
			for _, key := range found.Keys() {
				fmt.Fprintln(os.Stdout, key)
			}
			if err != nil {
				printRunError(err)
				return err
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&writeBaseline, "write-baseline", false, "Record the current findings as the accepted policy baseline")
	return cmd
}
