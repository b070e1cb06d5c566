package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/usagelens/usagelens/internal/appupdate"
	"github.com/usagelens/usagelens/internal/version"
)

func newCheckUpdateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "check-update",
		Short: "Check GitHub for a newer release.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			result, err := appupdate.Check(cmd.Context(), appupdate.CheckOptions{
				CurrentVersion: version.Version,
			})
			if err != nil {
				return err
			}

			if result.CurrentVersion == "" {
				fmt.Println("Development build; update check skipped.")
				return nil
			}
			if !result.UpdateAvailable {
				fmt.Printf("Up to date (%s).\n", result.CurrentVersion)
				return nil
			}
			fmt.Printf("Update available: %s → %s\n", result.CurrentVersion, result.LatestVersion)
			fmt.Printf("Upgrade with: %s\n", result.UpgradeHint)
			return nil
		},
	}
}
