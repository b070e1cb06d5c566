package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/usagelens/usagelens/internal/config"
	"github.com/usagelens/usagelens/internal/engine"
	"github.com/usagelens/usagelens/internal/fetch"
	"github.com/usagelens/usagelens/internal/normalize"
	"github.com/usagelens/usagelens/internal/render"
)

var outputJSON bool

func newStatusCommand(cfg config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Fetch usage once and print the normalized snapshot.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runStatus(cmd, cfg)
		},
	}
	cmd.Flags().BoolVar(&outputJSON, "json", false, "emit the snapshot as JSON")
	return cmd
}

func runStatus(cmd *cobra.Command, cfg config.Config) error {
	token := cfg.ResolveToken()
	if token == "" {
		return fmt.Errorf("no session token found (set %s)", cfg.TokenEnv)
	}
	if cfg.OrgID == "" {
		return fmt.Errorf("no org_id configured (edit %s)", config.ConfigPath())
	}

	client := fetch.NewClient(token)
	sources := fetch.DefaultSources(cfg.BaseURL, cfg.OrgID)
	eng := engine.New(client, sources, time.Duration(cfg.UI.RefreshIntervalSeconds)*time.Second)

	snap, err := eng.Refresh(cmd.Context())
	if err != nil && !errors.Is(err, normalize.ErrNoUsageData) {
		return err
	}

	if outputJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(snap)
	}

	fmt.Println(render.RenderSnapshot(snap, cfg.UI.WarnThreshold, cfg.UI.CritThreshold))
	return nil
}
