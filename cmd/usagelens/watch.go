package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/usagelens/usagelens/internal/config"
	"github.com/usagelens/usagelens/internal/core"
	"github.com/usagelens/usagelens/internal/engine"
	"github.com/usagelens/usagelens/internal/fetch"
	"github.com/usagelens/usagelens/internal/render"
)

func newWatchCommand(cfg config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Poll usage continuously and reprint the snapshot on every refresh.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runWatch(cmd, cfg)
		},
	}
}

func runWatch(cmd *cobra.Command, cfg config.Config) error {
	token := cfg.ResolveToken()
	if token == "" {
		return fmt.Errorf("no session token found (set %s)", cfg.TokenEnv)
	}
	if cfg.OrgID == "" {
		return fmt.Errorf("no org_id configured (edit %s)", config.ConfigPath())
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	client := fetch.NewClient(token)
	interval := time.Duration(cfg.UI.RefreshIntervalSeconds) * time.Second
	eng := engine.New(client, fetch.DefaultSources(cfg.BaseURL, cfg.OrgID), interval)

	var mu sync.Mutex
	warn, crit := cfg.UI.WarnThreshold, cfg.UI.CritThreshold
	eng.OnUpdate(func(snap core.Snapshot) {
		mu.Lock()
		w, c := warn, crit
		mu.Unlock()
		fmt.Printf("\n%s\n", snap.Timestamp.Format(time.Kitchen))
		fmt.Println(render.RenderSnapshot(snap, w, c))
	})

	// Config edits (sources, thresholds, cadence) take effect on the next
	// poll without a restart.
	err := engine.WatchConfig(ctx, config.ConfigPath(), func() {
		reloaded, err := config.Load()
		if err != nil {
			log.Printf("watch: config reload failed: %v", err)
			return
		}
		mu.Lock()
		warn, crit = reloaded.UI.WarnThreshold, reloaded.UI.CritThreshold
		mu.Unlock()
		eng.SetInterval(time.Duration(reloaded.UI.RefreshIntervalSeconds) * time.Second)
		eng.SetSources(fetch.DefaultSources(reloaded.BaseURL, reloaded.OrgID))
	})
	if err != nil {
		log.Printf("watch: config watcher unavailable: %v", err)
	}

	eng.Run(ctx)
	return nil
}
