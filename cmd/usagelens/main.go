package main

import (
	"fmt"
	"io"
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/usagelens/usagelens/internal/config"
	"github.com/usagelens/usagelens/internal/version"
)

func main() {
	if os.Getenv("USAGELENS_DEBUG") != "" {
		log.SetOutput(os.Stderr)
	} else {
		log.SetOutput(io.Discard)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		fmt.Fprintf(os.Stderr, "Config path: %s\n", config.ConfigPath())
		os.Exit(1)
	}

	root := cobra.Command{
		Use:   "usagelens",
		Short: "usagelens shows AI account usage windows normalized from the provider's web backend.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runStatus(cmd, cfg)
		},
	}

	root.AddCommand(newStatusCommand(cfg))
	root.AddCommand(newWatchCommand(cfg))
	root.AddCommand(newCheckUpdateCommand())
	root.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print version information.",
		Run: func(_ *cobra.Command, _ []string) {
			fmt.Println(version.String())
		},
	})

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}
