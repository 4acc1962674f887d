package main

import (
	"io"
	"log"

	"github.com/spf13/cobra"

	"forcegraph/internal/config"
)

var version = "0.1.0"

type rootFlags struct {
	configPath string
	dbPath     string
	verbose    bool
}

func newRootCmd() *cobra.Command {
	flags := &rootFlags{}

	cmd := &cobra.Command{
		Use:           "forcelayout",
		Short:         "forcelayout: force-directed graph layout",
		Long:          brand.Sprint("forcelayout") + " settles force-directed graph layouts and manages frozen layouts",
		Version:       version,
		SilenceUsage:  true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			log.SetFlags(log.LstdFlags | log.Lshortfile)
			if flags.verbose {
				log.SetOutput(cmd.ErrOrStderr())
			} else {
				log.SetOutput(io.Discard)
			}
		},
	}

	cmd.PersistentFlags().StringVar(&flags.configPath, "config", "", "Config file path (default: search standard locations)")
	cmd.PersistentFlags().StringVar(&flags.dbPath, "db", "", "SQLite database path (overrides config)")
	cmd.PersistentFlags().BoolVarP(&flags.verbose, "verbose", "v", false, "Log progress to stderr")

	cmd.AddCommand(
		settleCmd(flags),
		convertCmd(flags),
		layoutsCmd(flags),
		configCmd(flags),
	)
	return cmd
}

// loadConfig resolves the config file and applies the --db override
func (f *rootFlags) loadConfig() (*config.Config, string, error) {
	cfg, path, err := config.LoadExplicit(f.configPath)
	if err != nil {
		return nil, path, err
	}
	if f.dbPath != "" {
		cfg.Database.Path = f.dbPath
	}
	return cfg, path, nil
}
