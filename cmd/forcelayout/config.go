package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"forcegraph/internal/config"
)

func configCmd(flags *rootFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect or create the configuration file",
	}
	cmd.AddCommand(
		configShowCmd(flags),
		configInitCmd(),
		configPathsCmd(),
	)
	return cmd
}

func configShowCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, path, err := flags.loadConfig()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if path == "" {
				path = "defaults"
			}
			fmt.Fprintf(out, "%s %s\n\n", brand.Sprint("config"), subtle.Sprint(path))
			fmt.Fprintln(out, cfg.Summary())
			return nil
		},
	}
}

func configInitCmd() *cobra.Command {
	var path string
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a default configuration file",
		RunE: func(cmd *cobra.Command, args []string) error {
			if path == "" {
				path = config.DefaultConfigPath()
			}
			if _, err := os.Stat(path); err == nil && !force {
				return fmt.Errorf("%s already exists (use --force to overwrite)", path)
			}
			if err := config.DefaultConfig().Save(path); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s wrote %s\n", statusIcon(true), path)
			return nil
		},
	}

	cmd.Flags().StringVar(&path, "path", "", "Destination (default: user config directory)")
	cmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing file")
	return cmd
}

func configPathsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "paths",
		Short: "List config search locations in priority order",
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			for _, p := range config.SearchPaths() {
				_, err := os.Stat(p)
				marker := subtle.Sprint("-")
				if err == nil {
					marker = statusIcon(true)
				}
				fmt.Fprintf(out, "  %s %s\n", marker, p)
			}
			if config.FindConfigPath() == "" {
				fmt.Fprintln(out, warn.Sprint("  no config file found, defaults apply"))
			}
		},
	}
}
