package main

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"forcegraph/internal/codec"
	"forcegraph/internal/repository"
	"forcegraph/internal/repository/sqlite"
)

func layoutsCmd(flags *rootFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "layouts",
		Short: "Manage stored layouts",
	}
	cmd.AddCommand(
		layoutsListCmd(flags),
		layoutsShowCmd(flags),
		layoutsDeleteCmd(flags),
	)
	return cmd
}

func (f *rootFlags) openRepo() (*sqlite.Repository, error) {
	cfg, _, err := f.loadConfig()
	if err != nil {
		return nil, err
	}
	return sqlite.New(cfg.Database.Path)
}

func layoutsListCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List stored layouts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			repo, err := flags.openRepo()
			if err != nil {
				return err
			}
			defer repo.Close()

			layouts, err := repo.ListLayouts(cmd.Context())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(layouts) == 0 {
				fmt.Fprintln(out, "  No layouts stored yet.")
				fmt.Fprintln(out, "  Layouts are stored by `forcelayout settle --save NAME`")
				return nil
			}

			rows := make([][]string, 0, len(layouts))
			for _, l := range layouts {
				rows = append(rows, []string{
					l.ID,
					l.Name,
					strconv.Itoa(l.NodeCount),
					strconv.Itoa(l.LinkCount),
					strconv.Itoa(l.Tick),
					l.CreatedAt.Format("Jan 02 15:04"),
				})
			}
			table(out, []string{"ID", "Name", "Nodes", "Links", "Tick", "Created"}, rows)
			fmt.Fprintf(out, "\n  %d layouts\n", len(layouts))
			return nil
		},
	}
}

func layoutsShowCmd(flags *rootFlags) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "show ID",
		Short: "Print a stored layout",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			writer, err := codec.NewRegistry().Writer(output)
			if err != nil {
				return err
			}

			repo, err := flags.openRepo()
			if err != nil {
				return err
			}
			defer repo.Close()

			layout, err := repo.GetLayout(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if layout == nil {
				return fmt.Errorf("layout %s: %w", args[0], repository.ErrLayoutNotFound)
			}
			return writer.WriteLayout(layout, cmd.OutOrStdout())
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "yaml", "Document format: json or yaml")
	return cmd
}

func layoutsDeleteCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "delete ID",
		Short: "Delete a stored layout",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			repo, err := flags.openRepo()
			if err != nil {
				return err
			}
			defer repo.Close()

			err = repo.DeleteLayout(cmd.Context(), args[0])
			if errors.Is(err, repository.ErrLayoutNotFound) {
				return fmt.Errorf("layout %s: %w", args[0], err)
			}
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s deleted %s\n", statusIcon(true), args[0])
			return nil
		},
	}
}
