package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"forcegraph/internal/codec"
)

func convertCmd(_ *rootFlags) *cobra.Command {
	var input, from, to string

	cmd := &cobra.Command{
		Use:   "convert",
		Short: "Convert a graph file between csv, json and yaml",
		RunE: func(cmd *cobra.Command, args []string) error {
			codecs := codec.NewRegistry()
			if from == "" {
				from = codec.FormatFromPath(input)
			}

			importer, err := codecs.Importer(from)
			if err != nil {
				return err
			}
			exporter, err := codecs.Exporter(to)
			if err != nil {
				return err
			}

			f, err := os.Open(input)
			if err != nil {
				return fmt.Errorf("open input: %w", err)
			}
			defer f.Close()

			fragment, err := importer.Parse(f)
			if err != nil {
				return err
			}
			return exporter.Export(fragment, cmd.OutOrStdout())
		},
	}

	cmd.Flags().StringVarP(&input, "input", "i", "", "Graph file")
	cmd.Flags().StringVar(&from, "from", "", "Input format (default: from file extension)")
	cmd.Flags().StringVar(&to, "to", "json", "Output format: csv, json or yaml")
	_ = cmd.MarkFlagRequired("input")
	return cmd
}
