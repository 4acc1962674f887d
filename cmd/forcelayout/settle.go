package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"forcegraph/internal/codec"
	"forcegraph/internal/domain"
	"forcegraph/internal/repository/sqlite"
	"forcegraph/internal/simulation"
	"forcegraph/internal/watcher"
)

type settleOptions struct {
	input   string
	format  string
	ticks   int
	output  string
	outFile string
	save    string
	watch   bool
}

func settleCmd(flags *rootFlags) *cobra.Command {
	opts := &settleOptions{}

	cmd := &cobra.Command{
		Use:   "settle",
		Short: "Pre-settle a graph and write the final frame",
		Long: "Run the layout synchronously for a tick budget (default from config, 300)\n" +
			"and write the resulting frame. --save stores the layout for later thawing.",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return runSettle(ctx, flags, opts, cmd.OutOrStdout(), cmd.ErrOrStderr())
		},
	}

	cmd.Flags().StringVarP(&opts.input, "input", "i", "", "Graph file (csv, json or yaml)")
	cmd.Flags().StringVarP(&opts.format, "format", "f", "", "Input format (default: from file extension)")
	cmd.Flags().IntVarP(&opts.ticks, "ticks", "n", -1, "Tick budget (default: batch.ticks from config)")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "json", "Frame document format: json or yaml")
	cmd.Flags().StringVar(&opts.outFile, "out", "", "Write the frame to a file instead of stdout")
	cmd.Flags().StringVar(&opts.save, "save", "", "Store the settled layout under this name")
	cmd.Flags().BoolVarP(&opts.watch, "watch", "w", false, "Re-settle whenever the input file changes")
	_ = cmd.MarkFlagRequired("input")
	return cmd
}

// settleResult is one completed batch run
type settleResult struct {
	sim     *simulation.Simulation
	ticks   int
	elapsed time.Duration
}

func runSettle(ctx context.Context, flags *rootFlags, opts *settleOptions, out, errOut io.Writer) error {
	cfg, _, err := flags.loadConfig()
	if err != nil {
		return err
	}
	layoutOpts, err := cfg.Layout.Options()
	if err != nil {
		return err
	}

	ticks := opts.ticks
	if ticks < 0 {
		ticks = cfg.Batch.Ticks
	}
	format := opts.format
	if format == "" {
		format = codec.FormatFromPath(opts.input)
	}

	codecs := codec.NewRegistry()
	writer, err := codecs.Writer(opts.output)
	if err != nil {
		return err
	}

	once := func() error {
		result, err := settleFile(ctx, codecs, opts.input, format, layoutOpts, ticks, cfg.Batch.MaxDuration.Duration())
		if err != nil {
			return err
		}

		if err := writeFrame(writer, result.sim.Snapshot(), opts.outFile, out); err != nil {
			return err
		}

		g := result.sim.Graph()
		fmt.Fprintf(errOut, "%s settled %d nodes, %d links in %d ticks (alpha %.4f, %s)\n",
			statusIcon(result.sim.Settled()), g.Len(), len(g.Links()), result.ticks,
			result.sim.Alpha(), result.elapsed.Round(time.Millisecond))

		if opts.save != "" {
			id, err := saveLayout(ctx, cfg.Database.Path, opts.save, result.sim)
			if err != nil {
				return err
			}
			fmt.Fprintf(errOut, "%s saved layout %s as %s\n", statusIcon(true), brand.Sprint(opts.save), id)
		}
		return nil
	}

	if err := once(); err != nil {
		return err
	}
	if !opts.watch {
		return nil
	}

	fmt.Fprintln(errOut, subtle.Sprint("watching "+opts.input+" (ctrl-c to stop)"))
	// watch callbacks can fire while a previous settle is still writing
	resettle := serialize(func() error {
		if err := once(); err != nil {
			fmt.Fprintf(errOut, "%s %v\n", statusIcon(false), err)
		}
		return nil
	})
	w := watcher.New(opts.input, func() { _ = resettle() })
	if err := w.Watch(ctx); err != nil && ctx.Err() == nil {
		return err
	}
	return nil
}

// serialize wraps fn so concurrent calls run one at a time
func serialize(fn func() error) func() error {
	var mu sync.Mutex
	return func() error {
		mu.Lock()
		defer mu.Unlock()
		return fn()
	}
}

// settleFile parses path and runs a fresh simulation for up to ticks ticks,
// stopping early once settled or when maxDuration elapses
func settleFile(ctx context.Context, codecs *codec.Registry, path, format string, opts simulation.Options, ticks int, maxDuration time.Duration) (*settleResult, error) {
	importer, err := codecs.Importer(format)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open input: %w", err)
	}
	defer f.Close()

	fragment, err := importer.Parse(f)
	if err != nil {
		return nil, err
	}
	g, err := domain.NewGraph(fragment)
	if err != nil {
		return nil, err
	}
	sim, err := simulation.New(g, opts)
	if err != nil {
		return nil, err
	}

	if maxDuration > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, maxDuration)
		defer cancel()
	}

	start := time.Now()
	ran, err := sim.RunFor(ctx, ticks)
	if err != nil && !errors.Is(err, context.DeadlineExceeded) {
		return nil, err
	}
	return &settleResult{sim: sim, ticks: ran, elapsed: time.Since(start)}, nil
}

func writeFrame(writer codec.DocumentWriter, frame domain.Frame, path string, stdout io.Writer) error {
	if path == "" {
		return writer.WriteFrame(frame, stdout)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create output: %w", err)
	}
	if err := writer.WriteFrame(frame, f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func saveLayout(ctx context.Context, dbPath, name string, sim *simulation.Simulation) (string, error) {
	repo, err := sqlite.New(dbPath)
	if err != nil {
		return "", err
	}
	defer repo.Close()

	layout := &domain.Layout{
		ID:        uuid.NewString(),
		Name:      name,
		Tick:      sim.Tick(),
		Positions: sim.Freeze(),
		Links:     sim.Graph().LinkSpecs(),
		CreatedAt: time.Now().UTC(),
	}
	if err := repo.SaveLayout(ctx, layout); err != nil {
		return "", err
	}
	return layout.ID, nil
}
