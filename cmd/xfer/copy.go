package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/ligustah/xfer/internal/config"
	"github.com/ligustah/xfer/internal/endpoint"
	xferhttp "github.com/ligustah/xfer/internal/http"
	"github.com/ligustah/xfer/internal/progress"
	"github.com/ligustah/xfer/pkg/transfer"
)

func runCopy(args []string) int {
	fs := flag.NewFlagSet("copy", flag.ExitOnError)

	from := fs.String("from", "", "Source endpoint (required)")
	to := fs.String("to", "", "Sink endpoint (required)")
	size := fs.String("size", "", "Expected total size (e.g. 2.5GiB), overrides auto-detection")
	units := fs.String("units", "", "Unit style for progress output: decimal or binary")
	buffer := fs.String("buffer", "", "Copy buffer size (e.g. 64KiB)")
	interval := fs.Duration("interval", 0, "Progress update interval")
	quiet := fs.Bool("quiet", false, "Suppress progress output")
	bar := fs.Bool("bar", false, "Render a progress bar instead of progress lines")
	configPath := fs.String("config", "", "Path to YAML configuration file")

	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, `Usage: xfer copy [options]

Copy data from a source endpoint to a sink endpoint while reporting
progress. When the source size is known (regular file, HTTP with a
Content-Length, object storage) the progress includes percent complete
and an ETA.

Options:`)
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return ExitInvalidArgs
	}

	cfg := config.Default()
	if *configPath != "" {
		fileCfg, err := config.LoadFromFile(*configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return ExitConfigError
		}
		cfg = fileCfg
	}
	if err := cfg.LoadFromEnv(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return ExitConfigError
	}

	// Flags override file and environment.
	override := config.Config{From: *from, To: *to, Units: *units, Bar: *bar, UpdateInterval: *interval}
	if *buffer != "" {
		n, err := transfer.ParseBytes(*buffer)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: parse -buffer: %v\n", err)
			return ExitInvalidArgs
		}
		override.BufferSize = n
	}
	if *size != "" {
		n, err := transfer.ParseBytes(*size)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: parse -size: %v\n", err)
			return ExitInvalidArgs
		}
		override.ExpectedSize = n
	}
	cfg = cfg.Merge(override)
	if *quiet {
		cfg.Progress = false
	}

	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		fs.Usage()
		return ExitInvalidArgs
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// The copy itself cannot be cancelled once started; cancelling the
	// context fails the source's reads, which ends the transfer.
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)
	go func() {
		<-sigCh
		fmt.Fprintln(os.Stderr, "\n[xfer] Received interrupt, aborting...")
		cancel()
	}()

	return copyEndpoints(ctx, cfg)
}

func copyEndpoints(ctx context.Context, cfg config.Config) int {
	style, err := cfg.UnitStyle()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return ExitInvalidArgs
	}

	client := xferhttp.NewClient(xferhttp.Options{
		MaxIdleConnsPerHost: 8,
		HeaderTimeout:       cfg.HTTP.HeaderTimeout,
		RetryAttempts:       cfg.HTTP.RetryAttempts,
		RetryBackoff:        cfg.HTTP.RetryBackoff,
		RetryMaxBackoff:     cfg.HTTP.RetryMaxBackoff,
	})

	src, err := endpoint.OpenSource(ctx, cfg.From, client)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return ExitSourceError
	}
	defer src.Close()

	sink, err := endpoint.OpenSink(ctx, cfg.To)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return ExitSinkError
	}

	total := src.Size
	if cfg.ExpectedSize > 0 {
		total = cfg.ExpectedSize
	}

	opts := []transfer.Option{transfer.WithBufferSize(int(cfg.BufferSize))}
	if total > 0 {
		opts = append(opts, transfer.WithExpectedSize(total))
	}

	t := transfer.New(src.Reader, sink.Writer, opts...)

	var stopProgress func()
	switch {
	case !cfg.Progress:
		stopProgress = func() {}
	case cfg.Bar:
		b := progress.NewBar(t, total, cfg.From, os.Stderr)
		b.Start()
		stopProgress = b.Stop
	default:
		r := progress.NewReporter(t, progress.Options{
			UpdateInterval: cfg.UpdateInterval,
			Units:          style,
			Label:          fmt.Sprintf("%s -> %s", src.Name, sink.Name),
		})
		r.Start()
		stopProgress = r.Stop
	}

	_, _, err = t.Finish()
	stopProgress()
	if err != nil {
		sink.Close()
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return ExitTransferFailed
	}

	// Blob sinks commit on Close; a failed commit is a failed copy.
	if err := sink.Close(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: finalize sink: %v\n", err)
		return ExitSinkError
	}

	return ExitSuccess
}
