// Command pxp-load bulk-loads a play-by-play CSV export into the SQLite
// event store served by the stats API.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	goflags "github.com/jessevdk/go-flags"

	"github.com/okian/pxpstats/internal/adapters/repository"
	"github.com/okian/pxpstats/internal/ingest"
	"github.com/okian/pxpstats/pkg/logger"
)

// options are the command-line flags of pxp-load.
type options struct {
	Database  string `long:"db" env:"PXP_DATABASE_PATH" default:"pxp.db" description:"SQLite database file"`
	CSV       string `long:"csv" required:"true" description:"CSV export to load, or - for stdin"`
	BatchSize int    `long:"batch-size" default:"1000" description:"Rows per insert batch"`
	Truncate  bool   `long:"truncate" description:"Delete existing rows before loading"`
	LogLevel  string `long:"log-level" default:"info" description:"debug, info, warn or error"`
	LogFormat string `long:"log-format" default:"text" choice:"text" choice:"json" description:"Log encoding"`
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdin); err != nil {
		var flagsErr *goflags.Error
		if errors.As(err, &flagsErr) && flagsErr.Type == goflags.ErrHelp {
			return
		}
		os.Stderr.WriteString("pxp-load: " + err.Error() + "\n")
		os.Exit(1)
	}
}

// run parses args and performs one load. stdin is read when --csv is "-".
func run(ctx context.Context, args []string, stdin io.Reader) error {
	var opts options
	parser := goflags.NewParser(&opts, goflags.Default)
	parser.Name = "pxp-load"
	if _, err := parser.ParseArgs(args); err != nil {
		return err
	}

	if err := logger.Init(logger.WithFormat(opts.LogFormat), logger.WithWriter(os.Stderr)); err != nil {
		return err
	}
	if err := logger.SetLevelString(opts.LogLevel); err != nil {
		return err
	}
	log := logger.Named("pxp-load")

	in := stdin
	if opts.CSV != "-" {
		f, err := os.Open(opts.CSV)
		if err != nil {
			return fmt.Errorf("open csv: %w", err)
		}
		defer f.Close()
		in = f
	}

	store, err := repository.Open(ctx, opts.Database, repository.WithLogger(logger.Named("repository")))
	if err != nil {
		return err
	}
	defer store.Close()

	loader := ingest.NewLoader(store,
		ingest.WithBatchSize(opts.BatchSize),
		ingest.WithTruncate(opts.Truncate),
		ingest.WithLogger(log),
	)
	res, err := loader.Load(ctx, in)
	if err != nil {
		return err
	}

	log.Info(ctx, "load complete",
		logger.String("loadID", res.LoadID),
		logger.String("database", opts.Database),
		logger.Int64("rows", res.Rows),
		logger.Int("batches", res.Batches),
		logger.Duration("elapsed", res.Duration))
	return nil
}
