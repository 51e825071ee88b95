// Package ingest bulk-loads play-by-play CSV exports into the event store.
package ingest

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"

	"github.com/okian/pxpstats/internal/adapters/repository"
	"github.com/okian/pxpstats/internal/domain/model"
	"github.com/okian/pxpstats/pkg/logger"
	"github.com/okian/pxpstats/pkg/metrics"
)

// DefaultBatchSize is the number of rows per insert batch.
const DefaultBatchSize = 1000

// Store opens the write transaction a load runs in.
type Store interface {
	BeginWrite(ctx context.Context) (*repository.Writer, error)
}

// Result summarises a committed load.
type Result struct {
	LoadID   string
	Rows     int64
	Batches  int
	Duration time.Duration
}

// Loader reads a CSV export and inserts it in one transaction.
type Loader struct {
	store     Store
	batchSize int
	truncate  bool
	logger    logger.Logger
}

// Option applies a configuration option to the Loader.
type Option func(*Loader)

// WithBatchSize sets the rows per insert batch.
func WithBatchSize(n int) Option {
	return func(l *Loader) {
		if n > 0 {
			l.batchSize = n
		}
	}
}

// WithTruncate empties the table inside the load transaction first.
func WithTruncate(truncate bool) Option {
	return func(l *Loader) {
		l.truncate = truncate
	}
}

// WithLogger sets the logger used for progress records.
func WithLogger(lg logger.Logger) Option {
	return func(l *Loader) {
		if lg != nil {
			l.logger = lg
		}
	}
}

// NewLoader creates a Loader writing to store.
func NewLoader(store Store, opts ...Option) *Loader {
	l := &Loader{
		store:     store,
		batchSize: DefaultBatchSize,
		logger:    logger.Nop(),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Load parses every row of r and commits them together. Any malformed row
// aborts the load and nothing is written.
func (l *Loader) Load(ctx context.Context, r io.Reader) (res Result, err error) {
	start := time.Now()
	res.LoadID = uuid.NewString()
	log := l.logger
	defer func() {
		if err != nil {
			metrics.RecordIngestError()
			log.Error(ctx, "load aborted", logger.String("loadID", res.LoadID), logger.Error(err))
		}
	}()

	cr := csv.NewReader(r)
	cr.ReuseRecord = true
	names, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return res, ErrEmptyInput
	}
	if err != nil {
		return res, fmt.Errorf("read header: %w", err)
	}
	h, err := newHeader(names)
	if err != nil {
		return res, err
	}

	w, err := l.store.BeginWrite(ctx)
	if err != nil {
		return res, err
	}
	defer func() { _ = w.Rollback() }()

	if l.truncate {
		if err := w.Truncate(ctx); err != nil {
			return res, err
		}
		log.Info(ctx, "table truncated", logger.String("loadID", res.LoadID))
	}

	batch := make([]model.Event, 0, l.batchSize)
	flush := func() error {
		if len(batch) == 0 {
			return nil
		}
		if err := w.Insert(ctx, batch); err != nil {
			return err
		}
		res.Batches++
		metrics.RecordIngestBatch(len(batch))
		log.Info(ctx, "inserted rows",
			logger.String("loadID", res.LoadID),
			logger.Int64("rows", w.Rows()))
		batch = batch[:0]
		return nil
	}

	for {
		vals, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			// *csv.ParseError carries its own line.
			return res, fmt.Errorf("read csv: %w", err)
		}
		// Quoted fields may span lines, so the record's first line is
		// taken from the reader rather than counted.
		line, _ := cr.FieldPos(0)
		rec := record{h: h, vals: vals, line: line}
		e, err := rec.event()
		if err != nil {
			return res, err
		}
		batch = append(batch, e)
		if len(batch) == l.batchSize {
			if err := flush(); err != nil {
				return res, err
			}
		}
	}
	if err := flush(); err != nil {
		return res, err
	}
	if err := w.Commit(); err != nil {
		return res, err
	}

	res.Rows = w.Rows()
	res.Duration = time.Since(start)
	log.Info(ctx, "load committed",
		logger.String("loadID", res.LoadID),
		logger.Int64("rows", res.Rows),
		logger.Int("batches", res.Batches),
		logger.Duration("duration", res.Duration))
	return res, nil
}
