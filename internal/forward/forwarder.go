// Package forward turns input lines into ingested events, reporting every
// line that could not be forwarded on the output stream.
package forward

import (
	"context"
	"encoding/json"
	"io"

	"github.com/benbjohnson/clock"
	"go.uber.org/zap"

	"github.com/vburojevic/axiom-pipe/internal/domain"
	"github.com/vburojevic/axiom-pipe/internal/ingest"
	"github.com/vburojevic/axiom-pipe/internal/output"
)

// Forwarder processes one line at a time. It is not safe for concurrent use.
type Forwarder struct {
	dataset  string
	ingester ingest.Ingester
	emitter  *output.Emitter
	logger   *zap.Logger
	clock    clock.Clock
	quiet    bool
	state    State
}

// Option configures a Forwarder
type Option func(*Forwarder)

// WithLogger sets the diagnostic logger (default: no-op)
func WithLogger(l *zap.Logger) Option {
	return func(f *Forwarder) { f.logger = l }
}

// WithClock sets the clock used for timing (default: wall clock)
func WithClock(c clock.Clock) Option {
	return func(f *Forwarder) { f.clock = c }
}

// WithQuiet suppresses the startup and shutdown notices
func WithQuiet(q bool) Option {
	return func(f *Forwarder) { f.quiet = q }
}

// New creates a forwarder that ingests into dataset and writes failures to out.
func New(dataset string, ingester ingest.Ingester, out io.Writer, opts ...Option) *Forwarder {
	f := &Forwarder{
		dataset:  dataset,
		ingester: ingester,
		logger:   zap.NewNop(),
		clock:    clock.New(),
		state:    StateStarting,
	}
	for _, opt := range opts {
		opt(f)
	}
	f.emitter = output.NewEmitter(out, f.quiet)
	return f
}

// ProcessLine parses line and submits it. A line that is not JSON, or that
// the service does not accept, is written out as an ErrorRecord followed by
// the line itself. The returned error is only ever an output write failure.
func (f *Forwarder) ProcessLine(ctx context.Context, line string) (domain.Outcome, error) {
	var doc json.RawMessage
	if err := json.Unmarshal([]byte(line), &doc); err != nil {
		f.logger.Debug("line is not JSON", zap.Error(err))
		return domain.OutcomeParseFailed, f.emitter.Failure(domain.NewParseErrorRecord(line, err.Error()))
	}

	start := f.clock.Now()
	err := f.ingester.Ingest(ctx, f.dataset, []json.RawMessage{doc})
	took := f.clock.Since(start)
	if err != nil {
		cause := ingest.Cause(err)
		f.logger.Debug("ingest failed",
			zap.Error(err),
			zap.String("cause", cause),
			zap.Duration("took", took),
		)
		return domain.OutcomeSendFailed, f.emitter.Failure(domain.NewSendErrorRecord(line, cause))
	}

	f.logger.Debug("event ingested", zap.Int("bytes", len(doc)), zap.Duration("took", took))
	return domain.OutcomeIngested, nil
}
