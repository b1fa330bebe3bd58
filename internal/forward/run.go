package forward

import (
	"context"
	"errors"
	"fmt"
	"io"

	"go.uber.org/zap"

	"github.com/vburojevic/axiom-pipe/internal/domain"
)

// State is the lifecycle stage of a forwarding run
type State int

const (
	StateStarting State = iota
	StateRunning
	StateDraining
	StateExited
)

func (s State) String() string {
	switch s {
	case StateStarting:
		return "starting"
	case StateRunning:
		return "running"
	case StateDraining:
		return "draining"
	case StateExited:
		return "exited"
	default:
		return "unknown"
	}
}

// Notices written around a run
const (
	StartupNotice  = "Sending logs to Axiom dataset %q"
	ShutdownNotice = "Input closed, exiting"
)

// State reports where the forwarder is in its lifecycle
func (f *Forwarder) State() State {
	return f.state
}

func (f *Forwarder) transition(to State) {
	f.logger.Debug("state change", zap.Stringer("from", f.state), zap.Stringer("to", to))
	f.state = to
}

// Run forwards every line of r until end of input. Lines are processed
// strictly one after another. Per-line failures never stop the run; only
// a read error or an output write error does.
func (f *Forwarder) Run(ctx context.Context, r io.Reader) (domain.RunStats, error) {
	var stats domain.RunStats
	start := f.clock.Now()

	f.transition(StateRunning)
	if err := f.emitter.Notice(fmt.Sprintf(StartupNotice, f.dataset)); err != nil {
		f.transition(StateExited)
		return stats, fmt.Errorf("write output: %w", err)
	}

	lines := NewLineReader(r)
	for {
		line, err := lines.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if errors.Is(err, ErrInvalidLine) {
			stats.Record(domain.OutcomeSkipped)
			f.logger.Debug("skipping unreadable line", zap.Int("after_line", stats.Lines))
			continue
		}
		if err != nil {
			stats.Elapsed = f.clock.Since(start)
			f.transition(StateExited)
			return stats, fmt.Errorf("read input: %w", err)
		}

		outcome, err := f.ProcessLine(ctx, line)
		stats.Record(outcome)
		if err != nil {
			stats.Elapsed = f.clock.Since(start)
			f.transition(StateExited)
			return stats, fmt.Errorf("write output: %w", err)
		}
	}

	f.transition(StateDraining)
	err := f.emitter.Notice(ShutdownNotice)
	stats.Elapsed = f.clock.Since(start)
	f.transition(StateExited)

	f.logger.Info("forwarding finished",
		zap.String("dataset", f.dataset),
		zap.Int("lines", stats.Lines),
		zap.Int("ingested", stats.Ingested),
		zap.Int("parse_failures", stats.ParseFailures),
		zap.Int("submit_failures", stats.SubmitFailures),
		zap.Int("skipped", stats.Skipped),
		zap.Duration("elapsed", stats.Elapsed),
	)
	if err != nil {
		return stats, fmt.Errorf("write output: %w", err)
	}
	return stats, nil
}
