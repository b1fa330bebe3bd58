package output

import (
	"io"

	"github.com/vburojevic/axiom-pipe/internal/domain"
)

// Emitter wraps NDJSONWriter for the forwarder's stdout. Notices are plain
// text lines; failures are an ErrorRecord plus the original line. It is
// driven from a single goroutine and does no locking.
type Emitter struct {
	w     *NDJSONWriter
	quiet bool
}

func NewEmitter(w io.Writer, quiet bool) *Emitter {
	return &Emitter{w: NewNDJSONWriter(w), quiet: quiet}
}

// Failure writes rec followed by its original line.
func (e *Emitter) Failure(rec *domain.ErrorRecord) error {
	return e.w.WriteFailure(rec)
}

// Notice writes an informational line unless the emitter is quiet.
func (e *Emitter) Notice(msg string) error {
	if e.quiet {
		return nil
	}
	return e.w.WriteLine(msg)
}
