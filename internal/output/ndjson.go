package output

import (
	"encoding/json"
	"io"

	"github.com/vburojevic/axiom-pipe/internal/domain"
)

// NDJSONWriter writes one JSON document or one raw line per output line
type NDJSONWriter struct {
	w       io.Writer
	encoder *json.Encoder
}

// NewNDJSONWriter creates a new NDJSON writer
func NewNDJSONWriter(w io.Writer) *NDJSONWriter {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false) // keep logs unescaped and avoid extra allocations
	return &NDJSONWriter{
		w:       w,
		encoder: enc,
	}
}

// WriteErrorRecord outputs a forwarding failure record
func (w *NDJSONWriter) WriteErrorRecord(rec *domain.ErrorRecord) error {
	return w.encoder.Encode(rec)
}

// WriteLine outputs line verbatim followed by a newline
func (w *NDJSONWriter) WriteLine(line string) error {
	_, err := io.WriteString(w.w, line+"\n")
	return err
}

// WriteFailure outputs rec followed by the original line
func (w *NDJSONWriter) WriteFailure(rec *domain.ErrorRecord) error {
	if err := w.WriteErrorRecord(rec); err != nil {
		return err
	}
	return w.WriteLine(rec.Log)
}

// WriteError outputs an error
func (w *NDJSONWriter) WriteError(code, message string, hint ...string) error {
	err := domain.NewErrorOutput(code, message)
	if len(hint) > 0 {
		err.Hint = hint[0]
	}
	err.SchemaVersion = SchemaVersion
	return w.encoder.Encode(err)
}

// WriteSummary outputs the counters of a finished run
func (w *NDJSONWriter) WriteSummary(dataset string, stats domain.RunStats) error {
	return w.encoder.Encode(&domain.RunSummary{
		Type:          "summary",
		SchemaVersion: SchemaVersion,
		Dataset:       dataset,
		RunStats:      stats,
	})
}

// WriteRaw outputs raw JSON data
func (w *NDJSONWriter) WriteRaw(v interface{}) error {
	return w.encoder.Encode(v)
}
