// Package ingest is the boundary to the remote telemetry ingestion service.
package ingest

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
)

// UnknownCause is reported when a failure carries no service message
const UnknownCause = "Unknown error occurred"

// Ingester submits events to a dataset. Events are complete JSON values;
// implementations send them unchanged.
type Ingester interface {
	Ingest(ctx context.Context, dataset string, events []json.RawMessage) error
}

// IngesterFunc adapts a function to Ingester
type IngesterFunc func(ctx context.Context, dataset string, events []json.RawMessage) error

func (f IngesterFunc) Ingest(ctx context.Context, dataset string, events []json.RawMessage) error {
	return f(ctx, dataset, events)
}

// ServiceError is a failure reported by the ingestion service itself.
// Message is empty when the service gave no reason.
type ServiceError struct {
	Status  int
	Message string
	Err     error
}

func (e *ServiceError) Error() string {
	if e == nil {
		return ""
	}
	switch {
	case e.Message != "" && e.Status != 0:
		return fmt.Sprintf("ingest service error %d: %s", e.Status, e.Message)
	case e.Message != "":
		return "ingest service error: " + e.Message
	case e.Status != 0:
		return fmt.Sprintf("ingest service error %d", e.Status)
	default:
		return "ingest service error"
	}
}

func (e *ServiceError) Unwrap() error { return e.Err }

// Cause extracts the operator-facing reason for a failed submission: the
// service message when there is one, UnknownCause for everything else.
func Cause(err error) string {
	var svc *ServiceError
	switch {
	case errors.As(err, &svc) && svc.Message != "":
		return svc.Message
	default:
		return UnknownCause
	}
}
