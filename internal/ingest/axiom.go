package ingest

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/axiomhq/axiom-go/axiom"
)

// AxiomOptions configures the Axiom ingester
type AxiomOptions struct {
	Token          string
	OrganizationID string
	URL            string       // API base URL; empty uses the Axiom cloud default
	Encoding       Encoding     // payload compression
	HTTPClient     *http.Client // optional, mostly for tests
}

// Axiom ingests events through the Axiom Go SDK. One client is created at
// startup and reused for every line.
type Axiom struct {
	client  *axiom.Client
	encoder *payloadEncoder
}

// NewAxiom creates the Axiom client. Environment variables are not consulted;
// everything comes from opts. The SDK's own retries are disabled so a
// failed submission is reported exactly once.
func NewAxiom(opts AxiomOptions) (*Axiom, error) {
	if opts.Token == "" {
		return nil, errors.New("missing token")
	}

	clientOpts := []axiom.Option{
		axiom.SetNoEnv(),
		axiom.SetNoRetry(),
		axiom.SetToken(opts.Token),
	}
	if opts.OrganizationID != "" {
		clientOpts = append(clientOpts, axiom.SetOrganizationID(opts.OrganizationID))
	}
	if opts.URL != "" {
		clientOpts = append(clientOpts, axiom.SetURL(opts.URL))
	}
	if opts.HTTPClient != nil {
		clientOpts = append(clientOpts, axiom.SetClient(opts.HTTPClient))
	}

	client, err := axiom.NewClient(clientOpts...)
	if err != nil {
		return nil, fmt.Errorf("create axiom client: %w", err)
	}

	encoder, err := newPayloadEncoder(opts.Encoding)
	if err != nil {
		return nil, err
	}

	return &Axiom{client: client, encoder: encoder}, nil
}

// Ingest sends events as one JSON array request to dataset.
func (a *Axiom) Ingest(ctx context.Context, dataset string, events []json.RawMessage) error {
	body, err := a.encoder.encode(marshalEvents(events))
	if err != nil {
		return fmt.Errorf("encode payload: %w", err)
	}

	status, err := a.client.Ingest(ctx, dataset, bytes.NewReader(body), axiom.JSON, a.encoder.enc.contentEncoding())
	if err != nil {
		return classifyAxiomError(err)
	}

	// The service may accept the request yet reject individual events.
	if status != nil && status.Failed > 0 {
		svc := &ServiceError{}
		for _, f := range status.Failures {
			if f != nil && f.Error != "" {
				svc.Message = f.Error
				break
			}
		}
		return svc
	}
	return nil
}

// Close releases encoder resources
func (a *Axiom) Close() error {
	return a.encoder.close()
}

// classifyAxiomError maps SDK errors onto the ingest failure taxonomy.
// API errors become ServiceError; transport and other errors stay opaque.
func classifyAxiomError(err error) error {
	var httpErr axiom.HTTPError
	if errors.As(err, &httpErr) {
		return &ServiceError{
			Status:  httpErr.Status,
			Message: httpErr.Message,
			Err:     err,
		}
	}
	return fmt.Errorf("ingest request: %w", err)
}
