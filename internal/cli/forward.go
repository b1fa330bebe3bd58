package cli

import (
	"context"
	"os"

	"github.com/mattn/go-isatty"
	"go.uber.org/zap"

	"github.com/vburojevic/axiom-pipe/internal/forward"
	"github.com/vburojevic/axiom-pipe/internal/ingest"
	"github.com/vburojevic/axiom-pipe/internal/output"
)

// ForwardCmd reads JSON lines from stdin and ingests them into Axiom
type ForwardCmd struct {
	Dataset     string `short:"d" placeholder:"NAME" help:"Target dataset (overrides AXIOM_DATASET)"`
	URL         string `placeholder:"URL" help:"Axiom API URL (overrides AXIOM_URL)"`
	Compression string `default:"${config_compression}" help:"Request body compression: identity, gzip or zstd"`
	Summary     bool   `help:"Write an NDJSON run summary to stderr on exit"`
}

// Run executes the forward command. Configuration and client errors are
// fatal before any input is read.
func (c *ForwardCmd) Run(globals *Globals) error {
	cfg := *globals.config()
	if c.Dataset != "" {
		cfg.Dataset = c.Dataset
	}
	if c.URL != "" {
		cfg.URL = c.URL
	}
	if c.Compression != "" {
		cfg.Compression = c.Compression
	}

	if err := cfg.Validate(); err != nil {
		return fatalError(globals, "CONFIG_ERROR", err.Error(), hintForConfig(err))
	}
	enc, err := ingest.ParseEncoding(cfg.Compression)
	if err != nil {
		return fatalError(globals, "CONFIG_ERROR", err.Error(), hintForConfig(err))
	}

	client, err := ingest.NewAxiom(ingest.AxiomOptions{
		Token:          cfg.Token,
		OrganizationID: cfg.OrgID,
		URL:            cfg.URL,
		Encoding:       enc,
	})
	if err != nil {
		return fatalError(globals, "CLIENT_ERROR", "Failed to get axiom client: "+err.Error(), hintForClient(err, cfg.Token))
	}
	defer func() {
		if err := client.Close(); err != nil {
			globals.logger().Debug("closing ingest client", zap.Error(err))
		}
	}()

	logger := globals.logger().With(zap.String("dataset", cfg.Dataset))
	if f, ok := globals.Stdin.(*os.File); ok && (isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())) {
		logger.Warn("stdin is a terminal; pipe logs into axiom-pipe, e.g. `app | axiom-pipe`")
	}

	fw := forward.New(cfg.Dataset, client, globals.Stdout,
		forward.WithLogger(logger),
		forward.WithQuiet(globals.Quiet),
	)
	stats, err := fw.Run(context.Background(), globals.Stdin)

	if c.Summary {
		if werr := output.NewNDJSONWriter(globals.Stderr).WriteSummary(cfg.Dataset, stats); werr != nil {
			logger.Debug("writing summary", zap.Error(werr))
		}
	}
	if err != nil {
		return fatalError(globals, "RUN_ERROR", err.Error(), "")
	}
	return nil
}
