package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/benbjohnson/clock"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/vburojevic/axiom-pipe/internal/config"
	"github.com/vburojevic/axiom-pipe/internal/logging"
)

// CLI is the root command structure for axiom-pipe
type CLI struct {
	// Global flags
	Format  string `short:"f" default:"text" enum:"ndjson,text" help:"Output format for config, doctor and version"`
	Quiet   bool   `short:"q" help:"Suppress the startup and shutdown notices"`
	Verbose bool   `short:"v" help:"Write debug diagnostics to stderr"`

	// Commands
	Forward ForwardCmd `cmd:"" default:"withargs" help:"Forward JSON lines from stdin to an Axiom dataset (default)"`
	Config  ConfigCmd  `cmd:"" help:"Show or manage configuration"`
	Doctor  DoctorCmd  `cmd:"" help:"Check configuration and environment"`
	Version VersionCmd `cmd:"" help:"Show version information"`
}

// Globals holds shared state for all commands
type Globals struct {
	Format  string
	Quiet   bool
	Verbose bool
	Stdin   io.Reader
	Stdout  io.Writer
	Stderr  io.Writer
	Config  *config.Config
	Logger  *zap.Logger
	RunID   string
	Clock   clock.Clock

	ConfigFile    string
	ConfigSources map[string]string
	FlagsSet      map[string]bool
}

// NewGlobals creates a new Globals instance from CLI flags
func NewGlobals(cli *CLI) *Globals {
	return NewGlobalsWithConfig(cli, config.Default())
}

// NewGlobalsWithConfig creates a new Globals instance with config fallbacks
func NewGlobalsWithConfig(cli *CLI, cfg *config.Config) *Globals {
	if cfg == nil {
		cfg = config.Default()
	}
	g := &Globals{
		Format:  cli.Format,
		Quiet:   cli.Quiet,
		Verbose: cli.Verbose,
		Stdin:   os.Stdin,
		Stdout:  os.Stdout,
		Stderr:  os.Stderr,
		Config:  cfg,
		RunID:   uuid.NewString(),
		Clock:   clock.New(),
	}

	// Apply config values if CLI flags weren't explicitly set
	if !cli.Quiet && cfg.Quiet {
		g.Quiet = true
	}
	if !cli.Verbose && cfg.Verbose {
		g.Verbose = true
	}

	g.Logger = logging.New(g.Stderr, g.Verbose).With(zap.String("run_id", g.RunID))
	return g
}

// logger returns the configured logger, or a no-op one for hand-built Globals
func (g *Globals) logger() *zap.Logger {
	if g.Logger == nil {
		return zap.NewNop()
	}
	return g.Logger
}

// clock returns the configured clock, or the wall clock for hand-built Globals
func (g *Globals) clock() clock.Clock {
	if g.Clock == nil {
		return clock.New()
	}
	return g.Clock
}

// config returns the loaded config, or defaults for hand-built Globals
func (g *Globals) config() *config.Config {
	if g.Config == nil {
		return config.Default()
	}
	return g.Config
}

// VersionCmd shows version information
type VersionCmd struct{}

// Run executes the version command
func (v *VersionCmd) Run(globals *Globals) error {
	if globals.Format == "ndjson" {
		_, err := io.WriteString(globals.Stdout, `{"type":"version","version":"`+Version+`","commit":"`+Commit+`"}`+"\n")
		return err
	}
	_, err := fmt.Fprintf(globals.Stdout, "axiom-pipe version %s (%s)\n", Version, Commit)
	return err
}

// Version information (set at build time)
var (
	Version = "dev"
	Commit  = "none"
)
