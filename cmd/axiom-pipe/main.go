package main

import (
	"fmt"
	"os"

	"github.com/alecthomas/kong"

	"github.com/vburojevic/axiom-pipe/internal/cli"
	"github.com/vburojevic/axiom-pipe/internal/config"
)

func main() {
	// Load configuration from files/environment (plus provenance metadata).
	cfg, meta, err := config.LoadWithMeta()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to load config: %v\n", err)
		cfg, meta = config.LoadEnv()
	}

	var c cli.CLI

	// Config values become flag defaults; explicit flags still win.
	vars := kong.Vars{
		"config_compression": cfg.Compression,
	}

	ctx := kong.Parse(&c,
		kong.Name("axiom-pipe"),
		kong.Description("Forward newline-delimited JSON from stdin to an Axiom dataset.\n\nLines that are not JSON, or that Axiom rejects, are echoed to stdout after an error record.\n\nExample: my-app | AXIOM_TOKEN=xaat-... AXIOM_DATASET=logs axiom-pipe"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
			Summary: true,
		}),
		vars,
	)

	globals := cli.NewGlobalsWithConfig(&c, cfg)
	defer func() { _ = globals.Logger.Sync() }()

	// Record which flags were explicitly provided so commands can distinguish
	// CLI overrides from config defaults.
	flagsSet := map[string]bool{}
	for _, p := range ctx.Path {
		if p.Flag != nil {
			flagsSet[p.Flag.Name] = true
		}
	}
	globals.FlagsSet = flagsSet
	if meta != nil {
		globals.ConfigFile = meta.ConfigFile
	}
	globals.ConfigSources = config.ComputeSources(meta, flagsSet)

	if err := ctx.Run(globals); err != nil {
		_ = globals.Logger.Sync()
		os.Exit(1)
	}
}
