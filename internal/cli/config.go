package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/olekukonko/tablewriter"

	"github.com/vburojevic/axiom-pipe/internal/config"
	"github.com/vburojevic/axiom-pipe/internal/output"
)

// ConfigCmd shows or manages configuration
type ConfigCmd struct {
	Show     ConfigShowCmd     `cmd:"" default:"withargs" help:"Show current configuration"`
	Path     ConfigPathCmd     `cmd:"" help:"Show configuration file path"`
	Generate ConfigGenerateCmd `cmd:"" help:"Generate sample configuration file"`
}

// ConfigShowCmd shows current configuration
type ConfigShowCmd struct{}

// configValues returns the displayable value of every key, token redacted
func configValues(cfg *config.Config) map[string]string {
	return map[string]string{
		"token":       config.RedactToken(cfg.Token),
		"dataset":     cfg.Dataset,
		"url":         cfg.URL,
		"org_id":      cfg.OrgID,
		"compression": cfg.Compression,
		"quiet":       fmt.Sprint(cfg.Quiet),
		"verbose":     fmt.Sprint(cfg.Verbose),
	}
}

// Run executes the config show command
func (c *ConfigShowCmd) Run(globals *Globals) error {
	cfg := globals.config()
	values := configValues(cfg)
	sources := globals.ConfigSources
	if sources == nil {
		sources = config.ComputeSources(nil, nil)
	}

	if globals.Format == "ndjson" {
		out := map[string]interface{}{
			"type":          "config",
			"schemaVersion": output.SchemaVersion,
			"token":         values["token"],
			"dataset":       cfg.Dataset,
			"url":           cfg.URL,
			"org_id":        cfg.OrgID,
			"compression":   cfg.Compression,
			"quiet":         cfg.Quiet,
			"verbose":       cfg.Verbose,
			"sources":       sources,
		}
		if globals.ConfigFile != "" {
			out["config_file"] = globals.ConfigFile
		}
		return output.NewNDJSONWriter(globals.Stdout).WriteRaw(out)
	}

	fmt.Fprintln(globals.Stdout, "Current Configuration:")
	table := tablewriter.NewWriter(globals.Stdout)
	table.Header("Key", "Value", "Source")
	for _, k := range config.Keys() {
		if err := table.Append([]string{k, values[k], sources[k]}); err != nil {
			return err
		}
	}
	if err := table.Render(); err != nil {
		return err
	}

	if globals.ConfigFile != "" {
		fmt.Fprintf(globals.Stdout, "\nLoaded from: %s\n", globals.ConfigFile)
	}
	return nil
}

// ConfigPathCmd shows config file path
type ConfigPathCmd struct{}

// Run executes the config path command
func (c *ConfigPathCmd) Run(globals *Globals) error {
	path := config.ConfigFile()

	if globals.Format == "ndjson" {
		out := map[string]interface{}{
			"type":          "config_path",
			"schemaVersion": output.SchemaVersion,
			"path":          path,
		}
		return output.NewNDJSONWriter(globals.Stdout).WriteRaw(out)
	}

	if path == "" {
		fmt.Fprintln(globals.Stdout, "No configuration file found")
		fmt.Fprintln(globals.Stdout, "")
		fmt.Fprintln(globals.Stdout, "Create one at:")
		fmt.Fprintln(globals.Stdout, "  ./.axiom-pipe.yaml")
		fmt.Fprintln(globals.Stdout, "  ~/.axiom-pipe.yaml")
		fmt.Fprintln(globals.Stdout, "  ~/.config/axiom-pipe/config.yaml")
	} else {
		fmt.Fprintf(globals.Stdout, "Config file: %s\n", path)
	}

	return nil
}

// ConfigGenerateCmd generates a sample configuration file
type ConfigGenerateCmd struct {
	Output string `short:"o" help:"Write to this file instead of stdout"`
	Force  bool   `help:"Overwrite an existing file"`
}

const sampleConfig = `# axiom-pipe configuration file
# Place this file at ./.axiom-pipe.yaml, ~/.axiom-pipe.yaml,
# or ~/.config/axiom-pipe/config.yaml. Environment variables
# (AXIOM_TOKEN, AXIOM_DATASET, AXIOM_URL, AXIOM_ORG_ID) take precedence.

# API token used for ingestion. Prefer the AXIOM_TOKEN environment variable.
# token: xaat-...

# Dataset that receives the events
# dataset: my-logs

# Axiom API URL (defaults to Axiom cloud)
# url: https://api.axiom.co

# Organization ID, required for personal tokens (xapt-...)
# org_id: my-org

# Request body compression: identity, gzip or zstd
compression: identity

# Suppress the startup and shutdown notices on stdout
quiet: false

# Write debug diagnostics to stderr
verbose: false
`

// Run executes the config generate command
func (c *ConfigGenerateCmd) Run(globals *Globals) error {
	if c.Output == "" {
		_, err := fmt.Fprint(globals.Stdout, sampleConfig)
		return err
	}

	flags := os.O_WRONLY | os.O_CREATE | os.O_EXCL
	if c.Force {
		flags = os.O_WRONLY | os.O_CREATE | os.O_TRUNC
	}
	f, err := os.OpenFile(c.Output, flags, 0o600)
	if err != nil {
		if errors.Is(err, fs.ErrExist) {
			return outputErrorCommon(globals, "FILE_EXISTS", fmt.Sprintf("%s already exists", c.Output), "Pass --force to overwrite it")
		}
		return outputErrorCommon(globals, "WRITE_ERROR", err.Error(), "")
	}
	if _, err := f.WriteString(sampleConfig); err != nil {
		f.Close()
		return outputErrorCommon(globals, "WRITE_ERROR", err.Error(), "")
	}
	if err := f.Close(); err != nil {
		return outputErrorCommon(globals, "WRITE_ERROR", err.Error(), "")
	}

	if globals.Format == "ndjson" {
		return output.NewNDJSONWriter(globals.Stdout).WriteRaw(map[string]interface{}{
			"type":          "config_generated",
			"schemaVersion": output.SchemaVersion,
			"path":          c.Output,
		})
	}
	fmt.Fprintf(globals.Stdout, "Wrote %s\n", c.Output)
	return nil
}
