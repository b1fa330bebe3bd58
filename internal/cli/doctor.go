package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/olekukonko/tablewriter"

	"github.com/vburojevic/axiom-pipe/internal/config"
	"github.com/vburojevic/axiom-pipe/internal/ingest"
	"github.com/vburojevic/axiom-pipe/internal/output"
)

// DoctorCmd checks configuration and environment
type DoctorCmd struct{}

// checkResult represents a single diagnostic check
type checkResult struct {
	Name    string `json:"name"`
	Status  string `json:"status"` // "ok", "warning", "error"
	Message string `json:"message,omitempty"`
	Details string `json:"details,omitempty"`
}

// doctorReport is the complete diagnostic report
type doctorReport struct {
	Type          string        `json:"type"`
	SchemaVersion int           `json:"schemaVersion"`
	Timestamp     string        `json:"timestamp"`
	RunID         string        `json:"run_id,omitempty"`
	Checks        []checkResult `json:"checks"`
	AllPassed     bool          `json:"all_passed"`
	ErrorCount    int           `json:"error_count"`
	WarnCount     int           `json:"warn_count"`
}

// Run executes the doctor command
func (c *DoctorCmd) Run(globals *Globals) error {
	cfg := globals.config()

	checks := []checkResult{
		c.checkConfigFile(globals),
		c.checkToken(cfg),
		c.checkDataset(cfg),
		c.checkCompression(cfg),
		c.checkClient(cfg),
		c.checkStdin(globals),
	}

	errorCount := 0
	warnCount := 0
	for _, check := range checks {
		if check.Status == "error" {
			errorCount++
		} else if check.Status == "warning" {
			warnCount++
		}
	}

	report := doctorReport{
		Type:          "doctor",
		SchemaVersion: output.SchemaVersion,
		Timestamp:     globals.clock().Now().Format(time.RFC3339),
		RunID:         globals.RunID,
		Checks:        checks,
		AllPassed:     errorCount == 0,
		ErrorCount:    errorCount,
		WarnCount:     warnCount,
	}

	if globals.Format == "ndjson" {
		return output.NewNDJSONWriter(globals.Stdout).WriteRaw(report)
	}

	fmt.Fprintln(globals.Stdout, "axiom-pipe doctor")
	table := tablewriter.NewWriter(globals.Stdout)
	table.Header("", "Check", "Result", "Details")
	for _, check := range checks {
		var icon string
		switch check.Status {
		case "ok":
			icon = "✓"
		case "warning":
			icon = "⚠"
		case "error":
			icon = "✗"
		}
		if err := table.Append([]string{icon, check.Name, check.Message, check.Details}); err != nil {
			return err
		}
	}
	if err := table.Render(); err != nil {
		return err
	}

	if errorCount == 0 && warnCount == 0 {
		fmt.Fprintln(globals.Stdout, "All checks passed!")
	} else {
		fmt.Fprintf(globals.Stdout, "Errors: %d, Warnings: %d\n", errorCount, warnCount)
	}
	return nil
}

func (c *DoctorCmd) checkConfigFile(globals *Globals) checkResult {
	configPath := globals.ConfigFile
	if configPath == "" {
		configPath = config.ConfigFile()
	}
	if configPath == "" {
		return checkResult{
			Name:    "Config file",
			Status:  "ok",
			Message: "Using environment only (no config file)",
			Details: "Create with: axiom-pipe config generate > ~/.axiom-pipe.yaml",
		}
	}

	if _, err := config.LoadFromFile(configPath); err != nil {
		return checkResult{
			Name:    "Config file",
			Status:  "error",
			Message: "Config file has errors",
			Details: err.Error(),
		}
	}

	absPath, _ := filepath.Abs(configPath)
	return checkResult{
		Name:    "Config file",
		Status:  "ok",
		Message: fmt.Sprintf("Loaded from: %s", absPath),
	}
}

func (c *DoctorCmd) checkToken(cfg *config.Config) checkResult {
	token := strings.TrimSpace(cfg.Token)
	switch {
	case token == "":
		return checkResult{
			Name:    "Token",
			Status:  "error",
			Message: (&config.MissingEnvError{Name: config.EnvToken}).Error(),
			Details: hintForConfig(&config.MissingEnvError{Name: config.EnvToken}),
		}
	case strings.HasPrefix(token, "xapt-") && cfg.OrgID == "":
		return checkResult{
			Name:    "Token",
			Status:  "error",
			Message: "Personal token without organization",
			Details: "Export AXIOM_ORG_ID or use an API token (xaat-...)",
		}
	case strings.HasPrefix(token, "xaat-"), strings.HasPrefix(token, "xapt-"):
		return checkResult{Name: "Token", Status: "ok", Message: config.RedactToken(token)}
	default:
		return checkResult{
			Name:    "Token",
			Status:  "warning",
			Message: config.RedactToken(token),
			Details: "Token does not look like an Axiom API (xaat-) or personal (xapt-) token",
		}
	}
}

func (c *DoctorCmd) checkDataset(cfg *config.Config) checkResult {
	if strings.TrimSpace(cfg.Dataset) == "" {
		return checkResult{
			Name:    "Dataset",
			Status:  "error",
			Message: (&config.MissingEnvError{Name: config.EnvDataset}).Error(),
			Details: hintForConfig(&config.MissingEnvError{Name: config.EnvDataset}),
		}
	}
	return checkResult{Name: "Dataset", Status: "ok", Message: cfg.Dataset}
}

func (c *DoctorCmd) checkCompression(cfg *config.Config) checkResult {
	enc, err := ingest.ParseEncoding(cfg.Compression)
	if err != nil {
		return checkResult{Name: "Compression", Status: "error", Message: err.Error()}
	}
	return checkResult{Name: "Compression", Status: "ok", Message: string(enc)}
}

// checkClient constructs the ingest client without sending anything
func (c *DoctorCmd) checkClient(cfg *config.Config) checkResult {
	if strings.TrimSpace(cfg.Token) == "" {
		return checkResult{Name: "Client", Status: "warning", Message: "Skipped (no token)"}
	}
	enc, err := ingest.ParseEncoding(cfg.Compression)
	if err != nil {
		enc = ingest.EncodingIdentity
	}
	client, err := ingest.NewAxiom(ingest.AxiomOptions{
		Token:          cfg.Token,
		OrganizationID: cfg.OrgID,
		URL:            cfg.URL,
		Encoding:       enc,
	})
	if err != nil {
		return checkResult{
			Name:    "Client",
			Status:  "error",
			Message: "Failed to get axiom client",
			Details: err.Error(),
		}
	}
	_ = client.Close()

	target := cfg.URL
	if target == "" {
		target = "Axiom cloud"
	}
	return checkResult{Name: "Client", Status: "ok", Message: "Client created", Details: target}
}

func (c *DoctorCmd) checkStdin(globals *Globals) checkResult {
	f, ok := globals.Stdin.(*os.File)
	if ok && (isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())) {
		return checkResult{
			Name:    "Stdin",
			Status:  "ok",
			Message: "Terminal",
			Details: "Pipe logs in when forwarding: app | axiom-pipe",
		}
	}
	return checkResult{Name: "Stdin", Status: "ok", Message: "Pipe or file"}
}
