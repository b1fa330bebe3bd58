package cli

import (
	"errors"
	"strings"

	"github.com/vburojevic/axiom-pipe/internal/config"
)

func hintForConfig(err error) string {
	if err == nil {
		return ""
	}

	var missing *config.MissingEnvError
	if errors.As(err, &missing) {
		switch missing.Name {
		case config.EnvToken:
			return "Export AXIOM_TOKEN with an API token (xaat-...), or set `token` in ~/.axiom-pipe.yaml; run `axiom-pipe doctor`"
		case config.EnvDataset:
			return "Export AXIOM_DATASET, pass --dataset, or set `dataset` in ~/.axiom-pipe.yaml"
		}
	}

	if strings.Contains(err.Error(), "unknown compression") {
		return "Use --compression identity, gzip or zstd"
	}
	return ""
}

func hintForClient(err error, token string) string {
	if err == nil {
		return ""
	}
	msg := strings.ToLower(err.Error())
	if strings.HasPrefix(token, "xapt-") && strings.Contains(msg, "organization") {
		return "Personal tokens need an organization; export AXIOM_ORG_ID or use an API token"
	}
	if strings.Contains(msg, "url") {
		return "Check AXIOM_URL / --url; it must be an absolute http(s) URL"
	}
	return "Run `axiom-pipe doctor` for diagnostics"
}
