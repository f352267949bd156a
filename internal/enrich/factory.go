package enrich

import (
	"fmt"

	"github.com/kiranshivaraju/hirebridge/internal/config"
	"github.com/kiranshivaraju/hirebridge/internal/enrich/canned"
	"github.com/kiranshivaraju/hirebridge/internal/enrich/remote"
	"github.com/kiranshivaraju/hirebridge/internal/enrich/rules"
	"github.com/kiranshivaraju/hirebridge/pkg/models"
)

// NewStrategy constructs the enrichment strategy selected by config.
// Called once at server startup.
func NewStrategy(cfg config.EnrichmentConfig) (models.EnrichmentStrategy, error) {
	switch cfg.Strategy {
	case "canned":
		s, err := canned.NewStrategy(cfg.Canned)
		if err != nil {
			return nil, err
		}
		return s, nil
	case "rules":
		return rules.NewStrategy(), nil
	case "remote":
		return remote.NewStrategy(cfg.Remote, cfg.Timeout), nil
	default:
		return nil, fmt.Errorf("unknown enrichment strategy %q: must be one of canned, rules, remote", cfg.Strategy)
	}
}
