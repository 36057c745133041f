// Package seed loads the starter catalog shipped with the binary into an
// empty document store.
package seed

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	"github.com/iliyamo/lawshop/internal/logger"
	"github.com/iliyamo/lawshop/internal/model"
)

//go:embed catalog.json
var catalogJSON []byte

// Services is the part of the service repository seeding needs.
type Services interface {
	All(ctx context.Context) ([]model.Service, error)
	Create(ctx context.Context, s model.Service) (model.Service, error)
}

// Catalog decodes the embedded starter catalog.
func Catalog() ([]model.Service, error) {
	var items []model.Service
	if err := json.Unmarshal(catalogJSON, &items); err != nil {
		return nil, fmt.Errorf("seed: decode catalog: %w", err)
	}
	return items, nil
}

// Seed creates every starter service whose slug is not in the store yet
// and returns how many it created. Running it twice is harmless.
func Seed(ctx context.Context, svc Services) (int, error) {
	items, err := Catalog()
	if err != nil {
		return 0, err
	}
	existing, err := svc.All(ctx)
	if err != nil {
		return 0, fmt.Errorf("seed: list services: %w", err)
	}
	have := make(map[string]bool, len(existing))
	for _, s := range existing {
		have[s.Slug] = true
	}

	created := 0
	for _, s := range items {
		if have[s.Slug] {
			continue
		}
		if _, err := svc.Create(ctx, s); err != nil {
			return created, fmt.Errorf("seed: create %q: %w", s.Slug, err)
		}
		created++
	}
	logger.Info(ctx, "catalog seeded", zap.Int("created", created), zap.Int("skipped", len(items)-created))
	return created, nil
}
