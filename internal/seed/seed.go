// ABOUTME: Loads generated records into the store.
// ABOUTME: Seeds one resource or the whole catalog.

package seed

import (
	"context"
	"fmt"

	"github.com/2389/realty/internal/logger"
	"github.com/2389/realty/internal/resource"
	"github.com/2389/realty/internal/store"
)

// Creator stores new records. *store.Store satisfies it.
type Creator interface {
	CreateRecord(ctx context.Context, resource string, data map[string]any) (*store.Record, error)
}

// Seed creates count records for each slug, or for every registered resource
// when slugs is empty. It returns how many records each resource received.
func Seed(ctx context.Context, c Creator, g *Generator, slugs []string, count int) (map[string]int, error) {
	if len(slugs) == 0 {
		slugs = resource.Slugs()
	}

	created := make(map[string]int, len(slugs))
	for _, slug := range slugs {
		records, err := g.Generate(ctx, slug, count)
		if err != nil {
			return created, err
		}
		for _, data := range records {
			if _, err := c.CreateRecord(ctx, slug, data); err != nil {
				return created, fmt.Errorf("seed %s: %w", slug, err)
			}
			created[slug]++
		}
		logger.Log.WithField("resource", slug).Debugf("seeded %d records", created[slug])
	}
	return created, nil
}
