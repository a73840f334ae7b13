// ABOUTME: Tests for static data generation and seeding.

package seed

import (
	"context"
	"testing"

	"github.com/2389/realty/internal/resource"
	"github.com/2389/realty/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStaticRecords_CoverEveryResource(t *testing.T) {
	for _, s := range resource.All() {
		t.Run(s.Slug, func(t *testing.T) {
			records := staticRecords(s.Slug, 3)
			require.Len(t, records, 3)
			for _, rec := range records {
				for _, f := range s.Fields {
					if f.Required {
						assert.NotEmpty(t, rec[f.Name], "required field %s", f.Name)
					}
				}
				for key := range rec {
					_, ok := s.FindField(key)
					assert.True(t, ok, "%s is not a %s field", key, s.Slug)
				}
			}
		})
	}
}

func TestStaticRecords_RepeatsGetNumberedLabels(t *testing.T) {
	n := len(staticTemplates("partners"))
	records := staticRecords("partners", n+1)

	assert.Equal(t, records[0]["name"].(string)+" 2", records[n]["name"])
	records[n]["category"] = "changed"
	assert.NotEqual(t, "changed", records[0]["category"], "records must not share maps")
}

func TestGenerate_UnknownResource(t *testing.T) {
	_, err := NewStaticGenerator().Generate(context.Background(), "spaceships", 1)
	assert.Error(t, err)
}

func TestSeed(t *testing.T) {
	s, err := store.New(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	ctx := context.Background()

	created, err := Seed(ctx, s, NewStaticGenerator(), []string{"properties", "items"}, 5)
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"properties": 5, "items": 5}, created)

	counts, err := s.CountRecords(ctx)
	require.NoError(t, err)
	assert.Equal(t, 5, counts["properties"])
	assert.Zero(t, counts["partners"])
}

func TestSeed_AllResources(t *testing.T) {
	s, err := store.New(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })

	created, err := Seed(context.Background(), s, NewStaticGenerator(), nil, 2)
	require.NoError(t, err)
	assert.Len(t, created, len(resource.All()))
}
