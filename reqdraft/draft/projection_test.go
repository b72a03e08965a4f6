//go:build unit

package draft

import (
	"testing"

	"github.com/procurahq/lib-reqdraft/reqdraft/cascade"
	"github.com/procurahq/lib-reqdraft/reqdraft/catalog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// staticLabels is an in-memory LabelSource.
type staticLabels map[cascade.Key][]catalog.Entry

func (s staticLabels) Lookup(key cascade.Key) ([]catalog.Entry, bool) {
	entries, ok := s[key]

	return entries, ok
}

func TestLedgerView(t *testing.T) {
	t.Parallel()

	labels := staticLabels{
		{Domain: catalog.DomainProduct}:       {{ID: "100", Label: "MAT-001 - Reagent bottles"}},
		{Domain: catalog.DomainUnitOfMeasure}: {{ID: "200", Label: "Box"}},
		cascade.DescriptionKey("100"):         {{ID: "1000", Label: "Amber glass bottle 500ml"}},
	}

	ledger := NewLedger(WithIDGenerator(sequentialIDs()))

	_, err := ledger.Add(validItem())
	require.NoError(t, err)

	views := ledger.View(labels)
	require.Len(t, views, 1)

	view := views[0]

	assert.Equal(t, 1, view.Index)
	assert.Equal(t, "MAT-001 - Reagent bottles", view.ProductLabel)
	assert.Equal(t, "Box", view.UnitLabel)
	assert.Equal(t, "Amber glass bottle 500ml", view.DescriptionLabel)
	assert.False(t, view.Saved)
}

func TestLedgerViewFallsBackToIDs(t *testing.T) {
	t.Parallel()

	ledger := NewLedger()

	_, err := ledger.Add(validItem())
	require.NoError(t, err)

	t.Run("empty label source", func(t *testing.T) {
		t.Parallel()

		views := ledger.View(staticLabels{})
		require.Len(t, views, 1)

		assert.Equal(t, "100", views[0].ProductLabel)
		assert.Equal(t, "200", views[0].UnitLabel)
		assert.Equal(t, "1000", views[0].DescriptionLabel)
	})

	t.Run("nil label source", func(t *testing.T) {
		t.Parallel()

		views := ledger.View(nil)
		require.Len(t, views, 1)

		assert.Equal(t, "100", views[0].ProductLabel)
	})
}

func TestLedgerViewPrefersManualDescription(t *testing.T) {
	t.Parallel()

	ledger := NewLedger()
	ledger.SetManualMode(true)

	item := validItem()
	item.DescriptionID = ""
	item.ManualDescription = "Custom bracket, stainless"

	_, err := ledger.Add(item)
	require.NoError(t, err)

	views := ledger.View(staticLabels{})
	require.Len(t, views, 1)

	assert.Equal(t, "Custom bracket, stainless", views[0].DescriptionLabel)
}
