//go:build unit

package draft

import (
	"errors"
	"fmt"
	"testing"

	constant "github.com/procurahq/lib-reqdraft/reqdraft/constants"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sequentialIDs() func() string {
	n := 0

	return func() string {
		n++

		return fmt.Sprintf("local-%d", n)
	}
}

func validItem() Item {
	return Item{
		ProductID:     "100",
		Quantity:      3,
		UnitID:        "200",
		DescriptionID: "1000",
		UnitCost:      decimal.RequireFromString("45.50"),
	}
}

func TestLedgerAdd(t *testing.T) {
	t.Parallel()

	t.Run("assigns local id and derives total", func(t *testing.T) {
		t.Parallel()

		ledger := NewLedger(WithIDGenerator(sequentialIDs()))

		item, err := ledger.Add(validItem())
		require.NoError(t, err)

		assert.Equal(t, "local-1", item.LocalID)
		assert.False(t, item.Saved())
		assert.True(t, item.Total.Equal(decimal.RequireFromString("136.50")))
		assert.Equal(t, 1, ledger.Len())
	})

	t.Run("validation failure leaves ledger untouched", func(t *testing.T) {
		t.Parallel()

		ledger := NewLedger()

		item := validItem()
		item.Quantity = 0

		_, err := ledger.Add(item)

		assert.ErrorIs(t, err, constant.ErrValidationFailed)
		assert.Equal(t, 0, ledger.Len())
	})

	t.Run("caller supplied server id is discarded", func(t *testing.T) {
		t.Parallel()

		ledger := NewLedger()

		item := validItem()
		item.ServerID = "forged"

		added, err := ledger.Add(item)
		require.NoError(t, err)

		assert.Empty(t, added.ServerID)
	})
}

func TestItemValidationMatrix(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		manualMode bool
		mutate     func(*Item)
		wantField  string
	}{
		{
			name:      "missing product",
			mutate:    func(it *Item) { it.ProductID = "" },
			wantField: "product",
		},
		{
			name:      "zero quantity",
			mutate:    func(it *Item) { it.Quantity = 0 },
			wantField: "quantity",
		},
		{
			name:      "negative quantity",
			mutate:    func(it *Item) { it.Quantity = -2 },
			wantField: "quantity",
		},
		{
			name:      "missing unit",
			mutate:    func(it *Item) { it.UnitID = "" },
			wantField: "unit",
		},
		{
			name:      "missing description in catalog mode",
			mutate:    func(it *Item) { it.DescriptionID = "" },
			wantField: "description",
		},
		{
			name:       "missing manual description in manual mode",
			manualMode: true,
			mutate:     func(it *Item) { it.ManualDescription = " " },
			wantField:  "manual_description",
		},
		{
			name:      "zero unit cost",
			mutate:    func(it *Item) { it.UnitCost = decimal.Zero },
			wantField: "unit_cost",
		},
		{
			name:      "negative unit cost",
			mutate:    func(it *Item) { it.UnitCost = decimal.NewFromInt(-5) },
			wantField: "unit_cost",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			ledger := NewLedger()
			ledger.SetManualMode(tt.manualMode)

			item := validItem()
			if tt.manualMode {
				item.DescriptionID = ""
				item.ManualDescription = "hand-written description"
			}

			tt.mutate(&item)

			_, err := ledger.Add(item)
			require.Error(t, err)

			var ferr FieldError
			require.ErrorAs(t, err, &ferr)

			assert.Equal(t, tt.wantField, ferr.Field)
			assert.ErrorIs(t, err, constant.ErrValidationFailed)
		})
	}
}

func TestManualModeAccepts(t *testing.T) {
	t.Parallel()

	ledger := NewLedger()
	ledger.SetManualMode(true)

	item := validItem()
	item.DescriptionID = ""
	item.ManualDescription = "Custom fabricated bracket"

	added, err := ledger.Add(item)
	require.NoError(t, err)

	assert.Equal(t, "Custom fabricated bracket", added.ManualDescription)
	assert.Empty(t, added.DescriptionID)
}

func TestLedgerUpdate(t *testing.T) {
	t.Parallel()

	t.Run("product change clears description and cost", func(t *testing.T) {
		t.Parallel()

		ledger := NewLedger(WithIDGenerator(sequentialIDs()))

		added, err := ledger.Add(validItem())
		require.NoError(t, err)

		newProduct := "101"

		// Patching only the product leaves the item without a description and
		// cost, so the update must be rejected as a whole.
		_, err = ledger.Update(added.LocalID, Patch{ProductID: &newProduct})
		require.ErrorIs(t, err, constant.ErrValidationFailed)

		// The rejected update left the stored item unchanged.
		items := ledger.Items()
		require.Len(t, items, 1)
		assert.Equal(t, "100", items[0].ProductID)
		assert.Equal(t, "1000", items[0].DescriptionID)

		// Supplying the rescoped description and cost in the same patch works.
		newDescription := "1100"
		newCost := decimal.RequireFromString("189.90")

		updated, err := ledger.Update(added.LocalID, Patch{
			ProductID:     &newProduct,
			DescriptionID: &newDescription,
			UnitCost:      &newCost,
		})
		require.NoError(t, err)

		assert.Equal(t, "101", updated.ProductID)
		assert.Equal(t, "1100", updated.DescriptionID)
		assert.True(t, updated.Total.Equal(decimal.RequireFromString("569.70")))
	})

	t.Run("same product keeps description", func(t *testing.T) {
		t.Parallel()

		ledger := NewLedger(WithIDGenerator(sequentialIDs()))

		added, err := ledger.Add(validItem())
		require.NoError(t, err)

		sameProduct := added.ProductID
		quantity := 10.0

		updated, err := ledger.Update(added.LocalID, Patch{ProductID: &sameProduct, Quantity: &quantity})
		require.NoError(t, err)

		assert.Equal(t, "1000", updated.DescriptionID)
		assert.True(t, updated.Total.Equal(decimal.RequireFromString("455.00")))
	})

	t.Run("unknown local id", func(t *testing.T) {
		t.Parallel()

		ledger := NewLedger()

		quantity := 1.0

		_, err := ledger.Update("missing", Patch{Quantity: &quantity})

		assert.ErrorIs(t, err, constant.ErrItemNotFound)
	})
}

func TestLedgerRemove(t *testing.T) {
	t.Parallel()

	ledger := NewLedger(WithIDGenerator(sequentialIDs()))

	first, err := ledger.Add(validItem())
	require.NoError(t, err)

	second, err := ledger.Add(validItem())
	require.NoError(t, err)

	require.NoError(t, ledger.Remove(first.LocalID))

	items := ledger.Items()
	require.Len(t, items, 1)
	assert.Equal(t, second.LocalID, items[0].LocalID)

	assert.ErrorIs(t, ledger.Remove(first.LocalID), constant.ErrItemNotFound)
}

func TestLedgerPromote(t *testing.T) {
	t.Parallel()

	ledger := NewLedger(WithIDGenerator(sequentialIDs()))

	first, err := ledger.Add(validItem())
	require.NoError(t, err)

	second, err := ledger.Add(validItem())
	require.NoError(t, err)

	ledger.Promote(map[string]string{
		first.LocalID: "900",
		"unknown":     "901",
	})

	items := ledger.Items()

	assert.Equal(t, "900", items[0].ServerID)
	assert.True(t, items[0].Saved())
	assert.Empty(t, items[1].ServerID, "item %s must stay unsaved", second.LocalID)
}

func TestLedgerEstimatedTotal(t *testing.T) {
	t.Parallel()

	ledger := NewLedger()

	_, err := ledger.Add(validItem())
	require.NoError(t, err)

	other := validItem()
	other.Quantity = 2
	other.UnitCost = decimal.RequireFromString("10.25")

	_, err = ledger.Add(other)
	require.NoError(t, err)

	assert.True(t, ledger.EstimatedTotal().Equal(decimal.RequireFromString("157.00")))
}

func TestLedgerClearPreservesMode(t *testing.T) {
	t.Parallel()

	ledger := NewLedger()
	ledger.SetManualMode(true)

	item := validItem()
	item.DescriptionID = ""
	item.ManualDescription = "something"

	_, err := ledger.Add(item)
	require.NoError(t, err)

	ledger.Clear()

	assert.Equal(t, 0, ledger.Len())
	assert.True(t, ledger.ManualMode())
}

func TestFieldErrorUnwraps(t *testing.T) {
	t.Parallel()

	err := FieldError{Field: "quantity", Reason: "must be greater than zero"}

	assert.True(t, errors.Is(err, constant.ErrValidationFailed))
	assert.Contains(t, err.Error(), "quantity")
}
