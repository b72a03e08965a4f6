package draft

import (
	"github.com/procurahq/lib-reqdraft/reqdraft/cascade"
	"github.com/procurahq/lib-reqdraft/reqdraft/catalog"
	"github.com/shopspring/decimal"
)

// LabelSource resolves cached catalog entries without mutating cache state.
// cascade.Cache.Lookup satisfies it.
type LabelSource interface {
	Lookup(key cascade.Key) ([]catalog.Entry, bool)
}

// ItemView is the read-only display projection of one ledger item, with ids
// resolved back to labels where the cache holds them. Unresolvable ids fall
// back to the id itself, mirroring how the catalog labels fall back.
type ItemView struct {
	Index            int
	LocalID          string
	ServerID         string
	ProductLabel     string
	UnitLabel        string
	DescriptionLabel string
	Quantity         float64
	UnitCost         decimal.Decimal
	Total            decimal.Decimal
	Saved            bool
}

// View projects the ledger for display. It reads the cache through Lookup
// only, so projecting never triggers fetches or invalidations.
func (l *Ledger) View(labels LabelSource) []ItemView {
	items := l.Items()

	views := make([]ItemView, 0, len(items))

	for index, item := range items {
		view := ItemView{
			Index:        index + 1,
			LocalID:      item.LocalID,
			ServerID:     item.ServerID,
			ProductLabel: lookupLabel(labels, cascade.Key{Domain: catalog.DomainProduct}, item.ProductID),
			UnitLabel:    lookupLabel(labels, cascade.Key{Domain: catalog.DomainUnitOfMeasure}, item.UnitID),
			Quantity:     item.Quantity,
			UnitCost:     item.UnitCost,
			Total:        item.Total,
			Saved:        item.Saved(),
		}

		if item.ManualDescription != "" {
			view.DescriptionLabel = item.ManualDescription
		} else {
			view.DescriptionLabel = lookupLabel(labels, cascade.DescriptionKey(item.ProductID), item.DescriptionID)
		}

		views = append(views, view)
	}

	return views
}

func lookupLabel(labels LabelSource, key cascade.Key, id string) string {
	if labels == nil || id == "" {
		return id
	}

	entries, ok := labels.Lookup(key)
	if !ok {
		return id
	}

	for _, entry := range entries {
		if entry.ID == id {
			return entry.Label
		}
	}

	return id
}
