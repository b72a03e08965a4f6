package draft

import (
	"math"
	"strings"

	"github.com/procurahq/lib-reqdraft/reqdraft/safe"
	"github.com/shopspring/decimal"
)

// Item is one draft line item. LocalID is generated on creation and never
// changes; ServerID stays empty until the persistence collaborator promotes
// the item after a successful save.
//
// DescriptionID is only meaningful relative to the ProductID it was chosen
// under. Changing the product clears it (see Ledger.Update).
type Item struct {
	LocalID  string
	ServerID string

	ProductID string
	Quantity  float64
	UnitID    string

	// DescriptionID references a catalog item description (catalog mode).
	DescriptionID string
	// ManualDescription is the free-text description used instead of
	// DescriptionID when the ledger is in manual mode.
	ManualDescription string

	UnitCost decimal.Decimal
	// Total is derived: quantity x unit cost, two decimal places. The ledger
	// recomputes it on every accepted mutation.
	Total decimal.Decimal
}

// Saved reports whether the item carries a server identity.
func (it Item) Saved() bool {
	return it.ServerID != ""
}

// validate checks the item's required fields. manualMode lifts the catalog
// description requirement and demands a manual description instead; the
// positive unit cost requirement holds in both modes.
func (it Item) validate(manualMode bool) *FieldError {
	if it.ProductID == "" {
		return &FieldError{Field: "product", Reason: "selection required"}
	}

	if math.IsNaN(it.Quantity) || math.IsInf(it.Quantity, 0) {
		return &FieldError{Field: "quantity", Reason: "must be a finite number"}
	}

	if it.Quantity <= 0 {
		return &FieldError{Field: "quantity", Reason: "must be greater than zero"}
	}

	if it.UnitID == "" {
		return &FieldError{Field: "unit", Reason: "selection required"}
	}

	if manualMode {
		if strings.TrimSpace(it.ManualDescription) == "" {
			return &FieldError{Field: "manual_description", Reason: "required in manual mode"}
		}
	} else if it.DescriptionID == "" {
		// The description is the authoritative expense classification; it is
		// mandatory, not optional.
		return &FieldError{Field: "description", Reason: "selection required"}
	}

	if !it.UnitCost.IsPositive() {
		return &FieldError{Field: "unit_cost", Reason: "must be greater than zero"}
	}

	return nil
}

// withTotal returns the item with its derived total recomputed.
func (it Item) withTotal() Item {
	it.UnitCost = safe.Money(it.UnitCost)
	it.Total = safe.Total(it.Quantity, it.UnitCost)

	return it
}
