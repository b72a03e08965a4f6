package draft

import (
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"
	constant "github.com/procurahq/lib-reqdraft/reqdraft/constants"
	"github.com/shopspring/decimal"
)

// Ledger is the in-memory collection of draft line items for one wizard
// session. All operations are synchronous and atomic; validation failures
// leave the ledger untouched.
type Ledger struct {
	mu         sync.Mutex
	items      []Item
	manualMode bool
	newID      func() string
}

// LedgerOption configures a Ledger.
type LedgerOption func(*Ledger)

// WithIDGenerator replaces the local-id generator (tests pin it).
func WithIDGenerator(newID func() string) LedgerOption {
	return func(l *Ledger) { l.newID = newID }
}

// NewLedger creates an empty ledger in catalog mode.
func NewLedger(opts ...LedgerOption) *Ledger {
	ledger := &Ledger{newID: uuid.NewString}

	for _, opt := range opts {
		opt(ledger)
	}

	return ledger
}

// SetManualMode switches between catalog-description and manual-description
// validation. The mode follows the chosen tender and is set before items are
// captured; flipping it does not retroactively revalidate existing items.
func (l *Ledger) SetManualMode(manual bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.manualMode = manual
}

// ManualMode reports the current validation mode.
func (l *Ledger) ManualMode() bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	return l.manualMode
}

// Add validates the item and appends it with a freshly generated LocalID.
// The stored item (with its derived total) is returned. A validation failure
// is returned as a FieldError and the ledger is not mutated.
func (l *Ledger) Add(item Item) (Item, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	item.LocalID = l.newID()
	item.ServerID = ""

	if l.manualMode {
		item.DescriptionID = ""
	} else {
		item.ManualDescription = ""
	}

	if ferr := item.validate(l.manualMode); ferr != nil {
		return Item{}, *ferr
	}

	item = item.withTotal()
	l.items = append(l.items, item)

	return item, nil
}

// Patch is a partial item mutation. Nil fields are left unchanged.
type Patch struct {
	ProductID         *string
	Quantity          *float64
	UnitID            *string
	DescriptionID     *string
	ManualDescription *string
	UnitCost          *decimal.Decimal
}

// Update applies patch to the item with the given local id, validates the
// result, and stores it. Changing the product clears the description
// selection and the unit cost, because descriptions are scoped to the
// product they were chosen under; callers must supply a new description in
// the same patch or the update is rejected.
func (l *Ledger) Update(localID string, patch Patch) (Item, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	index := l.indexOf(localID)
	if index < 0 {
		return Item{}, fmt.Errorf("%w: %q", constant.ErrItemNotFound, localID)
	}

	updated := l.items[index]

	if patch.ProductID != nil && *patch.ProductID != updated.ProductID {
		updated.ProductID = *patch.ProductID
		updated.DescriptionID = ""
		updated.UnitCost = decimal.Zero
	}

	if patch.Quantity != nil {
		updated.Quantity = *patch.Quantity
	}

	if patch.UnitID != nil {
		updated.UnitID = *patch.UnitID
	}

	if patch.DescriptionID != nil {
		updated.DescriptionID = *patch.DescriptionID
	}

	if patch.ManualDescription != nil {
		updated.ManualDescription = strings.TrimSpace(*patch.ManualDescription)
	}

	if patch.UnitCost != nil {
		updated.UnitCost = *patch.UnitCost
	}

	if ferr := updated.validate(l.manualMode); ferr != nil {
		return Item{}, *ferr
	}

	updated = updated.withTotal()
	l.items[index] = updated

	return updated, nil
}

// Remove deletes the item with the given local id. It is unconditional: no
// server-side confirmation happens at this layer.
func (l *Ledger) Remove(localID string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	index := l.indexOf(localID)
	if index < 0 {
		return fmt.Errorf("%w: %q", constant.ErrItemNotFound, localID)
	}

	l.items = append(l.items[:index], l.items[index+1:]...)

	return nil
}

// Items returns a copy of the ledger's items in insertion order.
func (l *Ledger) Items() []Item {
	l.mu.Lock()
	defer l.mu.Unlock()

	return append([]Item(nil), l.items...)
}

// Len returns the number of items.
func (l *Ledger) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()

	return len(l.items)
}

// Promote applies server-assigned identities after an external save, keyed
// by local id. Unknown local ids are ignored; the persistence collaborator
// may legitimately report items this session no longer holds.
func (l *Ledger) Promote(assigned map[string]string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	for index, item := range l.items {
		if serverID, ok := assigned[item.LocalID]; ok && serverID != "" {
			l.items[index].ServerID = serverID
		}
	}
}

// EstimatedTotal sums the derived totals of every item.
func (l *Ledger) EstimatedTotal() decimal.Decimal {
	l.mu.Lock()
	defer l.mu.Unlock()

	total := decimal.Zero
	for _, item := range l.items {
		total = total.Add(item.Total)
	}

	return total
}

// Clear empties the ledger. Mode is preserved; reset of the mode belongs to
// the wizard's header reset.
func (l *Ledger) Clear() {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.items = nil
}

func (l *Ledger) indexOf(localID string) int {
	for index, item := range l.items {
		if item.LocalID == localID {
			return index
		}
	}

	return -1
}
