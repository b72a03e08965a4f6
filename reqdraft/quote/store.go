package quote

import "context"

// Store is the external quote persistence contract. The binder treats it as
// ground truth: after any mutation it re-lists rather than assuming its own
// optimistic state survived.
type Store interface {
	List(ctx context.Context, requisitionID string) ([]Quote, error)
	Create(ctx context.Context, requisitionID string, file File, itemServerIDs []string) (Quote, error)
	Delete(ctx context.Context, requisitionID, quoteID string) error
}
