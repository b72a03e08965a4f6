package quote

import (
	"context"
	"errors"
	"fmt"
	"sync"

	constant "github.com/procurahq/lib-reqdraft/reqdraft/constants"
	"github.com/procurahq/lib-reqdraft/reqdraft/draft"
	"github.com/procurahq/lib-reqdraft/reqdraft/log"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// EligibleItems returns the items a new quote may reference: those with a
// defined server identity that no existing quote already covers.
func EligibleItems(items []draft.Item, quotes []Quote) []draft.Item {
	eligible := make([]draft.Item, 0, len(items))

	for _, item := range items {
		if !item.Saved() {
			continue
		}

		if quotedBy(quotes, item.ServerID) != "" {
			continue
		}

		eligible = append(eligible, item)
	}

	return eligible
}

// quotedBy returns the id of the quote covering serverID, or empty.
func quotedBy(quotes []Quote, serverID string) string {
	for _, q := range quotes {
		if q.Covers(serverID) {
			return q.ID
		}
	}

	return ""
}

// Binder associates uploaded quote documents with the ledger's saved items
// for one persisted requisition.
type Binder struct {
	mu            sync.Mutex
	store         Store
	requisitionID string
	quotes        []Quote
	busy          bool
	logger        log.Logger
	tracer        trace.Tracer
}

// NewBinder creates a Binder for the given requisition. Call Refresh before
// first use so the quote view starts from server truth.
func NewBinder(store Store, requisitionID string, logger log.Logger) *Binder {
	return &Binder{
		store:         store,
		requisitionID: requisitionID,
		logger:        log.Or(logger),
		tracer:        otel.Tracer("reqdraft.quote"),
	}
}

// Quotes returns a copy of the last-synced quote list.
func (b *Binder) Quotes() []Quote {
	b.mu.Lock()
	defer b.mu.Unlock()

	return append([]Quote(nil), b.quotes...)
}

// Busy reports whether an upload is outstanding.
func (b *Binder) Busy() bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.busy
}

// Refresh replaces the local quote view with the store's current list.
func (b *Binder) Refresh(ctx context.Context) error {
	quotes, err := b.store.List(ctx, b.requisitionID)
	if err != nil {
		return fmt.Errorf("%w: list quotes: %w", constant.ErrPersistenceRejected, err)
	}

	b.mu.Lock()
	b.quotes = quotes
	b.mu.Unlock()

	return nil
}

// Eligible returns the subset of items a new quote may reference, against
// the last-synced quote list.
func (b *Binder) Eligible(items []draft.Item) []draft.Item {
	b.mu.Lock()
	defer b.mu.Unlock()

	return EligibleItems(items, b.quotes)
}

// StageUpload validates a prospective upload against the file constraints
// and the eligibility invariants, producing a pending descriptor for
// CommitUpload. It performs no I/O and mutates nothing.
//
// Rejections, all wrapping a sentinel from the constants package:
//   - the file is not a PDF or exceeds MaxFileBytes
//   - the ledger has items but none carries a server identity yet
//     (ErrUnsavedItems: the caller must surface "save first", not a generic
//     failure)
//   - every saved item is already covered by a quote
//   - the selection is empty while eligible items exist (an unscoped upload
//     is not allowed when scoping is possible)
//   - the selection references an item outside the eligible set; referencing
//     an unsaved or already-quoted item is a rejected operation, not a
//     silent no-op
func (b *Binder) StageUpload(items []draft.Item, file File, selectedServerIDs []string) (PendingUpload, error) {
	if !file.isPDF() {
		return PendingUpload{}, fmt.Errorf("%w: only .pdf files are accepted", constant.ErrIneligibleUpload)
	}

	if file.SizeBytes <= 0 || file.SizeBytes > MaxFileBytes {
		return PendingUpload{}, fmt.Errorf("%w: file size %d outside (0, %d]", constant.ErrIneligibleUpload, file.SizeBytes, MaxFileBytes)
	}

	b.mu.Lock()
	eligible := EligibleItems(items, b.quotes)
	b.mu.Unlock()

	if len(eligible) == 0 {
		if anySaved(items) {
			return PendingUpload{}, fmt.Errorf("%w: every saved item already has a quote", constant.ErrIneligibleUpload)
		}

		return PendingUpload{}, fmt.Errorf("%w: no item has a server identity yet", constant.ErrUnsavedItems)
	}

	if len(selectedServerIDs) == 0 {
		return PendingUpload{}, fmt.Errorf("%w: select at least one line item for this quote", constant.ErrIneligibleUpload)
	}

	eligibleSet := make(map[string]struct{}, len(eligible))
	for _, item := range eligible {
		eligibleSet[item.ServerID] = struct{}{}
	}

	selected := make([]string, 0, len(selectedServerIDs))
	seen := make(map[string]struct{}, len(selectedServerIDs))

	for _, serverID := range selectedServerIDs {
		if _, ok := eligibleSet[serverID]; !ok {
			return PendingUpload{}, fmt.Errorf("%w: item %q is not eligible for quoting", constant.ErrIneligibleUpload, serverID)
		}

		if _, dup := seen[serverID]; dup {
			continue
		}

		seen[serverID] = struct{}{}
		selected = append(selected, serverID)
	}

	return PendingUpload{File: file, ItemServerIDs: selected}, nil
}

func anySaved(items []draft.Item) bool {
	for _, item := range items {
		if item.Saved() {
			return true
		}
	}

	return false
}

// CommitUpload sends the staged upload to the store. It is the binder's only
// asynchronous mutator and is single-flight: a second call while one is
// outstanding fails immediately with ErrUploadInFlight instead of queueing.
// On success the quote list is resynced from the store.
func (b *Binder) CommitUpload(ctx context.Context, pending PendingUpload) (Quote, error) {
	b.mu.Lock()
	if b.busy {
		b.mu.Unlock()

		return Quote{}, constant.ErrUploadInFlight
	}

	b.busy = true
	b.mu.Unlock()

	defer func() {
		b.mu.Lock()
		b.busy = false
		b.mu.Unlock()
	}()

	ctx, span := b.tracer.Start(ctx, "quote.commit_upload",
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("requisition.id", b.requisitionID),
			attribute.Int("quote.items", len(pending.ItemServerIDs)),
			attribute.Int64("quote.size_bytes", pending.File.SizeBytes),
		),
	)
	defer span.End()

	created, err := b.store.Create(ctx, b.requisitionID, pending.File, pending.ItemServerIDs)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "quote upload rejected")

		return Quote{}, fmt.Errorf("%w: create quote: %w", constant.ErrPersistenceRejected, err)
	}

	if err := b.Refresh(ctx); err != nil {
		// The upload itself succeeded; report the quote and let the caller
		// retry the resync.
		b.logger.Log(ctx, log.LevelWarn, "quote list resync failed after upload",
			log.String("requisition_id", b.requisitionID),
			log.Err(err),
		)
	}

	return created, nil
}

// RemoveQuote deletes a quote from the store, then unconditionally resyncs
// the full quote list. The resync is the point: local removal is never
// assumed, so a delete the server silently refused does not leave a phantom
// gap in the local view.
func (b *Binder) RemoveQuote(ctx context.Context, quoteID string) error {
	ctx, span := b.tracer.Start(ctx, "quote.remove",
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(attribute.String("quote.id", quoteID)),
	)
	defer span.End()

	deleteErr := b.store.Delete(ctx, b.requisitionID, quoteID)
	if deleteErr != nil {
		span.RecordError(deleteErr)
		deleteErr = fmt.Errorf("%w: delete quote %q: %w", constant.ErrPersistenceRejected, quoteID, deleteErr)
	}

	if err := b.Refresh(ctx); err != nil && deleteErr == nil {
		deleteErr = err
	}

	return deleteErr
}

// IsSaveFirst reports whether err is the explicit save-first signal.
func IsSaveFirst(err error) bool {
	return errors.Is(err, constant.ErrUnsavedItems)
}
