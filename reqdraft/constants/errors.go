package constant

import "errors"

var (
	// ErrResolutionExhausted signals that every candidate endpoint for a catalog
	// domain failed or returned an empty collection. Callers treat the domain as
	// unavailable, not as a fatal condition.
	ErrResolutionExhausted = errors.New("catalog resolution exhausted")
	// ErrValidationFailed is the sentinel wrapped by every field-level rejection
	// of a draft header or line item.
	ErrValidationFailed = errors.New("draft validation failed")
	// ErrIneligibleUpload signals a quote upload blocked by a file or selection
	// constraint (type, size, scoping).
	ErrIneligibleUpload = errors.New("quote upload not eligible")
	// ErrUnsavedItems signals that no ledger item carries a server identity yet,
	// so quote uploads must be blocked with an explicit save-first message.
	ErrUnsavedItems = errors.New("line items must be saved before quoting")
	// ErrUploadInFlight signals a second quote upload attempted while one is
	// still outstanding. Concurrent uploads are rejected, never queued.
	ErrUploadInFlight = errors.New("another quote upload is in flight")
	// ErrReservationFailed signals the provisional requisition number could not
	// be computed. It blocks progression past the Items step.
	ErrReservationFailed = errors.New("requisition number reservation failed")
	// ErrPersistenceRejected signals the external save, upload, or delete
	// collaborator refused an operation. Local state is not rolled back.
	ErrPersistenceRejected = errors.New("persistence collaborator rejected the operation")
	// ErrInvalidSession signals a malformed session context. This is the only
	// class that aborts the current operation and resets to a safe default.
	ErrInvalidSession = errors.New("malformed session context")
	// ErrInvalidTransition signals a wizard step change outside the strict
	// Header -> Items -> Review order.
	ErrInvalidTransition = errors.New("wizard transition not allowed")
	// ErrItemNotFound signals an operation against an unknown ledger local id.
	ErrItemNotFound = errors.New("draft item not found")
	// ErrQuoteNotFound signals an operation against an unknown quote id.
	ErrQuoteNotFound = errors.New("quote not found")
	// ErrUnknownDomain signals a catalog domain outside the enumerated set.
	ErrUnknownDomain = errors.New("unknown catalog domain")
)
