package reqdraft

import (
	constant "github.com/procurahq/lib-reqdraft/reqdraft/constants"
)

// Response represents a business error with code, title, and message.
type Response struct {
	EntityType string `json:"entityType,omitempty"`
	Title      string `json:"title,omitempty"`
	Message    string `json:"message,omitempty"`
	Code       string `json:"code,omitempty"`
	Err        error  `json:"err,omitempty"`
}

func (e Response) Error() string {
	return e.Message
}

// Unwrap exposes the underlying sentinel so errors.Is keeps working after the
// conversion to a business error.
func (e Response) Unwrap() error {
	return e.Err
}

// ValidateBusinessError validates the error and returns the appropriate
// business error code, title, and message.
//
// Parameters:
//   - err: The error to be validated (one of the constants package sentinels).
//   - entityType: The type of the entity related to the error.
//   - args: Additional arguments for formatting error messages.
//
// Returns:
//   - error: The appropriate business error with code, title, and message, or
//     err unchanged when it is not a mapped sentinel.
func ValidateBusinessError(err error, entityType string, _ ...any) error {
	errorMap := map[error]error{
		constant.ErrResolutionExhausted: Response{
			EntityType: entityType,
			Code:       "REQ-0001",
			Title:      "Catalog Unavailable",
			Message:    "None of the known catalog endpoints returned data. The option set is unavailable; you can keep working and retry later.",
			Err:        constant.ErrResolutionExhausted,
		},
		constant.ErrValidationFailed: Response{
			EntityType: entityType,
			Code:       "REQ-0002",
			Title:      "Validation Failed",
			Message:    "One or more required fields are missing or invalid. Review the highlighted fields and try again.",
			Err:        constant.ErrValidationFailed,
		},
		constant.ErrIneligibleUpload: Response{
			EntityType: entityType,
			Code:       "REQ-0003",
			Title:      "Quote Not Accepted",
			Message:    "The quote could not be attached. Check that the file is a PDF under the size limit and that at least one eligible line item is selected.",
			Err:        constant.ErrIneligibleUpload,
		},
		constant.ErrUnsavedItems: Response{
			EntityType: entityType,
			Code:       "REQ-0004",
			Title:      "Save Items First",
			Message:    "Line items must be saved before quotes can reference them. Save your changes so each item receives an identifier, then retry.",
			Err:        constant.ErrUnsavedItems,
		},
		constant.ErrUploadInFlight: Response{
			EntityType: entityType,
			Code:       "REQ-0005",
			Title:      "Upload In Progress",
			Message:    "Another quote upload is still in progress. Wait for it to finish before starting a new one.",
			Err:        constant.ErrUploadInFlight,
		},
		constant.ErrReservationFailed: Response{
			EntityType: entityType,
			Code:       "REQ-0006",
			Title:      "Number Not Assigned",
			Message:    "A provisional requisition number could not be computed. Retry before continuing to review.",
			Err:        constant.ErrReservationFailed,
		},
		constant.ErrPersistenceRejected: Response{
			EntityType: entityType,
			Code:       "REQ-0007",
			Title:      "Save Rejected",
			Message:    "The server rejected the operation. Your local draft is unchanged; review the data and retry.",
			Err:        constant.ErrPersistenceRejected,
		},
		constant.ErrInvalidSession: Response{
			EntityType: entityType,
			Code:       "REQ-0008",
			Title:      "Session Invalid",
			Message:    "The session context is malformed. Sign in again to continue drafting.",
			Err:        constant.ErrInvalidSession,
		},
		constant.ErrInvalidTransition: Response{
			EntityType: entityType,
			Code:       "REQ-0009",
			Title:      "Step Not Allowed",
			Message:    "Wizard steps are strictly linear. Complete the current step before moving on.",
			Err:        constant.ErrInvalidTransition,
		},
	}
	if mappedError, found := errorMap[err]; found {
		return mappedError
	}

	return err
}
