package wizard

// Step is one of the wizard's three ordered screens.
type Step int

const (
	// StepHeader captures the catalog selections and the requisition reason.
	StepHeader Step = iota
	// StepItems captures line items against the header's selections.
	StepItems
	// StepReview shows the assembled draft for confirmation.
	StepReview
)

// String returns the step's display name.
func (s Step) String() string {
	switch s {
	case StepHeader:
		return "header"
	case StepItems:
		return "items"
	case StepReview:
		return "review"
	default:
		return "unknown"
	}
}
