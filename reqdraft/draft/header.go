package draft

import (
	"strings"
	"time"

	"github.com/procurahq/lib-reqdraft/reqdraft/catalog"
)

// RequiredHeaderDomains lists the catalog selections the header must carry
// before the wizard may leave the Header step. AdministrativeUnit is the one
// optional selection; the backend derives it when absent.
func RequiredHeaderDomains() []catalog.Domain {
	return []catalog.Domain{
		catalog.DomainProject,
		catalog.DomainFundingSource,
		catalog.DomainBudgetUnit,
		catalog.DomainAgreement,
		catalog.DomainCategory,
		catalog.DomainTender,
		catalog.DomainExternalService,
	}
}

// Header is the first wizard step's draft: one selection per non-item
// domain, the free-text requisition reason, and the read-only fields seeded
// from the session context.
type Header struct {
	// Selections maps a domain to the chosen entry id; empty string means no
	// selection yet.
	Selections map[catalog.Domain]string
	Reason     string
	// Observations is captured at the Items step and stored alongside the
	// header on save.
	Observations string
	// AckCostRealistic records the explicit "estimated costs are realistic"
	// confirmation required before the draft is considered printable.
	AckCostRealistic bool

	// Read-only derived fields.
	CreatedAt     time.Time
	RequesterName string
	Department    string
}

// NewHeader creates an empty header with the derived fields filled in.
func NewHeader(department, requesterName string, createdAt time.Time) Header {
	selections := make(map[catalog.Domain]string, len(RequiredHeaderDomains())+1)
	for _, domain := range RequiredHeaderDomains() {
		selections[domain] = ""
	}

	selections[catalog.DomainAdministrativeUnit] = ""

	return Header{
		Selections:    selections,
		CreatedAt:     createdAt,
		RequesterName: requesterName,
		Department:    department,
	}
}

// Select records the chosen entry id for a domain. Selecting clears nothing
// else: header domains are independent of each other.
func (h *Header) Select(domain catalog.Domain, id string) {
	if h.Selections == nil {
		h.Selections = make(map[catalog.Domain]string)
	}

	h.Selections[domain] = id
}

// Selection returns the chosen entry id for a domain, empty when unset.
func (h *Header) Selection(domain catalog.Domain) string {
	return h.Selections[domain]
}

// Validate checks every required header field and returns one FieldError per
// violation. An empty result means the header may proceed to the Items step.
func (h *Header) Validate() []FieldError {
	var errs []FieldError

	if strings.TrimSpace(h.Department) == "" {
		errs = append(errs, FieldError{Field: "department", Reason: "required"})
	}

	for _, domain := range RequiredHeaderDomains() {
		if h.Selections[domain] == "" {
			errs = append(errs, FieldError{Field: string(domain), Reason: "selection required"})
		}
	}

	if strings.TrimSpace(h.Reason) == "" {
		errs = append(errs, FieldError{Field: "reason", Reason: "required"})
	}

	return errs
}

// Clone returns a deep copy so read-only projections cannot alias the
// controller's header.
func (h Header) Clone() Header {
	cloned := h

	cloned.Selections = make(map[catalog.Domain]string, len(h.Selections))
	for domain, id := range h.Selections {
		cloned.Selections[domain] = id
	}

	return cloned
}
