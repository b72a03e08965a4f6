package catalog

import (
	"github.com/shopspring/decimal"
)

// Domain is a logical category of selectable catalog data.
type Domain string

// Enumerated catalog domains. ItemDescription is the only parameterized
// domain: its option set is scoped to a product.
const (
	DomainAdministrativeUnit Domain = "administrative_unit"
	DomainDepartment         Domain = "department"
	DomainProject            Domain = "project"
	DomainFundingSource      Domain = "funding_source"
	DomainBudgetUnit         Domain = "budget_unit"
	DomainAgreement          Domain = "agreement"
	DomainCategory           Domain = "category"
	DomainTender             Domain = "tender"
	DomainExternalService    Domain = "external_service"
	DomainProduct            Domain = "product"
	DomainUnitOfMeasure      Domain = "unit_of_measure"
	DomainItemDescription    Domain = "item_description"
)

// Domains lists every enumerated domain in declaration order.
func Domains() []Domain {
	return []Domain{
		DomainAdministrativeUnit,
		DomainDepartment,
		DomainProject,
		DomainFundingSource,
		DomainBudgetUnit,
		DomainAgreement,
		DomainCategory,
		DomainTender,
		DomainExternalService,
		DomainProduct,
		DomainUnitOfMeasure,
		DomainItemDescription,
	}
}

// Valid reports whether d is one of the enumerated domains.
func (d Domain) Valid() bool {
	switch d {
	case DomainAdministrativeUnit, DomainDepartment, DomainProject,
		DomainFundingSource, DomainBudgetUnit, DomainAgreement,
		DomainCategory, DomainTender, DomainExternalService,
		DomainProduct, DomainUnitOfMeasure, DomainItemDescription:
		return true
	default:
		return false
	}
}

// Parameterized reports whether the domain's endpoints require a parent
// parameter to expand.
func (d Domain) Parameterized() bool {
	return d == DomainItemDescription
}

// Entry is one normalized catalog option: an opaque identifier plus a
// display label. Item description entries additionally carry the estimated
// unit cost advertised by the catalog; it is zero for every other domain.
type Entry struct {
	ID       string
	Label    string
	UnitCost decimal.Decimal
}

// Params carries the parent identifiers parameterized domains expand with.
type Params struct {
	// ProductID scopes DomainItemDescription candidates.
	ProductID string
}
