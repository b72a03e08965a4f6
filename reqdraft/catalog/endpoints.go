package catalog

import (
	"errors"
	"fmt"
	"strings"

	constant "github.com/procurahq/lib-reqdraft/reqdraft/constants"
)

// ErrMissingParent is returned when a parameterized domain is expanded
// without its parent identifier.
var ErrMissingParent = errors.New("parameterized domain expanded without parent id")

// productPlaceholder marks where a product identifier is substituted into an
// item-description endpoint template.
const productPlaceholder = "{product}"

// Endpoints maps each domain to its ordered, immutable list of candidate
// endpoint templates. Candidates are probed in declaration order; the order
// is part of the contract, not an implementation detail.
type Endpoints map[Domain][]string

// DefaultEndpoints returns the candidate tables for the known backend
// deployments. The primary path is listed first; the remaining candidates
// cover older mounts and aliases still found in the field.
func DefaultEndpoints() Endpoints {
	return Endpoints{
		DomainAdministrativeUnit: {
			"/catalogs/administrative-units/",
		},
		DomainDepartment: {
			"/catalogs/departments/",
		},
		DomainProject: {
			"/catalogs/projects/",
		},
		DomainFundingSource: {
			"/catalogs/funding-sources/",
		},
		DomainBudgetUnit: {
			"/catalogs/budget-units/",
		},
		DomainAgreement: {
			"/catalogs/agreements/",
		},
		DomainCategory: {
			"/catalogs/categories/",
		},
		DomainTender: {
			"/catalogs/tenders/",
		},
		DomainExternalService: {
			"/catalogs/external-services/",
		},
		DomainProduct: {
			"/catalogs/products/",
			"/products/",
			"/catalogs/items/",
			"/catalogs/expense-objects/",
		},
		DomainUnitOfMeasure: {
			"/catalogs/units/",
			"/catalogs/measurement-units/",
			"/catalogs/uoms/",
			"/units/",
		},
		DomainItemDescription: {
			"/catalogs/item-descriptions/?product={product}",
			"/item-descriptions/?product={product}",
			"/catalogs/descriptions/?product={product}",
			"/catalogs/item-descriptions/?product_id={product}",
			"/item-descriptions/?product_id={product}",
			"/catalogs/descriptions/?product_id={product}",
		},
	}
}

// DescriptionCollectionEndpoints returns the unparameterized candidates for
// the full item-description catalog, used by the browse and registration
// flows.
func DescriptionCollectionEndpoints() []string {
	return []string{
		"/catalogs/item-descriptions/",
		"/item-descriptions/",
		"/catalogs/descriptions/",
	}
}

// Candidates expands the domain's templates with params and returns the
// ordered probe list. An unknown domain or a parameterized domain expanded
// without its parent id yields an error; a domain with no configured
// candidates yields an empty list.
func (e Endpoints) Candidates(d Domain, params Params) ([]string, error) {
	if !d.Valid() {
		return nil, fmt.Errorf("%w: %q", constant.ErrUnknownDomain, string(d))
	}

	templates := e[d]

	if d.Parameterized() && params.ProductID == "" {
		return nil, fmt.Errorf("%w: domain %q", ErrMissingParent, string(d))
	}

	expanded := make([]string, 0, len(templates))
	for _, tpl := range templates {
		expanded = append(expanded, strings.ReplaceAll(tpl, productPlaceholder, params.ProductID))
	}

	return expanded, nil
}

// merge overlays non-empty candidate lists from other onto a copy of e.
func (e Endpoints) merge(other Endpoints) Endpoints {
	merged := make(Endpoints, len(e))
	for d, candidates := range e {
		merged[d] = append([]string(nil), candidates...)
	}

	for d, candidates := range other {
		if len(candidates) > 0 {
			merged[d] = append([]string(nil), candidates...)
		}
	}

	return merged
}
