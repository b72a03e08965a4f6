//go:build unit

package catalog

import (
	"strings"
	"testing"

	constant "github.com/procurahq/lib-reqdraft/reqdraft/constants"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCandidatesExpansion(t *testing.T) {
	t.Parallel()

	endpoints := DefaultEndpoints()

	tests := []struct {
		name    string
		domain  Domain
		params  Params
		want    []string
		wantErr error
	}{
		{
			name:   "unscoped domain ignores params",
			domain: DomainProject,
			params: Params{ProductID: "42"},
			want:   []string{"/catalogs/projects/"},
		},
		{
			name:   "parameterized domain expands every template",
			domain: DomainItemDescription,
			params: Params{ProductID: "42"},
			want: []string{
				"/catalogs/item-descriptions/?product=42",
				"/item-descriptions/?product=42",
				"/catalogs/descriptions/?product=42",
				"/catalogs/item-descriptions/?product_id=42",
				"/item-descriptions/?product_id=42",
				"/catalogs/descriptions/?product_id=42",
			},
		},
		{
			name:    "parameterized domain without parent",
			domain:  DomainItemDescription,
			wantErr: ErrMissingParent,
		},
		{
			name:    "unknown domain",
			domain:  Domain("warehouse"),
			wantErr: constant.ErrUnknownDomain,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := endpoints.Candidates(tt.domain, tt.params)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDefaultEndpointsCoverEveryDomain(t *testing.T) {
	t.Parallel()

	endpoints := DefaultEndpoints()

	for _, domain := range Domains() {
		assert.NotEmpty(t, endpoints[domain], "domain %s has no candidates", domain)
	}
}

func TestMergeOverlaysOnlyProvidedDomains(t *testing.T) {
	t.Parallel()

	merged := DefaultEndpoints().merge(Endpoints{
		DomainProduct: {"/v2/products/"},
	})

	assert.Equal(t, []string{"/v2/products/"}, merged[DomainProduct])
	assert.Equal(t, DefaultEndpoints()[DomainUnitOfMeasure], merged[DomainUnitOfMeasure])
}

func TestLoadEndpoints(t *testing.T) {
	t.Parallel()

	t.Run("overlays listed domains", func(t *testing.T) {
		t.Parallel()

		endpoints, err := LoadEndpoints(strings.NewReader(`
endpoints:
  product:
    - /v2/products/
    - /products/
  item_description:
    - "/v2/descriptions/?product={product}"
`))
		require.NoError(t, err)

		assert.Equal(t, []string{"/v2/products/", "/products/"}, endpoints[DomainProduct])
		assert.Equal(t, []string{"/v2/descriptions/?product={product}"}, endpoints[DomainItemDescription])
		assert.Equal(t, DefaultEndpoints()[DomainProject], endpoints[DomainProject])
	})

	t.Run("rejects unknown domain keys", func(t *testing.T) {
		t.Parallel()

		_, err := LoadEndpoints(strings.NewReader(`
endpoints:
  prodcut:
    - /products/
`))

		assert.ErrorIs(t, err, constant.ErrUnknownDomain)
	})

	t.Run("rejects malformed yaml", func(t *testing.T) {
		t.Parallel()

		_, err := LoadEndpoints(strings.NewReader("endpoints: [not: a map"))

		assert.Error(t, err)
	})
}
