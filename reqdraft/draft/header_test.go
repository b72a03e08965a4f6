//go:build unit

package draft

import (
	"testing"
	"time"

	"github.com/procurahq/lib-reqdraft/reqdraft/catalog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func completeHeader() Header {
	header := NewHeader("Sciences", "Ana Rivera", time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC))
	header.Reason = "Restock consumables"

	for i, domain := range RequiredHeaderDomains() {
		header.Select(domain, string(rune('1'+i)))
	}

	return header
}

func TestHeaderValidate(t *testing.T) {
	t.Parallel()

	t.Run("complete header passes", func(t *testing.T) {
		t.Parallel()

		header := completeHeader()

		assert.Empty(t, header.Validate())
	})

	t.Run("administrative unit is optional", func(t *testing.T) {
		t.Parallel()

		header := completeHeader()
		header.Select(catalog.DomainAdministrativeUnit, "")

		assert.Empty(t, header.Validate())
	})

	tests := []struct {
		name      string
		mutate    func(*Header)
		wantField string
	}{
		{
			name:      "missing department",
			mutate:    func(h *Header) { h.Department = "  " },
			wantField: "department",
		},
		{
			name:      "missing reason",
			mutate:    func(h *Header) { h.Reason = "" },
			wantField: "reason",
		},
		{
			name:      "missing project selection",
			mutate:    func(h *Header) { h.Select(catalog.DomainProject, "") },
			wantField: "project",
		},
		{
			name:      "missing tender selection",
			mutate:    func(h *Header) { h.Select(catalog.DomainTender, "") },
			wantField: "tender",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			header := completeHeader()
			tt.mutate(&header)

			errs := header.Validate()
			require.Len(t, errs, 1)

			assert.Equal(t, tt.wantField, errs[0].Field)
		})
	}

	t.Run("empty header reports every violation", func(t *testing.T) {
		t.Parallel()

		header := NewHeader("Sciences", "Ana Rivera", time.Now())

		// One per required domain plus the reason.
		assert.Len(t, header.Validate(), len(RequiredHeaderDomains())+1)
	})
}

func TestHeaderCloneIsDeep(t *testing.T) {
	t.Parallel()

	header := completeHeader()
	cloned := header.Clone()

	cloned.Select(catalog.DomainProject, "other")

	assert.NotEqual(t, header.Selection(catalog.DomainProject), cloned.Selection(catalog.DomainProject))
}
