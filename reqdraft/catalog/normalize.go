package catalog

import (
	"encoding/json"
	"errors"
	"strings"

	"github.com/procurahq/lib-reqdraft/reqdraft/safe"
	"github.com/shopspring/decimal"
)

// errUnrecognizedShape marks a candidate response that is neither a bare
// collection nor a results envelope. The resolver treats it as a failed
// candidate.
var errUnrecognizedShape = errors.New("unrecognized response shape")

// record is one raw catalog row before normalization. Field names vary per
// deployment, so everything stays loosely typed until label construction.
type record map[string]any

// idKeys, codeKeys, nameKeys, and costKeys are the field fallbacks observed
// across backend deployments, in preference order.
var (
	idKeys   = []string{"id", "pk", "uuid"}
	codeKeys = []string{"code", "clave", "codigo"}
	nameKeys = []string{"name", "nombre", "description", "descripcion", "text", "label"}
	costKeys = []string{"estimated_unit_cost", "costo", "cost"}
)

// decodeCollection accepts either a bare JSON collection or an envelope
// exposing a results collection. Anything else is an errUnrecognizedShape.
func decodeCollection(payload []byte) ([]record, error) {
	var bare []record
	if err := json.Unmarshal(payload, &bare); err == nil {
		return bare, nil
	}

	var envelope struct {
		Results []record `json:"results"`
	}

	if err := json.Unmarshal(payload, &envelope); err == nil && envelope.Results != nil {
		return envelope.Results, nil
	}

	return nil, errUnrecognizedShape
}

// normalize converts raw records into entries, dropping rows with no usable
// identifier.
func normalize(records []record) []Entry {
	entries := make([]Entry, 0, len(records))

	for _, rec := range records {
		id, ok := rec.firstID()
		if !ok {
			continue
		}

		entries = append(entries, Entry{
			ID:       id,
			Label:    rec.label(id),
			UnitCost: rec.unitCost(),
		})
	}

	return entries
}

func (r record) firstID() (string, bool) {
	for _, key := range idKeys {
		if value, present := r[key]; present {
			if id, ok := safe.ID(value); ok {
				return id, true
			}
		}
	}

	return "", false
}

func (r record) firstString(keys []string) string {
	for _, key := range keys {
		if value, present := r[key]; present {
			if s, ok := value.(string); ok && strings.TrimSpace(s) != "" {
				return strings.TrimSpace(s)
			}
		}
	}

	return ""
}

// label builds the display label: code plus name when both exist, otherwise
// whichever of name, description, or code is present, otherwise the
// identifier's string form.
func (r record) label(id string) string {
	code := r.firstString(codeKeys)
	name := r.firstString(nameKeys)

	switch {
	case code != "" && name != "":
		return code + " - " + name
	case name != "":
		return name
	case code != "":
		return code
	default:
		return id
	}
}

func (r record) unitCost() decimal.Decimal {
	for _, key := range costKeys {
		value, present := r[key]
		if !present {
			continue
		}

		if s, ok := value.(string); ok {
			if parsed, err := decimal.NewFromString(strings.TrimSpace(s)); err == nil && parsed.IsPositive() {
				return safe.Money(parsed)
			}

			continue
		}

		if f, ok := safe.Float(value); ok && f > 0 {
			return safe.Money(decimal.NewFromFloat(f))
		}
	}

	return decimal.Zero
}
