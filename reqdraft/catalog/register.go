package catalog

import (
	"context"
	"encoding/json"
	"fmt"

	constant "github.com/procurahq/lib-reqdraft/reqdraft/constants"
	"github.com/procurahq/lib-reqdraft/reqdraft/log"
	"github.com/procurahq/lib-reqdraft/reqdraft/safe"
	"github.com/shopspring/decimal"
)

// descriptionPayloads returns the candidate request bodies for registering an
// item description. Field names vary per deployment the same way response
// shapes do, so each endpoint candidate is tried with each payload shape.
func descriptionPayloads(productID, text string, unitCost decimal.Decimal) [][]byte {
	cost := safe.Money(unitCost)

	shapes := []map[string]any{
		{"product": productID, "text": text, "estimated_unit_cost": cost},
		{"product_id": productID, "text": text, "estimated_unit_cost": cost},
		{"producto": productID, "descripcion": text, "estimated_unit_cost": cost},
	}

	payloads := make([][]byte, 0, len(shapes))

	for _, shape := range shapes {
		if raw, err := json.Marshal(shape); err == nil {
			payloads = append(payloads, raw)
		}
	}

	return payloads
}

// RegisterDescription creates a new item description for a product by probing
// the known description endpoints with the known payload shapes, first
// success wins. The returned entry is normalized like any resolved one.
//
// Callers must refetch the product's scoped description options afterwards so
// the cascade cache reflects the new row.
func (r *Resolver) RegisterDescription(ctx context.Context, productID, text string, unitCost decimal.Decimal) (Entry, error) {
	if productID == "" || text == "" || !unitCost.IsPositive() {
		return Entry{}, fmt.Errorf("%w: description registration requires product, text, and a positive cost", constant.ErrValidationFailed)
	}

	for _, payload := range descriptionPayloads(productID, text, unitCost) {
		for _, endpoint := range DescriptionCollectionEndpoints() {
			if err := ctx.Err(); err != nil {
				return Entry{}, err
			}

			raw, err := r.source.Post(ctx, endpoint, payload)
			if err != nil {
				r.logger.Log(ctx, log.LevelDebug, "description registration candidate failed",
					log.String("endpoint", endpoint),
					log.Err(err),
				)

				continue
			}

			var created record
			if err := json.Unmarshal(raw, &created); err != nil {
				continue
			}

			entries := normalize([]record{created})
			if len(entries) == 0 {
				continue
			}

			return entries[0], nil
		}
	}

	return Entry{}, fmt.Errorf("%w: no description endpoint accepted the registration", constant.ErrPersistenceRejected)
}
