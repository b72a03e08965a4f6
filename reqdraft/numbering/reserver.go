package numbering

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"

	constant "github.com/procurahq/lib-reqdraft/reqdraft/constants"
	"github.com/procurahq/lib-reqdraft/reqdraft/catalog"
	"github.com/procurahq/lib-reqdraft/reqdraft/log"
	"github.com/procurahq/lib-reqdraft/reqdraft/safe"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// numberKeys are the per-record fields a requisition number may live under,
// in preference order. The record id is the last resort: with no explicit
// number field, ids at least grow monotonically on the deployments observed.
var numberKeys = []string{"number", "folio", "consecutive", "no", "n", "id"}

// DefaultQueries returns the candidate queries for the highest existing
// requisition, ordered by preference. Each asks for a single record sorted
// descending; the pagination parameter name varies per deployment.
func DefaultQueries() []string {
	return []string{
		"/requisitions/?ordering=-number&limit=1",
		"/requisitions/?ordering=-number&page_size=1",
		"/requisitions/?ordering=-id&limit=1",
		"/requisitions/?ordering=-id&page_size=1",
	}
}

// Reserver proposes the next requisition number by probing the requisition
// collection for the current maximum.
type Reserver struct {
	source  catalog.Source
	queries []string
	logger  log.Logger
	tracer  trace.Tracer
}

// ReserverOption configures a Reserver.
type ReserverOption func(*Reserver)

// WithQueries replaces the default candidate queries.
func WithQueries(queries []string) ReserverOption {
	return func(r *Reserver) { r.queries = queries }
}

// WithLogger attaches a structured logger.
func WithLogger(logger log.Logger) ReserverOption {
	return func(r *Reserver) { r.logger = logger }
}

// NewReserver creates a Reserver over the given transport.
func NewReserver(source catalog.Source, opts ...ReserverOption) *Reserver {
	reserver := &Reserver{
		source:  source,
		queries: DefaultQueries(),
		tracer:  otel.Tracer("reqdraft.numbering"),
	}

	for _, opt := range opts {
		opt(reserver)
	}

	reserver.logger = log.Or(reserver.logger)

	return reserver
}

// Reserve proposes the next requisition number as a string.
//
// The first candidate query that decodes is authoritative: its first record's
// number plus one is the proposal, and an empty collection means no
// requisition exists yet, so the proposal is "1". Only when every candidate
// fails at the transport or decoding level does Reserve fail, with
// ErrReservationFailed; a backend that cannot be asked must block the draft
// rather than risk proposing a duplicate.
func (r *Reserver) Reserve(ctx context.Context) (string, error) {
	ctx, span := r.tracer.Start(ctx, "numbering.reserve")
	defer span.End()

	for _, query := range r.queries {
		if ctx.Err() != nil {
			span.SetStatus(codes.Error, ctx.Err().Error())

			return "", ctx.Err()
		}

		payload, err := r.source.Get(ctx, query)
		if err != nil {
			r.logger.Log(ctx, log.LevelDebug, "numbering query failed",
				log.String("query", query),
				log.Err(err),
			)

			continue
		}

		records, err := decodeRecords(payload)
		if err != nil {
			r.logger.Log(ctx, log.LevelDebug, "numbering response undecodable",
				log.String("query", query),
				log.Err(err),
			)

			continue
		}

		proposal := propose(records)

		span.SetAttributes(
			attribute.String("numbering.query", query),
			attribute.String("numbering.proposal", proposal),
		)
		r.logger.Log(ctx, log.LevelInfo, "requisition number reserved",
			log.String("number", proposal),
		)

		return proposal, nil
	}

	span.SetStatus(codes.Error, "all numbering queries failed")

	return "", fmt.Errorf("%w: no requisition collection endpoint answered", constant.ErrReservationFailed)
}

// propose turns the highest-first record list into the next number. Records
// whose number fields are all absent or non-numeric are skipped; an empty or
// fully unusable list proposes "1".
func propose(records []map[string]any) string {
	for _, rec := range records {
		if n, ok := lastNumber(rec); ok {
			return strconv.FormatInt(n+1, 10)
		}
	}

	return "1"
}

// lastNumber extracts the record's number through the field fallbacks,
// truncating fractional values the way string-typed numbers round-trip.
func lastNumber(rec map[string]any) (int64, bool) {
	for _, key := range numberKeys {
		value, present := rec[key]
		if !present {
			continue
		}

		f, ok := safe.Float(value)
		if !ok {
			continue
		}

		if f < 0 || f > math.MaxInt64-1 {
			continue
		}

		return int64(f), true
	}

	return 0, false
}

// decodeRecords accepts the same two response shapes the catalog resolver
// does: a bare collection or a results envelope.
func decodeRecords(payload []byte) ([]map[string]any, error) {
	var bare []map[string]any
	if err := json.Unmarshal(payload, &bare); err == nil {
		return bare, nil
	}

	var envelope struct {
		Results []map[string]any `json:"results"`
	}

	if err := json.Unmarshal(payload, &envelope); err == nil && envelope.Results != nil {
		return envelope.Results, nil
	}

	return nil, errors.New("unrecognized requisition collection shape")
}
