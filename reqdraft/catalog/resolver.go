package catalog

import (
	"context"
	"sort"
	"strings"

	"github.com/procurahq/lib-reqdraft/reqdraft/log"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// Resolver probes a domain's candidate endpoints in order and returns the
// first non-empty normalized collection.
type Resolver struct {
	source    Source
	endpoints Endpoints
	logger    log.Logger
	tracer    trace.Tracer
}

// ResolverOption configures a Resolver.
type ResolverOption func(*Resolver)

// WithEndpoints replaces the default candidate tables.
func WithEndpoints(endpoints Endpoints) ResolverOption {
	return func(r *Resolver) { r.endpoints = endpoints }
}

// WithLogger attaches a structured logger.
func WithLogger(logger log.Logger) ResolverOption {
	return func(r *Resolver) { r.logger = logger }
}

// NewResolver creates a Resolver over the given transport.
func NewResolver(source Source, opts ...ResolverOption) *Resolver {
	resolver := &Resolver{
		source:    source,
		endpoints: DefaultEndpoints(),
		tracer:    otel.Tracer("reqdraft.catalog"),
	}

	for _, opt := range opts {
		opt(resolver)
	}

	resolver.logger = log.Or(resolver.logger)

	return resolver
}

// Resolve probes the domain's candidates in fixed order and returns the first
// candidate's normalized non-empty result.
//
// Individual candidate failures are swallowed and logged; exhausting every
// candidate yields an empty sequence and a nil error, because an unavailable
// catalog is a degraded state, not a fatal one. The only errors returned are
// configuration mistakes (unknown domain, missing parent id) and context
// cancellation.
func (r *Resolver) Resolve(ctx context.Context, domain Domain, params Params) ([]Entry, error) {
	candidates, err := r.endpoints.Candidates(domain, params)
	if err != nil {
		return nil, err
	}

	ctx, span := r.tracer.Start(ctx, "catalog.resolve",
		trace.WithAttributes(
			attribute.String("catalog.domain", string(domain)),
			attribute.Int("catalog.candidates", len(candidates)),
		),
	)
	defer span.End()

	for index, candidate := range candidates {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		payload, err := r.source.Get(ctx, candidate)
		if err != nil {
			r.logger.Log(ctx, log.LevelDebug, "catalog candidate failed",
				log.String("domain", string(domain)),
				log.String("candidate", candidate),
				log.Err(err),
			)

			continue
		}

		records, err := decodeCollection(payload)
		if err != nil {
			r.logger.Log(ctx, log.LevelDebug, "catalog candidate returned unusable shape",
				log.String("domain", string(domain)),
				log.String("candidate", candidate),
			)

			continue
		}

		entries := normalize(records)
		if len(entries) == 0 {
			continue
		}

		if domain == DomainItemDescription {
			sortEntries(entries)
		}

		span.SetAttributes(
			attribute.Int("catalog.accepted_candidate", index),
			attribute.Int("catalog.entries", len(entries)),
		)

		return entries, nil
	}

	r.logger.Log(ctx, log.LevelWarn, "catalog resolution exhausted",
		log.String("domain", string(domain)),
		log.Int("candidates", len(candidates)),
	)
	span.SetAttributes(attribute.Bool("catalog.exhausted", true))

	return []Entry{}, nil
}

// sortEntries orders entries by label, case-insensitively. Item description
// sets are the only domain sorted client-side; the other catalogs arrive in
// backend order.
func sortEntries(entries []Entry) {
	sort.SliceStable(entries, func(i, j int) bool {
		return strings.ToLower(entries[i].Label) < strings.ToLower(entries[j].Label)
	})
}
