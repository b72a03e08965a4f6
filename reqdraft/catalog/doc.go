// Package catalog resolves the backend's variable catalog surface into
// canonical option lists.
//
// Each logical Domain owns an ordered, immutable list of candidate endpoint
// templates. Resolve probes the candidates in order and accepts the first one
// whose response, after shape normalization, yields a non-empty collection.
// Bare JSON arrays and {"results": [...]} envelopes are both accepted;
// anything else counts as a failed candidate. Exhausting every candidate is
// not an error: the domain resolves to an empty sequence and dependent UI
// treats it as unavailable.
//
// The Source interface is the narrow transport contract; HTTPSource is the
// net/http implementation with bounded retries. Tests substitute an in-memory
// Source.
package catalog
