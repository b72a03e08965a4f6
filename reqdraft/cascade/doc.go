// Package cascade keeps dependent catalog option sets consistent under rapid
// parent-selection changes.
//
// The cache maps a Key (domain, optionally a parent id) to its last-resolved
// entries plus a monotonic request token. Refresh synchronously clears the
// key, mints a new token, and resolves in the background; the completion is
// applied only if its token is still the key's current one. A slow response
// to an old parent value can therefore never overwrite a newer selection's
// options: last-issued wins, not last-arrived.
//
// There is no request cancellation at this layer. A stale result is simply
// dropped, which keeps the contract independent of whether the transport
// supports aborting calls.
package cascade
