// Package draft holds the locally-owned state of the requisition being
// composed: the header selections and the line-item ledger.
//
// Nothing here touches the network. Items carry a generated local identity
// from creation and gain a server identity only when the external
// persistence collaborator reports a successful save (Promote). Validation
// failures are typed FieldError values wrapping the shared sentinel; they
// never mutate the ledger.
package draft
