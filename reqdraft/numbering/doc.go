// Package numbering reserves the next requisition number before a draft is
// first persisted, so the number is visible and fixed while the user is
// still filling in line items.
//
// Reservation asks the backend for the highest existing number and proposes
// max+1. Numbers travel as strings end to end; they are parsed only for the
// increment. An empty collection proposes "1". A backend that cannot answer
// at all is a blocking failure, not a silent "1": proposing a duplicate
// number is worse than making the user retry.
package numbering
