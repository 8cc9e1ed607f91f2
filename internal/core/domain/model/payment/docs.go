// Package payment is the append-only money ledger: plain payments, split
// sessions dividing one bill across methods or items, and the balance math
// that decides when an order counts as fully paid.
package payment
