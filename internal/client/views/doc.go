// Package views computes read-only projections over transactions: totals,
// per-borrower and per-tag balances, a running balance series and month or
// category groupings. Every function is pure and may be recomputed on each
// change.
//
// Balances are lent minus repaid and are never clamped, so an overpaid
// borrower shows a negative balance.
package views
