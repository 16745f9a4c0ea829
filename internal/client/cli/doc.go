// Package cli implements the interactive DebtKeeper front-end: a
// read-eval-print loop over the state cache.
//
// Lines are split like a shell would, so quoted arguments may contain
// spaces:
//
//	lend "Bob Smith" 120.50 due=2025-03-01 tags=car,urgent note="new tyres"
//
// Commands that remove data ask for confirmation first. Input is consumed
// through a channel fed by a reader goroutine, so the loop returns promptly
// when its context is cancelled even while waiting for a line.
package cli
