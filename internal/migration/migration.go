// Package migration upgrades snapshots written by older releases. Steps are
// versioned, run once at load time, and idempotent: running them against an
// already migrated snapshot changes nothing.
package migration

import (
	"github.com/dmitrijs2005/debtkeeper/internal/idgen"
	"github.com/dmitrijs2005/debtkeeper/internal/models"
)

// Step is one versioned, in-place migration. Apply returns how many records
// it changed.
type Step struct {
	Version int
	Name    string
	Apply   func(s *models.Snapshot, gen idgen.Generator) int
}

// Steps lists every migration in version order.
var Steps = []Step{
	{Version: 1, Name: "assign-missing-transaction-ids", Apply: assignMissingTransactionIDs},
}

// Applied describes the effect of one step.
type Applied struct {
	Version int
	Name    string
	Changed int
}

// Report is the outcome of Run.
type Report struct {
	Steps []Applied
}

// Changed is the total number of records touched by all steps.
func (r Report) Changed() int {
	n := 0
	for _, s := range r.Steps {
		n += s.Changed
	}
	return n
}

// Run applies every step to s in order.
func Run(s *models.Snapshot, gen idgen.Generator) Report {
	var r Report
	for _, step := range Steps {
		r.Steps = append(r.Steps, Applied{
			Version: step.Version,
			Name:    step.Name,
			Changed: step.Apply(s, gen),
		})
	}
	return r
}

// assignMissingTransactionIDs gives every transaction without an id a fresh
// one. Records that already carry an id are never touched.
func assignMissingTransactionIDs(s *models.Snapshot, gen idgen.Generator) int {
	n := 0
	for i := range s.Transactions {
		if s.Transactions[i].ID != "" {
			continue
		}
		s.Transactions[i].ID = gen.NewID()
		n++
	}
	return n
}
