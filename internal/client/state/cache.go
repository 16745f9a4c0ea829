package state

import (
	"bytes"
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/dmitrijs2005/debtkeeper/internal/common"
	"github.com/dmitrijs2005/debtkeeper/internal/idgen"
	"github.com/dmitrijs2005/debtkeeper/internal/logging"
	"github.com/dmitrijs2005/debtkeeper/internal/migration"
	"github.com/dmitrijs2005/debtkeeper/internal/models"
)

// Gateway is what the cache needs from the State Gateway.
type Gateway interface {
	Load(ctx context.Context) (models.Snapshot, error)
	Flush(ctx context.Context, snap models.Snapshot) error
	Status(ctx context.Context) models.DiagnosticInfo
}

// State is the cache lifecycle state.
type State int

const (
	Uninitialized State = iota
	Loading
	Clean
	Dirty
	Flushing
)

func (s State) String() string {
	switch s {
	case Uninitialized:
		return "uninitialized"
	case Loading:
		return "loading"
	case Clean:
		return "clean"
	case Dirty:
		return "dirty"
	case Flushing:
		return "flushing"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

type phase int

const (
	phaseNew phase = iota
	phaseLoading
	phaseReady
)

// Options tune the flush policy.
type Options struct {
	// FlushInterval is the period of the background flush check in Run.
	FlushInterval time.Duration
	// ShutdownTimeout bounds the forced flush performed by Shutdown.
	ShutdownTimeout time.Duration
	// Now returns the current time; defaults to time.Now.
	Now func() time.Time
}

const (
	DefaultFlushInterval   = 5 * time.Second
	DefaultShutdownTimeout = 3 * time.Second
)

// Diagnostics is a point-in-time view of the flush machinery.
type Diagnostics struct {
	State               State
	Flushes             int
	LastFlushAt         time.Time
	LastError           error
	ConsecutiveFailures int
	Migration           migration.Report
}

// Cache is the Application State Cache. It is safe for concurrent use.
type Cache struct {
	gateway Gateway
	ids     idgen.Generator
	logger  logging.Logger
	opts    Options

	mu       sync.RWMutex
	phase    phase
	snap     models.Snapshot
	baseline []byte
	flushing bool
	diag     Diagnostics

	// sem admits one flush at a time; acquiring it honors ctx.
	sem    chan struct{}
	notify chan struct{}
}

// New builds an unloaded cache. Zero option fields take their defaults.
func New(g Gateway, ids idgen.Generator, logger logging.Logger, opts Options) *Cache {
	if opts.FlushInterval <= 0 {
		opts.FlushInterval = DefaultFlushInterval
	}
	if opts.ShutdownTimeout <= 0 {
		opts.ShutdownTimeout = DefaultShutdownTimeout
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Cache{
		gateway: g,
		ids:     ids,
		logger:  logger.With("module", "state"),
		opts:    opts,
		sem:     make(chan struct{}, 1),
		notify:  make(chan struct{}, 1),
	}
}

// Load fetches the Snapshot from the gateway, runs the legacy migrations and
// makes the cache usable. It succeeds at most once; a failed Load may be
// retried.
func (c *Cache) Load(ctx context.Context) error {
	c.mu.Lock()
	if c.phase != phaseNew {
		c.mu.Unlock()
		return common.ErrAlreadyLoaded
	}
	c.phase = phaseLoading
	c.mu.Unlock()

	snap, err := c.gateway.Load(ctx)
	if err != nil {
		c.mu.Lock()
		c.phase = phaseNew
		c.mu.Unlock()
		return fmt.Errorf("failed to load snapshot: %w", err)
	}

	stored, err := snap.Serialize()
	if err != nil {
		c.mu.Lock()
		c.phase = phaseNew
		c.mu.Unlock()
		return err
	}

	report := migration.Run(&snap, c.ids)
	baseline := stored
	if report.Changed() > 0 {
		c.logger.Info(ctx, "migrated legacy records", "changed", report.Changed())
		if err := c.persistMigrated(ctx, snap); err != nil {
			c.mu.Lock()
			c.phase = phaseNew
			c.mu.Unlock()
			return fmt.Errorf("failed to persist migrated records: %w", err)
		}
		// only ids changed, so this cannot fail where the first Serialize did not
		baseline, _ = snap.Serialize()
	}

	c.mu.Lock()
	c.snap = snap
	c.baseline = baseline
	c.diag.Migration = report
	c.phase = phaseReady
	c.mu.Unlock()

	c.logger.Info(ctx, "state loaded",
		"accounts", len(snap.Accounts), "transactions", len(snap.Transactions))
	return nil
}

// persistMigrated stores the ids assigned by the migrations before the cache
// accepts any mutation. The write is attempted twice.
func (c *Cache) persistMigrated(ctx context.Context, snap models.Snapshot) error {
	var err error
	for attempt := 1; attempt <= 2; attempt++ {
		if err = c.gateway.Flush(ctx, snap); err == nil {
			c.recordSuccess()
			return nil
		}
		c.logger.Error(ctx, "failed to persist migrated records", "attempt", attempt, "error", err)
		c.recordFailure(err)
		if ctx.Err() != nil {
			break
		}
	}
	return err
}

// State reports the current lifecycle state.
func (c *Cache) State() State {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.stateLocked()
}

func (c *Cache) stateLocked() State {
	switch {
	case c.phase == phaseNew:
		return Uninitialized
	case c.phase == phaseLoading:
		return Loading
	case c.flushing:
		return Flushing
	case c.dirtyLocked():
		return Dirty
	default:
		return Clean
	}
}

// dirtyLocked compares the current content with the last flushed baseline.
func (c *Cache) dirtyLocked() bool {
	data, err := c.snap.Serialize()
	if err != nil {
		return true
	}
	return !bytes.Equal(data, c.baseline)
}

// Diagnostics returns flush statistics.
func (c *Cache) Diagnostics() Diagnostics {
	c.mu.RLock()
	defer c.mu.RUnlock()
	d := c.diag
	d.State = c.stateLocked()
	return d
}

// Status forwards to the gateway diagnostics.
func (c *Cache) Status(ctx context.Context) models.DiagnosticInfo {
	return c.gateway.Status(ctx)
}

// Notify requests a flush from Run. It never blocks.
func (c *Cache) Notify() {
	select {
	case c.notify <- struct{}{}:
	default:
	}
}

// mutate applies fn to a copy of the Snapshot and installs the copy when fn
// succeeds, so a failed mutation has no effect.
func (c *Cache) mutate(fn func(s *models.Snapshot) error) error {
	c.mu.Lock()
	if c.phase != phaseReady {
		c.mu.Unlock()
		return common.ErrNotLoaded
	}
	next := c.snap.Clone()
	if err := fn(&next); err != nil {
		c.mu.Unlock()
		return err
	}
	c.snap = next
	dirty := c.dirtyLocked()
	c.mu.Unlock()

	if dirty {
		c.Notify()
	}
	return nil
}

// Flush writes the current Snapshot when it differs from the baseline.
func (c *Cache) Flush(ctx context.Context) error {
	return c.flush(ctx, false)
}

func (c *Cache) flush(ctx context.Context, force bool) error {
	select {
	case c.sem <- struct{}{}:
	case <-ctx.Done():
		return ctx.Err()
	}
	defer func() { <-c.sem }()

	c.mu.Lock()
	if c.phase != phaseReady {
		c.mu.Unlock()
		return common.ErrNotLoaded
	}
	snap := c.snap.Clone()
	data, err := snap.Serialize()
	if err != nil {
		c.mu.Unlock()
		return err
	}
	if !force && bytes.Equal(data, c.baseline) {
		c.mu.Unlock()
		return nil
	}
	c.flushing = true
	c.mu.Unlock()

	err = c.gateway.Flush(ctx, snap)

	c.mu.Lock()
	c.flushing = false
	if err == nil {
		c.baseline = data
	}
	c.mu.Unlock()

	if err != nil {
		c.recordFailure(err)
		return fmt.Errorf("flush failed: %w", err)
	}
	c.recordSuccess()
	return nil
}

func (c *Cache) recordFailure(err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.diag.LastError = err
	c.diag.ConsecutiveFailures++
}

func (c *Cache) recordSuccess() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.diag.Flushes++
	c.diag.LastFlushAt = c.opts.Now()
	c.diag.LastError = nil
	c.diag.ConsecutiveFailures = 0
}

// Run flushes after every mutation notification and on every FlushInterval
// tick while dirty, until ctx is done. Flush failures are logged only.
func (c *Cache) Run(ctx context.Context) error {
	ticker := time.NewTicker(c.opts.FlushInterval)
	defer ticker.Stop()

	c.logger.Debug(ctx, "flush scheduler started", "interval", c.opts.FlushInterval)

	for {
		select {
		case <-ctx.Done():
			c.logger.Debug(ctx, "flush scheduler stopped")
			return nil
		case <-c.notify:
			c.flushLogged(ctx)
		case <-ticker.C:
			if c.State() == Dirty {
				c.flushLogged(ctx)
			}
		}
	}
}

func (c *Cache) flushLogged(ctx context.Context) {
	if err := c.Flush(ctx); err != nil && ctx.Err() == nil {
		c.logger.Error(ctx, "background flush failed", "error", err,
			"consecutive_failures", c.Diagnostics().ConsecutiveFailures)
	}
}

// Shutdown performs the final forced flush, bounded by ShutdownTimeout.
// Nothing is written when the cache was never loaded.
func (c *Cache) Shutdown(ctx context.Context) error {
	c.mu.RLock()
	ready := c.phase == phaseReady
	c.mu.RUnlock()
	if !ready {
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, c.opts.ShutdownTimeout)
	defer cancel()

	if err := c.flush(ctx, true); err != nil {
		c.logger.Error(ctx, "shutdown flush failed", "error", err)
		return err
	}
	c.logger.Info(ctx, "shutdown flush completed")
	return nil
}
