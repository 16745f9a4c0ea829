// Package idgen produces opaque, globally unique identifiers for accounts and
// transactions.
//
// The primary strategy is a random (version 4) UUID read from the operating
// system's secure random source. When that source fails, the generator degrades
// to a ULID built from the current time and a monotonic pseudo-random entropy
// stream, which keeps collisions practically impossible within one
// installation. NewID never fails.
package idgen

import (
	"fmt"
	"io"
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/oklog/ulid/v2"
)

// Generator returns a new unique identifier on every call.
type Generator interface {
	NewID() string
}

// Func adapts a plain function to the Generator interface.
type Func func() string

// NewID calls f.
func (f Func) NewID() string { return f() }

// Default is the production Generator. It is safe for concurrent use.
type Default struct {
	mu      sync.Mutex
	entropy io.Reader
	rnd     *rand.Rand

	// test seams
	newRandom func() (uuid.UUID, error)
	now       func() time.Time
}

// New returns a Default generator.
func New() *Default {
	rnd := rand.New(rand.NewSource(time.Now().UnixNano()))
	return &Default{
		entropy:   ulid.Monotonic(rnd, 0),
		rnd:       rnd,
		newRandom: uuid.NewRandom,
		now:       time.Now,
	}
}

// NewID returns a random UUID string, or a time-ordered ULID when the secure
// random source is unavailable.
func (g *Default) NewID() string {
	if id, err := g.newRandom(); err == nil {
		return id.String()
	}
	return g.fallback()
}

func (g *Default) fallback() string {
	g.mu.Lock()
	defer g.mu.Unlock()

	now := g.now()
	id, err := ulid.New(ulid.Timestamp(now), g.entropy)
	if err == nil {
		return id.String()
	}
	// monotonic entropy overflowed within one millisecond
	return fmt.Sprintf("%x-%016x", now.UnixNano(), g.rnd.Uint64())
}
