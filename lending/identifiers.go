package lending

import (
	"math/rand"
	"sync"

	"github.com/google/uuid"
)

// Identifiers are plain alias types, they carry no validation of their own.

// ItemIdentifier is the externally assigned catalog code of an Item, e.g. an ISBN.
type ItemIdentifier = string

// MemberID is the system-generated identifier of a Member.
type MemberID = uuid.UUID

// LoanID is the system-generated identifier of a Loan.
type LoanID = uuid.UUID

// IDGenerator produces fresh unique identifiers for members and loans.
type IDGenerator interface {
	NewID() uuid.UUID
}

// RandomIDGenerator produces random (version 4) UUIDs.
type RandomIDGenerator struct{}

// NewID returns a new random UUID.
func (RandomIDGenerator) NewID() uuid.UUID {
	return uuid.New()
}

// SeededIDGenerator produces a reproducible sequence of version 4 UUIDs from a seed.
// It is safe for concurrent use.
type SeededIDGenerator struct {
	mu  sync.Mutex
	rnd *rand.Rand
}

// NewSeededIDGenerator creates a SeededIDGenerator. Two generators with the same seed
// yield the same sequence of identifiers.
func NewSeededIDGenerator(seed int64) *SeededIDGenerator {
	return &SeededIDGenerator{
		rnd: rand.New(rand.NewSource(seed)), //nolint:gosec // reproducibility is the point here
	}
}

// NewID returns the next UUID of the sequence.
func (g *SeededIDGenerator) NewID() uuid.UUID {
	g.mu.Lock()
	defer g.mu.Unlock()

	// rand.Rand.Read never fails
	return uuid.Must(uuid.NewRandomFromReader(g.rnd))
}
