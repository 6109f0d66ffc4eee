// Package ident generates transaction identifiers. The source is injected
// into the parser and processor so tests can assert exact IDs.
package ident

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Source produces unique transaction identifiers.
type Source interface {
	Next() string
}

// Sequence issues IDs of the form TX-<unix-millis>-<counter>, matching the
// statement-import convention. The clock is injectable; a nil clock uses
// wall time.
type Sequence struct {
	Now func() time.Time

	mu sync.Mutex
	n  int
}

// NewSequence returns a wall-clock backed Sequence.
func NewSequence() *Sequence {
	return &Sequence{Now: time.Now}
}

// Next returns the next identifier in the sequence.
func (s *Sequence) Next() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.n++
	now := time.Now
	if s.Now != nil {
		now = s.Now
	}
	return fmt.Sprintf("TX-%d-%04d", now().UnixMilli(), s.n)
}

// UUIDSource issues random UUIDv4 identifiers for callers that prefer
// globally unique IDs over session-scoped sequences.
type UUIDSource struct{}

func (UUIDSource) Next() string { return uuid.NewString() }
