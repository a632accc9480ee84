// Package ids generates collision-resistant identifiers for client-side records.
package ids

import (
	"crypto/rand"
	"sync"

	"github.com/bnema/notebook-cli/internal/domain"
	"github.com/bnema/notebook-cli/internal/ports"
	"github.com/oklog/ulid/v2"
)

const attachmentPrefix = "att_"

// ULIDGenerator hands out lexicographically sortable ULIDs. Entropy is
// monotonic, so ids minted within the same millisecond still sort in
// creation order.
type ULIDGenerator struct {
	mu      sync.Mutex
	entropy *ulid.MonotonicEntropy
	clock   ports.Clock
}

var _ ports.IDGenerator = (*ULIDGenerator)(nil)

func NewULIDGenerator(clock ports.Clock) *ULIDGenerator {
	if clock == nil {
		clock = ports.SystemClock{}
	}

	return &ULIDGenerator{
		entropy: ulid.Monotonic(rand.Reader, 0),
		clock:   clock,
	}
}

func (g *ULIDGenerator) NewAttachmentID() domain.AttachmentID {
	g.mu.Lock()
	defer g.mu.Unlock()

	id := ulid.MustNew(ulid.Timestamp(g.clock.Now()), g.entropy)
	return domain.AttachmentID(attachmentPrefix + id.String())
}
