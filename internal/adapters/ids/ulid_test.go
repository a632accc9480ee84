package ids

import (
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/bnema/notebook-cli/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixedClock struct {
	now time.Time
}

func (c fixedClock) Now() time.Time {
	return c.now
}

func TestNewAttachmentIDIsPrefixedAndUniqueWithinSameMillisecond(t *testing.T) {
	t.Parallel()

	gen := NewULIDGenerator(fixedClock{now: time.Date(2026, 10, 17, 9, 0, 0, 0, time.UTC)})

	const count = 500
	generated := make([]string, 0, count)
	seen := make(map[domain.AttachmentID]struct{}, count)
	for i := 0; i < count; i++ {
		id := gen.NewAttachmentID()
		require.True(t, strings.HasPrefix(string(id), attachmentPrefix))
		_, dup := seen[id]
		require.False(t, dup, "duplicate id %s", id)
		seen[id] = struct{}{}
		generated = append(generated, string(id))
	}

	assert.True(t, sort.StringsAreSorted(generated))
}

func TestNewAttachmentIDIsSafeForConcurrentUse(t *testing.T) {
	t.Parallel()

	gen := NewULIDGenerator(nil)

	var (
		mu   sync.Mutex
		wg   sync.WaitGroup
		seen = map[domain.AttachmentID]struct{}{}
	)
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				id := gen.NewAttachmentID()
				mu.Lock()
				seen[id] = struct{}{}
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Len(t, seen, 400)
}
