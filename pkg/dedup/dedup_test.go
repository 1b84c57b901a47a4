package dedup

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTracker(t *testing.T) {
	t.Run("an unmarked id has not been seen", func(t *testing.T) {
		tracker := NewTracker()
		assert.False(t, tracker.HasBeenSeen(KindLocation, "abc"))
	})

	t.Run("marking an id makes it seen for its kind only", func(t *testing.T) {
		tracker := NewTracker()
		tracker.MarkSeen(KindLocation, "abc")

		assert.True(t, tracker.HasBeenSeen(KindLocation, "abc"))
		assert.False(t, tracker.HasBeenSeen(KindPhoneNumber, "abc"))
	})

	t.Run("counts distinct ids per kind", func(t *testing.T) {
		tracker := NewTracker()
		tracker.MarkSeen(KindTaxonomyTerm, "a")
		tracker.MarkSeen(KindTaxonomyTerm, "b")
		tracker.MarkSeen(KindTaxonomyTerm, "a")

		assert.Equal(t, 2, tracker.SeenCount(KindTaxonomyTerm))
		assert.Equal(t, 0, tracker.SeenCount(KindLocation))
	})
}
