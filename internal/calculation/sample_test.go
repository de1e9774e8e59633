package calculation

import (
	"testing"

	"github.com/horizonfin/horizon/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func makeTimeline(n int) []domain.TimelineRow {
	rows := make([]domain.TimelineRow, n)
	for i := range rows {
		rows[i] = domain.TimelineRow{Year: i + 1}
	}
	return rows
}

func TestSampleTimelineShortPassthrough(t *testing.T) {
	for _, n := range []int{0, 1, 19, 20} {
		rows := makeTimeline(n)
		assert.Len(t, SampleTimeline(rows), n, "length %d passes through", n)
	}
}

func TestSampleTimelineLongReduced(t *testing.T) {
	rows := makeTimeline(41)
	sampled := SampleTimeline(rows)
	require.Len(t, sampled, 20)

	// First five and last five are kept verbatim.
	for i := 0; i < 5; i++ {
		assert.Equal(t, i+1, sampled[i].Year)
		assert.Equal(t, 41-4+i, sampled[15+i].Year)
	}

	// Everything stays in chronological order with no duplicates.
	for i := 1; i < len(sampled); i++ {
		assert.Greater(t, sampled[i].Year, sampled[i-1].Year)
	}
}

func TestSampleTimelineBarelyOver(t *testing.T) {
	sampled := SampleTimeline(makeTimeline(21))
	require.Len(t, sampled, 20)
	for i := 1; i < len(sampled); i++ {
		assert.Greater(t, sampled[i].Year, sampled[i-1].Year)
	}
}
