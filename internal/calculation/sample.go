package calculation

import "github.com/horizonfin/horizon/internal/domain"

// sampleHead, sampleMiddle and sampleTail define the fixed sampling policy
// for handing a long timeline to an external summarizer: the first five
// rows, ten evenly spaced rows from the middle region, and the last five.
const (
	sampleHead   = 5
	sampleMiddle = 10
	sampleTail   = 5
)

// SampleTimeline bounds a timeline for advisory context. Timelines of at
// most head+middle+tail rows pass through untouched; longer ones are
// reduced per the fixed policy, preserving order.
func SampleTimeline(timeline []domain.TimelineRow) []domain.TimelineRow {
	total := len(timeline)
	if total <= sampleHead+sampleMiddle+sampleTail {
		return timeline
	}

	sampled := make([]domain.TimelineRow, 0, sampleHead+sampleMiddle+sampleTail)
	sampled = append(sampled, timeline[:sampleHead]...)

	middleStart := sampleHead
	middleEnd := total - sampleTail
	step := (middleEnd - middleStart) / sampleMiddle
	if step < 1 {
		step = 1
	}
	count := 0
	for i := middleStart; i < middleEnd && count < sampleMiddle; i += step {
		sampled = append(sampled, timeline[i])
		count++
	}

	sampled = append(sampled, timeline[total-sampleTail:]...)
	return sampled
}
