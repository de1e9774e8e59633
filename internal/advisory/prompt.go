package advisory

import (
	"fmt"
	"sort"
	"strings"

	json "github.com/goccy/go-json"

	"github.com/horizonfin/horizon/internal/calculation"
	"github.com/horizonfin/horizon/internal/domain"
)

// systemContext renders the grounding prompt for one assist request: a field
// dump of the profile followed by a bounded sample of the projected timeline.
func systemContext(profile domain.Profile, timeline []domain.TimelineRow) string {
	var b strings.Builder

	b.WriteString("You are a financial planning assistant specialized in retirement advice.\n")
	b.WriteString("Use the following profile data and projections to answer the user's question clearly.\n\n")

	b.WriteString("Profile Information:\n")
	writeProfileSummary(&b, profile)

	b.WriteString("\nRetirement Projection Summary (partial):\n")
	for _, row := range calculation.SampleTimeline(timeline) {
		if raw, err := json.Marshal(row); err == nil {
			b.Write(raw)
			b.WriteByte('\n')
		}
	}

	b.WriteString(`
Provide a concise answer.
Avoid generic explanations or repeating the question.
Focus only on actionable, realistic advice related to this scenario.
If appropriate, use Markdown for light formatting (e.g., **bold**, bullet lists).
Answer in the same language as the question.

IMPORTANT: If the user asks for a specific number of items (e.g., "1 tip", "3 recommendations"), YOU MUST STRICTLY ADHERE TO THAT NUMBER. Do not provide more than requested.`)

	return strings.TrimSpace(b.String())
}

// writeProfileSummary lists the profile one field per line. The email is
// omitted; the model has no use for it.
func writeProfileSummary(b *strings.Builder, profile domain.Profile) {
	profile.Email = ""
	raw, err := json.Marshal(profile)
	if err != nil {
		return
	}
	var fields map[string]any
	if err := json.Unmarshal(raw, &fields); err != nil {
		return
	}
	for _, key := range sortedKeys(fields) {
		if key == "email" {
			continue
		}
		fmt.Fprintf(b, "- %s: %v\n", key, fields[key])
	}
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
