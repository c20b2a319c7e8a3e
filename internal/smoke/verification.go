package smoke

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/google/go-cmp/cmp"
)

// verify compares every character seen for a subject with the first one and
// returns the number of subjects with differing answers.
func verify(w io.Writer, seen [][]json.RawMessage, verbose bool) int {
	fmt.Fprintln(w, "🔍 Verifying determinism...")

	mismatches := 0
	for i, answers := range seen {
		if len(answers) < 2 {
			continue
		}
		want := decode(answers[0])
		for _, raw := range answers[1:] {
			if diff := cmp.Diff(want, decode(raw)); diff != "" {
				mismatches++
				if verbose {
					fmt.Fprintf(w, "⚠️  subject %d differs (-first +later):\n%s\n", i, diff)
				}
				break
			}
		}
	}

	if mismatches == 0 {
		fmt.Fprintln(w, "✅ Every subject produced the same character")
	}
	return mismatches
}

func decode(raw json.RawMessage) any {
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return string(raw)
	}
	return v
}

// displayStats prints the final run statistics.
func displayStats(w io.Writer, s *Stats) {
	rate := 0.0
	if s.Duration > 0 {
		rate = float64(s.RequestsSent) / s.Duration.Seconds()
	}
	fmt.Fprintf(w, `📊 Smoke run statistics:
   Subjects:   %d
   Requests:   %d (ok: %d, failed: %d, cached: %d)
   Batches:    %d
   Mismatches: %d
   Duration:   %s (%.1f req/s)
`, s.SubjectsGenerated, s.RequestsSent, s.RequestsOK, s.RequestsFailed, s.CacheHits,
		s.BatchRequests, s.Mismatches, s.Duration.Round(time.Millisecond), rate)
}
