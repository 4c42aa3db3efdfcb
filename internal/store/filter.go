package store

import (
	"sort"
	"strings"
	"time"

	"github.com/mind-engage/quizhub/internal/quiz"
)

// ScoreBuckets are the histogram ranges used by stats and the results
// score filter, in display order.
var ScoreBuckets = []string{"0-20", "21-40", "41-60", "61-80", "81-100"}

// BucketFor places a score in its histogram bucket.
func BucketFor(score float64) string {
	switch {
	case score <= 20:
		return ScoreBuckets[0]
	case score <= 40:
		return ScoreBuckets[1]
	case score <= 60:
		return ScoreBuckets[2]
	case score <= 80:
		return ScoreBuckets[3]
	default:
		return ScoreBuckets[4]
	}
}

// filterResults applies ResultListOpts to an already-enriched result slice
// and sorts newest first. Both store implementations share it.
func filterResults(in []quiz.Result, opts ResultListOpts, now time.Time) []quiz.Result {
	out := make([]quiz.Result, 0, len(in))
	for _, r := range in {
		if opts.TestCode != "" && r.TestCode != opts.TestCode {
			continue
		}
		if opts.ScoreRange != "" && BucketFor(r.Score) != opts.ScoreRange {
			continue
		}
		if opts.DateRange != "" && !inDateRange(r.SubmittedAt, opts.DateRange, now) {
			continue
		}
		if opts.Search != "" && !strings.Contains(strings.ToLower(r.UserName), strings.ToLower(opts.Search)) {
			continue
		}
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].SubmittedAt > out[j].SubmittedAt })
	if opts.Limit > 0 && len(out) > opts.Limit {
		out = out[:opts.Limit]
	}
	return out
}

func inDateRange(submittedAt, rng string, now time.Time) bool {
	t, err := time.Parse(time.RFC3339, submittedAt)
	if err != nil {
		return false
	}
	switch rng {
	case "today":
		y1, m1, d1 := now.Date()
		y2, m2, d2 := t.Date()
		return y1 == y2 && m1 == m2 && d1 == d2
	case "week":
		return now.Sub(t) <= 7*24*time.Hour
	case "month":
		return now.Sub(t) <= 30*24*time.Hour
	default:
		return true
	}
}
