// Package catalog holds the pure tour-catalog logic: filtering and pagination.
// Nothing in here touches the store or the network, so it is trivially testable.
package catalog

import (
	"strings"

	"github.com/abinitio185/revrom/internal/models"
)

// All is the sentinel value meaning "do not filter on this criterion".
const All = "all"

// Duration buckets offered by the catalog filter dropdown.
// Bounds are inclusive; MaxDuration caps the open-ended "15+" bucket.
const MaxDuration = 1 << 30

var durationBuckets = map[string][2]int{
	"1-7":  {1, 7},
	"8-14": {8, 14},
	"15+":  {15, MaxDuration},
}

// DurationBuckets lists the bucket keys in display order.
func DurationBuckets() []string {
	return []string{"1-7", "8-14", "15+"}
}

// Criteria is one set of catalog filters. The zero value (empty strings)
// matches everything, which is what "clear filters" resets to.
type Criteria struct {
	Search      string
	Destination string
	Duration    string
	Difficulty  string
}

// IsZero reports whether no criterion is active.
func (c Criteria) IsZero() bool {
	return c.Search == "" &&
		(c.Destination == "" || c.Destination == All) &&
		(c.Duration == "" || c.Duration == All) &&
		(c.Difficulty == "" || c.Difficulty == All)
}

// FilterTours returns the tours satisfying every active criterion, in their
// original order. An empty result is not an error; the caller renders a
// "no results" state with a clear-filters affordance.
func FilterTours(tours []models.Tour, c Criteria) []models.Tour {
	out := make([]models.Tour, 0, len(tours))
	for _, t := range tours {
		if matchSearch(t, c.Search) &&
			matchEquality(t.Destination, c.Destination) &&
			matchDuration(t.Duration, c.Duration) &&
			matchEquality(t.Difficulty, c.Difficulty) {
			out = append(out, t)
		}
	}
	return out
}

// Destinations returns the distinct destinations across tours, in first-seen
// order, for populating the filter dropdown and the nav destination menu.
func Destinations(tours []models.Tour) []string {
	seen := make(map[string]bool, len(tours))
	var out []string
	for _, t := range tours {
		if t.Destination != "" && !seen[t.Destination] {
			seen[t.Destination] = true
			out = append(out, t.Destination)
		}
	}
	return out
}

func matchSearch(t models.Tour, query string) bool {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return true
	}
	for _, field := range []string{t.Title, t.Destination, t.Route, t.ShortDesc} {
		if strings.Contains(strings.ToLower(field), q) {
			return true
		}
	}
	return false
}

func matchEquality(value, want string) bool {
	return want == "" || want == All || value == want
}

func matchDuration(days int, bucket string) bool {
	if bucket == "" || bucket == All {
		return true
	}
	bounds, ok := durationBuckets[bucket]
	if !ok {
		// Unknown bucket from a hand-edited query string: treat as no filter.
		return true
	}
	return days >= bounds[0] && days <= bounds[1]
}
