package session

import "strings"

// defaultLocationKeywords trigger a location lookup when they appear in the
// user's text. Matching is case-insensitive substring containment.
var defaultLocationKeywords = []string{
	"near me",
	"nearby",
	"close to me",
	"in my area",
	"around here",
	"local therapist",
	"local support",
	"where can i find",
}

// LocationIntent is the pluggable predicate deciding whether a submission
// needs the user's position resolved.
type LocationIntent func(text string) bool

// NewLocationIntent builds a keyword predicate. An empty keyword list uses
// the defaults.
func NewLocationIntent(keywords []string) LocationIntent {
	if len(keywords) == 0 {
		keywords = defaultLocationKeywords
	}
	lowered := make([]string, len(keywords))
	for i, k := range keywords {
		lowered[i] = strings.ToLower(k)
	}
	return func(text string) bool {
		t := strings.ToLower(text)
		for _, k := range lowered {
			if strings.Contains(t, k) {
				return true
			}
		}
		return false
	}
}
