// Package search looks up variable names by pattern.
package search

import (
	"sort"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
)

// Search returns the names whose lower-cased form contains the lower-cased
// pattern, in input order. An empty pattern matches every name.
func Search(pattern string, names []string) []string {
	p := strings.ToLower(pattern)
	out := make([]string, 0, len(names))
	for _, name := range names {
		if strings.Contains(strings.ToLower(name), p) {
			out = append(out, name)
		}
	}
	return out
}

// FuzzySearch returns the names that contain the pattern's characters in
// order, ignoring case and diacritics. Closer matches come first and ties
// keep input order. An empty pattern matches every name in input order.
func FuzzySearch(pattern string, names []string) []string {
	if pattern == "" {
		return append(make([]string, 0, len(names)), names...)
	}

	ranks := fuzzy.RankFindNormalizedFold(pattern, names)
	sort.SliceStable(ranks, func(i, j int) bool {
		if ranks[i].Distance != ranks[j].Distance {
			return ranks[i].Distance < ranks[j].Distance
		}
		return ranks[i].OriginalIndex < ranks[j].OriginalIndex
	})

	out := make([]string, 0, len(ranks))
	for _, r := range ranks {
		out = append(out, r.Target)
	}
	return out
}

// Closest returns the best fuzzy match for target, or "" when nothing
// matches.
func Closest(target string, names []string) string {
	if target == "" || len(names) == 0 {
		return ""
	}
	if matches := FuzzySearch(target, names); len(matches) > 0 {
		return matches[0]
	}
	return ""
}
