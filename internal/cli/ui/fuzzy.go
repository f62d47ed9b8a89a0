package ui

import (
	"sort"
	"strings"
)

// MaxDistance is the largest edit distance still offered as a suggestion.
const MaxDistance = 3

// FindSimilar returns up to three candidates close to target, closest first.
func FindSimilar(target string, candidates []string) []string {
	type match struct {
		value    string
		distance int
	}
	var ms []match
	t := strings.ToLower(target)
	for _, c := range candidates {
		if d := LevenshteinDistance(t, strings.ToLower(c)); d <= MaxDistance {
			ms = append(ms, match{value: c, distance: d})
		}
	}
	sort.SliceStable(ms, func(i, j int) bool { return ms[i].distance < ms[j].distance })
	out := make([]string, 0, 3)
	for i := 0; i < len(ms) && i < 3; i++ {
		out = append(out, ms[i].value)
	}
	return out
}

// LevenshteinDistance counts single-rune edits between a and b.
func LevenshteinDistance(a, b string) int {
	ra, rb := []rune(a), []rune(b)
	prev := make([]int, len(rb)+1)
	cur := make([]int, len(rb)+1)
	for j := range prev {
		prev[j] = j
	}
	for i := 1; i <= len(ra); i++ {
		cur[0] = i
		for j := 1; j <= len(rb); j++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}
			cur[j] = min(prev[j]+1, cur[j-1]+1, prev[j-1]+cost)
		}
		prev, cur = cur, prev
	}
	return prev[len(rb)]
}
