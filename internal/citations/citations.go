// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package citations rewrites OpenEvidence inline citation notation into
// footnote markers. Citations arrive as escaped bracket groups such as
// \[7-9\], often prefixed by a source name and a "+ N" count and sometimes
// by a favicon image. Each group expands to one [^N] marker per number.
package citations

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var (
	// faviconRe matches the favicon images OpenEvidence places before source names.
	faviconRe = regexp.MustCompile(`!\[\]\(https://www\.google\.com/s2/favicons\?domain=[^)]+\)`)

	// namedCitationRe matches a source name of one to six words, an optional
	// "+ N" count, and one or more escaped bracket groups.
	namedCitationRe = regexp.MustCompile(`([A-Z][A-Za-z]*(?:\s+[A-Za-z]+){0,5})(?:\s*\+\s*\d+)?\s*((?:\\\[\d+(?:-\d+)?\\\])+)`)

	// bracketRunRe matches one or more escaped bracket groups with no name.
	bracketRunRe = regexp.MustCompile(`(?:\\\[\d+(?:-\d+)?\\\])+`)

	// bracketGroupRe captures the contents of a single escaped bracket group.
	bracketGroupRe = regexp.MustCompile(`\\\[(\d+(?:-\d+)?)\\\]`)

	// openBracketRe matches an escaped open bracket and its digits.
	openBracketRe = regexp.MustCompile(`\\\[(\d+)`)

	// simpleBracketRe matches a single \[N\].
	simpleBracketRe = regexp.MustCompile(`\\\[(\d+)\\\]`)

	// adjacentMarkersRe matches whitespace between two footnote markers.
	adjacentMarkersRe = regexp.MustCompile(`\]\s*\[\^`)

	// multiSpaceRe matches runs of two or more spaces.
	multiSpaceRe = regexp.MustCompile(`  +`)
)

// Pass is one ordered rewrite of the citation normalizer.
type Pass struct {
	Name  string
	Apply func(string) string
}

// Passes lists the normalizer rewrites in the order they must run. Later
// passes rely on earlier ones having consumed the longer notations.
var Passes = []Pass{
	{Name: "remove favicons", Apply: RemoveFavicons},
	{Name: "named citations", Apply: rewriteNamed},
	{Name: "standalone brackets", Apply: rewriteStandalone},
	{Name: "incomplete brackets", Apply: rewriteIncomplete},
	{Name: "leftover brackets", Apply: rewriteLeftover},
	{Name: "normalize spacing", Apply: normalizeSpacing},
}

// Normalize runs every pass over text and returns the rewritten text.
// Reference numbers are copied verbatim; nothing is renumbered.
func Normalize(text string) string {
	for _, p := range Passes {
		text = p.Apply(text)
	}
	return text
}

// RemoveFavicons deletes favicon image markers.
func RemoveFavicons(text string) string {
	return faviconRe.ReplaceAllString(text, "")
}

// maxRangeSpan bounds how many numbers one range may expand to.
const maxRangeSpan = 1000

// ParseReferenceNumbers expands "7-9" to [7 8 9] and "7" to [7]. Anything
// else, including a descending range or one spanning more than
// maxRangeSpan numbers, yields nil.
func ParseReferenceNumbers(s string) []int {
	s = strings.TrimSpace(s)
	if lo, hi, ok := strings.Cut(s, "-"); ok {
		start, err1 := parseDigits(lo)
		end, err2 := parseDigits(hi)
		if err1 != nil || err2 != nil || end < start || end-start >= maxRangeSpan {
			return nil
		}
		nums := make([]int, 0, end-start+1)
		for n := start; n <= end; n++ {
			nums = append(nums, n)
		}
		return nums
	}
	n, err := parseDigits(s)
	if err != nil {
		return nil
	}
	return []int{n}
}

// parseDigits accepts only ASCII digit strings.
func parseDigits(s string) (int, error) {
	if s == "" {
		return 0, fmt.Errorf("empty number")
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return 0, fmt.Errorf("invalid number %q", s)
		}
	}
	return strconv.Atoi(s)
}

// ExpandGroups returns every reference number in a run of escaped bracket
// groups, left to right. Order is kept and duplicates are not removed.
func ExpandGroups(run string) []int {
	var nums []int
	for _, m := range bracketGroupRe.FindAllStringSubmatch(run, -1) {
		nums = append(nums, ParseReferenceNumbers(m[1])...)
	}
	return nums
}

// Markers formats numbers as space-separated footnote markers.
func Markers(nums []int) string {
	parts := make([]string, len(nums))
	for i, n := range nums {
		parts[i] = Marker(n)
	}
	return strings.Join(parts, " ")
}

// Marker formats a single footnote marker.
func Marker(n int) string {
	return "[^" + strconv.Itoa(n) + "]"
}

// rewriteNamed replaces the source name, count and bracket groups with
// markers. No space is inserted; markers attach to the preceding text.
func rewriteNamed(text string) string {
	return namedCitationRe.ReplaceAllStringFunc(text, func(match string) string {
		m := namedCitationRe.FindStringSubmatch(match)
		if nums := ExpandGroups(m[2]); len(nums) > 0 {
			return Markers(nums)
		}
		return match
	})
}

func rewriteStandalone(text string) string {
	return bracketRunRe.ReplaceAllStringFunc(text, func(match string) string {
		if nums := ExpandGroups(match); len(nums) > 0 {
			return Markers(nums)
		}
		return match
	})
}

// rewriteIncomplete turns an escaped open bracket whose digits are not
// followed by "]" into a single marker.
func rewriteIncomplete(text string) string {
	locs := openBracketRe.FindAllStringSubmatchIndex(text, -1)
	if len(locs) == 0 {
		return text
	}
	var b strings.Builder
	last := 0
	for _, loc := range locs {
		if loc[1] < len(text) && text[loc[1]] == ']' {
			continue
		}
		b.WriteString(text[last:loc[0]])
		b.WriteString("[^")
		b.WriteString(text[loc[2]:loc[3]])
		b.WriteString("]")
		last = loc[1]
	}
	b.WriteString(text[last:])
	return b.String()
}

func rewriteLeftover(text string) string {
	return simpleBracketRe.ReplaceAllString(text, "[^$1]")
}

// normalizeSpacing puts exactly one space between adjacent markers and
// collapses runs of spaces.
func normalizeSpacing(text string) string {
	text = adjacentMarkersRe.ReplaceAllString(text, "] [^")
	return multiSpaceRe.ReplaceAllString(text, " ")
}
