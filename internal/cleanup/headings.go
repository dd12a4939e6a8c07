// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package cleanup

import (
	"regexp"
	"sort"
	"strings"
)

// headingRe matches a single-line heading of depth 2 to 6.
var headingRe = regexp.MustCompile(`(?m)^(#{2,6})[ \t]+(.+)$`)

// maxDepth is the deepest heading markdown supports.
const maxDepth = 6

// NormalizeHeadings remaps heading depths so the shallowest one present
// becomes depth 2. Distinct depths keep their rank: depths {4,5} become
// {2,3}. Text whose shallowest heading is already depth 2 is returned as is.
func NormalizeHeadings(text string) string {
	depths := HeadingDepths(text)
	if len(depths) == 0 || depths[0] <= 2 {
		return text
	}

	remap := make(map[int]int, len(depths))
	for i, d := range depths {
		remap[d] = min(2+i, maxDepth)
	}

	return headingRe.ReplaceAllStringFunc(text, func(line string) string {
		m := headingRe.FindStringSubmatch(line)
		depth, ok := remap[len(m[1])]
		if !ok {
			depth = len(m[1])
		}
		return strings.Repeat("#", depth) + " " + m[2]
	})
}

// HeadingDepths returns the sorted distinct depths (2 to 6) of the headings
// in text.
func HeadingDepths(text string) []int {
	seen := make(map[int]bool)
	var depths []int
	for _, m := range headingRe.FindAllStringSubmatch(text, -1) {
		d := len(m[1])
		if !seen[d] {
			seen[d] = true
			depths = append(depths, d)
		}
	}
	sort.Ints(depths)
	return depths
}
