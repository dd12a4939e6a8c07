// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package preamble removes the OpenEvidence UI boilerplate that precedes the
// answer in a web-clipper export, keeping the clipper's metadata block.
package preamble

import (
	"regexp"
	"strings"
)

const (
	// separator delimits the metadata block.
	separator = "---"

	// finishedMarker is the UI line printed just before the answer.
	finishedMarker = "Finished researching"
)

// escapedCitationRe matches the start of an escaped citation like \[12.
var escapedCitationRe = regexp.MustCompile(`\\\[\d+`)

// startStrategy locates the first content line at or after from. It reports
// false when it finds nothing.
type startStrategy func(lines []string, from int) (int, bool)

// startStrategies are tried in priority order.
var startStrategies = []startStrategy{
	afterFinishedMarker,
	firstDeepHeading,
	firstEscapedCitation,
}

// Strip returns text with the boilerplate removed. The metadata block, when
// present, is kept verbatim at the top. A redundant "### Title" line at the
// content start is dropped.
func Strip(text string) string {
	lines := strings.Split(text, "\n")

	metaStart, metaEnd := MetadataBounds(lines)
	var meta []string
	searchStart := 0
	if metaEnd >= 0 {
		meta = lines[metaStart : metaEnd+1]
		searchStart = metaEnd + 1
	}

	start := ContentStart(lines, searchStart)
	if start < len(lines) && strings.HasPrefix(strings.TrimSpace(lines[start]), "### ") {
		start++
	}

	out := make([]string, 0, len(meta)+len(lines)-start)
	out = append(out, meta...)
	if start < len(lines) {
		out = append(out, lines[start:]...)
	}
	return strings.Join(out, "\n")
}

// MetadataBounds returns the line indices of the first two separator lines.
// Both are -1 unless a complete pair exists.
func MetadataBounds(lines []string) (start, end int) {
	start, end = -1, -1
	for i, line := range lines {
		if strings.TrimSpace(line) != separator {
			continue
		}
		if start == -1 {
			start = i
			continue
		}
		return start, i
	}
	return -1, -1
}

// ContentStart returns the index of the first content line at or after from,
// falling back to from itself when no strategy matches.
func ContentStart(lines []string, from int) int {
	for _, s := range startStrategies {
		if i, ok := s(lines, from); ok {
			return i
		}
	}
	return from
}

// afterFinishedMarker finds the first marker line and returns the next
// non-blank line after it.
func afterFinishedMarker(lines []string, from int) (int, bool) {
	for i := from; i < len(lines); i++ {
		if !strings.Contains(lines[i], finishedMarker) {
			continue
		}
		for j := i + 1; j < len(lines); j++ {
			if strings.TrimSpace(lines[j]) != "" {
				return j, true
			}
		}
		return 0, false
	}
	return 0, false
}

// firstDeepHeading finds the first heading of depth four or more.
func firstDeepHeading(lines []string, from int) (int, bool) {
	for i := from; i < len(lines); i++ {
		if strings.HasPrefix(strings.TrimSpace(lines[i]), "####") {
			return i, true
		}
	}
	return 0, false
}

// firstEscapedCitation finds the first line carrying an escaped citation.
func firstEscapedCitation(lines []string, from int) (int, bool) {
	for i := from; i < len(lines); i++ {
		if escapedCitationRe.MatchString(lines[i]) {
			return i, true
		}
	}
	return 0, false
}
