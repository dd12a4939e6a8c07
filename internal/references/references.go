// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package references turns the verbose OpenEvidence reference list into
// compact footnote definitions.
//
// The exported list numbers every entry "1." on its own line, so "1." is
// used as a fixed split token for every entry boundary. If the export ever
// switches to real sequential numbering this splitting will stop working.
package references

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"github.com/pdiddy/clipnote/internal/citations"
	"github.com/pdiddy/clipnote/internal/urlclean"
	"github.com/pdiddy/clipnote/pkg/types"
)

// Heading introduces the compact footnote list.
const Heading = "# References"

// unknownJournal is the journal line used when no candidate line exists.
const unknownJournal = "Unknown Journal."

var (
	// listStartRe finds the first "1." line, optionally preceded by an
	// empty ### heading.
	listStartRe = regexp.MustCompile(`(?m)(###\s*\n+)?^1\.\s*$`)

	// entrySplitRe splits the list at every "1." line.
	entrySplitRe = regexp.MustCompile(`(?m)^1\.\s*$`)

	// linkOpenRe matches "[title](" of the first markdown link.
	linkOpenRe = regexp.MustCompile(`\[([^\]]+)\]\(`)

	// faviconRe matches favicon images anywhere in an entry.
	faviconRe = regexp.MustCompile(`!\[\]\(https://www\.google\.com/s2/favicons[^)]+\)`)

	// journalLineRe matches "Journal. 2020. Authors" shaped lines.
	journalLineRe = regexp.MustCompile(`\.\s*(19|20)\d{2}\.\s+[A-Z]`)

	// guidelineSuffixRe matches a trailing "Guideline" label.
	guidelineSuffixRe = regexp.MustCompile(`\.?\s*Guideline\s*$`)

	// yearRe matches a 4-digit year (19xx or 20xx).
	yearRe = regexp.MustCompile(`\b(19|20)\d{2}\b`)

	pubmedRe = regexp.MustCompile(`pubmed\.ncbi\.nlm\.nih\.gov/(\d+)`)
	pmcRe    = regexp.MustCompile(`ncbi\.nlm\.nih\.gov/pmc/articles/(PMC\d+)`)
)

// Restructure replaces the verbose reference list in text with a
// "# References" heading followed by footnote definitions. Text before the
// list is kept (right-trimmed). Entries without a usable link are dropped
// without consuming a number; if none parse, only the body is returned.
func Restructure(text string) string {
	loc := listStartRe.FindStringIndex(text)
	if loc == nil {
		return text
	}

	body := strings.TrimRightFunc(text[:loc[0]], unicode.IsSpace)
	entries := ParseList(text[loc[0]:])
	if len(entries) == 0 {
		return body
	}

	defs := make([]string, len(entries))
	for i, e := range entries {
		defs[i] = Footnote(e)
	}
	return body + "\n\n" + Heading + "\n" + strings.Join(defs, "\n\n") + "\n"
}

// ParseList splits a verbose list into entries and parses each one.
// Numbers are assigned sequentially to successful entries only.
func ParseList(list string) []types.ReferenceEntry {
	var entries []types.ReferenceEntry
	for _, raw := range entrySplitRe.Split(list, -1) {
		if strings.TrimSpace(raw) == "" {
			continue
		}
		entry, ok := ParseEntry(raw)
		if !ok {
			continue
		}
		entry.Number = len(entries) + 1
		entries = append(entries, entry)
	}
	return entries
}

// ParseEntry extracts title, URL, journal, year and authors from one
// verbose entry. It reports false when the entry has no link or an empty URL.
// The returned entry has Number zero.
func ParseEntry(raw string) (types.ReferenceEntry, bool) {
	m := linkOpenRe.FindStringSubmatchIndex(raw)
	if m == nil {
		return types.ReferenceEntry{}, false
	}
	title := strings.TrimSpace(raw[m[2]:m[3]])

	urlStart := m[1]
	urlEnd := LinkEnd(raw, urlStart)
	if urlEnd <= urlStart {
		return types.ReferenceEntry{}, false
	}
	url := urlclean.Clean(strings.TrimSpace(raw[urlStart:urlEnd]))

	cleaned := faviconRe.ReplaceAllString(raw, "")
	line := findJournalLine(strings.Split(cleaned, "\n"), title)
	line = guidelineSuffixRe.ReplaceAllString(line, "")
	journal, year, authors := SplitJournalLine(line)

	kind, id := classifyLink(url)
	return types.ReferenceEntry{
		Authors:    strings.TrimRight(authors, "."),
		Title:      strings.TrimRight(title, "."),
		Journal:    strings.TrimRight(journal, "."),
		Year:       year,
		URL:        url,
		LinkKind:   kind,
		Identifier: id,
	}, true
}

// LinkEnd returns the index of the ")" closing a link URL that starts at
// start, counting nested parentheses so identifiers such as
// S0735-1097(15)00714-7 stay intact. A newline reached at the outer level
// ends the URL there. If neither happens, start is returned.
func LinkEnd(s string, start int) int {
	depth := 1
	for i := start; i < len(s); i++ {
		switch s[i] {
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 {
				return i
			}
		case '\n', '\r':
			if depth == 1 {
				return i
			}
		}
	}
	return start
}

// journalStrategy picks the journal line from an entry's lines.
type journalStrategy func(lines []string, title string) (string, bool)

// journalStrategies are tried in priority order.
var journalStrategies = []journalStrategy{
	journalPatternLine,
	lineAfterTitle,
}

func findJournalLine(lines []string, title string) string {
	for _, s := range journalStrategies {
		if line, ok := s(lines, title); ok {
			return line
		}
	}
	return unknownJournal
}

// journalPatternLine returns the first non-link line shaped like
// "Journal. 2020. Authors".
func journalPatternLine(lines []string, _ string) (string, bool) {
	for _, line := range lines {
		if strings.Contains(line, "](") {
			continue
		}
		if journalLineRe.MatchString(line) {
			return strings.TrimSpace(line), true
		}
	}
	return "", false
}

// lineAfterTitle returns the non-blank line directly after the title link.
func lineAfterTitle(lines []string, title string) (string, bool) {
	for i, line := range lines {
		if !strings.Contains(line, title) || !strings.Contains(line, "[") {
			continue
		}
		if i+1 < len(lines) && strings.TrimSpace(lines[i+1]) != "" {
			return strings.TrimSpace(lines[i+1]), true
		}
		return "", false
	}
	return "", false
}

// SplitJournalLine splits "Journal. Year. Authors." on periods. The first
// segment holding a year divides journal (before) from authors (after the
// year in that segment, or the following segments). Journal names with
// abbreviation periods are split too; that is accepted behavior.
func SplitJournalLine(line string) (journal, year, authors string) {
	parts := strings.Split(line, ".")
	for i, part := range parts {
		y := yearRe.FindString(part)
		if y == "" {
			continue
		}
		year = y
		journal = strings.TrimSpace(strings.Join(parts[:i], "."))
		around := strings.Split(part, y)
		if journal == "" {
			journal = strings.TrimSpace(around[0])
		}
		if after := strings.TrimSpace(around[1]); after != "" {
			authors = strings.TrimLeft(after, ". ")
		} else if i+1 < len(parts) {
			authors = strings.TrimSpace(strings.Join(parts[i+1:], "."))
		}
		break
	}
	if journal == "" && len(parts) > 0 {
		journal = strings.TrimSpace(parts[0])
	}
	return journal, year, authors
}

func classifyLink(url string) (types.LinkKind, string) {
	if m := pubmedRe.FindStringSubmatch(url); m != nil {
		return types.LinkPubMed, m[1]
	}
	if m := pmcRe.FindStringSubmatch(url); m != nil {
		return types.LinkPMC, m[1]
	}
	return types.LinkGeneric, ""
}

// LinkLabel renders the labelled markdown link for an entry.
func LinkLabel(e types.ReferenceEntry) string {
	switch e.LinkKind {
	case types.LinkPubMed:
		return fmt.Sprintf("[PMID %s](%s)", e.Identifier, e.URL)
	case types.LinkPMC:
		return fmt.Sprintf("[%s](%s)", e.Identifier, e.URL)
	default:
		return fmt.Sprintf("[Link](%s)", e.URL)
	}
}

// Footnote renders "[^N]: Authors. Title. Journal. Year. [Link](url)",
// omitting the authors clause when there are none.
func Footnote(e types.ReferenceEntry) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s: ", citations.Marker(e.Number))
	if e.Authors != "" {
		fmt.Fprintf(&b, "%s. ", e.Authors)
	}
	fmt.Fprintf(&b, "%s. %s. %s. %s", e.Title, e.Journal, e.Year, LinkLabel(e))
	return b.String()
}
