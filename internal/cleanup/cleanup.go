// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package cleanup applies the last fixes to a converted note body: heading
// depth normalization, unescaping, table cross-reference italics, and
// whitespace collapsing.
package cleanup

import (
	"regexp"
	"strings"
	"unicode"
)

// referencesMarker separates the body from the footnote definitions.
const referencesMarker = "# References"

var (
	escapedBracketRe = regexp.MustCompile(`\\(\[|\])`)
	escapedPiiRe     = regexp.MustCompile(`S0735-1097\\?\((\d+)\\?\)`)
	tableRefRe       = regexp.MustCompile(`\bTable\s+(\d+)\b`)
	emptyH3Re        = regexp.MustCompile(`(?m)^###\s*$`)
	blankRunRe       = regexp.MustCompile(`\n{3,}`)
	trailingSpaceRe  = regexp.MustCompile(`(?m)[ \t]+$`)
)

// Step is one named fix.
type Step struct {
	Name  string
	Apply func(string) string
}

// Steps run once each, in this order.
var Steps = []Step{
	{Name: "unescape brackets", Apply: unescapeBrackets},
	{Name: "repair identifier parentheses", Apply: repairIdentifierParens},
	{Name: "normalize headings", Apply: NormalizeHeadings},
	{Name: "italicize tables", Apply: ItalicizeTables},
	{Name: "drop empty h3", Apply: dropEmptyH3},
	{Name: "collapse blank lines", Apply: collapseBlankLines},
	{Name: "trim trailing spaces", Apply: trimTrailingSpaces},
	{Name: "final newline", Apply: finalNewline},
}

// Apply runs every step over text.
func Apply(text string) string {
	for _, s := range Steps {
		text = s.Apply(text)
	}
	return text
}

func unescapeBrackets(text string) string {
	return escapedBracketRe.ReplaceAllString(text, "$1")
}

// repairIdentifierParens turns S0735-1097\(15\) back into S0735-1097(15).
func repairIdentifierParens(text string) string {
	return escapedPiiRe.ReplaceAllString(text, "S0735-1097(${1})")
}

// ItalicizeTables wraps bare "Table N" mentions that precede the
// "# References" marker in asterisks. Mentions touching an asterisk on
// either side are left alone. Without a marker past offset zero the text is
// unchanged.
func ItalicizeTables(text string) string {
	idx := strings.Index(text, referencesMarker)
	if idx <= 0 {
		return text
	}
	body, refs := text[:idx], text[idx:]

	var b strings.Builder
	last := 0
	for _, m := range tableRefRe.FindAllStringSubmatchIndex(body, -1) {
		start, end := m[0], m[1]
		if start > 0 && body[start-1] == '*' {
			continue
		}
		if end < len(body) && body[end] == '*' {
			continue
		}
		b.WriteString(body[last:start])
		b.WriteString("*Table ")
		b.WriteString(body[m[2]:m[3]])
		b.WriteString("*")
		last = end
	}
	b.WriteString(body[last:])
	return b.String() + refs
}

func dropEmptyH3(text string) string {
	return emptyH3Re.ReplaceAllString(text, "")
}

func collapseBlankLines(text string) string {
	return blankRunRe.ReplaceAllString(text, "\n\n")
}

func trimTrailingSpaces(text string) string {
	return trailingSpaceRe.ReplaceAllString(text, "")
}

func finalNewline(text string) string {
	return strings.TrimRightFunc(text, unicode.IsSpace) + "\n"
}
