// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package references

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/clipnote/pkg/types"
)

const pubmedEntry = "\n[Heart Failure With Reduced Ejection Fraction: A Review.](https://pubmed.ncbi.nlm.nih.gov/37581323/?utm_source=oe)\n\n" +
	"![](https://www.google.com/s2/favicons?domain=jamanetwork.com)JAMA. 2023. Murphy SP, Ibrahim NE, Januzzi JL.\n\n" +
	"Heart failure with reduced ejection fraction affects millions of adults.\n"

const jaccEntry = "\n[2022 AHA/ACC/HFSA Guideline for the Management of Heart Failure](https://www.jacc.org/doi/10.1016/S0735-1097(15)00714-7?utm_source=oe)\n\n" +
	"Journal of the American College of Cardiology. 2022. Heidenreich PA, Bozkurt B. Guideline\n"

func TestParseEntry(t *testing.T) {
	e, ok := ParseEntry(pubmedEntry)
	require.True(t, ok)
	assert.Equal(t, types.ReferenceEntry{
		Authors:    "Murphy SP, Ibrahim NE, Januzzi JL",
		Title:      "Heart Failure With Reduced Ejection Fraction: A Review",
		Journal:    "JAMA",
		Year:       "2023",
		URL:        "https://pubmed.ncbi.nlm.nih.gov/37581323/",
		LinkKind:   types.LinkPubMed,
		Identifier: "37581323",
	}, e)
}

func TestParseEntryBalancedParensAndGuideline(t *testing.T) {
	e, ok := ParseEntry(jaccEntry)
	require.True(t, ok)
	assert.Equal(t, "https://www.jacc.org/doi/10.1016/S0735-1097(15)00714-7", e.URL)
	assert.Equal(t, "Journal of the American College of Cardiology", e.Journal)
	assert.Equal(t, "2022", e.Year)
	assert.Equal(t, "Heidenreich PA, Bozkurt B", e.Authors)
	assert.Equal(t, types.LinkGeneric, e.LinkKind)
}

func TestParseEntryFallbacks(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		ok      bool
		journal string
		year    string
		url     string
	}{
		{
			name:    "line after title",
			raw:     "[Title](https://x.org/a)\nNEJM online first\n",
			ok:      true,
			journal: "NEJM online first",
			url:     "https://x.org/a",
		},
		{
			name:    "unknown journal",
			raw:     "[Title](https://x.org/a)\n\nnothing useful\n",
			ok:      true,
			journal: "Unknown Journal",
			url:     "https://x.org/a",
		},
		{
			name:    "newline ends unclosed url",
			raw:     "[Title](https://x.org/a\nLancet. 2019. Doe A.\n",
			ok:      true,
			journal: "Lancet",
			year:    "2019",
			url:     "https://x.org/a",
		},
		{
			name: "no link",
			raw:  "A guideline without link.\nACC. 2022. Smith J.\n",
		},
		{
			name: "empty url",
			raw:  "[Title]()\nACC. 2022. Smith J.\n",
		},
		{
			name: "nested paren never closed",
			raw:  "[Title](https://x.org/a(b\nACC. 2022. Smith J.\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, ok := ParseEntry(tt.raw)
			require.Equal(t, tt.ok, ok)
			if !ok {
				return
			}
			assert.Equal(t, tt.journal, e.Journal)
			assert.Equal(t, tt.year, e.Year)
			assert.Equal(t, tt.url, e.URL)
		})
	}
}

func TestSplitJournalLine(t *testing.T) {
	tests := []struct {
		line                   string
		journal, year, authors string
	}{
		{"JAMA. 2023. Murphy SP.", "JAMA", "2023", "Murphy SP."},
		{"Circulation 2021. Smith J.", "Circulation", "2021", "Smith J."},
		{"J. Am. Coll. Cardiol. 2020. Doe A.", "J. Am. Coll. Cardiol", "2020", "Doe A."},
		{"Lancet. 2019 Smith J", "Lancet", "2019", "Smith J"},
		{"Some Journal", "Some Journal", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			journal, year, authors := SplitJournalLine(tt.line)
			assert.Equal(t, tt.journal, journal)
			assert.Equal(t, tt.year, year)
			assert.Equal(t, tt.authors, authors)
		})
	}
}

func TestLinkEnd(t *testing.T) {
	s := "(a(b)c) tail"
	assert.Equal(t, 6, LinkEnd(s, 1))
	assert.Equal(t, 1, LinkEnd("(abc", 1))
	assert.Equal(t, 4, LinkEnd("(abc\ndef)", 1))
}

func TestFootnote(t *testing.T) {
	e := types.ReferenceEntry{
		Number:     3,
		Authors:    "Doe A",
		Title:      "Trial",
		Journal:    "NEJM",
		Year:       "2020",
		URL:        "https://pubmed.ncbi.nlm.nih.gov/1/",
		LinkKind:   types.LinkPubMed,
		Identifier: "1",
	}
	assert.Equal(t, "[^3]: Doe A. Trial. NEJM. 2020. [PMID 1](https://pubmed.ncbi.nlm.nih.gov/1/)", Footnote(e))

	e.Authors = ""
	e.LinkKind = types.LinkGeneric
	e.URL = "https://x.org"
	assert.Equal(t, "[^3]: Trial. NEJM. 2020. [Link](https://x.org)", Footnote(e))

	e.LinkKind = types.LinkPMC
	e.Identifier = "PMC123"
	assert.Equal(t, "[PMC123](https://x.org)", LinkLabel(e))
}

func TestRestructure(t *testing.T) {
	text := "Body text.[^1]\n\n###\n\n1.\n" + pubmedEntry +
		"1.\n\nA guideline without link.\nACC. 2022. Smith J.\n\n" +
		"1.\n" + jaccEntry

	got := Restructure(text)

	want := "Body text.[^1]\n\n# References\n" +
		"[^1]: Murphy SP, Ibrahim NE, Januzzi JL. Heart Failure With Reduced Ejection Fraction: A Review. JAMA. 2023. [PMID 37581323](https://pubmed.ncbi.nlm.nih.gov/37581323/)\n\n" +
		"[^2]: Heidenreich PA, Bozkurt B. 2022 AHA/ACC/HFSA Guideline for the Management of Heart Failure. Journal of the American College of Cardiology. 2022. [Link](https://www.jacc.org/doi/10.1016/S0735-1097(15)00714-7)\n"
	assert.Equal(t, want, got)
}

func TestRestructureSkippedEntryDoesNotConsumeNumber(t *testing.T) {
	text := "Body.\n\n1.\nno link here\n1.\n[Only](https://x.org/only)\nBMJ. 2018. Roe B.\n"
	got := Restructure(text)
	assert.Contains(t, got, "[^1]: Roe B. Only. BMJ. 2018. [Link](https://x.org/only)")
	assert.NotContains(t, got, "[^2]")
}

func TestRestructureNoEntriesDropsSection(t *testing.T) {
	text := "Body.  \n\n1.\nno link\n1.\nstill none\n"
	assert.Equal(t, "Body.", Restructure(text))
}

func TestRestructureWithoutList(t *testing.T) {
	text := "No references here.\n"
	assert.Equal(t, text, Restructure(text))
	assert.False(t, strings.Contains(Restructure(text), Heading))
}
