// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package citations

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseReferenceNumbers(t *testing.T) {
	tests := []struct {
		in   string
		want []int
	}{
		{"7", []int{7}},
		{"7-9", []int{7, 8, 9}},
		{" 12 ", []int{12}},
		{"5-5", []int{5}},
		{"9-7", nil},
		{"1-1001", nil},
		{"1-99999999999", nil},
		{"0-9223372036854775807", nil},
		{"99999999999999999999", nil},
		{"a-3", nil},
		{"", nil},
		{"x", nil},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseReferenceNumbers(tt.in))
		})
	}
}

func TestExpandGroups(t *testing.T) {
	assert.Equal(t, []int{7, 11, 12, 13}, ExpandGroups(`\[7\]\[11-13\]`))
	assert.Equal(t, []int{3, 1, 3}, ExpandGroups(`\[3\]\[1\]\[3\]`))
	assert.Nil(t, ExpandGroups("no groups"))
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "bracket groups expand in order",
			in:   `Dosing matters.\[7\]\[11-13\]`,
			want: "Dosing matters.[^7] [^11] [^12] [^13]",
		},
		{
			name: "source name and range",
			in:   `Mortality fell. Lancet\[7-9\]`,
			want: "Mortality fell. [^7] [^8] [^9]",
		},
		{
			name: "source name with count attaches to text",
			in:   `Beta blockers reduce mortality.NEJM + 2\[7-9\] More text.`,
			want: "Beta blockers reduce mortality.[^7] [^8] [^9] More text.",
		},
		{
			name: "multi word source name",
			in:   `Outcomes improved.Heart Failure Reviews + 3\[2\]`,
			want: "Outcomes improved.[^2]",
		},
		{
			name: "favicon removed before name",
			in:   `Statins help.![](https://www.google.com/s2/favicons?domain=nejm.org)NEJM\[1\]`,
			want: "Statins help.[^1]",
		},
		{
			name: "standalone without name",
			in:   `value 3.\[4\] next`,
			want: "value 3.[^4] next",
		},
		{
			name: "incomplete bracket at end of line",
			in:   "See trial.\\[26\nNext line.",
			want: "See trial.[^26]\nNext line.",
		},
		{
			name: "digits followed by plain bracket left alone",
			in:   `odd \[123] case`,
			want: `odd \[123] case`,
		},
		{
			name: "duplicates are kept",
			in:   `a.\[2\]\[2\]`,
			want: "a.[^2] [^2]",
		},
		{
			name: "spacing between markers and double spaces collapse",
			in:   "a[^1]   [^2]  and  b",
			want: "a[^1] [^2] and b",
		},
		{
			name: "text without citations unchanged",
			in:   "Nothing to see here.",
			want: "Nothing to see here.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.in))
		})
	}
}

func TestNormalizeIsStableOnMarkers(t *testing.T) {
	in := "Already converted.[^7] [^8] [^9]\n\n# References\n[^7]: Title. Journal. 2020. [Link](https://x.org)\n"
	assert.Equal(t, in, Normalize(in))
}

func TestPassesOrder(t *testing.T) {
	names := make([]string, len(Passes))
	for i, p := range Passes {
		names[i] = p.Name
	}
	assert.Equal(t, []string{
		"remove favicons",
		"named citations",
		"standalone brackets",
		"incomplete brackets",
		"leftover brackets",
		"normalize spacing",
	}, names)
}

func TestMarkers(t *testing.T) {
	assert.Equal(t, "[^1] [^2]", Markers([]int{1, 2}))
	assert.Equal(t, "", Markers(nil))
	assert.Equal(t, "[^10]", Marker(10))
}

func TestNormalizeOversizedRange(t *testing.T) {
	// Rejected ranges are treated like descending ones: only the opening
	// bracket becomes a marker.
	assert.Equal(t, `Text.[^1]-99999999999\] more`, Normalize(`Text.\[1-99999999999\] more`))
	assert.Equal(t, `Text.[^9]-7\] more`, Normalize(`Text.\[9-7\] more`))
	assert.Len(t, ParseReferenceNumbers("1-1000"), maxRangeSpan)
	assert.Nil(t, ParseReferenceNumbers("1-1001"))
}
