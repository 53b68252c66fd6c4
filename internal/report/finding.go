// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package report

import (
	"unicode/utf16"

	"github.com/pdiddy/proofread/pkg/types"
)

// boldMarker wraps the flagged span inside the context.
const boldMarker = "**"

// NewFinding builds a Finding from a match reported for batch. The service
// counts offsets in UTF-16 code units; out-of-range offsets are clamped.
func NewFinding(m types.Match, batch string) types.Finding {
	return types.Finding{
		Category: m.Rule.Category.ID,
		RuleID:   m.Rule.ID,
		Flagged:  substring(batch, m.Offset, m.Offset+m.Length),
		Context:  markContext(m.Context.Text, m.Context.Offset, m.Length),
		Message:  m.Message,
	}
}

// markContext wraps text[offset:offset+length] in bold markers.
func markContext(text string, offset, length int) string {
	units := utf16.Encode([]rune(text))
	start := clamp(offset, 0, len(units))
	end := clamp(offset+length, start, len(units))

	return decode(units[:start]) + boldMarker + decode(units[start:end]) + boldMarker + decode(units[end:])
}

// substring returns s[start:end] measured in UTF-16 code units.
func substring(s string, start, end int) string {
	units := utf16.Encode([]rune(s))
	start = clamp(start, 0, len(units))
	end = clamp(end, start, len(units))
	return decode(units[start:end])
}

func decode(units []uint16) string {
	return string(utf16.Decode(units))
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
