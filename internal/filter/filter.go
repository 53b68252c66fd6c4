// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package filter suppresses known false positives before they reach the
// report.
package filter

import (
	"strings"

	"github.com/pdiddy/proofread/pkg/types"
)

// Filter decides which matches become findings. It holds a private copy of
// the allow-list and is safe to share once built.
type Filter struct {
	allowed map[string]struct{}
}

// New builds a Filter from an allow-list of correctly spelled words, usually
// personal names the speller does not know.
func New(allowList []string) *Filter {
	allowed := make(map[string]struct{}, len(allowList))
	for _, w := range allowList {
		allowed[w] = struct{}{}
	}
	return &Filter{allowed: allowed}
}

// Include reports whether a match with the given category and flagged text
// should be reported. Only spelling matches (category TYPOS) are ever
// suppressed: when the flagged text, or the text minus one trailing period,
// is on the allow-list.
func (f *Filter) Include(category, flagged string) bool {
	if category != types.CategoryTypos {
		return true
	}
	if _, ok := f.allowed[flagged]; ok {
		return false
	}
	if trimmed, ok := strings.CutSuffix(flagged, "."); ok {
		if _, ok := f.allowed[trimmed]; ok {
			return false
		}
	}
	return true
}
