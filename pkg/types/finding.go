// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the proofread pipeline:
// the matches returned by the checking service, the findings rendered into
// the report, and the configuration handed to each stage.
package types

// CategoryTypos is the LanguageTool category identifier for spelling errors.
const CategoryTypos = "TYPOS"

// Finding is one accepted issue as it appears in the report.
type Finding struct {
	// Category is the rule category identifier (e.g. "TYPOS", "GRAMMAR").
	Category string `json:"category" yaml:"category"`

	// RuleID is the identifier of the rule that fired.
	RuleID string `json:"rule_id" yaml:"rule_id"`

	// Flagged is the exact offending substring.
	Flagged string `json:"flagged" yaml:"flagged"`

	// Context is the surrounding excerpt with the flagged span wrapped in
	// bold markers.
	Context string `json:"context" yaml:"context"`

	// Message is the human-readable explanation from the service.
	Message string `json:"message" yaml:"message"`
}

// Match is a single entry of the "matches" array returned by the checking
// service. Offset and Length are relative to the submitted batch text.
type Match struct {
	Message      string        `json:"message"`
	ShortMessage string        `json:"shortMessage,omitempty"`
	Offset       int           `json:"offset"`
	Length       int           `json:"length"`
	Replacements []Replacement `json:"replacements"`
	Context      MatchContext  `json:"context"`
	Sentence     string        `json:"sentence,omitempty"`
	Rule         Rule          `json:"rule"`
}

// Replacement is one suggested correction.
type Replacement struct {
	Value string `json:"value"`
}

// MatchContext is the excerpt around a match. Offset marks where the matched
// span begins within Text; Length is its extent.
type MatchContext struct {
	Text   string `json:"text"`
	Offset int    `json:"offset"`
	Length int    `json:"length"`
}

// Rule identifies the rule that produced a match.
type Rule struct {
	ID          string       `json:"id"`
	Description string       `json:"description,omitempty"`
	IssueType   string       `json:"issueType,omitempty"`
	Category    RuleCategory `json:"category"`
}

// RuleCategory groups related rules.
type RuleCategory struct {
	ID   string `json:"id"`
	Name string `json:"name,omitempty"`
}
