// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package report renders accepted findings as Markdown tables and enforces
// the per-run finding cap.
package report

import (
	"io"
	"strings"

	"github.com/pdiddy/proofread/pkg/types"
)

// SuccessLine is appended for a file that produced no findings.
const SuccessLine = "✅ Es wurden keine Fehler gefunden!\n"

// Control tells the caller whether to keep feeding the report.
type Control int

const (
	// Continue means the report accepts more findings.
	Continue Control = iota
	// Stop means the cap is reached; the caller must end the run.
	Stop
)

func (c Control) String() string {
	if c == Stop {
		return "stop"
	}
	return "continue"
}

// Report accumulates the Markdown for one run. It is not safe for
// concurrent use.
type Report struct {
	buf   strings.Builder
	count int
	max   int
}

// New returns an empty Report that accepts at most maxFindings findings.
// A non-positive maxFindings selects types.DefaultMaxFindings.
func New(maxFindings int) *Report {
	if maxFindings <= 0 {
		maxFindings = types.DefaultMaxFindings
	}
	return &Report{max: maxFindings}
}

// Add renders f as a table and returns Stop once the cap is reached. Once
// full, Add discards f and keeps returning Stop.
func (r *Report) Add(f types.Finding) Control {
	if r.Full() {
		return Stop
	}

	r.buf.WriteString("|" + cell(f.Category) + ": " + cell(f.RuleID) + "|\n")
	r.buf.WriteString("|-|\n")
	r.buf.WriteString("|" + cell(f.Context) + "|\n")
	r.buf.WriteString("|" + cell(f.Message) + "|\n")
	r.buf.WriteString("\n\n")
	r.count++

	if r.Full() {
		return Stop
	}
	return Continue
}

// AddSuccess appends the no-errors line for one file.
func (r *Report) AddSuccess() {
	r.buf.WriteString(SuccessLine)
}

// Count returns the number of findings rendered so far.
func (r *Report) Count() int { return r.count }

// Full reports whether the cap has been reached.
func (r *Report) Full() bool { return r.count >= r.max }

// Markdown returns the accumulated report.
func (r *Report) Markdown() string { return r.buf.String() }

// WriteTo writes the accumulated report to w.
func (r *Report) WriteTo(w io.Writer) (int64, error) {
	n, err := io.WriteString(w, r.buf.String())
	return int64(n), err
}

var cellReplacer = strings.NewReplacer(
	"\r\n", " ",
	"\n", " ",
	"\r", " ",
	"|", `\|`,
)

// cell keeps s on one table row.
func cell(s string) string {
	return cellReplacer.Replace(s)
}
