// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pipeline

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/proofread/internal/filter"
	"github.com/pdiddy/proofread/internal/report"
	"github.com/pdiddy/proofread/pkg/types"
)

// fakeExtractor returns canned text keyed by file base name and records
// the order of calls.
type fakeExtractor struct {
	texts map[string]string
	err   error
	calls []string
}

func (f *fakeExtractor) Extract(_ context.Context, path string) (string, error) {
	name := filepath.Base(path)
	f.calls = append(f.calls, name)
	if f.err != nil {
		return "", f.err
	}
	return f.texts[name], nil
}

// wordChecker flags every occurrence of each configured word, mimicking the
// offsets the real service reports.
type wordChecker struct {
	words    map[string]string // word -> category
	err      error
	requests []string
}

func (c *wordChecker) Check(_ context.Context, text string) ([]types.Match, error) {
	c.requests = append(c.requests, text)
	if c.err != nil {
		return nil, c.err
	}

	var matches []types.Match
	for word, category := range c.words {
		for from := 0; ; {
			i := strings.Index(text[from:], word)
			if i < 0 {
				break
			}
			off := from + i
			matches = append(matches, types.Match{
				Message: "Möglicher Tippfehler gefunden.",
				Offset:  off,
				Length:  len(word),
				Context: types.MatchContext{Text: text, Offset: off, Length: len(word)},
				Rule: types.Rule{
					ID:       "GERMAN_SPELLER_RULE",
					Category: types.RuleCategory{ID: category},
				},
			})
			from = off + len(word)
		}
	}
	return matches, nil
}

// mkTree creates empty files under a fresh temp dir and returns its path.
func mkTree(t *testing.T, files ...string) string {
	t.Helper()
	root := t.TempDir()
	for _, f := range files {
		p := filepath.Join(root, f)
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
		require.NoError(t, os.WriteFile(p, []byte("%PDF-1.4"), 0o644))
	}
	return root
}

func newRunner(ex *fakeExtractor, ch *wordChecker) *Runner {
	return &Runner{
		Extractor:      ex,
		Checker:        ch,
		Filter:         filter.New(types.DefaultAllowList),
		MaxBatchLength: types.DefaultMaxBatchLength,
	}
}

func TestRun_CleanFile(t *testing.T) {
	root := mkTree(t, "bericht.pdf")
	ex := &fakeExtractor{texts: map[string]string{"bericht.pdf": "Das ist ein Satz.\n"}}
	ch := &wordChecker{}
	rep := report.New(20)

	sum, err := newRunner(ex, ch).Run(context.Background(), []string{root}, rep)
	require.NoError(t, err)

	assert.Equal(t, report.SuccessLine, rep.Markdown())
	assert.Equal(t, Summary{Files: 1, Clean: 1, Batches: 1}, sum)
	assert.Equal(t, []string{"Das ist ein Satz.\n\n"}, ch.requests)
}

func TestRun_SelectsPDFsCaseSensitive(t *testing.T) {
	root := mkTree(t, "a.pdf", "b.PDF", "notes.txt", "sub/c.pdf", "sub/deeper/d.pdf", "e.pdf.bak")
	ex := &fakeExtractor{texts: map[string]string{}}
	rep := report.New(20)

	_, err := newRunner(ex, &wordChecker{}).Run(context.Background(), []string{root}, rep)
	require.NoError(t, err)

	assert.Equal(t, []string{"a.pdf", "c.pdf", "d.pdf"}, ex.calls)
	// Files without text still get their success line.
	assert.Equal(t, strings.Repeat(report.SuccessLine, 3), rep.Markdown())
}

func TestRun_RendersFindings(t *testing.T) {
	root := mkTree(t, "a.pdf", "b.pdf")
	ex := &fakeExtractor{texts: map[string]string{
		"a.pdf": "Das Hauz ist rot.",
		"b.pdf": "Alles gut.",
	}}
	ch := &wordChecker{words: map[string]string{"Hauz": "TYPOS"}}
	rep := report.New(20)

	sum, err := newRunner(ex, ch).Run(context.Background(), []string{root}, rep)
	require.NoError(t, err)

	want := "|TYPOS: GERMAN_SPELLER_RULE|\n" +
		"|-|\n" +
		"|Das **Hauz** ist rot.|\n" +
		"|Möglicher Tippfehler gefunden.|\n" +
		"\n\n" +
		report.SuccessLine
	assert.Equal(t, want, rep.Markdown())
	assert.Equal(t, 1, sum.Findings)
	assert.Equal(t, 1, sum.Clean)
}

func TestRun_AllowListSuppresses(t *testing.T) {
	root := mkTree(t, "a.pdf")
	ex := &fakeExtractor{texts: map[string]string{"a.pdf": "Laut Blechschmidt. Und Peeters sagt es."}}
	ch := &wordChecker{words: map[string]string{"Blechschmidt.": "TYPOS", "Peeters": "TYPOS"}}
	rep := report.New(20)

	sum, err := newRunner(ex, ch).Run(context.Background(), []string{root}, rep)
	require.NoError(t, err)

	assert.Equal(t, report.SuccessLine, rep.Markdown())
	assert.Equal(t, 2, sum.Suppressed)
}

func TestRun_AllowListOnlyForTypos(t *testing.T) {
	root := mkTree(t, "a.pdf")
	ex := &fakeExtractor{texts: map[string]string{"a.pdf": "Laut Blechschmidt sagt es."}}
	ch := &wordChecker{words: map[string]string{"Blechschmidt": "GRAMMAR"}}
	rep := report.New(20)

	_, err := newRunner(ex, ch).Run(context.Background(), []string{root}, rep)
	require.NoError(t, err)

	assert.Equal(t, 1, rep.Count())
	assert.NotContains(t, rep.Markdown(), report.SuccessLine)
}

func TestRun_OneSuccessLinePerFile(t *testing.T) {
	root := mkTree(t, "lang.pdf")
	text := strings.Repeat("Ein sauberer Satz. ", 50)
	ex := &fakeExtractor{texts: map[string]string{"lang.pdf": text}}
	ch := &wordChecker{}

	r := newRunner(ex, ch)
	r.MaxBatchLength = 100
	rep := report.New(20)

	sum, err := r.Run(context.Background(), []string{root}, rep)
	require.NoError(t, err)

	require.Greater(t, len(ch.requests), 1, "text should span several batches")
	assert.Equal(t, len(ch.requests), sum.Batches)
	assert.Equal(t, report.SuccessLine, rep.Markdown())
}

func TestRun_CapAcrossRoots(t *testing.T) {
	first := mkTree(t, "a1.pdf", "a2.pdf", "a3.pdf")
	second := mkTree(t, "b1.pdf", "b2.pdf", "b3.pdf")

	// Four findings per file: the cap of 20 is hit inside b2.pdf.
	texts := map[string]string{}
	for _, n := range []string{"a1", "a2", "a3", "b1", "b2", "b3"} {
		texts[n+".pdf"] = "Hauz eins. Hauz zwei. Hauz drei. Hauz vier."
	}
	ex := &fakeExtractor{texts: texts}
	ch := &wordChecker{words: map[string]string{"Hauz": "TYPOS"}}
	rep := report.New(20)

	sum, err := newRunner(ex, ch).Run(context.Background(), []string{first, second}, rep)
	require.NoError(t, err)

	assert.True(t, sum.Truncated)
	assert.Equal(t, 20, sum.Findings)
	assert.Equal(t, 20, strings.Count(rep.Markdown(), "|-|\n"))
	assert.NotContains(t, rep.Markdown(), report.SuccessLine)
	assert.Equal(t, []string{"a1.pdf", "a2.pdf", "a3.pdf", "b1.pdf", "b2.pdf"}, ex.calls)
}

func TestRun_CapMidBatch(t *testing.T) {
	root := mkTree(t, "a.pdf", "b.pdf")
	ex := &fakeExtractor{texts: map[string]string{
		"a.pdf": strings.Repeat("Hauz ", 30),
		"b.pdf": "Hauz.",
	}}
	ch := &wordChecker{words: map[string]string{"Hauz": "TYPOS"}}
	rep := report.New(20)

	sum, err := newRunner(ex, ch).Run(context.Background(), []string{root}, rep)
	require.NoError(t, err)

	assert.Equal(t, 20, rep.Count())
	assert.True(t, sum.Truncated)
	assert.Equal(t, []string{"a.pdf"}, ex.calls)
}

func TestRun_Errors(t *testing.T) {
	t.Run("check failure names the file", func(t *testing.T) {
		root := mkTree(t, "a.pdf")
		ex := &fakeExtractor{texts: map[string]string{"a.pdf": "Text."}}
		ch := &wordChecker{err: errors.New("languagetool unavailable after 5 attempts")}

		_, err := newRunner(ex, ch).Run(context.Background(), []string{root}, report.New(20))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "a.pdf")
		assert.Contains(t, err.Error(), "unavailable")
	})

	t.Run("extraction failure", func(t *testing.T) {
		root := mkTree(t, "a.pdf")
		extractErr := errors.New("running pdftotext: executable file not found")
		ex := &fakeExtractor{err: extractErr}

		_, err := newRunner(ex, &wordChecker{}).Run(context.Background(), []string{root}, report.New(20))
		assert.ErrorIs(t, err, extractErr)
	})

	t.Run("missing root", func(t *testing.T) {
		missing := filepath.Join(t.TempDir(), "nope")
		_, err := newRunner(&fakeExtractor{}, &wordChecker{}).Run(context.Background(), []string{missing}, report.New(20))
		require.Error(t, err)
		assert.ErrorIs(t, err, os.ErrNotExist)
	})
}
