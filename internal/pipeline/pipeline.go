// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pipeline walks directory trees for PDFs and drives each file
// through extraction, batching, remote checking, filtering and rendering.
//
// Everything runs sequentially: one file, one batch, one request at a time.
// The run ends early, without error, as soon as the report reaches its
// finding cap.
package pipeline

import (
	"context"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/pdiddy/proofread/internal/filter"
	"github.com/pdiddy/proofread/internal/pdftext"
	"github.com/pdiddy/proofread/internal/report"
	"github.com/pdiddy/proofread/internal/sentence"
	"github.com/pdiddy/proofread/pkg/types"
)

// pdfSuffix selects files to check. The match is case-sensitive.
const pdfSuffix = ".pdf"

// Checker submits one batch to the checking service. *languagetool.Client
// implements it; tests supply fakes.
type Checker interface {
	Check(ctx context.Context, text string) ([]types.Match, error)
}

// Summary holds counts from one run.
type Summary struct {
	Files      int
	Clean      int
	Batches    int
	Findings   int
	Suppressed int

	// Truncated is set when the finding cap ended the run early.
	Truncated bool
}

// Runner wires the pipeline stages together.
type Runner struct {
	Extractor      pdftext.Extractor
	Checker        Checker
	Filter         *filter.Filter
	MaxBatchLength int
	Log            *zap.SugaredLogger
}

// Run processes every root in order and appends to rep. It returns as soon
// as rep signals report.Stop, leaving the remaining files and roots
// unvisited. Extraction, walk and check errors abort the run.
func (r *Runner) Run(ctx context.Context, roots []string, rep *report.Report) (Summary, error) {
	var sum Summary
	for _, root := range roots {
		ctl, err := r.walk(ctx, root, rep, &sum)
		if err != nil {
			return sum, err
		}
		if ctl == report.Stop {
			sum.Truncated = true
			r.log().Infow("finding limit reached, stopping", "findings", rep.Count())
			break
		}
	}
	sum.Findings = rep.Count()
	return sum, nil
}

func (r *Runner) walk(ctx context.Context, root string, rep *report.Report, sum *Summary) (report.Control, error) {
	ctl := report.Continue
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(d.Name(), pdfSuffix) {
			return nil
		}

		c, err := r.CheckFile(ctx, path, rep, sum)
		if err != nil {
			return err
		}
		if c == report.Stop {
			ctl = report.Stop
			return fs.SkipAll
		}
		return nil
	})
	if err != nil {
		return ctl, fmt.Errorf("walking %s: %w", root, err)
	}
	return ctl, nil
}

// CheckFile runs one PDF through the pipeline. A file without accepted
// findings gets exactly one success line, however many batches it spans.
func (r *Runner) CheckFile(ctx context.Context, path string, rep *report.Report, sum *Summary) (report.Control, error) {
	log := r.log().With("file", path)
	log.Debugw("extracting text")

	text, err := r.Extractor.Extract(ctx, path)
	if err != nil {
		return report.Continue, err
	}
	sum.Files++

	found := false
	for batch := range sentence.Batches(text, r.maxBatchLength()) {
		sum.Batches++
		log.Debugw("checking batch", "batch", sum.Batches, "chars", utf8.RuneCountInString(batch))

		matches, err := r.Checker.Check(ctx, batch)
		if err != nil {
			return report.Continue, fmt.Errorf("checking %s: %w", path, err)
		}

		for _, m := range matches {
			f := report.NewFinding(m, batch)
			if r.Filter != nil && !r.Filter.Include(f.Category, f.Flagged) {
				log.Debugw("suppressed allow-listed match", "flagged", f.Flagged)
				sum.Suppressed++
				continue
			}

			found = true
			if rep.Add(f) == report.Stop {
				return report.Stop, nil
			}
		}
	}

	if !found {
		sum.Clean++
		rep.AddSuccess()
	}
	return report.Continue, nil
}

func (r *Runner) maxBatchLength() int {
	if r.MaxBatchLength <= 0 {
		return types.DefaultMaxBatchLength
	}
	return r.MaxBatchLength
}

func (r *Runner) log() *zap.SugaredLogger {
	if r.Log == nil {
		return zap.NewNop().Sugar()
	}
	return r.Log
}
