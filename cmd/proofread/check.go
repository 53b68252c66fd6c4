// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/pdiddy/proofread/internal/filter"
	"github.com/pdiddy/proofread/internal/languagetool"
	"github.com/pdiddy/proofread/internal/pdftext"
	"github.com/pdiddy/proofread/internal/pipeline"
	"github.com/pdiddy/proofread/internal/report"
)

// newExtractor builds the extraction backend. Declared as a var so tests
// can substitute a fake.
var newExtractor = pdftext.New

func runCheck(cmd *cobra.Command, args []string) error {
	cmd.SilenceUsage = true

	cfg := loadConfig()
	output, _ := cmd.Flags().GetString("output")

	extractor, err := newExtractor(cfg.Extraction)
	if err != nil {
		return err
	}

	client := languagetool.NewClient(&http.Client{Timeout: cfg.Check.Timeout}, cfg.Check, logger)
	runner := &pipeline.Runner{
		Extractor:      extractor,
		Checker:        client,
		Filter:         filter.New(cfg.Report.AllowList),
		MaxBatchLength: cfg.Report.MaxBatchLength,
		Log:            logger,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	start := time.Now()
	rep := report.New(cfg.Report.MaxFindings)
	sum, err := runner.Run(ctx, args, rep)
	if err != nil {
		return err
	}

	logger.Infow("check finished",
		"files", sum.Files,
		"clean", sum.Clean,
		"batches", sum.Batches,
		"findings", sum.Findings,
		"suppressed", sum.Suppressed,
		"truncated", sum.Truncated,
		"elapsed", time.Since(start).Round(time.Millisecond),
	)

	if output != "" {
		if err := os.WriteFile(output, []byte(rep.Markdown()), 0o644); err != nil {
			return fmt.Errorf("writing report: %w", err)
		}
		return nil
	}

	_, err = fmt.Fprintln(cmd.OutOrStdout(), rep.Markdown())
	return err
}
