// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pdftext

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
)

const binPdftotext = "pdftotext"

// commander runs a program and returns its stdout. Tests substitute a fake.
type commander interface {
	Output(ctx context.Context, name string, args ...string) (stdout []byte, stderr string, err error)
}

type osCommander struct{}

func (osCommander) Output(ctx context.Context, name string, args ...string) ([]byte, string, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	err := cmd.Run()
	return stdout.Bytes(), strings.TrimSpace(stderr.String()), err
}

// PdftotextExtractor runs poppler's pdftotext on the host.
type PdftotextExtractor struct {
	cmd commander
}

// NewPdftotext returns an extractor that shells out to pdftotext on PATH.
func NewPdftotext() *PdftotextExtractor {
	return &PdftotextExtractor{cmd: osCommander{}}
}

// Extract runs "pdftotext -enc UTF-8 <path> -" and returns its stdout.
func (p *PdftotextExtractor) Extract(ctx context.Context, path string) (string, error) {
	out, stderr, err := p.cmd.Output(ctx, binPdftotext, "-enc", "UTF-8", path, "-")
	if err != nil {
		if stderr != "" {
			return "", fmt.Errorf("running %s on %s: %w: %s", binPdftotext, path, err, stderr)
		}
		return "", fmt.Errorf("running %s on %s: %w", binPdftotext, path, err)
	}
	return cleanText(out), nil
}
