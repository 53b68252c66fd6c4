// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pdftext extracts plain text from PDF files with pluggable
// backends: the poppler pdftotext utility on the host, the same utility in a
// container, or a pure Go reader.
package pdftext

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/pdiddy/proofread/internal/container"
	"github.com/pdiddy/proofread/pkg/types"
)

// Extractor returns the plain text of a PDF. Different backends
// (pdftotext, container, native) implement this interface.
type Extractor interface {
	// Extract reads the PDF at path and returns its text.
	Extract(ctx context.Context, path string) (string, error)
}

// New returns the Extractor selected by cfg.Backend. The container backend
// probes for docker or podman and the configured image before returning.
func New(cfg types.ExtractionConfig) (Extractor, error) {
	switch cfg.Backend {
	case types.BackendPdftotext, "":
		return NewPdftotext(), nil
	case types.BackendNative:
		return &NativeExtractor{}, nil
	case types.BackendContainer:
		rt, err := container.DetectRuntime()
		if err != nil {
			return nil, err
		}
		image := cfg.ContainerImage
		if image == "" {
			image = types.DefaultContainerImage
		}
		return NewContainerExtractor(rt, image)
	default:
		return nil, fmt.Errorf("unknown extraction backend %q (want %s, %s or %s)",
			cfg.Backend, types.BackendPdftotext, types.BackendNative, types.BackendContainer)
	}
}

// cleanText replaces invalid byte sequences so downstream string handling
// never sees broken runes, and composes the text to NFC. Many PDFs store
// umlauts as a base letter plus a combining mark; composing them keeps
// allow-list lookups and character offsets stable. Form feeds that pdftotext
// emits between pages are turned into newlines.
func cleanText(b []byte) string {
	s := strings.ToValidUTF8(string(b), "\uFFFD")
	s = norm.NFC.String(s)
	return strings.ReplaceAll(s, "\f", "\n")
}
