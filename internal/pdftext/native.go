// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pdftext

import (
	"context"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"
)

// NativeExtractor reads the embedded text layer in process with
// github.com/ledongthuc/pdf. It needs no external tools; scanned PDFs
// without a text layer yield no text.
type NativeExtractor struct{}

// Extract returns the text of every page, pages separated by a blank line.
func (NativeExtractor) Extract(ctx context.Context, path string) (string, error) {
	f, r, err := pdf.Open(path)
	if err != nil {
		return "", fmt.Errorf("opening PDF %s: %w", path, err)
	}
	defer f.Close()

	fonts := make(map[string]*pdf.Font)
	var pages []string

	for i := 1; i <= r.NumPage(); i++ {
		if err := ctx.Err(); err != nil {
			return "", err
		}

		p := r.Page(i)
		if p.V.IsNull() {
			continue
		}

		// Share decoded fonts across pages.
		for _, name := range p.Fonts() {
			if _, ok := fonts[name]; !ok {
				font := p.Font(name)
				fonts[name] = &font
			}
		}

		text, err := p.GetPlainText(fonts)
		if err != nil {
			return "", fmt.Errorf("reading page %d of %s: %w", i, path, err)
		}
		if trimmed := strings.TrimSpace(text); trimmed != "" {
			pages = append(pages, trimmed)
		}
	}

	return cleanText([]byte(strings.Join(pages, "\n\n"))), nil
}
