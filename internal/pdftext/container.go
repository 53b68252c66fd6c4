// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pdftext

import (
	"bytes"
	"context"
	"fmt"
	"os"

	"github.com/pdiddy/proofread/internal/container"
)

// containerCommand reads the PDF from stdin and writes text to stdout.
var containerCommand = []string{"pdftotext", "-enc", "UTF-8", "-", "-"}

// ContainerExtractor pipes PDFs through pdftotext inside a container image.
// It depends on a container.Runtime (docker or podman) injected at
// construction time.
type ContainerExtractor struct {
	runtime container.Runtime
	image   string
}

// NewContainerExtractor creates an extractor that runs image with rt. It
// verifies that the image exists locally before returning.
func NewContainerExtractor(rt container.Runtime, image string) (*ContainerExtractor, error) {
	if err := rt.ImageExists(image); err != nil {
		return nil, fmt.Errorf("extraction image not available in %s: %w", rt.Name(), err)
	}
	return &ContainerExtractor{runtime: rt, image: image}, nil
}

// Extract streams the PDF at path into the container and returns its text.
func (c *ContainerExtractor) Extract(ctx context.Context, path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("opening PDF %s: %w", path, err)
	}
	defer f.Close()

	var out bytes.Buffer
	if err := c.runtime.Run(ctx, c.image, containerCommand, f, &out); err != nil {
		return "", fmt.Errorf("extracting %s in container: %w", path, err)
	}
	return cleanText(out.Bytes()), nil
}
