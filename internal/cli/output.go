package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/matzehuels/heatgrid/pkg/errors"
	"github.com/matzehuels/heatgrid/pkg/pipeline"
)

// stdoutPath selects standard output as the destination.
const stdoutPath = "-"

// binaryFormats must not be written to an interactive terminal.
var binaryFormats = map[string]bool{
	pipeline.FormatPNG: true,
	pipeline.FormatPDF: true,
}

// artifactWriteParams describes where rendered artifacts go.
type artifactWriteParams struct {
	artifacts map[string][]byte
	formats   []string
	output    string
	year      int
	stdout    io.Writer
	isTTY     func() bool
}

// writeArtifacts writes each artifact to its file, or the single artifact to
// stdout when output is "-". It returns the paths written.
func writeArtifacts(p artifactWriteParams) ([]string, error) {
	if p.output == stdoutPath {
		if len(p.formats) != 1 {
			return nil, errors.New(errors.ErrCodeInvalidInput, "output - needs exactly one format, got %d", len(p.formats))
		}
		format := p.formats[0]
		if binaryFormats[format] && p.isTTY != nil && p.isTTY() {
			return nil, errors.New(errors.ErrCodeInvalidInput, "refusing to write %s to a terminal; redirect stdout or use --output", format)
		}
		_, err := p.stdout.Write(p.artifacts[format])
		return nil, err
	}

	base := basePath(p.output, p.year)
	paths := make([]string, 0, len(p.formats))
	for _, format := range p.formats {
		path := base + "." + format
		if err := errors.ValidatePath(path); err != nil {
			return paths, err
		}
		if dir := filepath.Dir(path); dir != "." {
			if err := os.MkdirAll(dir, 0755); err != nil {
				return paths, fmt.Errorf("create %s: %w", dir, err)
			}
		}
		if err := os.WriteFile(path, p.artifacts[format], 0644); err != nil {
			return paths, fmt.Errorf("write %s: %w", path, err)
		}
		paths = append(paths, path)
	}
	return paths, nil
}

// basePath derives the output path without extension. An empty output
// yields "heatmap-<year>"; a known format extension is stripped.
func basePath(output string, year int) string {
	if output == "" {
		return fmt.Sprintf("heatmap-%d", year)
	}
	ext := filepath.Ext(output)
	if pipeline.ValidFormats[strings.TrimPrefix(ext, ".")] {
		return strings.TrimSuffix(output, ext)
	}
	return output
}

// stdoutIsTerminal reports whether stdout is an interactive terminal.
func stdoutIsTerminal() bool {
	return isTerminal(os.Stdout)
}
