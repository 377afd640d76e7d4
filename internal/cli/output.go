package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/matzehuels/tagcloud/pkg/pipeline"
)

// artifactWriteParams groups what writeArtifacts needs.
type artifactWriteParams struct {
	artifacts map[string][]byte
	formats   []string
	input     string
	output    string
	cacheHit  bool
}

// writeArtifacts writes one file per format. A single format goes to output
// as given; multiple formats share output (or the input) as base path.
func writeArtifacts(p artifactWriteParams) error {
	paths := artifactPaths(p.formats, p.input, p.output)
	for _, format := range p.formats {
		path := paths[format]
		if err := os.WriteFile(path, p.artifacts[format], 0o644); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
	}

	status := "Rendered"
	if p.cacheHit {
		status = "Rendered " + styleCached.Render("("+iconCached+")")
	}
	printSuccess("%s", status)
	for _, format := range p.formats {
		printFile(paths[format])
	}
	return nil
}

// artifactPaths maps each format to its output file.
func artifactPaths(formats []string, input, output string) map[string]string {
	paths := make(map[string]string, len(formats))
	if len(formats) == 1 && output != "" {
		paths[formats[0]] = output
		return paths
	}
	base := basePath(output, input)
	for _, f := range formats {
		paths[f] = base + "." + f
		if filepath.Clean(paths[f]) == filepath.Clean(input) {
			paths[f] = base + ".cloud." + f
		}
	}
	return paths
}

// basePath derives the base output path from the output and input file paths.
// If output is empty, it strips the extension (and a ".layout" or ".tags"
// suffix) from input. A known format extension on output is stripped.
func basePath(output, input string) string {
	if output == "" {
		base := strings.TrimSuffix(input, filepath.Ext(input))
		base = strings.TrimSuffix(base, ".layout")
		return strings.TrimSuffix(base, ".tags")
	}
	ext := filepath.Ext(output)
	if pipeline.ValidateFormats([]string{strings.TrimPrefix(ext, ".")}) == nil {
		return strings.TrimSuffix(output, ext)
	}
	return output
}
