package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/matzehuels/tagcloud/pkg/cloud"
	"github.com/matzehuels/tagcloud/pkg/document"
	errs "github.com/matzehuels/tagcloud/pkg/errors"
	tagio "github.com/matzehuels/tagcloud/pkg/io"
	"github.com/matzehuels/tagcloud/pkg/observability"
	"github.com/matzehuels/tagcloud/pkg/wordfreq"
)

// Parse reads the tag source named by opts: inline tags, free text, or an
// input file.
func Parse(ctx context.Context, opts Options) ([]cloud.Record, error) {
	if err := opts.ValidateForParse(); err != nil {
		return nil, err
	}

	source := parseSource(opts)
	hooks := observability.Pipeline()
	hooks.OnParseStart(ctx, source)
	start := time.Now()

	recs, err := parse(opts)
	hooks.OnParseComplete(ctx, source, len(recs), time.Since(start), err)
	if err != nil {
		return nil, err
	}
	return recs, nil
}

func parse(opts Options) ([]cloud.Record, error) {
	switch {
	case len(opts.Tags) > 0:
		for i, t := range opts.Tags {
			if err := errs.ValidateText(t.Text); err != nil {
				return nil, fmt.Errorf("tag %d: %w", i, err)
			}
		}
		return document.Tags{Tags: opts.Tags}.Records(), nil
	case opts.Text != "":
		return tagio.FromWords(wordfreq.Parse(opts.Text, opts.WordOptions())), nil
	default:
		recs, err := tagio.Import(opts.Input, tagio.Options{Text: opts.WordOptions()})
		if err != nil {
			return nil, fmt.Errorf("import %s: %w", opts.Input, err)
		}
		return recs, nil
	}
}

func parseSource(opts Options) string {
	switch {
	case len(opts.Tags) > 0:
		return "tags"
	case opts.Text != "":
		return "text"
	default:
		return opts.Input
	}
}
