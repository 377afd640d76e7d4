package pipeline

import (
	"context"
	"time"

	"github.com/matzehuels/tagcloud/pkg/cloud"
	"github.com/matzehuels/tagcloud/pkg/document"
	"github.com/matzehuels/tagcloud/pkg/glyph"
	"github.com/matzehuels/tagcloud/pkg/observability"
)

// =============================================================================
// Layout Generation
// =============================================================================

// GenerateLayout runs one layout pass over recs and converts the result to
// its serialization format.
//
// Each call creates its own glyph renderer, so concurrent calls are safe.
func GenerateLayout(ctx context.Context, recs []cloud.Record, opts Options) (document.Layout, error) {
	if err := opts.ValidateForLayout(); err != nil {
		return document.Layout{}, err
	}
	p, err := opts.Params()
	if err != nil {
		return document.Layout{}, err
	}

	renderer := glyph.NewRenderer(opts.Registry)
	defer renderer.Close()

	hooks := observability.Pipeline()
	hooks.OnLayoutStart(ctx, opts.Mode, len(recs))
	start := time.Now()

	eng := cloud.NewEngine(renderer, p)
	eng.Logger = opts.Logger
	eng.SetData(recs)
	res, err := eng.Layout(ctx)
	if err != nil {
		hooks.OnLayoutComplete(ctx, opts.Mode, 0, 0, time.Since(start), err)
		return document.Layout{}, err
	}

	l := document.FromResult(res)
	l.Palette = opts.Palette
	hooks.OnLayoutComplete(ctx, opts.Mode, l.Placed(), len(l.Skipped), time.Since(start), nil)
	return l, nil
}
