// Package pkg provides the core libraries for tagcloud.
//
// # Overview
//
// Tagcloud turns weighted words into tag clouds: words are sized by weight,
// rasterized into bitmask sprites, and placed along a spiral so no two words
// overlap. The pkg directory is organized into four main areas:
//
//  1. Engine: [cloud], [glyph], [fonts], [palette]
//  2. Input and serialization: [wordfreq], [io], [document]
//  3. Output: [render], [render/sink]
//  4. Orchestration and infrastructure: [pipeline], [cache], [config],
//     [server], [observability], [errors]
//
// # Architecture
//
// The typical data flow through tagcloud:
//
//	Free text / JSON / CSV
//	         ↓
//	    [wordfreq], [io] (weighted records)
//	         ↓
//	    [cloud] (font sizes, sprites, spiral placement)
//	         ↓
//	    [document] (serializable layout)
//	         ↓
//	    [render/sink] (SVG/PNG/PDF/JSON)
//
// # Quick Start
//
//	import (
//	    "context"
//	    "github.com/matzehuels/tagcloud/pkg/pipeline"
//	)
//
//	runner := pipeline.NewRunner(nil, nil, nil)
//	result, _ := runner.Execute(context.Background(), pipeline.Options{
//	    Text:    speech,
//	    Formats: []string{"svg"},
//	})
//	svg := result.Artifacts["svg"]
//
// Or drive the engine directly:
//
//	renderer := glyph.NewRenderer(nil)
//	defer renderer.Close()
//	res, _ := cloud.Layout(ctx, records, cloud.DefaultParams(), renderer)
//	svg := sink.RenderSVG(document.FromResult(res))
//
// # Testing
//
//	go test ./pkg/...                    # All tests
//	go test -run Example ./pkg/...       # Examples only
//	go test -tags integration ./pkg/...  # Include Redis/MongoDB tests
//
// [cloud]: https://pkg.go.dev/github.com/matzehuels/tagcloud/pkg/cloud
// [glyph]: https://pkg.go.dev/github.com/matzehuels/tagcloud/pkg/glyph
// [fonts]: https://pkg.go.dev/github.com/matzehuels/tagcloud/pkg/fonts
// [palette]: https://pkg.go.dev/github.com/matzehuels/tagcloud/pkg/palette
// [wordfreq]: https://pkg.go.dev/github.com/matzehuels/tagcloud/pkg/wordfreq
// [io]: https://pkg.go.dev/github.com/matzehuels/tagcloud/pkg/io
// [document]: https://pkg.go.dev/github.com/matzehuels/tagcloud/pkg/document
// [render]: https://pkg.go.dev/github.com/matzehuels/tagcloud/pkg/render
// [render/sink]: https://pkg.go.dev/github.com/matzehuels/tagcloud/pkg/render/sink
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/tagcloud/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/matzehuels/tagcloud/pkg/cache
// [config]: https://pkg.go.dev/github.com/matzehuels/tagcloud/pkg/config
// [server]: https://pkg.go.dev/github.com/matzehuels/tagcloud/pkg/server
// [observability]: https://pkg.go.dev/github.com/matzehuels/tagcloud/pkg/observability
// [errors]: https://pkg.go.dev/github.com/matzehuels/tagcloud/pkg/errors
package pkg
