package cloud

import (
	"context"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/tagcloud/pkg/glyph"
)

// Engine keeps a layout in sync with changing inputs.
//
// It is either Dirty (inputs changed since the last pass) or Clean (the
// cached result is valid). Every setter moves it to Dirty; only a complete
// pass in [Engine.Layout] moves it back to Clean. There is no incremental
// recomputation: a dirty engine always re-lays-out every tag from scratch,
// including tags that were unplaceable before.
//
// Tag objects are reused across SetData calls when their row index is
// stable, so callers may hold on to them; their geometry is always
// recomputed.
type Engine struct {
	Logger *log.Logger

	mu     sync.Mutex
	oracle glyph.Oracle
	params Params
	tags   []*Tag
	byRow  map[int]*Tag
	dirty  bool
	result *Result
	passes int
}

// NewEngine returns a dirty engine with no data.
func NewEngine(oracle glyph.Oracle, p Params) *Engine {
	return &Engine{oracle: oracle, params: p, byRow: make(map[int]*Tag), dirty: true}
}

// SetData replaces the records. Row i keeps its *Tag from the previous call.
func (e *Engine) SetData(records []Record) {
	e.mu.Lock()
	defer e.mu.Unlock()

	tags := make([]*Tag, len(records))
	byRow := make(map[int]*Tag, len(records))
	for i, r := range records {
		t, ok := e.byRow[i]
		if !ok {
			t = &Tag{RowIndex: i}
		}
		t.Text, t.Weight, t.Angle = r.Text, r.Weight, r.Angle
		tags[i] = t
		byRow[i] = t
	}
	e.tags, e.byRow = tags, byRow
	e.invalidate()
}

// SetAngles sets an explicit rotation set.
func (e *Engine) SetAngles(angles []float64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.params.Angles = append([]float64{}, angles...)
	e.invalidate()
}

// SetAngleRange switches to generated rotations.
func (e *Engine) SetAngleRange(r AngleRange) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.params.Angles = nil
	e.params.AngleRange = r
	e.invalidate()
}

// SetSize changes the target rectangle.
func (e *Engine) SetSize(width, height int) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.params.Width, e.params.Height = width, height
	e.invalidate()
}

// SetParams replaces all parameters.
func (e *Engine) SetParams(p Params) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.params = p
	e.invalidate()
}

// Params returns the current parameters.
func (e *Engine) Params() Params {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.params
}

// Dirty reports whether the next Layout call runs a pass.
func (e *Engine) Dirty() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.dirty
}

// Passes returns the number of completed layout passes.
func (e *Engine) Passes() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.passes
}

// Tag returns the tag for a row index, placed or not.
func (e *Engine) Tag(rowIndex int) (*Tag, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	t, ok := e.byRow[rowIndex]
	return t, ok
}

// Layout returns the cached result when clean, otherwise runs a full pass.
// A failed pass leaves the engine dirty.
func (e *Engine) Layout(ctx context.Context) (*Result, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.dirty && e.result != nil {
		return e.result, nil
	}

	start := time.Now()
	res, err := run(ctx, e.tags, e.params, e.oracle, e.Logger)
	if err != nil {
		return nil, err
	}
	e.result, e.dirty = res, false
	e.passes++
	if e.Logger != nil {
		e.Logger.Debug("layout pass complete",
			"tags", len(res.Tags), "placed", len(res.Tags)-len(res.Skipped),
			"scale", res.Scale, "duration", time.Since(start))
	}
	return res, nil
}

func (e *Engine) invalidate() {
	e.dirty = true
	e.result = nil
}
