package observability

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
)

// LogHooks writes pipeline and cache events to a logger at debug level.
type LogHooks struct {
	Logger *log.Logger
}

// NewLogHooks returns hooks logging to logger, or to the default logger when
// logger is nil.
func NewLogHooks(logger *log.Logger) *LogHooks {
	if logger == nil {
		logger = log.Default()
	}
	return &LogHooks{Logger: logger}
}

func (h *LogHooks) OnParseStart(_ context.Context, source string) {
	h.Logger.Debug("parse started", "source", source)
}

func (h *LogHooks) OnParseComplete(_ context.Context, source string, tagCount int, d time.Duration, err error) {
	if err != nil {
		h.Logger.Debug("parse failed", "source", source, "err", err)
		return
	}
	h.Logger.Debug("parse finished", "source", source, "tags", tagCount, "duration", d)
}

func (h *LogHooks) OnLayoutStart(_ context.Context, mode string, tagCount int) {
	h.Logger.Debug("layout started", "mode", mode, "tags", tagCount)
}

func (h *LogHooks) OnLayoutComplete(_ context.Context, mode string, placed, skipped int, d time.Duration, err error) {
	if err != nil {
		h.Logger.Debug("layout failed", "mode", mode, "err", err)
		return
	}
	h.Logger.Debug("layout finished", "mode", mode, "placed", placed, "skipped", skipped, "duration", d)
}

func (h *LogHooks) OnRenderStart(_ context.Context, formats []string) {
	h.Logger.Debug("render started", "formats", formats)
}

func (h *LogHooks) OnRenderComplete(_ context.Context, formats []string, d time.Duration, err error) {
	if err != nil {
		h.Logger.Debug("render failed", "formats", formats, "err", err)
		return
	}
	h.Logger.Debug("render finished", "formats", formats, "duration", d)
}

func (h *LogHooks) OnCacheHit(_ context.Context, keyType string) {
	h.Logger.Debug("cache hit", "type", keyType)
}

func (h *LogHooks) OnCacheMiss(_ context.Context, keyType string) {
	h.Logger.Debug("cache miss", "type", keyType)
}

func (h *LogHooks) OnCacheSet(_ context.Context, keyType string, size int) {
	h.Logger.Debug("cache set", "type", keyType, "bytes", size)
}

var (
	_ PipelineHooks = (*LogHooks)(nil)
	_ CacheHooks    = (*LogHooks)(nil)
)
