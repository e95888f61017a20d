package observability

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
)

// LogHooks writes every event to a logger at debug level. It implements
// all three hook interfaces.
type LogHooks struct {
	logger *log.Logger
}

// NewLogHooks creates hooks that log through l.
func NewLogHooks(l *log.Logger) *LogHooks {
	return &LogHooks{logger: l.WithPrefix("events")}
}

// Register installs h for pipeline, cache, and HTTP events.
func (h *LogHooks) Register() {
	SetPipelineHooks(h)
	SetCacheHooks(h)
	SetHTTPHooks(h)
}

func (h *LogHooks) OnEvaluateStart(_ context.Context, puzzle string, vehicles int) {
	h.logger.Debug("evaluate start", "puzzle", puzzle, "vehicles", vehicles)
}

func (h *LogHooks) OnEvaluateComplete(_ context.Context, puzzle string, estimate int, d time.Duration, err error) {
	if err != nil {
		h.logger.Debug("evaluate failed", "puzzle", puzzle, "err", err)
		return
	}
	h.logger.Debug("evaluate done", "puzzle", puzzle, "estimate", estimate, "took", d)
}

func (h *LogHooks) OnSolveStart(_ context.Context, puzzle string) {
	h.logger.Debug("solve start", "puzzle", puzzle)
}

func (h *LogHooks) OnSolveComplete(_ context.Context, puzzle string, moves int, d time.Duration, err error) {
	if err != nil {
		h.logger.Debug("solve failed", "puzzle", puzzle, "err", err)
		return
	}
	h.logger.Debug("solve done", "puzzle", puzzle, "moves", moves, "took", d)
}

func (h *LogHooks) OnCacheHit(_ context.Context, keyType string) {
	h.logger.Debug("cache hit", "type", keyType)
}

func (h *LogHooks) OnCacheMiss(_ context.Context, keyType string) {
	h.logger.Debug("cache miss", "type", keyType)
}

func (h *LogHooks) OnCacheSet(_ context.Context, keyType string, size int) {
	h.logger.Debug("cache set", "type", keyType, "bytes", size)
}

func (h *LogHooks) OnRequest(_ context.Context, method, path string) {
	h.logger.Debug("request", "method", method, "path", path)
}

func (h *LogHooks) OnResponse(_ context.Context, method, path string, status int, d time.Duration) {
	h.logger.Debug("response", "method", method, "path", path, "status", status, "took", d)
}

func (h *LogHooks) OnError(_ context.Context, method, path string, err error) {
	h.logger.Debug("handler error", "method", method, "path", path, "err", err)
}

var (
	_ PipelineHooks = (*LogHooks)(nil)
	_ CacheHooks    = (*LogHooks)(nil)
	_ HTTPHooks     = (*LogHooks)(nil)
)
