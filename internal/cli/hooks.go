package cli

import (
	"context"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/cardspace/pkg/observability"
)

// logHooks reports library events to the CLI logger at debug level.
type logHooks struct {
	logger *log.Logger
}

func (h logHooks) OnRecordsLoaded(_ context.Context, source string, count int, d time.Duration, err error) {
	if err != nil {
		h.logger.Debug("records failed", "source", source, "err", err)
		return
	}
	h.logger.Debug("records loaded", "source", source, "count", count, "took", d)
}

func (h logHooks) OnLayoutComputed(_ context.Context, kind string, count int, d time.Duration) {
	h.logger.Debug("layout computed", "layout", kind, "count", count, "took", d)
}

func (h logHooks) OnTransitionStart(objects int, base time.Duration) {
	h.logger.Debug("transition started", "objects", objects, "base", base)
}

func (h logHooks) OnTransitionComplete() {
	h.logger.Debug("transition complete")
}

func (h logHooks) OnRenderError(err error) {
	h.logger.Debug("render error", "err", err)
}

func (h logHooks) OnCacheHit(_ context.Context, keyType string) {
	h.logger.Debug("cache hit", "type", keyType)
}

func (h logHooks) OnCacheMiss(_ context.Context, keyType string) {
	h.logger.Debug("cache miss", "type", keyType)
}

func (h logHooks) OnCacheSet(_ context.Context, keyType string, size int) {
	h.logger.Debug("cache set", "type", keyType, "bytes", size)
}

func (h logHooks) OnRequest(_ context.Context, method, host, path string) {
	h.logger.Debug("http request", "method", method, "host", host, "path", path)
}

func (h logHooks) OnResponse(_ context.Context, method, host, path string, status int, d time.Duration) {
	h.logger.Debug("http response", "method", method, "host", host, "path", path, "status", status, "took", d)
}

func (h logHooks) OnError(_ context.Context, method, host, path string, err error) {
	h.logger.Debug("http error", "method", method, "host", host, "path", path, "err", err)
}

var registerOnce sync.Once

// registerHooks installs logHooks once per process.
func registerHooks(l *log.Logger) {
	registerOnce.Do(func() {
		h := logHooks{logger: l}
		observability.SetLayoutHooks(h)
		observability.SetTransitionHooks(h)
		observability.SetCacheHooks(h)
		observability.SetHTTPHooks(h)
	})
}
