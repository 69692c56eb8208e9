package bridge

import (
	"github.com/adspostx/moments-go/observability"
	"go.uber.org/zap"
)

// Session tracks URLs already handed off to external navigation within one
// WebView session. Navigation interception on some platforms fires twice
// for a single user click; the session suppresses the duplicate.
//
// One Session per active WebView, confined to the host's UI context. It is
// intentionally not safe for concurrent use: all access happens on the
// UI-thread equivalent, and a mutex would only hide misuse.
type Session struct {
	opened  map[string]struct{}
	logger  *zap.Logger
	metrics observability.MetricsRegistry
}

// NewSession creates an empty navigation session.
func NewSession(logger *zap.Logger, metrics observability.MetricsRegistry) *Session {
	if logger == nil {
		logger = zap.NewNop()
	}
	if metrics == nil {
		metrics = observability.NewNoOpRegistry()
	}
	return &Session{
		opened:  make(map[string]struct{}),
		logger:  logger,
		metrics: metrics,
	}
}

// MarkOpened records one external navigation and reports whether the host
// should act on it. False means the URL was already opened since the last
// Reset and this trigger is a duplicate.
func (s *Session) MarkOpened(url string) bool {
	if _, dup := s.opened[url]; dup {
		s.metrics.IncrementNavigationSuppressed()
		s.logger.Debug("duplicate external navigation suppressed", zap.String("url", url))
		return false
	}
	s.opened[url] = struct{}{}
	return true
}

// Reset clears the opened set. Hosts call it whenever a new page or content
// load begins.
func (s *Session) Reset() {
	s.opened = make(map[string]struct{})
}
