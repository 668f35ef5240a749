package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/storyscout"
)

// Ensure LoggingSource implements storyscout.StorySource.
var _ storyscout.StorySource = (*LoggingSource)(nil)

// LoggingSource wraps a StorySource with debug logging.
type LoggingSource struct {
	next   storyscout.StorySource
	name   string
	logger *slog.Logger
}

// NewLoggingSource creates a new LoggingSource. The name identifies the
// wrapped source in log output.
func NewLoggingSource(next storyscout.StorySource, name string, logger *slog.Logger) *LoggingSource {
	return &LoggingSource{next: next, name: name, logger: logger}
}

// Discover delegates to the wrapped source and logs the operation.
func (s *LoggingSource) Discover(ctx context.Context, query storyscout.DiscoveryQuery) (stories []*storyscout.Story, err error) {
	defer func(begin time.Time) {
		s.logger.Info("story discovery",
			"source", s.name,
			"count", len(stories),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.Discover(ctx, query)
}
