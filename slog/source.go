package slog

import (
	"context"
	"log/slog"
	"time"

	relnews "github.com/FedorVeriaiskii/dynatrace-release-summarizer-agent"
)

// Ensure LoggingSource implements relnews.ReleaseSource.
var _ relnews.ReleaseSource = (*LoggingSource)(nil)

// LoggingSource wraps a ReleaseSource with diagnostic logging for each lookup.
type LoggingSource struct {
	next   relnews.ReleaseSource
	logger *slog.Logger
}

// NewLoggingSource creates a new LoggingSource.
func NewLoggingSource(next relnews.ReleaseSource, logger *slog.Logger) *LoggingSource {
	return &LoggingSource{next: next, logger: logger}
}

// LatestVersion delegates to the wrapped source, logging the outcome.
func (s *LoggingSource) LatestVersion(ctx context.Context, component relnews.Component) (string, error) {
	begin := time.Now()
	version, err := s.next.LatestVersion(ctx, component)
	if err != nil {
		s.logger.Error("version lookup failed",
			"component", component.ID,
			"duration", time.Since(begin),
			"error", relnews.ErrorMessage(err),
		)
		return "", err
	}
	s.logger.Debug("version lookup",
		"component", component.ID,
		"version", version,
		"duration", time.Since(begin),
	)
	return version, nil
}

// ReleaseSummary delegates to the wrapped source, logging the outcome.
func (s *LoggingSource) ReleaseSummary(ctx context.Context, component relnews.Component, version string) (*relnews.ReleaseSummary, error) {
	begin := time.Now()
	summary, err := s.next.ReleaseSummary(ctx, component, version)
	if err != nil {
		s.logger.Error("summary lookup failed",
			"component", component.ID,
			"version", version,
			"duration", time.Since(begin),
			"error", relnews.ErrorMessage(err),
		)
		return nil, err
	}
	s.logger.Debug("summary lookup",
		"component", component.ID,
		"version", version,
		"duration", time.Since(begin),
	)
	return summary, nil
}
