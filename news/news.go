// Package news coordinates the two sequential release lookups: latest
// version first, then a release-notes summary for that version.
package news

import (
	"context"
	"log/slog"
	"time"

	relnews "github.com/FedorVeriaiskii/dynatrace-release-summarizer-agent"
)

// Ensure Service implements relnews.NewsService at compile time.
var _ relnews.NewsService = (*Service)(nil)

// Service implements relnews.NewsService on top of a ReleaseSource.
// The two source calls are strictly sequential; the summary lookup is only
// attempted once a version has been obtained. A failure at either step ends
// the request — no retries.
type Service struct {
	source relnews.ReleaseSource
	logger *slog.Logger
}

// NewService creates a new Service. A nil source is valid and means the
// service is unconfigured: every request fails with ECONFIG before any
// external call is made. A nil logger falls back to slog.Default().
func NewService(source relnews.ReleaseSource, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{source: source, logger: logger}
}

// ReleaseNews returns the latest version of the component together with a
// summary of that version's release notes.
//
// The LatestVersion field of the result is always the version obtained in
// the first lookup, regardless of what the source's summary echoed back.
func (s *Service) ReleaseNews(ctx context.Context, component relnews.Component) (*relnews.ReleaseSummary, error) {
	if err := component.Validate(); err != nil {
		return nil, err
	}
	if s.source == nil {
		return nil, relnews.Errorf(relnews.ECONFIG, "release source not configured")
	}

	s.logger.Info("release news requested", "component", component.ID)

	begin := time.Now()
	version, err := s.source.LatestVersion(ctx, component)
	if err != nil {
		return nil, err
	}
	if version == "" {
		return nil, relnews.Errorf(relnews.EEMPTY, "failed to extract the latest %s version", component.Name)
	}
	s.logger.Info("version lookup complete",
		"component", component.ID,
		"version", version,
		"duration", time.Since(begin),
	)

	begin = time.Now()
	summary, err := s.source.ReleaseSummary(ctx, component, version)
	if err != nil {
		return nil, err
	}
	if summary == nil {
		return nil, relnews.Errorf(relnews.EEMPTY, "failed to get a release summary for %s %s", component.Name, version)
	}
	s.logger.Info("summary lookup complete",
		"component", component.ID,
		"version", version,
		"duration", time.Since(begin),
	)

	// The version embedded in the summary must match the version the
	// summary was requested for; never trust the source's echo.
	summary.LatestVersion = version

	return summary, nil
}
