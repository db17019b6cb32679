package mock

import (
	"context"

	relnews "github.com/FedorVeriaiskii/dynatrace-release-summarizer-agent"
)

var _ relnews.ReleaseSource = (*ReleaseSource)(nil)

// ReleaseSource is a mock implementation of relnews.ReleaseSource.
type ReleaseSource struct {
	LatestVersionFn  func(ctx context.Context, component relnews.Component) (string, error)
	ReleaseSummaryFn func(ctx context.Context, component relnews.Component, version string) (*relnews.ReleaseSummary, error)

	// Invocation counts, incremented on every call.
	LatestVersionCalls  int
	ReleaseSummaryCalls int
}

func (s *ReleaseSource) LatestVersion(ctx context.Context, component relnews.Component) (string, error) {
	s.LatestVersionCalls++
	return s.LatestVersionFn(ctx, component)
}

func (s *ReleaseSource) ReleaseSummary(ctx context.Context, component relnews.Component, version string) (*relnews.ReleaseSummary, error) {
	s.ReleaseSummaryCalls++
	return s.ReleaseSummaryFn(ctx, component, version)
}
