package mock

import (
	"context"

	relnews "github.com/FedorVeriaiskii/dynatrace-release-summarizer-agent"
)

var _ relnews.NewsService = (*NewsService)(nil)

// NewsService is a mock implementation of relnews.NewsService.
type NewsService struct {
	ReleaseNewsFn func(ctx context.Context, component relnews.Component) (*relnews.ReleaseSummary, error)
}

func (s *NewsService) ReleaseNews(ctx context.Context, component relnews.Component) (*relnews.ReleaseSummary, error) {
	return s.ReleaseNewsFn(ctx, component)
}
