package slog_test

import (
	"bytes"
	"context"
	stdslog "log/slog"
	"testing"

	relnews "github.com/FedorVeriaiskii/dynatrace-release-summarizer-agent"
	"github.com/FedorVeriaiskii/dynatrace-release-summarizer-agent/mock"
	logslog "github.com/FedorVeriaiskii/dynatrace-release-summarizer-agent/slog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBufferLogger() (*stdslog.Logger, *bytes.Buffer) {
	buf := &bytes.Buffer{}
	logger := stdslog.New(stdslog.NewTextHandler(buf, &stdslog.HandlerOptions{Level: stdslog.LevelDebug}))
	return logger, buf
}

func TestLoggingSource_LatestVersion_Delegates(t *testing.T) {
	t.Parallel()

	next := &mock.ReleaseSource{
		LatestVersionFn: func(context.Context, relnews.Component) (string, error) {
			return "1.309", nil
		},
	}
	logger, buf := newBufferLogger()
	source := logslog.NewLoggingSource(next, logger)

	version, err := source.LatestVersion(context.Background(), relnews.OneAgent)

	require.NoError(t, err)
	assert.Equal(t, "1.309", version)
	assert.Contains(t, buf.String(), "version lookup")
	assert.Contains(t, buf.String(), "oneagent")
}

func TestLoggingSource_LatestVersion_LogsError(t *testing.T) {
	t.Parallel()

	next := &mock.ReleaseSource{
		LatestVersionFn: func(context.Context, relnews.Component) (string, error) {
			return "", relnews.Errorf(relnews.EUNAVAILABLE, "timeout")
		},
	}
	logger, buf := newBufferLogger()
	source := logslog.NewLoggingSource(next, logger)

	_, err := source.LatestVersion(context.Background(), relnews.OneAgent)

	require.Error(t, err)
	assert.Equal(t, relnews.EUNAVAILABLE, relnews.ErrorCode(err))
	assert.Contains(t, buf.String(), "version lookup failed")
	assert.Contains(t, buf.String(), "timeout")
}

func TestLoggingSource_ReleaseSummary_Delegates(t *testing.T) {
	t.Parallel()

	next := &mock.ReleaseSource{
		ReleaseSummaryFn: func(_ context.Context, _ relnews.Component, version string) (*relnews.ReleaseSummary, error) {
			return &relnews.ReleaseSummary{LatestVersion: version, Summary: "Improved X"}, nil
		},
	}
	logger, buf := newBufferLogger()
	source := logslog.NewLoggingSource(next, logger)

	summary, err := source.ReleaseSummary(context.Background(), relnews.OneAgent, "1.309")

	require.NoError(t, err)
	assert.Equal(t, "Improved X", summary.Summary)
	assert.Contains(t, buf.String(), "summary lookup")
	assert.Contains(t, buf.String(), "1.309")
}
