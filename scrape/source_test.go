package scrape_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	relnews "github.com/FedorVeriaiskii/dynatrace-release-summarizer-agent"
	"github.com/FedorVeriaiskii/dynatrace-release-summarizer-agent/htmltomarkdown"
	"github.com/FedorVeriaiskii/dynatrace-release-summarizer-agent/mock"
	"github.com/FedorVeriaiskii/dynatrace-release-summarizer-agent/scrape"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const notesPage = `<html><body>
<nav>Site navigation</nav>
<article>
<h2>OneAgent version 1.309</h2>
<p>This release improves log monitoring.</p>
<ul>
<li>Faster startup</li>
<li>Lower memory use</li>
</ul>
</article>
</body></html>`

// newFixtureServer serves an RSS feed at /feed and a notes page at /notes.
func newFixtureServer(t *testing.T) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()
	var srv *httptest.Server
	mux.HandleFunc("/feed", func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprintf(w, `<?xml version="1.0"?>
<rss version="2.0"><channel>
<item><title>OneAgent version 1.309</title><link>%s/notes</link></item>
<item><title>OneAgent version 1.308</title><link>%s/old</link></item>
</channel></rss>`, srv.URL, srv.URL)
	})
	mux.HandleFunc("/notes", func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, notesPage)
	})
	srv = httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func testComponent(feedURL string) relnews.Component {
	return relnews.Component{
		ID:           "oneagent",
		Name:         "Dynatrace OneAgent",
		NotesFeedURL: feedURL,
	}
}

func TestSource_LatestVersion_FromRSSFeed(t *testing.T) {
	t.Parallel()

	srv := newFixtureServer(t)
	source := scrape.NewSource(srv.Client(), nil, 100)

	version, err := source.LatestVersion(context.Background(), testComponent(srv.URL+"/feed"))

	require.NoError(t, err)
	assert.Equal(t, "1.309", version)
}

func TestSource_LatestVersion_FromAtomFeed(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `<?xml version="1.0"?>
<feed xmlns="http://www.w3.org/2005/Atom">
<entry><title>ActiveGate 1.307.2</title><link href="https://example.com/notes"/></entry>
</feed>`)
	}))
	t.Cleanup(srv.Close)

	source := scrape.NewSource(srv.Client(), nil, 100)

	version, err := source.LatestVersion(context.Background(), testComponent(srv.URL))

	require.NoError(t, err)
	assert.Equal(t, "1.307.2", version)
}

func TestSource_LatestVersion_NoVersionInTitle(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `<rss><channel><item><title>General availability</title></item></channel></rss>`)
	}))
	t.Cleanup(srv.Close)

	source := scrape.NewSource(srv.Client(), nil, 100)

	_, err := source.LatestVersion(context.Background(), testComponent(srv.URL))

	require.Error(t, err)
	assert.Equal(t, relnews.EEMPTY, relnews.ErrorCode(err))
}

func TestSource_LatestVersion_EmptyFeed(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `<rss><channel></channel></rss>`)
	}))
	t.Cleanup(srv.Close)

	source := scrape.NewSource(srv.Client(), nil, 100)

	_, err := source.LatestVersion(context.Background(), testComponent(srv.URL))

	require.Error(t, err)
	assert.Equal(t, relnews.EEMPTY, relnews.ErrorCode(err))
	assert.Contains(t, relnews.ErrorMessage(err), "no entries")
}

func TestSource_LatestVersion_MissingFeedURL(t *testing.T) {
	t.Parallel()

	source := scrape.NewSource(nil, nil, 100)

	_, err := source.LatestVersion(context.Background(), relnews.Component{ID: "x", Name: "X"})

	require.Error(t, err)
	assert.Equal(t, relnews.ECONFIG, relnews.ErrorCode(err))
}

func TestSource_LatestVersion_ServerError(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	t.Cleanup(srv.Close)

	source := scrape.NewSource(srv.Client(), nil, 100)

	_, err := source.LatestVersion(context.Background(), testComponent(srv.URL))

	require.Error(t, err)
	assert.Equal(t, relnews.EUNAVAILABLE, relnews.ErrorCode(err))
	assert.Contains(t, relnews.ErrorMessage(err), "HTTP 503")
}

func TestSource_ReleaseSummary_ConvertsNotesPage(t *testing.T) {
	t.Parallel()

	srv := newFixtureServer(t)
	source := scrape.NewSource(srv.Client(), htmltomarkdown.NewConverter(), 100)

	summary, err := source.ReleaseSummary(context.Background(), testComponent(srv.URL+"/feed"), "1.309")

	require.NoError(t, err)
	assert.Equal(t, "1.309", summary.LatestVersion)
	assert.Contains(t, summary.Summary, "OneAgent version 1.309")
	assert.Contains(t, summary.Summary, "log monitoring")
	assert.NotContains(t, summary.Summary, "Site navigation")
	assert.Equal(t, []string{"Faster startup", "Lower memory use"}, summary.Highlights)
}

func TestSource_ReleaseSummary_UsesMockConverter(t *testing.T) {
	t.Parallel()

	srv := newFixtureServer(t)
	conv := &mock.Converter{
		ConvertFn: func(html string) (string, error) {
			assert.Contains(t, html, "log monitoring")
			return "converted", nil
		},
	}
	source := scrape.NewSource(srv.Client(), conv, 100)

	summary, err := source.ReleaseSummary(context.Background(), testComponent(srv.URL+"/feed"), "1.309")

	require.NoError(t, err)
	assert.Equal(t, "converted", summary.Summary)
}

func TestSource_ReleaseSummary_UnknownVersion(t *testing.T) {
	t.Parallel()

	srv := newFixtureServer(t)
	source := scrape.NewSource(srv.Client(), htmltomarkdown.NewConverter(), 100)

	_, err := source.ReleaseSummary(context.Background(), testComponent(srv.URL+"/feed"), "9.9.9")

	require.Error(t, err)
	assert.Equal(t, relnews.EEMPTY, relnews.ErrorCode(err))
	assert.Contains(t, relnews.ErrorMessage(err), "no feed entry")
}

func TestSource_ReleaseSummary_EmptyVersion(t *testing.T) {
	t.Parallel()

	source := scrape.NewSource(nil, nil, 100)

	_, err := source.ReleaseSummary(context.Background(), testComponent("https://example.com/feed"), "")

	require.Error(t, err)
	assert.Equal(t, relnews.EINVALID, relnews.ErrorCode(err))
}

func TestSource_Fetch_RespectsContextCancellation(t *testing.T) {
	t.Parallel()

	srv := newFixtureServer(t)
	source := scrape.NewSource(srv.Client(), nil, 100)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := source.LatestVersion(ctx, testComponent(srv.URL+"/feed"))

	require.Error(t, err)
}
