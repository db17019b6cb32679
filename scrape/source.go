// Package scrape implements relnews.ReleaseSource by reading the component's
// release-notes RSS/Atom feed directly, without an LLM in the path.
package scrape

import (
	"context"
	"io"
	"net/http"
	"regexp"
	"strings"

	relnews "github.com/FedorVeriaiskii/dynatrace-release-summarizer-agent"
	"github.com/PuerkitoBio/goquery"
	"github.com/beevik/etree"
	"golang.org/x/time/rate"
)

// DefaultRPS is the default request rate against the vendor's site.
const DefaultRPS = 1.0

// maxHighlights bounds the number of changes lifted from the notes page.
const maxHighlights = 5

// versionPattern matches dotted release versions in feed entry titles,
// e.g. "OneAgent version 1.309" or "ActiveGate 1.307.2".
var versionPattern = regexp.MustCompile(`\d+(?:\.\d+)+`)

// Ensure Source implements relnews.ReleaseSource at compile time.
var _ relnews.ReleaseSource = (*Source)(nil)

// Source implements relnews.ReleaseSource by fetching the component's
// release-notes feed and the linked notes page.
type Source struct {
	client  *http.Client
	conv    relnews.Converter
	limiter *rate.Limiter
}

// NewSource creates a new Source with the given HTTP client and converter.
// If client is nil, http.DefaultClient is used. Requests are rate limited to
// rps requests per second with a burst of 1; rps <= 0 selects DefaultRPS.
func NewSource(client *http.Client, conv relnews.Converter, rps float64) *Source {
	if client == nil {
		client = http.DefaultClient
	}
	if rps <= 0 {
		rps = DefaultRPS
	}
	return &Source{
		client:  client,
		conv:    conv,
		limiter: rate.NewLimiter(rate.Limit(rps), 1),
	}
}

// LatestVersion returns the version named in the newest feed entry.
func (s *Source) LatestVersion(ctx context.Context, component relnews.Component) (string, error) {
	entries, err := s.feedEntries(ctx, component)
	if err != nil {
		return "", err
	}

	version := versionPattern.FindString(entries[0].title)
	if version == "" {
		return "", relnews.Errorf(relnews.EEMPTY, "no version in feed entry title %q", entries[0].title)
	}

	return version, nil
}

// ReleaseSummary fetches the notes page linked from the feed entry for the
// given version and converts its content to a Markdown summary.
func (s *Source) ReleaseSummary(ctx context.Context, component relnews.Component, version string) (*relnews.ReleaseSummary, error) {
	if version == "" {
		return nil, relnews.Errorf(relnews.EINVALID, "version required")
	}

	entries, err := s.feedEntries(ctx, component)
	if err != nil {
		return nil, err
	}

	var link string
	for _, entry := range entries {
		if strings.Contains(entry.title, version) {
			link = entry.link
			break
		}
	}
	if link == "" {
		return nil, relnews.Errorf(relnews.EEMPTY, "no feed entry for %s version %s", component.Name, version)
	}

	page, err := s.fetch(ctx, link)
	if err != nil {
		return nil, err
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(page))
	if err != nil {
		return nil, relnews.Errorf(relnews.EEMPTY, "failed to parse notes page: %v", err)
	}

	content := doc.Find("article").First()
	if content.Length() == 0 {
		content = doc.Find("main").First()
	}
	if content.Length() == 0 {
		content = doc.Find("body").First()
	}

	contentHTML, err := content.Html()
	if err != nil {
		return nil, relnews.Errorf(relnews.EEMPTY, "failed to extract notes content: %v", err)
	}

	markdown, err := s.conv.Convert(contentHTML)
	if err != nil {
		return nil, err
	}

	var highlights []string
	content.Find("li").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		text := strings.Join(strings.Fields(sel.Text()), " ")
		if text != "" {
			highlights = append(highlights, text)
		}
		return len(highlights) < maxHighlights
	})

	return &relnews.ReleaseSummary{
		LatestVersion: version,
		Summary:       strings.TrimSpace(markdown),
		Highlights:    highlights,
	}, nil
}

// feedEntry is one item of a release-notes feed, newest first.
type feedEntry struct {
	title string
	link  string
}

// feedEntries fetches and parses the component's feed.
// Both RSS (<item>) and Atom (<entry>) documents are accepted.
func (s *Source) feedEntries(ctx context.Context, component relnews.Component) ([]feedEntry, error) {
	if err := component.Validate(); err != nil {
		return nil, err
	}
	if component.NotesFeedURL == "" {
		return nil, relnews.Errorf(relnews.ECONFIG, "component %q has no release-notes feed", component.ID)
	}

	body, err := s.fetch(ctx, component.NotesFeedURL)
	if err != nil {
		return nil, err
	}

	doc := etree.NewDocument()
	if err := doc.ReadFromString(body); err != nil {
		return nil, relnews.Errorf(relnews.EEMPTY, "failed to parse feed: %v", err)
	}

	var entries []feedEntry
	for _, item := range doc.FindElements("//item") {
		entries = append(entries, feedEntry{
			title: elementText(item, "title"),
			link:  elementText(item, "link"),
		})
	}
	if len(entries) == 0 {
		for _, item := range doc.FindElements("//entry") {
			entry := feedEntry{title: elementText(item, "title")}
			if link := item.SelectElement("link"); link != nil {
				entry.link = link.SelectAttrValue("href", "")
			}
			entries = append(entries, entry)
		}
	}
	if len(entries) == 0 {
		return nil, relnews.Errorf(relnews.EEMPTY, "feed contains no entries")
	}

	return entries, nil
}

// fetch retrieves a URL, honoring the rate limit and the caller's deadline.
func (s *Source) fetch(ctx context.Context, url string) (string, error) {
	if err := s.limiter.Wait(ctx); err != nil {
		return "", relnews.Errorf(relnews.EUNAVAILABLE, "%v", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", relnews.Errorf(relnews.EINVALID, "invalid URL %q: %v", url, err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return "", relnews.Errorf(relnews.EUNAVAILABLE, "%v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", relnews.Errorf(relnews.EUNAVAILABLE, "HTTP %d for %s", resp.StatusCode, url)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", relnews.Errorf(relnews.EUNAVAILABLE, "%v", err)
	}

	return string(body), nil
}

func elementText(parent *etree.Element, tag string) string {
	if el := parent.SelectElement(tag); el != nil {
		return strings.TrimSpace(el.Text())
	}
	return ""
}
