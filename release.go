package relnews

import "context"

// Component identifies a software component whose releases are reported.
type Component struct {
	ID   string `json:"id"`
	Name string `json:"name"`

	// NotesFeedURL is the RSS/Atom feed of the component's release notes.
	// Used by feed-based sources; LLM-based sources rely on web search.
	NotesFeedURL string `json:"notesFeedUrl,omitempty"`
}

// Validate returns an error if the component contains invalid fields.
func (c *Component) Validate() error {
	if c.ID == "" {
		return Errorf(EINVALID, "component ID required")
	}
	if c.Name == "" {
		return Errorf(EINVALID, "component name required")
	}
	return nil
}

// Built-in components. The registry is fixed: the service reports on a known
// set of Dynatrace components, each with its own prompt set and notes feed.
var (
	OneAgent = Component{
		ID:           "oneagent",
		Name:         "Dynatrace OneAgent",
		NotesFeedURL: "https://docs.dynatrace.com/docs/feed/whats-new/release-notes/oneagent",
	}

	ActiveGate = Component{
		ID:           "activegate",
		Name:         "Dynatrace ActiveGate",
		NotesFeedURL: "https://docs.dynatrace.com/docs/feed/whats-new/release-notes/activegate",
	}
)

// Components returns all registered components in a stable order.
func Components() []Component {
	return []Component{OneAgent, ActiveGate}
}

// FindComponent retrieves a registered component by ID.
// Returns ENOTFOUND if no component is registered under the ID.
func FindComponent(id string) (Component, error) {
	for _, c := range Components() {
		if c.ID == id {
			return c, nil
		}
	}
	return Component{}, Errorf(ENOTFOUND, "component %q not found", id)
}

// ReleaseSummary describes the newest release of a component.
type ReleaseSummary struct {
	// LatestVersion always equals the version the summary was requested for.
	// The orchestrator assigns it after the summary lookup; the source's own
	// echo of the version is never trusted.
	LatestVersion string `json:"latestVersion"`

	// Summary is a natural-language description of the release.
	Summary string `json:"summary"`

	// Highlights lists notable changes, newest first. May be empty.
	Highlights []string `json:"highlights,omitempty"`
}

// ReleaseSource looks up release information for a component.
// Implementations hide where the information comes from: a hosted LLM with
// web search, or the vendor's release-notes feed.
type ReleaseSource interface {
	// LatestVersion returns the newest released version of the component.
	// Returns EEMPTY if the source produced no usable version.
	LatestVersion(ctx context.Context, component Component) (string, error)

	// ReleaseSummary returns a summary of the given version's release notes.
	// The LatestVersion field of the result is advisory; callers overwrite it.
	// Returns EEMPTY if the source produced no usable summary.
	ReleaseSummary(ctx context.Context, component Component, version string) (*ReleaseSummary, error)
}

// NewsService produces current release news for a component.
type NewsService interface {
	// ReleaseNews returns the latest version of the component together with
	// a summary of that version's release notes.
	ReleaseNews(ctx context.Context, component Component) (*ReleaseSummary, error)
}
