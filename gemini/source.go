// Package gemini implements relnews.ReleaseSource using Google Gemini with
// the Google Search tool, so answers are grounded in live web results.
package gemini

import (
	"context"

	relnews "github.com/FedorVeriaiskii/dynatrace-release-summarizer-agent"
	"google.golang.org/genai"
)

// DefaultModel is used when no model is configured.
const DefaultModel = "gemini-2.5-flash"

// Ensure Source implements relnews.ReleaseSource at compile time.
var _ relnews.ReleaseSource = (*Source)(nil)

// Source implements relnews.ReleaseSource using Google Gemini.
type Source struct {
	client *genai.Client
	model  string
}

// NewSource creates a new Source. An empty model selects DefaultModel.
func NewSource(client *genai.Client, model string) *Source {
	if model == "" {
		model = DefaultModel
	}
	return &Source{client: client, model: model}
}

// LatestVersion returns the newest released version of the component,
// obtained via a web-search-grounded model call.
func (s *Source) LatestVersion(ctx context.Context, component relnews.Component) (string, error) {
	if err := component.Validate(); err != nil {
		return "", err
	}

	text, err := s.generate(ctx, VersionPrompt(component))
	if err != nil {
		return "", err
	}

	return ParseVersion(text)
}

// ReleaseSummary returns a summary of the given version's release notes.
// The LatestVersion field of the result is whatever the model echoed back;
// callers are expected to overwrite it.
func (s *Source) ReleaseSummary(ctx context.Context, component relnews.Component, version string) (*relnews.ReleaseSummary, error) {
	if err := component.Validate(); err != nil {
		return nil, err
	}
	if version == "" {
		return nil, relnews.Errorf(relnews.EINVALID, "version required")
	}

	text, err := s.generate(ctx, SummaryPrompt(component, version))
	if err != nil {
		return nil, err
	}

	return ParseSummary(text)
}

func (s *Source) generate(ctx context.Context, prompt string) (string, error) {
	result, err := s.client.Models.GenerateContent(ctx, s.model,
		[]*genai.Content{{
			Parts: []*genai.Part{{Text: prompt}},
		}},
		BuildConfig(),
	)
	if err != nil {
		return "", relnews.Errorf(relnews.EUNAVAILABLE, "%v", err)
	}
	if result == nil {
		return "", relnews.Errorf(relnews.EEMPTY, "gemini returned nil result")
	}

	return result.Text(), nil
}

// BuildConfig returns the GenerateContentConfig for Gemini API calls.
// The Google Search tool is always enabled; both lookups depend on live
// release information that is not in the model's training data.
func BuildConfig() *genai.GenerateContentConfig {
	temp := float32(0.2)
	return &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{
			Parts: []*genai.Part{{
				Text: "You are a release information assistant for Dynatrace software components. Use web search to find current release information. Respond with a single JSON object exactly matching the requested schema, with no surrounding prose and no markdown fences.",
			}},
		},
		Temperature: &temp,
		Tools: []*genai.Tool{
			{GoogleSearch: &genai.GoogleSearch{}},
		},
	}
}
