package gemini

import (
	"encoding/json"
	"fmt"
	"strings"

	relnews "github.com/FedorVeriaiskii/dynatrace-release-summarizer-agent"
)

// VersionPrompt builds the prompt for the latest-version lookup.
func VersionPrompt(component relnews.Component) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Search the web for the most recently released version of %s.\n", component.Name)
	sb.WriteString("Prefer the vendor's official release notes over third-party sources.\n")
	sb.WriteString("Respond with JSON of the form:\n")
	sb.WriteString(`{"version": "<version string>"}`)
	return sb.String()
}

// SummaryPrompt builds the prompt for the release-notes summary lookup.
func SummaryPrompt(component relnews.Component, version string) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Search the web for the official release notes of %s version %s.\n", component.Name, version)
	sb.WriteString("Summarize the release in two to four sentences aimed at operators deciding whether to upgrade, and list up to five notable changes.\n")
	sb.WriteString("Respond with JSON of the form:\n")
	sb.WriteString(`{"latestVersion": "<version string>", "summary": "<summary>", "highlights": ["<change>", ...]}`)
	return sb.String()
}

// versionPayload is the JSON schema of the version lookup response.
type versionPayload struct {
	Version string `json:"version"`
}

// ParseVersion decodes the model's version response.
// Returns EEMPTY if the output contains no decodable version payload.
func ParseVersion(text string) (string, error) {
	raw := stripFences(text)
	if raw == "" {
		return "", relnews.Errorf(relnews.EEMPTY, "model returned empty output")
	}

	var payload versionPayload
	if err := json.Unmarshal([]byte(raw), &payload); err != nil {
		return "", relnews.Errorf(relnews.EEMPTY, "no decodable version payload in model output")
	}
	if payload.Version == "" {
		return "", relnews.Errorf(relnews.EEMPTY, "model output contains no version")
	}

	return payload.Version, nil
}

// ParseSummary decodes the model's summary response.
// Returns EEMPTY if the output contains no decodable summary payload.
func ParseSummary(text string) (*relnews.ReleaseSummary, error) {
	raw := stripFences(text)
	if raw == "" {
		return nil, relnews.Errorf(relnews.EEMPTY, "model returned empty output")
	}

	var summary relnews.ReleaseSummary
	if err := json.Unmarshal([]byte(raw), &summary); err != nil {
		return nil, relnews.Errorf(relnews.EEMPTY, "no decodable summary payload in model output")
	}
	if summary.Summary == "" {
		return nil, relnews.Errorf(relnews.EEMPTY, "model output contains no summary")
	}

	return &summary, nil
}

// stripFences removes a surrounding markdown code fence, if present.
// Models occasionally fence JSON output despite instructions not to.
func stripFences(text string) string {
	s := strings.TrimSpace(text)
	if !strings.HasPrefix(s, "```") {
		return s
	}

	// Drop the opening fence line (``` or ```json).
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[i+1:]
	} else {
		return ""
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")

	return strings.TrimSpace(s)
}
