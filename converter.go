package relnews

// Converter converts HTML to Markdown.
type Converter interface {
	// Convert transforms release-note HTML content into Markdown.
	// Returns the Markdown representation of the content.
	Convert(html string) (string, error)
}
