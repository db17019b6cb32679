package htmltomarkdown

import (
	"regexp"
	"strings"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/table"
	relnews "github.com/FedorVeriaiskii/dynatrace-release-summarizer-agent"
)

// Ensure Converter implements relnews.Converter at compile time.
var _ relnews.Converter = (*Converter)(nil)

// Converter wraps html-to-markdown to convert release-note HTML to Markdown.
type Converter struct {
	conv *converter.Converter
}

// NewConverter creates a new Converter. The table plugin is included because
// Dynatrace release notes present fixed issues and support matrices as tables.
func NewConverter() *Converter {
	conv := converter.NewConverter(
		converter.WithPlugins(
			base.NewBasePlugin(),
			commonmark.NewCommonmarkPlugin(),
			table.NewTablePlugin(),
		),
	)
	return &Converter{conv: conv}
}

// Release-note pages decorate entries with screenshots and badge icons;
// neither survives as useful summary text.
var (
	imagePattern    = regexp.MustCompile(`!\[[^\]]*\]\([^)]*\)`)
	blankRunPattern = regexp.MustCompile(`\n{3,}`)
)

// Convert transforms HTML content into Markdown. Images are stripped and
// the blank-line runs they leave behind are collapsed.
func (c *Converter) Convert(html string) (string, error) {
	if strings.TrimSpace(html) == "" {
		return "", relnews.Errorf(relnews.EINVALID, "empty HTML input")
	}

	result, err := c.conv.ConvertString(html)
	if err != nil {
		return "", err
	}

	md := imagePattern.ReplaceAllString(result, "")
	md = blankRunPattern.ReplaceAllString(md, "\n\n")

	return strings.TrimSpace(md), nil
}
