package cleaner

import (
	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/use-agent/kanoon/models"
)

// Cleaner turns the inner markup of a judgment container into the text
// that is delivered to the webhook.
//
// The converter is created once and reused across all runs (goroutine-safe).
type Cleaner struct {
	mdConverter *converter.Converter
	strip       []string
}

// NewCleaner initialises the Cleaner with a pre-configured Markdown converter.
// Elements matching any of strip are dropped before conversion.
func NewCleaner(strip ...string) *Cleaner {
	return &Cleaner{
		mdConverter: newMarkdownConverter(),
		strip:       strip,
	}
}

// Clean renders fragment in the requested format. sourceURL is used to
// absolutise links in Markdown output.
func (c *Cleaner) Clean(fragment, sourceURL, format string) (string, error) {
	fragment = StripElements(fragment, c.strip)

	switch format {
	case models.FormatMarkdown:
		return ToMarkdown(c.mdConverter, fragment, sourceURL)
	default:
		return PlainText(fragment)
	}
}
