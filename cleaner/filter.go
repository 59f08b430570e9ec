package cleaner

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// StripElements removes every element matching one of selectors from an
// HTML fragment. Invalid selectors are skipped. If nothing is stripped
// the input is returned unchanged.
func StripElements(fragment string, selectors []string) string {
	if len(selectors) == 0 {
		return fragment
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(fragment))
	if err != nil {
		return fragment
	}

	removed := 0
	for _, s := range selectors {
		sel, err := CompileSelector(s)
		if err != nil {
			continue
		}
		matches := doc.FindMatcher(sel)
		removed += matches.Length()
		matches.Remove()
	}
	if removed == 0 {
		return fragment
	}

	// The fragment was wrapped in <html><body> by the parser.
	out, err := doc.Find("body").Html()
	if err != nil {
		return fragment
	}
	return out
}
