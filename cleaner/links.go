package cleaner

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// ResultLinks returns the href of every anchor matched by m in rawHTML,
// resolved against pageURL and kept in document order.
//
// When limit > 0 only the first limit anchors are considered; anchors
// without an href are dropped after the cap is applied, so the result can
// be shorter than limit.
func ResultLinks(rawHTML, pageURL string, m goquery.Matcher, limit int) ([]string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rawHTML))
	if err != nil {
		return nil, err
	}

	base, _ := url.Parse(pageURL)

	anchors := doc.FindMatcher(m)
	if limit > 0 && anchors.Length() > limit {
		anchors = anchors.Slice(0, limit)
	}

	links := make([]string, 0, anchors.Length())
	anchors.Each(func(_ int, s *goquery.Selection) {
		href, exists := s.Attr("href")
		href = strings.TrimSpace(href)
		if !exists || href == "" {
			return
		}
		if base != nil {
			if resolved, err := base.Parse(href); err == nil {
				href = resolved.String()
			}
		}
		links = append(links, href)
	})

	return links, nil
}
