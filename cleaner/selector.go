package cleaner

import (
	"fmt"

	"github.com/andybalholm/cascadia"
)

// CompileSelector parses a CSS selector once so it can be reused for every
// page of every run. The returned cascadia.Selector satisfies
// goquery.Matcher.
func CompileSelector(selector string) (cascadia.Selector, error) {
	sel, err := cascadia.Compile(selector)
	if err != nil {
		return nil, fmt.Errorf("invalid selector %q: %w", selector, err)
	}
	return sel, nil
}
