package vanilla

import (
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	bannerPolicyOnce sync.Once
	bannerPolicy     *bluemonday.Policy
)

// sanitizeBannerMarkup keeps inline formatting and links, dropping anything
// else (scripts, handlers, styles).
func sanitizeBannerMarkup(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}
	return strings.TrimSpace(bannerSanitizer().Sanitize(trimmed))
}

func bannerSanitizer() *bluemonday.Policy {
	bannerPolicyOnce.Do(func() {
		policy := bluemonday.StrictPolicy()
		policy.AllowElements("strong", "em", "b", "i", "br", "p", "span", "small")

		policy.AllowAttrs("href").OnElements("a")
		policy.AllowStandardURLs()
		policy.RequireNoFollowOnLinks(true)

		policy.AllowAttrs("class").OnElements("span", "p")

		bannerPolicy = policy
	})
	return bannerPolicy
}
