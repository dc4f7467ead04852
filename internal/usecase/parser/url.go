package parser

import (
	"regexp"
	"strings"
)

const trailingPunctuation = ".,;:!?)"

var (
	schemeURLPattern = regexp.MustCompile(`(?i)https?://[^\s]+`)
	wwwURLPattern    = regexp.MustCompile(`(?i)\bwww\.[^\s]+`)
	domainPattern    = regexp.MustCompile(`(?i)\b(?:[a-z0-9](?:[a-z0-9-]{0,61}[a-z0-9])?\.)+[a-z]{2,}\b(?:/[^\s]*)?`)
	emailPattern     = regexp.MustCompile(`[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}`)
)

// ExtractURL finds the first URL in text. Scheme-prefixed URLs win over
// www-prefixed ones, which win over bare domains. Email addresses are not
// treated as domains.
func ExtractURL(text string) (string, bool) {
	for _, p := range []*regexp.Regexp{schemeURLPattern, wwwURLPattern} {
		if m := p.FindString(text); m != "" {
			if url := strings.TrimRight(m, trailingPunctuation); url != "" {
				return url, true
			}
		}
	}

	stripped := emailPattern.ReplaceAllString(text, " ")
	if m := domainPattern.FindString(stripped); m != "" {
		if url := strings.TrimRight(m, trailingPunctuation); url != "" {
			return url, true
		}
	}
	return "", false
}

// NormalizeURL prefixes https:// when url has no scheme.
func NormalizeURL(url string) string {
	url = strings.TrimSpace(url)
	if url == "" {
		return ""
	}
	lower := strings.ToLower(url)
	if strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://") {
		return url
	}
	return "https://" + url
}
