package parser

import (
	"regexp"
	"strings"
)

// KeywordSet matches any of its keywords on word boundaries.
type KeywordSet struct {
	patterns []*regexp.Regexp
}

func NewKeywordSet(keywords []string) KeywordSet {
	ks := KeywordSet{}
	for _, kw := range keywords {
		kw = strings.TrimSpace(strings.ToLower(kw))
		if kw == "" {
			continue
		}
		ks.patterns = append(ks.patterns, regexp.MustCompile(`(?i)\b`+regexp.QuoteMeta(kw)+`\b`))
	}
	return ks
}

func (ks KeywordSet) Match(text string) bool {
	_, ok := ks.Find(text)
	return ok
}

// Find returns the index just past the first keyword occurrence, trying
// keywords in order.
func (ks KeywordSet) Find(text string) (end int, ok bool) {
	for _, p := range ks.patterns {
		if loc := p.FindStringIndex(text); loc != nil {
			return loc[1], true
		}
	}
	return 0, false
}

// Index returns the start of the earliest keyword occurrence in text.
func (ks KeywordSet) Index(text string) (start int, ok bool) {
	start = -1
	for _, p := range ks.patterns {
		if loc := p.FindStringIndex(text); loc != nil && (start < 0 || loc[0] < start) {
			start = loc[0]
		}
	}
	return start, start >= 0
}

func (ks KeywordSet) Empty() bool {
	return len(ks.patterns) == 0
}
