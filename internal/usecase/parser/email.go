package parser

import (
	"regexp"
	"strings"

	"web-assistant/internal/domain/entity"
)

var (
	subjectPattern = regexp.MustCompile(`(?is)\bsubject\s*[:=]\s*(.+?)(?:\s*\b(?:body|message)\s*[:=]|$)`)
	bodyPattern    = regexp.MustCompile(`(?is)\b(?:body|message)\s*[:=]\s*(.+)$`)
)

// ExtractEmailFields pulls a recipient address and the "subject:" and
// "body:" sections out of text. Missing parts are left empty.
func ExtractEmailFields(text string) entity.EmailFields {
	var f entity.EmailFields
	f.Recipient = emailPattern.FindString(text)
	if m := subjectPattern.FindStringSubmatch(text); m != nil {
		f.Subject = strings.TrimSpace(m[1])
	}
	if m := bodyPattern.FindStringSubmatch(text); m != nil {
		f.Body = strings.TrimSpace(m[1])
	}
	return f
}
