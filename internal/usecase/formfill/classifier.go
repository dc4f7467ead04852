package formfill

import (
	"fmt"
	"strings"

	"web-assistant/internal/domain/entity"
)

// Classifier assigns a semantic category to a discovered field.
type Classifier interface {
	Classify(field entity.FieldDescriptor) (entity.FieldCategory, error)
}

var _ Classifier = (*KeywordClassifier)(nil)

// KeywordClassifier matches the concatenated field identifiers against
// ordered keyword rules. The first rule with a matching keyword wins.
type KeywordClassifier struct {
	rules []entity.FieldMatchRule
}

func NewKeywordClassifier(rules []entity.FieldMatchRule) *KeywordClassifier {
	if len(rules) == 0 {
		rules = DefaultRules()
	}
	normalized := make([]entity.FieldMatchRule, 0, len(rules))
	for _, r := range rules {
		kws := make([]string, 0, len(r.Keywords))
		for _, kw := range r.Keywords {
			if kw = strings.ToLower(strings.TrimSpace(kw)); kw != "" {
				kws = append(kws, kw)
			}
		}
		normalized = append(normalized, entity.FieldMatchRule{Category: r.Category, Keywords: kws})
	}
	return &KeywordClassifier{rules: normalized}
}

func (c *KeywordClassifier) Classify(field entity.FieldDescriptor) (entity.FieldCategory, error) {
	ident := identifier(field)
	if strings.TrimSpace(ident) == "" {
		return entity.CategoryNone, nil
	}
	for _, rule := range c.rules {
		for _, kw := range rule.Keywords {
			if strings.Contains(ident, kw) {
				return rule.Category, nil
			}
		}
	}
	return entity.CategoryNone, nil
}

func identifier(f entity.FieldDescriptor) string {
	return strings.ToLower(fmt.Sprintf("%s %s %s %s", f.Name, f.ID, f.Placeholder, f.LabelText))
}

func DefaultRules() []entity.FieldMatchRule {
	return []entity.FieldMatchRule{
		{Category: entity.CategoryName, Keywords: []string{"name", "full name", "fullname", "your name", "username", "user name", "fname", "first name", "firstname"}},
		{Category: entity.CategoryEmail, Keywords: []string{"email", "e-mail", "mail", "your email", "email address", "e-mail address"}},
		{Category: entity.CategoryPhone, Keywords: []string{"phone", "telephone", "mobile", "cell", "contact", "phone number", "tel"}},
		{Category: entity.CategoryAddress, Keywords: []string{"address", "street", "location", "your address"}},
		{Category: entity.CategoryCity, Keywords: []string{"city", "town"}},
		{Category: entity.CategoryCountry, Keywords: []string{"country", "nation"}},
		{Category: entity.CategoryMessage, Keywords: []string{"message", "comment", "comments", "description", "details", "query", "your message"}},
		{Category: entity.CategorySubject, Keywords: []string{"subject", "topic", "regarding"}},
		{Category: entity.CategoryCompany, Keywords: []string{"company", "organization", "organisation", "business"}},
		{Category: entity.CategoryWebsite, Keywords: []string{"website", "site", "url", "web"}},
	}
}

// DefaultProfile is the sample data used when no applicant profile is configured.
func DefaultProfile() map[entity.FieldCategory]string {
	return map[entity.FieldCategory]string{
		entity.CategoryName:    "John Doe",
		entity.CategoryEmail:   "john.doe@example.com",
		entity.CategoryPhone:   "1234567890",
		entity.CategoryAddress: "123 Main Street",
		entity.CategoryCity:    "New York",
		entity.CategoryCountry: "USA",
		entity.CategoryMessage: "This is an automated form submission.",
		entity.CategorySubject: "Inquiry",
		entity.CategoryCompany: "Example Corp",
		entity.CategoryWebsite: "https://example.com",
	}
}
