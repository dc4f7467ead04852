package entity

// FieldDescriptor is a snapshot of one form field taken during a single
// discovery pass. It is invalid after the page navigates.
type FieldDescriptor struct {
	Kind         string
	Name         string
	ID           string
	Placeholder  string
	LabelText    string
	CurrentValue string
	Visible      bool
}

// DisplayName is the first non-empty of name, id, placeholder and label.
func (f FieldDescriptor) DisplayName() string {
	switch {
	case f.Name != "":
		return f.Name
	case f.ID != "":
		return f.ID
	case f.Placeholder != "":
		return f.Placeholder
	default:
		return f.LabelText
	}
}

type FieldCategory string

const (
	CategoryName    FieldCategory = "name"
	CategoryEmail   FieldCategory = "email"
	CategoryPhone   FieldCategory = "phone"
	CategoryAddress FieldCategory = "address"
	CategoryCity    FieldCategory = "city"
	CategoryCountry FieldCategory = "country"
	CategoryMessage FieldCategory = "message"
	CategorySubject FieldCategory = "subject"
	CategoryCompany FieldCategory = "company"
	CategoryWebsite FieldCategory = "website"
	CategoryNone    FieldCategory = ""
)

// FieldMatchRule maps a category to the keywords that identify it.
// Rules are evaluated in slice order.
type FieldMatchRule struct {
	Category FieldCategory `yaml:"category"`
	Keywords []string      `yaml:"keywords"`
}

// Strategy is one way of locating a field.
type Strategy string

const (
	StrategyName        Strategy = "name"
	StrategyID          Strategy = "id"
	StrategyPlaceholder Strategy = "placeholder"
	StrategyLabel       Strategy = "label"
)

// Strategies lists the locate strategies in the order they are tried.
var Strategies = []Strategy{StrategyName, StrategyID, StrategyPlaceholder, StrategyLabel}

// Outcome is the result of a single automation primitive.
type Outcome string

const (
	OutcomeFound    Outcome = "found"
	OutcomeNotFound Outcome = "not_found"
	OutcomeTimeout  Outcome = "timeout"
	OutcomeFailed   Outcome = "failed"
)

func (o Outcome) OK() bool {
	return o == OutcomeFound
}

type FillStatus string

const (
	FillFilled   FillStatus = "filled"
	FillSkipped  FillStatus = "skipped"
	FillNotFound FillStatus = "not_found"
	FillError    FillStatus = "error"
)

type FillDetail struct {
	Field      string
	FilledWith string
	Value      string
	Status     FillStatus
}

// AutoFillReport summarizes one auto-fill pass.
type AutoFillReport struct {
	FormsFound   int
	FieldsFound  int
	FieldsFilled int
	Details      []FillDetail
}
