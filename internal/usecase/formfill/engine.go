// Package formfill discovers, classifies and fills form fields on the page
// held by an AutomationSurface. Every primitive reports an explicit outcome;
// a failure on one field never stops the rest of a batch.
package formfill

import (
	"context"
	"fmt"
	"strings"

	"web-assistant/internal/application/port/output"
	"web-assistant/internal/domain/entity"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var excludedKinds = map[string]struct{}{
	"hidden": {},
	"submit": {},
	"button": {},
	"image":  {},
	"reset":  {},
}

// SubmitCandidates are the button labels tried when submitting a form.
var SubmitCandidates = []string{"Submit", "Send", "Apply", "Continue", "Next"}

// Attempt describes how a fill request was resolved.
type Attempt struct {
	Strategy entity.Strategy
	Locator  string
	Outcome  entity.Outcome
}

type Engine struct {
	surface    output.AutomationSurface
	classifier Classifier
	metrics    output.MetricsPort
	logger     output.LoggerPort
}

func NewEngine(
	surface output.AutomationSurface,
	classifier Classifier,
	metrics output.MetricsPort,
	logger output.LoggerPort,
) *Engine {
	return &Engine{
		surface:    surface,
		classifier: classifier,
		metrics:    metrics,
		logger:     logger,
	}
}

// DiscoverFields returns the fillable fields of the current page.
func (e *Engine) DiscoverFields(ctx context.Context) (*entity.FormSnapshot, error) {
	snapshot, err := e.surface.DiscoverFields(ctx)
	if err != nil {
		return nil, fmt.Errorf("discover fields: %w", err)
	}

	fields := make([]entity.FieldDescriptor, 0, len(snapshot.Fields))
	for _, f := range snapshot.Fields {
		kind := strings.ToLower(f.Kind)
		if kind == "" {
			kind = "text"
		}
		if _, skip := excludedKinds[kind]; skip {
			continue
		}
		f.Kind = kind
		fields = append(fields, f)
	}

	return &entity.FormSnapshot{Forms: snapshot.Forms, Fields: fields}, nil
}

// FillField tries the field's name, id, placeholder and label in that order,
// skipping empty locators, and stops at the first strategy that works.
func (e *Engine) FillField(ctx context.Context, field entity.FieldDescriptor, value string) Attempt {
	locators := []struct {
		strategy entity.Strategy
		locator  string
	}{
		{entity.StrategyName, field.Name},
		{entity.StrategyID, field.ID},
		{entity.StrategyPlaceholder, field.Placeholder},
		{entity.StrategyLabel, field.LabelText},
	}

	last := Attempt{Outcome: entity.OutcomeNotFound}
	for _, l := range locators {
		if strings.TrimSpace(l.locator) == "" {
			continue
		}
		attempt := e.try(ctx, l.strategy, l.locator, value)
		if attempt.Outcome.OK() {
			return attempt
		}
		last = attempt
	}
	return last
}

// FillByIdentifier fills the field a user named in free text. Each casing
// variant of identifier is tried with every strategy, so at most
// 4 variants x 4 strategies locate calls are made.
func (e *Engine) FillByIdentifier(ctx context.Context, identifier, value string) Attempt {
	last := Attempt{Outcome: entity.OutcomeNotFound}
	for _, variant := range casingVariants(identifier) {
		for _, strategy := range entity.Strategies {
			attempt := e.try(ctx, strategy, variant, value)
			if attempt.Outcome.OK() {
				return attempt
			}
			last = attempt
		}
	}
	return last
}

// AutoFill fills every visible, empty field it can classify with the
// matching profile value. Fields that already hold a value are left alone,
// so running it twice fills nothing the second time.
func (e *Engine) AutoFill(ctx context.Context, profile map[entity.FieldCategory]string) (*entity.AutoFillReport, error) {
	snapshot, err := e.DiscoverFields(ctx)
	if err != nil {
		return nil, err
	}

	report := &entity.AutoFillReport{
		FormsFound:  snapshot.Forms,
		FieldsFound: len(snapshot.Fields),
	}

	for _, field := range snapshot.Fields {
		if !field.Visible || field.CurrentValue != "" {
			continue
		}

		detail := entity.FillDetail{Field: field.DisplayName()}

		category, err := e.classifier.Classify(field)
		if err != nil {
			e.logger.Warn("Field classification failed", "field", detail.Field, "error", err)
			detail.Status = entity.FillError
			report.Details = append(report.Details, detail)
			continue
		}

		value := profile[category]
		if category == entity.CategoryNone || value == "" {
			detail.FilledWith = string(entity.FillSkipped)
			detail.Status = entity.FillSkipped
			report.Details = append(report.Details, detail)
			continue
		}

		attempt := e.FillField(ctx, field, value)
		detail.FilledWith = string(category)
		switch attempt.Outcome {
		case entity.OutcomeFound:
			detail.Value = value
			detail.Status = entity.FillFilled
			report.FieldsFilled++
		case entity.OutcomeNotFound, entity.OutcomeTimeout:
			detail.Status = entity.FillNotFound
		default:
			detail.Status = entity.FillError
		}
		report.Details = append(report.Details, detail)
	}

	e.logger.Info("Auto-fill finished",
		"forms", report.FormsFound,
		"fields", report.FieldsFound,
		"filled", report.FieldsFilled,
	)
	return report, nil
}

// ClickButtonByText clicks the first candidate label that resolves to a
// clickable element and returns it.
func (e *Engine) ClickButtonByText(ctx context.Context, candidates []string) (string, entity.Outcome) {
	last := entity.OutcomeNotFound
	for _, text := range candidates {
		err := e.surface.ClickByText(ctx, text)
		outcome := entity.OutcomeFromError(err)
		if outcome.OK() {
			e.logger.Debug("Button clicked", "text", text)
			return text, outcome
		}
		last = outcome
	}
	return "", last
}

func (e *Engine) try(ctx context.Context, strategy entity.Strategy, locator, value string) Attempt {
	err := e.surface.Fill(ctx, strategy, locator, value)
	outcome := entity.OutcomeFromError(err)
	e.metrics.ObserveFill(strategy, outcome)
	if err != nil {
		e.logger.Debug("Fill attempt failed", "strategy", strategy, "locator", locator, "outcome", outcome)
	}
	return Attempt{Strategy: strategy, Locator: locator, Outcome: outcome}
}

func casingVariants(identifier string) []string {
	identifier = strings.TrimSpace(identifier)
	if identifier == "" {
		return nil
	}
	candidates := []string{
		identifier,
		cases.Title(language.Und).String(identifier),
		strings.ToUpper(identifier),
		strings.ToLower(identifier),
	}
	seen := make(map[string]struct{}, len(candidates))
	result := make([]string, 0, len(candidates))
	for _, c := range candidates {
		if _, ok := seen[c]; ok {
			continue
		}
		seen[c] = struct{}{}
		result = append(result, c)
	}
	return result
}
