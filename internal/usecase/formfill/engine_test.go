package formfill

import (
	"context"
	"errors"
	"testing"

	"web-assistant/internal/domain/entity"
	"web-assistant/internal/infrastructure/browser/memory"
	"web-assistant/internal/infrastructure/logger"
	"web-assistant/internal/infrastructure/metrics"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const pageURL = "https://forms.test/contact"

func contactPage() memory.Page {
	return memory.Page{
		Forms: 1,
		Fields: []entity.FieldDescriptor{
			{Kind: "text", Name: "full_name", ID: "fn", Visible: true},
			{Kind: "email", ID: "contact-email", Placeholder: "Your e-mail", Visible: true},
			{Kind: "tel", Placeholder: "Phone number", Visible: true},
			{Kind: "text", Name: "city", Visible: true, CurrentValue: "Lahore"},
			{Kind: "text", Name: "secret_code", Visible: true},
			{Kind: "text", Name: "nickname", Visible: false},
			{Kind: "hidden", Name: "csrf_token"},
			{Kind: "submit", Name: "send"},
			{Kind: "textarea", LabelText: "Your Message", Visible: true},
		},
		Buttons: []string{"Send message"},
	}
}

func newEngine(t *testing.T, page memory.Page) (*Engine, *memory.Surface) {
	t.Helper()
	surface := memory.New()
	surface.AddPage(pageURL, page)
	ctx := context.Background()
	require.NoError(t, surface.Start(ctx))
	require.NoError(t, surface.OpenURL(ctx, pageURL))

	engine := NewEngine(surface, NewKeywordClassifier(nil), metrics.Nop{}, logger.NewNop())
	return engine, surface
}

func TestEngine_DiscoverFieldsExcludesNonInputs(t *testing.T) {
	engine, _ := newEngine(t, contactPage())

	snapshot, err := engine.DiscoverFields(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, snapshot.Forms)
	assert.Len(t, snapshot.Fields, 7)
	for _, f := range snapshot.Fields {
		assert.NotContains(t, []string{"hidden", "submit", "button", "image", "reset"}, f.Kind)
	}
}

func TestEngine_DiscoverFieldsNotStarted(t *testing.T) {
	engine := NewEngine(memory.New(), NewKeywordClassifier(nil), metrics.Nop{}, logger.NewNop())

	_, err := engine.DiscoverFields(context.Background())
	assert.ErrorIs(t, err, entity.ErrSurfaceNotStarted)
}

func TestEngine_AutoFill(t *testing.T) {
	engine, surface := newEngine(t, contactPage())

	report, err := engine.AutoFill(context.Background(), DefaultProfile())
	require.NoError(t, err)

	assert.Equal(t, 1, report.FormsFound)
	assert.Equal(t, 7, report.FieldsFound)
	assert.Equal(t, 4, report.FieldsFilled)

	assert.Equal(t, "John Doe", surface.Value("full_name"))
	assert.Equal(t, "john.doe@example.com", surface.Value("contact-email"))
	assert.Equal(t, "Lahore", surface.Value("city"), "prefilled field must be left alone")
	assert.Equal(t, "", surface.Value("nickname"), "invisible field must be left alone")

	statuses := map[string]entity.FillStatus{}
	for _, d := range report.Details {
		statuses[d.Field] = d.Status
	}
	assert.Equal(t, entity.FillFilled, statuses["full_name"])
	assert.Equal(t, entity.FillFilled, statuses["Phone number"])
	assert.Equal(t, entity.FillFilled, statuses["Your Message"], "label-only field is reported by its label")
	assert.Equal(t, entity.FillSkipped, statuses["secret_code"])
}

func TestEngine_AutoFillIsIdempotent(t *testing.T) {
	engine, _ := newEngine(t, contactPage())
	ctx := context.Background()

	first, err := engine.AutoFill(ctx, DefaultProfile())
	require.NoError(t, err)
	require.Positive(t, first.FieldsFilled)

	second, err := engine.AutoFill(ctx, DefaultProfile())
	require.NoError(t, err)
	assert.Zero(t, second.FieldsFilled)
}

type failingClassifier struct {
	fail string
}

func (c failingClassifier) Classify(f entity.FieldDescriptor) (entity.FieldCategory, error) {
	if f.Name == c.fail {
		return entity.CategoryNone, errors.New("classifier exploded")
	}
	return NewKeywordClassifier(nil).Classify(f)
}

func TestEngine_AutoFillClassificationErrorDoesNotAbort(t *testing.T) {
	surface := memory.New()
	surface.AddPage(pageURL, contactPage())
	ctx := context.Background()
	require.NoError(t, surface.Start(ctx))
	require.NoError(t, surface.OpenURL(ctx, pageURL))
	engine := NewEngine(surface, failingClassifier{fail: "full_name"}, metrics.Nop{}, logger.NewNop())

	report, err := engine.AutoFill(ctx, DefaultProfile())
	require.NoError(t, err)

	assert.Equal(t, entity.FillError, report.Details[0].Status)
	assert.Equal(t, 3, report.FieldsFilled)
}

func TestEngine_FillFieldStrategyOrder(t *testing.T) {
	engine, surface := newEngine(t, contactPage())

	field := entity.FieldDescriptor{ID: "contact-email", Placeholder: "Your e-mail"}
	attempt := engine.FillField(context.Background(), field, "a@b.co")

	assert.Equal(t, entity.OutcomeFound, attempt.Outcome)
	assert.Equal(t, entity.StrategyID, attempt.Strategy)

	calls := surface.FillCalls()
	require.Len(t, calls, 1, "empty name locator must be skipped")
	assert.Equal(t, entity.StrategyID, calls[0].Strategy)
}

func TestEngine_FillFieldNoLocatorMatches(t *testing.T) {
	engine, _ := newEngine(t, contactPage())

	attempt := engine.FillField(context.Background(), entity.FieldDescriptor{Name: "missing"}, "x")
	assert.Equal(t, entity.OutcomeNotFound, attempt.Outcome)
}

func TestEngine_FillByIdentifierIsBounded(t *testing.T) {
	engine, surface := newEngine(t, memory.Page{})

	attempt := engine.FillByIdentifier(context.Background(), "first name", "Ann")

	assert.Equal(t, entity.OutcomeNotFound, attempt.Outcome)
	assert.LessOrEqual(t, len(surface.FillCalls()), 16)
	assert.Len(t, surface.FillCalls(), 12, "three distinct casings times four strategies")
}

func TestEngine_FillByIdentifierUsesCasingVariants(t *testing.T) {
	engine, surface := newEngine(t, memory.Page{
		Fields: []entity.FieldDescriptor{{Kind: "text", Name: "Email", Visible: true}},
	})

	attempt := engine.FillByIdentifier(context.Background(), "email", "me@x.io")

	assert.Equal(t, entity.OutcomeFound, attempt.Outcome)
	assert.Equal(t, "Email", attempt.Locator)
	assert.Equal(t, "me@x.io", surface.Value("Email"))
}

func TestEngine_ClickButtonByText(t *testing.T) {
	engine, surface := newEngine(t, contactPage())

	text, outcome := engine.ClickButtonByText(context.Background(), SubmitCandidates)
	assert.Equal(t, entity.OutcomeFound, outcome)
	assert.Equal(t, "Send", text)
	assert.Equal(t, []string{"Send message"}, surface.Clicks())
}

func TestEngine_ClickButtonByTextNoMatch(t *testing.T) {
	engine, _ := newEngine(t, memory.Page{})

	text, outcome := engine.ClickButtonByText(context.Background(), SubmitCandidates)
	assert.Empty(t, text)
	assert.Equal(t, entity.OutcomeNotFound, outcome)
}

func TestCasingVariants(t *testing.T) {
	assert.Equal(t, []string{"first name", "First Name", "FIRST NAME"}, casingVariants("first name"))
	assert.Equal(t, []string{"eMail", "Email", "EMAIL", "email"}, casingVariants("eMail"))
	assert.Nil(t, casingVariants("  "))
}
