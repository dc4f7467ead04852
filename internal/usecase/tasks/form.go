package tasks

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"web-assistant/internal/application/port/output"
	"web-assistant/internal/domain/entity"
	"web-assistant/internal/usecase/formfill"
)

type AutoFillFormTask struct {
	surface output.AutomationSurface
	engine  *formfill.Engine
	profile map[entity.FieldCategory]string
	logger  output.LoggerPort
}

var _ output.TaskHandler = (*AutoFillFormTask)(nil)

func NewAutoFillFormTask(
	surface output.AutomationSurface,
	engine *formfill.Engine,
	profile map[entity.FieldCategory]string,
	logger output.LoggerPort,
) *AutoFillFormTask {
	if profile == nil {
		profile = formfill.DefaultProfile()
	}
	return &AutoFillFormTask{
		surface: surface,
		engine:  engine,
		profile: profile,
		logger:  logger,
	}
}

func (t *AutoFillFormTask) Intent() entity.Intent {
	return entity.IntentAutoFillForm
}

func (t *AutoFillFormTask) Execute(ctx context.Context, sess *entity.Session, _ entity.Command) entity.TaskResult {
	if res, ok := requireStarted(t.surface); !ok {
		return res
	}

	report, err := t.engine.AutoFill(ctx, t.profileFor(sess))
	if err != nil {
		t.logger.Error("Auto-fill failed", "error", err)
		return entity.Failed("Could not read the form on this page.\n\nTry manual form filling instead: \"fill [field] with [value]\"")
	}

	if report.FormsFound == 0 && report.FieldsFound == 0 {
		return entity.Failed("No forms detected on this page.\n\n" +
			"Make sure:\n" + bullets([]string{
			"The page has fully loaded",
			"You are on a page with a form",
			"The form is visible (not hidden)",
		}) + "\n\nTry scrolling down or navigating to a form page.")
	}

	var sb strings.Builder
	sb.WriteString("AUTO-FILL COMPLETE!\n\nResults:\n")
	fmt.Fprintf(&sb, "   - Forms found: %d\n", report.FormsFound)
	fmt.Fprintf(&sb, "   - Fields found: %d\n", report.FieldsFound)
	fmt.Fprintf(&sb, "   - Fields filled: %d\n", report.FieldsFilled)

	if len(report.Details) > 0 {
		sb.WriteString("\nField Details:\n")
		for _, d := range report.Details {
			name := d.Field
			if name == "" {
				name = "unnamed"
			}
			if d.Status == entity.FillFilled {
				fmt.Fprintf(&sb, "   [ok] %s: %s = %s\n", name, d.FilledWith, d.Value)
			} else {
				fmt.Fprintf(&sb, "   [%s] %s: skipped\n", d.Status, name)
			}
		}
	}

	status := entity.TaskStatus("")
	if report.FieldsFilled > 0 {
		status = entity.StatusFormFilled
		sb.WriteString("\nForm filled! Review the data and click submit when ready.\nSay \"click submit\" to submit the form")
	} else {
		sb.WriteString("\nNo fields were filled. The form might use custom fields.\nTry manual filling: \"fill [field] with [value]\"")
	}

	return entity.NewResult(report.FieldsFilled > 0, sb.String(), status).
		With("forms_found", report.FormsFound).
		With("fields_found", report.FieldsFound).
		With("fields_filled", report.FieldsFilled)
}

// profileFor overlays values the user gave with "fill X with Y" on the
// configured profile when X names a field category.
func (t *AutoFillFormTask) profileFor(sess *entity.Session) map[entity.FieldCategory]string {
	profile := make(map[entity.FieldCategory]string, len(t.profile))
	for k, v := range t.profile {
		profile[k] = v
	}
	if sess == nil {
		return profile
	}
	for field, value := range sess.FormData {
		category := entity.FieldCategory(field)
		if _, known := t.profile[category]; known && value != "" {
			profile[category] = value
		}
	}
	return profile
}

type FillFormTask struct {
	surface output.AutomationSurface
	engine  *formfill.Engine
	logger  output.LoggerPort
}

var _ output.TaskHandler = (*FillFormTask)(nil)

func NewFillFormTask(surface output.AutomationSurface, engine *formfill.Engine, logger output.LoggerPort) *FillFormTask {
	return &FillFormTask{surface: surface, engine: engine, logger: logger}
}

func (t *FillFormTask) Intent() entity.Intent {
	return entity.IntentFillForm
}

func (t *FillFormTask) Execute(ctx context.Context, sess *entity.Session, cmd entity.Command) entity.TaskResult {
	field := strings.ToLower(cmd.Slot(entity.SlotField))
	value := cmd.Slot(entity.SlotValue)
	action := cmd.Slot(entity.SlotAction)

	switch {
	case action == entity.ActionSubmit:
		return t.submit(ctx)
	case action == entity.ActionEnter:
		return t.pressEnter(ctx)
	case action == entity.ActionType:
		return t.typeText(ctx, value)
	case action == entity.ActionFillAll:
		return t.fillAll(ctx, sess)
	case field != "" && value != "":
		return t.fillOne(ctx, sess, field, value)
	case field == "" && action == "":
		return entity.Succeeded(fillHelp, entity.StatusReady)
	default:
		return entity.Failed("Invalid command. Try: \"fill name with John Doe\" or \"fill form\" for help")
	}
}

func (t *FillFormTask) submit(ctx context.Context) entity.TaskResult {
	if res, ok := requireStarted(t.surface); !ok {
		return res
	}
	text, outcome := t.engine.ClickButtonByText(ctx, formfill.SubmitCandidates)
	if !outcome.OK() {
		return entity.Failed("Could not find submit button.\n\nTry: \"press enter\" or specify button text.")
	}
	return entity.Succeeded(fmt.Sprintf("%s button clicked!\n\nForm submitted.", text), "")
}

func (t *FillFormTask) pressEnter(ctx context.Context) entity.TaskResult {
	if res, ok := requireStarted(t.surface); !ok {
		return res
	}
	if err := t.surface.PressEnter(ctx); err != nil {
		t.logger.Warn("Press enter failed", "error", err)
		return entity.Failed("Could not press Enter. Click on a field first.")
	}
	return entity.Succeeded("Enter key pressed!", "")
}

func (t *FillFormTask) typeText(ctx context.Context, text string) entity.TaskResult {
	if res, ok := requireStarted(t.surface); !ok {
		return res
	}
	if strings.TrimSpace(text) == "" {
		return entity.Failed("Tell me what to type. Example: \"type hello world\"")
	}
	if err := t.surface.TypeActive(ctx, text); err != nil {
		t.logger.Warn("Typing failed", "error", err)
		return entity.Failed("Could not type. Click on a field first.")
	}
	return entity.Succeeded(fmt.Sprintf("Typed: %s", text), "")
}

func (t *FillFormTask) fillOne(ctx context.Context, sess *entity.Session, field, value string) entity.TaskResult {
	if res, ok := requireStarted(t.surface); !ok {
		return res
	}
	sess.FormData[field] = value

	attempt := t.engine.FillByIdentifier(ctx, field, value)
	if !attempt.Outcome.OK() {
		return entity.Failed(fmt.Sprintf("Could not find field: %s\n\nTips:\n", field) + bullets([]string{
			"Make sure the field is visible",
			fmt.Sprintf("Try: \"type %s\" after clicking the field", value),
			"Check field name on the website",
			"Try different field names (e.g., \"email\" vs \"e-mail\")",
		}))
	}

	return entity.Succeeded(
		fmt.Sprintf("Field filled successfully!\n\nField: %s\nValue: %s\nMethod: %s\n\nContinue with more fields or say \"click submit\"",
			field, value, attempt.Strategy),
		entity.StatusFormFilled,
	).With(entity.SlotField, field).With(entity.SlotValue, value)
}

func (t *FillFormTask) fillAll(ctx context.Context, sess *entity.Session) entity.TaskResult {
	if len(sess.FormData) == 0 {
		return entity.Failed("No form data stored. First provide data with \"fill [field] with [value]\"")
	}
	if res, ok := requireStarted(t.surface); !ok {
		return res
	}

	fields := make([]string, 0, len(sess.FormData))
	for f := range sess.FormData {
		fields = append(fields, f)
	}
	sort.Strings(fields)

	var sb strings.Builder
	filled := 0
	for _, f := range fields {
		attempt := t.engine.FillByIdentifier(ctx, f, sess.FormData[f])
		if attempt.Outcome.OK() {
			filled++
			fmt.Fprintf(&sb, "%s: filled (%s)\n", f, attempt.Strategy)
		} else {
			fmt.Fprintf(&sb, "%s: %s\n", f, attempt.Outcome)
		}
	}

	summary := "Some fields could not be filled"
	if filled == len(fields) {
		summary = "Ready to submit!"
	}
	status := entity.TaskStatus("")
	if filled > 0 {
		status = entity.StatusFormFilled
	}
	return entity.NewResult(filled > 0,
		fmt.Sprintf("Form Filling Results:\n\n%s\nSuccess: %d/%d fields\n\n%s", sb.String(), filled, len(fields), summary),
		status,
	)
}

const fillHelp = `Smart Form Filling Assistant

I can fill forms on any website.

Commands:
   - "fill name with [your name]" - Fill name field
   - "fill email with [email]" - Fill email field
   - "type [text]" - Type in focused field
   - "click submit" - Click submit button
   - "press enter" - Press Enter key
   - "fill all" - Fill every field you gave me again
   - "auto fill" - Detect and fill the whole form

Example Workflow:
1. "open example.com/contact"
2. "fill name with John Doe"
3. "fill email with john@email.com"
4. "click submit"

Fields are found by name, id, placeholder or label text.`
