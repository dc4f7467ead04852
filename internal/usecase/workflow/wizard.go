// Package workflow drives the multi-step application wizard held in a
// session's WorkflowState.
package workflow

import (
	"fmt"
	"hash/fnv"
	"strings"

	"web-assistant/internal/domain/entity"
	"web-assistant/internal/usecase/parser"
)

type Trigger string

const (
	TriggerProgress Trigger = "progress"
	TriggerFinalize Trigger = "finalize"
	TriggerCapture  Trigger = "capture"
)

// Transition is the effect of a trigger at a step. Submit marks the
// workflow submitted instead of moving to another step.
type Transition struct {
	To     entity.Step
	Submit bool
}

type transitionKey struct {
	from    entity.Step
	trigger Trigger
}

// transitions lists every defined (step, trigger) pair. Steps only move
// forward; a trigger without an entry falls back to capturing the text.
var transitions = map[transitionKey]Transition{
	{entity.StepPersonalInfo, TriggerProgress}:      {To: entity.StepSelectProgram},
	{entity.StepSelectProgram, TriggerProgress}:     {To: entity.StepUploadDocuments},
	{entity.StepUploadDocuments, TriggerProgress}:   {To: entity.StepSubmitApplication},
	{entity.StepSubmitApplication, TriggerProgress}: {Submit: true},
	{entity.StepSubmitApplication, TriggerFinalize}: {Submit: true},
}

// Lookup returns the transition defined for trigger at step.
func Lookup(step entity.Step, trigger Trigger) (Transition, bool) {
	t, ok := transitions[transitionKey{from: step, trigger: trigger}]
	return t, ok
}

type Config struct {
	ProgressKeywords []string
	FinalizeKeywords []string
	// MaxTriggerWords bounds how long an utterance may be for the wizard to
	// treat a recognized command as a step trigger.
	MaxTriggerWords     int
	ApplicationIDPrefix string
	Institution         string
}

func DefaultConfig() Config {
	return Config{
		ProgressKeywords:    []string{"next", "continue", "done", "finished", "submit", "final"},
		FinalizeKeywords:    []string{"yes", "confirm", "approve", "ok", "okay", "agreed"},
		MaxTriggerWords:     4,
		ApplicationIDPrefix: "RIPHAH-2026",
		Institution:         "Riphah International University",
	}
}

type Wizard struct {
	cfg      Config
	progress parser.KeywordSet
	finalize parser.KeywordSet
}

func NewWizard(cfg Config) *Wizard {
	if cfg.MaxTriggerWords <= 0 {
		cfg.MaxTriggerWords = DefaultConfig().MaxTriggerWords
	}
	return &Wizard{
		cfg:      cfg,
		progress: parser.NewKeywordSet(cfg.ProgressKeywords),
		finalize: parser.NewKeywordSet(cfg.FinalizeKeywords),
	}
}

// Classify reports which trigger class text belongs to.
func (w *Wizard) Classify(text string) Trigger {
	switch {
	case w.progress.Match(text):
		return TriggerProgress
	case w.finalize.Match(text):
		return TriggerFinalize
	default:
		return TriggerCapture
	}
}

// Claims reports whether the active wizard consumes this turn instead of
// the command dispatcher. Free text the parser could not classify is always
// claimed, and so is text naming the current step, which at a capture step
// is usually the answer itself ("Mark Sheet"). Other admissions commands are
// claimed only as short trigger phrases. Any other recognized command goes
// to the dispatcher unless it is exactly a trigger word such as "submit".
func (w *Wizard) Claims(state *entity.WorkflowState, cmd entity.Command) bool {
	if !state.Active() {
		return false
	}
	switch cmd.Intent {
	case entity.IntentUnknown:
		return true
	case entity.IntentAdmissionsApply:
		if entity.Step(cmd.Slot(entity.SlotStep)) == state.CurrentStep {
			return true
		}
		return w.Classify(cmd.RawText) != TriggerCapture &&
			len(strings.Fields(cmd.RawText)) <= w.cfg.MaxTriggerWords
	default:
		return w.triggerWord(cmd.RawText)
	}
}

func (w *Wizard) triggerWord(text string) bool {
	text = strings.TrimSpace(text)
	for _, set := range [][]string{w.cfg.ProgressKeywords, w.cfg.FinalizeKeywords} {
		for _, kw := range set {
			if strings.EqualFold(text, kw) {
				return true
			}
		}
	}
	return false
}

// Handle applies one turn of text to an active wizard.
func (w *Wizard) Handle(state *entity.WorkflowState, text string) entity.TaskResult {
	text = strings.TrimSpace(text)
	step := state.CurrentStep

	if trigger := w.Classify(text); trigger != TriggerCapture {
		if t, ok := Lookup(step, trigger); ok {
			if t.Submit {
				return w.submit(state)
			}
			state.Advance(entity.IntentAdmissionsApply, t.To)
			return w.entered(state)
		}
	}

	return w.capture(state, text)
}

func (w *Wizard) submit(state *entity.WorkflowState) entity.TaskResult {
	if state.Submitted() {
		return entity.Succeeded(
			fmt.Sprintf("Your application was already submitted.\nApplication ID: %s\n\nSay 'clear history' to start a new application.",
				state.Text(entity.FormApplicationID)),
			entity.StatusSubmitted,
		).With(entity.DataStep, string(state.CurrentStep))
	}

	id := w.applicationID(state)
	state.FormData[entity.FormSubmitted] = true
	state.FormData[entity.FormApplicationID] = id

	msg := fmt.Sprintf(
		"APPLICATION SUBMITTED SUCCESSFULLY!\n\n"+
			"Your application to %s has been received.\n"+
			"Confirmation email will be sent to your registered email.\n"+
			"Application ID: %s\n\n"+
			"Thank you for applying!",
		w.cfg.Institution, id,
	)
	return entity.Succeeded(msg, entity.StatusSubmitted).
		With(entity.DataStep, string(state.CurrentStep)).
		With("application_id", id)
}

func (w *Wizard) entered(state *entity.WorkflowState) entity.TaskResult {
	var msg string
	switch state.CurrentStep {
	case entity.StepSelectProgram:
		msg = fmt.Sprintf("Personal information saved!\n\nName: %s\n\nStep 3: Program Selection\nTell me the program you want to apply for.",
			orDefault(state.Text(entity.FormName), "Pending"))
	case entity.StepUploadDocuments:
		msg = fmt.Sprintf("Program confirmed!\n\nSelected: %s\n\nStep 4: Document Upload\nName each document you are providing.",
			orDefault(state.Text(entity.FormProgram), "Pending"))
	case entity.StepSubmitApplication:
		msg = fmt.Sprintf(
			"Documents recorded!\n\nStep 5: Final Submission\n\nYour Application Summary:\nName: %s\nProgram: %s\nDocuments: %d\n\n"+
				"Ready to submit? Say 'confirm' or 'yes' to finalize.",
			orDefault(state.Text(entity.FormName), "Not provided"),
			orDefault(state.Text(entity.FormProgram), "Not selected"),
			len(state.Documents()),
		)
		return entity.Succeeded(msg, entity.StatusSubmissionReady).With(entity.DataStep, string(state.CurrentStep))
	default:
		msg = "Please use specific commands for this step."
	}
	return entity.Succeeded(msg, entity.StatusWorkflow).With(entity.DataStep, string(state.CurrentStep))
}

func (w *Wizard) capture(state *entity.WorkflowState, text string) entity.TaskResult {
	step := state.CurrentStep
	var msg string

	switch step {
	case entity.StepPersonalInfo:
		state.FormData[entity.FormName] = text
		msg = fmt.Sprintf("Name recorded: %s\n\nPlease provide additional information:\n"+
			"- Email: [your email]\n- Phone: [your phone]\n- Date of Birth: [DD/MM/YYYY]\n\n"+
			"Type 'next' when done with this step.", text)
	case entity.StepSelectProgram:
		state.FormData[entity.FormProgram] = text
		msg = fmt.Sprintf("Program selected: %s\n\nGreat choice! Program '%s' has been noted.\n\n"+
			"Type 'next' to proceed to Step 4 (Document Upload).", text, text)
	case entity.StepUploadDocuments:
		n := state.AddDocument(text)
		msg = fmt.Sprintf("Document recorded: %s\n\nUploaded documents: %d\n\n"+
			"Type 'next' or 'submit' when ready to finalize.", text, n)
	case entity.StepSubmitApplication:
		if state.Submitted() {
			return w.submit(state)
		}
		return entity.Succeeded(
			"Ready to submit? Please confirm:\nType 'YES', 'CONFIRM', or 'SUBMIT' to finalize your application.",
			entity.StatusSubmissionReady,
		).With(entity.DataStep, string(step))
	default:
		msg = "Please use specific commands for this step."
	}

	return entity.Succeeded(msg, entity.StatusWorkflow).With(entity.DataStep, string(step))
}

func (w *Wizard) applicationID(state *entity.WorkflowState) string {
	h := fnv.New32a()
	fmt.Fprintf(h, "%s|%s|%s", state.Text(entity.FormName), state.Text(entity.FormProgram), strings.Join(state.Documents(), ","))
	return fmt.Sprintf("%s-%04d", w.cfg.ApplicationIDPrefix, h.Sum32()%10000)
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
