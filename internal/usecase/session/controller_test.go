package session

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"web-assistant/internal/application/service"
	"web-assistant/internal/domain/entity"
	"web-assistant/internal/infrastructure/browser/memory"
	"web-assistant/internal/infrastructure/logger"
	"web-assistant/internal/usecase/executor"
	"web-assistant/internal/usecase/formfill"
	"web-assistant/internal/usecase/parser"
	"web-assistant/internal/usecase/tasks"
	"web-assistant/internal/usecase/workflow"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type turn struct {
	intent entity.Intent
	bucket entity.Bucket
}

type recordingMetrics struct {
	mu    sync.Mutex
	turns []turn
}

func (m *recordingMetrics) ObserveTurn(intent entity.Intent, bucket entity.Bucket) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.turns = append(m.turns, turn{intent, bucket})
}

func (m *recordingMetrics) ObserveFill(entity.Strategy, entity.Outcome) {}

type recordingSpeaker struct {
	mu     sync.Mutex
	spoken []string
}

func (s *recordingSpeaker) Speak(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.spoken = append(s.spoken, text)
}

type fixture struct {
	ctrl    *Controller
	surface *memory.Surface
	metrics *recordingMetrics
	speaker *recordingSpeaker
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	log := logger.NewNop()
	m := &recordingMetrics{}
	sp := &recordingSpeaker{}

	surface := memory.New()
	surface.AddPage("*", memory.Page{Buttons: []string{"Send"}})
	engine := formfill.NewEngine(surface, formfill.NewKeywordClassifier(nil), m, log)

	reg := service.NewTaskRegistry()
	for _, h := range tasks.All(tasks.Deps{
		Surface:       surface,
		Engine:        engine,
		Launcher:      noLauncher{},
		Logger:        log,
		Portal:        tasks.DefaultPortal(),
		Email:         tasks.DefaultEmailConfig(),
		ScreenshotDir: t.TempDir(),
	}) {
		reg.Register(h)
	}

	ctrl := NewController(
		NewStore(),
		reg,
		parser.New(parser.DefaultVocabulary()),
		workflow.NewWizard(workflow.DefaultConfig()),
		executor.New(reg, log),
		m,
		sp,
		log,
	)
	return &fixture{ctrl: ctrl, surface: surface, metrics: m, speaker: sp}
}

type noLauncher struct{}

func (noLauncher) Launch(context.Context, string) error { return nil }

func (f *fixture) say(t *testing.T, session, text string) entity.TaskResult {
	t.Helper()
	res, err := f.ctrl.HandleText(context.Background(), session, text)
	require.NoError(t, err)
	return res
}

func TestController_OpenURL(t *testing.T) {
	f := newFixture(t)

	res := f.say(t, "s1", "open example.com")

	assert.True(t, res.Success)
	assert.Equal(t, entity.BucketRunning, res.Bucket())
	assert.Equal(t, []string{"https://example.com"}, f.surface.Visited())
	assert.NotEmpty(t, res.String(entity.DataTaskID))
	assert.Equal(t, "open example.com", res.String(entity.DataTaskTitle))
	assert.Equal(t, []turn{{entity.IntentOpenURL, entity.BucketRunning}}, f.metrics.turns)
	assert.Equal(t, []string{res.Message}, f.speaker.spoken)
}

func TestController_UnknownGetsHelp(t *testing.T) {
	f := newFixture(t)

	res := f.say(t, "s1", "blah blah")

	assert.False(t, res.Success)
	assert.Contains(t, res.Message, "Command not recognized")
	assert.Equal(t, entity.BucketError, res.Bucket())
}

func TestController_EmptyInput(t *testing.T) {
	f := newFixture(t)

	res := f.say(t, "s1", "   ")

	assert.False(t, res.Success)
	assert.Equal(t, "New task", res.String(entity.DataTaskTitle))
}

func TestController_CancelledContext(t *testing.T) {
	f := newFixture(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := f.ctrl.HandleText(ctx, "s1", "open example.com")

	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, f.surface.Visited())
}

func TestController_ApplicationWizard(t *testing.T) {
	f := newFixture(t)
	const s = "applicant"

	res := f.say(t, s, "apply for admission")
	require.Equal(t, entity.StatusPortalOpened, res.Status())

	res = f.say(t, s, "personal info")
	require.True(t, res.Success)

	f.say(t, s, "Ayesha Khan")
	res = f.say(t, s, "next")
	assert.Contains(t, res.Message, "Ayesha Khan")

	res = f.say(t, s, "BS Computer Science")
	assert.Contains(t, res.Message, "Program selected: BS Computer Science")
	assert.Contains(t, res.Message, "'next'")

	f.say(t, s, "next")
	f.say(t, s, "CNIC copy")
	res = f.say(t, s, "done")
	assert.Equal(t, entity.StatusSubmissionReady, res.Status())
	assert.Contains(t, res.Message, "Program: BS Computer Science")

	res = f.say(t, s, "confirm")
	assert.Equal(t, entity.StatusSubmitted, res.Status())
	assert.Contains(t, res.Message, "SUBMITTED SUCCESSFULLY")
	id := res.Data["application_id"]

	res = f.say(t, s, "confirm")
	assert.Contains(t, res.Message, "already submitted")
	assert.Contains(t, res.Message, fmt.Sprint(id))

	res = f.say(t, s, "select program")
	assert.False(t, res.Success, "steps cannot go back")
}

func TestController_WizardLetsCommandsThrough(t *testing.T) {
	f := newFixture(t)
	const s = "applicant"

	f.say(t, s, "personal info")
	res := f.say(t, s, "open example.com")

	assert.Equal(t, entity.StatusOpened, res.Status())
	assert.Equal(t, []string{"https://example.com"}, f.surface.Visited())
}

func TestController_PageSubmitDuringWizard(t *testing.T) {
	f := newFixture(t)
	const s = "applicant"

	f.say(t, s, "open example.com")
	f.say(t, s, "personal info")
	res := f.say(t, s, "click submit")

	assert.Equal(t, []string{"Send"}, f.surface.Clicks())
	assert.NotEqual(t, entity.IntentAdmissionsApply, f.metrics.turns[2].intent)
	assert.NotEqual(t, string(entity.StepSelectProgram), res.String(entity.DataStep))

	res = f.say(t, s, "Ayesha Khan")
	assert.Contains(t, res.Message, "Name recorded: Ayesha Khan", "wizard stayed on personal info")
}

func TestController_DocumentNamesAreRecorded(t *testing.T) {
	f := newFixture(t)
	const s = "applicant"

	f.say(t, s, "personal info")
	f.say(t, s, "next")
	res := f.say(t, s, "next")
	require.Equal(t, string(entity.StepUploadDocuments), res.String(entity.DataStep))

	res = f.say(t, s, "Mark Sheet")
	assert.Contains(t, res.Message, "Document recorded: Mark Sheet")

	res = f.say(t, s, "Identity Proof")
	assert.Contains(t, res.Message, "Document recorded: Identity Proof")
	assert.Contains(t, res.Message, "Uploaded documents: 2")
}

func TestController_EmailAcrossTurns(t *testing.T) {
	f := newFixture(t)
	const s = "mailer"

	res := f.say(t, s, "send email to a@x.com")
	require.Equal(t, entity.StatusMissingBody, res.Status())
	assert.Equal(t, entity.BucketWaiting, res.Bucket())
	taskID := res.String(entity.DataTaskID)

	res = f.say(t, s, "open example.com")
	assert.Equal(t, entity.StatusOpened, res.Status(), "commands still work while a draft is pending")

	res = f.say(t, s, "Please review my application status")
	assert.Equal(t, entity.StatusSent, res.Status())
	assert.Equal(t, taskID, res.String(entity.DataTaskID))

	cards := f.ctrl.Cards(s)
	require.Len(t, cards, 2)
	assert.Equal(t, taskID, cards[1].ID)
	assert.Equal(t, entity.BucketDone, cards[1].Status)
	assert.Equal(t, "Email to a@x.com", cards[1].Title)
	assert.Equal(t, entity.IntentSendEmail, f.metrics.turns[2].intent)
}

func TestController_ResetClearsState(t *testing.T) {
	f := newFixture(t)
	const s = "resetter"

	f.say(t, s, "personal info")
	f.say(t, s, "send email to a@x.com")

	res := f.say(t, s, "clear history")
	assert.Equal(t, entity.StatusReset, res.Status())

	res = f.say(t, s, "Ayesha Khan")
	assert.Contains(t, res.Message, "Command not recognized", "wizard is no longer active")
}

func TestController_SessionsAreIsolated(t *testing.T) {
	f := newFixture(t)

	f.say(t, "a", "personal info")
	res := f.say(t, "b", "Ayesha Khan")

	assert.Contains(t, res.Message, "Command not recognized")
}

func TestController_ConcurrentTurnsOnOneSession(t *testing.T) {
	f := newFixture(t)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.ctrl.HandleText(context.Background(), "shared", "open example.com")
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	assert.Len(t, f.ctrl.Cards("shared"), 20)
	assert.Len(t, f.surface.Visited(), 20)
}

func TestTitleFromText(t *testing.T) {
	assert.Equal(t, "New task", TitleFromText("  "))
	assert.Equal(t, "open example.com", TitleFromText(" open example.com "))

	long := "please open the admissions page and then fill the whole form for me"
	title := TitleFromText(long)
	assert.Equal(t, "please open the admissions page and then fill...", title)
	assert.LessOrEqual(t, len([]rune(title)), 48)
}
