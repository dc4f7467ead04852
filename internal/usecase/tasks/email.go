package tasks

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"web-assistant/internal/application/port/output"
	"web-assistant/internal/domain/entity"
	"web-assistant/internal/usecase/formfill"
	"web-assistant/internal/usecase/parser"

	"github.com/google/uuid"
)

// maxConfirmWords bounds a reply that is read as a bare confirmation rather
// than as message text.
const maxConfirmWords = 4

type EmailConfig struct {
	ComposeURL string
	// LoginHost marks a login wall when it appears in the URL after opening
	// the compose page.
	LoginHost       string
	SendButtons     []string
	CancelKeywords  []string
	ConfirmKeywords []string
	// MetaPrefixes start utterances that are commands of their own and are
	// never taken as the message body.
	MetaPrefixes []string
}

func DefaultEmailConfig() EmailConfig {
	return EmailConfig{
		ComposeURL:      "https://mail.google.com/mail/?view=cm&fs=1",
		LoginHost:       "accounts.google.com",
		SendButtons:     []string{"Send"},
		CancelKeywords:  []string{"cancel", "stop", "nevermind", "never mind"},
		ConfirmKeywords: []string{"continue", "ready", "logged in", "go ahead", "proceed", "send now"},
		MetaPrefixes: []string{
			"open ", "go to ", "visit ", "search ", "google ", "fill ", "click ", "press ",
			"type ", "auto fill", "autofill", "screenshot", "take a screenshot",
			"clear history", "reset session", "start over", "new session", "help ",
		},
	}
}

// SendEmailTask composes an email in the browser. Recipient and body may
// arrive over several turns; the draft is kept in the session until it is
// sent or cancelled.
type SendEmailTask struct {
	surface output.AutomationSurface
	engine  *formfill.Engine
	cfg     EmailConfig
	cancel  parser.KeywordSet
	confirm parser.KeywordSet
	logger  output.LoggerPort
}

var (
	_ output.TaskHandler = (*SendEmailTask)(nil)
	_ output.Resumable   = (*SendEmailTask)(nil)
)

func NewSendEmailTask(
	surface output.AutomationSurface,
	engine *formfill.Engine,
	cfg EmailConfig,
	logger output.LoggerPort,
) *SendEmailTask {
	def := DefaultEmailConfig()
	if cfg.ComposeURL == "" {
		cfg.ComposeURL = def.ComposeURL
	}
	if cfg.LoginHost == "" {
		cfg.LoginHost = def.LoginHost
	}
	if len(cfg.SendButtons) == 0 {
		cfg.SendButtons = def.SendButtons
	}
	if len(cfg.CancelKeywords) == 0 {
		cfg.CancelKeywords = def.CancelKeywords
	}
	if len(cfg.ConfirmKeywords) == 0 {
		cfg.ConfirmKeywords = def.ConfirmKeywords
	}
	if cfg.MetaPrefixes == nil {
		cfg.MetaPrefixes = def.MetaPrefixes
	}
	return &SendEmailTask{
		surface: surface,
		engine:  engine,
		cfg:     cfg,
		cancel:  parser.NewKeywordSet(cfg.CancelKeywords),
		confirm: parser.NewKeywordSet(cfg.ConfirmKeywords),
		logger:  logger,
	}
}

func (t *SendEmailTask) Intent() entity.Intent {
	return entity.IntentSendEmail
}

// Execute starts a draft, or updates the pending one, from the parsed slots.
// A new request counts as confirmation once the draft is complete.
func (t *SendEmailTask) Execute(ctx context.Context, sess *entity.Session, cmd entity.Command) entity.TaskResult {
	if sess.Email == nil {
		sess.Email = &entity.PendingEmail{TaskID: uuid.NewString()}
		t.logger.Info("Email draft started", "session", sess.ID, "task_id", sess.Email.TaskID)
	}
	sess.Email.Merge(entity.EmailFields{
		Recipient: cmd.Slot(entity.SlotRecipient),
		Subject:   cmd.Slot(entity.SlotSubject),
		Body:      cmd.Slot(entity.SlotBody),
	})

	if !sess.Email.Ready() {
		return t.askMissing(sess.Email)
	}
	return t.send(ctx, sess)
}

// Resume consumes text addressed to a pending draft. It reports false when
// there is no draft or when text is a command of its own.
func (t *SendEmailTask) Resume(ctx context.Context, sess *entity.Session, text string) (entity.TaskResult, bool) {
	draft := sess.Email
	if draft == nil {
		return entity.TaskResult{}, false
	}
	text = strings.TrimSpace(text)
	short := len(strings.Fields(text)) <= maxConfirmWords

	// Longer text mentioning a cancel word is message content.
	if short && t.cancel.Match(text) {
		sess.Email = nil
		t.logger.Info("Email draft cancelled", "session", sess.ID, "task_id", draft.TaskID)
		return t.tag(entity.Succeeded("Email cancelled. Nothing was sent.", entity.StatusCancelled), draft), true
	}

	confirmed := t.confirm.Match(text)
	fields := parser.ExtractEmailFields(text)
	if fields.Empty() && !(confirmed && short) {
		if t.isMeta(text) {
			return entity.TaskResult{}, false
		}
		if draft.Body == "" {
			fields.Body = text
		}
	}

	updated := draft.Merge(fields)

	if !draft.Ready() {
		return t.askMissing(draft), true
	}
	if confirmed || updated {
		return t.send(ctx, sess), true
	}

	return t.tag(entity.Succeeded(
		fmt.Sprintf("Your email to %s is ready. Say \"send now\" to send it or \"cancel\" to discard it.", draft.Recipient),
		entity.StatusNeedsReview,
	), draft), true
}

func (t *SendEmailTask) isMeta(text string) bool {
	lower := strings.ToLower(text)
	for _, p := range t.cfg.MetaPrefixes {
		if strings.HasPrefix(lower, p) || lower == strings.TrimSpace(p) {
			return true
		}
	}
	_, hasURL := parser.ExtractURL(text)
	return hasURL
}

func (t *SendEmailTask) askMissing(draft *entity.PendingEmail) entity.TaskResult {
	status := draft.Missing()
	var msg string
	switch status {
	case entity.StatusMissingRecipient:
		msg = "Who should I send the email to? Tell me the recipient's email address."
	default:
		msg = fmt.Sprintf("What should the email to %s say? You can also add \"subject: ...\".", draft.Recipient)
	}
	return t.tag(entity.Succeeded(msg, status), draft)
}

// send opens the compose page for the draft and clicks the send button.
// The draft is cleared only when the send button was clicked.
func (t *SendEmailTask) send(ctx context.Context, sess *entity.Session) entity.TaskResult {
	draft := sess.Email
	composeURL := t.composeURL(draft)

	if err := openPage(ctx, t.surface, composeURL); err != nil {
		t.logger.Warn("Failed to open compose page", "task_id", draft.TaskID, "error", err)
		return t.tag(entity.Succeeded(
			fmt.Sprintf("Browser unavailable. Open this link to send the email yourself:\n%s", composeURL),
			entity.StatusManualRequired,
		).With(entity.DataURL, composeURL), draft)
	}

	if strings.Contains(t.surface.CurrentURL(), t.cfg.LoginHost) {
		status := entity.StatusLoginRequired
		if draft.AwaitingLogin {
			status = entity.StatusAwaitingLogin
		}
		draft.AwaitingLogin = true
		return t.tag(entity.Succeeded(
			"Please sign in to your mail account in the browser window, then say \"continue\" or \"logged in\".",
			status,
		), draft)
	}
	draft.AwaitingLogin = false

	if _, outcome := t.engine.ClickButtonByText(ctx, t.cfg.SendButtons); !outcome.OK() {
		t.logger.Warn("Send button not found", "task_id", draft.TaskID, "outcome", outcome)
		return t.tag(entity.Succeeded(
			"The email is composed but I could not find the Send button. Check it in the browser, then say \"continue\" to try again.",
			entity.StatusNeedsReview,
		), draft)
	}

	sess.Email = nil
	t.logger.Info("Email sent", "session", sess.ID, "task_id", draft.TaskID)
	msg := fmt.Sprintf("Email sent to %s.", draft.Recipient)
	if draft.Subject != "" {
		msg += fmt.Sprintf("\nSubject: %s", draft.Subject)
	}
	return t.tag(entity.Succeeded(msg, entity.StatusSent), draft)
}

func (t *SendEmailTask) composeURL(draft *entity.PendingEmail) string {
	q := url.Values{}
	q.Set("to", draft.Recipient)
	q.Set("su", draft.Subject)
	q.Set("body", draft.Body)
	sep := "&"
	if !strings.Contains(t.cfg.ComposeURL, "?") {
		sep = "?"
	}
	return t.cfg.ComposeURL + sep + q.Encode()
}

func (t *SendEmailTask) tag(res entity.TaskResult, draft *entity.PendingEmail) entity.TaskResult {
	title := "Compose email"
	if draft.Recipient != "" {
		title = "Email to " + draft.Recipient
	}
	return res.With(entity.DataTaskID, draft.TaskID).With(entity.DataTaskTitle, title)
}
