// Package session runs the turn loop of a conversation: pending tasks get
// the first look at the text, then an active wizard, then the parser and
// the executor.
package session

import (
	"context"
	"strings"
	"time"

	"web-assistant/internal/application/port/input"
	"web-assistant/internal/application/port/output"
	"web-assistant/internal/domain/entity"
	"web-assistant/internal/usecase/executor"
	"web-assistant/internal/usecase/workflow"

	"github.com/google/uuid"
)

var _ input.TurnHandler = (*Controller)(nil)

const (
	maxTitleLen   = 48
	titleCutLen   = 45
	defaultTitle  = "New task"
	msgEmptyInput = "Please type a command. Say \"help\" to see what I can do."
)

type Controller struct {
	store    *Store
	tasks    output.TaskRegistry
	parser   input.CommandParser
	wizard   *workflow.Wizard
	executor *executor.UseCase
	metrics  output.MetricsPort
	speaker  output.Speaker
	logger   output.LoggerPort
}

func NewController(
	store *Store,
	tasks output.TaskRegistry,
	parser input.CommandParser,
	wizard *workflow.Wizard,
	exec *executor.UseCase,
	metrics output.MetricsPort,
	speaker output.Speaker,
	logger output.LoggerPort,
) *Controller {
	return &Controller{
		store:    store,
		tasks:    tasks,
		parser:   parser,
		wizard:   wizard,
		executor: exec,
		metrics:  metrics,
		speaker:  speaker,
		logger:   logger,
	}
}

// HandleText processes one turn of sessionID. The error is non-nil only when
// ctx is done before the turn starts.
func (c *Controller) HandleText(ctx context.Context, sessionID, text string) (entity.TaskResult, error) {
	if err := ctx.Err(); err != nil {
		return entity.TaskResult{}, err
	}

	e, release := c.store.acquire(sessionID)
	defer release()
	sess := e.sess

	text = strings.TrimSpace(text)
	var (
		result entity.TaskResult
		intent entity.Intent
	)
	if text == "" {
		result, intent = entity.Failed(msgEmptyInput), entity.IntentUnknown
	} else {
		result, intent = c.dispatch(ctx, sess, text)
	}

	result = annotate(result, text)
	sess.Touch()

	bucket := result.Bucket()
	e.upsert(Card{
		ID:        result.String(entity.DataTaskID),
		Title:     result.String(entity.DataTaskTitle),
		Status:    bucket,
		Detail:    result.Headline(),
		UpdatedAt: time.Now(),
	})

	c.metrics.ObserveTurn(intent, bucket)
	c.logger.Info("Turn handled",
		"session", sessionID,
		"intent", intent,
		"success", result.Success,
		"status", result.Status(),
		"bucket", bucket,
	)

	if c.speaker != nil {
		c.speaker.Speak(result.Message)
	}
	return result, nil
}

func (c *Controller) dispatch(ctx context.Context, sess *entity.Session, text string) (entity.TaskResult, entity.Intent) {
	for _, r := range c.tasks.Resumables() {
		if res, ok := r.Resume(ctx, sess, text); ok {
			intent := entity.IntentUnknown
			if h, isHandler := r.(output.TaskHandler); isHandler {
				intent = h.Intent()
			}
			c.logger.Debug("Pending task resumed", "session", sess.ID, "intent", intent)
			return res, intent
		}
	}

	cmd := c.parser.Parse(text)

	if c.wizard.Claims(sess.Workflow, cmd) {
		c.logger.Debug("Wizard input", "session", sess.ID, "step", sess.Workflow.CurrentStep)
		return c.wizard.Handle(sess.Workflow, text), entity.IntentAdmissionsApply
	}

	return c.executor.Execute(ctx, sess, cmd), cmd.Intent
}

// Cards returns the task board of a session.
func (c *Controller) Cards(sessionID string) []Card {
	return c.store.Cards(sessionID)
}

// annotate makes sure every result carries a task id and a title.
func annotate(res entity.TaskResult, text string) entity.TaskResult {
	if res.String(entity.DataTaskID) == "" {
		res = res.With(entity.DataTaskID, uuid.NewString())
	}
	if res.String(entity.DataTaskTitle) == "" {
		res = res.With(entity.DataTaskTitle, TitleFromText(text))
	}
	return res
}

// TitleFromText shortens a user message into a task title.
func TitleFromText(text string) string {
	title := strings.TrimSpace(text)
	if title == "" {
		return defaultTitle
	}
	if r := []rune(title); len(r) > maxTitleLen {
		return strings.TrimRight(string(r[:titleCutLen]), " ") + "..."
	}
	return title
}
