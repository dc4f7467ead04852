// Package executor dispatches parsed commands to their registered handlers.
package executor

import (
	"context"

	"web-assistant/internal/application/port/output"
	"web-assistant/internal/domain/entity"
)

const helpMessage = `Command not recognized.

Try:
   - "open [website]" - Open any website
   - "search [query]" - Search on Google
   - "open [app]" - Open application
   - "fill form" - Form filling help
   - "auto fill" - Fill the form on the current page
   - "send email to [address]" - Compose an email
   - "apply for admission" - Start an admission application
   - "clear history" - Start over`

type UseCase struct {
	tasks  output.TaskRegistry
	logger output.LoggerPort
	help   string
}

type Option func(*UseCase)

// WithHelp replaces the message of the help result.
func WithHelp(text string) Option {
	return func(uc *UseCase) {
		if text != "" {
			uc.help = text
		}
	}
}

func New(tasks output.TaskRegistry, logger output.LoggerPort, opts ...Option) *UseCase {
	uc := &UseCase{
		tasks:  tasks,
		logger: logger,
		help:   helpMessage,
	}
	for _, opt := range opts {
		opt(uc)
	}
	return uc
}

// Execute runs the handler registered for cmd's intent. An intent without a
// handler yields the help result. After a successful admission result the
// session's wizard moves to the requested step.
func (uc *UseCase) Execute(ctx context.Context, sess *entity.Session, cmd entity.Command) entity.TaskResult {
	task, ok := uc.tasks.Get(cmd.Intent)
	if !ok {
		uc.logger.Debug("No handler for intent", "intent", cmd.Intent)
		return uc.Help()
	}

	uc.logger.Info("Executing task", "intent", cmd.Intent, "slots", cmd.Slots)

	result := task.Execute(ctx, sess, cmd)

	if result.Success && cmd.Intent == entity.IntentAdmissionsApply {
		step := entity.Step(cmd.Slot(entity.SlotStep))
		if sess.Workflow.Advance(cmd.Intent, step) {
			uc.logger.Debug("Workflow advanced", "session", sess.ID, "step", step)
		}
	}

	uc.logger.Debug("Task completed", "intent", cmd.Intent, "success", result.Success, "status", result.Status())
	return result
}

// Help is the result returned for commands nothing can handle.
func (uc *UseCase) Help() entity.TaskResult {
	return entity.Failed(uc.help)
}
