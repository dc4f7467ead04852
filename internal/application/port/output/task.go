package output

import (
	"context"

	"web-assistant/internal/domain/entity"
)

type TaskHandler interface {
	Intent() entity.Intent
	Execute(ctx context.Context, sess *entity.Session, cmd entity.Command) entity.TaskResult
}

// Resumable is implemented by handlers that keep a pending entity in the
// session. Resume reports false when the text is not meant for the handler.
type Resumable interface {
	Resume(ctx context.Context, sess *entity.Session, text string) (entity.TaskResult, bool)
}

type TaskRegistry interface {
	Register(handler TaskHandler)
	Get(intent entity.Intent) (TaskHandler, bool)
	All() []TaskHandler
	Resumables() []Resumable
}
