package output

import (
	"context"

	"web-assistant/internal/domain/entity"
)

type UserInteractionPort interface {
	ReadLine(ctx context.Context, prompt string) (string, error)
	ShowResult(ctx context.Context, result entity.TaskResult)
	ShowInfo(ctx context.Context, message string)
	ShowError(ctx context.Context, err error)
}
