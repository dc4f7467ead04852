package input

import (
	"context"

	"web-assistant/internal/domain/entity"
)

type TurnHandler interface {
	HandleText(ctx context.Context, sessionID, text string) (entity.TaskResult, error)
}
