package input

import "web-assistant/internal/domain/entity"

type CommandParser interface {
	Parse(text string) entity.Command
}
