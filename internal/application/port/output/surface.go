package output

import (
	"context"

	"web-assistant/internal/domain/entity"
)

// AutomationSurface drives the single page of a session. Fill and click
// methods return entity.ErrElementNotFound or entity.ErrTimeout when the
// target cannot be located in time; every method other than Start and
// Started returns entity.ErrSurfaceNotStarted before Start succeeds.
type AutomationSurface interface {
	Start(ctx context.Context) error
	Started() bool
	OpenURL(ctx context.Context, url string) error
	CurrentURL() string

	DiscoverFields(ctx context.Context) (*entity.FormSnapshot, error)
	Fill(ctx context.Context, strategy entity.Strategy, locator, value string) error
	ClickByText(ctx context.Context, text string) error
	PressEnter(ctx context.Context) error
	TypeActive(ctx context.Context, text string) error
	Screenshot(ctx context.Context) (*entity.Screenshot, error)

	Close()
}
