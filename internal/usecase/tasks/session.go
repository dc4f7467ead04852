package tasks

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"web-assistant/internal/application/port/output"
	"web-assistant/internal/domain/entity"
)

type ScreenshotTask struct {
	surface output.AutomationSurface
	dir     string
	logger  output.LoggerPort
}

var _ output.TaskHandler = (*ScreenshotTask)(nil)

func NewScreenshotTask(surface output.AutomationSurface, dir string, logger output.LoggerPort) *ScreenshotTask {
	if dir == "" {
		dir = "screenshots"
	}
	return &ScreenshotTask{surface: surface, dir: dir, logger: logger}
}

func (t *ScreenshotTask) Intent() entity.Intent {
	return entity.IntentScreenshot
}

func (t *ScreenshotTask) Execute(ctx context.Context, _ *entity.Session, _ entity.Command) entity.TaskResult {
	if res, ok := requireStarted(t.surface); !ok {
		return res
	}

	shot, err := t.surface.Screenshot(ctx)
	if err != nil {
		t.logger.Error("Screenshot failed", "error", err)
		return entity.Failed("Could not capture the page. Make sure it has finished loading and try again.")
	}

	path, err := t.save(shot)
	if err != nil {
		t.logger.Error("Failed to save screenshot", "dir", t.dir, "error", err)
		return entity.Failed(fmt.Sprintf("Captured the page but could not save it in %s.", t.dir))
	}

	t.logger.Info("Screenshot saved", "path", path, "width", shot.Width, "height", shot.Height)
	return entity.Succeeded(
		fmt.Sprintf("Screenshot saved: %s (%dx%d)", path, shot.Width, shot.Height),
		"",
	).With("path", path).With(entity.DataURL, t.surface.CurrentURL())
}

func (t *ScreenshotTask) save(shot *entity.Screenshot) (string, error) {
	if err := os.MkdirAll(t.dir, 0o755); err != nil {
		return "", fmt.Errorf("create screenshot dir: %w", err)
	}
	format := shot.Format
	if format == "" {
		format = "jpg"
	}
	name := fmt.Sprintf("screenshot-%s.%s", time.Now().Format("20060102-150405.000"), format)
	path := filepath.Join(t.dir, name)
	if err := os.WriteFile(path, shot.Data, 0o644); err != nil {
		return "", fmt.Errorf("write screenshot: %w", err)
	}
	return path, nil
}

// ResetSessionTask drops the wizard progress, the pending email and the
// remembered field values of the session.
type ResetSessionTask struct{}

var _ output.TaskHandler = (*ResetSessionTask)(nil)

func NewResetSessionTask() *ResetSessionTask {
	return &ResetSessionTask{}
}

func (t *ResetSessionTask) Intent() entity.Intent {
	return entity.IntentResetSession
}

func (t *ResetSessionTask) Execute(_ context.Context, sess *entity.Session, _ entity.Command) entity.TaskResult {
	sess.Reset()
	return entity.Succeeded("Session cleared. Application progress, drafts and remembered form data were removed.", entity.StatusReset)
}
