// Package tasks holds one handler per intent. Handlers keep no state of
// their own; everything that outlives a turn lives in the session.
package tasks

import (
	"context"
	"strings"

	"web-assistant/internal/application/port/output"
	"web-assistant/internal/domain/entity"
	"web-assistant/internal/usecase/formfill"
)

const msgNoBrowser = "No browser open. First open a website with: \"open [website]\""

// Deps are the collaborators shared by the handlers.
type Deps struct {
	Surface  output.AutomationSurface
	Engine   *formfill.Engine
	Launcher output.AppLauncher
	Logger   output.LoggerPort
	Profile  map[entity.FieldCategory]string
	Portal   Portal
	Email    EmailConfig
	// ScreenshotDir is where captured pages are written.
	ScreenshotDir string
}

// All builds every handler, in the order they are listed in help output.
func All(d Deps) []output.TaskHandler {
	return []output.TaskHandler{
		NewOpenURLTask(d.Surface, d.Logger),
		NewSearchTask(d.Surface, d.Logger),
		NewOpenApplicationTask(d.Launcher, d.Logger),
		NewSystemCommandTask(),
		NewAutoFillFormTask(d.Surface, d.Engine, d.Profile, d.Logger),
		NewFillFormTask(d.Surface, d.Engine, d.Logger),
		NewSendEmailTask(d.Surface, d.Engine, d.Email, d.Logger),
		NewAdmissionsTask(d.Surface, d.Portal, d.Logger),
		NewExploreProgramsTask(d.Surface, d.Portal, d.Logger),
		NewAdmissionDatesTask(d.Surface, d.Portal, d.Logger),
		NewPolicyLookupTask(),
		NewScreenshotTask(d.Surface, d.ScreenshotDir, d.Logger),
		NewResetSessionTask(),
	}
}

// requireStarted returns the failure shown when a page task runs before any
// website was opened.
func requireStarted(surface output.AutomationSurface) (entity.TaskResult, bool) {
	if surface.Started() {
		return entity.TaskResult{}, true
	}
	return entity.Failed(msgNoBrowser), false
}

// openPage starts the surface when needed and navigates to url.
func openPage(ctx context.Context, surface output.AutomationSurface, url string) error {
	if !surface.Started() {
		if err := surface.Start(ctx); err != nil {
			return err
		}
	}
	return surface.OpenURL(ctx, url)
}

func bullets(items []string) string {
	var sb strings.Builder
	for _, item := range items {
		sb.WriteString("   - ")
		sb.WriteString(item)
		sb.WriteString("\n")
	}
	return strings.TrimSuffix(sb.String(), "\n")
}
