package tasks

import (
	"context"
	"fmt"

	"web-assistant/internal/application/port/output"
	"web-assistant/internal/domain/entity"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var knownApps = []string{
	"Notepad", "Calculator", "Paint", "Chrome", "Edge", "File Explorer",
	"Command Prompt", "PowerShell", "Word", "Excel", "Outlook",
}

type OpenApplicationTask struct {
	launcher output.AppLauncher
	logger   output.LoggerPort
}

var _ output.TaskHandler = (*OpenApplicationTask)(nil)

func NewOpenApplicationTask(launcher output.AppLauncher, logger output.LoggerPort) *OpenApplicationTask {
	return &OpenApplicationTask{launcher: launcher, logger: logger}
}

func (t *OpenApplicationTask) Intent() entity.Intent {
	return entity.IntentOpenApplication
}

func (t *OpenApplicationTask) Execute(ctx context.Context, _ *entity.Session, cmd entity.Command) entity.TaskResult {
	app := cmd.Slot(entity.SlotApp)
	executable := cmd.Slot(entity.SlotExecutable)

	if app == "" {
		return entity.Succeeded(
			"Application Launcher\n\nAvailable applications:\n"+bullets(knownApps)+"\n\nSay: \"open [app name]\"",
			"",
		)
	}
	if executable == "" {
		return entity.Failed(fmt.Sprintf("Application %q not recognized. Try: notepad, calculator, chrome, etc.", app))
	}

	if err := t.launcher.Launch(ctx, executable); err != nil {
		t.logger.Error("Failed to launch application", "app", app, "executable", executable, "error", err)
		return entity.Failed(fmt.Sprintf("Could not open %s. Make sure it is installed on this computer.", app))
	}

	return entity.Succeeded(
		fmt.Sprintf("Opening %s...", cases.Title(language.English).String(app)),
		entity.StatusOpened,
	).With(entity.SlotApp, app)
}

// SystemCommandTask only acknowledges power actions and asks for
// confirmation; it never touches the machine.
type SystemCommandTask struct{}

var _ output.TaskHandler = (*SystemCommandTask)(nil)

func NewSystemCommandTask() *SystemCommandTask {
	return &SystemCommandTask{}
}

func (t *SystemCommandTask) Intent() entity.Intent {
	return entity.IntentSystemCommand
}

func (t *SystemCommandTask) Execute(_ context.Context, _ *entity.Session, cmd entity.Command) entity.TaskResult {
	action := cmd.Slot(entity.SlotType)
	switch action {
	case "shutdown", "restart", "sleep":
		return entity.Succeeded(
			fmt.Sprintf("%s command received. Say \"confirm %s\" to proceed.",
				cases.Title(language.English).String(action), action),
			entity.StatusConfirmRequired,
		).With("pending", action)
	default:
		return entity.Succeeded(
			"System Commands\n\nAvailable commands:\n"+bullets([]string{
				"\"shutdown computer\" - Shutdown PC",
				"\"restart computer\" - Restart PC",
				"\"sleep computer\" - Put PC to sleep",
				"\"open [app]\" - Open application",
				"\"search [query]\" - Search on Google",
			})+"\n\nNote: System commands require confirmation.",
			"",
		)
	}
}
