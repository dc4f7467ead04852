package di

import (
	"context"
	"fmt"

	"web-assistant/internal/application/port/output"
	"web-assistant/internal/application/service"
	"web-assistant/internal/domain/entity"
	"web-assistant/internal/infrastructure/browser/memory"
	"web-assistant/internal/infrastructure/browser/rod"
	"web-assistant/internal/infrastructure/config"
	"web-assistant/internal/infrastructure/launcher"
	"web-assistant/internal/infrastructure/logger"
	"web-assistant/internal/infrastructure/metrics"
	"web-assistant/internal/infrastructure/prompts"
	"web-assistant/internal/infrastructure/speech"
	"web-assistant/internal/usecase/executor"
	"web-assistant/internal/usecase/formfill"
	"web-assistant/internal/usecase/parser"
	"web-assistant/internal/usecase/session"
	"web-assistant/internal/usecase/tasks"
	"web-assistant/internal/usecase/workflow"
)

type Container struct {
	Config     *config.Config
	Logger     output.LoggerPort
	Surface    output.AutomationSurface
	Metrics    *metrics.PrometheusRecorder
	Tasks      output.TaskRegistry
	Controller *session.Controller

	speech *speech.Worker
}

// Options replace collaborators that are otherwise built from the config.
type Options struct {
	Logger  output.LoggerPort
	Surface output.AutomationSurface
}

func NewContainer(ctx context.Context, cfg *config.Config, opts Options) (*Container, error) {
	log := opts.Logger
	if log == nil {
		l, err := logger.NewLoggerAdapter(cfg.Log)
		if err != nil {
			return nil, fmt.Errorf("failed to create logger: %w", err)
		}
		log = l
	}

	surface := opts.Surface
	if surface == nil {
		surface = newSurface(cfg, log)
	}

	recorder := metrics.NewPrometheusRecorder()
	assistant := cfg.Assistant

	engine := formfill.NewEngine(surface, formfill.NewKeywordClassifier(assistant.FieldRules), recorder, log)

	registry := service.NewTaskRegistry()
	for _, h := range tasks.All(tasks.Deps{
		Surface:       surface,
		Engine:        engine,
		Launcher:      launcher.NewProcessLauncher(log),
		Logger:        log,
		Profile:       assistant.Profile,
		Portal:        assistant.Portal,
		Email:         tasks.DefaultEmailConfig(),
		ScreenshotDir: cfg.ScreenshotDir,
	}) {
		registry.Register(h)
	}

	help, err := prompts.GenerateHelp(prompts.HelpTemplate, prompts.NewHelpData(assistant.Vocabulary, assistant.Portal.Institution))
	if err != nil {
		log.Warn("Help template failed, using built-in help", "error", err)
	}

	c := &Container{
		Config:  cfg,
		Logger:  log,
		Surface: surface,
		Metrics: recorder,
		Tasks:   registry,
	}

	var speaker output.Speaker
	if cfg.TTSEnabled {
		if synth, ok := speech.DetectSynthesizer(); ok {
			c.speech = speech.NewWorker(synth, log, 0)
			speaker = c.speech
			log.Info("Speech enabled", "program", synth.Program)
		} else {
			log.Warn("Speech requested but no synthesizer found on PATH")
		}
	}

	c.Controller = session.NewController(
		session.NewStore(),
		registry,
		parser.New(assistant.Vocabulary),
		workflow.NewWizard(workflow.DefaultConfig()),
		executor.New(registry, log, executor.WithHelp(help)),
		recorder,
		speaker,
		log,
	)

	log.Info("Container ready", "surface", cfg.Surface, "intents", len(registry.Intents()))
	return c, nil
}

func newSurface(cfg *config.Config, log output.LoggerPort) output.AutomationSurface {
	if cfg.Surface == config.SurfaceMemory {
		return offlineSurface()
	}
	return rod.NewSurface(rod.Config{
		Headless:      cfg.Browser.Headless,
		SlowMotion:    cfg.Browser.SlowMotion,
		Timeout:       cfg.Browser.Timeout,
		LocateTimeout: cfg.Browser.LocateTimeout,
		NoSandbox:     cfg.Browser.NoSandbox,
	}, log)
}

// offlineSurface serves the same contact form for every URL.
func offlineSurface() *memory.Surface {
	s := memory.New()
	s.AddPage("*", memory.Page{
		Forms: 1,
		Fields: []entity.FieldDescriptor{
			{Kind: "text", Name: "full_name", LabelText: "Full Name", Visible: true},
			{Kind: "email", Name: "email", LabelText: "Email", Visible: true},
			{Kind: "tel", ID: "phone", Placeholder: "Phone number", Visible: true},
			{Kind: "textarea", Name: "message", LabelText: "Message", Visible: true},
		},
		Buttons: []string{"Send", "Submit"},
	})
	return s
}

// Close stops the speech worker, the browser and finally the logger.
func (c *Container) Close() {
	if c.speech != nil {
		c.speech.Close()
	}
	if c.Surface != nil {
		c.Surface.Close()
	}
	if c.Logger != nil {
		_ = c.Logger.Close()
	}
}
