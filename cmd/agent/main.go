package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"web-assistant/internal/di"
	"web-assistant/internal/domain/entity"
	"web-assistant/internal/infrastructure/config"
	"web-assistant/internal/infrastructure/env"
	"web-assistant/internal/infrastructure/userinteraction"

	"github.com/spf13/cobra"
)

type flags struct {
	headless    bool
	surface     string
	config      string
	logLevel    string
	metricsFile string
	tts         bool
	session     string
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	f := &flags{}

	root := &cobra.Command{
		Use:           "agent",
		Short:         "Conversational assistant that drives a browser from typed commands",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withContainer(cmd, f, func(ctx context.Context, c *di.Container) error {
				return repl(ctx, c, f.session)
			})
		},
	}

	do := &cobra.Command{
		Use:   "do [command...]",
		Short: "Run a single command and print the result",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withContainer(cmd, f, func(ctx context.Context, c *di.Container) error {
				ui := userinteraction.NewConsoleUserInteraction()
				res, err := c.Controller.HandleText(ctx, f.session, strings.Join(args, " "))
				if err != nil {
					return err
				}
				ui.ShowResult(ctx, res)
				if !res.Success {
					return errors.New("command failed")
				}
				return nil
			})
		},
	}
	root.AddCommand(do)

	pf := root.PersistentFlags()
	pf.BoolVar(&f.headless, "headless", false, "run the browser without a window")
	pf.StringVar(&f.surface, "surface", "", "automation surface: rod or memory")
	pf.StringVarP(&f.config, "config", "c", "", "assistant YAML file (vocabulary, field rules, profile, portal)")
	pf.StringVar(&f.logLevel, "log-level", "", "log level: debug, info, warn or error")
	pf.StringVar(&f.metricsFile, "metrics-file", "", "write Prometheus metrics to this file on exit")
	pf.BoolVar(&f.tts, "tts", false, "speak responses")
	pf.StringVar(&f.session, "session", "cli", "session id")

	return root
}

func withContainer(cmd *cobra.Command, f *flags, run func(context.Context, *di.Container) error) error {
	cfg, err := config.Load(env.NewEnvService())
	if err != nil {
		return err
	}
	if err := applyFlags(cmd, f, cfg); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	container, err := di.NewContainer(ctx, cfg, di.Options{})
	if err != nil {
		return fmt.Errorf("initialization failed: %w", err)
	}
	defer container.Close()

	runErr := run(ctx, container)

	if cfg.MetricsFile != "" {
		if err := container.Metrics.WriteFile(cfg.MetricsFile); err != nil {
			container.Logger.Error("Metrics dump failed", "error", err)
		}
	}
	return runErr
}

// applyFlags lets explicitly set flags override the environment.
func applyFlags(cmd *cobra.Command, f *flags, cfg *config.Config) error {
	pf := cmd.Flags()
	if pf.Changed("headless") {
		cfg.Browser.Headless = f.headless
	}
	if pf.Changed("surface") {
		cfg.Surface = strings.ToLower(f.surface)
	}
	if pf.Changed("log-level") {
		cfg.Log.Level = f.logLevel
	}
	if pf.Changed("metrics-file") {
		cfg.MetricsFile = f.metricsFile
	}
	if pf.Changed("tts") {
		cfg.TTSEnabled = f.tts
	}
	if pf.Changed("config") {
		assistant, err := config.LoadAssistant(f.config)
		if err != nil {
			return err
		}
		cfg.AssistantFile, cfg.Assistant = f.config, assistant
	}
	return cfg.Validate()
}

func repl(ctx context.Context, c *di.Container, sessionID string) error {
	ui := userinteraction.NewConsoleUserInteraction()
	ui.ShowInfo(ctx, "Type a command, \"help\" for examples, \"exit\" to quit.")

	for {
		line, err := ui.ReadLine(ctx, "\n> ")
		if errors.Is(err, io.EOF) || errors.Is(err, entity.ErrUserCancelled) {
			return nil
		}
		if err != nil {
			return err
		}

		switch strings.ToLower(line) {
		case "exit", "quit":
			return nil
		case "":
			continue
		}

		res, err := c.Controller.HandleText(ctx, sessionID, line)
		if err != nil {
			if errors.Is(err, context.Canceled) {
				return nil
			}
			ui.ShowError(ctx, err)
			continue
		}
		ui.ShowResult(ctx, res)
	}
}
