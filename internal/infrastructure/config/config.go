// Package config assembles the typed application configuration from the
// environment and the optional assistant YAML file.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"web-assistant/internal/application/port/output"
	"web-assistant/internal/domain/entity"
	"web-assistant/internal/infrastructure/logger"
	"web-assistant/internal/usecase/formfill"
	"web-assistant/internal/usecase/parser"
	"web-assistant/internal/usecase/tasks"

	"gopkg.in/yaml.v3"
)

const (
	SurfaceRod    = "rod"
	SurfaceMemory = "memory"
)

type BrowserConfig struct {
	Headless      bool
	SlowMotion    time.Duration
	Timeout       time.Duration
	LocateTimeout time.Duration
	NoSandbox     bool
}

type Config struct {
	Surface       string
	Browser       BrowserConfig
	Log           logger.Config
	TTSEnabled    bool
	MetricsFile   string
	ScreenshotDir string
	AssistantFile string
	Assistant     Assistant
}

// Assistant is the content of the assistant YAML file. Sections missing
// from the file keep their defaults.
type Assistant struct {
	Vocabulary parser.Vocabulary               `yaml:"vocabulary"`
	FieldRules []entity.FieldMatchRule         `yaml:"field_rules"`
	Profile    map[entity.FieldCategory]string `yaml:"-"`
	Portal     tasks.Portal                    `yaml:"portal"`
}

func DefaultAssistant() Assistant {
	return Assistant{
		Vocabulary: parser.DefaultVocabulary(),
		FieldRules: formfill.DefaultRules(),
		Profile:    formfill.DefaultProfile(),
		Portal:     tasks.DefaultPortal(),
	}
}

// Load reads the configuration from env. The assistant file named by
// ASSISTANT_CONFIG is optional.
func Load(env output.ConfigPort) (*Config, error) {
	cfg := &Config{
		Surface: strings.ToLower(env.GetWithDefault("SURFACE", SurfaceRod)),
		Browser: BrowserConfig{
			Headless:      env.GetBool("BROWSER_HEADLESS", false),
			SlowMotion:    env.GetDuration("BROWSER_SLOW_MOTION", 200*time.Millisecond),
			Timeout:       env.GetDuration("BROWSER_TIMEOUT", 10*time.Second),
			LocateTimeout: env.GetDuration("BROWSER_LOCATE_TIMEOUT", 2*time.Second),
			NoSandbox:     env.GetBool("BROWSER_NO_SANDBOX", true),
		},
		Log: logger.Config{
			Level:      env.GetWithDefault("LOG_LEVEL", "info"),
			Format:     env.GetWithDefault("LOG_FORMAT", "console"),
			File:       env.Get("LOG_FILE"),
			MaxSizeMB:  env.GetInt("LOG_MAX_SIZE_MB", 50),
			MaxBackups: env.GetInt("LOG_MAX_BACKUPS", 3),
			MaxAgeDays: env.GetInt("LOG_MAX_AGE_DAYS", 14),
			Name:       "assistant",
		},
		TTSEnabled:    env.GetBool("TTS_ENABLED", false),
		MetricsFile:   env.Get("METRICS_FILE"),
		ScreenshotDir: env.GetWithDefault("SCREENSHOT_DIR", "screenshots"),
		AssistantFile: env.Get("ASSISTANT_CONFIG"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	assistant, err := LoadAssistant(cfg.AssistantFile)
	if err != nil {
		return nil, err
	}
	cfg.Assistant = assistant
	return cfg, nil
}

func (c *Config) Validate() error {
	switch c.Surface {
	case SurfaceRod, SurfaceMemory:
	default:
		return fmt.Errorf("%w: unknown surface %q (want %s or %s)", entity.ErrValidation, c.Surface, SurfaceRod, SurfaceMemory)
	}
	if c.Browser.Timeout <= 0 {
		return fmt.Errorf("%w: browser timeout must be positive", entity.ErrValidation)
	}
	return nil
}

type assistantFile struct {
	Assistant `yaml:",inline"`
	Profile   map[entity.FieldCategory]string `yaml:"profile"`
}

// LoadAssistant parses the assistant YAML file at path on top of the
// defaults. An empty path yields the defaults.
func LoadAssistant(path string) (Assistant, error) {
	def := DefaultAssistant()
	if strings.TrimSpace(path) == "" {
		return def, nil
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return Assistant{}, fmt.Errorf("read assistant config: %w", err)
	}

	file := assistantFile{Assistant: def}
	if err := yaml.Unmarshal(content, &file); err != nil {
		return Assistant{}, fmt.Errorf("parse assistant config %s: %w", path, err)
	}

	a := file.Assistant
	a.Profile = def.Profile
	for category, value := range file.Profile {
		a.Profile[category] = value
	}
	return a, nil
}
