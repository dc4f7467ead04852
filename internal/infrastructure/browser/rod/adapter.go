// Package rod implements the automation surface on a Chromium browser
// driven through the DevTools protocol.
package rod

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	_ "image/png"
	"regexp"
	"sync"
	"time"

	"web-assistant/internal/application/port/output"
	"web-assistant/internal/domain/entity"
	"web-assistant/internal/infrastructure/browser/dom"

	"github.com/disintegration/imaging"
	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/input"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
	"github.com/ysmood/gson"
)

var _ output.AutomationSurface = (*Surface)(nil)

const (
	maxScreenshotWidth = 1024
	clickableSelector  = "button, a, [role='button'], input[type='submit'], input[type='button']"

	// first control after a free label in document order
	followingControlXPath = "following::*[self::input or self::textarea or self::select][1]"
)

type Config struct {
	Headless      bool
	SlowMotion    time.Duration
	Timeout       time.Duration
	LocateTimeout time.Duration
	NoSandbox     bool
	DevTools      bool
}

func DefaultConfig() Config {
	return Config{
		Headless:      false,
		SlowMotion:    200 * time.Millisecond,
		Timeout:       10 * time.Second,
		LocateTimeout: 2 * time.Second,
		NoSandbox:     true,
	}
}

// Surface starts its browser lazily on Start and keeps a single page.
type Surface struct {
	cfg    Config
	logger output.LoggerPort

	mu       sync.Mutex
	browser  *rod.Browser
	launcher *launcher.Launcher
	page     *rod.Page
}

func NewSurface(cfg Config, logger output.LoggerPort) *Surface {
	def := DefaultConfig()
	if cfg.Timeout <= 0 {
		cfg.Timeout = def.Timeout
	}
	if cfg.LocateTimeout <= 0 {
		cfg.LocateTimeout = def.LocateTimeout
	}
	return &Surface{cfg: cfg, logger: logger}
}

func (s *Surface) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.page != nil {
		return nil
	}

	l := launcher.New().
		Headless(s.cfg.Headless).
		Devtools(s.cfg.DevTools).
		NoSandbox(s.cfg.NoSandbox).
		Delete("use-mock-keychain").
		Set("disable-setuid-sandbox")

	url, err := l.Context(ctx).Launch()
	if err != nil {
		return fmt.Errorf("failed to launch browser: %w", err)
	}

	browser := rod.New().
		ControlURL(url).
		SlowMotion(s.cfg.SlowMotion)
	if err := browser.Connect(); err != nil {
		l.Kill()
		return fmt.Errorf("failed to connect to browser: %w", err)
	}

	page, err := browser.Page(proto.TargetCreateTarget{URL: "about:blank"})
	if err != nil {
		_ = browser.Close()
		l.Kill()
		return fmt.Errorf("failed to open page: %w", err)
	}

	s.browser, s.launcher, s.page = browser, l, page
	s.logger.Info("Browser started", "headless", s.cfg.Headless)
	return nil
}

func (s *Surface) Started() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.page != nil
}

func (s *Surface) OpenURL(ctx context.Context, url string) error {
	page, release, err := s.current(ctx, s.cfg.Timeout)
	if err != nil {
		return err
	}
	defer release()
	if err := page.Navigate(url); err != nil {
		return navigationError(fmt.Errorf("navigation failed: %w", err))
	}
	if err := page.WaitLoad(); err != nil {
		return navigationError(fmt.Errorf("page load failed: %w", err))
	}
	_ = page.WaitIdle(2 * time.Second)
	return nil
}

func (s *Surface) CurrentURL() string {
	s.mu.Lock()
	page := s.page
	s.mu.Unlock()
	if page == nil {
		return ""
	}
	info, err := page.Info()
	if err != nil {
		return ""
	}
	return info.URL
}

// DiscoverFields parses the page HTML and overlays the live value and
// visibility of each control, which attributes alone do not reflect.
func (s *Surface) DiscoverFields(ctx context.Context) (*entity.FormSnapshot, error) {
	page, release, err := s.current(ctx, s.cfg.Timeout)
	if err != nil {
		return nil, err
	}
	defer release()

	raw, err := page.HTML()
	if err != nil {
		return nil, actionError(ctx, fmt.Errorf("failed to get HTML: %w", err))
	}
	doc, err := dom.Parse(raw)
	if err != nil {
		return nil, err
	}

	elements, err := page.Elements(dom.FieldSelector)
	if err == nil && len(elements) == len(doc.Fields) {
		for i, el := range elements {
			if v, err := el.Property("value"); err == nil {
				doc.Fields[i].CurrentValue = v.Str()
			}
			if visible, err := el.Visible(); err == nil {
				doc.Fields[i].Visible = visible
			}
		}
	} else if err == nil {
		s.logger.Debug("Live field overlay skipped", "parsed", len(doc.Fields), "live", len(elements))
	}
	return doc.Snapshot(), nil
}

func (s *Surface) Fill(ctx context.Context, strategy entity.Strategy, locator, value string) error {
	page, release, err := s.current(ctx, s.cfg.LocateTimeout)
	if err != nil {
		return err
	}
	defer release()

	el, err := locate(page, strategy, locator)
	if err != nil {
		return lookupError(ctx, fmt.Errorf("by %s %q: %w", strategy, locator, err))
	}

	if err := el.SelectAllText(); err == nil {
		_ = el.Input("")
	}
	if err := el.Input(value); err != nil {
		return actionError(ctx, fmt.Errorf("input failed: %w", err))
	}
	return nil
}

func locate(page *rod.Page, strategy entity.Strategy, locator string) (*rod.Element, error) {
	switch strategy {
	case entity.StrategyName:
		return page.Element(fmt.Sprintf("[name=%q]", locator))
	case entity.StrategyID:
		return page.Element(fmt.Sprintf("[id=%q]", locator))
	case entity.StrategyPlaceholder:
		return page.Element(fmt.Sprintf("[placeholder=%q]", locator))
	case entity.StrategyLabel:
		return locateByLabel(page, locator)
	default:
		return nil, fmt.Errorf("%w: unknown strategy %q", entity.ErrValidation, strategy)
	}
}

func locateByLabel(page *rod.Page, text string) (*rod.Element, error) {
	label, err := page.ElementR("label", regexp.QuoteMeta(text))
	if err != nil {
		return nil, err
	}

	if target, err := label.Attribute("for"); err == nil && target != nil && *target != "" {
		return page.Element(fmt.Sprintf("[id=%q]", *target))
	}
	if inner, err := label.Elements(dom.FieldSelector); err == nil && len(inner) > 0 {
		return inner.First(), nil
	}
	if next, err := label.ElementX(followingControlXPath); err == nil {
		return next, nil
	}
	return nil, entity.ErrElementNotFound
}

func (s *Surface) ClickByText(ctx context.Context, text string) error {
	page, release, err := s.current(ctx, s.cfg.LocateTimeout)
	if err != nil {
		return err
	}
	defer release()

	el, err := page.ElementR(clickableSelector, regexp.QuoteMeta(text))
	if err != nil {
		return lookupError(ctx, fmt.Errorf("button %q: %w", text, err))
	}
	if err := el.Click(proto.InputMouseButtonLeft, 1); err != nil {
		return actionError(ctx, fmt.Errorf("click failed: %w", err))
	}
	_ = page.WaitIdle(2 * time.Second)
	return nil
}

func (s *Surface) PressEnter(ctx context.Context) error {
	page, release, err := s.current(ctx, s.cfg.Timeout)
	if err != nil {
		return err
	}
	defer release()
	if err := page.Keyboard.Press(input.Enter); err != nil {
		return actionError(ctx, fmt.Errorf("failed to press Enter: %w", err))
	}
	_ = page.WaitIdle(time.Second)
	return nil
}

func (s *Surface) TypeActive(ctx context.Context, text string) error {
	page, release, err := s.current(ctx, s.cfg.Timeout)
	if err != nil {
		return err
	}
	defer release()
	if err := page.InsertText(text); err != nil {
		return actionError(ctx, fmt.Errorf("failed to type: %w", err))
	}
	return nil
}

func (s *Surface) Screenshot(ctx context.Context) (*entity.Screenshot, error) {
	page, release, err := s.current(ctx, s.cfg.Timeout)
	if err != nil {
		return nil, err
	}
	defer release()

	imgBytes, err := page.Screenshot(true, &proto.PageCaptureScreenshot{
		Format:  proto.PageCaptureScreenshotFormatJpeg,
		Quality: gson.Int(80),
	})
	if err != nil {
		return nil, actionError(ctx, fmt.Errorf("screenshot failed: %w", err))
	}

	img, _, err := image.Decode(bytes.NewReader(imgBytes))
	if err != nil {
		return nil, fmt.Errorf("image decode failed: %w", err)
	}

	if img.Bounds().Dx() > maxScreenshotWidth {
		img = imaging.Resize(img, maxScreenshotWidth, 0, imaging.Lanczos)
	}

	buf := new(bytes.Buffer)
	if err := jpeg.Encode(buf, img, &jpeg.Options{Quality: 75}); err != nil {
		return nil, fmt.Errorf("jpeg encode failed: %w", err)
	}

	return &entity.Screenshot{
		Data:   buf.Bytes(),
		Format: "jpeg",
		Width:  img.Bounds().Dx(),
		Height: img.Bounds().Dy(),
	}, nil
}

func (s *Surface) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.browser != nil {
		_ = s.browser.Close()
	}
	if s.launcher != nil {
		s.launcher.Kill()
		s.launcher.Cleanup()
	}
	s.browser, s.launcher, s.page = nil, nil, nil
}

// current returns the page bound to ctx with a deadline of timeout. The
// caller must invoke release once the call is done.
func (s *Surface) current(ctx context.Context, timeout time.Duration) (*rod.Page, context.CancelFunc, error) {
	s.mu.Lock()
	page := s.page
	s.mu.Unlock()
	if page == nil {
		return nil, nil, entity.ErrSurfaceNotStarted
	}
	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}
	callCtx, release := context.WithTimeout(ctx, timeout)
	return page.Context(callCtx), release, nil
}

// lookupError turns the per-call deadline into a lookup miss and a done
// caller context into a timeout.
func lookupError(ctx context.Context, err error) error {
	var notFound *rod.ElementNotFoundError
	switch {
	case ctx.Err() != nil:
		return fmt.Errorf("%w: %v", entity.ErrTimeout, err)
	case errors.Is(err, entity.ErrElementNotFound):
		return err
	case errors.Is(err, context.DeadlineExceeded), errors.As(err, &notFound):
		return fmt.Errorf("%w: %v", entity.ErrElementNotFound, err)
	default:
		return err
	}
}

// actionError maps failures after the element was found. A deadline here
// means the page stalled, not that the element is missing.
func actionError(ctx context.Context, err error) error {
	if ctx.Err() != nil || errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %v", entity.ErrTimeout, err)
	}
	return err
}

func navigationError(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %v", entity.ErrTimeout, err)
	}
	return err
}
