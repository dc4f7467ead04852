// Package memory provides an AutomationSurface backed by in-memory pages.
// It serves the offline mode of the CLI and the tests of the use cases.
package memory

import (
	"context"
	"strings"
	"sync"

	"web-assistant/internal/application/port/output"
	"web-assistant/internal/domain/entity"
)

var _ output.AutomationSurface = (*Surface)(nil)

// Page is a scripted page served for a URL.
type Page struct {
	Forms   int
	Fields  []entity.FieldDescriptor
	Buttons []string
	// RedirectTo replaces the current URL after navigation, as a login wall would.
	RedirectTo string
}

// FillCall records one Fill invocation.
type FillCall struct {
	Strategy entity.Strategy
	Locator  string
	Value    string
}

type Surface struct {
	mu       sync.Mutex
	started  bool
	pages    map[string]Page
	current  Page
	url      string
	startErr error

	fills   []FillCall
	clicks  []string
	typed   []string
	enters  int
	visited []string
}

func New() *Surface {
	return &Surface{pages: make(map[string]Page)}
}

// AddPage registers the page served for url. A key of "*" matches any URL.
func (s *Surface) AddPage(url string, page Page) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pages[url] = page
}

// FailStart makes every later Start return err.
func (s *Surface) FailStart(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.startErr = err
}

func (s *Surface) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.startErr != nil {
		return s.startErr
	}
	s.started = true
	return nil
}

func (s *Surface) Started() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.started
}

func (s *Surface) OpenURL(ctx context.Context, url string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.started {
		return entity.ErrSurfaceNotStarted
	}
	page, ok := s.pages[url]
	if !ok {
		page = s.pages["*"]
	}
	s.current = clonePage(page)
	s.url = url
	if page.RedirectTo != "" {
		s.url = page.RedirectTo
	}
	s.visited = append(s.visited, url)
	return nil
}

func (s *Surface) CurrentURL() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.url
}

func (s *Surface) DiscoverFields(ctx context.Context) (*entity.FormSnapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.started {
		return nil, entity.ErrSurfaceNotStarted
	}
	fields := make([]entity.FieldDescriptor, len(s.current.Fields))
	copy(fields, s.current.Fields)
	return &entity.FormSnapshot{Forms: s.current.Forms, Fields: fields}, nil
}

func (s *Surface) Fill(ctx context.Context, strategy entity.Strategy, locator, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.started {
		return entity.ErrSurfaceNotStarted
	}
	s.fills = append(s.fills, FillCall{Strategy: strategy, Locator: locator, Value: value})

	for i := range s.current.Fields {
		if matches(s.current.Fields[i], strategy, locator) {
			s.current.Fields[i].CurrentValue = value
			return nil
		}
	}
	return entity.ErrElementNotFound
}

func (s *Surface) ClickByText(ctx context.Context, text string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.started {
		return entity.ErrSurfaceNotStarted
	}
	for _, b := range s.current.Buttons {
		if strings.Contains(b, text) {
			s.clicks = append(s.clicks, b)
			return nil
		}
	}
	return entity.ErrElementNotFound
}

func (s *Surface) PressEnter(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.started {
		return entity.ErrSurfaceNotStarted
	}
	s.enters++
	return nil
}

func (s *Surface) TypeActive(ctx context.Context, text string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.started {
		return entity.ErrSurfaceNotStarted
	}
	s.typed = append(s.typed, text)
	return nil
}

func (s *Surface) Screenshot(ctx context.Context) (*entity.Screenshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.started {
		return nil, entity.ErrSurfaceNotStarted
	}
	return &entity.Screenshot{Data: []byte{0xff, 0xd8, 0xff, 0xd9}, Format: "jpeg", Width: 1, Height: 1}, nil
}

func (s *Surface) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.started = false
	s.current = Page{}
	s.url = ""
}

// FillCalls returns every Fill invocation so far.
func (s *Surface) FillCalls() []FillCall {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]FillCall, len(s.fills))
	copy(out, s.fills)
	return out
}

func (s *Surface) Clicks() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.clicks...)
}

func (s *Surface) Typed() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.typed...)
}

func (s *Surface) Enters() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.enters
}

func (s *Surface) Visited() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.visited...)
}

// Value returns the current value of the first field with the given name or id.
func (s *Surface) Value(nameOrID string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, f := range s.current.Fields {
		if f.Name == nameOrID || f.ID == nameOrID {
			return f.CurrentValue
		}
	}
	return ""
}

func matches(f entity.FieldDescriptor, strategy entity.Strategy, locator string) bool {
	switch strategy {
	case entity.StrategyName:
		return f.Name != "" && f.Name == locator
	case entity.StrategyID:
		return f.ID != "" && f.ID == locator
	case entity.StrategyPlaceholder:
		return f.Placeholder != "" && f.Placeholder == locator
	case entity.StrategyLabel:
		return f.LabelText != "" && strings.Contains(f.LabelText, locator)
	default:
		return false
	}
}

func clonePage(p Page) Page {
	fields := make([]entity.FieldDescriptor, len(p.Fields))
	copy(fields, p.Fields)
	p.Fields = fields
	p.Buttons = append([]string(nil), p.Buttons...)
	return p
}
