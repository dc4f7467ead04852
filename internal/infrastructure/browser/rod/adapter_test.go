package rod

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"web-assistant/internal/domain/entity"
	"web-assistant/internal/infrastructure/logger"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.False(t, cfg.Headless)
	assert.Equal(t, 10*time.Second, cfg.Timeout)
	assert.Equal(t, 2*time.Second, cfg.LocateTimeout)
	assert.True(t, cfg.NoSandbox)
}

func TestNewSurface_FillsZeroTimeouts(t *testing.T) {
	s := NewSurface(Config{}, logger.NewNop())

	assert.Equal(t, DefaultConfig().Timeout, s.cfg.Timeout)
	assert.Equal(t, DefaultConfig().LocateTimeout, s.cfg.LocateTimeout)
}

func TestSurface_NotStarted(t *testing.T) {
	s := NewSurface(DefaultConfig(), logger.NewNop())
	ctx := context.Background()

	assert.False(t, s.Started())
	assert.Empty(t, s.CurrentURL())
	assert.ErrorIs(t, s.OpenURL(ctx, "https://example.com"), entity.ErrSurfaceNotStarted)
	assert.ErrorIs(t, s.Fill(ctx, entity.StrategyName, "q", "x"), entity.ErrSurfaceNotStarted)
	assert.ErrorIs(t, s.ClickByText(ctx, "Send"), entity.ErrSurfaceNotStarted)
	assert.ErrorIs(t, s.PressEnter(ctx), entity.ErrSurfaceNotStarted)
	_, err := s.DiscoverFields(ctx)
	assert.ErrorIs(t, err, entity.ErrSurfaceNotStarted)
	_, err = s.Screenshot(ctx)
	assert.ErrorIs(t, err, entity.ErrSurfaceNotStarted)
	s.Close()
}

func TestLookupError(t *testing.T) {
	ctx := context.Background()

	err := lookupError(ctx, fmt.Errorf("by name %q: %w", "q", context.DeadlineExceeded))
	assert.ErrorIs(t, err, entity.ErrElementNotFound)

	err = lookupError(ctx, &rod.ElementNotFoundError{})
	assert.ErrorIs(t, err, entity.ErrElementNotFound)

	boom := errors.New("boom")
	assert.Equal(t, boom, lookupError(ctx, boom))

	done, cancel := context.WithCancel(ctx)
	cancel()
	assert.ErrorIs(t, lookupError(done, context.Canceled), entity.ErrTimeout)
}

func TestActionError(t *testing.T) {
	ctx := context.Background()

	err := actionError(ctx, fmt.Errorf("input failed: %w", context.DeadlineExceeded))
	assert.ErrorIs(t, err, entity.ErrTimeout)
	assert.NotErrorIs(t, err, entity.ErrElementNotFound)

	boom := errors.New("boom")
	assert.Equal(t, boom, actionError(ctx, boom))
}

func startedSurface(t *testing.T) *Surface {
	t.Helper()
	if testing.Short() {
		t.Skip("browser test skipped in short mode")
	}
	if _, ok := launcher.LookPath(); !ok {
		t.Skip("no browser available")
	}

	cfg := DefaultConfig()
	cfg.Headless = true
	cfg.SlowMotion = 0
	cfg.LocateTimeout = 500 * time.Millisecond

	s := NewSurface(cfg, logger.NewNop())
	require.NoError(t, s.Start(context.Background()))
	t.Cleanup(s.Close)
	return s
}

func serve(t *testing.T, page string) string {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(page))
	}))
	t.Cleanup(srv.Close)
	return srv.URL
}

func TestSurface_OpenAndDiscover(t *testing.T) {
	s := startedSurface(t)
	ctx := context.Background()
	url := serve(t, FormHTML)

	require.NoError(t, s.OpenURL(ctx, url))
	assert.Contains(t, s.CurrentURL(), url)

	snap, err := s.DiscoverFields(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, snap.Forms)
	require.Len(t, snap.Fields, 3)
	assert.Equal(t, "Full Name", snap.Fields[0].LabelText)
	assert.Equal(t, "Email", snap.Fields[1].LabelText)
	assert.Equal(t, "Your city", snap.Fields[2].Placeholder)
}

func TestSurface_FillStrategies(t *testing.T) {
	s := startedSurface(t)
	ctx := context.Background()
	require.NoError(t, s.OpenURL(ctx, serve(t, FormHTML)))

	require.NoError(t, s.Fill(ctx, entity.StrategyName, "full_name", "Ann"))
	require.NoError(t, s.Fill(ctx, entity.StrategyLabel, "Email", "ann@example.com"))
	require.NoError(t, s.Fill(ctx, entity.StrategyPlaceholder, "Your city", "Lahore"))

	err := s.Fill(ctx, entity.StrategyID, "missing", "x")
	assert.ErrorIs(t, err, entity.ErrElementNotFound)

	snap, err := s.DiscoverFields(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Ann", snap.Fields[0].CurrentValue)
	assert.Equal(t, "ann@example.com", snap.Fields[1].CurrentValue)
	assert.Equal(t, "Lahore", snap.Fields[2].CurrentValue)
}

func TestSurface_ClickByText(t *testing.T) {
	s := startedSurface(t)
	ctx := context.Background()
	require.NoError(t, s.OpenURL(ctx, serve(t, FormHTML)))

	require.NoError(t, s.ClickByText(ctx, "Send"))
	assert.ErrorIs(t, s.ClickByText(ctx, "Nope"), entity.ErrElementNotFound)
}

func TestSurface_Screenshot(t *testing.T) {
	s := startedSurface(t)
	ctx := context.Background()
	require.NoError(t, s.OpenURL(ctx, serve(t, BasicHTML)))

	shot, err := s.Screenshot(ctx)
	require.NoError(t, err)
	assert.Equal(t, "jpeg", shot.Format)
	assert.NotEmpty(t, shot.Data)
	assert.LessOrEqual(t, shot.Width, maxScreenshotWidth)
}

func TestSurface_FillBySiblingLabel(t *testing.T) {
	s := startedSurface(t)
	ctx := context.Background()
	require.NoError(t, s.OpenURL(ctx, serve(t, SiblingLabelsHTML)))

	require.NoError(t, s.Fill(ctx, entity.StrategyLabel, "Name", "Ann"))
	require.NoError(t, s.Fill(ctx, entity.StrategyLabel, "Email", "ann@example.com"))

	snap, err := s.DiscoverFields(ctx)
	require.NoError(t, err)
	require.Len(t, snap.Fields, 2)
	assert.Equal(t, "Ann", snap.Fields[0].CurrentValue)
	assert.Equal(t, "ann@example.com", snap.Fields[1].CurrentValue)
}
