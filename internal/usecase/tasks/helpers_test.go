package tasks

import (
	"context"
	"testing"

	"web-assistant/internal/domain/entity"
	"web-assistant/internal/infrastructure/browser/memory"
	"web-assistant/internal/infrastructure/logger"
	"web-assistant/internal/infrastructure/metrics"
	"web-assistant/internal/usecase/formfill"

	"github.com/stretchr/testify/require"
)

type fakeLauncher struct {
	launched []string
	err      error
}

func (l *fakeLauncher) Launch(_ context.Context, executable string) error {
	if l.err != nil {
		return l.err
	}
	l.launched = append(l.launched, executable)
	return nil
}

func newEngine(surface *memory.Surface) *formfill.Engine {
	return formfill.NewEngine(surface, formfill.NewKeywordClassifier(nil), metrics.Nop{}, logger.NewNop())
}

// startedOn returns a started surface showing page at url.
func startedOn(t *testing.T, url string, page memory.Page) *memory.Surface {
	t.Helper()
	surface := memory.New()
	surface.AddPage(url, page)
	ctx := context.Background()
	require.NoError(t, surface.Start(ctx))
	require.NoError(t, surface.OpenURL(ctx, url))
	return surface
}

func newSession() *entity.Session {
	return entity.NewSession("test")
}
