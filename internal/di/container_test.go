package di

import (
	"context"
	"testing"

	"web-assistant/internal/domain/entity"
	"web-assistant/internal/infrastructure/config"
	"web-assistant/internal/infrastructure/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func offlineConfig(t *testing.T) *config.Config {
	return &config.Config{
		Surface:       config.SurfaceMemory,
		ScreenshotDir: t.TempDir(),
		Assistant:     config.DefaultAssistant(),
	}
}

func TestNewContainer_Offline(t *testing.T) {
	c, err := NewContainer(context.Background(), offlineConfig(t), Options{Logger: logger.NewNop()})
	require.NoError(t, err)
	defer c.Close()

	assert.Len(t, c.Tasks.All(), 13)

	res, err := c.Controller.HandleText(context.Background(), "cli", "open example.com")
	require.NoError(t, err)
	assert.Equal(t, entity.StatusOpened, res.Status())

	res, err = c.Controller.HandleText(context.Background(), "cli", "auto fill")
	require.NoError(t, err)
	assert.Equal(t, entity.StatusFormFilled, res.Status())
}

func TestNewContainer_HelpListsApplications(t *testing.T) {
	c, err := NewContainer(context.Background(), offlineConfig(t), Options{Logger: logger.NewNop()})
	require.NoError(t, err)
	defer c.Close()

	res, err := c.Controller.HandleText(context.Background(), "cli", "what is the weather")
	require.NoError(t, err)
	assert.False(t, res.Success)
	assert.Contains(t, res.Message, "Applications:")
}
