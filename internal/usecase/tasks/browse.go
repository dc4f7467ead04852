package tasks

import (
	"context"
	"fmt"
	"strings"

	"web-assistant/internal/application/port/output"
	"web-assistant/internal/domain/entity"
	"web-assistant/internal/usecase/parser"
)

const searchURL = "https://www.google.com/search?q="

type OpenURLTask struct {
	surface output.AutomationSurface
	logger  output.LoggerPort
}

var _ output.TaskHandler = (*OpenURLTask)(nil)

func NewOpenURLTask(surface output.AutomationSurface, logger output.LoggerPort) *OpenURLTask {
	return &OpenURLTask{surface: surface, logger: logger}
}

func (t *OpenURLTask) Intent() entity.Intent {
	return entity.IntentOpenURL
}

func (t *OpenURLTask) Execute(ctx context.Context, _ *entity.Session, cmd entity.Command) entity.TaskResult {
	url := strings.TrimSpace(cmd.Slot(entity.SlotURL))
	if url == "" {
		return entity.Failed("No URL provided. Usage: \"open https://example.com\" or just paste the URL")
	}
	url = parser.NormalizeURL(url)

	if err := openPage(ctx, t.surface, url); err != nil {
		t.logger.Warn("Failed to open page", "url", url, "error", err)
		return entity.Succeeded(
			fmt.Sprintf("Browser unavailable. Please open it yourself:\n%s", url),
			entity.StatusManualRequired,
		).With(entity.DataURL, url)
	}

	return entity.Succeeded(
		fmt.Sprintf("Opening %s\n\nBrowser window opened. You can now interact with the website.", url),
		entity.StatusOpened,
	).With(entity.DataURL, url)
}

type SearchTask struct {
	surface output.AutomationSurface
	logger  output.LoggerPort
}

var _ output.TaskHandler = (*SearchTask)(nil)

func NewSearchTask(surface output.AutomationSurface, logger output.LoggerPort) *SearchTask {
	return &SearchTask{surface: surface, logger: logger}
}

func (t *SearchTask) Intent() entity.Intent {
	return entity.IntentSearch
}

func (t *SearchTask) Execute(ctx context.Context, _ *entity.Session, cmd entity.Command) entity.TaskResult {
	query := strings.TrimSpace(cmd.Slot(entity.SlotQuery))
	if query == "" {
		return entity.Failed("Please provide a search query. Example: \"search Go tutorials\"")
	}

	url := SearchURL(query)
	if err := openPage(ctx, t.surface, url); err != nil {
		t.logger.Warn("Failed to open search page", "query", query, "error", err)
		return entity.Succeeded(
			fmt.Sprintf("Searching for: %s\nBrowser unavailable, open this link yourself:\n%s", query, url),
			entity.StatusManualRequired,
		).With(entity.DataURL, url).With("query", query)
	}

	return entity.Succeeded(fmt.Sprintf("Searching for: %s", query), "").
		With(entity.DataURL, url).
		With("query", query)
}

// SearchURL builds the search engine URL for query.
func SearchURL(query string) string {
	return searchURL + strings.Join(strings.Fields(query), "+")
}
