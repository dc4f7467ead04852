package userinteraction

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"web-assistant/internal/application/port/output"
	"web-assistant/internal/domain/entity"

	"github.com/fatih/color"
)

var _ output.UserInteractionPort = (*ConsoleUserInteraction)(nil)

type ConsoleUserInteraction struct {
	reader *bufio.Reader
	out    io.Writer
}

func NewConsoleUserInteraction() *ConsoleUserInteraction {
	return NewConsole(os.Stdin, color.Output)
}

// NewConsole reads commands from in and renders results to out.
func NewConsole(in io.Reader, out io.Writer) *ConsoleUserInteraction {
	return &ConsoleUserInteraction{
		reader: bufio.NewReader(in),
		out:    out,
	}
}

// ReadLine returns io.EOF when the input is exhausted and
// entity.ErrUserCancelled once ctx is done.
func (u *ConsoleUserInteraction) ReadLine(ctx context.Context, prompt string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", fmt.Errorf("%w: %w", entity.ErrUserCancelled, err)
	}
	color.New(color.FgCyan, color.Bold).Fprint(u.out, prompt)

	line, err := u.reader.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) {
			if line = strings.TrimSpace(line); line != "" {
				return line, nil
			}
			return "", io.EOF
		}
		return "", fmt.Errorf("failed to read user input: %w", err)
	}
	return strings.TrimSpace(line), nil
}

func (u *ConsoleUserInteraction) ShowResult(ctx context.Context, result entity.TaskResult) {
	bucket := result.Bucket()
	icon, style := bucketDisplay(bucket)

	header := fmt.Sprintf("%s [%s]", icon, bucket)
	if title := result.String(entity.DataTaskTitle); title != "" {
		header += " " + title
	}
	style.Fprintln(u.out, header)

	for _, line := range strings.Split(strings.TrimRight(result.Message, "\n"), "\n") {
		fmt.Fprintf(u.out, "   %s\n", line)
	}

	if url := result.String(entity.DataURL); url != "" {
		color.New(color.Faint).Fprintf(u.out, "   %s\n", truncate(url, 120))
	}
}

func (u *ConsoleUserInteraction) ShowInfo(ctx context.Context, message string) {
	color.New(color.Faint).Fprintln(u.out, message)
}

func (u *ConsoleUserInteraction) ShowError(ctx context.Context, err error) {
	color.New(color.FgRed).Fprint(u.out, "Error: ")
	fmt.Fprintln(u.out, err)
}

func bucketDisplay(b entity.Bucket) (string, *color.Color) {
	switch b {
	case entity.BucketDone:
		return "✓", color.New(color.FgGreen, color.Bold)
	case entity.BucketRunning:
		return "▶", color.New(color.FgBlue, color.Bold)
	case entity.BucketWaiting:
		return "⏸", color.New(color.FgYellow, color.Bold)
	default:
		return "✗", color.New(color.FgRed, color.Bold)
	}
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
