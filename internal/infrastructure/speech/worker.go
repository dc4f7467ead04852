// Package speech voices responses on a background goroutine so a slow
// synthesizer never delays a turn.
package speech

import (
	"context"
	"os/exec"
	"strings"
	"sync"

	"web-assistant/internal/application/port/output"
)

var _ output.Speaker = (*Worker)(nil)

const defaultQueueSize = 16

// Synthesizer turns text into audio. Say blocks until playback ends.
type Synthesizer interface {
	Say(ctx context.Context, text string) error
}

// Worker queues utterances and plays them one at a time. When the queue is
// full new utterances are dropped.
type Worker struct {
	synth  Synthesizer
	logger output.LoggerPort
	queue  chan string

	ctx    context.Context
	cancel context.CancelFunc
	done   chan struct{}
	once   sync.Once
	mu     sync.RWMutex
	closed bool
}

func NewWorker(synth Synthesizer, logger output.LoggerPort, queueSize int) *Worker {
	if queueSize <= 0 {
		queueSize = defaultQueueSize
	}
	ctx, cancel := context.WithCancel(context.Background())
	w := &Worker{
		synth:  synth,
		logger: logger,
		queue:  make(chan string, queueSize),
		ctx:    ctx,
		cancel: cancel,
		done:   make(chan struct{}),
	}
	go w.run()
	return w
}

func (w *Worker) Speak(text string) {
	text = strings.TrimSpace(text)
	if text == "" {
		return
	}

	w.mu.RLock()
	defer w.mu.RUnlock()
	if w.closed {
		return
	}
	select {
	case w.queue <- text:
	default:
		w.logger.Warn("Speech queue full, dropping utterance", "length", len(text))
	}
}

func (w *Worker) run() {
	defer close(w.done)
	for text := range w.queue {
		if w.ctx.Err() != nil {
			continue
		}
		if err := w.synth.Say(w.ctx, text); err != nil && w.ctx.Err() == nil {
			w.logger.Warn("Speech synthesis failed", "error", err)
		}
	}
}

// Close stops playback, discards queued utterances and waits for the
// worker goroutine to exit.
func (w *Worker) Close() {
	w.once.Do(func() {
		w.mu.Lock()
		w.closed = true
		close(w.queue)
		w.mu.Unlock()
		w.cancel()
	})
	<-w.done
}

// CommandSynthesizer speaks through an external program such as espeak or
// say, passing the text as the last argument.
type CommandSynthesizer struct {
	Program string
	Args    []string
}

func (s CommandSynthesizer) Say(ctx context.Context, text string) error {
	args := append(append([]string{}, s.Args...), text)
	return exec.CommandContext(ctx, s.Program, args...).Run()
}

// DetectSynthesizer returns the first speech program found on PATH.
func DetectSynthesizer() (CommandSynthesizer, bool) {
	for _, candidate := range []CommandSynthesizer{
		{Program: "espeak"},
		{Program: "spd-say", Args: []string{"--wait"}},
		{Program: "say"},
	} {
		if _, err := exec.LookPath(candidate.Program); err == nil {
			return candidate, true
		}
	}
	return CommandSynthesizer{}, false
}
