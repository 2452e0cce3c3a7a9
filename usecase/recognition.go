package usecase

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/satriahrh/starlight/domain/repositories"
)

// RecognitionTimeout is the wall-clock ceiling of one recognition session
const RecognitionTimeout = 25 * time.Second

// RecognitionState is the lifecycle of a recognition session
type RecognitionState int

const (
	RecognitionIdle RecognitionState = iota
	RecognitionRunning
	RecognitionStopped
	RecognitionCanceled
	RecognitionTimedOut
)

func (s RecognitionState) String() string {
	switch s {
	case RecognitionIdle:
		return "idle"
	case RecognitionRunning:
		return "running"
	case RecognitionStopped:
		return "stopped"
	case RecognitionCanceled:
		return "canceled"
	case RecognitionTimedOut:
		return "timed_out"
	default:
		return "unknown"
	}
}

// RecognitionCanceledError is a cancellation that left no transcript behind
type RecognitionCanceledError struct {
	Details string
}

func (e *RecognitionCanceledError) Error() string {
	return e.Details
}

type terminalEvent struct {
	state   RecognitionState
	details string
}

// recognitionRun accumulates one session's transcript. Handlers may fire
// from engine goroutines, so every field is guarded by mu.
type recognitionRun struct {
	mu        sync.Mutex
	state     RecognitionState
	fragments []string
	terminal  chan terminalEvent
}

func newRecognitionRun() *recognitionRun {
	return &recognitionRun{
		state:    RecognitionIdle,
		terminal: make(chan terminalEvent, 1),
	}
}

func (r *recognitionRun) recognized(text string) {
	if text == "" {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.state != RecognitionRunning {
		return
	}
	r.fragments = append(r.fragments, text)
}

// signal records the first terminal event; later ones are dropped
func (r *recognitionRun) signal(ev terminalEvent) {
	select {
	case r.terminal <- ev:
	default:
	}
}

// finish moves the run to its terminal state and returns the transcript
func (r *recognitionRun) finish(state RecognitionState) string {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.state = state
	return strings.Join(r.fragments, " ")
}

// Recognize runs continuous recognition over audioData and returns the
// transcript, bounded by RecognitionTimeout.
func Recognize(ctx context.Context, engine repositories.RecognitionEngine, audioData []byte, config repositories.RecognitionConfig) (string, error) {
	return RecognizeWithTimeout(ctx, engine, audioData, config, RecognitionTimeout)
}

// RecognizeWithTimeout is Recognize with a custom ceiling
func RecognizeWithTimeout(ctx context.Context, engine repositories.RecognitionEngine, audioData []byte, config repositories.RecognitionConfig, timeout time.Duration) (string, error) {
	session, err := engine.NewRecognitionSession(audioData, config)
	if err != nil {
		return "", fmt.Errorf("failed to open recognition session: %w", err)
	}
	defer session.Close()

	run := newRecognitionRun()
	handlers := repositories.RecognitionHandlers{
		Recognized: run.recognized,
		Canceled: func(details string) {
			run.signal(terminalEvent{state: RecognitionCanceled, details: details})
		},
		SessionStopped: func() {
			run.signal(terminalEvent{state: RecognitionStopped})
		},
	}

	run.mu.Lock()
	run.state = RecognitionRunning
	run.mu.Unlock()

	if err := session.StartContinuous(ctx, handlers); err != nil {
		run.finish(RecognitionCanceled)
		return "", fmt.Errorf("failed to start continuous recognition: %w", err)
	}

	timer := time.NewTimer(timeout)
	defer timer.Stop()

	var ev terminalEvent
	select {
	case ev = <-run.terminal:
	case <-timer.C:
		ev = terminalEvent{state: RecognitionTimedOut}
	case <-ctx.Done():
		ev = terminalEvent{state: RecognitionStopped}
	}

	transcript := run.finish(ev.state)

	switch ev.state {
	case RecognitionCanceled:
		if transcript != "" {
			return transcript, nil
		}
		details := ev.details
		if details == "" {
			details = "Canceled"
		}
		return "", &RecognitionCanceledError{Details: details}
	default:
		// Stopped and TimedOut both end by stopping the session
		if err := session.StopContinuous(); err != nil {
			return "", fmt.Errorf("failed to stop continuous recognition: %w", err)
		}
		return transcript, nil
	}
}
