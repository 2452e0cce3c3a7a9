package usecase

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/satriahrh/starlight/domain/repositories"
)

// ErrSynthesisFailed matches every SynthesisError
var ErrSynthesisFailed = errors.New("speech synthesis failed")

// SynthesisError is a session that finished without completing audio
type SynthesisError struct {
	Reason  repositories.ResultReason
	Details string
}

func (e *SynthesisError) Error() string {
	if e.Details == "" {
		return fmt.Sprintf("speech synthesis failed: %s", e.Reason)
	}
	return fmt.Sprintf("speech synthesis failed: %s: %s", e.Reason, e.Details)
}

func (e *SynthesisError) Is(target error) bool {
	return target == ErrSynthesisFailed
}

type synthesisOutcome struct {
	result repositories.SynthesisResult
	err    error
}

// Synthesize runs one synthesis session to completion and returns its audio.
// The session is closed before the result is returned, on every path.
func Synthesize(ctx context.Context, engine repositories.SynthesisEngine, text string, config repositories.VoiceConfig) ([]byte, error) {
	session, err := engine.NewSynthesisSession(config)
	if err != nil {
		return nil, fmt.Errorf("failed to open synthesis session: %w", err)
	}

	var closeOnce sync.Once
	release := func() {
		closeOnce.Do(func() { session.Close() })
	}

	done := make(chan synthesisOutcome, 1)
	settle := func(o synthesisOutcome) {
		release()
		select {
		case done <- o:
		default:
		}
	}

	session.SpeakText(ctx, text,
		func(result repositories.SynthesisResult) {
			settle(synthesisOutcome{result: result})
		},
		func(err error) {
			settle(synthesisOutcome{err: err})
		},
	)

	var outcome synthesisOutcome
	select {
	case outcome = <-done:
	case <-ctx.Done():
		release()
		return nil, ctx.Err()
	}

	if outcome.err != nil {
		return nil, outcome.err
	}
	if outcome.result.Reason != repositories.ReasonSynthesizingAudioCompleted {
		return nil, &SynthesisError{
			Reason:  outcome.result.Reason,
			Details: outcome.result.ErrorDetails,
		}
	}
	return outcome.result.AudioData, nil
}
