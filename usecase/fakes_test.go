package usecase

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"

	"github.com/satriahrh/starlight/domain/repositories"
)

// fakeSynthesisSession replies with result or err from its own goroutine
type fakeSynthesisSession struct {
	result  repositories.SynthesisResult
	err     error
	silent  bool
	closed  atomic.Int32
	spoken  string
	closeCh chan struct{}
}

func (f *fakeSynthesisSession) SpeakText(ctx context.Context, text string, onResult func(repositories.SynthesisResult), onError func(error)) {
	f.spoken = text
	if f.silent {
		return
	}
	go func() {
		if f.err != nil {
			onError(f.err)
			return
		}
		onResult(f.result)
	}()
}

func (f *fakeSynthesisSession) Close() error {
	if f.closed.Add(1) == 1 && f.closeCh != nil {
		close(f.closeCh)
	}
	return nil
}

type fakeSynthesisEngine struct {
	session *fakeSynthesisSession
	err     error
	config  repositories.VoiceConfig
}

func (f *fakeSynthesisEngine) NewSynthesisSession(config repositories.VoiceConfig) (repositories.SynthesisSession, error) {
	f.config = config
	if f.err != nil {
		return nil, f.err
	}
	return f.session, nil
}

// recognitionEvent is one scripted callback
type recognitionEvent struct {
	recognized string
	canceled   *string
	stopped    bool
}

func recognized(text string) recognitionEvent { return recognitionEvent{recognized: text} }
func canceled(details string) recognitionEvent {
	return recognitionEvent{canceled: &details}
}
func stopped() recognitionEvent { return recognitionEvent{stopped: true} }

// fakeRecognitionSession replays its script on StartContinuous
type fakeRecognitionSession struct {
	script   []recognitionEvent
	startErr error
	stopErr  error

	mu      sync.Mutex
	stops   int
	closes  int
	started bool
}

func (f *fakeRecognitionSession) StartContinuous(ctx context.Context, handlers repositories.RecognitionHandlers) error {
	if f.startErr != nil {
		return f.startErr
	}
	f.mu.Lock()
	f.started = true
	f.mu.Unlock()

	go func() {
		for _, ev := range f.script {
			switch {
			case ev.stopped:
				handlers.SessionStopped()
			case ev.canceled != nil:
				handlers.Canceled(*ev.canceled)
			default:
				handlers.Recognized(ev.recognized)
			}
		}
	}()
	return nil
}

func (f *fakeRecognitionSession) StopContinuous() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.stops++
	return f.stopErr
}

func (f *fakeRecognitionSession) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closes++
	return nil
}

func (f *fakeRecognitionSession) counts() (stops, closes int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.stops, f.closes
}

type fakeRecognitionEngine struct {
	session *fakeRecognitionSession
	err     error
	config  repositories.RecognitionConfig
	audio   []byte
}

func (f *fakeRecognitionEngine) NewRecognitionSession(audioData []byte, config repositories.RecognitionConfig) (repositories.RecognitionSession, error) {
	f.audio = audioData
	f.config = config
	if f.err != nil {
		return nil, f.err
	}
	return f.session, nil
}

// fakeCompleter returns a fixed reply split into deltas
type fakeCompleter struct {
	deltas   []string
	err      error
	messages []repositories.ChatMessage
}

func (f *fakeCompleter) Complete(ctx context.Context, messages []repositories.ChatMessage) (string, error) {
	f.messages = messages
	if f.err != nil {
		return "", f.err
	}
	var out string
	for _, d := range f.deltas {
		out += d
	}
	return out, nil
}

func (f *fakeCompleter) Stream(ctx context.Context, messages []repositories.ChatMessage, onDelta func(string) error) error {
	f.messages = messages
	if f.err != nil {
		return f.err
	}
	for _, d := range f.deltas {
		if err := onDelta(d); err != nil {
			return err
		}
	}
	return nil
}

var errBackend = errors.New("backend unavailable")
