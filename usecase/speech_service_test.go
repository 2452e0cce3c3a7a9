package usecase

import (
	"context"
	"testing"
	"time"

	"go.uber.org/zap/zaptest"

	"github.com/satriahrh/starlight/domain/repositories"
)

func TestSpeechService_Defaults(t *testing.T) {
	synth := &fakeSynthesisEngine{session: &fakeSynthesisSession{
		result: repositories.SynthesisResult{Reason: repositories.ReasonSynthesizingAudioCompleted, AudioData: []byte{1}},
	}}
	s := NewSpeechService(synth, nil, repositories.VoiceConfig{}, zaptest.NewLogger(t))

	if _, err := s.TextToSpeech(context.Background(), "hello"); err != nil {
		t.Fatalf("TextToSpeech returned error: %v", err)
	}
	if synth.config.Voice != DefaultVoice {
		t.Errorf("Expected voice %s, got %s", DefaultVoice, synth.config.Voice)
	}
	if synth.config.OutputFormat != DefaultOutputFormat {
		t.Errorf("Expected format %s, got %s", DefaultOutputFormat, synth.config.OutputFormat)
	}
}

func TestSpeechService_SpeechToText(t *testing.T) {
	recog := &fakeRecognitionEngine{session: &fakeRecognitionSession{script: []recognitionEvent{
		recognized("twinkle twinkle"),
		stopped(),
	}}}
	s := NewSpeechService(nil, recog, repositories.VoiceConfig{}, zaptest.NewLogger(t))
	s.SetRecognitionTimeout(time.Second)

	text, err := s.SpeechToText(context.Background(), []byte("audio"), "en-GB")
	if err != nil {
		t.Fatalf("SpeechToText returned error: %v", err)
	}
	if text != "twinkle twinkle" {
		t.Errorf("Unexpected transcript %q", text)
	}
	if recog.config.Language != "en-GB" {
		t.Errorf("Expected language en-GB, got %s", recog.config.Language)
	}
	if recog.config.InitialSilenceTimeout != 20*time.Second || recog.config.EndSilenceTimeout != 5*time.Second {
		t.Errorf("Unexpected silence timeouts %+v", recog.config)
	}
}

type checkedRecognitionEngine struct {
	fakeRecognitionEngine
	err error
}

func (e *checkedRecognitionEngine) CheckCredentials() error { return e.err }

func TestSpeechService_CheckRecognitionCredentials(t *testing.T) {
	plain := NewSpeechService(nil, &fakeRecognitionEngine{}, repositories.VoiceConfig{}, zaptest.NewLogger(t))
	if err := plain.CheckRecognitionCredentials(); err != nil {
		t.Errorf("Expected nil for engine without a checker, got %v", err)
	}

	checked := NewSpeechService(nil, &checkedRecognitionEngine{err: repositories.ErrMissingCredentials}, repositories.VoiceConfig{}, zaptest.NewLogger(t))
	if err := checked.CheckRecognitionCredentials(); err != repositories.ErrMissingCredentials {
		t.Errorf("Expected ErrMissingCredentials, got %v", err)
	}
}
