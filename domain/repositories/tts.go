package repositories

import "context"

// SynthesisEngine opens speech synthesis sessions
type SynthesisEngine interface {
	NewSynthesisSession(config VoiceConfig) (SynthesisSession, error)
}

// SynthesisSession is a single callback-driven synthesis run.
// Exactly one of onResult or onError is called for each SpeakText.
type SynthesisSession interface {
	SpeakText(ctx context.Context, text string, onResult func(SynthesisResult), onError func(error))
	Close() error
}

// VoiceConfig represents voice configuration for TTS
type VoiceConfig struct {
	Voice        string `json:"voice"`
	Language     string `json:"language"`
	OutputFormat string `json:"output_format"`
}

// ResultReason tells why a synthesis session finished
type ResultReason int

const (
	ReasonUnknown ResultReason = iota
	ReasonSynthesizingAudioCompleted
	ReasonCanceled
)

func (r ResultReason) String() string {
	switch r {
	case ReasonSynthesizingAudioCompleted:
		return "SynthesizingAudioCompleted"
	case ReasonCanceled:
		return "Canceled"
	default:
		return "Unknown"
	}
}

// SynthesisResult is what a finished synthesis session produced
type SynthesisResult struct {
	Reason       ResultReason
	AudioData    []byte
	ErrorDetails string
}
