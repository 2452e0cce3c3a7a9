package stt

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"

	speech "cloud.google.com/go/speech/apiv1"
	"cloud.google.com/go/speech/apiv1/speechpb"
	"go.uber.org/zap"
	"google.golang.org/protobuf/types/known/durationpb"

	"github.com/satriahrh/starlight/domain/repositories"
	"github.com/satriahrh/starlight/internal/wav"
)

// audioChunkSize keeps each streaming request well under the API message limit
const audioChunkSize = 16 * 1024

// GoogleSpeechToText implements RecognitionEngine for Google Cloud
type GoogleSpeechToText struct {
	client *speech.Client
	logger *zap.Logger
}

var _ repositories.RecognitionEngine = (*GoogleSpeechToText)(nil)

// NewGoogleSpeechToText creates the speech client once, using application default credentials
func NewGoogleSpeechToText(ctx context.Context, logger *zap.Logger) (*GoogleSpeechToText, error) {
	client, err := speech.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create speech client: %w", err)
	}
	return &GoogleSpeechToText{client: client, logger: logger}, nil
}

// Close releases the underlying client
func (g *GoogleSpeechToText) Close() error {
	return g.client.Close()
}

// NewRecognitionSession implements repositories.RecognitionEngine
func (g *GoogleSpeechToText) NewRecognitionSession(audioData []byte, config repositories.RecognitionConfig) (repositories.RecognitionSession, error) {
	return &GoogleSpeechToTextStream{
		client: g.client,
		audio:  audioData,
		config: config,
		logger: g.logger,
	}, nil
}

// GoogleSpeechToTextStream is one continuous streaming recognition
type GoogleSpeechToTextStream struct {
	client *speech.Client
	audio  []byte
	config repositories.RecognitionConfig
	logger *zap.Logger

	mu       sync.Mutex
	cancel   context.CancelFunc
	stopping bool
}

func (g *GoogleSpeechToTextStream) StartContinuous(ctx context.Context, handlers repositories.RecognitionHandlers) error {
	streamCtx, cancel := context.WithCancel(ctx)
	g.mu.Lock()
	g.cancel = cancel
	g.mu.Unlock()

	stream, err := g.client.StreamingRecognize(streamCtx)
	if err != nil {
		cancel()
		return fmt.Errorf("failed to create streaming recognize: %w", err)
	}

	if err := stream.Send(&speechpb.StreamingRecognizeRequest{
		StreamingRequest: &speechpb.StreamingRecognizeRequest_StreamingConfig{
			StreamingConfig: streamingConfig(g.audio, g.config),
		},
	}); err != nil {
		stream.CloseSend()
		cancel()
		return fmt.Errorf("failed to send streaming config: %w", err)
	}

	go g.sendAudio(stream)
	go g.receiveResults(stream, handlers)
	return nil
}

func (g *GoogleSpeechToTextStream) sendAudio(stream speechpb.Speech_StreamingRecognizeClient) {
	defer stream.CloseSend()

	for offset := 0; offset < len(g.audio); offset += audioChunkSize {
		end := min(offset+audioChunkSize, len(g.audio))
		if err := stream.Send(&speechpb.StreamingRecognizeRequest{
			StreamingRequest: &speechpb.StreamingRecognizeRequest_AudioContent{
				AudioContent: g.audio[offset:end],
			},
		}); err != nil {
			// Recv reports the failure
			g.logger.Warn("Failed to send audio chunk", zap.Int("offset", offset), zap.Error(err))
			return
		}
	}
}

func (g *GoogleSpeechToTextStream) receiveResults(stream speechpb.Speech_StreamingRecognizeClient, handlers repositories.RecognitionHandlers) {
	for {
		resp, err := stream.Recv()
		if err == io.EOF {
			handlers.SessionStopped()
			return
		}
		if err != nil {
			if g.isStopping() || errors.Is(err, context.Canceled) {
				handlers.SessionStopped()
				return
			}
			handlers.Canceled(fmt.Sprintf("failed to receive response: %v", err))
			return
		}
		if !handleResponse(resp, handlers) {
			return
		}
	}
}

// handleResponse dispatches one streaming response; false means the session ended
func handleResponse(resp *speechpb.StreamingRecognizeResponse, handlers repositories.RecognitionHandlers) bool {
	if resp.Error != nil {
		handlers.Canceled(resp.Error.Message)
		return false
	}
	for _, result := range resp.Results {
		if result.IsFinal && len(result.Alternatives) > 0 {
			handlers.Recognized(result.Alternatives[0].Transcript)
		}
	}
	return true
}

// streamingConfig builds a continuous, final-results-only configuration
func streamingConfig(audio []byte, config repositories.RecognitionConfig) *speechpb.StreamingRecognitionConfig {
	recognitionConfig := &speechpb.RecognitionConfig{
		Encoding:     speechpb.RecognitionConfig_LINEAR16,
		LanguageCode: config.Language,
	}
	if format, ok := wav.ParseFormat(audio); ok {
		recognitionConfig.SampleRateHertz = int32(format.SampleRate)
		recognitionConfig.AudioChannelCount = int32(format.Channels)
	}

	streaming := &speechpb.StreamingRecognitionConfig{
		Config:          recognitionConfig,
		InterimResults:  false,
		SingleUtterance: false,
	}
	if config.InitialSilenceTimeout > 0 || config.EndSilenceTimeout > 0 {
		streaming.EnableVoiceActivityEvents = true
		streaming.VoiceActivityTimeout = &speechpb.StreamingRecognitionConfig_VoiceActivityTimeout{
			SpeechStartTimeout: durationpb.New(config.InitialSilenceTimeout),
			SpeechEndTimeout:   durationpb.New(config.EndSilenceTimeout),
		}
	}
	return streaming
}

func (g *GoogleSpeechToTextStream) isStopping() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.stopping
}

func (g *GoogleSpeechToTextStream) StopContinuous() error {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.stopping = true
	if g.cancel != nil {
		g.cancel()
	}
	return nil
}

func (g *GoogleSpeechToTextStream) Close() error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.cancel != nil {
		g.cancel()
	}
	return nil
}
