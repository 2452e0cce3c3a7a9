package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/satriahrh/starlight/domain"
	"github.com/satriahrh/starlight/domain/repositories"
)

// NoResponseText replaces an empty completion
const NoResponseText = "No response."

const descriptionInstruction = "Given the name of a star, return ONLY the following scientific properties without giving a range; use all of this in single paragraph description of the Star:\n" +
	"- Star Name\n" +
	"- Radius (Solar Masses)\n" +
	"- Radius Units (In Solar Masses): \n" +
	"- Absolute Magnitude\n" +
	"- Color\n" +
	"- Distance from Earth in Light Years\n\n" +
	"- Distance Units\n" +
	"- Coordinate of the Star in this format '00 00 00' for Right Ascension, '00 00 00' for Declination\n\n" +
	"- List out any exoplanets in a list [exoplanet_one, exoplanet_2,...]\n"

// BuildMessages returns the system instruction and the user message for a star position
func BuildMessages(starCoords string) []repositories.ChatMessage {
	return []repositories.ChatMessage{
		{Role: repositories.SystemRole, Content: descriptionInstruction},
		{Role: repositories.UserRole, Content: "Star coordinates: " + starCoords},
	}
}

// DescriptionService generates star descriptions through an inference backend
type DescriptionService struct {
	llm    repositories.ChatCompleter
	logger *zap.Logger
	now    func() time.Time
}

// NewDescriptionService creates a new description service
func NewDescriptionService(llm repositories.ChatCompleter, logger *zap.Logger) *DescriptionService {
	return &DescriptionService{
		llm:    llm,
		logger: logger,
		now:    time.Now,
	}
}

// Describe asks the backend for a description of the star at coords
func (s *DescriptionService) Describe(ctx context.Context, coords domain.Coordinates) (*domain.Description, error) {
	messages := BuildMessages(coords.String())

	s.logger.Info("Requesting star description",
		zap.String("ra", coords.RA),
		zap.String("dec", coords.Dec))

	text, err := s.llm.Complete(ctx, messages)
	if err != nil {
		return nil, fmt.Errorf("chat completion failed: %w", err)
	}

	return s.description(coords, text), nil
}

// DescribeStream is Describe with every content fragment passed to onDelta as it arrives
func (s *DescriptionService) DescribeStream(ctx context.Context, coords domain.Coordinates, onDelta func(delta string) error) (*domain.Description, error) {
	messages := BuildMessages(coords.String())

	var collected strings.Builder
	err := s.llm.Stream(ctx, messages, func(delta string) error {
		collected.WriteString(delta)
		return onDelta(delta)
	})
	if err != nil {
		return nil, fmt.Errorf("chat completion stream failed: %w", err)
	}

	return s.description(coords, collected.String()), nil
}

func (s *DescriptionService) description(coords domain.Coordinates, text string) *domain.Description {
	text = strings.TrimSpace(text)
	if text == "" {
		text = NoResponseText
	}

	s.logger.Info("Star description generated",
		zap.String("response_preview", preview(text, 50)))

	return &domain.Description{
		LLMResponse: text,
		Coordinates: domain.Coordinates{RA: coords.RA, Dec: coords.Dec},
		Timestamp:   domain.Timestamp(s.now()),
	}
}

// preview returns at most limit runes of text
func preview(text string, limit int) string {
	runes := []rune(text)
	if len(runes) <= limit {
		return text
	}
	return string(runes[:limit])
}
