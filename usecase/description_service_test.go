package usecase

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"go.uber.org/zap/zaptest"

	"github.com/satriahrh/starlight/domain"
	"github.com/satriahrh/starlight/domain/repositories"
)

func TestBuildMessages(t *testing.T) {
	messages := BuildMessages("06 45 08 -16 42 58")

	if len(messages) != 2 {
		t.Fatalf("Expected 2 messages, got %d", len(messages))
	}
	if messages[0].Role != repositories.SystemRole {
		t.Errorf("Expected system role first, got %s", messages[0].Role)
	}
	if messages[1].Role != repositories.UserRole {
		t.Errorf("Expected user role second, got %s", messages[1].Role)
	}
	if messages[1].Content != "Star coordinates: 06 45 08 -16 42 58" {
		t.Errorf("Unexpected user content %q", messages[1].Content)
	}

	for _, want := range []string{"without giving a range", "single paragraph", "Absolute Magnitude", "exoplanets"} {
		if !strings.Contains(messages[0].Content, want) {
			t.Errorf("System instruction missing %q", want)
		}
	}
}

func TestBuildMessages_Deterministic(t *testing.T) {
	a := BuildMessages("00 00 00 +00 00 00")
	b := BuildMessages("00 00 00 +00 00 00")
	if !reflect.DeepEqual(a, b) {
		t.Error("Expected identical messages for identical input")
	}

	other := BuildMessages("12 00 00 +10 00 00")
	if a[0] != other[0] {
		t.Error("System message should not depend on the coordinates")
	}
}

func newTestDescriptionService(t *testing.T, llm repositories.ChatCompleter) *DescriptionService {
	s := NewDescriptionService(llm, zaptest.NewLogger(t))
	s.now = func() time.Time { return time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC) }
	return s
}

func TestDescriptionService_Describe(t *testing.T) {
	llm := &fakeCompleter{deltas: []string{"Sirius", " is bright"}}
	s := newTestDescriptionService(t, llm)

	desc, err := s.Describe(context.Background(), domain.Coordinates{RA: "06 45 08", Dec: "-16 42 58"})
	if err != nil {
		t.Fatalf("Describe returned error: %v", err)
	}

	if desc.LLMResponse != "Sirius is bright" {
		t.Errorf("Unexpected response %q", desc.LLMResponse)
	}
	if desc.Coordinates.RA != "06 45 08" || desc.Coordinates.Dec != "-16 42 58" {
		t.Errorf("Unexpected coordinates %+v", desc.Coordinates)
	}
	if desc.Timestamp != "2024-03-01T12:00:00.000Z" {
		t.Errorf("Unexpected timestamp %q", desc.Timestamp)
	}
	if llm.messages[1].Content != "Star coordinates: 06 45 08 -16 42 58" {
		t.Errorf("Unexpected prompt %q", llm.messages[1].Content)
	}
}

func TestDescriptionService_EmptyReply(t *testing.T) {
	s := newTestDescriptionService(t, &fakeCompleter{deltas: []string{"  "}})

	desc, err := s.Describe(context.Background(), domain.Coordinates{RA: domain.DefaultRA, Dec: domain.DefaultDeclination})
	if err != nil {
		t.Fatalf("Describe returned error: %v", err)
	}
	if desc.LLMResponse != NoResponseText {
		t.Errorf("Expected %q, got %q", NoResponseText, desc.LLMResponse)
	}
}

func TestDescriptionService_Error(t *testing.T) {
	s := newTestDescriptionService(t, &fakeCompleter{err: errBackend})

	_, err := s.Describe(context.Background(), domain.Coordinates{})
	if !errors.Is(err, errBackend) {
		t.Errorf("Expected wrapped backend error, got %v", err)
	}
}

func TestDescriptionService_DescribeStream(t *testing.T) {
	s := newTestDescriptionService(t, &fakeCompleter{deltas: []string{"Vega", " is", " blue "}})

	var seen []string
	desc, err := s.DescribeStream(context.Background(), domain.Coordinates{RA: "18 36 56", Dec: "+38 47 01"}, func(delta string) error {
		seen = append(seen, delta)
		return nil
	})
	if err != nil {
		t.Fatalf("DescribeStream returned error: %v", err)
	}
	if len(seen) != 3 {
		t.Errorf("Expected 3 deltas, got %d", len(seen))
	}
	if desc.LLMResponse != "Vega is blue" {
		t.Errorf("Unexpected response %q", desc.LLMResponse)
	}
}

func TestPreview_MultiByte(t *testing.T) {
	text := strings.Repeat("★", 60)
	got := preview(text, 50)
	if !utf8.ValidString(got) {
		t.Fatalf("Expected valid UTF-8, got %q", got)
	}
	if n := utf8.RuneCountInString(got); n != 50 {
		t.Errorf("Expected 50 runes, got %d", n)
	}
	if short := preview("Rigel", 50); short != "Rigel" {
		t.Errorf("Expected short text unchanged, got %q", short)
	}
}
