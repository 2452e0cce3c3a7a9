package websocket

import (
	"time"

	"github.com/satriahrh/starlight/domain"
)

// MessageType defines the type of WebSocket message
type MessageType string

// Supported message types
const (
	MessageTypeDelta MessageType = "delta"
	MessageTypeDone  MessageType = "done"
	MessageTypeError MessageType = "error"
)

// Error codes carried by error frames
const (
	ErrorCodeCompletionFailed = "llm_completion_failed"
)

// BaseMessage defines the common structure for all stream frames
type BaseMessage struct {
	Type      MessageType `json:"type"`
	StreamID  string      `json:"stream_id"`
	Timestamp string      `json:"timestamp,omitempty"`
}

// DeltaMessage carries one fragment of the description as it is generated
type DeltaMessage struct {
	BaseMessage
	Content string `json:"content"`
}

// DoneMessage carries the final description
type DoneMessage struct {
	BaseMessage
	Data *domain.Description `json:"data"`
}

// ErrorMessage represents an error response
type ErrorMessage struct {
	BaseMessage
	Code    string `json:"error_code"`
	Message string `json:"message"`
}

// CreateDeltaMessage creates a delta frame
func CreateDeltaMessage(streamID, content string) *DeltaMessage {
	return &DeltaMessage{
		BaseMessage: BaseMessage{
			Type:      MessageTypeDelta,
			StreamID:  streamID,
			Timestamp: domain.Timestamp(time.Now()),
		},
		Content: content,
	}
}

// CreateDoneMessage creates the terminal frame for a finished description
func CreateDoneMessage(streamID string, description *domain.Description) *DoneMessage {
	return &DoneMessage{
		BaseMessage: BaseMessage{
			Type:     MessageTypeDone,
			StreamID: streamID,
		},
		Data: description,
	}
}

// CreateErrorMessage creates a standardized error message
func CreateErrorMessage(streamID, code, message string) *ErrorMessage {
	return &ErrorMessage{
		BaseMessage: BaseMessage{
			Type:      MessageTypeError,
			StreamID:  streamID,
			Timestamp: domain.Timestamp(time.Now()),
		},
		Code:    code,
		Message: message,
	}
}
