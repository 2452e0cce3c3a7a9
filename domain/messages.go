package domain

import "time"

const (
	DefaultRA          = "00 00 00"
	DefaultDeclination = "+00 00 00"
	DefaultRadius      = 0.05
)

// Coordinates is a right-ascension/declination sky position
type Coordinates struct {
	RA     string  `json:"ra"`
	Dec    string  `json:"dec"`
	Radius float64 `json:"-"`
}

// String joins RA and declination the way the prompt expects them
func (c Coordinates) String() string {
	return c.RA + " " + c.Dec
}

// Description is a generated star description
type Description struct {
	LLMResponse string      `json:"llmResponse"`
	Coordinates Coordinates `json:"coordinates"`
	Timestamp   string      `json:"timestamp"`
}

// Timestamp formats t as ISO 8601 UTC with millisecond precision
func Timestamp(t time.Time) string {
	return t.UTC().Format("2006-01-02T15:04:05.000Z")
}
