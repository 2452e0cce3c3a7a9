// Package sse reads chat-completion text out of server-sent-event streams.
package sse

import (
	"bufio"
	"encoding/json"
	"io"
	"regexp"
	"strings"
)

const dataPrefix = "data:"

var lineBreak = regexp.MustCompile(`\r?\n`)

// frame is the part of a streamed completion chunk we care about
type frame struct {
	Choices []struct {
		Delta struct {
			Content *string `json:"content"`
		} `json:"delta"`
	} `json:"choices"`
}

// deltaFromLine returns the incremental content carried by one line.
// Lines that are not data frames, or whose payload is not JSON, yield "".
func deltaFromLine(line string) string {
	if !strings.HasPrefix(line, dataPrefix) {
		return ""
	}
	payload := strings.TrimSpace(line[len(dataPrefix):])
	if payload == "" {
		return ""
	}

	var f frame
	if err := json.Unmarshal([]byte(payload), &f); err != nil {
		return ""
	}
	if len(f.Choices) == 0 || f.Choices[0].Delta.Content == nil {
		return ""
	}
	return *f.Choices[0].Delta.Content
}

// ExtractText concatenates the delta content of every data frame in raw and
// trims the result. Malformed frames are skipped.
func ExtractText(raw string) string {
	var out strings.Builder
	for _, line := range lineBreak.Split(raw, -1) {
		out.WriteString(deltaFromLine(line))
	}
	return strings.TrimSpace(out.String())
}

// Decode reads frames from r as they arrive and calls fn with each non-empty
// delta in order. It returns the first error from fn or from reading r.
func Decode(r io.Reader, fn func(delta string) error) error {
	reader := bufio.NewReader(r)
	for {
		line, err := reader.ReadString('\n')
		if len(line) > 0 {
			delta := deltaFromLine(strings.TrimRight(line, "\r\n"))
			if delta != "" {
				if ferr := fn(delta); ferr != nil {
					return ferr
				}
			}
		}
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
	}
}
