package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"time"

	"github.com/gorilla/websocket"
)

// Manual client for a running server: streams a description over the
// websocket route, optionally speaks it and transcribes a WAV file.
func main() {
	addr := flag.String("addr", "localhost:3000", "server host:port")
	ra := flag.String("ra", "06 45 08", "right ascension")
	dec := flag.String("dec", "-16 42 58", "declination")
	speak := flag.String("speak", "", "write the spoken description to this MP3 file")
	wavPath := flag.String("wav", "", "WAV file to transcribe")
	lang := flag.String("lang", "en-US", "recognition language")
	flag.Parse()

	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt)

	description, err := streamDescription(*addr, *ra, *dec, interrupt)
	if err != nil {
		log.Fatal("description stream:", err)
	}

	if *speak != "" {
		if err := speakDescription(*addr, description, *speak); err != nil {
			log.Fatal("descToSpeech:", err)
		}
	}

	if *wavPath != "" {
		if err := transcribe(*addr, *wavPath, *lang); err != nil {
			log.Fatal("speechToText:", err)
		}
	}
}

type streamFrame struct {
	Type     string `json:"type"`
	StreamID string `json:"stream_id"`
	Content  string `json:"content"`
	Code     string `json:"error_code"`
	Message  string `json:"message"`
	Data     struct {
		LLMResponse string `json:"llmResponse"`
	} `json:"data"`
}

func streamDescription(addr, ra, dec string, interrupt <-chan os.Signal) (string, error) {
	query := url.Values{}
	query.Set("RA", ra)
	query.Set("Declination", dec)
	u := url.URL{Scheme: "ws", Host: addr, Path: "/api/namesToDesc/stream", RawQuery: query.Encode()}
	log.Printf("connecting to %s", u.String())

	c, _, err := websocket.DefaultDialer.Dial(u.String(), nil)
	if err != nil {
		return "", fmt.Errorf("dial: %w", err)
	}
	defer c.Close()

	type result struct {
		text string
		err  error
	}
	done := make(chan result, 1)
	go func() {
		text, err := readFrames(c)
		done <- result{text: text, err: err}
	}()

	select {
	case r := <-done:
		return r.text, r.err
	case <-interrupt:
		log.Println("interrupt")
		// Cleanly close the connection by sending a close message and then
		// waiting (with timeout) for the server to close the connection.
		err := c.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
		if err != nil {
			return "", fmt.Errorf("write close: %w", err)
		}
		select {
		case <-done:
		case <-time.After(time.Second):
		}
		return "", fmt.Errorf("interrupted")
	}
}

func readFrames(c *websocket.Conn) (text string, err error) {
	start := time.Now()
	for {
		_, message, err := c.ReadMessage()
		if err != nil {
			return "", fmt.Errorf("read: %w", err)
		}

		var frame streamFrame
		if err := json.Unmarshal(message, &frame); err != nil {
			log.Println("unmarshal error:", err)
			continue
		}

		switch frame.Type {
		case "delta":
			fmt.Print(frame.Content)
		case "done":
			fmt.Println()
			log.Printf("stream %s finished in %v", frame.StreamID, time.Since(start))
			return frame.Data.LLMResponse, nil
		case "error":
			fmt.Println()
			return "", fmt.Errorf("%s: %s", frame.Code, frame.Message)
		default:
			log.Printf("Received unknown message type: %s", frame.Type)
		}
	}
}

func speakDescription(addr, text, path string) error {
	body, err := json.Marshal(map[string]string{"text": text})
	if err != nil {
		return err
	}

	resp, err := http.Post("http://"+addr+"/api/descToSpeech", "application/json", bytes.NewReader(body))
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	audio, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("status %d: %s", resp.StatusCode, string(audio))
	}

	if err := os.WriteFile(path, audio, 0o644); err != nil {
		return err
	}
	log.Printf("wrote %s (%d bytes)", path, len(audio))
	return nil
}

func transcribe(addr, path, lang string) error {
	audio, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	log.Printf("read audio file: %s (%d bytes)", path, len(audio))

	target := "http://" + addr + "/api/speechToText?lang=" + url.QueryEscape(lang)
	resp, err := http.Post(target, "audio/wav", bytes.NewReader(audio))
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("status %d: %s", resp.StatusCode, string(body))
	}

	var transcription struct {
		Text     string `json:"text"`
		Language string `json:"language"`
	}
	if err := json.Unmarshal(body, &transcription); err != nil {
		return err
	}
	log.Printf("transcript (%s): %s", transcription.Language, transcription.Text)
	return nil
}
