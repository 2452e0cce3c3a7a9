package sse

import (
	"errors"
	"strings"
	"testing"
)

func TestExtractText(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{
			name: "two frames",
			raw:  "data: {\"choices\":[{\"delta\":{\"content\":\"Sirius\"}}]}\n\ndata: {\"choices\":[{\"delta\":{\"content\":\" is bright\"}}]}\n",
			want: "Sirius is bright",
		},
		{
			name: "malformed frames are skipped",
			raw: "data: {\"choices\":[{\"delta\":{\"content\":\"Vega\"}}]}\n" +
				"data: {not json\n" +
				"data: {\"choices\":[{\"delta\":{\"content\":\" is\"}}]}\n" +
				"data: [DONE]\n" +
				"data: {\"choices\":[{\"delta\":{\"content\":\" blue\"}}]}\n",
			want: "Vega is blue",
		},
		{
			name: "crlf line endings",
			raw:  "data: {\"choices\":[{\"delta\":{\"content\":\"A\"}}]}\r\ndata: {\"choices\":[{\"delta\":{\"content\":\"B\"}}]}\r\n",
			want: "AB",
		},
		{
			name: "non data lines ignored",
			raw:  "event: message\nid: 1\n: comment\ndata: {\"choices\":[{\"delta\":{\"content\":\"ok\"}}]}\n",
			want: "ok",
		},
		{
			name: "frames without content",
			raw:  "data: {\"choices\":[{\"delta\":{\"role\":\"assistant\"}}]}\ndata: {\"choices\":[]}\ndata: {}\ndata:\n",
			want: "",
		},
		{
			name: "result is trimmed",
			raw:  "data: {\"choices\":[{\"delta\":{\"content\":\"  padded \"}}]}\n",
			want: "padded",
		},
		{
			name: "empty input",
			raw:  "",
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExtractText(tt.raw); got != tt.want {
				t.Errorf("ExtractText() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestExtractText_FragmentOrder(t *testing.T) {
	fragments := []string{"Betelgeuse", " is", " a", " red", " supergiant"}
	var raw strings.Builder
	for _, f := range fragments {
		raw.WriteString(`data: {"choices":[{"delta":{"content":"` + f + `"}}]}` + "\n\n")
	}

	want := strings.Join(fragments, "")
	if got := ExtractText(raw.String()); got != want {
		t.Errorf("Expected %q, got %q", want, got)
	}
}

func TestDecode(t *testing.T) {
	raw := "data: {\"choices\":[{\"delta\":{\"content\":\"hello\"}}]}\n" +
		"data: garbage\n" +
		"data: {\"choices\":[{\"delta\":{\"content\":\" world\"}}]}"

	var got []string
	err := Decode(strings.NewReader(raw), func(delta string) error {
		got = append(got, delta)
		return nil
	})
	if err != nil {
		t.Fatalf("Decode returned error: %v", err)
	}

	if len(got) != 2 || got[0] != "hello" || got[1] != " world" {
		t.Errorf("Unexpected deltas: %q", got)
	}
}

func TestDecode_CallbackErrorAborts(t *testing.T) {
	raw := "data: {\"choices\":[{\"delta\":{\"content\":\"a\"}}]}\n" +
		"data: {\"choices\":[{\"delta\":{\"content\":\"b\"}}]}\n"

	stop := errors.New("stop")
	calls := 0
	err := Decode(strings.NewReader(raw), func(delta string) error {
		calls++
		return stop
	})
	if !errors.Is(err, stop) {
		t.Errorf("Expected callback error, got %v", err)
	}
	if calls != 1 {
		t.Errorf("Expected 1 call, got %d", calls)
	}
}
