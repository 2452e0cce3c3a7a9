package wav

import (
	"encoding/binary"
	"testing"
)

// testHeader builds a 44-byte canonical PCM header
func testHeader(sampleRate, channels, bitDepth int) []byte {
	h := make([]byte, 44)
	copy(h[0:4], "RIFF")
	binary.LittleEndian.PutUint32(h[4:8], 36)
	copy(h[8:12], "WAVE")
	copy(h[12:16], "fmt ")
	binary.LittleEndian.PutUint32(h[16:20], 16)
	binary.LittleEndian.PutUint16(h[20:22], 1)
	binary.LittleEndian.PutUint16(h[22:24], uint16(channels))
	binary.LittleEndian.PutUint32(h[24:28], uint32(sampleRate))
	binary.LittleEndian.PutUint16(h[34:36], uint16(bitDepth))
	copy(h[36:40], "data")
	return h
}

func TestIsWAV(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		want bool
	}{
		{"canonical header", testHeader(16000, 1, 16), true},
		{"minimal 12 bytes", []byte("RIFF\x00\x00\x00\x00WAVE"), true},
		{"wrong riff", []byte("RIFX\x00\x00\x00\x00WAVE"), false},
		{"wrong wave", []byte("RIFF\x00\x00\x00\x00AVI "), false},
		{"too short", []byte("RIFF"), false},
		{"empty", nil, false},
		{"mp3", []byte("ID3\x03\x00\x00\x00\x00\x00\x00\x00\x00"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsWAV(tt.data); got != tt.want {
				t.Errorf("IsWAV() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestParseFormat(t *testing.T) {
	format, ok := ParseFormat(testHeader(16000, 1, 16))
	if !ok {
		t.Fatal("Expected canonical header to parse")
	}
	if format.SampleRate != 16000 || format.Channels != 1 || format.BitDepth != 16 {
		t.Errorf("Unexpected format: %+v", format)
	}

	if _, ok := ParseFormat([]byte("RIFF\x00\x00\x00\x00WAVE")); ok {
		t.Error("Expected header without fmt chunk to fail")
	}
}
