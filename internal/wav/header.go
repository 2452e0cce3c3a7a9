// Package wav checks RIFF/WAVE containers.
package wav

import (
	"bytes"
	"encoding/binary"
)

var (
	riffTag = []byte("RIFF")
	waveTag = []byte("WAVE")
	fmtTag  = []byte("fmt ")
)

// IsWAV reports whether data starts with a RIFF/WAVE header
func IsWAV(data []byte) bool {
	if len(data) < 12 {
		return false
	}
	return bytes.Equal(data[0:4], riffTag) && bytes.Equal(data[8:12], waveTag)
}

// Format is the PCM format announced by a canonical WAV header
type Format struct {
	Channels   int
	SampleRate int
	BitDepth   int
}

// ParseFormat reads the fmt chunk that directly follows the RIFF header.
// ok is false when the header is not canonical.
func ParseFormat(data []byte) (Format, bool) {
	if !IsWAV(data) || len(data) < 36 || !bytes.Equal(data[12:16], fmtTag) {
		return Format{}, false
	}
	return Format{
		Channels:   int(binary.LittleEndian.Uint16(data[22:24])),
		SampleRate: int(binary.LittleEndian.Uint32(data[24:28])),
		BitDepth:   int(binary.LittleEndian.Uint16(data[34:36])),
	}, true
}
