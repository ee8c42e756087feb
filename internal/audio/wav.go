// Package audio frames raw PCM sample bytes as self-describing WAV files.
//
// Browser clients stream raw little-endian PCM16 at the fixed format below;
// the transcription backends require a parseable container, so the stream
// buffer is framed with a standard 44-byte RIFF header before each pass.
package audio

import (
	"bytes"
	"encoding/binary"
)

// Stream audio format, shared with the recording clients. The header is
// computed from these, so a producer-side change is a breaking one.
const (
	SampleRate    = 16000
	NumChannels   = 1
	BitsPerSample = 16
)

// HeaderSize is the size of the RIFF/WAVE/fmt/data descriptor in bytes.
const HeaderSize = 44

type wavHeader struct {
	ChunkID       [4]byte // "RIFF"
	ChunkSize     uint32  // 36 + data size
	Format        [4]byte // "WAVE"
	Subchunk1ID   [4]byte // "fmt "
	Subchunk1Size uint32  // 16 for PCM
	AudioFormat   uint16  // 1 for PCM
	NumChannels   uint16
	SampleRate    uint32
	ByteRate      uint32 // SampleRate * NumChannels * BitsPerSample / 8
	BlockAlign    uint16  // NumChannels * BitsPerSample / 8
	BitsPerSample uint16
	Subchunk2ID   [4]byte // "data"
	Subchunk2Size uint32  // data size
}

// WithWAVHeader returns a complete WAV file: the 44-byte descriptor followed
// by pcm unchanged. Pure and deterministic for a given input.
func WithWAVHeader(pcm []byte) []byte {
	dataSize := uint32(len(pcm))

	header := wavHeader{
		ChunkID:       [4]byte{'R', 'I', 'F', 'F'},
		ChunkSize:     36 + dataSize,
		Format:        [4]byte{'W', 'A', 'V', 'E'},
		Subchunk1ID:   [4]byte{'f', 'm', 't', ' '},
		Subchunk1Size: 16,
		AudioFormat:   1, // PCM
		NumChannels:   NumChannels,
		SampleRate:    SampleRate,
		ByteRate:      SampleRate * NumChannels * BitsPerSample / 8,
		BlockAlign:    NumChannels * BitsPerSample / 8,
		BitsPerSample: BitsPerSample,
		Subchunk2ID:   [4]byte{'d', 'a', 't', 'a'},
		Subchunk2Size: dataSize,
	}

	buf := bytes.NewBuffer(make([]byte, 0, HeaderSize+len(pcm)))
	_ = binary.Write(buf, binary.LittleEndian, header) // writes to bytes.Buffer cannot fail
	buf.Write(pcm)
	return buf.Bytes()
}

// Duration reports the playback length in seconds of raw PCM bytes at the
// stream format. Used for log fields only.
func Duration(pcm []byte) float64 {
	bytesPerSecond := float64(SampleRate * NumChannels * BitsPerSample / 8)
	return float64(len(pcm)) / bytesPerSecond
}
