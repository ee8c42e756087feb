package audio

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWithWAVHeaderSizes(t *testing.T) {
	for _, n := range []int{0, 1, 320, 32000, 123457} {
		pcm := make([]byte, n)
		out := WithWAVHeader(pcm)

		require.Len(t, out, HeaderSize+n)
		require.Equal(t, uint32(36+n), binary.LittleEndian.Uint32(out[4:8]))
		require.Equal(t, uint32(n), binary.LittleEndian.Uint32(out[40:44]))
	}
}

func TestWithWAVHeaderLayout(t *testing.T) {
	pcm := []byte{0x01, 0x02, 0x03, 0x04}
	out := WithWAVHeader(pcm)

	require.Equal(t, "RIFF", string(out[0:4]))
	require.Equal(t, "WAVE", string(out[8:12]))
	require.Equal(t, "fmt ", string(out[12:16]))
	require.Equal(t, "data", string(out[36:40]))

	require.Equal(t, uint16(1), binary.LittleEndian.Uint16(out[20:22])) // PCM
	require.Equal(t, uint16(NumChannels), binary.LittleEndian.Uint16(out[22:24]))
	require.Equal(t, uint32(SampleRate), binary.LittleEndian.Uint32(out[24:28]))
	require.Equal(t, uint32(32000), binary.LittleEndian.Uint32(out[28:32])) // byte rate
	require.Equal(t, uint16(2), binary.LittleEndian.Uint16(out[32:34]))    // block align
	require.Equal(t, uint16(BitsPerSample), binary.LittleEndian.Uint16(out[34:36]))

	// payload is carried through unchanged
	require.Equal(t, pcm, out[HeaderSize:])
}

func TestDuration(t *testing.T) {
	// one second of 16kHz mono PCM16 is 32000 bytes
	require.InDelta(t, 1.0, Duration(make([]byte, 32000)), 1e-9)
	require.InDelta(t, 0.5, Duration(make([]byte, 16000)), 1e-9)
}
