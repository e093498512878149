package sound

import (
	"encoding/binary"
	"io"
)

// bytesPerSample is the width of one mono signed 16-bit sample.
const bytesPerSample = 2

// loopReader streams a clip as little-endian PCM forever.
type loopReader struct {
	samples []int16
	pos     int
}

var _ io.Reader = (*loopReader)(nil)

func newLoopReader(samples []int16) *loopReader {
	return &loopReader{samples: samples}
}

// Read implements io.Reader. It never returns io.EOF.
func (r *loopReader) Read(p []byte) (int, error) {
	if len(r.samples) == 0 {
		return 0, io.EOF
	}

	n := 0
	for ; n+bytesPerSample <= len(p); n += bytesPerSample {
		binary.LittleEndian.PutUint16(p[n:], uint16(r.samples[r.pos]))

		r.pos++
		if r.pos == len(r.samples) {
			r.pos = 0
		}
	}

	return n, nil
}
