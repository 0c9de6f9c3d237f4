package audition

import (
	"encoding/binary"
	"io"
	"math"
	"sync"
)

const bytesPerSample = 2 // mono 16-bit

// pcmReader streams float samples as signed 16-bit little-endian PCM and
// tracks how many bytes were handed to the device.
type pcmReader struct {
	samples []float32
	mu      sync.Mutex
	pos     int64
}

func newPCMReader(samples []float32) *pcmReader {
	return &pcmReader{samples: samples}
}

func (r *pcmReader) Read(p []byte) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	total := int64(len(r.samples)) * bytesPerSample
	if r.pos >= total {
		return 0, io.EOF
	}
	n := 0
	for n+bytesPerSample <= len(p) && r.pos < total {
		s := r.samples[r.pos/bytesPerSample]
		binary.LittleEndian.PutUint16(p[n:], uint16(toInt16(s)))
		n += bytesPerSample
		r.pos += bytesPerSample
	}
	return n, nil
}

// Pos returns the number of samples read so far.
func (r *pcmReader) Pos() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int(r.pos / bytesPerSample)
}

// Len returns the number of samples.
func (r *pcmReader) Len() int { return len(r.samples) }

func toInt16(s float32) int16 {
	v := math.Round(float64(s) * 32767)
	if v > math.MaxInt16 {
		return math.MaxInt16
	}
	if v < -math.MaxInt16 {
		return -math.MaxInt16
	}
	return int16(v)
}
