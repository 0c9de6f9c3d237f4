package source

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-audio/wav"
	"github.com/hajimehoshi/go-mp3"
	"github.com/jfreymuth/oggvorbis"
	"github.com/mewkiz/flac"
)

// Load decodes an audio file into a mono table named after its title tag
// or file name. Multichannel files are mixed down.
func Load(path string) (*Table, error) {
	ext := strings.ToLower(filepath.Ext(path))
	if !IsSupportedExt(ext) {
		return nil, fmt.Errorf("%w: %s (supported: %s)", ErrUnsupportedFormat, ext, SupportedExtsList())
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var (
		data []float32
		rate int
	)
	switch ext {
	case ".wav":
		data, rate, err = decodeWAV(f)
	case ".mp3":
		data, rate, err = decodeMP3(f)
	case ".flac":
		data, rate, err = decodeFLAC(f)
	case ".ogg":
		data, rate, err = decodeOGG(f)
	}
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", filepath.Base(path), err)
	}

	t := NewTable(DisplayName(path), data, rate)
	t.path = path
	return t, nil
}

func decodeWAV(f *os.File) ([]float32, int, error) {
	dec := wav.NewDecoder(f)
	if !dec.IsValidFile() {
		return nil, 0, fmt.Errorf("invalid WAV file")
	}
	buf, err := dec.FullPCMBuffer()
	if err != nil {
		return nil, 0, fmt.Errorf("reading WAV PCM data: %w", err)
	}

	channels := max(buf.Format.NumChannels, 1)
	bitDepth := int(dec.BitDepth)
	if bitDepth == 0 {
		bitDepth = buf.SourceBitDepth
	}
	if bitDepth < 8 || bitDepth > 32 {
		return nil, 0, fmt.Errorf("unsupported WAV bit depth %d", bitDepth)
	}

	scale := float32(int64(1) << (bitDepth - 1))
	interleaved := make([]float32, len(buf.Data))
	for i, v := range buf.Data {
		if bitDepth == 8 {
			// 8-bit WAV is unsigned
			v -= 128
		}
		interleaved[i] = float32(v) / scale
	}
	return mixdown(interleaved, channels), buf.Format.SampleRate, nil
}

func decodeMP3(f *os.File) ([]float32, int, error) {
	dec, err := mp3.NewDecoder(f)
	if err != nil {
		return nil, 0, err
	}
	raw, err := io.ReadAll(dec)
	if err != nil {
		return nil, 0, err
	}

	// go-mp3 always produces 16-bit little endian stereo
	frames := len(raw) / 4
	out := make([]float32, frames)
	for i := range frames {
		l := int16(binary.LittleEndian.Uint16(raw[i*4:]))
		r := int16(binary.LittleEndian.Uint16(raw[i*4+2:]))
		out[i] = (float32(l) + float32(r)) / 2 / 32768
	}
	return out, dec.SampleRate(), nil
}

func decodeFLAC(f *os.File) ([]float32, int, error) {
	stream, err := flac.New(f)
	if err != nil {
		return nil, 0, err
	}
	defer stream.Close()

	info := stream.Info
	channels := int(info.NChannels)
	scale := float32(int64(1) << (info.BitsPerSample - 1))
	out := make([]float32, 0, info.NSamples)

	for {
		frame, err := stream.ParseNext()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, 0, err
		}
		n := int(frame.Subframes[0].NSamples)
		for i := range n {
			var sum float32
			for ch := range channels {
				sum += float32(frame.Subframes[ch].Samples[i])
			}
			out = append(out, sum/float32(channels)/scale)
		}
	}
	return out, int(info.SampleRate), nil
}

func decodeOGG(f *os.File) ([]float32, int, error) {
	interleaved, format, err := oggvorbis.ReadAll(f)
	if err != nil {
		return nil, 0, err
	}
	return mixdown(interleaved, format.Channels), format.SampleRate, nil
}

func mixdown(interleaved []float32, channels int) []float32 {
	if channels <= 1 {
		return interleaved
	}
	frames := len(interleaved) / channels
	out := make([]float32, frames)
	for i := range frames {
		var sum float32
		for _, v := range interleaved[i*channels : (i+1)*channels] {
			sum += v
		}
		out[i] = sum / float32(channels)
	}
	return out
}
