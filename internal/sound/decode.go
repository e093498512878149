package sound

import (
	"bytes"
	"encoding/base64"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
	"net/url"
	"strings"

	"github.com/hajimehoshi/go-mp3"
)

var (
	// ErrInvalidDataURI is returned when a stored payload is not a data URI.
	ErrInvalidDataURI = errors.New("invalid data URI")
	// ErrUnsupportedFormat is returned for payloads that are neither WAV nor MP3.
	ErrUnsupportedFormat = errors.New("unsupported audio format")
	// ErrInvalidWAV is returned for malformed WAV files.
	ErrInvalidWAV = errors.New("invalid WAV file")
	// ErrEmptyAudio is returned when a payload decodes to no samples.
	ErrEmptyAudio = errors.New("audio contains no samples")
)

const (
	wavFormatPCM        = 1
	wavFormatFloat      = 3
	wavFormatExtensible = 0xFFFE

	riffHeaderSize  = 12
	chunkHeaderSize = 8
	minFmtChunkSize = 16
	// The sub-format GUID of WAVE_FORMAT_EXTENSIBLE starts at this offset
	// inside the fmt chunk; its first two bytes are the real format code.
	extensibleSubFormatOffset = 24

	mp3Channels = 2
	mp3Bits     = 16
)

// pcmClip is decoded audio before it is brought to the engine format.
type pcmClip struct {
	// samples are interleaved frames in [-1,1].
	samples    []float64
	channels   int
	sampleRate int
}

// ParseDataURI splits a "data:<mime>[;base64],<payload>" URI.
func ParseDataURI(uri string) (string, []byte, error) {
	rest, ok := strings.CutPrefix(uri, "data:")
	if !ok {
		return "", nil, fmt.Errorf("%w: missing data: prefix", ErrInvalidDataURI)
	}

	header, payload, ok := strings.Cut(rest, ",")
	if !ok {
		return "", nil, fmt.Errorf("%w: missing payload separator", ErrInvalidDataURI)
	}

	params := strings.Split(header, ";")
	mediaType := strings.ToLower(strings.TrimSpace(params[0]))
	isBase64 := len(params) > 1 && strings.EqualFold(params[len(params)-1], "base64")

	if !isBase64 {
		decoded, err := url.PathUnescape(payload)
		if err != nil {
			return "", nil, fmt.Errorf("%w: %w", ErrInvalidDataURI, err)
		}

		return mediaType, []byte(decoded), nil
	}

	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrInvalidDataURI, err)
	}

	return mediaType, data, nil
}

// DecodeDataURI decodes a stored sound into mono samples at sampleRate.
func DecodeDataURI(uri string, sampleRate int) ([]int16, error) {
	mediaType, data, err := ParseDataURI(uri)
	if err != nil {
		return nil, err
	}

	return Decode(mediaType, data, sampleRate)
}

// Decode converts a WAV or MP3 payload into mono samples at sampleRate.
// The container is sniffed from the payload first and the media type is
// only used when sniffing is inconclusive.
func Decode(mediaType string, data []byte, sampleRate int) ([]int16, error) {
	var (
		clip *pcmClip
		err  error
	)

	switch {
	case isWAV(data):
		clip, err = decodeWAV(data)
	case isMP3(data):
		clip, err = decodeMP3(data)
	default:
		switch strings.ToLower(mediaType) {
		case "audio/wav", "audio/wave", "audio/x-wav", "audio/vnd.wave":
			clip, err = decodeWAV(data)
		case "audio/mpeg", "audio/mp3", "audio/mpeg3", "audio/x-mpeg-3":
			clip, err = decodeMP3(data)
		default:
			return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, mediaType)
		}
	}

	if err != nil {
		return nil, err
	}

	mono := resample(downmix(clip.samples, clip.channels), clip.sampleRate, sampleRate)
	if len(mono) == 0 {
		return nil, ErrEmptyAudio
	}

	out := make([]int16, len(mono))
	for i, s := range mono {
		out[i] = toInt16(s)
	}

	return out, nil
}

func isWAV(data []byte) bool {
	return len(data) >= riffHeaderSize &&
		string(data[0:4]) == "RIFF" &&
		string(data[8:12]) == "WAVE"
}

func isMP3(data []byte) bool {
	if len(data) >= 3 && string(data[0:3]) == "ID3" {
		return true
	}

	// MPEG audio frame sync: eleven set bits.
	return len(data) >= 2 && data[0] == 0xFF && data[1]&0xE0 == 0xE0
}

// decodeWAV walks the RIFF chunks and converts the data chunk to floats.
//
//nolint:cyclop,funlen // Chunk walking is a flat sequence of checks.
func decodeWAV(data []byte) (*pcmClip, error) {
	if !isWAV(data) {
		return nil, fmt.Errorf("%w: missing RIFF/WAVE header", ErrInvalidWAV)
	}

	var (
		format, channels, bits int
		rate                   int
		pcm                    []byte
		haveFmt                bool
	)

	for pos := riffHeaderSize; pos+chunkHeaderSize <= len(data); {
		id := string(data[pos : pos+4])
		size := int(binary.LittleEndian.Uint32(data[pos+4 : pos+8]))
		body := pos + chunkHeaderSize

		end := body + size
		if end > len(data) || end < body {
			// Truncated files are common; take what is there.
			end = len(data)
		}

		switch id {
		case "fmt ":
			chunk := data[body:end]
			if len(chunk) < minFmtChunkSize {
				return nil, fmt.Errorf("%w: short fmt chunk", ErrInvalidWAV)
			}

			format = int(binary.LittleEndian.Uint16(chunk[0:2]))
			channels = int(binary.LittleEndian.Uint16(chunk[2:4]))
			rate = int(binary.LittleEndian.Uint32(chunk[4:8]))
			bits = int(binary.LittleEndian.Uint16(chunk[14:16]))

			if format == wavFormatExtensible && len(chunk) >= extensibleSubFormatOffset+2 {
				format = int(binary.LittleEndian.Uint16(chunk[extensibleSubFormatOffset:]))
			}

			haveFmt = true
		case "data":
			pcm = data[body:end]
		}

		if pcm != nil && haveFmt {
			break
		}

		// Chunks are word aligned.
		pos = end + size%2
	}

	switch {
	case !haveFmt:
		return nil, fmt.Errorf("%w: missing fmt chunk", ErrInvalidWAV)
	case pcm == nil:
		return nil, fmt.Errorf("%w: missing data chunk", ErrInvalidWAV)
	case channels <= 0 || rate <= 0:
		return nil, fmt.Errorf("%w: %d channels at %d Hz", ErrInvalidWAV, channels, rate)
	}

	samples, err := wavSamples(pcm, format, bits)
	if err != nil {
		return nil, err
	}

	return &pcmClip{samples: samples, channels: channels, sampleRate: rate}, nil
}

func wavSamples(pcm []byte, format, bits int) ([]float64, error) {
	width := bits / 8 //nolint:mnd // Bits per byte.

	switch {
	case format == wavFormatFloat && bits == 32:
	case format == wavFormatPCM && (bits == 8 || bits == 16 || bits == 24 || bits == 32):
	default:
		return nil, fmt.Errorf("%w: format %d with %d bits", ErrUnsupportedFormat, format, bits)
	}

	out := make([]float64, 0, len(pcm)/width)

	for i := 0; i+width <= len(pcm); i += width {
		b := pcm[i : i+width]

		var v float64

		switch {
		case format == wavFormatFloat:
			v = float64(math.Float32frombits(binary.LittleEndian.Uint32(b)))
		case bits == 8:
			v = (float64(b[0]) - 128) / 128
		case bits == 16:
			v = float64(int16(binary.LittleEndian.Uint16(b))) / (math.MaxInt16 + 1)
		case bits == 24:
			n := int32(uint32(b[0])<<8|uint32(b[1])<<16|uint32(b[2])<<24) >> 8
			v = float64(n) / (1 << 23)
		default:
			v = float64(int32(binary.LittleEndian.Uint32(b))) / (math.MaxInt32 + 1)
		}

		out = append(out, v)
	}

	return out, nil
}

// decodeMP3 uses go-mp3, which always yields 16-bit stereo.
func decodeMP3(data []byte) (*pcmClip, error) {
	decoder, err := mp3.NewDecoder(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode mp3: %w", err)
	}

	raw, err := io.ReadAll(decoder)
	if err != nil && len(raw) == 0 {
		return nil, fmt.Errorf("decode mp3: %w", err)
	}

	samples, err := wavSamples(raw, wavFormatPCM, mp3Bits)
	if err != nil {
		return nil, err
	}

	return &pcmClip{samples: samples, channels: mp3Channels, sampleRate: decoder.SampleRate()}, nil
}

// downmix averages interleaved channels into one.
func downmix(samples []float64, channels int) []float64 {
	if channels <= 1 {
		return samples
	}

	frames := len(samples) / channels
	out := make([]float64, frames)

	for f := range frames {
		var sum float64
		for c := range channels {
			sum += samples[f*channels+c]
		}

		out[f] = sum / float64(channels)
	}

	return out
}

// resample converts between rates with linear interpolation.
func resample(samples []float64, from, to int) []float64 {
	if from == to || from <= 0 || to <= 0 || len(samples) == 0 {
		return samples
	}

	n := int(int64(len(samples)) * int64(to) / int64(from))
	out := make([]float64, n)
	step := float64(from) / float64(to)

	for i := range n {
		pos := float64(i) * step
		j := int(pos)
		frac := pos - float64(j)

		a := samples[j]
		b := a

		if j+1 < len(samples) {
			b = samples[j+1]
		}

		out[i] = a + (b-a)*frac
	}

	return out
}
