package sound

import (
	"encoding/base64"
	"errors"
	"fmt"
	"mime"
	"path/filepath"
	"strings"

	domain "github.com/oshokin/alarm-clock/internal/domain/alarm"
)

var (
	// ErrNotAudio is returned when an upload does not declare an audio media type.
	ErrNotAudio = errors.New("please select an audio file")
	// ErrEmptyFile is returned for zero-length uploads.
	ErrEmptyFile = errors.New("file is empty")
	// ErrFileTooLarge is returned for uploads above the configured limit.
	ErrFileTooLarge = errors.New("file is too large")
)

const (
	kilobyte = 1024
	megabyte = 1024 * kilobyte
)

// audioExtensions covers types missing from minimal system mime tables.
//
//nolint:gochecknoglobals // Read-only lookup table.
var audioExtensions = map[string]string{
	".mp3":  "audio/mpeg",
	".wav":  "audio/wav",
	".wave": "audio/wav",
	".ogg":  "audio/ogg",
	".oga":  "audio/ogg",
	".opus": "audio/opus",
	".flac": "audio/flac",
	".m4a":  "audio/mp4",
	".aac":  "audio/aac",
	".weba": "audio/webm",
}

// CheckMediaType accepts any media type beginning with "audio/".
func CheckMediaType(mediaType string) error {
	if !strings.HasPrefix(strings.ToLower(strings.TrimSpace(mediaType)), "audio/") {
		return fmt.Errorf("%q: %w", mediaType, ErrNotAudio)
	}

	return nil
}

// CheckSize rejects n bytes when it exceeds limit. A non-positive limit
// disables the check.
func CheckSize(n, limit int64) error {
	if limit > 0 && n > limit {
		return fmt.Errorf("%s, limit %s: %w", FormatSize(n), FormatSize(limit), ErrFileTooLarge)
	}

	return nil
}

// DetectMediaType guesses the media type from the file extension.
// It returns "" when the extension is unknown.
func DetectMediaType(filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	if ext == "" {
		return ""
	}

	if mediaType, ok := audioExtensions[ext]; ok {
		return mediaType
	}

	mediaType, _, err := mime.ParseMediaType(mime.TypeByExtension(ext))
	if err != nil {
		return ""
	}

	return mediaType
}

// EncodeDataURI embeds data in a base64 data URI.
func EncodeDataURI(mediaType string, data []byte) string {
	return "data:" + mediaType + ";base64," + base64.StdEncoding.EncodeToString(data)
}

// FormatSize renders a byte count as "N B", "N.N KB" or "N.N MB".
func FormatSize(n int64) string {
	switch {
	case n < kilobyte:
		return fmt.Sprintf("%d B", n)
	case n < megabyte:
		return fmt.Sprintf("%.1f KB", float64(n)/kilobyte)
	default:
		return fmt.Sprintf("%.1f MB", float64(n)/megabyte)
	}
}

// SoundName is the file name without directories or extension.
func SoundName(filename string) string {
	base := filepath.Base(filename)

	return strings.TrimSuffix(base, filepath.Ext(base))
}

// NewSound builds a stored sound from an uploaded file. An empty mediaType
// is detected from the file name.
func NewSound(filename, mediaType string, data []byte) (domain.Sound, error) {
	if mediaType == "" {
		mediaType = DetectMediaType(filename)
	}

	if err := CheckMediaType(mediaType); err != nil {
		return domain.Sound{}, err
	}

	if len(data) == 0 {
		return domain.Sound{}, ErrEmptyFile
	}

	name := SoundName(filename)
	if name == "" || name == "." {
		name = "Sound"
	}

	return domain.Sound{
		Name: name,
		Data: EncodeDataURI(strings.ToLower(mediaType), data),
		Size: FormatSize(int64(len(data))),
	}, nil
}
