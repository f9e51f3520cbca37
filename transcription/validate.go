package transcription

import (
	"os"
	"path/filepath"
	"strings"

	apperrors "github.com/skillsenselab/minutes/errors"
)

// DefaultMaxAudioBytes is the default artifact size ceiling (25MB, the
// common ceiling of hosted transcription APIs).
const DefaultMaxAudioBytes int64 = 25 << 20

var allowedExtensions = map[string]bool{
	".mp3": true,
	".mp4": true,
	".m4a": true,
	".wav": true,
	".ogg": true,
}

// ValidateAudioFile checks an audio artifact before it is sent to a
// provider, so invalid input fails fast without consuming provider quota.
// maxBytes <= 0 applies DefaultMaxAudioBytes. The size check is skipped
// when the file cannot be stat'd (remote locations); the extension check
// always applies.
func ValidateAudioFile(audioPath string, maxBytes int64) error {
	ext := strings.ToLower(filepath.Ext(audioPath))
	if !allowedExtensions[ext] {
		return apperrors.UnsupportedFormat(ext)
	}

	if maxBytes <= 0 {
		maxBytes = DefaultMaxAudioBytes
	}
	if info, err := os.Stat(audioPath); err == nil {
		if info.Size() > maxBytes {
			return apperrors.FileTooLarge(info.Size(), maxBytes)
		}
	}
	return nil
}
