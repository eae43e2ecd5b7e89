// Package audiofile handles upload validation and temporary staging of audio
// clips. Staged files live only for the duration of one request; Cleanup must
// run unconditionally before the handler returns.
package audiofile

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"

	"ai-room-temperature-service/internal/config"
)

// ValidateFilename checks the uploaded filename against the fixed extension
// allow-list.
func ValidateFilename(filename string) error {
	if filename == "" {
		return fmt.Errorf("no file selected")
	}
	if !config.IsAllowedFile(filename) {
		return fmt.Errorf("invalid file format, supported formats: %s",
			strings.Join(config.AllowedExtensions, ", "))
	}
	return nil
}

// Stage writes the upload to a temporary file in dir, preserving the original
// extension so downstream format detection keeps working. Returns the staged
// path and the number of bytes written.
func Stage(dir, filename string, r io.Reader) (string, int64, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", 0, fmt.Errorf("create upload dir: %w", err)
	}

	ext := strings.ToLower(filepath.Ext(filepath.Base(filename)))
	f, err := os.CreateTemp(dir, "upload_*"+ext)
	if err != nil {
		return "", 0, fmt.Errorf("create temp file: %w", err)
	}

	n, err := io.Copy(f, r)
	if closeErr := f.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		os.Remove(f.Name())
		return "", 0, fmt.Errorf("write temp file: %w", err)
	}

	log.Debug().Str("path", f.Name()).Int64("bytes", n).Msg("Staged temporary audio file")
	return f.Name(), n, nil
}

// Cleanup removes a staged file. Safe to call on paths that no longer exist.
func Cleanup(path string) {
	if path == "" {
		return
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		log.Error().Err(err).Str("path", path).Msg("Error cleaning up temporary file")
		return
	}
	log.Debug().Str("path", path).Msg("Cleaned up temporary file")
}
