// Package artifact turns a base64 transport payload into a saved file.
package artifact

import (
	"encoding/base64"
	"fmt"
	"os"
	"path/filepath"

	"github.com/mlsaran/smarttimetable/internal/logger"
	"github.com/mlsaran/smarttimetable/internal/models"
)

// DecodeError marks a payload that is not valid base64.
type DecodeError struct {
	cause error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("artifact payload is not valid base64: %v", e.cause)
}

func (e *DecodeError) Unwrap() error { return e.cause }

// Save decodes the artifact's content and writes it to dir under the
// artifact's filename. The write is staged through a temp file that is
// removed on every failure path. A single attempt, no retries.
// Returns the full path of the saved file.
func Save(art models.Artifact, dir string) (string, error) {
	data, err := base64.StdEncoding.DecodeString(art.Content)
	if err != nil {
		return "", &DecodeError{cause: err}
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create download directory: %w", err)
	}

	target := filepath.Join(dir, filepath.Base(art.Filename))
	tmp, err := os.CreateTemp(dir, ".artifact-*")
	if err != nil {
		return "", fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return "", fmt.Errorf("failed to write artifact: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return "", fmt.Errorf("failed to close artifact file: %w", err)
	}
	if err := os.Rename(tmpName, target); err != nil {
		os.Remove(tmpName)
		return "", fmt.Errorf("failed to save artifact: %w", err)
	}

	logger.Info("Artifact saved", "path", target, "bytes", len(data), "type", art.ContentType)
	return target, nil
}
