package artifact

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/mlsaran/smarttimetable/internal/models"
)

func TestSaveDecodesAndWrites(t *testing.T) {
	dir := t.TempDir()
	art := models.Artifact{
		Filename:    "timetable_7.pdf",
		ContentType: "application/pdf",
		Content:     "aGVsbG8=",
	}

	path, err := Save(art, dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if path != filepath.Join(dir, "timetable_7.pdf") {
		t.Errorf("unexpected path: %q", path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read saved file: %v", err)
	}
	if string(data) != "hello" {
		t.Errorf("expected decoded payload %q, got %q", "hello", string(data))
	}
	if len(data) != 5 {
		t.Errorf("expected 5 bytes, got %d", len(data))
	}
}

func TestSaveRejectsInvalidBase64(t *testing.T) {
	dir := t.TempDir()
	art := models.Artifact{Filename: "x.pdf", Content: "not-base64!"}

	_, err := Save(art, dir)
	var derr *DecodeError
	if !errors.As(err, &derr) {
		t.Fatalf("expected a DecodeError, got %v", err)
	}

	// Nothing may be written on the failure path, temp files included.
	entries, readErr := os.ReadDir(dir)
	if readErr != nil {
		t.Fatalf("failed to read dir: %v", readErr)
	}
	if len(entries) != 0 {
		t.Errorf("expected no files after a failed save, found %d", len(entries))
	}
}

func TestSaveStripsPathComponentsFromFilename(t *testing.T) {
	dir := t.TempDir()
	art := models.Artifact{
		Filename: "../../escape.csv",
		Content:  "YSxiLGM=",
	}

	path, err := Save(art, dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if path != filepath.Join(dir, "escape.csv") {
		t.Errorf("filename must be flattened into the download dir, got %q", path)
	}
}

func TestSaveCreatesDownloadDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "exports", "pdf")
	art := models.Artifact{Filename: "t.pdf", Content: "aGk="}

	if _, err := Save(art, dir); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "t.pdf")); err != nil {
		t.Errorf("expected file under the created dir: %v", err)
	}
}

func TestSaveOverwritesExistingFile(t *testing.T) {
	dir := t.TempDir()
	art := models.Artifact{Filename: "t.csv", Content: "b2xk"} // "old"
	if _, err := Save(art, dir); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	art.Content = "bmV3ZXI=" // "newer"
	path, err := Save(art, dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	data, _ := os.ReadFile(path)
	if string(data) != "newer" {
		t.Errorf("expected overwrite with %q, got %q", "newer", string(data))
	}
}
