package keyring

import (
	"errors"
	"os"
	"testing"

	gokeyring "github.com/zalando/go-keyring"
)

func TestSetAndGetToken(t *testing.T) {
	gokeyring.MockInit()
	s := New(t.TempDir())

	if err := s.Set("tok-abc"); err != nil {
		t.Fatalf("Set() failed: %v", err)
	}

	token, err := s.Get()
	if err != nil {
		t.Fatalf("Get() failed: %v", err)
	}
	if token != "tok-abc" {
		t.Errorf("Get() = %q, want %q", token, "tok-abc")
	}
}

func TestSetEmptyToken(t *testing.T) {
	gokeyring.MockInit()
	s := New(t.TempDir())

	if err := s.Set(""); err == nil {
		t.Error("Set(\"\") should return an error")
	}
}

func TestGetNotFound(t *testing.T) {
	gokeyring.MockInit()
	s := New(t.TempDir())

	if _, err := s.Get(); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get() error = %v, want %v", err, ErrNotFound)
	}
}

func TestDeleteToken(t *testing.T) {
	gokeyring.MockInit()
	s := New(t.TempDir())

	if err := s.Set("tok-xyz"); err != nil {
		t.Fatalf("Set() failed: %v", err)
	}
	if err := s.Delete(); err != nil {
		t.Fatalf("Delete() failed: %v", err)
	}
	if _, err := s.Get(); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get() after Delete() error = %v, want %v", err, ErrNotFound)
	}
}

func TestDeleteIsIdempotent(t *testing.T) {
	gokeyring.MockInit()
	s := New(t.TempDir())

	// Logout with nothing stored must still succeed.
	if err := s.Delete(); err != nil {
		t.Errorf("Delete() on empty store failed: %v", err)
	}
}

func TestFileFallback(t *testing.T) {
	gokeyring.MockInitWithError(errors.New("no keyring daemon"))
	dir := t.TempDir()
	s := New(dir)

	if err := s.Set("tok-file"); err != nil {
		t.Fatalf("Set() with unavailable keyring failed: %v", err)
	}

	info, err := os.Stat(s.tokenFile())
	if err != nil {
		t.Fatalf("token file not written: %v", err)
	}
	if info.Mode().Perm() != 0600 {
		t.Errorf("token file mode = %o, want 0600", info.Mode().Perm())
	}

	token, err := s.Get()
	if err != nil {
		t.Fatalf("Get() from file fallback failed: %v", err)
	}
	if token != "tok-file" {
		t.Errorf("Get() = %q, want %q", token, "tok-file")
	}

	if err := s.Delete(); err != nil {
		t.Fatalf("Delete() failed: %v", err)
	}
	if _, err := os.Stat(s.tokenFile()); !os.IsNotExist(err) {
		t.Error("token file should be removed on delete")
	}
}
