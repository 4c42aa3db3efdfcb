package storage

import (
	"io"
	"strings"
	"testing"
)

func TestFSStoreRoundTrip(t *testing.T) {
	s, err := NewFSStore(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}

	path, err := s.Put("test_654321_results.csv", strings.NewReader("a,b\n"))
	if err != nil {
		t.Fatal(err)
	}
	if path == "" {
		t.Fatal("empty path")
	}

	rc, err := s.Get("test_654321_results.csv")
	if err != nil {
		t.Fatal(err)
	}
	defer rc.Close()
	b, err := io.ReadAll(rc)
	if err != nil {
		t.Fatal(err)
	}
	if string(b) != "a,b\n" {
		t.Fatalf("got %q", b)
	}
}

func TestFSStoreRejectsEmptyName(t *testing.T) {
	s, err := NewFSStore(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	if _, err := s.Put("", strings.NewReader("x")); err == nil {
		t.Fatal("expected error for empty name")
	}
}

func TestFSStoreStripsDirectories(t *testing.T) {
	dir := t.TempDir()
	s, err := NewFSStore(dir)
	if err != nil {
		t.Fatal(err)
	}
	path, err := s.Put("../../escape.csv", strings.NewReader("x"))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(path, dir) {
		t.Fatalf("artifact escaped base dir: %s", path)
	}
}
