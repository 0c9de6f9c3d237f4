package main

import (
	"errors"
	"io"
	"log"
	"os"
	"path/filepath"
	"testing"

	"github.com/olivier-w/wavescope/internal/source"
)

func writeTone(t *testing.T, path string, n int) {
	t.Helper()
	samples := make([]float32, n)
	for i := range samples {
		samples[i] = float32(i%10) / 10
	}
	if err := source.ExportWAV(path, samples, 8000); err != nil {
		t.Fatalf("ExportWAV: %v", err)
	}
}

func TestExpandPathsScansDirectories(t *testing.T) {
	dir := t.TempDir()
	writeTone(t, filepath.Join(dir, "B.wav"), 10)
	writeTone(t, filepath.Join(dir, "a.wav"), 10)
	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}

	got, err := expandPaths([]string{dir})
	if err != nil {
		t.Fatalf("expandPaths: %v", err)
	}
	want := []string{filepath.Join(dir, "a.wav"), filepath.Join(dir, "B.wav")}
	if len(got) != len(want) || got[0] != want[0] || got[1] != want[1] {
		t.Fatalf("expandPaths = %v, want %v", got, want)
	}
}

func TestExpandPathsMissingFile(t *testing.T) {
	if _, err := expandPaths([]string{filepath.Join(t.TempDir(), "nope.wav")}); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestLoadTablesUniqueNames(t *testing.T) {
	dir := t.TempDir()
	first := filepath.Join(dir, "tone.wav")
	sub := filepath.Join(dir, "sub")
	if err := os.Mkdir(sub, 0755); err != nil {
		t.Fatal(err)
	}
	second := filepath.Join(sub, "tone.wav")
	writeTone(t, first, 100)
	writeTone(t, second, 50)

	reg := source.NewRegistry()
	if err := loadTables(reg, []string{first, second}, log.New(io.Discard, "", 0)); err != nil {
		t.Fatalf("loadTables: %v", err)
	}
	names := reg.Names()
	if len(names) != 2 || names[0] != "tone" || names[1] != "tone (2)" {
		t.Fatalf("names = %v", names)
	}
	if tb, _ := reg.Get("tone (2)"); tb.Len() != 50 || tb.Path() != second {
		t.Fatalf("second table = %d samples from %s", tb.Len(), tb.Path())
	}
}

func TestLoadTablesRejectsUnsupported(t *testing.T) {
	path := filepath.Join(t.TempDir(), "song.aac")
	if err := os.WriteFile(path, []byte("data"), 0644); err != nil {
		t.Fatal(err)
	}
	err := loadTables(source.NewRegistry(), []string{path}, log.New(io.Discard, "", 0))
	if !errors.Is(err, source.ErrUnsupportedFormat) {
		t.Fatalf("err = %v, want ErrUnsupportedFormat", err)
	}
}
