package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/olivier-w/wavescope/internal/source"
)

// expandPaths replaces directories by the supported audio files they
// contain, sorted alphabetically (case-insensitive).
func expandPaths(args []string) ([]string, error) {
	var out []string
	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			out = append(out, arg)
			continue
		}
		files, err := scanMediaFiles(arg)
		if err != nil {
			return nil, err
		}
		out = append(out, files...)
	}
	return out, nil
}

func scanMediaFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var files []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(e.Name()))
		if source.IsSupportedExt(ext) {
			files = append(files, filepath.Join(dir, e.Name()))
		}
	}

	sort.Slice(files, func(i, j int) bool {
		return strings.ToLower(filepath.Base(files[i])) < strings.ToLower(filepath.Base(files[j]))
	})
	return files, nil
}

// loadTables decodes every path into reg, renaming tables whose name is
// already taken.
func loadTables(reg *source.Registry, paths []string, logger *log.Logger) error {
	for _, path := range paths {
		t, err := source.Load(path)
		if err != nil {
			return fmt.Errorf("load %s: %w", path, err)
		}
		t.Rename(reg.UniqueName(t.Name()))
		reg.Put(t)
		logger.Printf("loaded %q: %d samples at %d Hz from %s", t.Name(), t.Len(), t.SampleRate(), path)
	}
	return nil
}
