package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// expandSources resolves the configured source entries to concrete files.
// Entries may be plain files, directories, or glob patterns; directories
// contribute their Go files. Duplicates collapse, first occurrence wins.
func expandSources(entries []string) ([]string, error) {
	seen := make(map[string]struct{})
	var out []string
	add := func(path string) {
		if _, ok := seen[path]; ok {
			return
		}
		seen[path] = struct{}{}
		out = append(out, path)
	}

	for _, entry := range entries {
		matches := []string{entry}
		if strings.ContainsAny(entry, "*?[") {
			expanded, err := filepath.Glob(entry)
			if err != nil {
				return nil, fmt.Errorf("glob %s: %w", entry, err)
			}
			if len(expanded) == 0 {
				return nil, fmt.Errorf("glob %s matched no files", entry)
			}
			matches = expanded
		}
		for _, match := range matches {
			info, err := os.Stat(match)
			if err != nil {
				return nil, fmt.Errorf("source %s: %w", match, err)
			}
			if !info.IsDir() {
				add(match)
				continue
			}
			files, err := goFilesInDir(match)
			if err != nil {
				return nil, err
			}
			for _, file := range files {
				add(file)
			}
		}
	}
	return out, nil
}

// goFilesInDir lists the directory's Go source files, skipping tests and
// previously generated output so a rerun never feeds its own results back in.
func goFilesInDir(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read dir %s: %w", dir, err)
	}
	var out []string
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, ".go") {
			continue
		}
		if strings.HasSuffix(name, "_test.go") || strings.HasSuffix(name, "_optional.go") {
			continue
		}
		out = append(out, filepath.Join(dir, name))
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("no Go source files in %s", dir)
	}
	return out, nil
}
