package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/vektah/gqlparser/v2/ast"
)

// readSources expands globs and reads each schema file once, skipping the
// file generated output is written to.
func readSources(patterns []string, exclude string) ([]*ast.Source, error) {
	seen := make(map[string]struct{})
	var files []string
	for _, pattern := range patterns {
		matches, err := filepath.Glob(pattern)
		if err != nil {
			return nil, fmt.Errorf("invalid schema pattern %s: %w", pattern, err)
		}
		sort.Strings(matches)
		for _, m := range matches {
			if _, dup := seen[m]; dup || sameFile(m, exclude) {
				continue
			}
			seen[m] = struct{}{}
			files = append(files, m)
		}
	}

	if len(files) == 0 {
		return nil, fmt.Errorf("no schema files match %v", patterns)
	}

	sources := make([]*ast.Source, 0, len(files))
	for _, file := range files {
		content, err := os.ReadFile(file)
		if err != nil {
			return nil, fmt.Errorf("failed to read schema %s: %w", file, err)
		}
		sources = append(sources, &ast.Source{Name: file, Input: string(content)})
	}
	return sources, nil
}

func sameFile(a, b string) bool {
	if b == "" {
		return false
	}
	absA, errA := filepath.Abs(a)
	absB, errB := filepath.Abs(b)
	return errA == nil && errB == nil && absA == absB
}
