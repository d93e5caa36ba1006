// Package wordlist provides word list sources for the password rule engine.
package wordlist

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
)

// File streams words from a newline-delimited file, one word per line. The
// file is reopened on every Scan, so the sequence is restartable and the list
// never has to fit in memory.
type File struct {
	path string
}

// NewFile constructs a file-backed word list source.
func NewFile(path string) *File {
	return &File{path: path}
}

// Scan reads the list line by line, invoking fn for each non-empty word until
// fn returns false. Words are lower-cased and trimmed.
func (f *File) Scan(ctx context.Context, fn func(word string) bool) error {
	file, err := os.Open(f.path)
	if err != nil {
		return fmt.Errorf("open word list: %w", err)
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return err
		}
		word := strings.ToLower(strings.TrimSpace(scanner.Text()))
		if word == "" {
			continue
		}
		if !fn(word) {
			return nil
		}
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read word list: %w", err)
	}

	return nil
}

// Static serves a fixed in-memory list. Intended for development setups and
// tests where shipping a full dictionary is overkill.
type Static struct {
	words []string
}

// NewStatic constructs a word list source over the given words.
func NewStatic(words ...string) *Static {
	lowered := make([]string, len(words))
	for i, w := range words {
		lowered[i] = strings.ToLower(w)
	}
	return &Static{words: lowered}
}

// Scan invokes fn for each word until fn returns false.
func (s *Static) Scan(_ context.Context, fn func(word string) bool) error {
	for _, w := range s.words {
		if !fn(w) {
			return nil
		}
	}
	return nil
}
