// package testing contains shared testing utilities
package testing

import (
	"context"
	"errors"
	"io"
	"os"
	"sync/atomic"
	"testing"

	"github.com/desertthunder/tiledict/internal/models"
)

// StubSource is a test double for dict.Source that returns fixed words or a fixed error.
type StubSource struct {
	words []models.Word
	err   error
	calls atomic.Int32
}

func NewStubSource(words []models.Word, err error) *StubSource {
	return &StubSource{words: words, err: err}
}

func (s *StubSource) Words(ctx context.Context) ([]models.Word, error) {
	s.calls.Add(1)
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s.err != nil {
		return nil, s.err
	}
	out := make([]models.Word, len(s.words))
	copy(out, s.words)
	return out, nil
}

// Calls returns how many times Words was invoked.
func (s *StubSource) Calls() int { return int(s.calls.Load()) }

// SampleWords returns a small unsorted word list.
func SampleWords() []models.Word {
	return []models.Word{
		{ID: 7, Bare: "книга", Accented: "кни'га", UsageEN: "book", Type: "noun", Level: "A1"},
		{ID: 3, Bare: "дом", Accented: "до'м", UsageEN: "house", Type: "noun", Level: "A1"},
		{ID: 44, Bare: "домой", Accented: "домо'й", UsageEN: "home", Type: "adverb", Level: "A1"},
	}
}

// FWriter always returns an error on Write
type FWriter struct{}

func (f *FWriter) Write(p []byte) (n int, err error) {
	return 0, errors.New("write failed")
}

// LimitedWriter fails after a certain number of writes
type LimitedWriter struct {
	maxWrites int
	written   int
	target    io.Writer
}

func (l *LimitedWriter) Write(p []byte) (n int, err error) {
	if l.written >= l.maxWrites {
		return 0, errors.New("write limit exceeded")
	}
	l.written++
	return l.target.Write(p)
}

func NewLimitedWriter(maxWrites, written int, target io.Writer) LimitedWriter {
	return LimitedWriter{maxWrites: maxWrites, written: written, target: target}
}

func MustWriteFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write file %s: %v", path, err)
	}
}

func AssertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Errorf("File does not exist: %s", path)
	}
}

func MustReadFile(t *testing.T, path string) string {
	t.Helper()
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read file %s: %v", path, err)
	}
	return string(content)
}
