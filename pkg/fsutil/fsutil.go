// Package fsutil reads source files for outlining and writes generated
// files atomically.
package fsutil

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
)

// MaxSourceSize is the largest file ReadSource accepts (8 MiB).
const MaxSourceSize int64 = 8 << 20

// Sentinel errors for error categorization via errors.Is.
var (
	// ErrNotRegular is returned for directories, devices and other
	// non-regular files.
	ErrNotRegular = errors.New("not a regular file")

	// ErrTooLarge is returned when a file exceeds MaxSourceSize.
	ErrTooLarge = errors.New("file too large")
)

// ReadSource reads a regular file of at most MaxSourceSize bytes.
func ReadSource(ctx context.Context, path string) ([]byte, error) {
	return ReadSourceLimit(ctx, path, MaxSourceSize)
}

// ReadSourceLimit is ReadSource with an explicit size limit.
// A limit of 0 or less disables the check.
func ReadSourceLimit(ctx context.Context, path string, limit int64) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open: %w", err)
	}
	defer file.Close()

	stat, err := file.Stat()
	if err != nil {
		return nil, fmt.Errorf("stat: %w", err)
	}
	if !stat.Mode().IsRegular() {
		return nil, fmt.Errorf("%s: %w", path, ErrNotRegular)
	}
	if limit > 0 && stat.Size() > limit {
		return nil, fmt.Errorf("%s is %d bytes (limit %d): %w", path, stat.Size(), limit, ErrTooLarge)
	}

	// The file may grow between Stat and Read; never read past the limit.
	reader := io.Reader(file)
	if limit > 0 {
		reader = io.LimitReader(file, limit+1)
	}

	content, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("read: %w", err)
	}
	if limit > 0 && int64(len(content)) > limit {
		return nil, fmt.Errorf("%s grew past %d bytes: %w", path, limit, ErrTooLarge)
	}

	return content, nil
}
