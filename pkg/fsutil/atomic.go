package fsutil

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// DefaultFileMode is the default permission mode for newly created files.
const DefaultFileMode os.FileMode = 0644

// ErrExists is returned by WriteAtomic when NoClobber is set and the
// target already exists.
var ErrExists = errors.New("file already exists")

// WriteOptions controls WriteAtomic.
type WriteOptions struct {
	// Mode is the permission mode of the written file. Zero means
	// DefaultFileMode.
	Mode os.FileMode

	// NoClobber refuses to replace an existing file.
	NoClobber bool
}

// WriteAtomic writes content to a temp file next to path and moves it
// into place. Readers observe either the old file or the complete new
// one. With NoClobber the final step is a hard link, which fails if
// path exists, so two concurrent writers cannot both succeed.
//
// On error, the temp file is cleaned up and any original file remains
// untouched.
func WriteAtomic(ctx context.Context, path string, content []byte, opts WriteOptions) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("write atomic: %w", err)
	}

	mode := opts.Mode
	if mode == 0 {
		mode = DefaultFileMode
	}

	if opts.NoClobber {
		if _, err := os.Lstat(path); err == nil {
			return fmt.Errorf("%s: %w", path, ErrExists)
		}
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".tmp.*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()

	// The temp name is always removed; after a successful rename it no
	// longer exists and Remove is a no-op.
	defer func() {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
	}()

	if _, err := tmp.Write(content); err != nil {
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		return fmt.Errorf("sync temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Chmod(tmpPath, mode); err != nil {
		return fmt.Errorf("chmod temp file: %w", err)
	}

	if opts.NoClobber {
		if err := os.Link(tmpPath, path); err != nil {
			if errors.Is(err, os.ErrExist) {
				return fmt.Errorf("%s: %w", path, ErrExists)
			}
			return fmt.Errorf("link temp file: %w", err)
		}
		return nil
	}

	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("rename temp file: %w", err)
	}
	return nil
}
