// Package webfs provides sandboxed read-only access to a site's content
// directory. All lookups go through an os.Root so a request path can never
// escape the configured directory, and content types are detected from
// file extensions.
package webfs

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"mime"
	"os"
	"path/filepath"

	"github.com/jharlan/shelf"
)

// Store provides read-only file and directory operations rooted at a
// content directory.
type Store struct {
	root *os.Root
}

// NewStore creates a Store over the given root directory. The root provides
// sandboxed file operations preventing path traversal.
func NewStore(root *os.Root) *Store {
	return &Store{root: root}
}

// Open opens a regular file for reading along with its FileInfo. It returns
// shelf.ErrNotFound if the path does not exist and ErrDirectory if the path
// resolves to a directory.
func (s *Store) Open(ctx context.Context, path string) (io.ReadSeekCloser, fs.FileInfo, error) {
	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}

	f, err := s.root.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil, shelf.ErrNotFound
		}
		return nil, nil, fmt.Errorf("failed to open file: %w", err)
	}

	info, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return nil, nil, fmt.Errorf("failed to stat file: %w", err)
	}

	if info.IsDir() {
		_ = f.Close()
		return nil, nil, ErrDirectory
	}

	return f, info, nil
}

// Stat returns the FileInfo for a path. It returns shelf.ErrNotFound if the
// path does not exist.
func (s *Store) Stat(ctx context.Context, path string) (fs.FileInfo, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	info, err := s.root.Stat(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, shelf.ErrNotFound
		}
		return nil, fmt.Errorf("failed to stat file: %w", err)
	}

	return info, nil
}

// ReadDir returns the immediate entries of a directory sorted by name. It
// returns shelf.ErrNotFound if the path does not exist and ErrNotDirectory
// if the path resolves to a regular file.
func (s *Store) ReadDir(ctx context.Context, path string) ([]fs.DirEntry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	info, err := s.Stat(ctx, path)
	if err != nil {
		return nil, err
	}

	if !info.IsDir() {
		return nil, ErrNotDirectory
	}

	entries, err := fs.ReadDir(s.root.FS(), path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, shelf.ErrNotFound
		}
		return nil, fmt.Errorf("failed to read directory: %w", err)
	}

	return entries, nil
}

// Close releases the underlying root directory handle.
func (s *Store) Close() error {
	return s.root.Close()
}

// ContentType returns the MIME type for a path based on its file extension,
// falling back to application/octet-stream.
func ContentType(path string) string {
	ext := filepath.Ext(path)
	contentType := mime.TypeByExtension(ext)

	if contentType == "" {
		return "application/octet-stream"
	}

	return contentType
}
