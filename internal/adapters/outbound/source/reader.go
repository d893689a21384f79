package source

import (
	"context"
	"fmt"
	"io"
	"os"
)

// DefaultMaxBytes bounds how much of a source file is read.
const DefaultMaxBytes = 4 << 20

// FileReader implements domain.SourceReader on the local filesystem. Every
// call opens the file again; nothing is cached.
type FileReader struct {
	MaxBytes int64
}

func New() *FileReader {
	return &FileReader{MaxBytes: DefaultMaxBytes}
}

func (r *FileReader) ReadSource(ctx context.Context, path string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("opening source: %w", err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return "", fmt.Errorf("stat source: %w", err)
	}
	if info.IsDir() {
		return "", fmt.Errorf("source %s is a directory", path)
	}

	limit := r.MaxBytes
	if limit <= 0 {
		limit = DefaultMaxBytes
	}
	data, err := io.ReadAll(io.LimitReader(f, limit+1))
	if err != nil {
		return "", fmt.Errorf("reading source: %w", err)
	}
	if int64(len(data)) > limit {
		return "", fmt.Errorf("source %s exceeds %d bytes", path, limit)
	}
	return string(data), nil
}
