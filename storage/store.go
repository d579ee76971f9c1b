package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// FileInfo describes a stored report file.
type FileInfo struct {
	URL      string `json:"url"`
	FileName string `json:"file_name"`
	FileSize int64  `json:"file_size"`
	FileType string `json:"file_type"`
}

// Report is one generated report file of a processing run.
type Report struct {
	RunID       string
	Name        string
	ContentType string
	Body        []byte
}

// Key is the object key of r: runs/<run id>/<file name>.
func (r Report) Key() string {
	return Key("runs", r.RunID, r.Name)
}

// Store archives generated report files.
type Store interface {
	Save(ctx context.Context, r Report) (*FileInfo, error)
}

// LocalStore saves files under a base directory on disk.
type LocalStore struct {
	baseDir string
}

// NewLocalStore creates the base directory if needed.
func NewLocalStore(baseDir string) (*LocalStore, error) {
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return nil, fmt.Errorf("create storage dir %s: %w", baseDir, err)
	}
	return &LocalStore{baseDir: baseDir}, nil
}

// Save writes r to baseDir/runs/<run id>/<name>, creating intermediate directories.
func (s *LocalStore) Save(_ context.Context, r Report) (*FileInfo, error) {
	clean := filepath.Clean("/" + r.Key())
	full := filepath.Join(s.baseDir, clean)

	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return nil, fmt.Errorf("create dir for %s: %w", r.Key(), err)
	}

	if err := os.WriteFile(full, r.Body, 0o644); err != nil {
		return nil, fmt.Errorf("write %s: %w", full, err)
	}

	return &FileInfo{
		URL:      "file://" + filepath.ToSlash(full),
		FileName: filepath.Base(full),
		FileSize: int64(len(r.Body)),
		FileType: r.ContentType,
	}, nil
}

// Key joins path segments into an object key.
func Key(parts ...string) string {
	return strings.Join(parts, "/")
}
