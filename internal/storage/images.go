// Package storage persists uploaded series artwork.
package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"path"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
	"github.com/spf13/afero"
)

// Upload errors callers can branch on.
var (
	ErrEmptyImage    = errors.New("image is empty")
	ErrImageTooLarge = errors.New("image is too large")
	ErrNotAnImage    = errors.New("file is not an image")
)

// ImageStore saves images and reports the path they are served under.
type ImageStore interface {
	Save(ctx context.Context, r io.Reader) (string, error)
	FileSystem() http.FileSystem
}

type imageStore struct {
	fs       afero.Fs
	folder   string
	maxBytes int64
}

// NewImageStore stores images in folder on fs, rejecting files over maxBytes.
func NewImageStore(fs afero.Fs, folder string, maxBytes int64) ImageStore {
	return &imageStore{
		fs:       fs,
		folder:   strings.Trim(folder, "/"),
		maxBytes: maxBytes,
	}
}

// NewDiskImageStore stores images under dir on the local disk.
func NewDiskImageStore(dir, folder string, maxBytes int64) (ImageStore, error) {
	fs := afero.NewBasePathFs(afero.NewOsFs(), dir)
	if err := fs.MkdirAll(strings.Trim(folder, "/"), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory: %w", err)
	}
	return NewImageStore(fs, folder, maxBytes), nil
}

// Save sniffs the content, keeps images only, and returns the relative path
// ("series/<uuid>.png") of the stored file.
func (s *imageStore) Save(ctx context.Context, r io.Reader) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	data, err := io.ReadAll(io.LimitReader(r, s.maxBytes+1))
	if err != nil {
		return "", fmt.Errorf("failed to read image: %w", err)
	}
	if len(data) == 0 {
		return "", ErrEmptyImage
	}
	if int64(len(data)) > s.maxBytes {
		return "", ErrImageTooLarge
	}

	mtype := mimetype.Detect(data)
	if !strings.HasPrefix(mtype.String(), "image/") {
		return "", ErrNotAnImage
	}

	name := path.Join(s.folder, uuid.NewString()+mtype.Extension())
	if err := s.fs.MkdirAll("/"+s.folder, 0o755); err != nil {
		return "", fmt.Errorf("failed to create image folder: %w", err)
	}
	if err := afero.WriteReader(s.fs, "/"+name, bytes.NewReader(data)); err != nil {
		return "", fmt.Errorf("failed to store image: %w", err)
	}
	return name, nil
}

// FileSystem exposes stored images read-only for static serving. Paths are
// rooted at "/", so "series/<uuid>.png" is opened as "/series/<uuid>.png".
func (s *imageStore) FileSystem() http.FileSystem {
	return afero.NewHttpFs(afero.NewReadOnlyFs(s.fs))
}
