package storage

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/spf13/afero"
)

// Smallest valid PNG: signature plus IHDR chunk header.
var pngHeader = []byte{
	0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A,
	0x00, 0x00, 0x00, 0x0D, 0x49, 0x48, 0x44, 0x52,
	0x00, 0x00, 0x00, 0x01, 0x00, 0x00, 0x00, 0x01,
	0x08, 0x06, 0x00, 0x00, 0x00, 0x1F, 0x15, 0xC4, 0x89,
}

func TestSave_StoresImage(t *testing.T) {
	fs := afero.NewMemMapFs()
	store := NewImageStore(fs, "series", 1024)

	name, err := store.Save(context.Background(), bytes.NewReader(pngHeader))
	if err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	if !strings.HasPrefix(name, "series/") || !strings.HasSuffix(name, ".png") {
		t.Errorf("Save() name = %q, want series/<uuid>.png", name)
	}

	data, err := afero.ReadFile(fs, "/"+name)
	if err != nil {
		t.Fatalf("stored file not found: %v", err)
	}
	if !bytes.Equal(data, pngHeader) {
		t.Error("stored content differs from upload")
	}
}

func TestSave_Rejections(t *testing.T) {
	tests := []struct {
		name    string
		data    []byte
		max     int64
		wantErr error
	}{
		{"empty", nil, 1024, ErrEmptyImage},
		{"too large", pngHeader, 10, ErrImageTooLarge},
		{"not an image", []byte("just some text, definitely not a picture"), 1024, ErrNotAnImage},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := NewImageStore(afero.NewMemMapFs(), "series", tt.max)
			_, err := store.Save(context.Background(), bytes.NewReader(tt.data))
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Save() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestSave_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	store := NewImageStore(afero.NewMemMapFs(), "series", 1024)
	if _, err := store.Save(ctx, bytes.NewReader(pngHeader)); !errors.Is(err, context.Canceled) {
		t.Errorf("Save() error = %v, want context.Canceled", err)
	}
}

func TestFileSystem_ServesStoredImage(t *testing.T) {
	store := NewImageStore(afero.NewMemMapFs(), "series", 1024)
	name, err := store.Save(context.Background(), bytes.NewReader(pngHeader))
	if err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	f, err := store.FileSystem().Open("/" + name)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		t.Fatalf("Stat() error = %v", err)
	}
	if info.Size() != int64(len(pngHeader)) {
		t.Errorf("size = %d, want %d", info.Size(), len(pngHeader))
	}
}
