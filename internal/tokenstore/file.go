package tokenstore

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/afero"
)

// FileKV keeps one JSON file per key under Dir.
type FileKV struct {
	Fs  afero.Fs
	Dir string
}

func NewFileKV(fs afero.Fs, dir string) *FileKV {
	if fs == nil {
		fs = afero.NewOsFs()
	}
	return &FileKV{Fs: fs, Dir: dir}
}

func (f *FileKV) path(key string) string {
	return filepath.Join(f.Dir, key+".json")
}

func (f *FileKV) Get(_ context.Context, key string) ([]byte, error) {
	data, err := afero.ReadFile(f.Fs, f.path(key))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to read %s: %w", key, err)
	}
	return data, nil
}

func (f *FileKV) Set(_ context.Context, key string, value []byte) error {
	if err := f.Fs.MkdirAll(f.Dir, 0700); err != nil {
		return fmt.Errorf("failed to create store directory %s: %w", f.Dir, err)
	}
	if err := afero.WriteFile(f.Fs, f.path(key), value, 0600); err != nil {
		return fmt.Errorf("failed to write %s: %w", key, err)
	}
	return nil
}

func (f *FileKV) Remove(_ context.Context, key string) error {
	if err := f.Fs.Remove(f.path(key)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove %s: %w", key, err)
	}
	return nil
}
