package tracecache

import (
	"context"
	"os"
	"path/filepath"
)

// DiskStore keeps entries as zstd-compressed msgpack files under Dir.
type DiskStore struct {
	Dir string
}

// DefaultDir is under the user's cache directory.
func DefaultDir() (string, error) {
	cd, err := os.UserCacheDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(cd, "private-jets"), nil
}

func (ds DiskStore) String() string { return "disk:" + ds.Dir }

func (ds DiskStore) path(key string) string { return filepath.Join(ds.Dir, filepath.FromSlash(key)) }

func (ds DiskStore) Get(ctx context.Context, key string) (*Entry, error) {
	f, err := os.Open(ds.path(key))
	if os.IsNotExist(err) {
		return nil, ErrMiss
	} else if err != nil {
		return nil, err
	}
	defer f.Close()

	return decodeEntry(f)
}

// Put writes to a temp file, then renames it into place.
func (ds DiskStore) Put(ctx context.Context, key string, e *Entry) error {
	path := ds.path(key)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	f, err := os.CreateTemp(filepath.Dir(path), ".tmp-*")
	if err != nil {
		return err
	}
	defer os.Remove(f.Name())

	if err := encodeEntry(f, e); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	return os.Rename(f.Name(), path)
}
