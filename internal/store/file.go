package store

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
)

const (
	blobFileMode = 0o600
	blobDirMode  = 0o750
	blobExt      = ".json"
	lockName     = ".lock"
)

var validKey = regexp.MustCompile(`^[A-Za-z0-9._-]+$`)

// FileBlobs stores each key as <dir>/<key>.json. Writes hold an advisory
// lock and replace the file with a rename, so readers never see a partial
// snapshot.
type FileBlobs struct {
	dir string
}

// NewFileBlobs returns a FileBlobs rooted at dir, creating it if needed.
func NewFileBlobs(dir string) (*FileBlobs, error) {
	if err := os.MkdirAll(dir, blobDirMode); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}
	return &FileBlobs{dir: dir}, nil
}

// Dir returns the directory holding the blob files.
func (f *FileBlobs) Dir() string {
	return f.dir
}

// Path returns the file that holds key.
func (f *FileBlobs) Path(key string) string {
	return filepath.Join(f.dir, key+blobExt)
}

// Get implements Blobs.
func (f *FileBlobs) Get(key string) ([]byte, error) {
	if !validKey.MatchString(key) {
		return nil, fmt.Errorf("invalid blob key %q", key)
	}
	data, err := os.ReadFile(f.Path(key))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("reading blob %s: %w", key, err)
	}
	return data, nil
}

// Put implements Blobs.
func (f *FileBlobs) Put(key string, value []byte) error {
	if !validKey.MatchString(key) {
		return fmt.Errorf("invalid blob key %q", key)
	}

	lock, err := acquireWriteLock(filepath.Join(f.dir, lockName))
	if err != nil {
		return fmt.Errorf("acquiring lock: %w", err)
	}
	defer lock.release() //nolint:errcheck // best-effort unlock

	tmp, err := os.CreateTemp(f.dir, "."+key+"-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(value); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return fmt.Errorf("writing blob %s: %w", key, err)
	}
	if err := tmp.Chmod(blobFileMode); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return fmt.Errorf("setting blob mode: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("closing blob %s: %w", key, err)
	}

	if err := os.Rename(tmpName, f.Path(key)); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("replacing blob %s: %w", key, err)
	}
	return nil
}
