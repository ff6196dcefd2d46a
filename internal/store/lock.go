package store

import (
	"errors"
	"os"
)

const lockFileMode = 0o600

// writeLock serializes blob writes between deepsea processes sharing a data
// directory. It is advisory: readers do not take it.
type writeLock struct {
	f *os.File
}

// acquireWriteLock opens (creating if needed) the lock file at path and
// blocks until this process holds it exclusively.
func acquireWriteLock(path string) (*writeLock, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_RDWR, lockFileMode) //nolint:gosec // lock path inside the data dir
	if err != nil {
		return nil, err
	}
	if err := flock(f); err != nil {
		_ = f.Close()
		return nil, err
	}
	return &writeLock{f: f}, nil
}

// release drops the lock and closes the file.
func (l *writeLock) release() error {
	return errors.Join(funlock(l.f), l.f.Close())
}
