package settings

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
)

// Lock is an exclusive file lock held for the duration of a run, keeping two
// processes from training against or rewriting the same state files.
type Lock struct {
	flock *flock.Flock
	path  string
}

// AcquireLock takes the lock without blocking. A held lock means another run
// is active against the same data directory.
func AcquireLock(path string) (*Lock, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create lock directory: %w", err)
	}
	lock := flock.New(path)
	acquired, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire lock %s: %w", path, err)
	}
	if !acquired {
		return nil, fmt.Errorf("another gazetteer run holds %s", path)
	}
	return &Lock{flock: lock, path: path}, nil
}

// Release drops the lock.
func (l *Lock) Release() error {
	if l == nil || l.flock == nil {
		return nil
	}
	return l.flock.Unlock()
}
