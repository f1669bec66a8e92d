package index

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"
	"github.com/kamusis/postsearch/internal/search"
)

const lockTimeout = 10 * time.Second

// Write encodes docs and atomically replaces the index at path.
// It reports whether the file content changed. Unless force is set, an
// identical existing file is left untouched.
func Write(path string, docs []search.Document, force bool) (bool, error) {
	data, err := Encode(docs)
	if err != nil {
		return false, fmt.Errorf("cannot encode index: %w", err)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return false, fmt.Errorf("cannot create index dir %s: %w", dir, err)
	}

	lp, err := lockPath(path)
	if err != nil {
		return false, err
	}
	unlock, err := acquireLock(lp, lockTimeout)
	if err != nil {
		return false, err
	}
	defer unlock()

	if !force {
		if existing, err := os.ReadFile(path); err == nil && bytes.Equal(existing, data) {
			return false, nil
		}
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return false, fmt.Errorf("cannot create temp index: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return false, fmt.Errorf("cannot write temp index: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return false, err
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		return false, err
	}
	if err := os.Rename(tmpName, path); err != nil {
		return false, fmt.Errorf("cannot install index %s: %w", path, err)
	}
	return true, nil
}

// lockPath returns the lock file guarding writes to path. It lives in the
// temp dir, keyed by the absolute index path, so it never lands in the
// published site.
func lockPath(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("cannot resolve index path %s: %w", path, err)
	}
	return filepath.Join(os.TempDir(), "postsearch-"+TextHash([]byte(abs))[:16]+".lock"), nil
}

// acquireLock obtains an exclusive lock on lockPath, retrying until timeout.
func acquireLock(lockPath string, timeout time.Duration) (func(), error) {
	l := flock.New(lockPath)
	deadline := time.Now().Add(timeout)
	for {
		locked, err := l.TryLock()
		if err != nil {
			return func() {}, fmt.Errorf("cannot acquire index lock: %w", err)
		}
		if locked {
			return func() { _ = l.Unlock() }, nil
		}
		if time.Now().After(deadline) {
			return func() {}, fmt.Errorf("another build is writing the index (lock: %s)", lockPath)
		}
		time.Sleep(100 * time.Millisecond)
	}
}
