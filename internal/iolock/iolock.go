// Package iolock provides an advisory lock that keeps mutating commands
// from running concurrently on one content root.
//
// The lock is a kernel file lock, so the operating system drops it when
// the holding process exits for any reason. The text inside the lock file
// (pid, operation, start time and a token) is only used for diagnostics.
package iolock

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/gofrs/flock"
	"github.com/google/uuid"
)

// Lock is a held lock file.
type Lock struct {
	path  string
	token string
	fl    *flock.Flock
}

// Acquire takes the lock without waiting. It fails with a LockHeldError
// if another process holds it. A lock file left behind by a process that
// died is taken over.
func Acquire(path, operation string) (*Lock, error) {
	fl := flock.New(path)
	ok, err := fl.TryLock()
	if err != nil {
		return nil, LockCreateError(path, err)
	}
	if !ok {
		return nil, LockHeldError(path, holder(path))
	}

	// The file could be removed by a releasing holder between our open
	// and lock calls. Then we hold a lock on an unlinked file.
	if !samePath(fl, path) {
		_ = fl.Unlock()
		return nil, LockHeldError(path, holder(path))
	}

	token := uuid.NewString()
	info := fmt.Sprintf("%d %s %s %s\n",
		os.Getpid(), operation, time.Now().UTC().Format(time.RFC3339), token)
	if err = os.WriteFile(path, []byte(info), 0644); err != nil {
		_ = fl.Unlock()
		return nil, LockCreateError(path, err)
	}

	slog.Debug("Lock acquired", "path", path, "operation", operation)
	return &Lock{path: path, token: token, fl: fl}, nil
}

// Release removes the lock file and drops the lock. It is safe to call
// more than once. A lock file replaced by another holder is left in place.
func (l *Lock) Release() error {
	if l == nil || l.path == "" {
		return nil
	}
	path := l.path
	l.path = ""
	defer l.fl.Unlock()

	if h := holder(path); h != "unknown" && !strings.HasSuffix(h, l.token) {
		slog.Warn("Lock is owned by another holder", "path", path, "holder", h)
		return nil
	}
	err := os.Remove(path)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}

func samePath(fl *flock.Flock, path string) bool {
	fh := fl.Fh()
	if fh == nil {
		return false
	}
	held, err := fh.Stat()
	if err != nil {
		return false
	}
	current, err := os.Stat(path)
	if err != nil {
		return false
	}
	return os.SameFile(held, current)
}

func holder(path string) string {
	data, err := os.ReadFile(path)
	if err != nil || len(strings.TrimSpace(string(data))) == 0 {
		return "unknown"
	}
	return strings.TrimSpace(string(data))
}
