package logging

import (
	"errors"
	"io/fs"
	"os"
	"sync"
)

// rotatingFile appends to path and, when the next write would push it past
// limit, renames it to path+".1" (replacing any older backup) and starts a
// fresh file. At most two files exist at any time.
type rotatingFile struct {
	mu    sync.Mutex
	path  string
	limit int64
	f     *os.File
	n     int64
}

func openRotating(path string, maxMB int) (*rotatingFile, error) {
	if maxMB <= 0 {
		maxMB = 10
	}
	rf := &rotatingFile{path: path, limit: int64(maxMB) << 20}
	if err := rf.reopen(); err != nil {
		return nil, err
	}
	return rf, nil
}

func (rf *rotatingFile) Write(p []byte) (int, error) {
	rf.mu.Lock()
	defer rf.mu.Unlock()

	if rf.f == nil {
		if err := rf.reopen(); err != nil {
			return 0, err
		}
	}
	// a single oversized entry still lands in one file
	if rf.n > 0 && rf.n+int64(len(p)) > rf.limit {
		if err := rf.rotate(); err != nil {
			return 0, err
		}
	}
	n, err := rf.f.Write(p)
	rf.n += int64(n)
	return n, err
}

func (rf *rotatingFile) Close() error {
	rf.mu.Lock()
	defer rf.mu.Unlock()
	if rf.f == nil {
		return nil
	}
	err := rf.f.Close()
	rf.f = nil
	return err
}

func (rf *rotatingFile) rotate() error {
	if err := rf.f.Close(); err != nil {
		return err
	}
	rf.f = nil
	if err := os.Rename(rf.path, rf.path+".1"); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return rf.reopen()
}

func (rf *rotatingFile) reopen() error {
	f, err := os.OpenFile(rf.path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	st, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return err
	}
	rf.f, rf.n = f, st.Size()
	return nil
}
