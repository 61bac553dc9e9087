// Package filelock は出力ファイルを複数プロセスから同時に書き込まないためのロックを提供します
package filelock

import (
	"errors"
	"fmt"

	"github.com/gofrs/flock"
)

// ErrLocked は他のプロセスがロックを保持している場合に返されます
var ErrLocked = errors.New("locked by another process")

// Suffix はロックファイルのパスに付与される接尾辞です
const Suffix = ".lock"

// FileLock は flock によるロックをラップします
type FileLock struct {
	flock *flock.Flock
	path  string
}

// NewFileLock は target に対応するロックを作成します。ロックファイルは target + Suffix です
func NewFileLock(target string) *FileLock {
	path := target + Suffix
	return &FileLock{
		flock: flock.New(path),
		path:  path,
	}
}

// Path はロックファイルのパスを返します
func (fl *FileLock) Path() string {
	return fl.path
}

// TryLock はブロックせずに排他ロックを取得します。取得できなければ ErrLocked を返します
func (fl *FileLock) TryLock() error {
	acquired, err := fl.flock.TryLock()
	if err != nil {
		return fmt.Errorf("failed to try lock on %s: %w", fl.path, err)
	}
	if !acquired {
		return fmt.Errorf("%s: %w", fl.path, ErrLocked)
	}
	return nil
}

// Unlock はロックを解放します。ロックファイルは削除しません
func (fl *FileLock) Unlock() error {
	if err := fl.flock.Unlock(); err != nil {
		return fmt.Errorf("failed to release lock on %s: %w", fl.path, err)
	}
	return nil
}
