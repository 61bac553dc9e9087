package filelock

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileLock_TryLock(t *testing.T) {
	target := filepath.Join(t.TempDir(), "out.txt")

	first := NewFileLock(target)
	require.NoError(t, first.TryLock())
	assert.FileExists(t, target+Suffix)

	second := NewFileLock(target)
	err := second.TryLock()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrLocked)

	require.NoError(t, first.Unlock())
	// ロックファイルは残る
	assert.FileExists(t, target+Suffix)

	require.NoError(t, second.TryLock())
	require.NoError(t, second.Unlock())
}

func TestFileLock_Path(t *testing.T) {
	fl := NewFileLock("/tmp/combined.txt")
	assert.Equal(t, "/tmp/combined.txt.lock", fl.Path())
}

func TestFileLock_RelockAfterUnlock(t *testing.T) {
	target := filepath.Join(t.TempDir(), "out.txt")

	for i := 0; i < 3; i++ {
		fl := NewFileLock(target)
		require.NoError(t, fl.TryLock())
		require.ErrorIs(t, NewFileLock(target).TryLock(), ErrLocked)
		require.NoError(t, fl.Unlock())
	}
	assert.FileExists(t, target+Suffix)
}
