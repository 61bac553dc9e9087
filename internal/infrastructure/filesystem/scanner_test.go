package filesystem

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"FolderCombine/internal/domain/model"
	"FolderCombine/internal/infrastructure/logging"
)

type mockLogger struct {
	logs []struct {
		level   string
		message string
		err     error
	}
}

func (m *mockLogger) Log(level, message string, err error, _ ...logging.Field) {
	m.logs = append(m.logs, struct {
		level   string
		message string
		err     error
	}{level, message, err})
}

func writeFile(t *testing.T, root, rel, content string) string {
	t.Helper()
	path := filepath.Join(root, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func relPaths(candidates []model.Candidate) map[string]model.SkipReason {
	out := make(map[string]model.SkipReason, len(candidates))
	for _, c := range candidates {
		out[filepath.ToSlash(c.RelPath)] = c.Skip
	}
	return out
}

func TestScanner_ValidateDirectoryPath(t *testing.T) {
	logger := &mockLogger{}
	scanner := NewScanner(logger)

	tempDir := t.TempDir()
	file := writeFile(t, tempDir, "file.txt", "x")

	tests := []struct {
		name    string
		path    string
		wantErr bool
	}{
		{
			name:    "有効なディレクトリパス",
			path:    tempDir,
			wantErr: false,
		},
		{
			name:    "空のパス",
			path:    "",
			wantErr: true,
		},
		{
			name:    "存在しないパス",
			path:    filepath.Join(tempDir, "notexist"),
			wantErr: true,
		},
		{
			name:    "ファイルのパス",
			path:    file,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := scanner.ValidateDirectoryPath(tt.path)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateDirectoryPath() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil {
				var dae *model.DirectoryAccessError
				if !errors.As(err, &dae) {
					t.Errorf("ValidateDirectoryPath() error type = %T, want *model.DirectoryAccessError", err)
				}
			}
		})
	}
}

func TestScanner_Walk(t *testing.T) {
	logger := &mockLogger{}
	scanner := NewScanner(logger)

	tempDir := t.TempDir()
	writeFile(t, tempDir, "a.ts", "x=1")
	writeFile(t, tempDir, "b.png", "\x89PNG")
	writeFile(t, tempDir, "nested/deep/c.md", "# Title")
	require.NoError(t, os.Mkdir(filepath.Join(tempDir, "empty"), 0755))

	candidates, err := scanner.Collect(context.Background(), tempDir)
	require.NoError(t, err)

	got := relPaths(candidates)
	assert.Equal(t, map[string]model.SkipReason{
		"a.ts":             "",
		"b.png":            "",
		"nested/deep/c.md": "",
	}, got, "directories and the root must never be yielded")

	for _, c := range candidates {
		assert.True(t, filepath.IsAbs(c.Path))
		assert.False(t, c.Dir)
	}
}

func TestScanner_Walk_SymlinkRoot(t *testing.T) {
	base := t.TempDir()
	target := filepath.Join(base, "real")
	writeFile(t, target, "a.ts", "x=1")
	writeFile(t, target, "sub/b.md", "# b")
	link := filepath.Join(base, "src")
	if err := os.Symlink(target, link); err != nil {
		t.Skipf("symlinks not supported: %v", err)
	}

	scanner := NewScanner(&mockLogger{})
	candidates, err := scanner.Collect(context.Background(), link)
	require.NoError(t, err)

	assert.Equal(t, map[string]model.SkipReason{
		"a.ts":     "",
		"sub/b.md": "",
	}, relPaths(candidates))

	resolved, err := scanner.ResolveRoot(link)
	require.NoError(t, err)
	want, err := filepath.EvalSymlinks(target)
	require.NoError(t, err)
	assert.Equal(t, want, resolved)
}

func TestScanner_ResolveRoot_Errors(t *testing.T) {
	scanner := NewScanner(&mockLogger{})

	for _, path := range []string{"", filepath.Join(t.TempDir(), "missing")} {
		_, err := scanner.ResolveRoot(path)
		var dae *model.DirectoryAccessError
		require.ErrorAs(t, err, &dae, "path %q", path)
	}
}

func TestScanner_Walk_UnreadableSubdirectory(t *testing.T) {
	if runtime.GOOS == "windows" || os.Geteuid() == 0 {
		t.Skip("permission bits are not enforced")
	}
	tempDir := t.TempDir()
	writeFile(t, tempDir, "a.txt", "a")
	writeFile(t, tempDir, "locked/hidden.txt", "h")
	writeFile(t, tempDir, "z/c.txt", "c")
	locked := filepath.Join(tempDir, "locked")
	require.NoError(t, os.Chmod(locked, 0000))
	t.Cleanup(func() { _ = os.Chmod(locked, 0755) })

	logger := &mockLogger{}
	candidates, err := NewScanner(logger).Collect(context.Background(), tempDir)
	require.NoError(t, err)

	assert.Equal(t, map[string]model.SkipReason{
		"a.txt":   "",
		"z/c.txt": "",
	}, relPaths(candidates))

	var warned bool
	for _, l := range logger.logs {
		if l.level == "WARN" && errors.Is(l.err, os.ErrPermission) {
			warned = true
		}
	}
	assert.True(t, warned, "unreadable subdirectory should be logged as a warning")
}

func TestScanner_Walk_MissingRoot(t *testing.T) {
	scanner := NewScanner(&mockLogger{})

	called := false
	err := scanner.Walk(context.Background(), filepath.Join(t.TempDir(), "missing"), func(model.Candidate) error {
		called = true
		return nil
	})

	var dae *model.DirectoryAccessError
	require.ErrorAs(t, err, &dae)
	assert.True(t, model.IsFatal(err))
	assert.False(t, called)
}

func TestScanner_Walk_Symlink(t *testing.T) {
	tempDir := t.TempDir()
	target := writeFile(t, tempDir, "real.txt", "real")
	if err := os.Symlink(target, filepath.Join(tempDir, "link.txt")); err != nil {
		t.Skipf("symlinks not supported: %v", err)
	}
	outside := t.TempDir()
	writeFile(t, outside, "secret.txt", "secret")
	require.NoError(t, os.Symlink(outside, filepath.Join(tempDir, "linkdir")))

	candidates, err := NewScanner(&mockLogger{}).Collect(context.Background(), tempDir)
	require.NoError(t, err)

	assert.Equal(t, map[string]model.SkipReason{
		"real.txt": "",
		"link.txt": model.ReasonSymlink,
		"linkdir":  model.ReasonSymlink,
	}, relPaths(candidates))
}

func TestScanner_Walk_Gitignore(t *testing.T) {
	tempDir := t.TempDir()
	writeFile(t, tempDir, ".gitignore", "dist/\n*.log.txt\n")
	writeFile(t, tempDir, "keep.js", "k")
	writeFile(t, tempDir, "dist/bundle.js", "b")
	writeFile(t, tempDir, "debug.log.txt", "d")
	writeFile(t, tempDir, ".git/HEAD.txt", "ref")
	writeFile(t, tempDir, "vendor/lib.js", "v")

	logger := &mockLogger{}
	scanner := NewScanner(logger, WithGitignore(true), WithExcludes("vendor"))
	candidates, err := scanner.Collect(context.Background(), tempDir)
	require.NoError(t, err)

	assert.Equal(t, map[string]model.SkipReason{
		".git":          model.ReasonIgnored,
		".gitignore":    "",
		"dist":          model.ReasonIgnored,
		"keep.js":       "",
		"debug.log.txt": model.ReasonIgnored,
		"vendor":        model.ReasonIgnored,
	}, relPaths(candidates))

	var dirs []string
	for _, c := range candidates {
		if c.Dir {
			dirs = append(dirs, filepath.ToSlash(c.RelPath))
		}
	}
	assert.ElementsMatch(t, []string{".git", "dist", "vendor"}, dirs)

	// .gitignore を無効にすると全て見える
	candidates, err = NewScanner(logger).Collect(context.Background(), tempDir)
	require.NoError(t, err)
	got := relPaths(candidates)
	assert.Contains(t, got, "dist/bundle.js")
	assert.Contains(t, got, ".git/HEAD.txt")
	assert.Contains(t, got, "vendor/lib.js")
}

func TestScanner_Walk_ExcludedPath(t *testing.T) {
	tempDir := t.TempDir()
	writeFile(t, tempDir, "a.txt", "a")
	out := writeFile(t, tempDir, "combined_output.txt", "partial")

	scanner := NewScanner(&mockLogger{}, WithExcludedPaths(out))
	candidates, err := scanner.Collect(context.Background(), tempDir)
	require.NoError(t, err)

	assert.Equal(t, map[string]model.SkipReason{
		"a.txt":               "",
		"combined_output.txt": model.ReasonOutputFile,
	}, relPaths(candidates))
}

func TestScanner_Walk_ExcludedPathThroughAlias(t *testing.T) {
	base := t.TempDir()
	root := filepath.Join(base, "root")
	writeFile(t, root, "a.txt", "a")
	writeFile(t, root, "m.txt", "partial")
	alias := filepath.Join(base, "alias")
	if err := os.Symlink(root, alias); err != nil {
		t.Skipf("symlinks not supported: %v", err)
	}

	scanner := NewScanner(&mockLogger{}, WithExcludedPaths(filepath.Join(alias, "m.txt"), filepath.Join(alias, "missing.txt")))
	candidates, err := scanner.Collect(context.Background(), root)
	require.NoError(t, err)

	assert.Equal(t, map[string]model.SkipReason{
		"a.txt": "",
		"m.txt": model.ReasonOutputFile,
	}, relPaths(candidates))
}

func TestScanner_Walk_OrderPath(t *testing.T) {
	tempDir := t.TempDir()
	writeFile(t, tempDir, "a/y.txt", "1")
	writeFile(t, tempDir, "a-b/x.txt", "2")
	writeFile(t, tempDir, "b.txt", "3")

	collect := func(order string) []string {
		candidates, err := NewScanner(&mockLogger{}, WithOrder(order)).Collect(context.Background(), tempDir)
		require.NoError(t, err)
		var out []string
		for _, c := range candidates {
			out = append(out, filepath.ToSlash(c.RelPath))
		}
		return out
	}

	assert.Equal(t, []string{"a/y.txt", "a-b/x.txt", "b.txt"}, collect(OrderWalk))
	assert.Equal(t, []string{"a-b/x.txt", "a/y.txt", "b.txt"}, collect(OrderPath))
}

func TestScanner_Walk_Canceled(t *testing.T) {
	tempDir := t.TempDir()
	writeFile(t, tempDir, "a.txt", "a")
	writeFile(t, tempDir, "b.txt", "b")

	ctx, cancel := context.WithCancel(context.Background())
	var seen int
	err := NewScanner(&mockLogger{}).Walk(ctx, tempDir, func(model.Candidate) error {
		seen++
		cancel()
		return nil
	})

	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, seen)
}

func TestScanner_Walk_StopsOnCallbackError(t *testing.T) {
	tempDir := t.TempDir()
	writeFile(t, tempDir, "a.txt", "a")
	writeFile(t, tempDir, "b.txt", "b")

	boom := errors.New("boom")
	err := NewScanner(&mockLogger{}).Walk(context.Background(), tempDir, func(model.Candidate) error {
		return boom
	})
	assert.ErrorIs(t, err, boom)
}
