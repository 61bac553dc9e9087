// Package filesystem はファイルシステム操作を提供します
package filesystem

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	ignore "github.com/sabhiram/go-gitignore"

	"FolderCombine/internal/domain/model"
	"FolderCombine/internal/infrastructure/logging"
)

// 走査順序
const (
	// OrderWalk は WalkDir がディレクトリごとに返す順序です
	OrderWalk = "walk"
	// OrderPath は全候補を集めてスラッシュ区切りの相対パスでソートした順序です
	OrderPath = "path"
)

const gitignoreFile = ".gitignore"

// DirectoryValidator はディレクトリの検証機能を提供するインターフェースです
type DirectoryValidator interface {
	ValidateDirectoryPath(path string) error
}

// WalkFunc は候補ごとに呼ばれます。エラーを返すと走査を中断します
type WalkFunc func(c model.Candidate) error

// Option は Scanner の設定を変更します
type Option func(*Scanner)

// WithOrder は走査順序を指定します
func WithOrder(order string) Option {
	return func(s *Scanner) { s.order = order }
}

// WithGitignore はルート直下の .gitignore を適用するかを指定します
func WithGitignore(enabled bool) Option {
	return func(s *Scanner) { s.respectGitignore = enabled }
}

// WithExcludes は gitignore 形式の除外パターンを追加します
func WithExcludes(patterns ...string) Option {
	return func(s *Scanner) { s.excludes = append(s.excludes, patterns...) }
}

// WithExcludedPaths は走査から外すファイル（出力ファイルなど）を指定します。
// パスの表記ではなく Walk 開始時点のファイルの同一性で比較します
func WithExcludedPaths(paths ...string) Option {
	return func(s *Scanner) { s.excludedPaths = append(s.excludedPaths, paths...) }
}

// Scanner はファイルシステムをスキャンするための構造体です
type Scanner struct {
	logger           logging.Logger
	order            string
	respectGitignore bool
	excludes         []string
	excludedPaths    []string
}

// NewScanner は新しい Scanner インスタンスを作成します
func NewScanner(logger logging.Logger, opts ...Option) *Scanner {
	s := &Scanner{
		logger: logger,
		order:  OrderWalk,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ValidateDirectoryPath はパスが読み込み可能なディレクトリであることを確認します
func (s *Scanner) ValidateDirectoryPath(path string) error {
	if path == "" {
		return &model.DirectoryAccessError{Path: path, Err: errors.New("no directory specified")}
	}

	fileInfo, err := os.Stat(path)
	if err != nil {
		return &model.DirectoryAccessError{Path: path, Err: err}
	}
	if !fileInfo.IsDir() {
		return &model.DirectoryAccessError{Path: path, Err: errors.New("not a directory")}
	}

	dir, err := os.Open(path)
	if err != nil {
		return &model.DirectoryAccessError{Path: path, Err: err}
	}
	defer dir.Close()
	if _, err := dir.ReadDir(1); err != nil && !errors.Is(err, io.EOF) {
		return &model.DirectoryAccessError{Path: path, Err: err}
	}

	return nil
}

// ResolveRoot は rootDir を絶対パスにし、シンボリックリンクを解決します。
// ルート自身がリンクの場合はリンク先を走査します
func (s *Scanner) ResolveRoot(rootDir string) (string, error) {
	if rootDir == "" {
		return "", &model.DirectoryAccessError{Path: rootDir, Err: errors.New("no directory specified")}
	}
	abs, err := filepath.Abs(rootDir)
	if err != nil {
		return "", &model.DirectoryAccessError{Path: rootDir, Err: err}
	}
	root, err := filepath.EvalSymlinks(abs)
	if err != nil {
		return "", &model.DirectoryAccessError{Path: rootDir, Err: err}
	}
	return root, nil
}

// Walk は rootDir 以下の通常ファイルを深さ優先で走査し、候補ごとに fn を呼びます。
// ルート自身は渡されません。シンボリックリンク・除外対象・出力ファイルは
// Skip を設定した候補として渡されます。ディレクトリは除外された場合のみ Dir 付きで渡されます
func (s *Scanner) Walk(ctx context.Context, rootDir string, fn WalkFunc) error {
	root, err := s.ResolveRoot(rootDir)
	if err != nil {
		return err
	}
	if err := s.ValidateDirectoryPath(root); err != nil {
		return err
	}

	matcher, err := s.compileIgnore(root)
	if err != nil {
		return err
	}
	excluded := s.statExcluded()

	if s.order != OrderPath {
		return s.walk(ctx, root, matcher, excluded, fn)
	}

	var candidates []model.Candidate
	err = s.walk(ctx, root, matcher, excluded, func(c model.Candidate) error {
		candidates = append(candidates, c)
		return nil
	})
	if err != nil {
		return err
	}
	sortCandidates(candidates)
	for _, c := range candidates {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := fn(c); err != nil {
			return err
		}
	}
	return nil
}

// Collect は Walk の結果をスライスとして返します
func (s *Scanner) Collect(ctx context.Context, rootDir string) ([]model.Candidate, error) {
	var candidates []model.Candidate
	err := s.Walk(ctx, rootDir, func(c model.Candidate) error {
		candidates = append(candidates, c)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return candidates, nil
}

func (s *Scanner) walk(ctx context.Context, root string, matcher *ignore.GitIgnore, excluded []fs.FileInfo, fn WalkFunc) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == root {
				return &model.DirectoryAccessError{Path: root, Err: err}
			}
			s.logger.Log("WARN", fmt.Sprintf("パス '%s' の走査中にエラー発生", path), err)
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if path == root {
			return nil
		}

		relPath, err := filepath.Rel(root, path)
		if err != nil {
			s.logger.Log("WARN", fmt.Sprintf("相対パスの取得に失敗: %s", path), err)
			return nil
		}

		if d.IsDir() {
			if !s.ignored(matcher, relPath, true) {
				return nil
			}
			c := model.Candidate{Path: path, RelPath: relPath, Dir: true, Skip: model.ReasonIgnored}
			if err := fn(c); err != nil {
				return err
			}
			return filepath.SkipDir
		}

		c := model.Candidate{
			Path:    path,
			RelPath: relPath,
		}

		switch {
		case d.Type()&fs.ModeSymlink != 0:
			c.Skip = model.ReasonSymlink
		case sameFileAny(d, excluded):
			c.Skip = model.ReasonOutputFile
		case s.ignored(matcher, relPath, false):
			c.Skip = model.ReasonIgnored
		case !d.Type().IsRegular():
			// デバイスやソケットなど
			return nil
		}

		return fn(c)
	})
}

// statExcluded は除外ファイルのうち現時点で存在するものの情報を返します
func (s *Scanner) statExcluded() []fs.FileInfo {
	var infos []fs.FileInfo
	for _, p := range s.excludedPaths {
		info, err := os.Stat(p)
		if err != nil {
			continue
		}
		infos = append(infos, info)
	}
	return infos
}

func sameFileAny(d fs.DirEntry, excluded []fs.FileInfo) bool {
	if len(excluded) == 0 {
		return false
	}
	info, err := d.Info()
	if err != nil {
		return false
	}
	for _, ex := range excluded {
		if os.SameFile(ex, info) {
			return true
		}
	}
	return false
}

func (s *Scanner) compileIgnore(root string) (*ignore.GitIgnore, error) {
	lines := append([]string(nil), s.excludes...)
	if s.respectGitignore {
		// .git は常に除外する
		lines = append(lines, ".git/")
		path := filepath.Join(root, gitignoreFile)
		if _, err := os.Stat(path); err == nil {
			m, err := ignore.CompileIgnoreFileAndLines(path, lines...)
			if err != nil {
				return nil, fmt.Errorf("%s の読み込みに失敗: %w", gitignoreFile, err)
			}
			return m, nil
		}
	}
	if len(lines) == 0 {
		return nil, nil
	}
	return ignore.CompileIgnoreLines(lines...), nil
}

func (s *Scanner) ignored(matcher *ignore.GitIgnore, relPath string, isDir bool) bool {
	if matcher == nil {
		return false
	}
	p := filepath.ToSlash(relPath)
	if isDir {
		return matcher.MatchesPath(p) || matcher.MatchesPath(p+"/")
	}
	return matcher.MatchesPath(p)
}

func sortCandidates(candidates []model.Candidate) {
	sort.SliceStable(candidates, func(i, j int) bool {
		return filepath.ToSlash(candidates[i].RelPath) < filepath.ToSlash(candidates[j].RelPath)
	})
}
