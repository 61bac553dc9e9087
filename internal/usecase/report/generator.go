// Package report は結合ファイルの生成機能を提供します
package report

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"FolderCombine/internal/domain/model"
	"FolderCombine/internal/infrastructure/filelock"
)

const (
	// SeparatorWidth は区切り線の長さです
	SeparatorWidth = 50
	// Trailer は各ファイル本文の後に書き込まれます
	Trailer = "\n\n"
)

// Separator は区切り線です
var Separator = strings.Repeat("=", SeparatorWidth)

// Header は relPath の区切りブロックを返します
func Header(relPath string) string {
	return fmt.Sprintf("\n%s\nFile: %s\n%s\n\n", Separator, relPath, Separator)
}

// OutputFile はロック付きのバッファリングされた出力ファイルです
type OutputFile struct {
	path string
	file *os.File
	buf  *bufio.Writer
	lock *filelock.FileLock
}

// Name は出力ファイルのパスを返します
func (o *OutputFile) Name() string {
	return o.path
}

// LockPath はロックファイルのパスを返します
func (o *OutputFile) LockPath() string {
	return o.lock.Path()
}

// Write は出力ファイルに追記します
func (o *OutputFile) Write(p []byte) (int, error) {
	return o.buf.Write(p)
}

// Close はバッファを書き出してファイルを閉じ、ロックを解放します
func (o *OutputFile) Close() error {
	flushErr := o.buf.Flush()
	closeErr := o.file.Close()
	unlockErr := o.lock.Unlock()

	if flushErr != nil {
		return &model.OutputWriteError{Path: o.path, Err: flushErr}
	}
	if closeErr != nil {
		return &model.OutputWriteError{Path: o.path, Err: closeErr}
	}
	return unlockErr
}

// Generator はレポート生成機能を提供します
type Generator struct{}

// NewGenerator は新しい Generator インスタンスを作成します
func NewGenerator() *Generator {
	return &Generator{}
}

// CreateOutputFile は出力ファイルを作成（既存なら切り詰め）し、実行中の排他ロックを取得します
func (g *Generator) CreateOutputFile(outputPath string) (*OutputFile, error) {
	if dir := filepath.Dir(outputPath); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, &model.OutputCreationError{Path: outputPath, Err: err}
		}
	}

	lock := filelock.NewFileLock(outputPath)
	if err := lock.TryLock(); err != nil {
		return nil, &model.OutputCreationError{Path: outputPath, Err: err}
	}

	file, err := os.Create(outputPath)
	if err != nil {
		_ = lock.Unlock()
		return nil, &model.OutputCreationError{Path: outputPath, Err: err}
	}

	return &OutputFile{
		path: outputPath,
		file: file,
		buf:  bufio.NewWriter(file),
		lock: lock,
	}, nil
}

// WriteEntry は1ファイル分のブロックを書き込みます。
// 読み込みまたはデコードに失敗した場合でも区切りブロックと末尾の改行は書き込まれ、
// 本文のみが省略されます。その場合はファイル単位のエラーを返します
func (g *Generator) WriteEntry(writer io.Writer, c model.Candidate) error {
	content, readErr := ReadText(c.Path)

	if _, err := io.WriteString(writer, Header(c.RelPath)); err != nil {
		return writeError(writer, err)
	}
	if readErr == nil {
		if _, err := writer.Write(content); err != nil {
			return writeError(writer, err)
		}
	}
	if _, err := io.WriteString(writer, Trailer); err != nil {
		return writeError(writer, err)
	}

	return readErr
}

// ReadText はファイル全体を読み込み、UTF-8 として妥当であることを確認します
func ReadText(path string) ([]byte, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, &model.UnreadableFileError{Path: path, Err: err}
	}
	if off := invalidUTF8Offset(content); off >= 0 {
		return nil, &model.DecodeError{Path: path, Offset: off}
	}
	return content, nil
}

// invalidUTF8Offset は最初の不正なバイトの位置を返します。妥当なら -1 です
func invalidUTF8Offset(b []byte) int {
	if utf8.Valid(b) {
		return -1
	}
	for i := 0; i < len(b); {
		r, size := utf8.DecodeRune(b[i:])
		if r == utf8.RuneError && size == 1 {
			return i
		}
		i += size
	}
	return -1
}

func writeError(writer io.Writer, err error) error {
	name := "<writer>"
	if n, ok := writer.(interface{ Name() string }); ok {
		name = n.Name()
	}
	return &model.OutputWriteError{Path: name, Err: err}
}
