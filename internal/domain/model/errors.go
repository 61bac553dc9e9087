package model

import (
	"errors"
	"fmt"
)

// ErrInvalidUTF8 は DecodeError がラップする原因です
var ErrInvalidUTF8 = errors.New("invalid UTF-8")

// DirectoryAccessError はルートディレクトリが存在しない、または読めない場合のエラーです
type DirectoryAccessError struct {
	Path string
	Err  error
}

func (e *DirectoryAccessError) Error() string {
	return fmt.Sprintf("directory %q is not accessible: %v", e.Path, e.Err)
}

func (e *DirectoryAccessError) Unwrap() error { return e.Err }

// OutputCreationError は出力ファイルを作成できない場合のエラーです
type OutputCreationError struct {
	Path string
	Err  error
}

func (e *OutputCreationError) Error() string {
	return fmt.Sprintf("cannot create output %q: %v", e.Path, e.Err)
}

func (e *OutputCreationError) Unwrap() error { return e.Err }

// OutputWriteError は出力ファイルへの書き込みに失敗した場合のエラーです
type OutputWriteError struct {
	Path string
	Err  error
}

func (e *OutputWriteError) Error() string {
	return fmt.Sprintf("write to output %q: %v", e.Path, e.Err)
}

func (e *OutputWriteError) Unwrap() error { return e.Err }

// UnreadableFileError はファイル単位の読み込みエラーです。実行は継続します
type UnreadableFileError struct {
	Path string
	Err  error
}

func (e *UnreadableFileError) Error() string {
	return fmt.Sprintf("read %q: %v", e.Path, e.Err)
}

func (e *UnreadableFileError) Unwrap() error { return e.Err }

// DecodeError はファイル内容が UTF-8 として不正な場合のエラーです。実行は継続します
type DecodeError struct {
	Path string
	// Offset は最初の不正バイトの位置です
	Offset int
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode %q: %v at byte %d", e.Path, ErrInvalidUTF8, e.Offset)
}

func (e *DecodeError) Unwrap() error { return ErrInvalidUTF8 }

// IsFatal は err が実行全体を中断すべきエラーかどうかを判定します
func IsFatal(err error) bool {
	if err == nil {
		return false
	}
	var unreadable *UnreadableFileError
	var decode *DecodeError
	return !errors.As(err, &unreadable) && !errors.As(err, &decode)
}

// ReasonOf はファイル単位のエラーを除外理由に変換します
func ReasonOf(err error) SkipReason {
	var decode *DecodeError
	if errors.As(err, &decode) {
		return ReasonDecode
	}
	return ReasonUnreadable
}
