package model

import (
	"errors"
	"fmt"
	"io/fs"
	"testing"
)

func TestSummary(t *testing.T) {
	s := NewSummary("out.txt")
	s.Included = 2
	s.Skip(ReasonExtension)
	s.Skip(ReasonExtension)
	s.Skip(ReasonDecode)

	if got := s.Skipped[ReasonExtension]; got != 2 {
		t.Errorf("Skipped[extension] = %v, want %v", got, 2)
	}
	if got := s.TotalSkipped(); got != 3 {
		t.Errorf("TotalSkipped() = %v, want %v", got, 3)
	}
	if s.Output != "out.txt" {
		t.Errorf("Output = %v, want %v", s.Output, "out.txt")
	}
}

func TestIsFatal(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{name: "nil", err: nil, want: false},
		{name: "ディレクトリアクセスエラー", err: &DirectoryAccessError{Path: "/x", Err: fs.ErrNotExist}, want: true},
		{name: "出力作成エラー", err: &OutputCreationError{Path: "o", Err: fs.ErrPermission}, want: true},
		{name: "出力書き込みエラー", err: &OutputWriteError{Path: "o", Err: errors.New("disk full")}, want: true},
		{name: "読み込みエラー", err: &UnreadableFileError{Path: "a", Err: fs.ErrPermission}, want: false},
		{name: "デコードエラー", err: &DecodeError{Path: "a", Offset: 3}, want: false},
		{name: "ラップされたデコードエラー", err: fmt.Errorf("emit: %w", &DecodeError{Path: "a"}), want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsFatal(tt.err); got != tt.want {
				t.Errorf("IsFatal() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestReasonOf(t *testing.T) {
	if got := ReasonOf(&DecodeError{Path: "a"}); got != ReasonDecode {
		t.Errorf("ReasonOf(decode) = %v, want %v", got, ReasonDecode)
	}
	if got := ReasonOf(&UnreadableFileError{Path: "a", Err: fs.ErrNotExist}); got != ReasonUnreadable {
		t.Errorf("ReasonOf(unreadable) = %v, want %v", got, ReasonUnreadable)
	}
}

func TestErrorsUnwrap(t *testing.T) {
	err := &DirectoryAccessError{Path: "/missing", Err: fs.ErrNotExist}
	if !errors.Is(err, fs.ErrNotExist) {
		t.Error("DirectoryAccessError should unwrap to fs.ErrNotExist")
	}
	var target *DirectoryAccessError
	if !errors.As(fmt.Errorf("scan: %w", err), &target) || target.Path != "/missing" {
		t.Error("DirectoryAccessError should be recoverable with errors.As")
	}
}

func TestDecodeError_Unwrap(t *testing.T) {
	err := fmt.Errorf("emit: %w", &DecodeError{Path: "d.json", Offset: 2})
	if !errors.Is(err, ErrInvalidUTF8) {
		t.Error("DecodeError should unwrap to ErrInvalidUTF8")
	}
	if got := err.Error(); got != `emit: decode "d.json": invalid UTF-8 at byte 2` {
		t.Errorf("Error() = %q", got)
	}
}
