// Package logging はロギング機能を提供します
package logging

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
)

// Logger は構造化ログを出力するためのインターフェースです
type Logger interface {
	Log(level, message string, err error, fields ...Field)
}

// Field はログに付与するキーと値の組です
type Field struct {
	Key   string
	Value interface{}
}

// String は文字列フィールドを作成します
func String(key, value string) Field {
	return Field{Key: key, Value: value}
}

// Int は整数フィールドを作成します
func Int(key string, value int) Field {
	return Field{Key: key, Value: value}
}

// ZerologLogger は zerolog でログを出力するロガーです
type ZerologLogger struct {
	logger zerolog.Logger
}

// NewJSONLogger は1行1エントリのJSONでログを出力するロガーを作成します
func NewJSONLogger(writer io.Writer) *ZerologLogger {
	if writer == nil {
		writer = os.Stdout
	}
	return &ZerologLogger{logger: zerolog.New(writer).With().Timestamp().Logger()}
}

// NewConsoleLogger は人間向けの整形済みログを出力するロガーを作成します。
// 出力先が端末でない場合は色付けを無効にします
func NewConsoleLogger(writer io.Writer) *ZerologLogger {
	if writer == nil {
		writer = os.Stderr
	}
	output := zerolog.ConsoleWriter{
		Out:        writer,
		TimeFormat: time.RFC3339,
		NoColor:    !isTerminal(writer),
	}
	return &ZerologLogger{logger: zerolog.New(output).With().Timestamp().Logger()}
}

// New は format ("json" または "console") と最小レベルからロガーを作成します
func New(writer io.Writer, format, level string) (*ZerologLogger, error) {
	var l *ZerologLogger
	switch format {
	case "json":
		l = NewJSONLogger(writer)
	case "console", "":
		l = NewConsoleLogger(writer)
	default:
		return nil, fmt.Errorf("unknown log format %q", format)
	}

	if level == "" {
		return l, nil
	}
	lvl, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil {
		return nil, fmt.Errorf("parse log level: %w", err)
	}
	l.logger = l.logger.Level(lvl)
	return l, nil
}

// Log はメッセージを指定レベルで出力します。未知のレベルは INFO として扱います
func (l *ZerologLogger) Log(level, message string, err error, fields ...Field) {
	lvl, perr := zerolog.ParseLevel(strings.ToLower(level))
	if perr != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}

	event := l.logger.WithLevel(lvl)
	if err != nil {
		event = event.Err(err)
	}
	for _, f := range fields {
		event = addField(event, f)
	}
	event.Msg(message)
}

func addField(event *zerolog.Event, f Field) *zerolog.Event {
	switch v := f.Value.(type) {
	case string:
		return event.Str(f.Key, v)
	case int:
		return event.Int(f.Key, v)
	case bool:
		return event.Bool(f.Key, v)
	case fmt.Stringer:
		return event.Stringer(f.Key, v)
	default:
		return event.Interface(f.Key, v)
	}
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
