// Package config は実行設定の既定値・検証・読み込みを提供します
package config

import (
	"fmt"
	"os"
	"strings"

	"FolderCombine/internal/infrastructure/filesystem"
	"FolderCombine/internal/usecase/filter"
)

const (
	// DefaultRoot は走査対象の既定ディレクトリです
	DefaultRoot = "./src"
	// DefaultOutput は既定の出力ファイルです
	DefaultOutput = "combined_output.txt"
)

// フォルダ選択ダイアログの種類
const (
	PickNone   = ""
	PickFyne   = "fyne"
	PickNative = "native"
)

// Config は1回の実行の設定です
type Config struct {
	Root             string   `json:"root"`
	Output           string   `json:"output"`
	Extensions       []string `json:"extensions"`
	Order            string   `json:"order"`
	RespectGitignore bool     `json:"respect_gitignore"`
	Excludes         []string `json:"excludes,omitempty"`
	LogFormat        string   `json:"log_format"`
	LogLevel         string   `json:"log_level"`
	Pick             string   `json:"pick,omitempty"`
}

// DefaultConfig は既定値の Config を返します
func DefaultConfig() Config {
	return Config{
		Root:       DefaultRoot,
		Output:     DefaultOutput,
		Extensions: append([]string(nil), filter.DefaultExtensions...),
		Order:      filesystem.OrderWalk,
		LogFormat:  "console",
		LogLevel:   "info",
	}
}

// Validate は設定を検証します
func (c *Config) Validate() error {
	if c.Root == "" {
		return fmt.Errorf("root is required")
	}
	if c.Output == "" {
		return fmt.Errorf("output is required")
	}

	c.Extensions = splitList(c.Extensions)
	if len(c.Extensions) == 0 {
		return fmt.Errorf("at least one extension is required")
	}
	c.Excludes = splitList(c.Excludes)

	switch c.Order {
	case filesystem.OrderWalk, filesystem.OrderPath:
	default:
		return fmt.Errorf("unknown order %q (want %q or %q)", c.Order, filesystem.OrderWalk, filesystem.OrderPath)
	}
	switch c.LogFormat {
	case "console", "json":
	default:
		return fmt.Errorf("unknown log format %q", c.LogFormat)
	}
	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("unknown log level %q", c.LogLevel)
	}
	switch c.Pick {
	case PickNone, PickFyne, PickNative:
	default:
		return fmt.Errorf("unknown picker %q (want %q or %q)", c.Pick, PickFyne, PickNative)
	}
	return nil
}

// splitList はカンマ区切りの要素を展開し、空要素を取り除きます
func splitList(in []string) []string {
	var out []string
	for _, item := range in {
		for _, part := range strings.Split(item, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

// configSetter はフラグで明示された値を上書きしないように設定を適用します
type configSetter struct {
	changed map[string]bool
}

func newConfigSetter(changed map[string]bool) *configSetter {
	return &configSetter{changed: changed}
}

func (s *configSetter) setString(flag, value string, dst *string) {
	if value == "" || s.changed[flag] {
		return
	}
	*dst = value
}

func (s *configSetter) setList(flag string, value []string, dst *[]string) {
	if len(value) == 0 || s.changed[flag] {
		return
	}
	*dst = append([]string(nil), value...)
}

func (s *configSetter) setBool(flag string, value *bool, dst *bool) {
	if value == nil || s.changed[flag] {
		return
	}
	*dst = *value
}

// setBoolFromString は "true" または "1" を真として扱います
func (s *configSetter) setBoolFromString(flag, value string, dst *bool) {
	if value == "" || s.changed[flag] {
		return
	}
	*dst = value == "true" || value == "1"
}

// FileExists は path にファイルが存在するかを返します
func FileExists(p string) bool {
	_, err := os.Stat(p)
	return err == nil
}
