package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// FileConfig は設定ファイルの内容です。未設定と false を区別するため bool はポインタです
type FileConfig struct {
	Root             string   `toml:"root" yaml:"root"`
	Output           string   `toml:"output" yaml:"output"`
	Extensions       []string `toml:"extensions" yaml:"extensions"`
	Order            string   `toml:"order" yaml:"order"`
	RespectGitignore *bool    `toml:"respect_gitignore" yaml:"respect_gitignore"`
	Excludes         []string `toml:"excludes" yaml:"excludes"`
	LogFormat        string   `toml:"log_format" yaml:"log_format"`
	LogLevel         string   `toml:"log_level" yaml:"log_level"`
}

// LoadFileConfig は拡張子に応じて TOML または YAML の設定ファイルを読み込みます
func LoadFileConfig(path string) (FileConfig, error) {
	var fc FileConfig
	b, err := os.ReadFile(path)
	if err != nil {
		return fc, err
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(b, &fc); err != nil {
			return fc, fmt.Errorf("parse %s: %w", path, err)
		}
	case ".toml", "":
		if err := toml.Unmarshal(b, &fc); err != nil {
			return fc, fmt.Errorf("parse %s: %w", path, err)
		}
	default:
		return fc, fmt.Errorf("unsupported config format %q", filepath.Ext(path))
	}
	return fc, nil
}

// DefaultConfigPath は既定の設定ファイルのパス (~/.foldercombine/config.toml) を返します
func DefaultConfigPath() string {
	if h, err := os.UserHomeDir(); err == nil {
		return filepath.Join(h, ".foldercombine", "config.toml")
	}
	return ""
}

// ApplyFileConfig は明示されたフラグ (changed) を尊重して設定ファイルの値を適用します
func ApplyFileConfig(cfg *Config, fc FileConfig, changed map[string]bool) {
	s := newConfigSetter(changed)

	s.setString("root", fc.Root, &cfg.Root)
	s.setString("output", fc.Output, &cfg.Output)
	s.setList("ext", fc.Extensions, &cfg.Extensions)
	s.setString("sort", fc.Order, &cfg.Order)
	s.setBool("gitignore", fc.RespectGitignore, &cfg.RespectGitignore)
	s.setList("exclude", fc.Excludes, &cfg.Excludes)
	s.setString("log-format", fc.LogFormat, &cfg.LogFormat)
	s.setString("log-level", fc.LogLevel, &cfg.LogLevel)
}
