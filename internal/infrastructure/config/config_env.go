package config

import "os"

// 環境変数名
const (
	EnvRoot             = "FOLDERCOMBINE_ROOT"
	EnvOutput           = "FOLDERCOMBINE_OUTPUT"
	EnvExtensions       = "FOLDERCOMBINE_EXTENSIONS"
	EnvOrder            = "FOLDERCOMBINE_SORT"
	EnvRespectGitignore = "FOLDERCOMBINE_GITIGNORE"
	EnvExcludes         = "FOLDERCOMBINE_EXCLUDE"
	EnvLogFormat        = "FOLDERCOMBINE_LOG_FORMAT"
	EnvLogLevel         = "FOLDERCOMBINE_LOG_LEVEL"
)

// ApplyEnvConfig は FOLDERCOMBINE_* 環境変数を適用します。
// 設定ファイルより優先され、明示されたフラグには負けます
func ApplyEnvConfig(cfg *Config, changed map[string]bool) {
	s := newConfigSetter(changed)

	s.setString("root", os.Getenv(EnvRoot), &cfg.Root)
	s.setString("output", os.Getenv(EnvOutput), &cfg.Output)
	if v := os.Getenv(EnvExtensions); v != "" {
		s.setList("ext", splitList([]string{v}), &cfg.Extensions)
	}
	s.setString("sort", os.Getenv(EnvOrder), &cfg.Order)
	s.setBoolFromString("gitignore", os.Getenv(EnvRespectGitignore), &cfg.RespectGitignore)
	if v := os.Getenv(EnvExcludes); v != "" {
		s.setList("exclude", splitList([]string{v}), &cfg.Excludes)
	}
	s.setString("log-format", os.Getenv(EnvLogFormat), &cfg.LogFormat)
	s.setString("log-level", os.Getenv(EnvLogLevel), &cfg.LogLevel)
}
