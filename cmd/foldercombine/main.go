// Package main はアプリケーションのエントリーポイントを提供します
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"runtime/debug"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"FolderCombine/internal/domain/model"
	"FolderCombine/internal/gui"
	"FolderCombine/internal/infrastructure/config"
	"FolderCombine/internal/infrastructure/filesystem"
	"FolderCombine/internal/infrastructure/logging"
	"FolderCombine/internal/interface/ui"
	"FolderCombine/internal/usecase/combine"
)

var exampleUsage = strings.TrimSpace(`
  foldercombine --root ./src --output combined_output.txt
  foldercombine --root . --ext .go,.mod --gitignore --sort path
  foldercombine --pick native
`)

func getVersion() string {
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" {
		return info.Main.Version
	}
	return "dev"
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	root := newRootCommand(os.Stdout, os.Stderr)
	if err := root.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "エラー: %v\n", err)
		stop()
		os.Exit(1)
	}
}

func newRootCommand(stdout, stderr io.Writer) *cobra.Command {
	cfg := config.DefaultConfig()
	var cfgPath string

	cmd := &cobra.Command{
		Use:           "foldercombine",
		Short:         "Concatenate the text files under a directory into one file",
		Example:       exampleUsage,
		Version:       fmt.Sprintf("%s %s/%s", getVersion(), runtime.GOOS, runtime.GOARCH),
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			// 設定ファイル → 環境変数 → フラグの順に優先度が上がる
			changed := map[string]bool{}
			cmd.Flags().Visit(func(f *pflag.Flag) { changed[f.Name] = true })

			cfgFile := cfgPath
			if cfgFile == "" {
				cfgFile = config.DefaultConfigPath()
			}
			if cfgFile != "" && (cfgPath != "" || config.FileExists(cfgFile)) {
				fc, err := config.LoadFileConfig(cfgFile)
				if err != nil {
					return fmt.Errorf("load config: %w", err)
				}
				config.ApplyFileConfig(&cfg, fc, changed)
			}
			config.ApplyEnvConfig(&cfg, changed)

			if err := cfg.Validate(); err != nil {
				return err
			}

			logger, err := logging.New(stderr, cfg.LogFormat, cfg.LogLevel)
			if err != nil {
				return err
			}

			if cfg.Pick != config.PickNone {
				if err := pickDirectories(&cfg, logger); err != nil {
					logger.Log("ERROR", "フォルダ選択に失敗", err)
					return err
				}
			}
			logger.Log("DEBUG", "configuration", nil, logging.Field{Key: "config", Value: cfg})

			summary, err := combine.New(combine.Options{
				Root:             cfg.Root,
				Output:           cfg.Output,
				Extensions:       cfg.Extensions,
				Order:            cfg.Order,
				RespectGitignore: cfg.RespectGitignore,
				Excludes:         cfg.Excludes,
			}, logger).Run(cmd.Context())
			if err != nil {
				return err
			}

			ui.NewSummaryPrinter(stdout).Print(summary)
			return nil
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&cfgPath, "config", "", "path to a TOML or YAML config file (default: $HOME/.foldercombine/config.toml)")
	flags.StringVar(&cfg.Root, "root", cfg.Root, "directory to scan")
	flags.StringVarP(&cfg.Output, "output", "o", cfg.Output, "file to write the combined contents to")
	flags.StringSliceVar(&cfg.Extensions, "ext", cfg.Extensions, "recognized text-file suffixes (case-insensitive)")
	flags.StringVar(&cfg.Order, "sort", cfg.Order, `emission order: "walk" (directory order) or "path" (sorted relative path)`)
	flags.BoolVar(&cfg.RespectGitignore, "gitignore", cfg.RespectGitignore, "skip paths matched by the root .gitignore and the .git directory")
	flags.StringSliceVar(&cfg.Excludes, "exclude", cfg.Excludes, "additional gitignore-style patterns to skip")
	flags.StringVar(&cfg.LogFormat, "log-format", cfg.LogFormat, `log format: "console" or "json"`)
	flags.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "minimum log level (debug, info, warn, error)")
	flags.StringVar(&cfg.Pick, "pick", cfg.Pick, `choose the root and output folders in a dialog: "fyne" or "native"`)

	return cmd
}

// pickDirectories はダイアログで選ばれたフォルダを設定に反映します。
// 出力ファイル名は --output のファイル名部分を引き継ぎます
func pickDirectories(cfg *config.Config, logger logging.Logger) error {
	validator := filesystem.NewScanner(logger)

	var (
		paths *model.DirectoryPaths
		err   error
	)
	switch cfg.Pick {
	case config.PickFyne:
		paths, err = gui.NewDirectorySelector(validator).SelectDirectories()
	case config.PickNative:
		paths, err = ui.NewDirectorySelector(validator).SelectDirectories()
	default:
		return fmt.Errorf("unknown picker %q", cfg.Pick)
	}
	if err != nil {
		return err
	}

	applyPickedPaths(cfg, paths)
	logger.Log("INFO", fmt.Sprintf("選択されたフォルダ - 走査対象: %s, 出力先: %s", paths.Source, paths.Output), nil)
	return nil
}

func applyPickedPaths(cfg *config.Config, paths *model.DirectoryPaths) {
	cfg.Root = paths.Source
	cfg.Output = filepath.Join(paths.Output, filepath.Base(cfg.Output))
}
