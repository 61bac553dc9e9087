// Package combine はディレクトリ走査・拡張子判定・結合出力を1回の実行としてまとめます
package combine

import (
	"context"
	"fmt"
	"strings"

	"FolderCombine/internal/domain/model"
	"FolderCombine/internal/infrastructure/filelock"
	"FolderCombine/internal/infrastructure/filesystem"
	"FolderCombine/internal/infrastructure/logging"
	"FolderCombine/internal/usecase/filter"
	"FolderCombine/internal/usecase/report"
)

// Options は1回の実行の設定です
type Options struct {
	Root             string
	Output           string
	Extensions       []string
	Order            string
	RespectGitignore bool
	Excludes         []string
}

// Combiner は走査・判定・出力を順に実行します
type Combiner struct {
	opts      Options
	logger    logging.Logger
	filter    *filter.ExtensionFilter
	generator *report.Generator
}

// New は Combiner を作成します
func New(opts Options, logger logging.Logger) *Combiner {
	return &Combiner{
		opts:      opts,
		logger:    logger,
		filter:    filter.NewExtensionFilter(opts.Extensions),
		generator: report.NewGenerator(),
	}
}

// Run はルートの検証、出力ファイルの作成、走査と書き込みをこの順で行います。
// ファイル単位のエラーはログに記録して集計するだけで、戻り値は致命的なエラーのみです
func (c *Combiner) Run(ctx context.Context) (summary *model.Summary, err error) {
	scanner := filesystem.NewScanner(c.logger,
		filesystem.WithOrder(c.opts.Order),
		filesystem.WithGitignore(c.opts.RespectGitignore),
		filesystem.WithExcludes(c.opts.Excludes...),
		filesystem.WithExcludedPaths(c.opts.Output, c.opts.Output+filelock.Suffix),
	)

	// 出力ファイルを作る前にルートを検証する
	root, err := scanner.ResolveRoot(c.opts.Root)
	if err == nil {
		err = scanner.ValidateDirectoryPath(root)
	}
	if err != nil {
		c.logger.Log("ERROR", "ルートディレクトリにアクセスできません", err)
		return nil, err
	}

	out, err := c.generator.CreateOutputFile(c.opts.Output)
	if err != nil {
		c.logger.Log("ERROR", "出力ファイルの作成に失敗", err)
		return nil, err
	}
	c.logger.Log("DEBUG", "出力ファイルを作成しました", nil,
		logging.String("root", root),
		logging.String("output", out.Name()),
		logging.String("lock", out.LockPath()),
		logging.String("extensions", strings.Join(c.filter.Suffixes(), ",")),
	)
	defer func() {
		if cerr := out.Close(); cerr != nil && err == nil {
			err = cerr
		}
		if err != nil {
			summary = nil
		}
	}()

	summary = model.NewSummary(c.opts.Output)
	err = scanner.Walk(ctx, root, func(cand model.Candidate) error {
		return c.process(out, cand, summary)
	})
	if err != nil {
		c.logger.Log("ERROR", "結合処理を中断しました", err)
		return nil, err
	}

	c.logger.Log("INFO", fmt.Sprintf("ファイルが %s に結合されました", c.opts.Output), nil,
		logging.String("output", c.opts.Output),
		logging.Int("included", summary.Included),
		logging.Int("skipped", summary.TotalSkipped()),
	)
	return summary, nil
}

func (c *Combiner) process(out *report.OutputFile, cand model.Candidate, summary *model.Summary) error {
	if cand.Skip != "" {
		c.skip(summary, cand.RelPath, cand.Skip, nil)
		return nil
	}

	if !c.filter.Accept(cand.RelPath) {
		c.skip(summary, cand.RelPath, model.ReasonExtension, nil)
		return nil
	}

	if err := c.generator.WriteEntry(out, cand); err != nil {
		if model.IsFatal(err) {
			return err
		}
		c.skip(summary, cand.RelPath, model.ReasonOf(err), err)
		return nil
	}

	summary.Included++
	return nil
}

func (c *Combiner) skip(summary *model.Summary, relPath string, reason model.SkipReason, err error) {
	summary.Skip(reason)

	level := "WARN"
	switch reason {
	case model.ReasonIgnored, model.ReasonOutputFile:
		level = "DEBUG"
	}
	c.logger.Log(level, fmt.Sprintf("スキップ: %s (%s)", relPath, reason), err,
		logging.String("path", relPath),
		logging.String("reason", string(reason)),
	)
}
