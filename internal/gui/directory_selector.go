// Package gui は Fyne によるフォルダ選択を提供します
package gui

import (
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/dialog"

	"FolderCombine/internal/domain/model"
)

// Default window size constants
const (
	DefaultWindowWidth  = 800
	DefaultWindowHeight = 600
)

// DirectoryValidator は、ディレクトリパスの検証を行うインターフェース
type DirectoryValidator interface {
	ValidateDirectoryPath(path string) error
}

// DirectorySelector は、Fyneを使用してディレクトリ選択を行う構造体
type DirectorySelector struct {
	validator DirectoryValidator
	title     string
}

// NewDirectorySelector は、DirectorySelectorの新しいインスタンスを作成します
func NewDirectorySelector(validator DirectoryValidator) *DirectorySelector {
	return &DirectorySelector{
		validator: validator,
		title:     "FolderCombine",
	}
}

// SelectDirectories は、走査対象フォルダと出力先フォルダの選択を一括で行います。
// UI 操作はメインスレッド上で、コールバックを連鎖させる形で実現します。
func (s *DirectorySelector) SelectDirectories() (*model.DirectoryPaths, error) {
	a := app.New()
	w := a.NewWindow(s.title)
	w.Resize(fyne.NewSize(DefaultWindowWidth, DefaultWindowHeight))

	paths := &model.DirectoryPaths{}
	var currentError error

	finish := func(err error) {
		currentError = err
		w.Close()
		a.Quit()
	}

	// まず、走査対象フォルダの選択
	dialog.NewFolderOpen(func(sourceURI fyne.ListableURI, err error) {
		source, err := s.resolve("走査対象フォルダ", sourceURI, err)
		if err != nil {
			finish(err)
			return
		}
		paths.Source = source

		// 次に、出力先フォルダの選択
		dialog.NewFolderOpen(func(outputURI fyne.ListableURI, err error) {
			output, err := s.resolve("出力先フォルダ", outputURI, err)
			if err != nil {
				finish(err)
				return
			}
			paths.Output = output
			finish(nil)
		}, w).Show()
	}, w).Show()

	w.Show()
	a.Run()

	if currentError != nil {
		return nil, currentError
	}
	return paths, nil
}

func (s *DirectorySelector) resolve(label string, uri fyne.ListableURI, err error) (string, error) {
	if err != nil {
		return "", fmt.Errorf("%sの選択エラー: %w", label, err)
	}
	if uri == nil {
		return "", fmt.Errorf("%sの選択がキャンセルされました", label)
	}
	path := uri.Path()
	if err := s.validator.ValidateDirectoryPath(path); err != nil {
		return "", fmt.Errorf("%sが無効です: %w", label, err)
	}
	return path, nil
}
