// Package ui はユーザーインターフェース機能を提供します
package ui

import (
	"fmt"

	"github.com/sqweek/dialog"

	"FolderCombine/internal/domain/model"
	"FolderCombine/internal/infrastructure/filesystem"
)

// browseFunc はタイトルを受け取りディレクトリを選ばせます
type browseFunc func(title string) (string, error)

func nativeBrowse(title string) (string, error) {
	return dialog.Directory().Title(title).Browse()
}

// DirectorySelector は OS ネイティブのダイアログでディレクトリ選択機能を提供します
type DirectorySelector struct {
	// validator はディレクトリパスの検証を行うインターフェースです
	validator filesystem.DirectoryValidator
	browse    browseFunc
}

// NewDirectorySelector は新しい DirectorySelector インスタンスを作成します
func NewDirectorySelector(validator filesystem.DirectoryValidator) *DirectorySelector {
	return &DirectorySelector{validator: validator, browse: nativeBrowse}
}

// SelectDirectory はダイアログを表示してディレクトリを選択します
func (d *DirectorySelector) SelectDirectory(title string) (string, error) {
	selectedDir, err := d.browse(title)
	if err != nil {
		return "", fmt.Errorf("ディレクトリの選択がキャンセルまたはエラーになりました: %w", err)
	}

	if err := d.validator.ValidateDirectoryPath(selectedDir); err != nil {
		return "", fmt.Errorf("無効なディレクトリが選択されました: %w", err)
	}

	return selectedDir, nil
}

// SelectDirectories は走査対象フォルダと出力先フォルダを順に選択します
func (d *DirectorySelector) SelectDirectories() (*model.DirectoryPaths, error) {
	source, err := d.SelectDirectory("走査対象フォルダを選択")
	if err != nil {
		return nil, err
	}
	output, err := d.SelectDirectory("出力先フォルダを選択")
	if err != nil {
		return nil, err
	}
	return &model.DirectoryPaths{Source: source, Output: output}, nil
}
