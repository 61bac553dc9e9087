// Package filter は出力対象ファイルの判定機能を提供します
package filter

import (
	"path/filepath"
	"strings"
)

// DefaultExtensions は既定で出力対象とするテキストファイルの接尾辞です
var DefaultExtensions = []string{".vue", ".js", ".ts", ".css", ".scss", ".html", ".json", ".md", ".txt"}

// ExtensionFilter はファイル名の接尾辞でファイルを判定します
type ExtensionFilter struct {
	suffixes []string
}

// NewExtensionFilter は接尾辞の一覧から ExtensionFilter を作成します。
// 各接尾辞は小文字化され、先頭にドットがなければ補われます
func NewExtensionFilter(exts []string) *ExtensionFilter {
	f := &ExtensionFilter{}
	for _, e := range exts {
		e = strings.ToLower(strings.TrimSpace(e))
		if e == "" {
			continue
		}
		if !strings.HasPrefix(e, ".") {
			e = "." + e
		}
		f.suffixes = append(f.suffixes, e)
	}
	return f
}

// Accept はファイル名が登録済みの接尾辞のいずれかで終わるかを大文字小文字を区別せずに判定します。
// 拡張子の解析は行わないため archive.tar.js は .js に一致します
func (f *ExtensionFilter) Accept(path string) bool {
	name := strings.ToLower(filepath.Base(path))
	for _, s := range f.suffixes {
		if strings.HasSuffix(name, s) {
			return true
		}
	}
	return false
}

// Suffixes は正規化済みの接尾辞を返します
func (f *ExtensionFilter) Suffixes() []string {
	out := make([]string, len(f.suffixes))
	copy(out, f.suffixes)
	return out
}
