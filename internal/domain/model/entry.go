// package model はドメインモデルを定義します
package model

// Candidate は走査で見つかった通常ファイルを表します。
// 除外されたディレクトリは Dir を設定して渡されます
type Candidate struct {
	// Path はファイルの絶対パスを表します
	Path string
	// RelPath はルートディレクトリからの相対パスを表します
	RelPath string
	// Dir は除外されたディレクトリの場合に true です
	Dir bool
	// Skip は走査の段階で除外が決まった場合の理由です。空なら拡張子判定へ進みます
	Skip SkipReason
}

// SkipReason はファイルが出力から除外された理由です
type SkipReason string

const (
	ReasonExtension  SkipReason = "not a recognized text extension"
	ReasonDecode     SkipReason = "decode error"
	ReasonUnreadable SkipReason = "unreadable"
	ReasonSymlink    SkipReason = "symbolic link"
	ReasonIgnored    SkipReason = "ignored"
	ReasonOutputFile SkipReason = "output file"
)

// Summary は1回の実行結果を集計します
type Summary struct {
	Output   string
	Included int
	Skipped  map[SkipReason]int
}

// NewSummary は出力先を指定して空の Summary を作成します
func NewSummary(output string) *Summary {
	return &Summary{Output: output, Skipped: make(map[SkipReason]int)}
}

// Skip は除外理由ごとのカウンタを1つ進めます
func (s *Summary) Skip(reason SkipReason) {
	s.Skipped[reason]++
}

// TotalSkipped は全理由の除外件数の合計を返します
func (s *Summary) TotalSkipped() int {
	n := 0
	for _, c := range s.Skipped {
		n += c
	}
	return n
}

// DirectoryPaths はダイアログで選択されたディレクトリを保持します
type DirectoryPaths struct {
	Source string // 走査対象フォルダ
	Output string // 出力先フォルダ
}
