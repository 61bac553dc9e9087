package ui

import (
	"io"
	"os"
	"sort"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"

	"FolderCombine/internal/domain/model"
)

// SummaryPrinter は実行結果を端末向けに表示します
type SummaryPrinter struct {
	out     io.Writer
	noColor bool
}

// NewSummaryPrinter は out が端末でない場合に色付けを無効にした SummaryPrinter を作成します
func NewSummaryPrinter(out io.Writer) *SummaryPrinter {
	colorOutput := false
	if f, ok := out.(*os.File); ok {
		colorOutput = isatty.IsTerminal(f.Fd())
	}
	return &SummaryPrinter{out: out, noColor: !colorOutput || color.NoColor}
}

func (p *SummaryPrinter) style(attrs ...color.Attribute) *color.Color {
	c := color.New(attrs...)
	if p.noColor {
		c.DisableColor()
	} else {
		c.EnableColor()
	}
	return c
}

// Print は出力先・結合件数・理由別の除外件数を表示します
func (p *SummaryPrinter) Print(s *model.Summary) {
	green := p.style(color.FgGreen, color.Bold)
	yellow := p.style(color.FgYellow)
	faint := p.style(color.Faint)

	green.Fprintf(p.out, "ファイルが %s に結合されました。\n", s.Output)
	faint.Fprintf(p.out, "  結合: %d\n", s.Included)

	reasons := make([]string, 0, len(s.Skipped))
	for r, n := range s.Skipped {
		if n > 0 {
			reasons = append(reasons, string(r))
		}
	}
	sort.Strings(reasons)
	for _, r := range reasons {
		yellow.Fprintf(p.out, "  スキップ (%s): %d\n", r, s.Skipped[model.SkipReason(r)])
	}
}
