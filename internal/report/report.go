// Package report renders console output for a rewrite run: the detection
// table shown in debug mode and the before/after summary.
package report

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"

	"github.com/zxinyun/ai-humanizer-zh/internal/detector"
	"github.com/zxinyun/ai-humanizer-zh/internal/humanize"
)

const dividerWidth = 60

// Summary describes one finished rewrite
type Summary struct {
	Original    string
	Humanized   string
	Style       humanize.Style
	Variability humanize.Variability
	// OutputPath is set when the rewritten text went to a file instead of
	// the console.
	OutputPath string
}

// Styles holds the Lip Gloss styles used by a Printer
type Styles struct {
	Heading   lipgloss.Style
	Label     lipgloss.Style
	Divider   lipgloss.Style
	DeltaUp   lipgloss.Style
	DeltaDown lipgloss.Style
}

// DefaultStyles returns styles bound to renderer
func DefaultStyles(r *lipgloss.Renderer) Styles {
	return Styles{
		Heading:   r.NewStyle().Bold(true),
		Label:     r.NewStyle().Foreground(lipgloss.Color("242")),
		Divider:   r.NewStyle().Foreground(lipgloss.Color("62")),
		DeltaUp:   r.NewStyle().Foreground(lipgloss.Color("214")),
		DeltaDown: r.NewStyle().Foreground(lipgloss.Color("86")),
	}
}

// Printer writes reports to one destination. Colors are only emitted when
// the destination is a terminal.
type Printer struct {
	w      io.Writer
	styles Styles
}

// NewPrinter creates a printer for w
func NewPrinter(w io.Writer) *Printer {
	return &Printer{w: w, styles: DefaultStyles(lipgloss.NewRenderer(w))}
}

// LengthChange returns the relative length change in percent, counting
// characters. ok is false when the input is empty.
func LengthChange(in, out string) (pct float64, ok bool) {
	inLen := utf8.RuneCountInString(in)
	if inLen == 0 {
		return 0, false
	}
	outLen := utf8.RuneCountInString(out)
	return float64(outLen-inLen) / float64(inLen) * 100, true
}

// SignalLabel turns a signal name like ai_words into "Ai words"
func SignalLabel(name string) string {
	label := strings.ToLower(strings.ReplaceAll(name, "_", " "))
	if label == "" {
		return label
	}
	return strings.ToUpper(label[:1]) + label[1:]
}

// Detecting announces the debug detection pass
func (p *Printer) Detecting() error {
	_, err := fmt.Fprintln(p.w, "📊 正在检测AI写作模式...")
	return err
}

// Signals writes the detection table, one signal per line
func (p *Printer) Signals(r detector.Result) error {
	var b strings.Builder
	b.WriteString(p.styles.Heading.Render("📋 AI模式检测结果:"))
	b.WriteByte('\n')
	for _, s := range r.Signals() {
		fmt.Fprintf(&b, "  %s: %d\n", SignalLabel(s.Name), s.Count)
	}
	b.WriteByte('\n')
	_, err := io.WriteString(p.w, b.String())
	return err
}

// Processing announces the rewrite about to start
func (p *Printer) Processing(style humanize.Style, variability humanize.Variability) error {
	_, err := fmt.Fprintf(p.w, "✅ 正在处理文本（风格: %s, 变化程度: %s）...\n", style, variability)
	return err
}

// Summary writes either the saved-file notice or the rewritten text followed
// by length statistics.
func (p *Printer) Summary(s Summary) error {
	var b strings.Builder
	if s.OutputPath != "" {
		fmt.Fprintf(&b, "💾 处理后的文本已保存到 %s\n", s.OutputPath)
		_, err := io.WriteString(p.w, b.String())
		return err
	}

	divider := p.styles.Divider.Render(strings.Repeat("=", dividerWidth))
	b.WriteString("\n")
	b.WriteString(p.styles.Heading.Render("✨ 处理后的文本："))
	b.WriteString("\n" + divider + "\n")
	b.WriteString(s.Humanized)
	b.WriteString("\n" + divider + "\n\n")

	b.WriteString(p.styles.Heading.Render("📊 统计信息："))
	b.WriteByte('\n')
	fmt.Fprintf(&b, "  %s %d 字符\n", p.styles.Label.Render("原始文本长度:"), utf8.RuneCountInString(s.Original))
	fmt.Fprintf(&b, "  %s %d 字符\n", p.styles.Label.Render("处理后长度:"), utf8.RuneCountInString(s.Humanized))
	if pct, ok := LengthChange(s.Original, s.Humanized); ok {
		delta := p.styles.DeltaUp
		if pct < 0 {
			delta = p.styles.DeltaDown
		}
		fmt.Fprintf(&b, "  %s %s\n", p.styles.Label.Render("长度变化:"), delta.Render(FormatChange(pct)))
	}

	_, err := io.WriteString(p.w, b.String())
	return err
}

// FormatChange renders a percentage with an explicit sign and one decimal
func FormatChange(pct float64) string {
	return fmt.Sprintf("%+.1f%%", pct)
}

// Write renders s to w with default styles
func Write(w io.Writer, s Summary) error {
	return NewPrinter(w).Summary(s)
}

// Signals renders the detection table to w with default styles
func Signals(w io.Writer, r detector.Result) error {
	return NewPrinter(w).Signals(r)
}
