// Package present renders a diag.Bag to the terminal as rustc-style
// source snippets, grounded on miaomiao1992-dingo/pkg/errors/enhanced.go
// (the line-windowing and caret-underline layout) and its pkg/ui styles
// (lipgloss for color), with go-isatty deciding whether color is safe to
// emit at all — spec.md §6 only requires "pretty-printed diagnostics to
// stderr" plus an exact summary line; this is that pretty-printing.
package present

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"

	"github.com/nyxlang/nyxc/internal/diag"
)

var (
	styleError   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FF6B9D"))
	styleWarning = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#F7DC6F"))
	styleTitle   = lipgloss.NewStyle().Bold(true)
	styleLineNo  = lipgloss.NewStyle().Foreground(lipgloss.Color("#6C7086"))
	styleCaret   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#56C3F4"))
	styleNote    = lipgloss.NewStyle().Foreground(lipgloss.Color("#7F849C")).Italic(true)
)

// Renderer writes diagnostics against one source buffer. A fresh
// Renderer is cheap — cmd/nyxc's check builds one per compiled file.
type Renderer struct {
	source string
	lines  []string
	color  bool
}

// New builds a Renderer for source, auto-detecting color support from w
// (stderr, ordinarily) the way dingo's CLI decides whether to style its
// own output — color is force-disabled when w isn't a terminal, so
// redirected/piped output stays plain.
func New(source string, w io.Writer) *Renderer {
	color := false
	if f, ok := w.(fileDescriptor); ok {
		color = isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
	}
	return &Renderer{source: source, lines: strings.Split(source, "\n"), color: color}
}

type fileDescriptor interface {
	Fd() uintptr
}

// lineCol converts a byte offset into source into a 1-indexed line and
// column, the way enhanced.go's extractSourceLines works from a
// token.FileSet-resolved position instead.
func (r *Renderer) lineCol(offset int) (line, col int) {
	line = 1
	lineStart := 0
	for i := 0; i < offset && i < len(r.source); i++ {
		if r.source[i] == '\n' {
			line++
			lineStart = i + 1
		}
	}
	col = offset - lineStart + 1
	return line, col
}

func (r *Renderer) style(s lipgloss.Style, text string) string {
	if !r.color {
		return text
	}
	return s.Render(text)
}

// Render writes the single diagnostic d to w as a title line followed
// by one annotated source snippet per label, then its notes.
func (r *Renderer) Render(w io.Writer, d diag.Diagnostic) {
	sevStyle := styleWarning
	if d.Severity == diag.Error {
		sevStyle = styleError
	}
	fmt.Fprintf(w, "%s: %s\n", r.style(sevStyle, strings.ToUpper(d.Severity.String())), r.style(styleTitle, d.Title))

	for _, lbl := range d.Labels {
		r.renderLabel(w, lbl)
	}
	for _, note := range d.Notes {
		fmt.Fprintf(w, "  %s %s\n", r.style(styleNote, "note:"), r.style(styleNote, note))
	}
	fmt.Fprintln(w)
}

func (r *Renderer) renderLabel(w io.Writer, lbl diag.Label) {
	line, col := r.lineCol(lbl.Span.Start)
	idx := line - 1
	if idx < 0 || idx >= len(r.lines) {
		fmt.Fprintf(w, "  --> <offset %d>: %s\n", lbl.Span.Start, lbl.Message)
		return
	}

	width := lbl.Span.End - lbl.Span.Start
	if width < 1 {
		width = 1
	}

	fmt.Fprintf(w, "  --> line %d:%d\n", line, col)
	fmt.Fprintf(w, "  %s | %s\n", r.style(styleLineNo, fmt.Sprintf("%4d", line)), r.lines[idx])
	caret := strings.Repeat(" ", col-1) + strings.Repeat("^", width)
	fmt.Fprintf(w, "       | %s", r.style(styleCaret, caret))
	if lbl.Message != "" {
		fmt.Fprintf(w, " %s", lbl.Message)
	}
	fmt.Fprintln(w)
}

// Summary renders spec.md §6's required terminal line: "N diagnostic(s)
// total (W warning(s), E error(s))".
func Summary(w io.Writer, total, warnings, errors int) {
	fmt.Fprintf(w, "%d diagnostic(s) total (%d warning(s), %d error(s))\n", total, warnings, errors)
}
