// Package diag renders lowerr.Errors as rustc-style diagnostics: a
// severity tag, a source snippet with line numbers, and a caret run
// under the offending span. It plays the role of the teacher's
// pkg/errors/enhanced.go, rebuilt against koatlast.Span and
// pkg/linecol instead of go/token, and styled with the teacher's own
// pkg/ui palette instead of a second ad-hoc color scheme.
package diag

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/charmbracelet/lipgloss"

	"github.com/koatl-lang/koatl/pkg/config"
	"github.com/koatl-lang/koatl/pkg/linecol"
	"github.com/koatl-lang/koatl/pkg/lowerr"
)

var (
	colorError  = lipgloss.Color("#FF6B9D")
	colorMuted  = lipgloss.Color("#6C7086")
	colorBorder = lipgloss.Color("#45475A")
	colorLineNo = lipgloss.Color("#7F849C")
	colorCaret  = lipgloss.Color("#F7DC6F")

	styleKind    = lipgloss.NewStyle().Bold(true).Foreground(colorError)
	styleLoc     = lipgloss.NewStyle().Foreground(colorMuted).Italic(true)
	styleLineNo  = lipgloss.NewStyle().Foreground(colorLineNo)
	styleGutter  = lipgloss.NewStyle().Foreground(colorBorder)
	styleCaret   = lipgloss.NewStyle().Bold(true).Foreground(colorCaret)
	styleMessage = lipgloss.NewStyle()
)

// tag is the fatih/color severity prefix, kept distinct from the
// lipgloss body styling the same way rhysd-trygo/log.go keeps a
// fatih/color highlighter (hi/ftl/dbg) separate from its stdlib
// logger: one library marks a single short token, the other renders
// the surrounding structure.
var tag = color.New(color.FgRed, color.Bold)

// Renderer formats lowerr diagnostics against one source string.
type Renderer struct {
	source      string
	filename    string
	lines       *linecol.Cache
	rawLines    []string
	color       bool
	contextLine int
}

// NewRenderer builds a Renderer for source, named filename in
// rendered output (e.g. "<stdin>" or the path passed to the CLI).
func NewRenderer(source, filename string, cfg config.DiagnosticsConfig) *Renderer {
	return &Renderer{
		source:      source,
		filename:    filename,
		lines:       linecol.New(source),
		rawLines:    strings.Split(strings.ReplaceAll(source, "\r\n", "\n"), "\n"),
		color:       cfg.Color,
		contextLine: cfg.ContextLines,
	}
}

// Render formats one lowerr.Error as a multi-line rustc-style snippet.
func (r *Renderer) Render(e lowerr.Error) string {
	var buf strings.Builder

	line, col := r.lines.LineCol(e.Span.Start)
	length := e.Span.End - e.Span.Start
	if length < 1 {
		length = 1
	}

	if r.color {
		fmt.Fprintf(&buf, "%s %s\n", tag.Sprint("error["+e.Kind.String()+"]"), styleMessage.Render(e.Message))
	} else {
		fmt.Fprintf(&buf, "error[%s] %s\n", e.Kind.String(), e.Message)
	}

	loc := fmt.Sprintf("  --> %s:%d:%d", r.filename, line, col)
	if r.color {
		loc = styleLoc.Render(loc)
	}
	fmt.Fprintf(&buf, "%s\n", loc)

	start := line - r.contextLine
	if start < 1 {
		start = 1
	}
	end := line + r.contextLine
	if end > len(r.rawLines) {
		end = len(r.rawLines)
	}

	gutterWidth := len(fmt.Sprintf("%d", end))

	for n := start; n <= end; n++ {
		text := ""
		if n-1 < len(r.rawLines) {
			text = r.rawLines[n-1]
		}
		r.writeSourceLine(&buf, n, gutterWidth, text)
		if n == line {
			r.writeCaretLine(&buf, gutterWidth, col, length)
		}
	}

	return buf.String()
}

func (r *Renderer) writeSourceLine(buf *strings.Builder, n, gutterWidth int, text string) {
	numStr := fmt.Sprintf("%*d", gutterWidth, n)
	if r.color {
		fmt.Fprintf(buf, "%s %s %s\n", styleLineNo.Render(numStr), styleGutter.Render("|"), text)
	} else {
		fmt.Fprintf(buf, "%s | %s\n", numStr, text)
	}
}

func (r *Renderer) writeCaretLine(buf *strings.Builder, gutterWidth, col, length int) {
	pad := strings.Repeat(" ", gutterWidth)
	carets := strings.Repeat("^", length)
	indent := strings.Repeat(" ", max(col-1, 0))
	if r.color {
		fmt.Fprintf(buf, "%s %s %s%s\n", pad, styleGutter.Render("|"), indent, styleCaret.Render(carets))
	} else {
		fmt.Fprintf(buf, "%s | %s%s\n", pad, indent, carets)
	}
}

// RenderAll formats a full lowerr.Errors value, one snippet per
// error, in order, separated by a blank line.
func (r *Renderer) RenderAll(errs *lowerr.Errors) string {
	if errs == nil || len(*errs) == 0 {
		return ""
	}
	parts := make([]string, len(*errs))
	for i, e := range *errs {
		parts[i] = r.Render(e)
	}
	return strings.Join(parts, "\n")
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
