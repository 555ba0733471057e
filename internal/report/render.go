package report

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// BorderTag is the presentation tag of the table borders.
const BorderTag = "cyan"

const (
	topRune       = "═"
	separatorRune = "─"
	auxIndent     = "    "
)

// =============================================================================
// STYLING
// =============================================================================

// Styler turns a presentation tag into terminal styling.
type Styler interface {
	// Cell styles text with the color of tag.
	Cell(text, tag string, bold bool) string
}

// PlainStyler emits text unchanged.
type PlainStyler struct{}

// Cell implements Styler.
func (PlainStyler) Cell(text, _ string, _ bool) string {
	return text
}

// tagColors maps presentation tags to ANSI palette entries.
var tagColors = map[string]lipgloss.Color{
	"green":   lipgloss.Color("10"),
	"cyan":    lipgloss.Color("14"),
	"magenta": lipgloss.Color("13"),
	"yellow":  lipgloss.Color("11"),
	"blue":    lipgloss.Color("12"),
	"gray":    lipgloss.Color("7"),
	"white":   lipgloss.Color("15"),
	"red":     lipgloss.Color("9"),
}

// LipglossStyler colors cells with lipgloss. Color support is detected from
// the output writer, so redirected output stays plain.
type LipglossStyler struct {
	renderer *lipgloss.Renderer
}

// NewLipglossStyler creates a styler for output written to w.
func NewLipglossStyler(w io.Writer) *LipglossStyler {
	return &LipglossStyler{renderer: lipgloss.NewRenderer(w)}
}

// Cell implements Styler.
func (s *LipglossStyler) Cell(text, tag string, bold bool) string {
	style := s.renderer.NewStyle().Bold(bold)
	if color, ok := tagColors[tag]; ok {
		style = style.Foreground(color)
	}
	return style.Render(text)
}

// =============================================================================
// RENDERING
// =============================================================================

// Renderer writes incidences as a bordered fixed-width table.
type Renderer struct {
	cfg    Config
	styler Styler
}

// NewRenderer creates a renderer. A nil styler renders plain text.
func NewRenderer(cfg Config, styler Styler) *Renderer {
	if styler == nil {
		styler = PlainStyler{}
	}
	return &Renderer{cfg: cfg.clone(), styler: styler}
}

// Render writes the report for incidences to w.
//
// LAYOUT:
//   ═══════════   top border
//   header row
//   ───────────   separator
//   row           one per incidence, followed by optional
//       Descripció: ...
//       Accions   : ...
//   ───────────   separator after every row
//   ═══════════   bottom border
//
// With no incidences, only the no-results message is written.
func (r *Renderer) Render(w io.Writer, incidences []Incidence) error {
	var buf bytes.Buffer

	if len(incidences) == 0 {
		buf.WriteString(r.cfg.NoResultsMessage + "\n")
		return write(w, buf.Bytes())
	}

	total := r.cfg.TotalWidth()
	top := strings.Repeat(topRune, total)
	sep := strings.Repeat(separatorRune, total)

	buf.WriteString(r.styler.Cell(top, BorderTag, true) + "\n")
	buf.WriteString(JoinCells(LayoutHeader(r.cfg.Columns), r.styler, true) + "\n")
	buf.WriteString(r.styler.Cell(sep, BorderTag, false) + "\n")

	for _, inc := range incidences {
		buf.WriteString(JoinCells(LayoutRow(inc, r.cfg.Columns), r.styler, false) + "\n")

		if inc.Description != "" {
			fmt.Fprintf(&buf, "%s%s: %s\n", auxIndent, r.cfg.DescriptionLabel, inc.Description)
		}
		if inc.Actions != "" {
			fmt.Fprintf(&buf, "%s%s: %s\n", auxIndent, r.cfg.ActionsLabel, inc.Actions)
		}

		buf.WriteString(sep + "\n")
	}

	buf.WriteString(r.styler.Cell(top, BorderTag, true) + "\n")

	return write(w, buf.Bytes())
}

func write(w io.Writer, data []byte) error {
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	return nil
}
