package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	"github.com/tgienger/kanban/internal/models"
	"github.com/tgienger/kanban/internal/ui/styles"
)

// detailDateLayout is how due dates read on the card detail
const detailDateLayout = "2 January 2006"

// markdownRenderer renders card descriptions for the terminal. The glamour
// renderer is rebuilt only when the wrap width changes.
type markdownRenderer struct {
	r     *glamour.TermRenderer
	width int
}

func (m *markdownRenderer) renderer(width int) (*glamour.TermRenderer, error) {
	if m.r != nil && m.width == width {
		return m.r, nil
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle("dark"),
		glamour.WithWordWrap(width),
		glamour.WithPreservedNewLines(),
	)
	if err != nil {
		return nil, err
	}
	m.r, m.width = r, width
	return r, nil
}

// render falls back to plain wrapped text if glamour fails
func (m *markdownRenderer) render(body string, width int) string {
	r, err := m.renderer(width)
	if err != nil {
		return lipgloss.NewStyle().Width(width).Render(body)
	}
	out, err := r.Render(body)
	if err != nil {
		return lipgloss.NewStyle().Width(width).Render(body)
	}
	return strings.Trim(out, "\n")
}

func (v *BoardView) renderDetail(card models.Card) string {
	s := v.styles
	textWidth := clamp(styles.ContentWidth(v.width)-10, 20, 70)
	labelStyle := s.TitleMuted

	column := ""
	if b, ok := v.session.State.CurrentBoard(); ok {
		for _, c := range b.Columns {
			if c.ID == card.ColumnID {
				column = c.Title
			}
		}
	}

	due := s.TitleMuted.Render("No due date")
	if card.DueDate.IsSet() {
		due = card.DueDate.Format(detailDateLayout)
	}

	desc := s.TitleMuted.Render("No description")
	if strings.TrimSpace(card.Description) != "" {
		desc = v.markdown.render(card.Description, textWidth)
	}

	content := lipgloss.JoinVertical(lipgloss.Left,
		s.Title.MarginBottom(1).Render(card.Title),
		labelStyle.Render("Column"),
		column,
		"",
		labelStyle.Render("Status"),
		styles.StatusBadge(card.Status),
		"",
		labelStyle.Render("Due"),
		due,
		"",
		labelStyle.Render("Description"),
		desc,
		"",
		s.Help.Render(
			fmt.Sprintf("%s edit • %s delete • %s back",
				s.HelpKey.Render("e"),
				s.HelpKey.Render("d"),
				s.HelpKey.Render("esc"),
			),
		),
	)

	padded := lipgloss.NewStyle().Padding(1, 2).Render(content)
	return styles.CenterView(padded, v.width, v.height)
}
