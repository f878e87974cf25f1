package views

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/tgienger/kanban/internal/api"
	"github.com/tgienger/kanban/internal/models"
	"github.com/tgienger/kanban/internal/ui/keys"
	"github.com/tgienger/kanban/internal/ui/styles"
)

// clamp returns val clamped between minVal and maxVal
func clamp(val, minVal, maxVal int) int {
	if val < minVal {
		return minVal
	}
	if val > maxVal {
		return maxVal
	}
	return val
}

type formResult int

const (
	formOpen formResult = iota
	formSubmitted
	formCancelled
)

// placeForm centers a form within the content width, then in the terminal
func placeForm(form string, width, height int) string {
	contentWidth := styles.ContentWidth(width)
	centered := lipgloss.Place(contentWidth, height,
		lipgloss.Center, lipgloss.Center,
		form,
	)
	return styles.CenterView(centered, width, height)
}

// boardForm creates or edits a board
type boardForm struct {
	editID   string // empty when creating
	title    textinput.Model
	desc     textinput.Model
	focusIdx int // 0=title, 1=desc, 2=save
}

func newBoardForm() boardForm {
	title := textinput.New()
	title.Placeholder = "Board title"
	title.CharLimit = 100

	desc := textinput.New()
	desc.Placeholder = "Description (optional)"
	desc.CharLimit = 500

	return boardForm{title: title, desc: desc}
}

func (f *boardForm) open(b *models.Board) {
	f.editID = ""
	f.title.Reset()
	f.desc.Reset()
	if b != nil {
		f.editID = b.ID
		f.title.SetValue(b.Title)
		f.desc.SetValue(b.Description)
	}
	f.focusIdx = 0
	f.updateFocus()
}

func (f *boardForm) values() (title, description string) {
	return strings.TrimSpace(f.title.Value()), strings.TrimSpace(f.desc.Value())
}

func (f *boardForm) update(msg tea.KeyMsg, km keys.KeyMap) (formResult, tea.Cmd) {
	switch {
	case key.Matches(msg, km.Back):
		return formCancelled, nil
	case key.Matches(msg, km.Save):
		return formSubmitted, nil
	case msg.String() == "shift+tab":
		f.focusIdx = (f.focusIdx + 2) % 3
		f.updateFocus()
		return formOpen, nil
	case key.Matches(msg, km.Tab):
		f.focusIdx = (f.focusIdx + 1) % 3
		f.updateFocus()
		return formOpen, nil
	case key.Matches(msg, km.Enter):
		if f.focusIdx == 2 {
			return formSubmitted, nil
		}
		f.focusIdx++
		f.updateFocus()
		return formOpen, nil
	}

	var cmd tea.Cmd
	switch f.focusIdx {
	case 0:
		f.title, cmd = f.title.Update(msg)
	case 1:
		f.desc, cmd = f.desc.Update(msg)
	}
	return formOpen, cmd
}

func (f *boardForm) updateFocus() {
	f.title.Blur()
	f.desc.Blur()
	switch f.focusIdx {
	case 0:
		f.title.Focus()
	case 1:
		f.desc.Focus()
	}
}

func (f *boardForm) view(s *styles.Styles, width, height int) string {
	heading, button := "New Board", " Create "
	if f.editID != "" {
		heading, button = "Edit Board", " Save "
	}

	titleStyle, descStyle, btnStyle := s.Input, s.Input, s.Button
	switch f.focusIdx {
	case 0:
		titleStyle = s.InputFocused
	case 1:
		descStyle = s.InputFocused
	case 2:
		btnStyle = s.ButtonFocused
	}

	inputWidth := clamp(styles.ContentWidth(width)-6, 20, 50)

	form := lipgloss.JoinVertical(lipgloss.Left,
		s.Title.Render(heading),
		"",
		"Title:",
		titleStyle.Width(inputWidth).Render(f.title.View()),
		"",
		"Description:",
		descStyle.Width(inputWidth).Render(f.desc.View()),
		"",
		btnStyle.Render(button),
		"",
		s.TitleMuted.Render("Tab: next • Ctrl+S: save • Esc: cancel"),
	)
	return placeForm(form, width, height)
}

// columnForm adds or renames a column
type columnForm struct {
	editID   string
	title    textinput.Model
	focusIdx int // 0=title, 1=save
}

func newColumnForm() columnForm {
	title := textinput.New()
	title.Placeholder = "Column title"
	title.CharLimit = 100
	return columnForm{title: title}
}

func (f *columnForm) open(c *models.Column) {
	f.editID = ""
	f.title.Reset()
	if c != nil {
		f.editID = c.ID
		f.title.SetValue(c.Title)
	}
	f.focusIdx = 0
	f.title.Focus()
}

func (f *columnForm) value() string {
	return strings.TrimSpace(f.title.Value())
}

func (f *columnForm) update(msg tea.KeyMsg, km keys.KeyMap) (formResult, tea.Cmd) {
	switch {
	case key.Matches(msg, km.Back):
		return formCancelled, nil
	case key.Matches(msg, km.Save), key.Matches(msg, km.Enter):
		return formSubmitted, nil
	case key.Matches(msg, km.Tab), msg.String() == "shift+tab":
		f.focusIdx = 1 - f.focusIdx
		if f.focusIdx == 0 {
			f.title.Focus()
		} else {
			f.title.Blur()
		}
		return formOpen, nil
	}

	if f.focusIdx != 0 {
		return formOpen, nil
	}
	var cmd tea.Cmd
	f.title, cmd = f.title.Update(msg)
	return formOpen, cmd
}

func (f *columnForm) view(s *styles.Styles, width, height int) string {
	heading, button := "New Column", " Add "
	if f.editID != "" {
		heading, button = "Rename Column", " Save "
	}

	titleStyle, btnStyle := s.InputFocused, s.Button
	if f.focusIdx == 1 {
		titleStyle, btnStyle = s.Input, s.ButtonFocused
	}

	inputWidth := clamp(styles.ContentWidth(width)-6, 20, 50)

	form := lipgloss.JoinVertical(lipgloss.Left,
		s.Title.Render(heading),
		"",
		"Title:",
		titleStyle.Width(inputWidth).Render(f.title.View()),
		"",
		btnStyle.Render(button),
		"",
		s.TitleMuted.Render("↵: save • Esc: cancel"),
	)
	return placeForm(form, width, height)
}

const dueDateHint = "Due date must be a date like 2024-03-31"

// cardForm creates or edits a card
type cardForm struct {
	editID   string // empty when creating
	columnID string
	title    textinput.Model
	desc     textarea.Model
	status   models.Status
	due      textinput.Model
	focusIdx int // 0=title, 1=desc, 2=status, 3=due, 4=save
	err      string

	parsedDue *models.DueDate
}

func newCardForm() cardForm {
	title := textinput.New()
	title.Placeholder = "Card title"
	title.CharLimit = 200

	desc := textarea.New()
	desc.Placeholder = "Description (markdown)"
	desc.CharLimit = 5000
	desc.SetWidth(50)
	desc.SetHeight(5)
	desc.ShowLineNumbers = false

	due := textinput.New()
	due.Placeholder = models.InputLayout
	due.CharLimit = len(models.InputLayout)

	return cardForm{title: title, desc: desc, due: due, status: models.StatusTodo}
}

// openNew prepares the form for a new card in columnID
func (f *cardForm) openNew(columnID string) {
	f.editID = ""
	f.columnID = columnID
	f.title.Reset()
	f.desc.Reset()
	f.due.Reset()
	f.status = models.StatusTodo
	f.reset()
}

// openEdit prepares the form with an existing card
func (f *cardForm) openEdit(c models.Card) {
	f.editID = c.ID
	f.columnID = c.ColumnID
	f.title.SetValue(c.Title)
	f.desc.SetValue(c.Description)
	f.due.SetValue(c.DueDate.Input())
	f.status = c.Status.OrDefault()
	f.reset()
}

func (f *cardForm) reset() {
	f.err = ""
	f.parsedDue = nil
	f.focusIdx = 0
	f.updateFocus()
}

// input returns the values of a successfully submitted form
func (f *cardForm) input() api.CardInput {
	return api.CardInput{
		Title:       strings.TrimSpace(f.title.Value()),
		Description: strings.TrimSpace(f.desc.Value()),
		Status:      f.status,
		DueDate:     f.parsedDue,
	}
}

// submit validates the due date; an invalid one keeps the form open
func (f *cardForm) submit() formResult {
	due, err := models.ParseDueDate(f.due.Value())
	if err != nil {
		f.err = dueDateHint
		f.focusIdx = 3
		f.updateFocus()
		return formOpen
	}
	f.err = ""
	f.parsedDue = due
	return formSubmitted
}

func (f *cardForm) update(msg tea.KeyMsg, km keys.KeyMap) (formResult, tea.Cmd) {
	switch {
	case key.Matches(msg, km.Back):
		return formCancelled, nil

	case key.Matches(msg, km.Save):
		return f.submit(), nil

	case key.Matches(msg, km.Tab):
		f.focusIdx = (f.focusIdx + 1) % 5
		f.updateFocus()
		return formOpen, nil

	case msg.String() == "shift+tab":
		f.focusIdx = (f.focusIdx + 4) % 5
		f.updateFocus()
		return formOpen, nil

	case key.Matches(msg, km.Enter):
		// The description takes newlines
		if f.focusIdx == 1 {
			break
		}
		if f.focusIdx == 4 {
			return f.submit(), nil
		}
		f.focusIdx++
		f.updateFocus()
		return formOpen, nil

	case f.focusIdx == 2 && key.Matches(msg, km.Left):
		f.status = f.status.Prev()
		return formOpen, nil

	case f.focusIdx == 2 && key.Matches(msg, km.Right):
		f.status = f.status.Next()
		return formOpen, nil
	}

	var cmd tea.Cmd
	switch f.focusIdx {
	case 0:
		f.title, cmd = f.title.Update(msg)
	case 1:
		f.desc, cmd = f.desc.Update(msg)
	case 3:
		f.due, cmd = f.due.Update(msg)
		f.err = ""
	}
	return formOpen, cmd
}

func (f *cardForm) updateFocus() {
	f.title.Blur()
	f.desc.Blur()
	f.due.Blur()
	switch f.focusIdx {
	case 0:
		f.title.Focus()
	case 1:
		f.desc.Focus()
	case 3:
		f.due.Focus()
	}
}

func (f *cardForm) view(s *styles.Styles, width, height int) string {
	heading := "New Card"
	if f.editID != "" {
		heading = "Edit Card"
	}

	titleStyle, descStyle, statusStyle, dueStyle, btnStyle := s.Input, s.Input, s.Input, s.Input, s.Button
	switch f.focusIdx {
	case 0:
		titleStyle = s.InputFocused
	case 1:
		descStyle = s.InputFocused
	case 2:
		statusStyle = s.InputFocused
	case 3:
		dueStyle = s.InputFocused
	case 4:
		btnStyle = s.ButtonFocused
	}

	inputWidth := clamp(styles.ContentWidth(width)-6, 20, 50)
	f.desc.SetWidth(inputWidth)

	status := "‹ " + styles.StatusBadge(f.status) + " ›"

	rows := []string{
		s.Title.Render(heading),
		"",
		"Title:",
		titleStyle.Width(inputWidth).Render(f.title.View()),
		"",
		"Description:",
		descStyle.Render(f.desc.View()),
		"",
		"Status:",
		statusStyle.Render(status),
		"",
		"Due date (" + models.InputLayout + ", optional):",
		dueStyle.Width(20).Render(f.due.View()),
	}
	if f.err != "" {
		rows = append(rows, s.Title.Foreground(styles.Current.Error).Render(f.err))
	}
	rows = append(rows,
		"",
		btnStyle.Render(" Save "),
		"",
		s.TitleMuted.Render("Tab: next • ←→: status • Ctrl+S: save • Esc: cancel"),
	)

	return placeForm(lipgloss.JoinVertical(lipgloss.Left, rows...), width, height)
}
