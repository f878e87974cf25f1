package views

import (
	"context"
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/tgienger/kanban/internal/board"
	"github.com/tgienger/kanban/internal/models"
	"github.com/tgienger/kanban/internal/ui/keys"
	"github.com/tgienger/kanban/internal/ui/styles"
)

type boardItem struct {
	board models.Board
}

func (i boardItem) Title() string       { return i.board.Title }
func (i boardItem) Description() string { return i.board.Description }
func (i boardItem) FilterValue() string { return i.board.Title }

type boardDelegate struct {
	styles *styles.Styles
	width  int
}

func (d boardDelegate) Height() int                               { return 2 }
func (d boardDelegate) Spacing() int                              { return 1 }
func (d boardDelegate) Update(msg tea.Msg, m *list.Model) tea.Cmd { return nil }

func (d boardDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	b, ok := item.(boardItem)
	if !ok {
		return
	}

	selected := index == m.Index()
	width := max(d.width-4, 20)

	var titleStyle, descStyle lipgloss.Style
	if selected {
		titleStyle = d.styles.ListSelected.Width(width)
		descStyle = d.styles.ListSelected.Foreground(styles.Current.ForegroundDim).Width(width)
	} else {
		titleStyle = d.styles.ListItem.Width(width)
		descStyle = d.styles.ListItem.Foreground(styles.Current.ForegroundDim).Width(width)
	}

	fmt.Fprintf(w, "%s\n%s", titleStyle.Render(b.Title()), descStyle.Render(b.Description()))
}

// BoardListView lists the user's boards
type BoardListView struct {
	session  *Session
	list     list.Model
	delegate *boardDelegate
	styles   *styles.Styles
	keys     keys.KeyMap
	width    int
	height   int

	editing bool
	form    boardForm

	confirmingDelete bool
	deleteTargetID   string
	deleteTargetName string

	// Help popup (shown with ?)
	showHelpPopup bool
}

// NewBoardListView creates the board list
func NewBoardListView(session *Session) *BoardListView {
	s := styles.NewStyles()

	delegate := &boardDelegate{styles: s, width: 80}

	l := list.New([]list.Item{}, delegate, 0, 0)
	l.Title = "Boards"
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(true)
	l.Styles.Title = s.Title
	l.SetShowHelp(false)

	return &BoardListView{
		session:  session,
		list:     l,
		delegate: delegate,
		styles:   s,
		keys:     keys.DefaultKeyMap(),
		form:     newBoardForm(),
	}
}

// Sync refreshes the list items from the session state
func (v *BoardListView) Sync() tea.Cmd {
	boards := v.session.State.Boards
	items := make([]list.Item, len(boards))
	for i, b := range boards {
		items[i] = boardItem{board: b}
	}
	cmd := v.list.SetItems(items)
	for i, b := range boards {
		if b.ID == v.session.State.CurrentID {
			v.list.Select(i)
			break
		}
	}
	return cmd
}

func (v *BoardListView) Init() tea.Cmd {
	return nil
}

func (v *BoardListView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.width = msg.Width
		v.height = msg.Height
		contentWidth := styles.ContentWidth(msg.Width)
		v.delegate.width = contentWidth
		v.list.SetSize(contentWidth-4, msg.Height-8)
		return v, nil

	case tea.KeyMsg:
		if v.showHelpPopup {
			v.showHelpPopup = false
			return v, nil
		}

		if v.confirmingDelete {
			return v.updateConfirmDelete(msg)
		}

		if v.editing {
			return v.updateEditing(msg)
		}

		// Let the list own keys while its filter is being typed
		if v.list.FilterState() == list.Filtering {
			break
		}

		switch {
		case key.Matches(msg, v.keys.Quit):
			return v, tea.Quit
		case key.Matches(msg, v.keys.Back):
			// only q quits from the board list
			return v, nil
		case key.Matches(msg, v.keys.Help):
			v.showHelpPopup = true
			return v, nil
		case key.Matches(msg, v.keys.Dismiss):
			v.session.Dismiss()
			return v, nil
		case key.Matches(msg, v.keys.Reload):
			return v, v.reload()
		case key.Matches(msg, v.keys.Enter):
			if item, ok := v.list.SelectedItem().(boardItem); ok {
				id := item.board.ID
				return v, func() tea.Msg { return OpenBoard{ID: id} }
			}
			return v, nil
		}

		if v.session.Busy() {
			break
		}

		switch {
		case key.Matches(msg, v.keys.New):
			v.editing = true
			v.form.open(nil)
			return v, nil
		case key.Matches(msg, v.keys.Edit):
			if item, ok := v.list.SelectedItem().(boardItem); ok {
				v.editing = true
				v.form.open(&item.board)
			}
			return v, nil
		case key.Matches(msg, v.keys.Delete):
			if item, ok := v.list.SelectedItem().(boardItem); ok {
				v.confirmingDelete = true
				v.deleteTargetID = item.board.ID
				v.deleteTargetName = item.board.Title
			}
			return v, nil
		}
	}

	var cmd tea.Cmd
	v.list, cmd = v.list.Update(msg)
	return v, cmd
}

func (v *BoardListView) reload() tea.Cmd {
	sync, preferred := v.session.Sync, v.session.State.CurrentID
	if preferred == "" {
		preferred = v.session.Preferred
	}
	return v.session.Run(func(ctx context.Context) board.Transition {
		return sync.LoadBoards(ctx, preferred)
	})
}

func (v *BoardListView) updateConfirmDelete(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y":
		v.confirmingDelete = false
		sync, snapshot, id := v.session.Sync, *v.session.State, v.deleteTargetID
		return v, v.session.Run(func(ctx context.Context) board.Transition {
			return sync.DeleteBoard(ctx, snapshot, id)
		})
	case "n", "N", "esc":
		v.confirmingDelete = false
	}
	return v, nil
}

func (v *BoardListView) updateEditing(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	result, cmd := v.form.update(msg, v.keys)
	switch result {
	case formCancelled:
		v.editing = false
		return v, nil
	case formSubmitted:
		v.editing = false
		title, desc := v.form.values()
		sync, id := v.session.Sync, v.form.editID
		if title == "" {
			return v, nil
		}
		if id == "" {
			return v, v.session.RunThenOpen(func(ctx context.Context) board.Transition {
				return sync.CreateBoard(ctx, title, desc)
			})
		}
		return v, v.session.Run(func(ctx context.Context) board.Transition {
			return sync.UpdateBoard(ctx, id, title, desc)
		})
	}
	return v, cmd
}

// View renders the view
func (v *BoardListView) View() string {
	if v.showHelpPopup {
		return v.renderHelpPopup()
	}

	if v.confirmingDelete {
		return v.renderDeleteConfirm()
	}

	if v.editing {
		return v.form.view(v.styles, v.width, v.height)
	}

	state := v.session.State
	if !state.Loaded {
		if state.Loading {
			return v.styles.TitleMuted.Render("Loading...")
		}
		return v.styles.TitleMuted.Render("Boards could not be loaded. Press 'r' to retry.")
	}

	if !state.HasBoards() {
		return v.renderEmpty()
	}

	content := v.list.View() + "\n" + v.renderHelp()
	return styles.CenterView(content, v.width, v.height)
}

func (v *BoardListView) renderEmpty() string {
	s := v.styles

	content := lipgloss.JoinVertical(lipgloss.Center,
		s.Title.Render("No boards yet"),
		"",
		s.TitleMuted.Render("Press 'n' to create your first board"),
		"",
		s.ButtonPrimary.Render(" New Board "),
	)
	return placeForm(content, v.width, v.height)
}

func (v *BoardListView) renderHelp() string {
	contentWidth := styles.ContentWidth(v.width)
	if contentWidth > 0 && contentWidth < 50 {
		return v.styles.Help.Render(v.styles.HelpKey.Render("?") + " help")
	}
	return v.styles.Help.Render(
		fmt.Sprintf("%s open • %s new • %s edit • %s del • %s quit",
			v.styles.HelpKey.Render("↵"),
			v.styles.HelpKey.Render("n"),
			v.styles.HelpKey.Render("e"),
			v.styles.HelpKey.Render("d"),
			v.styles.HelpKey.Render("q"),
		),
	)
}

func (v *BoardListView) renderHelpPopup() string {
	s := v.styles

	helpItems := []string{
		s.HelpKey.Render("↵") + "      open board",
		s.HelpKey.Render("n") + "      new board",
		s.HelpKey.Render("e") + "      edit board",
		s.HelpKey.Render("d") + "      delete board",
		s.HelpKey.Render("/") + "      filter",
		s.HelpKey.Render("r") + "      reload",
		s.HelpKey.Render("x") + "      dismiss message",
		s.HelpKey.Render("q") + "      quit",
		"",
		s.TitleMuted.Render("Press any key to close"),
	}

	content := lipgloss.JoinVertical(lipgloss.Left,
		append([]string{s.Title.Render("Keyboard Shortcuts"), ""}, helpItems...)...,
	)
	return placeForm(s.FilterBar.Render(content), v.width, v.height)
}

func (v *BoardListView) renderDeleteConfirm() string {
	s := v.styles

	content := lipgloss.JoinVertical(lipgloss.Center,
		s.Title.Foreground(styles.Current.Error).Render("Delete Board?"),
		"",
		s.TitleMuted.Render(fmt.Sprintf("Are you sure you want to delete %q?", v.deleteTargetName)),
		s.TitleMuted.Render("Its columns and cards are deleted with it."),
		"",
		lipgloss.JoinHorizontal(lipgloss.Center,
			s.ButtonPrimary.Render(" Y - Yes "),
			"  ",
			s.Button.Render(" N - No "),
		),
	)
	return placeForm(content, v.width, v.height)
}
