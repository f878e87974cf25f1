package views

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/tgienger/kanban/internal/board"
	"github.com/tgienger/kanban/internal/models"
	"github.com/tgienger/kanban/internal/ui/keys"
	"github.com/tgienger/kanban/internal/ui/styles"
)

type boardMode int

const (
	modeNormal boardMode = iota
	modeCardForm
	modeColumnForm
	modeBoardForm
	modeConfirm
	modeDetail
	modeHelp
)

type confirmKind int

const (
	confirmCard confirmKind = iota
	confirmColumn
)

type confirmation struct {
	kind  confirmKind
	id    string
	name  string
	cards int
}

// grab is a card picked up for moving. The column cursor picks the target.
type grab struct {
	cardID   string
	columnID string
}

const (
	minColumnWidth = 24
	maxColumnWidth = 34
	cardHeight     = 3 // two lines plus margin
)

// BoardView shows the columns and cards of the current board
type BoardView struct {
	session *Session
	styles  *styles.Styles
	keys    keys.KeyMap

	width  int
	height int

	// Cursor
	col     int
	row     int
	scrollX int

	mode     boardMode
	grabbed  *grab
	confirm  confirmation
	detailID string
	// reopen the card detail after the edit form closes
	backToDetail bool

	cardForm   cardForm
	columnForm columnForm
	boardForm  boardForm

	markdown markdownRenderer
}

// NewBoardView creates the board screen
func NewBoardView(session *Session) *BoardView {
	return &BoardView{
		session:    session,
		styles:     styles.NewStyles(),
		keys:       keys.DefaultKeyMap(),
		cardForm:   newCardForm(),
		columnForm: newColumnForm(),
		boardForm:  newBoardForm(),
	}
}

// Reset returns the view to its initial state for a newly opened board
func (v *BoardView) Reset() {
	v.col, v.row, v.scrollX = 0, 0, 0
	v.mode = modeNormal
	v.grabbed = nil
	v.detailID = ""
	v.backToDetail = false
}

// Grabbed reports the card currently picked up for moving, if any
func (v *BoardView) Grabbed() (cardID string, ok bool) {
	if v.grabbed == nil {
		return "", false
	}
	return v.grabbed.cardID, true
}

func (v *BoardView) Init() tea.Cmd {
	return nil
}

func (v *BoardView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.width = msg.Width
		v.height = msg.Height
		return v, nil

	case tea.KeyMsg:
		b, _ := v.session.State.CurrentBoard()
		v.clampCursor(b)

		switch v.mode {
		case modeHelp:
			v.mode = modeNormal
			return v, nil
		case modeConfirm:
			return v.updateConfirm(msg)
		case modeCardForm:
			return v.updateCardForm(msg)
		case modeColumnForm:
			return v.updateColumnForm(msg)
		case modeBoardForm:
			return v.updateBoardForm(msg, b)
		case modeDetail:
			return v.updateDetail(msg, b)
		}
		return v.updateNormal(msg, b)
	}
	return v, nil
}

func (v *BoardView) updateNormal(msg tea.KeyMsg, b models.Board) (tea.Model, tea.Cmd) {
	_, loaded := v.session.State.CurrentBoard()

	switch {
	case key.Matches(msg, v.keys.Quit):
		return v, tea.Quit
	case key.Matches(msg, v.keys.Help):
		v.mode = modeHelp
		return v, nil
	case key.Matches(msg, v.keys.Dismiss):
		v.session.Dismiss()
		return v, nil
	case key.Matches(msg, v.keys.Reload):
		v.grabbed = nil
		return v, v.reload()
	case key.Matches(msg, v.keys.Back):
		if v.grabbed != nil {
			v.grabbed = nil
			return v, nil
		}
		return v, func() tea.Msg { return BackToBoards{} }
	case key.Matches(msg, v.keys.Left):
		if v.col > 0 {
			v.col--
			v.row = 0
		}
		return v, nil
	case key.Matches(msg, v.keys.Right):
		if v.col < len(b.Columns)-1 {
			v.col++
			v.row = 0
		}
		return v, nil
	case key.Matches(msg, v.keys.Up):
		if v.grabbed == nil && v.row > 0 {
			v.row--
		}
		return v, nil
	case key.Matches(msg, v.keys.Down):
		if c, ok := v.selectedColumn(b); ok && v.grabbed == nil && v.row < len(c.Cards)-1 {
			v.row++
		}
		return v, nil
	case key.Matches(msg, v.keys.Enter) && v.grabbed == nil:
		if card, ok := v.selectedCard(b); ok {
			v.mode = modeDetail
			v.detailID = card.ID
		}
		return v, nil
	}

	// Everything below changes the board
	if !loaded || v.session.Busy() {
		return v, nil
	}

	switch {
	case key.Matches(msg, v.keys.Grab):
		if v.grabbed != nil {
			return v, v.drop(b)
		}
		if card, ok := v.selectedCard(b); ok {
			v.grabbed = &grab{cardID: card.ID, columnID: card.ColumnID}
		}
		return v, nil

	case key.Matches(msg, v.keys.Enter):
		return v, v.drop(b)
	}

	if v.grabbed != nil {
		return v, nil
	}

	switch {
	case key.Matches(msg, v.keys.AddColumn):
		v.mode = modeColumnForm
		v.columnForm.open(nil)
	case key.Matches(msg, v.keys.RenameColumn):
		if c, ok := v.selectedColumn(b); ok {
			v.mode = modeColumnForm
			v.columnForm.open(&c)
		}
	case key.Matches(msg, v.keys.DeleteColumn):
		if c, ok := v.selectedColumn(b); ok {
			v.mode = modeConfirm
			v.confirm = confirmation{kind: confirmColumn, id: c.ID, name: c.Title, cards: len(c.Cards)}
		}
	case key.Matches(msg, v.keys.New):
		if c, ok := v.selectedColumn(b); ok {
			v.mode = modeCardForm
			v.backToDetail = false
			v.cardForm.openNew(c.ID)
		}
	case key.Matches(msg, v.keys.Edit):
		if card, ok := v.selectedCard(b); ok {
			v.mode = modeCardForm
			v.backToDetail = false
			v.cardForm.openEdit(card)
		}
	case key.Matches(msg, v.keys.Delete):
		if card, ok := v.selectedCard(b); ok {
			v.mode = modeConfirm
			v.confirm = confirmation{kind: confirmCard, id: card.ID, name: card.Title}
		}
	case key.Matches(msg, v.keys.EditBoard):
		v.mode = modeBoardForm
		v.boardForm.open(&b)
	}
	return v, nil
}

// drop moves the grabbed card to the column under the cursor
func (v *BoardView) drop(b models.Board) tea.Cmd {
	g := *v.grabbed
	v.grabbed = nil

	dst, ok := v.selectedColumn(b)
	if !ok || dst.ID == g.columnID {
		return nil
	}
	// the card lands at the end of the target column
	v.row = len(dst.Cards)

	sync, dstID := v.session.Sync, dst.ID
	return v.session.Run(func(ctx context.Context) board.Transition {
		return sync.MoveCard(ctx, g.cardID, g.columnID, dstID)
	})
}

func (v *BoardView) reload() tea.Cmd {
	sync, id := v.session.Sync, v.session.State.CurrentID
	if id == "" {
		return nil
	}
	return v.session.Run(func(ctx context.Context) board.Transition {
		return sync.LoadBoard(ctx, id)
	})
}

func (v *BoardView) updateConfirm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y":
		v.mode = modeNormal
		sync, c := v.session.Sync, v.confirm
		return v, v.session.Run(func(ctx context.Context) board.Transition {
			if c.kind == confirmColumn {
				return sync.DeleteColumn(ctx, c.id)
			}
			return sync.DeleteCard(ctx, c.id)
		})
	case "n", "N", "esc":
		v.mode = modeNormal
	}
	return v, nil
}

func (v *BoardView) updateCardForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	result, cmd := v.cardForm.update(msg, v.keys)
	switch result {
	case formCancelled:
		v.closeCardForm()
		return v, nil
	case formSubmitted:
		v.closeCardForm()
		sync, in := v.session.Sync, v.cardForm.input()
		id, columnID := v.cardForm.editID, v.cardForm.columnID
		return v, v.session.Run(func(ctx context.Context) board.Transition {
			if id == "" {
				return sync.CreateCard(ctx, columnID, in)
			}
			return sync.UpdateCard(ctx, id, in)
		})
	}
	return v, cmd
}

func (v *BoardView) closeCardForm() {
	v.mode = modeNormal
	if v.backToDetail {
		v.mode = modeDetail
		v.backToDetail = false
	}
}

func (v *BoardView) updateColumnForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	result, cmd := v.columnForm.update(msg, v.keys)
	switch result {
	case formCancelled:
		v.mode = modeNormal
		return v, nil
	case formSubmitted:
		v.mode = modeNormal
		sync, title := v.session.Sync, v.columnForm.value()
		id, boardID := v.columnForm.editID, v.session.State.CurrentID
		return v, v.session.Run(func(ctx context.Context) board.Transition {
			if id == "" {
				return sync.CreateColumn(ctx, boardID, title)
			}
			return sync.RenameColumn(ctx, id, title)
		})
	}
	return v, cmd
}

func (v *BoardView) updateBoardForm(msg tea.KeyMsg, b models.Board) (tea.Model, tea.Cmd) {
	result, cmd := v.boardForm.update(msg, v.keys)
	switch result {
	case formCancelled:
		v.mode = modeNormal
		return v, nil
	case formSubmitted:
		v.mode = modeNormal
		title, desc := v.boardForm.values()
		sync, id := v.session.Sync, b.ID
		return v, v.session.Run(func(ctx context.Context) board.Transition {
			return sync.UpdateBoard(ctx, id, title, desc)
		})
	}
	return v, cmd
}

func (v *BoardView) updateDetail(msg tea.KeyMsg, b models.Board) (tea.Model, tea.Cmd) {
	card, ok := cardByID(b, v.detailID)
	if !ok {
		v.mode = modeNormal
		return v, nil
	}

	switch {
	case key.Matches(msg, v.keys.Quit):
		return v, tea.Quit
	case key.Matches(msg, v.keys.Back):
		v.mode = modeNormal
	case key.Matches(msg, v.keys.Dismiss):
		v.session.Dismiss()
	case v.session.Busy():
	case key.Matches(msg, v.keys.Edit):
		v.mode = modeCardForm
		v.backToDetail = true
		v.cardForm.openEdit(card)
	case key.Matches(msg, v.keys.Delete):
		v.mode = modeConfirm
		v.confirm = confirmation{kind: confirmCard, id: card.ID, name: card.Title}
	}
	return v, nil
}

func (v *BoardView) selectedColumn(b models.Board) (models.Column, bool) {
	if v.col < 0 || v.col >= len(b.Columns) {
		return models.Column{}, false
	}
	return b.Columns[v.col], true
}

func (v *BoardView) selectedCard(b models.Board) (models.Card, bool) {
	c, ok := v.selectedColumn(b)
	if !ok || v.row < 0 || v.row >= len(c.Cards) {
		return models.Card{}, false
	}
	return c.Cards[v.row], true
}

func cardByID(b models.Board, id string) (models.Card, bool) {
	col, i := board.FindCard(b, id)
	if col < 0 {
		return models.Card{}, false
	}
	return b.Columns[col].Cards[i], true
}

// clampCursor keeps the cursor on the board after the tree changed
func (v *BoardView) clampCursor(b models.Board) {
	v.col = clamp(v.col, 0, max(len(b.Columns)-1, 0))
	rows := 0
	if v.col < len(b.Columns) {
		rows = len(b.Columns[v.col].Cards)
	}
	v.row = clamp(v.row, 0, max(rows-1, 0))

	if v.grabbed != nil {
		if _, ok := cardByID(b, v.grabbed.cardID); !ok {
			v.grabbed = nil
		}
	}
}

// View renders the view
func (v *BoardView) View() string {
	b, loaded := v.session.State.CurrentBoard()
	v.clampCursor(b)

	switch v.mode {
	case modeHelp:
		return v.renderHelpPopup()
	case modeConfirm:
		return v.renderConfirm()
	case modeCardForm:
		return v.cardForm.view(v.styles, v.width, v.height)
	case modeColumnForm:
		return v.columnForm.view(v.styles, v.width, v.height)
	case modeBoardForm:
		return v.boardForm.view(v.styles, v.width, v.height)
	case modeDetail:
		if card, ok := cardByID(b, v.detailID); ok {
			return v.renderDetail(card)
		}
	}

	if !loaded {
		if v.session.State.Loading {
			return v.styles.TitleMuted.Render("Loading board...")
		}
		return v.styles.TitleMuted.Render("The board could not be loaded. Press 'r' to retry or esc to go back.")
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		v.renderHeader(b),
		v.renderColumns(b),
		v.renderHelp(),
	)
}

func (v *BoardView) renderHeader(b models.Board) string {
	s := v.styles

	left := s.Title.Render(b.Title)
	if b.Description != "" {
		left += "  " + s.TitleMuted.Render(b.Description)
	}

	right := fmt.Sprintf("%d cards", b.CardCount())
	if v.session.State.Loading {
		right = "syncing… " + right
	}
	if v.grabbed != nil {
		right = "moving card • " + right
	}

	gap := max(v.width-lipgloss.Width(left)-lipgloss.Width(right)-4, 1)
	return s.StatusBar.Render(left + strings.Repeat(" ", gap) + s.TitleMuted.Render(right))
}

func (v *BoardView) columnWidth(n int) int {
	if n == 0 {
		return minColumnWidth
	}
	return clamp(v.width/n, minColumnWidth, maxColumnWidth)
}

// ensureVisible scrolls horizontally so the active column is on screen
func (v *BoardView) ensureVisible(visible int) {
	if v.col < v.scrollX {
		v.scrollX = v.col
	} else if v.col >= v.scrollX+visible {
		v.scrollX = v.col - visible + 1
	}
}

func (v *BoardView) renderColumns(b models.Board) string {
	if len(b.Columns) == 0 {
		return v.styles.TitleMuted.Padding(1, 2).Render("No columns yet. Press 'a' to add one.")
	}

	width := v.columnWidth(len(b.Columns))
	visible := max(v.width/width, 1)
	v.ensureVisible(visible)

	end := min(v.scrollX+visible, len(b.Columns))
	rendered := make([]string, 0, end-v.scrollX)
	for i := v.scrollX; i < end; i++ {
		rendered = append(rendered, v.renderColumn(b.Columns[i], i, width))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, rendered...)
}

func (v *BoardView) renderColumn(c models.Column, idx, width int) string {
	s := v.styles
	active := idx == v.col

	style := s.Column
	switch {
	case active && v.grabbed != nil && v.grabbed.columnID != c.ID:
		style = s.ColumnTarget
	case active:
		style = s.ColumnActive
	}
	inner := width - 4

	header := s.ColumnHeader.Render(truncate(fmt.Sprintf("%s (%d)", c.Title, len(c.Cards)), inner))

	maxCards := max((v.height-10)/cardHeight, 1)
	start := 0
	if active && v.row >= maxCards {
		start = v.row - maxCards + 1
	}
	end := min(start+maxCards, len(c.Cards))

	lines := []string{header}
	if start > 0 {
		lines = append(lines, s.TitleMuted.Render(fmt.Sprintf("↑ %d more", start)))
	}
	for i := start; i < end; i++ {
		lines = append(lines, v.renderCard(c.Cards[i], active && i == v.row, inner))
	}
	if end < len(c.Cards) {
		lines = append(lines, s.TitleMuted.Render(fmt.Sprintf("↓ %d more", len(c.Cards)-end)))
	}
	if len(c.Cards) == 0 {
		lines = append(lines, s.TitleMuted.Render("(empty)"))
	}

	return style.Width(width - 2).Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

func (v *BoardView) renderCard(card models.Card, selected bool, width int) string {
	s := v.styles

	style := s.Card
	switch {
	case v.grabbed != nil && v.grabbed.cardID == card.ID:
		style = s.CardGrabbed
	case selected && v.grabbed == nil:
		style = s.CardActive
	}

	meta := styles.StatusBadge(card.Status)
	if card.DueDate.IsSet() {
		meta += " " + s.CardDue.Render("due "+card.DueDate.Format("2 Jan"))
	}

	return style.Width(width).Render(lipgloss.JoinVertical(lipgloss.Left,
		truncate(card.Title, width-2),
		meta,
	))
}

// truncate shortens s to width cells
func truncate(s string, width int) string {
	if width <= 1 || lipgloss.Width(s) <= width {
		return s
	}
	r := []rune(s)
	for len(r) > 0 && lipgloss.Width(string(r)) > width-1 {
		r = r[:len(r)-1]
	}
	return string(r) + "…"
}

func (v *BoardView) renderHelp() string {
	s := v.styles
	if v.grabbed != nil {
		return s.Help.Render(
			fmt.Sprintf("%s pick column • %s drop • %s cancel",
				s.HelpKey.Render("←/→"),
				s.HelpKey.Render("space"),
				s.HelpKey.Render("esc"),
			),
		)
	}

	contentWidth := styles.ContentWidth(v.width)
	if contentWidth > 0 && contentWidth < 60 {
		return s.Help.Render(s.HelpKey.Render("?") + " help")
	}
	return s.Help.Render(
		fmt.Sprintf("%s new card • %s move • %s details • %s add column • %s boards • %s help",
			s.HelpKey.Render("n"),
			s.HelpKey.Render("space"),
			s.HelpKey.Render("↵"),
			s.HelpKey.Render("a"),
			s.HelpKey.Render("esc"),
			s.HelpKey.Render("?"),
		),
	)
}

func (v *BoardView) renderHelpPopup() string {
	s := v.styles

	helpItems := []string{
		s.HelpKey.Render("←↓↑→") + "   navigate (hjkl)",
		s.HelpKey.Render("n") + "      new card",
		s.HelpKey.Render("e") + "      edit card",
		s.HelpKey.Render("d") + "      delete card",
		s.HelpKey.Render("↵") + "      card details",
		s.HelpKey.Render("space") + "  grab card, then drop on another column",
		s.HelpKey.Render("a") + "      add column",
		s.HelpKey.Render("R") + "      rename column",
		s.HelpKey.Render("X") + "      delete column",
		s.HelpKey.Render("B") + "      edit board",
		s.HelpKey.Render("r") + "      reload board",
		s.HelpKey.Render("x") + "      dismiss message",
		s.HelpKey.Render("esc") + "    back to boards",
		s.HelpKey.Render("q") + "      quit",
		"",
		s.TitleMuted.Render("Press any key to close"),
	}

	content := lipgloss.JoinVertical(lipgloss.Left,
		append([]string{s.Title.Render("Keyboard Shortcuts"), ""}, helpItems...)...,
	)
	return placeForm(s.FilterBar.Render(content), v.width, v.height)
}

func (v *BoardView) renderConfirm() string {
	s := v.styles

	heading := "Delete Card?"
	detail := ""
	if v.confirm.kind == confirmColumn {
		heading = "Delete Column?"
		if v.confirm.cards > 0 {
			detail = fmt.Sprintf("Its %d cards are deleted with it.", v.confirm.cards)
		}
	}

	rows := []string{
		s.Title.Foreground(styles.Current.Error).Render(heading),
		"",
		s.TitleMuted.Render(fmt.Sprintf("Are you sure you want to delete %q?", v.confirm.name)),
	}
	if detail != "" {
		rows = append(rows, s.TitleMuted.Render(detail))
	}
	rows = append(rows,
		"",
		lipgloss.JoinHorizontal(lipgloss.Center,
			s.ButtonPrimary.Render(" Y - Yes "),
			"  ",
			s.Button.Render(" N - No "),
		),
	)
	return placeForm(lipgloss.JoinVertical(lipgloss.Center, rows...), v.width, v.height)
}
