package ui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/tgienger/kanban/internal/board"
	"github.com/tgienger/kanban/internal/store"
	"github.com/tgienger/kanban/internal/ui/styles"
	"github.com/tgienger/kanban/internal/ui/views"
)

// Currently active view
type View int

const (
	ViewBoards View = iota
	ViewBoard
)

// Settings persists small pieces of UI state between runs
type Settings interface {
	GetSetting(key string) (string, error)
	SetSetting(key, value string) error
}

type App struct {
	state       board.State
	session     *views.Session
	settings    Settings
	logger      *zap.Logger
	styles      *styles.Styles
	currentView View
	boardList   *views.BoardListView
	boardView   *views.BoardView
	width       int
	height      int

	// open the current board once the first board list arrives
	autoOpen bool
}

// NewApp creates a new application
func NewApp(sync *board.Syncer, settings Settings, logger *zap.Logger) *App {
	if logger == nil {
		logger = zap.NewNop()
	}
	a := &App{
		settings:    settings,
		logger:      logger,
		styles:      styles.NewStyles(),
		currentView: ViewBoards,
		autoOpen:    true,
	}
	a.session = views.NewSession(context.Background(), &a.state, sync)
	a.boardList = views.NewBoardListView(a.session)
	a.boardView = views.NewBoardView(a.session)
	return a
}

// State returns a copy of the application state
func (a *App) State() board.State {
	return a.state
}

// CurrentView reports which screen is showing
func (a *App) CurrentView() View {
	return a.currentView
}

func (a *App) Init() tea.Cmd {
	// Reopen the last board if the server still has it
	preferred, err := a.settings.GetSetting(store.KeyLastBoardID)
	if err != nil {
		a.logger.Warn("reading last board", zap.Error(err))
	}
	a.session.Preferred = preferred

	sync := a.session.Sync
	return a.session.Run(func(ctx context.Context) board.Transition {
		return sync.LoadBoards(ctx, preferred)
	})
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		// Both views persist, keep both sized
		a.boardList.Update(a.innerSize())
		a.boardView.Update(a.innerSize())
		return a, nil

	case views.TransitionMsg:
		return a, a.apply(msg)

	case views.OpenBoard:
		a.state = a.state.Select(msg.ID)
		return a, a.openBoard()

	case views.BackToBoards:
		a.currentView = ViewBoards
		return a, a.boardList.Sync()
	}

	var cmd tea.Cmd
	switch a.currentView {
	case ViewBoards:
		_, cmd = a.boardList.Update(msg)
	case ViewBoard:
		_, cmd = a.boardView.Update(msg)
	}
	return a, cmd
}

// apply runs a finished remote operation against the state on the UI goroutine
func (a *App) apply(msg views.TransitionMsg) tea.Cmd {
	a.state = msg.Apply(a.state)
	cmds := []tea.Cmd{a.boardList.Sync()}

	switch {
	case a.autoOpen && a.state.Loaded:
		a.autoOpen = false
		if a.state.CurrentID != "" {
			cmds = append(cmds, a.openBoard())
		}
	case msg.OpenBoard && a.state.Err == "" && a.state.CurrentID != "":
		cmds = append(cmds, a.openBoard())
	case a.currentView == ViewBoard && a.state.CurrentID == "":
		a.currentView = ViewBoards
	case a.state.NeedsLoad() && a.currentView == ViewBoard:
		cmds = append(cmds, a.load())
	}

	a.saveCurrent()
	return tea.Batch(cmds...)
}

func (a *App) openBoard() tea.Cmd {
	if a.currentView != ViewBoard {
		a.boardView.Reset()
	}
	a.currentView = ViewBoard
	a.saveCurrent()
	if a.state.NeedsLoad() {
		return a.load()
	}
	return nil
}

func (a *App) load() tea.Cmd {
	sync, id := a.session.Sync, a.state.CurrentID
	return a.session.Run(func(ctx context.Context) board.Transition {
		return sync.LoadBoard(ctx, id)
	})
}

// saveCurrent remembers the current board for the next run
func (a *App) saveCurrent() {
	id := a.state.CurrentID
	if id == "" || id == a.session.Preferred {
		return
	}
	if err := a.settings.SetSetting(store.KeyLastBoardID, id); err != nil {
		a.logger.Warn("saving last board", zap.Error(err))
		return
	}
	a.session.Preferred = id
}

// innerSize is the window size left for a view below the banner line
func (a *App) innerSize() tea.WindowSizeMsg {
	return tea.WindowSizeMsg{Width: a.width, Height: max(a.height-1, 0)}
}

func (a *App) View() string {
	var body string
	switch a.currentView {
	case ViewBoard:
		body = a.boardView.View()
	default:
		body = a.boardList.View()
	}

	if banner := a.renderBanner(); banner != "" {
		return lipgloss.JoinVertical(lipgloss.Left, banner, body)
	}
	return body
}

func (a *App) renderBanner() string {
	width := max(a.width, 1)
	switch {
	case a.state.Err != "":
		return a.styles.ErrorBanner.Width(width).Render(a.state.Err + "  (x to dismiss)")
	case a.state.Notice != "":
		return a.styles.NoticeBanner.Width(width).Render(a.state.Notice + "  (x to dismiss)")
	}
	return ""
}
