package views

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/tgienger/kanban/internal/board"
)

// Session is the views' handle on the shared application state. State is
// owned by the App and only written on the UI goroutine.
type Session struct {
	State *board.State
	Sync  *board.Syncer
	// Preferred is the board to reopen when a reload finds none current
	Preferred string

	ctx context.Context
}

// NewSession wires a session around state
func NewSession(ctx context.Context, state *board.State, sync *board.Syncer) *Session {
	return &Session{State: state, Sync: sync, ctx: ctx}
}

// TransitionMsg carries the outcome of a remote operation back to the App
type TransitionMsg struct {
	Apply board.Transition
	// OpenBoard switches to the board screen once applied, if a board is current
	OpenBoard bool
}

// OpenBoard asks the App to show a board
type OpenBoard struct {
	ID string
}

// BackToBoards signals to go back to the board list
type BackToBoards struct{}

// Busy reports whether a remote call is in flight
func (s *Session) Busy() bool {
	return s.State.Loading
}

// Run starts one remote operation. It refuses to start while another is in
// flight, which keeps at most one mutation outstanding.
func (s *Session) Run(op func(ctx context.Context) board.Transition) tea.Cmd {
	return s.run(op, false)
}

// RunThenOpen is Run, switching to the board screen on completion
func (s *Session) RunThenOpen(op func(ctx context.Context) board.Transition) tea.Cmd {
	return s.run(op, true)
}

func (s *Session) run(op func(ctx context.Context) board.Transition, open bool) tea.Cmd {
	if s.State.Loading {
		return nil
	}
	*s.State = s.State.Begin()
	ctx := s.ctx
	return func() tea.Msg {
		return TransitionMsg{Apply: op(ctx), OpenBoard: open}
	}
}

// Dismiss clears the error banner
func (s *Session) Dismiss() {
	*s.State = s.State.DismissError()
}
