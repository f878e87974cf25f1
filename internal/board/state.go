package board

import (
	"slices"

	"github.com/tgienger/kanban/internal/models"
)

// State is the whole client-side application state. It is only ever changed
// by applying a Transition on the UI goroutine.
type State struct {
	Boards    []models.Board
	CurrentID string
	Current   *models.Board // tree of CurrentID, nil until fetched
	Loaded    bool          // board list fetched at least once
	Loading   bool
	Err       string // latest failure, shown until dismissed
	Notice    string // informational message, e.g. a refused action
}

// Transition is a pure state change
type Transition func(State) State

// Then composes two transitions
func (t Transition) Then(next Transition) Transition {
	return func(s State) State { return next(t(s)) }
}

// Begin marks the start of a remote operation
func (s State) Begin() State {
	s.Loading = true
	s.Err = ""
	s.Notice = ""
	return s
}

// Done marks the end of a remote operation
func (s State) Done() State {
	s.Loading = false
	return s
}

// Fail records the failure message of op
func (s State) Fail(op Op) State {
	s.Loading = false
	s.Err = op.Message()
	return s
}

// DismissError clears the error banner
func (s State) DismissError() State {
	s.Err = ""
	s.Notice = ""
	return s
}

// NeedsLoad reports whether the current board's tree has to be fetched
func (s State) NeedsLoad() bool {
	return s.CurrentID != "" && (s.Current == nil || s.Current.ID != s.CurrentID)
}

// HasBoards reports whether there is at least one board
func (s State) HasBoards() bool {
	return len(s.Boards) > 0
}

// CurrentBoard returns the loaded current board, if any
func (s State) CurrentBoard() (models.Board, bool) {
	if s.Current == nil || s.Current.ID != s.CurrentID {
		return models.Board{}, false
	}
	return *s.Current, true
}

// WithBoards replaces the board list and picks the current board: preferred
// when it is in the list, otherwise the first board, otherwise none.
func (s State) WithBoards(boards []models.Board, preferred string) State {
	s.Boards = slices.Clone(boards)
	s.Loaded = true
	s.CurrentID = ""
	if len(boards) > 0 {
		s.CurrentID = boards[0].ID
		if preferred != "" && slices.ContainsFunc(boards, func(b models.Board) bool { return b.ID == preferred }) {
			s.CurrentID = preferred
		}
	}
	if s.Current != nil && s.Current.ID != s.CurrentID {
		s.Current = nil
	}
	return s
}

// Select makes id the current board. The tree is dropped until it is fetched.
func (s State) Select(id string) State {
	if s.CurrentID == id {
		return s
	}
	s.CurrentID = id
	s.Current = nil
	return s
}

// WithCurrent installs a fetched board tree, ignoring it if the user has
// since switched to another board.
func (s State) WithCurrent(b models.Board) State {
	if b.ID != s.CurrentID {
		return s
	}
	s.Current = &b
	return s
}

// WithBoardAdded appends a new board and makes it current with an empty tree
func (s State) WithBoardAdded(b models.Board) State {
	summary := b
	summary.Columns = nil
	s.Boards = append(slices.Clip(s.Boards), summary)

	if b.Columns == nil {
		b.Columns = []models.Column{}
	}
	s.CurrentID = b.ID
	s.Current = &b
	return s
}

// WithBoardUpdated patches a board's title and description everywhere it appears
func (s State) WithBoardUpdated(id, title, description string) State {
	if i := slices.IndexFunc(s.Boards, func(b models.Board) bool { return b.ID == id }); i >= 0 {
		s.Boards = slices.Clone(s.Boards)
		s.Boards[i].Title = title
		s.Boards[i].Description = description
	}
	if s.Current != nil && s.Current.ID == id {
		cur := *s.Current
		cur.Title = title
		cur.Description = description
		s.Current = &cur
	}
	return s
}

// WithBoardRemoved drops a board. If it was current, the first remaining
// board becomes current.
func (s State) WithBoardRemoved(id string) State {
	i := slices.IndexFunc(s.Boards, func(b models.Board) bool { return b.ID == id })
	if i < 0 {
		return s
	}
	s.Boards = slices.Delete(slices.Clone(s.Boards), i, i+1)
	if s.CurrentID == id {
		s.CurrentID = ""
		s.Current = nil
		if len(s.Boards) > 0 {
			s.CurrentID = s.Boards[0].ID
		}
	}
	return s
}

// WithTree applies a tree function to the current board, if loaded
func (s State) WithTree(f func(models.Board) models.Board) State {
	cur, ok := s.CurrentBoard()
	if !ok {
		return s
	}
	next := f(cur)
	s.Current = &next
	return s
}
