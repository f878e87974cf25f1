package board

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/tgienger/kanban/internal/api"
	"github.com/tgienger/kanban/internal/models"
)

// Remote is the server the tree mirrors. *api.Client implements it.
type Remote interface {
	ListBoards(ctx context.Context) ([]models.Board, error)
	GetBoard(ctx context.Context, id string) (models.Board, error)
	CreateBoard(ctx context.Context, title, description string) (models.Board, error)
	UpdateBoard(ctx context.Context, id, title, description string) error
	DeleteBoard(ctx context.Context, id string) error
	CreateColumn(ctx context.Context, boardID, title string) (models.Column, error)
	UpdateColumn(ctx context.Context, id, title string) error
	DeleteColumn(ctx context.Context, id string) error
	CreateCard(ctx context.Context, columnID string, in api.CardInput) (models.Card, error)
	UpdateCard(ctx context.Context, id string, in api.CardInput) error
	MoveCard(ctx context.Context, id, sourceColumnID, destinationColumnID string) error
	DeleteCard(ctx context.Context, id string) error
}

var _ Remote = (*api.Client)(nil)

// Syncer runs one remote call per user action and turns the outcome into a
// Transition. The tree is only patched after the server confirmed the
// change; a failure leaves it untouched and records a fixed message.
type Syncer struct {
	remote Remote
	logger *zap.Logger
}

// NewSyncer creates a Syncer. A nil logger discards output.
func NewSyncer(remote Remote, logger *zap.Logger) *Syncer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Syncer{remote: remote, logger: logger}
}

func done(s State) State { return s.Done() }

func (sy *Syncer) fail(op Op, err error) Transition {
	sy.logger.Warn("operation failed", zap.Stringer("op", op), zap.Error(err))
	return func(s State) State { return s.Fail(op) }
}

func (sy *Syncer) ok(op Op, t Transition) Transition {
	sy.logger.Debug("operation succeeded", zap.Stringer("op", op))
	return t.Then(done)
}

// LoadBoards fetches the board list. preferred is the board to reopen if it
// still exists.
func (sy *Syncer) LoadBoards(ctx context.Context, preferred string) Transition {
	boards, err := sy.remote.ListBoards(ctx)
	if err != nil {
		return sy.fail(OpLoadBoards, err)
	}
	return sy.ok(OpLoadBoards, func(s State) State { return s.WithBoards(boards, preferred) })
}

// LoadBoard fetches the tree of one board
func (sy *Syncer) LoadBoard(ctx context.Context, id string) Transition {
	b, err := sy.remote.GetBoard(ctx, id)
	if err != nil {
		return sy.fail(OpLoadBoard, err)
	}
	return sy.ok(OpLoadBoard, func(s State) State { return s.WithCurrent(b) })
}

// CreateBoard creates a board and makes it current
func (sy *Syncer) CreateBoard(ctx context.Context, title, description string) Transition {
	title = strings.TrimSpace(title)
	if title == "" {
		return done
	}
	b, err := sy.remote.CreateBoard(ctx, title, strings.TrimSpace(description))
	if err != nil {
		return sy.fail(OpCreateBoard, err)
	}
	return sy.ok(OpCreateBoard, func(s State) State { return s.WithBoardAdded(b) })
}

// UpdateBoard changes a board's title and description
func (sy *Syncer) UpdateBoard(ctx context.Context, id, title, description string) Transition {
	title = strings.TrimSpace(title)
	description = strings.TrimSpace(description)
	if title == "" || id == "" {
		return done
	}
	if err := sy.remote.UpdateBoard(ctx, id, title, description); err != nil {
		return sy.fail(OpUpdateBoard, err)
	}
	return sy.ok(OpUpdateBoard, func(s State) State { return s.WithBoardUpdated(id, title, description) })
}

// DeleteBoard deletes a board. The last remaining board is never deleted;
// that check uses the snapshot s and happens before any remote call.
func (sy *Syncer) DeleteBoard(ctx context.Context, s State, id string) Transition {
	if len(s.Boards) <= 1 {
		return func(st State) State {
			st = st.Done()
			st.Notice = LastBoardNotice
			return st
		}
	}
	if id == "" {
		return done
	}
	if err := sy.remote.DeleteBoard(ctx, id); err != nil {
		return sy.fail(OpDeleteBoard, err)
	}
	return sy.ok(OpDeleteBoard, func(s State) State { return s.WithBoardRemoved(id) })
}

// CreateColumn appends a column to a board
func (sy *Syncer) CreateColumn(ctx context.Context, boardID, title string) Transition {
	title = strings.TrimSpace(title)
	if title == "" || boardID == "" {
		return done
	}
	col, err := sy.remote.CreateColumn(ctx, boardID, title)
	if err != nil {
		return sy.fail(OpCreateColumn, err)
	}
	return sy.ok(OpCreateColumn, func(s State) State {
		if s.CurrentID != boardID {
			return s
		}
		return s.WithTree(func(b models.Board) models.Board { return AddColumn(b, col) })
	})
}

// RenameColumn changes a column's title
func (sy *Syncer) RenameColumn(ctx context.Context, id, title string) Transition {
	title = strings.TrimSpace(title)
	if title == "" {
		return done
	}
	if err := sy.remote.UpdateColumn(ctx, id, title); err != nil {
		return sy.fail(OpRenameColumn, err)
	}
	return sy.ok(OpRenameColumn, func(s State) State {
		return s.WithTree(func(b models.Board) models.Board { return RenameColumn(b, id, title) })
	})
}

// DeleteColumn removes a column with its cards
func (sy *Syncer) DeleteColumn(ctx context.Context, id string) Transition {
	if id == "" {
		return done
	}
	if err := sy.remote.DeleteColumn(ctx, id); err != nil {
		return sy.fail(OpDeleteColumn, err)
	}
	return sy.ok(OpDeleteColumn, func(s State) State {
		return s.WithTree(func(b models.Board) models.Board { return RemoveColumn(b, id) })
	})
}

// CreateCard adds a card to a column
func (sy *Syncer) CreateCard(ctx context.Context, columnID string, in api.CardInput) Transition {
	in.Title = strings.TrimSpace(in.Title)
	in.Description = strings.TrimSpace(in.Description)
	if in.Title == "" || columnID == "" {
		return done
	}
	in.Status = in.Status.OrDefault()
	card, err := sy.remote.CreateCard(ctx, columnID, in)
	if err != nil {
		return sy.fail(OpCreateCard, err)
	}
	if card.ColumnID == "" {
		card.ColumnID = columnID
	}
	return sy.ok(OpCreateCard, func(s State) State {
		return s.WithTree(func(b models.Board) models.Board { return AddCard(b, card) })
	})
}

// UpdateCard replaces a card's editable fields
func (sy *Syncer) UpdateCard(ctx context.Context, id string, in api.CardInput) Transition {
	in.Title = strings.TrimSpace(in.Title)
	in.Description = strings.TrimSpace(in.Description)
	if in.Title == "" || id == "" {
		return done
	}
	in.Status = in.Status.OrDefault()
	if err := sy.remote.UpdateCard(ctx, id, in); err != nil {
		return sy.fail(OpUpdateCard, err)
	}
	patch := CardPatch{Title: in.Title, Description: in.Description, Status: in.Status, DueDate: in.DueDate}
	if !patch.DueDate.IsSet() {
		patch.DueDate = nil
	}
	return sy.ok(OpUpdateCard, func(s State) State {
		return s.WithTree(func(b models.Board) models.Board { return UpdateCard(b, id, patch) })
	})
}

// DeleteCard removes a card
func (sy *Syncer) DeleteCard(ctx context.Context, id string) Transition {
	if id == "" {
		return done
	}
	if err := sy.remote.DeleteCard(ctx, id); err != nil {
		return sy.fail(OpDeleteCard, err)
	}
	return sy.ok(OpDeleteCard, func(s State) State {
		return s.WithTree(func(b models.Board) models.Board { return RemoveCard(b, id) })
	})
}

// MoveCard reassigns a card to another column. Moving within the same
// column is not sent to the server.
func (sy *Syncer) MoveCard(ctx context.Context, id, src, dst string) Transition {
	if id == "" || src == "" || dst == "" || src == dst {
		return done
	}
	if err := sy.remote.MoveCard(ctx, id, src, dst); err != nil {
		return sy.fail(OpMoveCard, err)
	}
	return sy.ok(OpMoveCard, func(s State) State {
		return s.WithTree(func(b models.Board) models.Board { return MoveCard(b, id, src, dst) })
	})
}
