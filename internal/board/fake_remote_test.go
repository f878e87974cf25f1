package board

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/tgienger/kanban/internal/api"
	"github.com/tgienger/kanban/internal/models"
)

var errServer = fmt.Errorf("%w: 500", api.ErrRequestFailed)

// fakeRemote is an in-memory server with the same semantics as the REST
// service. Set fail to make the next calls error without changing anything.
type fakeRemote struct {
	boards []models.Board
	nextID int
	fail   bool
	calls  map[string]int
}

func newFakeRemote(boards ...models.Board) *fakeRemote {
	f := &fakeRemote{calls: map[string]int{}}
	for _, b := range boards {
		if b.Columns == nil {
			b.Columns = []models.Column{}
		}
		f.boards = append(f.boards, b)
	}
	return f
}

func (f *fakeRemote) id() string {
	f.nextID++
	return fmt.Sprintf("id-%d", f.nextID)
}

func (f *fakeRemote) enter(name string) error {
	f.calls[name]++
	if f.fail {
		return errServer
	}
	return nil
}

func (f *fakeRemote) board(id string) (*models.Board, error) {
	for i := range f.boards {
		if f.boards[i].ID == id {
			return &f.boards[i], nil
		}
	}
	return nil, errors.New("board not found")
}

func (f *fakeRemote) locateColumn(id string) (*models.Column, error) {
	for i := range f.boards {
		for j := range f.boards[i].Columns {
			if f.boards[i].Columns[j].ID == id {
				return &f.boards[i].Columns[j], nil
			}
		}
	}
	return nil, errors.New("column not found")
}

func (f *fakeRemote) locateCard(id string) (*models.Column, int, error) {
	for i := range f.boards {
		for j := range f.boards[i].Columns {
			col := &f.boards[i].Columns[j]
			if k := slices.IndexFunc(col.Cards, func(c models.Card) bool { return c.ID == id }); k >= 0 {
				return col, k, nil
			}
		}
	}
	return nil, -1, errors.New("card not found")
}

// snapshot returns a deep copy of the server's tree for a board
func (f *fakeRemote) snapshot(id string) models.Board {
	b, err := f.board(id)
	if err != nil {
		return models.Board{}
	}
	out := *b
	out.Columns = make([]models.Column, len(b.Columns))
	for i, c := range b.Columns {
		c.Cards = slices.Clone(c.Cards)
		out.Columns[i] = c
	}
	return out
}

func (f *fakeRemote) ListBoards(context.Context) ([]models.Board, error) {
	if err := f.enter("ListBoards"); err != nil {
		return nil, err
	}
	out := make([]models.Board, len(f.boards))
	for i, b := range f.boards {
		out[i] = models.Board{ID: b.ID, Title: b.Title, Description: b.Description}
	}
	return out, nil
}

func (f *fakeRemote) GetBoard(_ context.Context, id string) (models.Board, error) {
	if err := f.enter("GetBoard"); err != nil {
		return models.Board{}, err
	}
	if _, err := f.board(id); err != nil {
		return models.Board{}, err
	}
	return f.snapshot(id), nil
}

func (f *fakeRemote) CreateBoard(_ context.Context, title, description string) (models.Board, error) {
	if err := f.enter("CreateBoard"); err != nil {
		return models.Board{}, err
	}
	b := models.Board{ID: f.id(), Title: title, Description: description, Columns: []models.Column{}}
	f.boards = append(f.boards, b)
	return b, nil
}

func (f *fakeRemote) UpdateBoard(_ context.Context, id, title, description string) error {
	if err := f.enter("UpdateBoard"); err != nil {
		return err
	}
	b, err := f.board(id)
	if err != nil {
		return err
	}
	b.Title, b.Description = title, description
	return nil
}

func (f *fakeRemote) DeleteBoard(_ context.Context, id string) error {
	if err := f.enter("DeleteBoard"); err != nil {
		return err
	}
	f.boards = slices.DeleteFunc(f.boards, func(b models.Board) bool { return b.ID == id })
	return nil
}

func (f *fakeRemote) CreateColumn(_ context.Context, boardID, title string) (models.Column, error) {
	if err := f.enter("CreateColumn"); err != nil {
		return models.Column{}, err
	}
	b, err := f.board(boardID)
	if err != nil {
		return models.Column{}, err
	}
	col := models.Column{ID: f.id(), Title: title, BoardID: boardID, Cards: []models.Card{}}
	b.Columns = append(b.Columns, col)
	return col, nil
}

func (f *fakeRemote) UpdateColumn(_ context.Context, id, title string) error {
	if err := f.enter("UpdateColumn"); err != nil {
		return err
	}
	col, err := f.locateColumn(id)
	if err != nil {
		return err
	}
	col.Title = title
	return nil
}

func (f *fakeRemote) DeleteColumn(_ context.Context, id string) error {
	if err := f.enter("DeleteColumn"); err != nil {
		return err
	}
	for i := range f.boards {
		f.boards[i].Columns = slices.DeleteFunc(f.boards[i].Columns, func(c models.Column) bool { return c.ID == id })
	}
	return nil
}

func (f *fakeRemote) CreateCard(_ context.Context, columnID string, in api.CardInput) (models.Card, error) {
	if err := f.enter("CreateCard"); err != nil {
		return models.Card{}, err
	}
	col, err := f.locateColumn(columnID)
	if err != nil {
		return models.Card{}, err
	}
	card := models.Card{
		ID:          f.id(),
		Title:       in.Title,
		Description: in.Description,
		ColumnID:    columnID,
		Status:      in.Status,
		DueDate:     in.DueDate,
	}
	col.Cards = append(col.Cards, card)
	return card, nil
}

func (f *fakeRemote) UpdateCard(_ context.Context, id string, in api.CardInput) error {
	if err := f.enter("UpdateCard"); err != nil {
		return err
	}
	col, k, err := f.locateCard(id)
	if err != nil {
		return err
	}
	c := &col.Cards[k]
	c.Title, c.Description, c.Status, c.DueDate = in.Title, in.Description, in.Status, in.DueDate
	return nil
}

func (f *fakeRemote) MoveCard(_ context.Context, id, src, dst string) error {
	if err := f.enter("MoveCard"); err != nil {
		return err
	}
	from, k, err := f.locateCard(id)
	if err != nil {
		return err
	}
	if from.ID != src {
		return errors.New("card not in source column")
	}
	card := from.Cards[k]
	from.Cards = slices.Delete(from.Cards, k, k+1)
	to, err := f.locateColumn(dst)
	if err != nil {
		return err
	}
	card.ColumnID = dst
	to.Cards = append(to.Cards, card)
	return nil
}

func (f *fakeRemote) DeleteCard(_ context.Context, id string) error {
	if err := f.enter("DeleteCard"); err != nil {
		return err
	}
	for i := range f.boards {
		for j := range f.boards[i].Columns {
			col := &f.boards[i].Columns[j]
			col.Cards = slices.DeleteFunc(col.Cards, func(c models.Card) bool { return c.ID == id })
		}
	}
	return nil
}
