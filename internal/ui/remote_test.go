package ui

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/tgienger/kanban/internal/api"
	"github.com/tgienger/kanban/internal/models"
)

// memRemote is a small in-memory board server
type memRemote struct {
	boards []models.Board
	nextID int
	fail   bool
	calls  map[string]int
}

func newMemRemote(boards ...models.Board) *memRemote {
	return &memRemote{boards: boards, calls: map[string]int{}}
}

func (r *memRemote) enter(name string) error {
	r.calls[name]++
	if r.fail {
		return fmt.Errorf("%w: 503", api.ErrRequestFailed)
	}
	return nil
}

func (r *memRemote) id(prefix string) string {
	r.nextID++
	return fmt.Sprintf("%s-%d", prefix, r.nextID)
}

func (r *memRemote) board(id string) (*models.Board, error) {
	i := slices.IndexFunc(r.boards, func(b models.Board) bool { return b.ID == id })
	if i < 0 {
		return nil, errors.New("no such board")
	}
	return &r.boards[i], nil
}

func (r *memRemote) column(id string) (*models.Column, error) {
	for i := range r.boards {
		for j := range r.boards[i].Columns {
			if r.boards[i].Columns[j].ID == id {
				return &r.boards[i].Columns[j], nil
			}
		}
	}
	return nil, errors.New("no such column")
}

func (r *memRemote) ListBoards(ctx context.Context) ([]models.Board, error) {
	if err := r.enter("ListBoards"); err != nil {
		return nil, err
	}
	out := make([]models.Board, len(r.boards))
	for i, b := range r.boards {
		out[i] = models.Board{ID: b.ID, Title: b.Title, Description: b.Description}
	}
	return out, nil
}

func (r *memRemote) GetBoard(ctx context.Context, id string) (models.Board, error) {
	if err := r.enter("GetBoard"); err != nil {
		return models.Board{}, err
	}
	b, err := r.board(id)
	if err != nil {
		return models.Board{}, err
	}
	out := *b
	out.Columns = make([]models.Column, len(b.Columns))
	for i, c := range b.Columns {
		c.Cards = slices.Clone(c.Cards)
		if c.Cards == nil {
			c.Cards = []models.Card{}
		}
		out.Columns[i] = c
	}
	return out, nil
}

func (r *memRemote) CreateBoard(ctx context.Context, title, description string) (models.Board, error) {
	if err := r.enter("CreateBoard"); err != nil {
		return models.Board{}, err
	}
	b := models.Board{ID: r.id("board"), Title: title, Description: description, Columns: []models.Column{}}
	r.boards = append(r.boards, b)
	return b, nil
}

func (r *memRemote) UpdateBoard(ctx context.Context, id, title, description string) error {
	if err := r.enter("UpdateBoard"); err != nil {
		return err
	}
	b, err := r.board(id)
	if err != nil {
		return err
	}
	b.Title, b.Description = title, description
	return nil
}

func (r *memRemote) DeleteBoard(ctx context.Context, id string) error {
	if err := r.enter("DeleteBoard"); err != nil {
		return err
	}
	r.boards = slices.DeleteFunc(r.boards, func(b models.Board) bool { return b.ID == id })
	return nil
}

func (r *memRemote) CreateColumn(ctx context.Context, boardID, title string) (models.Column, error) {
	if err := r.enter("CreateColumn"); err != nil {
		return models.Column{}, err
	}
	b, err := r.board(boardID)
	if err != nil {
		return models.Column{}, err
	}
	c := models.Column{ID: r.id("col"), Title: title, BoardID: boardID, Cards: []models.Card{}}
	b.Columns = append(b.Columns, c)
	return c, nil
}

func (r *memRemote) UpdateColumn(ctx context.Context, id, title string) error {
	if err := r.enter("UpdateColumn"); err != nil {
		return err
	}
	c, err := r.column(id)
	if err != nil {
		return err
	}
	c.Title = title
	return nil
}

func (r *memRemote) DeleteColumn(ctx context.Context, id string) error {
	if err := r.enter("DeleteColumn"); err != nil {
		return err
	}
	for i := range r.boards {
		r.boards[i].Columns = slices.DeleteFunc(r.boards[i].Columns, func(c models.Column) bool { return c.ID == id })
	}
	return nil
}

func (r *memRemote) CreateCard(ctx context.Context, columnID string, in api.CardInput) (models.Card, error) {
	if err := r.enter("CreateCard"); err != nil {
		return models.Card{}, err
	}
	c, err := r.column(columnID)
	if err != nil {
		return models.Card{}, err
	}
	card := models.Card{
		ID:          r.id("card"),
		Title:       in.Title,
		Description: in.Description,
		ColumnID:    columnID,
		Status:      in.Status.OrDefault(),
		DueDate:     in.DueDate,
	}
	c.Cards = append(c.Cards, card)
	return card, nil
}

func (r *memRemote) UpdateCard(ctx context.Context, id string, in api.CardInput) error {
	if err := r.enter("UpdateCard"); err != nil {
		return err
	}
	for i := range r.boards {
		for j := range r.boards[i].Columns {
			col := &r.boards[i].Columns[j]
			if k := slices.IndexFunc(col.Cards, func(c models.Card) bool { return c.ID == id }); k >= 0 {
				col.Cards[k].Title = in.Title
				col.Cards[k].Description = in.Description
				col.Cards[k].Status = in.Status
				col.Cards[k].DueDate = in.DueDate
				return nil
			}
		}
	}
	return errors.New("no such card")
}

func (r *memRemote) MoveCard(ctx context.Context, id, sourceColumnID, destinationColumnID string) error {
	if err := r.enter("MoveCard"); err != nil {
		return err
	}
	src, err := r.column(sourceColumnID)
	if err != nil {
		return err
	}
	dst, err := r.column(destinationColumnID)
	if err != nil {
		return err
	}
	k := slices.IndexFunc(src.Cards, func(c models.Card) bool { return c.ID == id })
	if k < 0 {
		return errors.New("card not in source column")
	}
	card := src.Cards[k]
	card.ColumnID = destinationColumnID
	src.Cards = slices.Delete(src.Cards, k, k+1)
	dst.Cards = append(dst.Cards, card)
	return nil
}

func (r *memRemote) DeleteCard(ctx context.Context, id string) error {
	if err := r.enter("DeleteCard"); err != nil {
		return err
	}
	for i := range r.boards {
		for j := range r.boards[i].Columns {
			col := &r.boards[i].Columns[j]
			col.Cards = slices.DeleteFunc(col.Cards, func(c models.Card) bool { return c.ID == id })
		}
	}
	return nil
}

// memSettings is an in-memory Settings
type memSettings map[string]string

func (m memSettings) GetSetting(key string) (string, error) { return m[key], nil }

func (m memSettings) SetSetting(key, value string) error {
	m[key] = value
	return nil
}
