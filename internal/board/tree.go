// Package board keeps the client-side copy of the current board in sync with
// server-confirmed mutations.
//
// Tree functions are pure: they return a new Board and never write to the
// slices of the board they were given. Any lookup that fails leaves the tree
// unchanged.
package board

import (
	"slices"

	"github.com/tgienger/kanban/internal/models"
)

// CardPatch holds the card fields an update replaces
type CardPatch struct {
	Title       string
	Description string
	Status      models.Status
	DueDate     *models.DueDate
}

// FindColumn returns the index of the column with the given id, or -1
func FindColumn(b models.Board, id string) int {
	return slices.IndexFunc(b.Columns, func(c models.Column) bool { return c.ID == id })
}

// FindCard returns the column and card index of the card with the given id.
// Both are -1 when it is not on the board.
func FindCard(b models.Board, id string) (col, card int) {
	for i, c := range b.Columns {
		if j := slices.IndexFunc(c.Cards, func(k models.Card) bool { return k.ID == id }); j >= 0 {
			return i, j
		}
	}
	return -1, -1
}

// AddColumn appends col to the board
func AddColumn(b models.Board, col models.Column) models.Board {
	col.BoardID = b.ID
	if col.Cards == nil {
		col.Cards = []models.Card{}
	}
	b.Columns = append(slices.Clip(b.Columns), col)
	return b
}

// RenameColumn changes the title of one column
func RenameColumn(b models.Board, id, title string) models.Board {
	i := FindColumn(b, id)
	if i < 0 {
		return b
	}
	b.Columns = slices.Clone(b.Columns)
	b.Columns[i].Title = title
	return b
}

// RemoveColumn drops a column and its cards
func RemoveColumn(b models.Board, id string) models.Board {
	i := FindColumn(b, id)
	if i < 0 {
		return b
	}
	b.Columns = slices.Delete(slices.Clone(b.Columns), i, i+1)
	return b
}

// AddCard appends card to the column named by card.ColumnID
func AddCard(b models.Board, card models.Card) models.Board {
	i := FindColumn(b, card.ColumnID)
	if i < 0 {
		return b
	}
	b.Columns = slices.Clone(b.Columns)
	b.Columns[i].Cards = append(slices.Clip(b.Columns[i].Cards), card)
	return b
}

// UpdateCard replaces the editable fields of one card
func UpdateCard(b models.Board, id string, p CardPatch) models.Board {
	ci, ki := FindCard(b, id)
	if ci < 0 {
		return b
	}
	b.Columns = slices.Clone(b.Columns)
	cards := slices.Clone(b.Columns[ci].Cards)
	card := &cards[ki]
	card.Title = p.Title
	card.Description = p.Description
	card.Status = p.Status
	card.DueDate = p.DueDate
	b.Columns[ci].Cards = cards
	return b
}

// RemoveCard drops one card
func RemoveCard(b models.Board, id string) models.Board {
	ci, ki := FindCard(b, id)
	if ci < 0 {
		return b
	}
	b.Columns = slices.Clone(b.Columns)
	b.Columns[ci].Cards = slices.Delete(slices.Clone(b.Columns[ci].Cards), ki, ki+1)
	return b
}

// MoveCard takes a card out of src and appends it to dst. It is a no-op
// when either column or the card is missing from src, or src equals dst.
func MoveCard(b models.Board, id, src, dst string) models.Board {
	si, di := FindColumn(b, src), FindColumn(b, dst)
	if si < 0 || di < 0 || si == di {
		return b
	}
	ki := slices.IndexFunc(b.Columns[si].Cards, func(k models.Card) bool { return k.ID == id })
	if ki < 0 {
		return b
	}

	card := b.Columns[si].Cards[ki]
	card.ColumnID = dst

	b.Columns = slices.Clone(b.Columns)
	b.Columns[si].Cards = slices.Delete(slices.Clone(b.Columns[si].Cards), ki, ki+1)
	b.Columns[di].Cards = append(slices.Clip(b.Columns[di].Cards), card)
	return b
}
