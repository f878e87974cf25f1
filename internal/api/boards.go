package api

import (
	"context"
	"net/http"
	"net/url"

	"github.com/tgienger/kanban/internal/models"
)

type boardRequest struct {
	ID          string `json:"id,omitempty"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

// ListBoards returns all boards. Columns are not populated.
func (c *Client) ListBoards(ctx context.Context) ([]models.Board, error) {
	var boards []models.Board
	if err := c.do(ctx, http.MethodGet, "/boards", nil, &boards); err != nil {
		return nil, err
	}
	if boards == nil {
		boards = []models.Board{}
	}
	return boards, nil
}

// GetBoard returns one board with its columns and cards
func (c *Client) GetBoard(ctx context.Context, id string) (models.Board, error) {
	var b models.Board
	if err := c.do(ctx, http.MethodGet, "/boards/"+url.PathEscape(id), nil, &b); err != nil {
		return models.Board{}, err
	}
	return normalizeBoard(b), nil
}

// CreateBoard creates a board and returns it as stored by the server
func (c *Client) CreateBoard(ctx context.Context, title, description string) (models.Board, error) {
	var b models.Board
	req := boardRequest{Title: title, Description: description}
	if err := c.do(ctx, http.MethodPost, "/boards", req, &b); err != nil {
		return models.Board{}, err
	}
	return normalizeBoard(b), nil
}

// UpdateBoard replaces a board's title and description
func (c *Client) UpdateBoard(ctx context.Context, id, title, description string) error {
	req := boardRequest{ID: id, Title: title, Description: description}
	return c.do(ctx, http.MethodPut, "/boards/"+url.PathEscape(id), req, nil)
}

// DeleteBoard deletes a board
func (c *Client) DeleteBoard(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/boards/"+url.PathEscape(id), nil, nil)
}

func normalizeBoard(b models.Board) models.Board {
	if b.Columns == nil {
		b.Columns = []models.Column{}
	}
	for i := range b.Columns {
		b.Columns[i] = normalizeColumn(b.Columns[i])
	}
	return b
}

func normalizeColumn(col models.Column) models.Column {
	if col.Cards == nil {
		col.Cards = []models.Card{}
	}
	return col
}
