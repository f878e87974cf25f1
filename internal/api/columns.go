package api

import (
	"context"
	"net/http"
	"net/url"

	"github.com/tgienger/kanban/internal/models"
)

type columnRequest struct {
	ID      string `json:"id,omitempty"`
	BoardID string `json:"boardId,omitempty"`
	Title   string `json:"title"`
}

// CreateColumn appends a column to a board
func (c *Client) CreateColumn(ctx context.Context, boardID, title string) (models.Column, error) {
	var col models.Column
	req := columnRequest{BoardID: boardID, Title: title}
	if err := c.do(ctx, http.MethodPost, "/columns", req, &col); err != nil {
		return models.Column{}, err
	}
	return normalizeColumn(col), nil
}

// UpdateColumn renames a column
func (c *Client) UpdateColumn(ctx context.Context, id, title string) error {
	req := columnRequest{ID: id, Title: title}
	return c.do(ctx, http.MethodPut, "/columns/"+url.PathEscape(id), req, nil)
}

// DeleteColumn deletes a column and, server side, its cards
func (c *Client) DeleteColumn(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/columns/"+url.PathEscape(id), nil, nil)
}
