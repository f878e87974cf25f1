package api

import (
	"context"
	"net/http"
	"net/url"

	"github.com/tgienger/kanban/internal/models"
)

// CardInput holds the editable fields of a card
type CardInput struct {
	Title       string
	Description string
	Status      models.Status
	DueDate     *models.DueDate
}

type cardRequest struct {
	ID          string          `json:"id,omitempty"`
	ColumnID    string          `json:"columnId,omitempty"`
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Status      models.Status   `json:"status"`
	DueDate     *models.DueDate `json:"dueDate,omitempty"`
}

type moveRequest struct {
	SourceColumnID      string `json:"sourceColumnId"`
	DestinationColumnID string `json:"destinationColumnId"`
}

func (in CardInput) request() cardRequest {
	req := cardRequest{
		Title:       in.Title,
		Description: in.Description,
		Status:      in.Status.OrDefault(),
	}
	if in.DueDate.IsSet() {
		req.DueDate = in.DueDate
	}
	return req
}

// CreateCard adds a card to a column
func (c *Client) CreateCard(ctx context.Context, columnID string, in CardInput) (models.Card, error) {
	req := in.request()
	req.ColumnID = columnID

	var card models.Card
	if err := c.do(ctx, http.MethodPost, "/cards", req, &card); err != nil {
		return models.Card{}, err
	}
	return card, nil
}

// UpdateCard replaces a card's editable fields
func (c *Client) UpdateCard(ctx context.Context, id string, in CardInput) error {
	req := in.request()
	req.ID = id
	return c.do(ctx, http.MethodPut, "/cards/"+url.PathEscape(id), req, nil)
}

// MoveCard reassigns a card to another column. The server decides the
// final placement.
func (c *Client) MoveCard(ctx context.Context, id, sourceColumnID, destinationColumnID string) error {
	req := moveRequest{SourceColumnID: sourceColumnID, DestinationColumnID: destinationColumnID}
	return c.do(ctx, http.MethodPut, "/cards/"+url.PathEscape(id)+"/move", req, nil)
}

// DeleteCard deletes a card
func (c *Client) DeleteCard(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/cards/"+url.PathEscape(id), nil, nil)
}
