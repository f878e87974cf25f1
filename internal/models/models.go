package models

// Board is the root of the entity tree. Columns is only populated when the
// board was fetched on its own; the board list omits it.
type Board struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Columns     []Column `json:"columns"`
}

// Column is an ordered container of cards within a board
type Column struct {
	ID      string `json:"id"`
	Title   string `json:"title"`
	BoardID string `json:"boardId"`
	Cards   []Card `json:"cards"`
}

// Card is a single unit of work. ColumnID references the owning column by
// identifier; it is never a pointer into the tree.
type Card struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	ColumnID    string   `json:"columnId"`
	Status      Status   `json:"status"`
	DueDate     *DueDate `json:"dueDate,omitempty"`
}

// CardCount returns the number of cards across all columns
func (b Board) CardCount() int {
	n := 0
	for _, c := range b.Columns {
		n += len(c.Cards)
	}
	return n
}
