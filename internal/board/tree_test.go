package board

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"

	"github.com/tgienger/kanban/internal/models"
)

func twoColumnBoard() models.Board {
	return models.Board{
		ID:    "b",
		Title: "Board",
		Columns: []models.Column{
			{ID: "A", BoardID: "b", Title: "Todo", Cards: []models.Card{{ID: "c1", ColumnID: "A", Title: "one", Status: models.StatusTodo}}},
			{ID: "B", BoardID: "b", Title: "Done", Cards: []models.Card{}},
		},
	}
}

func TestMoveCardBetweenColumns(t *testing.T) {
	before := twoColumnBoard()
	after := MoveCard(before, "c1", "A", "B")

	assert.Empty(t, after.Columns[0].Cards)
	want := []models.Card{{ID: "c1", ColumnID: "B", Title: "one", Status: models.StatusTodo}}
	if diff := cmp.Diff(want, after.Columns[1].Cards); diff != "" {
		t.Errorf("destination cards mismatch (-want +got):\n%s", diff)
	}

	// input untouched
	if diff := cmp.Diff(twoColumnBoard(), before); diff != "" {
		t.Errorf("MoveCard mutated its input (-want +got):\n%s", diff)
	}
}

func TestMoveCardAppendsToEnd(t *testing.T) {
	b := twoColumnBoard()
	b.Columns[1].Cards = []models.Card{{ID: "c2", ColumnID: "B"}}

	after := MoveCard(b, "c1", "A", "B")
	ids := []string{}
	for _, c := range after.Columns[1].Cards {
		ids = append(ids, c.ID)
	}
	assert.Equal(t, []string{"c2", "c1"}, ids)
}

func TestMoveCardNoOps(t *testing.T) {
	cases := map[string][3]string{
		"unknown card":        {"nope", "A", "B"},
		"unknown source":      {"c1", "Z", "B"},
		"unknown destination": {"c1", "A", "Z"},
		"card not in source":  {"c1", "B", "A"},
		"same column":         {"c1", "A", "A"},
	}
	for name, args := range cases {
		t.Run(name, func(t *testing.T) {
			b := twoColumnBoard()
			if diff := cmp.Diff(twoColumnBoard(), MoveCard(b, args[0], args[1], args[2])); diff != "" {
				t.Errorf("expected no-op (-want +got):\n%s", diff)
			}
		})
	}
}

func TestColumnTransitions(t *testing.T) {
	b := twoColumnBoard()

	b = AddColumn(b, models.Column{ID: "C", Title: "Later", BoardID: "other"})
	assert.Len(t, b.Columns, 3)
	assert.Equal(t, "b", b.Columns[2].BoardID, "owning board follows the parent")
	assert.NotNil(t, b.Columns[2].Cards)

	b = RenameColumn(b, "B", "Finished")
	assert.Equal(t, "Finished", b.Columns[1].Title)
	assert.Equal(t, "Todo", b.Columns[0].Title, "siblings untouched")

	unchanged := RenameColumn(b, "missing", "x")
	assert.Equal(t, b, unchanged)

	b = RemoveColumn(b, "A")
	assert.Equal(t, []string{"B", "C"}, columnIDs(b))
	assert.Equal(t, b, RemoveColumn(b, "missing"))
}

func TestCardTransitions(t *testing.T) {
	b := twoColumnBoard()

	b = AddCard(b, models.Card{ID: "c2", ColumnID: "B", Title: "two"})
	assert.Len(t, b.Columns[1].Cards, 1)
	assert.Equal(t, b, AddCard(b, models.Card{ID: "c3", ColumnID: "missing"}))

	due, _ := models.ParseDueDate("2025-05-05")
	b = UpdateCard(b, "c2", CardPatch{Title: "two!", Description: "d", Status: models.StatusDone, DueDate: due})
	got := b.Columns[1].Cards[0]
	assert.Equal(t, "two!", got.Title)
	assert.Equal(t, models.StatusDone, got.Status)
	assert.Equal(t, "2025-05-05", got.DueDate.Input())
	assert.Equal(t, "B", got.ColumnID)
	assert.Equal(t, "one", b.Columns[0].Cards[0].Title)

	b = RemoveCard(b, "c1")
	assert.Empty(t, b.Columns[0].Cards)
	assert.Equal(t, b, RemoveCard(b, "c1"))
}

func TestTransitionsDoNotAlias(t *testing.T) {
	orig := twoColumnBoard()
	_ = UpdateCard(orig, "c1", CardPatch{Title: "changed"})
	_ = RenameColumn(orig, "A", "changed")
	_ = RemoveCard(orig, "c1")
	_ = AddCard(orig, models.Card{ID: "x", ColumnID: "A"})

	if diff := cmp.Diff(twoColumnBoard(), orig); diff != "" {
		t.Errorf("input board changed (-want +got):\n%s", diff)
	}
}

func TestFindCard(t *testing.T) {
	b := twoColumnBoard()
	col, card := FindCard(b, "c1")
	assert.Equal(t, 0, col)
	assert.Equal(t, 0, card)

	col, card = FindCard(b, "nope")
	assert.Equal(t, -1, col)
	assert.Equal(t, -1, card)
}

func columnIDs(b models.Board) []string {
	ids := make([]string, len(b.Columns))
	for i, c := range b.Columns {
		ids[i] = c.ID
	}
	return ids
}
