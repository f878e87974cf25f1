package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusCycle(t *testing.T) {
	assert.Equal(t, StatusInProgress, StatusTodo.Next())
	assert.Equal(t, StatusDone, StatusInProgress.Next())
	assert.Equal(t, StatusTodo, StatusDone.Next())
	assert.Equal(t, StatusDone, StatusTodo.Prev())

	assert.False(t, Status("blocked").Valid())
	assert.Equal(t, StatusTodo, Status("").OrDefault())
	assert.Equal(t, "Unknown", Status("blocked").Label())
	assert.Equal(t, "In progress", StatusInProgress.Label())
}

func TestDueDateDecodesServerFormats(t *testing.T) {
	cases := map[string]string{
		"rfc3339":   `"2025-03-04T00:00:00Z"`,
		"fraction":  `"2025-03-04T00:00:00.000Z"`,
		"zoneless":  `"2025-03-04T00:00:00"`,
		"date only": `"2025-03-04"`,
	}
	for name, raw := range cases {
		t.Run(name, func(t *testing.T) {
			var d DueDate
			require.NoError(t, json.Unmarshal([]byte(raw), &d))
			assert.Equal(t, "2025-03-04", d.Input())
		})
	}
}

func TestDueDateOffsetReadsAsUTCDay(t *testing.T) {
	var d DueDate
	require.NoError(t, json.Unmarshal([]byte(`"2025-03-03T19:00:00-05:00"`), &d))
	assert.Equal(t, "2025-03-04", d.Input())

	data, err := json.Marshal(d)
	require.NoError(t, err)
	assert.JSONEq(t, `"2025-03-04T00:00:00.000Z"`, string(data))

	// re-saving the form value keeps the same day
	again, err := ParseDueDate(d.Input())
	require.NoError(t, err)
	assert.True(t, again.Equal(&d))
}

func TestDueDateRejectsGarbage(t *testing.T) {
	var d DueDate
	assert.Error(t, json.Unmarshal([]byte(`"next tuesday"`), &d))
}

func TestCardDueDateOmittedWhenUnset(t *testing.T) {
	data, err := json.Marshal(Card{ID: "c1", Status: StatusTodo})
	require.NoError(t, err)
	assert.NotContains(t, string(data), "dueDate")

	due := NewDueDate(time.Date(2025, 3, 4, 15, 30, 0, 0, time.UTC))
	data, err = json.Marshal(Card{ID: "c1", DueDate: &due})
	require.NoError(t, err)
	assert.Contains(t, string(data), `"dueDate":"2025-03-04T00:00:00.000Z"`)
}

func TestCardNullDueDate(t *testing.T) {
	var c Card
	require.NoError(t, json.Unmarshal([]byte(`{"id":"c1","dueDate":null}`), &c))
	assert.False(t, c.DueDate.IsSet())

	require.NoError(t, json.Unmarshal([]byte(`{"id":"c1","dueDate":""}`), &c))
	assert.False(t, c.DueDate.IsSet())
}

func TestParseDueDate(t *testing.T) {
	d, err := ParseDueDate("  ")
	require.NoError(t, err)
	assert.Nil(t, d)

	d, err = ParseDueDate("2025-12-31")
	require.NoError(t, err)
	assert.Equal(t, "2025-12-31", d.Input())

	_, err = ParseDueDate("31/12/2025")
	assert.Error(t, err)
}

func TestDueDateEqual(t *testing.T) {
	a, _ := ParseDueDate("2025-01-02")
	b, _ := ParseDueDate("2025-01-02")
	c, _ := ParseDueDate("2025-01-03")
	var none *DueDate

	assert.True(t, a.Equal(b))
	assert.False(t, a.Equal(c))
	assert.False(t, a.Equal(none))
	assert.True(t, none.Equal(nil))
}

func TestBoardCardCount(t *testing.T) {
	b := Board{Columns: []Column{
		{ID: "a", Cards: []Card{{ID: "1"}, {ID: "2"}}},
		{ID: "b"},
		{ID: "c", Cards: []Card{{ID: "3"}}},
	}}
	assert.Equal(t, 3, b.CardCount())
}
