package styles

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tgienger/kanban/internal/models"
)

func TestStatusColors(t *testing.T) {
	assert.Equal(t, Current.Warning, StatusColor(models.StatusTodo))
	assert.Equal(t, Current.Info, StatusColor(models.StatusInProgress))
	assert.Equal(t, Current.Success, StatusColor(models.StatusDone))
	assert.Equal(t, Current.ForegroundDim, StatusColor("other"))
}

func TestStatusBadgeShowsLabel(t *testing.T) {
	assert.True(t, strings.Contains(StatusBadge(models.StatusDone), "Done"))
}

func TestContentWidth(t *testing.T) {
	assert.Equal(t, 40, ContentWidth(40))
	assert.Equal(t, MaxWidth, ContentWidth(200))
}
