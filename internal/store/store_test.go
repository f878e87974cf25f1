package store

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSettingsRoundTrip(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "data")
	db, err := Open(dir)
	require.NoError(t, err)
	defer db.Close()

	v, err := db.GetSetting(KeyLastBoardID)
	require.NoError(t, err)
	assert.Empty(t, v)

	require.NoError(t, db.SetSetting(KeyLastBoardID, "b1"))
	require.NoError(t, db.SetSetting(KeyLastBoardID, "b2"))

	v, err = db.GetSetting(KeyLastBoardID)
	require.NoError(t, err)
	assert.Equal(t, "b2", v)
}

func TestSettingsPersistAcrossOpen(t *testing.T) {
	dir := t.TempDir()

	db, err := Open(dir)
	require.NoError(t, err)
	require.NoError(t, db.SetSetting(KeyLastBoardID, "keep"))
	require.NoError(t, db.Close())

	db, err = Open(dir)
	require.NoError(t, err)
	defer db.Close()

	v, err := db.GetSetting(KeyLastBoardID)
	require.NoError(t, err)
	assert.Equal(t, "keep", v)
}
