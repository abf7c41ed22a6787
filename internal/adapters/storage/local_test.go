package storage_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ammerola/barstock/internal/adapters/storage"
	"github.com/ammerola/barstock/test/helpers"
)

func TestLocalStorage_UploadAndPresign(t *testing.T) {
	dir := t.TempDir()
	store, err := storage.NewLocalStorage(dir, helpers.TestLogger())
	require.NoError(t, err)
	ctx := context.Background()

	loc, err := store.Upload(ctx, "exports/s-1.xlsx", strings.NewReader("sheet"), "")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "exports", "s-1.xlsx"), loc)

	data, err := os.ReadFile(loc)
	require.NoError(t, err)
	assert.Equal(t, "sheet", string(data))

	u, err := store.GetPresignedURL(ctx, "exports/s-1.xlsx", time.Minute)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(u, "file://"))
	assert.True(t, strings.HasSuffix(u, "/exports/s-1.xlsx"))
}

func TestLocalStorage_RejectsEscapingKeys(t *testing.T) {
	store, err := storage.NewLocalStorage(t.TempDir(), helpers.TestLogger())
	require.NoError(t, err)

	_, err = store.Upload(context.Background(), "../outside.xlsx", strings.NewReader("x"), "")
	assert.Error(t, err)
}

func TestLocalStorage_PresignMissingKey(t *testing.T) {
	store, err := storage.NewLocalStorage(t.TempDir(), helpers.TestLogger())
	require.NoError(t, err)

	_, err = store.GetPresignedURL(context.Background(), "missing.xlsx", time.Minute)
	assert.Error(t, err)
}
