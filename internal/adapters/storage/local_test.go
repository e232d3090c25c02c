// internal/adapters/storage/local_test.go
package storage_test

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ammerola/apotek-pos/internal/adapters/storage"
	"github.com/ammerola/apotek-pos/test/helpers"
)

func TestLocalStorage_RoundTrip(t *testing.T) {
	ctx := context.Background()
	store, err := storage.NewLocalStorage(t.TempDir(), helpers.TestLogger())
	require.NoError(t, err)

	key := "receipts/2026/10/16/abc.txt"

	exists, err := store.Exists(ctx, key)
	require.NoError(t, err)
	assert.False(t, exists)

	location, err := store.Upload(ctx, key, strings.NewReader("TOTAL: Rp 10.000"), "text/plain")
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(location, "abc.txt"))

	exists, err = store.Exists(ctx, key)
	require.NoError(t, err)
	assert.True(t, exists)

	data, err := store.Download(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, "TOTAL: Rp 10.000", string(data))

	// overwrite
	_, err = store.Upload(ctx, key, bytes.NewReader([]byte("v2")), "")
	require.NoError(t, err)
	data, err = store.Download(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, "v2", string(data))

	link, err := store.PresignGet(ctx, key, time.Minute)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(link, "file://"))

	require.NoError(t, store.Delete(ctx, key))
	require.NoError(t, store.Delete(ctx, key), "deleting twice is not an error")

	exists, err = store.Exists(ctx, key)
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestLocalStorage_KeysStayInsideBase(t *testing.T) {
	ctx := context.Background()
	base := t.TempDir()
	store, err := storage.NewLocalStorage(base, helpers.TestLogger())
	require.NoError(t, err)

	location, err := store.Upload(ctx, "../../escape.txt", strings.NewReader("x"), "")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(location, base))

	_, err = store.Upload(ctx, "", strings.NewReader("x"), "")
	assert.Error(t, err)
}

func TestLocalStorage_DownloadMissing(t *testing.T) {
	store, err := storage.NewLocalStorage(t.TempDir(), helpers.TestLogger())
	require.NoError(t, err)

	_, err = store.Download(context.Background(), "nope.xlsx")
	assert.Error(t, err)
}
