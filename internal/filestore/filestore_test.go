package filestore

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openbesluit/reportgen/internal/domain"
)

func newTestStore(t *testing.T) *DiskStore {
	t.Helper()
	store, err := NewDiskStore(t.TempDir(), "share://")
	require.NoError(t, err)
	return store
}

func TestDiskStoreWrite(t *testing.T) {
	t.Parallel()

	t.Run("stores a blob and returns its URI", func(t *testing.T) {
		t.Parallel()

		store := newTestStore(t)
		uri, err := store.Write(context.Background(), "abc.pdf", []byte("inhoud"))
		require.NoError(t, err)
		assert.Equal(t, "share://abc.pdf", uri)

		path, err := store.Path(uri)
		require.NoError(t, err)
		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, []byte("inhoud"), data)
	})

	t.Run("refuses to overwrite an existing blob", func(t *testing.T) {
		t.Parallel()

		store := newTestStore(t)
		_, err := store.Write(context.Background(), "abc.pdf", []byte("eerste"))
		require.NoError(t, err)

		_, err = store.Write(context.Background(), "abc.pdf", []byte("tweede"))
		assert.Error(t, err)
	})

	t.Run("creates the base directory", func(t *testing.T) {
		t.Parallel()

		base := filepath.Join(t.TempDir(), "nested", "share")
		_, err := NewDiskStore(base, "share://")
		require.NoError(t, err)
		info, err := os.Stat(base)
		require.NoError(t, err)
		assert.True(t, info.IsDir())
	})
}

func TestDiskStorePath(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)

	_, err := store.Path("share://abc.pdf")
	assert.NoError(t, err)

	_, err = store.Path("file://abc.pdf")
	assert.Error(t, err)

	_, err = store.Path("share://")
	assert.Error(t, err)

	_, err = store.Path("share://../../etc/passwd")
	assert.Error(t, err)
}

func TestDiskStoreDelete(t *testing.T) {
	t.Parallel()

	t.Run("removes the blob", func(t *testing.T) {
		t.Parallel()

		store := newTestStore(t)
		uri, err := store.Write(context.Background(), "abc.pdf", []byte("inhoud"))
		require.NoError(t, err)

		caller := domain.CallerContext{"mu-session-id": "abc"}
		require.NoError(t, store.Delete(context.Background(), uri, caller))

		path, err := store.Path(uri)
		require.NoError(t, err)
		_, err = os.Stat(path)
		assert.True(t, os.IsNotExist(err))
	})

	t.Run("deleting a missing blob errors", func(t *testing.T) {
		t.Parallel()

		store := newTestStore(t)
		err := store.Delete(context.Background(), "share://nooit-geschreven.pdf", nil)
		assert.Error(t, err)
	})
}
