package blobstore

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalBlobStore_Lifecycle(t *testing.T) {
	tmpDir := t.TempDir()
	store := NewLocalStore(tmpDir)

	ctx := context.Background()

	// 1. Create a blob
	blobName := "runs/report-001.json"
	data := []byte("hello world, this is a test blob for gsfs")

	w, err := store.Create(ctx, blobName)
	require.NoError(t, err)

	n, err := w.Write(data)
	require.NoError(t, err)
	require.Equal(t, len(data), n)

	// Not visible before Close
	ok, err := Exists(ctx, store, blobName)
	require.NoError(t, err)
	require.False(t, ok)

	require.NoError(t, w.Close())
	require.Error(t, w.Close())

	// Verify file exists on disk
	_, err = os.Stat(filepath.Join(tmpDir, "runs", "report-001.json"))
	require.NoError(t, err)

	// 2. Open and ReadAt
	blob, err := store.Open(ctx, blobName)
	require.NoError(t, err)
	defer blob.Close()

	require.Equal(t, int64(len(data)), blob.Size())

	buf := make([]byte, 5)
	n, err = blob.ReadAt(ctx, buf, 6) // "world"
	require.NoError(t, err)
	require.Equal(t, 5, n)
	require.Equal(t, "world", string(buf))

	// 3. ReadRange
	rangeReader, err := blob.ReadRange(ctx, 13, 4)
	require.NoError(t, err)
	defer rangeReader.Close()

	rangeContent, err := io.ReadAll(rangeReader)
	require.NoError(t, err)
	require.Equal(t, "this", string(rangeContent))

	// 4. List
	require.NoError(t, store.Put(ctx, "runs/report-002.json", []byte("{}")))
	require.NoError(t, store.Put(ctx, "other.txt", []byte("x")))

	names, err := store.List(ctx, "runs/")
	require.NoError(t, err)
	require.Equal(t, []string{"runs/report-001.json", "runs/report-002.json"}, names)

	all, err := store.List(ctx, "")
	require.NoError(t, err)
	require.Len(t, all, 3)

	// 5. Delete
	require.NoError(t, store.Delete(ctx, blobName))
	require.NoError(t, store.Delete(ctx, blobName))

	_, err = store.Open(ctx, blobName)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestLocalBlobStore_ReadRange_Boundaries(t *testing.T) {
	store := NewLocalStore(t.TempDir())
	ctx := context.Background()

	data := []byte("0123456789")
	require.NoError(t, store.Put(ctx, "boundary.bin", data))

	blob, err := store.Open(ctx, "boundary.bin")
	require.NoError(t, err)
	defer blob.Close()

	// Case 1: Read full range
	r, err := blob.ReadRange(ctx, 0, 10)
	require.NoError(t, err)
	content, _ := io.ReadAll(r)
	r.Close()
	require.True(t, bytes.Equal(data, content))

	// Case 2: Read past end
	r, err = blob.ReadRange(ctx, 8, 5)
	require.NoError(t, err)
	content, err = io.ReadAll(r)
	require.NoError(t, err)
	require.Equal(t, "89", string(content))
	r.Close()

	// Case 3: Offset past EOF
	_, err = blob.ReadRange(ctx, 20, 5)
	require.ErrorIs(t, err, io.EOF)
}

func TestLocalBlobStore_ListMissingRoot(t *testing.T) {
	store := NewLocalStore(filepath.Join(t.TempDir(), "missing"))
	names, err := store.List(context.Background(), "")
	require.NoError(t, err)
	assert.Empty(t, names)
}

func TestLocalBlobStore_Cancelled(t *testing.T) {
	store := NewLocalStore(t.TempDir())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.ErrorIs(t, store.Put(ctx, "a", []byte("x")), context.Canceled)
	_, err := store.Open(ctx, "a")
	assert.ErrorIs(t, err, context.Canceled)
}
