package blobstore

import (
	"bytes"
	"context"
	"errors"
	"io"
	"slices"
	"strings"
	"sync"
)

// ErrClosed is returned when writing to a closed WritableBlob.
var ErrClosed = errors.New("blobstore: blob writer closed")

// MemoryStore keeps blobs in a map. It backs tests and short-lived runs
// whose reports are read back in-process. Safe for concurrent use.
type MemoryStore struct {
	mu    sync.RWMutex
	blobs map[string][]byte
}

// NewMemoryStore returns an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{blobs: make(map[string][]byte)}
}

// Open returns a handle to a snapshot of the blob. Later writes to the same
// name do not affect it.
func (m *MemoryStore) Open(_ context.Context, name string) (Blob, error) {
	m.mu.RLock()
	data, ok := m.blobs[name]
	m.mu.RUnlock()

	if !ok {
		return nil, ErrNotFound
	}
	// Stored slices are never mutated in place, so sharing is safe.
	return &memoryBlob{data: data}, nil
}

// Create returns a writer; the blob is published on Close.
func (m *MemoryStore) Create(_ context.Context, name string) (WritableBlob, error) {
	return &memoryWritableBlob{store: m, name: name}, nil
}

// Put stores a copy of data under name.
func (m *MemoryStore) Put(_ context.Context, name string, data []byte) error {
	m.publish(name, bytes.Clone(data))
	return nil
}

func (m *MemoryStore) publish(name string, data []byte) {
	if data == nil {
		data = []byte{}
	}
	m.mu.Lock()
	m.blobs[name] = data
	m.mu.Unlock()
}

// Delete removes a blob if present.
func (m *MemoryStore) Delete(_ context.Context, name string) error {
	m.mu.Lock()
	delete(m.blobs, name)
	m.mu.Unlock()
	return nil
}

// List returns the sorted names starting with prefix.
func (m *MemoryStore) List(_ context.Context, prefix string) ([]string, error) {
	m.mu.RLock()
	names := make([]string, 0, len(m.blobs))
	for name := range m.blobs {
		if strings.HasPrefix(name, prefix) {
			names = append(names, name)
		}
	}
	m.mu.RUnlock()

	slices.Sort(names)
	return names, nil
}

// Len returns the number of stored blobs.
func (m *MemoryStore) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.blobs)
}

// Size returns the total number of stored bytes.
func (m *MemoryStore) Size() int64 {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var n int64
	for _, b := range m.blobs {
		n += int64(len(b))
	}
	return n
}

type memoryBlob struct {
	data []byte
}

func (b *memoryBlob) ReadAt(_ context.Context, p []byte, off int64) (int, error) {
	if off >= int64(len(b.data)) {
		return 0, io.EOF
	}
	n := copy(p, b.data[off:])
	if n < len(p) {
		return n, io.EOF
	}
	return n, nil
}

func (b *memoryBlob) ReadRange(_ context.Context, off, length int64) (io.ReadCloser, error) {
	size := int64(len(b.data))
	if off >= size {
		return nil, io.EOF
	}
	return io.NopCloser(bytes.NewReader(b.data[off:min(off+length, size)])), nil
}

func (b *memoryBlob) Size() int64  { return int64(len(b.data)) }
func (b *memoryBlob) Close() error { return nil }

type memoryWritableBlob struct {
	store  *MemoryStore
	name   string
	buf    bytes.Buffer
	closed bool
}

func (w *memoryWritableBlob) Write(p []byte) (int, error) {
	if w.closed {
		return 0, ErrClosed
	}
	return w.buf.Write(p)
}

// Sync is a no-op; the blob becomes visible on Close.
func (w *memoryWritableBlob) Sync() error {
	if w.closed {
		return ErrClosed
	}
	return nil
}

// Close publishes the written bytes. Closing twice is a no-op.
func (w *memoryWritableBlob) Close() error {
	if w.closed {
		return nil
	}
	w.closed = true
	w.store.publish(w.name, bytes.Clone(w.buf.Bytes()))
	w.buf.Reset()
	return nil
}
