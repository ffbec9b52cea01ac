// Package datastore declares the storage contract for an image library and
// provides an in-memory backend.
//
// Backends may be slow (disk, network), so every method takes a context. A
// missing key is reported as "no value" (ok == false), never as an error;
// errors are reserved for backend failures, which must be returned rather than
// dropped. The viewer itself does not use a Datastore yet; the contract exists
// for library browsing.
package datastore

import (
	"context"
	"fmt"
	"sort"
	"sync"
)

// Collection is a named folder of images.
type Collection struct {
	Folder string `json:"folder"`
	Name   string `json:"name"`
}

// ImageRecord describes one image in a collection.
type ImageRecord struct {
	Path        string   `json:"path"`
	Collection  string   `json:"collection"`
	Width       uint32   `json:"width"`
	Height      uint32   `json:"height"`
	Tags        []string `json:"tags"`
	Description string   `json:"description"`
}

// Datastore is implemented by storage backends.
type Datastore interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error

	Collections(ctx context.Context) ([]Collection, error)
	Images(ctx context.Context, collection string) ([]ImageRecord, error)
}

// Memory is a Datastore kept entirely in memory. It is safe for concurrent
// use. Values are copied on the way in and out.
type Memory struct {
	mu          sync.RWMutex
	values      map[string][]byte
	collections map[string]Collection
	images      map[string][]ImageRecord
}

var _ Datastore = (*Memory)(nil)

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{
		values:      make(map[string][]byte),
		collections: make(map[string]Collection),
		images:      make(map[string][]ImageRecord),
	}
}

func (m *Memory) Get(ctx context.Context, key string) ([]byte, bool, error) {
	if err := ctx.Err(); err != nil {
		return nil, false, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.values[key]
	if !ok {
		return nil, false, nil
	}
	return append([]byte(nil), v...), true, nil
}

func (m *Memory) Set(ctx context.Context, key string, value []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	m.values[key] = append([]byte(nil), value...)
	m.mu.Unlock()
	return nil
}

// Delete removes key. Deleting a missing key is not an error.
func (m *Memory) Delete(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	delete(m.values, key)
	m.mu.Unlock()
	return nil
}

// Collections returns all collections sorted by name.
func (m *Memory) Collections(ctx context.Context) ([]Collection, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.RLock()
	out := make([]Collection, 0, len(m.collections))
	for _, c := range m.collections {
		out = append(out, c)
	}
	m.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// Images returns the images of a collection in insertion order. An unknown
// collection is an error.
func (m *Memory) Images(ctx context.Context, collection string) ([]ImageRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if _, ok := m.collections[collection]; !ok {
		return nil, fmt.Errorf("unknown collection: %s", collection)
	}
	recs := m.images[collection]
	out := make([]ImageRecord, len(recs))
	for i, r := range recs {
		r.Tags = append([]string(nil), r.Tags...)
		out[i] = r
	}
	return out, nil
}

// AddCollection creates or replaces a collection.
func (m *Memory) AddCollection(c Collection) {
	m.mu.Lock()
	m.collections[c.Name] = c
	m.mu.Unlock()
}

// AddImage appends an image to its collection, which must exist.
func (m *Memory) AddImage(rec ImageRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.collections[rec.Collection]; !ok {
		return fmt.Errorf("unknown collection: %s", rec.Collection)
	}
	rec.Tags = append([]string(nil), rec.Tags...)
	m.images[rec.Collection] = append(m.images[rec.Collection], rec)
	return nil
}
