package store

import (
	"bytes"
	"cmp"
	"context"
	"maps"
	"slices"
	"sync"

	"github.com/charmbracelet/log"
)

// Memory is an in-process Store.
type Memory struct {
	mu      sync.RWMutex
	records map[string]Record
	logger  *log.Logger
}

// NewMemory returns an empty memory store. A nil logger discards output.
func NewMemory(logger *log.Logger) *Memory {
	return &Memory{records: make(map[string]Record), logger: orDiscard(logger)}
}

func (m *Memory) Put(_ context.Context, rec Record) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	rec.Definition = bytes.Clone(rec.Definition)
	m.records[rec.ID] = rec
	m.logger.Debug("stored table", "id", rec.ID, "version", rec.Version)
	return nil
}

func (m *Memory) Get(_ context.Context, id string) (Record, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	rec, ok := m.records[id]
	if !ok {
		return Record{}, notFound(id)
	}
	rec.Definition = bytes.Clone(rec.Definition)
	return rec, nil
}

func (m *Memory) List(_ context.Context) ([]Record, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := slices.Collect(maps.Values(m.records))
	for i := range out {
		out[i].Definition = bytes.Clone(out[i].Definition)
	}
	slices.SortFunc(out, func(a, b Record) int {
		if c := a.CreatedAt.Compare(b.CreatedAt); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})
	return out, nil
}

func (m *Memory) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.records[id]; !ok {
		return notFound(id)
	}
	delete(m.records, id)
	m.logger.Debug("deleted table", "id", id)
	return nil
}

func (m *Memory) Close() error { return nil }

var _ Store = (*Memory)(nil)
