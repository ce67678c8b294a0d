// Package memory provides an in-process implementation of
// storage.Storage. Records live in a map guarded by a RWMutex and are
// lost when the process exits; use it for local runs and tests.
package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/Shadowrithik/Modify-data2/internal/storage"
	"github.com/Shadowrithik/Modify-data2/internal/types"
)

// Memory is the in-memory storage.Storage.
type Memory struct {
	mu    sync.RWMutex
	items map[string]types.MenuItem
	order []string // ids in insertion order
}

// New returns an empty store.
func New() *Memory {
	return &Memory{items: make(map[string]types.MenuItem)}
}

func (m *Memory) CreateMenuItem(_ context.Context, draft types.Draft) (types.MenuItem, error) {
	if err := draft.Validate(); err != nil {
		return types.MenuItem{}, fmt.Errorf("CreateMenuItem: %w", err)
	}

	item := draft.Item(uuid.NewString())

	m.mu.Lock()
	defer m.mu.Unlock()

	m.items[item.ID] = item
	m.order = append(m.order, item.ID)

	return item, nil
}

func (m *Memory) GetMenuItems(_ context.Context) ([]types.MenuItem, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	items := make([]types.MenuItem, 0, len(m.order))
	for _, id := range m.order {
		items = append(items, m.items[id])
	}

	return items, nil
}

func (m *Memory) UpdateMenuItemByID(_ context.Context, id string, fields map[string]any) (types.MenuItem, error) {
	if err := checkID(id); err != nil {
		return types.MenuItem{}, fmt.Errorf("UpdateMenuItemByID: %w", err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	current, ok := m.items[id]
	if !ok {
		return types.MenuItem{}, fmt.Errorf("UpdateMenuItemByID: %w", storage.ErrNotFound)
	}

	draft := types.DraftOf(current)
	if err := draft.Apply(fields); err != nil {
		return types.MenuItem{}, fmt.Errorf("UpdateMenuItemByID: %w", err)
	}
	if err := draft.Validate(); err != nil {
		return types.MenuItem{}, fmt.Errorf("UpdateMenuItemByID: %w", err)
	}

	updated := draft.Item(id)
	m.items[id] = updated

	return updated, nil
}

func (m *Memory) DeleteMenuItemByID(_ context.Context, id string) error {
	if err := checkID(id); err != nil {
		return fmt.Errorf("DeleteMenuItemByID: %w", err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.items[id]; !ok {
		return fmt.Errorf("DeleteMenuItemByID: %w", storage.ErrNotFound)
	}

	delete(m.items, id)
	for i, v := range m.order {
		if v == id {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}

	return nil
}

func (m *Memory) Ping(context.Context) error { return nil }

func (m *Memory) Close(context.Context) error { return nil }

func checkID(id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return fmt.Errorf("%w %q: %v", storage.ErrInvalidID, id, err)
	}
	return nil
}
