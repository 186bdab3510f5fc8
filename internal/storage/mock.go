package storage

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/realmforge/realmforge/pkg/actor"
	"github.com/realmforge/realmforge/pkg/character"
	"github.com/realmforge/realmforge/pkg/session"
	"github.com/realmforge/realmforge/pkg/world"
)

// MockStorage is a mock implementation of Storage for testing
type MockStorage struct {
	mu         sync.RWMutex
	characters map[string]*character.Character
	worlds     map[string]*world.World
	library    map[string]*world.CommunityItem
	adventures map[uuid.UUID]*session.Save
	templates  map[string]*actor.Template
	pingError  error
	saveError  error
}

// Ensure MockStorage implements Storage interface
var _ Storage = (*MockStorage)(nil)

// NewMockStorage creates a new mock storage
func NewMockStorage() *MockStorage {
	return &MockStorage{
		characters: make(map[string]*character.Character),
		worlds:     make(map[string]*world.World),
		library:    make(map[string]*world.CommunityItem),
		adventures: make(map[uuid.UUID]*session.Save),
		templates:  make(map[string]*actor.Template),
	}
}

// SetPingError configures the mock to fail on ping with the given error
func (m *MockStorage) SetPingError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pingError = err
}

// SetSaveError configures every write to fail with the given error
func (m *MockStorage) SetSaveError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.saveError = err
}

// AddTemplate seeds a bestiary template
func (m *MockStorage) AddTemplate(name string, tmpl *actor.Template) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.templates[name] = tmpl
}

func (m *MockStorage) Ping(ctx context.Context) error {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.pingError
}

func (m *MockStorage) Close() error {
	return nil
}

func (m *MockStorage) SaveCharacter(ctx context.Context, c *character.Character) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.saveError != nil {
		return m.saveError
	}
	if c.CreatedAt.IsZero() {
		c.CreatedAt = time.Now()
	}
	m.characters[c.ID] = c
	return nil
}

func (m *MockStorage) LoadCharacter(ctx context.Context, id string) (*character.Character, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.characters[id], nil
}

func (m *MockStorage) ListCharacters(ctx context.Context) ([]*character.Character, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*character.Character, 0, len(m.characters))
	for _, c := range m.characters {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (m *MockStorage) DeleteCharacter(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.characters, id)
	return nil
}

func (m *MockStorage) SaveWorld(ctx context.Context, w *world.World) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.saveError != nil {
		return m.saveError
	}
	if w.CreatedAt.IsZero() {
		w.CreatedAt = time.Now()
	}
	m.worlds[w.ID] = w
	return nil
}

func (m *MockStorage) LoadWorld(ctx context.Context, id string) (*world.World, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.worlds[id], nil
}

func (m *MockStorage) ListWorlds(ctx context.Context) ([]*world.World, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*world.World, 0, len(m.worlds))
	for _, w := range m.worlds {
		out = append(out, w)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (m *MockStorage) DeleteWorld(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.worlds, id)
	return nil
}

func (m *MockStorage) SaveLibraryItem(ctx context.Context, item *world.CommunityItem) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.saveError != nil {
		return m.saveError
	}
	if item.Timestamp == 0 {
		item.Timestamp = time.Now().UnixMilli()
	}
	m.library[item.ID] = item
	return nil
}

func (m *MockStorage) ListLibraryItems(ctx context.Context, itemType string) ([]*world.CommunityItem, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*world.CommunityItem, 0, len(m.library))
	for _, item := range m.library {
		if itemType != "" && item.Type != itemType {
			continue
		}
		out = append(out, item)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Timestamp > out[j].Timestamp
	})
	return out, nil
}

func (m *MockStorage) DeleteLibraryItem(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.library, id)
	return nil
}

func (m *MockStorage) SaveAdventure(ctx context.Context, save *session.Save) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.saveError != nil {
		return m.saveError
	}
	m.adventures[save.ID] = save
	return nil
}

func (m *MockStorage) LoadAdventure(ctx context.Context, id uuid.UUID) (*session.Save, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.adventures[id], nil
}

func (m *MockStorage) DeleteAdventure(ctx context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.adventures, id)
	return nil
}

func (m *MockStorage) GetTemplate(ctx context.Context, name string) (*actor.Template, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if tmpl, ok := m.templates[name]; ok {
		return tmpl, nil
	}
	return nil, nil
}

func (m *MockStorage) ListTemplates(ctx context.Context) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	names := make([]string, 0, len(m.templates))
	for name := range m.templates {
		names = append(names, name)
	}
	return names, nil
}
