package storage

import (
	"context"

	"github.com/google/uuid"

	"github.com/realmforge/realmforge/pkg/actor"
	"github.com/realmforge/realmforge/pkg/character"
	"github.com/realmforge/realmforge/pkg/session"
	"github.com/realmforge/realmforge/pkg/world"
)

// HealthChecker defines basic health check capabilities
type HealthChecker interface {
	// Ping tests the service connection
	Ping(ctx context.Context) error
}

// Closer defines cleanup capabilities
type Closer interface {
	// Close closes the service connection
	Close() error
}

// Storage defines persistence for the vault collections. Loads return
// nil without error when the key does not exist; writes are
// last-write-wins. Saves stamp a creation time on first write, and
// lists come back newest first.
type Storage interface {
	HealthChecker
	Closer

	// Character vault
	SaveCharacter(ctx context.Context, c *character.Character) error
	LoadCharacter(ctx context.Context, id string) (*character.Character, error)
	ListCharacters(ctx context.Context) ([]*character.Character, error)
	DeleteCharacter(ctx context.Context, id string) error

	// World vault
	SaveWorld(ctx context.Context, w *world.World) error
	LoadWorld(ctx context.Context, id string) (*world.World, error)
	ListWorlds(ctx context.Context) ([]*world.World, error)
	DeleteWorld(ctx context.Context, id string) error

	// Community library
	SaveLibraryItem(ctx context.Context, item *world.CommunityItem) error
	ListLibraryItems(ctx context.Context, itemType string) ([]*world.CommunityItem, error)
	DeleteLibraryItem(ctx context.Context, id string) error

	// Adventure saves
	SaveAdventure(ctx context.Context, save *session.Save) error
	LoadAdventure(ctx context.Context, id uuid.UUID) (*session.Save, error)
	DeleteAdventure(ctx context.Context, id uuid.UUID) error

	// Bestiary templates (filesystem-backed, read-only)
	GetTemplate(ctx context.Context, name string) (*actor.Template, error)
	ListTemplates(ctx context.Context) ([]string, error)
}
