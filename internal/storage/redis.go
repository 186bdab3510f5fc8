package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/realmforge/realmforge/pkg/character"
	"github.com/realmforge/realmforge/pkg/session"
	"github.com/realmforge/realmforge/pkg/world"
)

// Key prefixes for the vault collections.
const (
	keyCharacter = "character:"
	keyWorld     = "world:"
	keyLibrary   = "library:"
	keyAdventure = "adventure:"
)

// RedisStorage implements the Storage interface using Redis for vault
// data and filesystem for static bestiary templates.
type RedisStorage struct {
	client  *redis.Client
	logger  *slog.Logger
	dataDir string
}

// Ensure RedisStorage implements Storage interface
var _ Storage = (*RedisStorage)(nil)

// NewRedisStorage creates a new Redis storage instance. redisURL is a
// redis:// URL; a bare host:port also works.
func NewRedisStorage(redisURL string, dataDir string, logger *slog.Logger) *RedisStorage {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		opts = &redis.Options{Addr: redisURL}
	}

	if dataDir == "" {
		dataDir = "./data"
	}

	return &RedisStorage{
		client:  redis.NewClient(opts),
		logger:  logger,
		dataDir: dataDir,
	}
}

// Health and lifecycle methods

func (r *RedisStorage) Ping(ctx context.Context) error {
	if err := r.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis ping failed: %w", err)
	}
	return nil
}

func (r *RedisStorage) Close() error {
	if err := r.client.Close(); err != nil {
		r.logger.Error("Failed to close Redis connection", "error", err)
		return err
	}
	r.logger.Info("Redis connection closed")
	return nil
}

// WaitForConnection waits for Redis to become available (used during startup)
func (r *RedisStorage) WaitForConnection(ctx context.Context) error {
	maxRetries := 30
	retryDelay := 2 * time.Second

	for i := 0; i < maxRetries; i++ {
		if err := r.Ping(ctx); err != nil {
			r.logger.Debug("Redis not ready yet", "error", err, "attempt", i+1)

			select {
			case <-ctx.Done():
				return fmt.Errorf("context cancelled while waiting for redis: %w", ctx.Err())
			case <-time.After(retryDelay):
				continue
			}
		}

		r.logger.Info("Redis connection established")
		return nil
	}

	return fmt.Errorf("redis did not become available after %d attempts", maxRetries)
}

// setJSON marshals v and writes it under key. Vault entries do not
// expire.
func (r *RedisStorage) setJSON(ctx context.Context, key string, v interface{}) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %w", key, err)
	}
	if err := r.client.Set(ctx, key, data, 0).Err(); err != nil {
		r.logger.Error("Failed to save key", "key", key, "error", err)
		return fmt.Errorf("failed to save %s: %w", key, err)
	}
	return nil
}

// getJSON reads key into v. Returns (false, nil) when the key does not
// exist.
func (r *RedisStorage) getJSON(ctx context.Context, key string, v interface{}) (bool, error) {
	data, err := r.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to load %s: %w", key, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return false, fmt.Errorf("failed to unmarshal %s: %w", key, err)
	}
	return true, nil
}

// scanKeys collects every key under the given prefix.
func (r *RedisStorage) scanKeys(ctx context.Context, prefix string) ([]string, error) {
	var keys []string
	iter := r.client.Scan(ctx, 0, prefix+"*", 0).Iterator()
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("failed to scan %s keys: %w", prefix, err)
	}
	return keys, nil
}

// Character vault

func (r *RedisStorage) SaveCharacter(ctx context.Context, c *character.Character) error {
	if c.ID == "" {
		return fmt.Errorf("character id is required")
	}
	if c.CreatedAt.IsZero() {
		c.CreatedAt = time.Now()
	}
	return r.setJSON(ctx, keyCharacter+c.ID, c)
}

func (r *RedisStorage) LoadCharacter(ctx context.Context, id string) (*character.Character, error) {
	var c character.Character
	found, err := r.getJSON(ctx, keyCharacter+id, &c)
	if err != nil || !found {
		return nil, err
	}
	return &c, nil
}

func (r *RedisStorage) ListCharacters(ctx context.Context) ([]*character.Character, error) {
	keys, err := r.scanKeys(ctx, keyCharacter)
	if err != nil {
		return nil, err
	}
	out := make([]*character.Character, 0, len(keys))
	for _, key := range keys {
		var c character.Character
		found, err := r.getJSON(ctx, key, &c)
		if err != nil {
			return nil, err
		}
		if found {
			out = append(out, &c)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (r *RedisStorage) DeleteCharacter(ctx context.Context, id string) error {
	if err := r.client.Del(ctx, keyCharacter+id).Err(); err != nil {
		return fmt.Errorf("failed to delete character: %w", err)
	}
	return nil
}

// World vault

func (r *RedisStorage) SaveWorld(ctx context.Context, w *world.World) error {
	if w.ID == "" {
		return fmt.Errorf("world id is required")
	}
	if w.CreatedAt.IsZero() {
		w.CreatedAt = time.Now()
	}
	return r.setJSON(ctx, keyWorld+w.ID, w)
}

func (r *RedisStorage) LoadWorld(ctx context.Context, id string) (*world.World, error) {
	var w world.World
	found, err := r.getJSON(ctx, keyWorld+id, &w)
	if err != nil || !found {
		return nil, err
	}
	return &w, nil
}

func (r *RedisStorage) ListWorlds(ctx context.Context) ([]*world.World, error) {
	keys, err := r.scanKeys(ctx, keyWorld)
	if err != nil {
		return nil, err
	}
	out := make([]*world.World, 0, len(keys))
	for _, key := range keys {
		var w world.World
		found, err := r.getJSON(ctx, key, &w)
		if err != nil {
			return nil, err
		}
		if found {
			out = append(out, &w)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (r *RedisStorage) DeleteWorld(ctx context.Context, id string) error {
	if err := r.client.Del(ctx, keyWorld+id).Err(); err != nil {
		return fmt.Errorf("failed to delete world: %w", err)
	}
	return nil
}

// Community library

func (r *RedisStorage) SaveLibraryItem(ctx context.Context, item *world.CommunityItem) error {
	if err := item.Validate(); err != nil {
		return fmt.Errorf("invalid library item: %w", err)
	}
	if item.Timestamp == 0 {
		item.Timestamp = time.Now().UnixMilli()
	}
	return r.setJSON(ctx, keyLibrary+item.ID, item)
}

func (r *RedisStorage) ListLibraryItems(ctx context.Context, itemType string) ([]*world.CommunityItem, error) {
	keys, err := r.scanKeys(ctx, keyLibrary)
	if err != nil {
		return nil, err
	}
	out := make([]*world.CommunityItem, 0, len(keys))
	for _, key := range keys {
		var item world.CommunityItem
		found, err := r.getJSON(ctx, key, &item)
		if err != nil {
			return nil, err
		}
		if !found {
			continue
		}
		if itemType != "" && item.Type != itemType {
			continue
		}
		out = append(out, &item)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Timestamp > out[j].Timestamp
	})
	return out, nil
}

func (r *RedisStorage) DeleteLibraryItem(ctx context.Context, id string) error {
	if err := r.client.Del(ctx, keyLibrary+id).Err(); err != nil {
		return fmt.Errorf("failed to delete library item: %w", err)
	}
	return nil
}

// Adventure saves

func (r *RedisStorage) SaveAdventure(ctx context.Context, save *session.Save) error {
	save.LastUpdated = time.Now()
	return r.setJSON(ctx, keyAdventure+save.ID.String(), save)
}

func (r *RedisStorage) LoadAdventure(ctx context.Context, id uuid.UUID) (*session.Save, error) {
	var save session.Save
	found, err := r.getJSON(ctx, keyAdventure+id.String(), &save)
	if err != nil || !found {
		return nil, err
	}
	return &save, nil
}

func (r *RedisStorage) DeleteAdventure(ctx context.Context, id uuid.UUID) error {
	if err := r.client.Del(ctx, keyAdventure+id.String()).Err(); err != nil {
		return fmt.Errorf("failed to delete adventure save: %w", err)
	}
	return nil
}
