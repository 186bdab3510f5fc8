package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/realmforge/realmforge/pkg/actor"
)

// Bestiary operations (filesystem-backed, read-only)

func (r *RedisStorage) GetTemplate(ctx context.Context, name string) (*actor.Template, error) {
	path := filepath.Join(r.dataDir, "bestiary", name+".json")

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read bestiary file: %w", err)
	}

	var tmpl actor.Template
	if err := json.Unmarshal(data, &tmpl); err != nil {
		return nil, fmt.Errorf("failed to unmarshal bestiary template: %w", err)
	}

	return &tmpl, nil
}

func (r *RedisStorage) ListTemplates(ctx context.Context) ([]string, error) {
	bestiaryPath := filepath.Join(r.dataDir, "bestiary")

	entries, err := os.ReadDir(bestiaryPath)
	if err != nil {
		if os.IsNotExist(err) {
			return []string{}, nil
		}
		return nil, fmt.Errorf("failed to read bestiary directory: %w", err)
	}

	var names []string
	for _, entry := range entries {
		if !entry.IsDir() && filepath.Ext(entry.Name()) == ".json" {
			names = append(names, entry.Name()[:len(entry.Name())-5])
		}
	}

	return names, nil
}
