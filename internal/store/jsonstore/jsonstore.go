package jsonstore

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"todolite/internal/model"
)

// JSON-backed storage. The whole collection lives under one key, mirrored to
// a single human-readable file; every Save overwrites it completely.
// No locking for v1; fine for a local single-user app.

// storageKey is the fixed key the collection is persisted under. The file
// name derives from it.
const storageKey = "svelte-pwa-todos"

// FileName is the on-disk name of the todo document.
const FileName = storageKey + ".json"

// Store mirrors the todo collection to disk. It is the recovery boundary for
// persistence failures: Load never propagates an error, it logs and falls
// back to an empty collection.
type Store struct {
	path   string
	logger *zap.Logger
}

func New(path string, logger *zap.Logger) *Store {
	return &Store{path: path, logger: logger}
}

// Load reads the persisted collection. An absent file means a fresh start.
// An unreadable or corrupt value is logged and treated as empty; malformed
// elements inside an otherwise valid array are dropped individually.
func (s *Store) Load() []model.Todo {
	b, err := os.ReadFile(s.path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			s.logger.Warn("read todo file, starting empty",
				zap.String("path", s.path), zap.Error(err))
		}
		return []model.Todo{}
	}
	todos, dropped, err := model.DecodeList(b)
	if err != nil {
		s.logger.Warn("corrupt todo file, starting empty",
			zap.String("path", s.path), zap.Error(err))
		return []model.Todo{}
	}
	if dropped > 0 {
		s.logger.Warn("dropped malformed todo entries",
			zap.String("path", s.path), zap.Int("count", dropped))
	}
	return todos
}

// Save serializes the full collection and overwrites the stored value.
// Last write wins; there is no diffing and no partial write.
func (s *Store) Save(todos []model.Todo) error {
	b, err := json.MarshalIndent(todos, "", "  ")
	if err != nil {
		return fmt.Errorf("json marshal: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("mkdir: %w", err)
	}
	if err := os.WriteFile(s.path, b, 0o644); err != nil {
		return fmt.Errorf("write file: %w", err)
	}
	return nil
}
