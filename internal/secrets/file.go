package secrets

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/BurntSushi/toml"
)

// FileStore reads top-level string keys from a TOML secrets file, e.g.
//
//	GROQ_API_KEY = "gsk_..."
type FileStore struct {
	Path string
}

func NewFileStore(path string) *FileStore {
	return &FileStore{Path: path}
}

func (s *FileStore) Lookup(ctx context.Context, key string) (string, error) {
	if s == nil || strings.TrimSpace(s.Path) == "" {
		return "", ErrNotFound
	}

	var values map[string]any
	if _, err := toml.DecodeFile(s.Path, &values); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("decode secrets file %s: %w", s.Path, err)
	}

	raw, ok := values[key]
	if !ok {
		return "", ErrNotFound
	}
	value, ok := raw.(string)
	if !ok {
		return "", fmt.Errorf("secret %s in %s is not a string", key, s.Path)
	}
	if strings.TrimSpace(value) == "" {
		return "", ErrNotFound
	}
	return value, nil
}
