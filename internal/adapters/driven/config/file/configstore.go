package file

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"github.com/rmayank-24/MarketForgeAI/internal/adapters/driven/storage/memory"
	"github.com/rmayank-24/MarketForgeAI/internal/core/ports/driven"
)

var _ driven.ConfigStore = (*ConfigStore)(nil)

// HomeDirName is the directory under the user's home holding config,
// prompts and the history database.
const HomeDirName = ".marketforge"

const configFileName = "config.toml"

// DefaultDir returns ~/.marketforge.
func DefaultDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, HomeDirName), nil
}

// ConfigStore persists settings as TOML tables. In memory the keys are
// flat ("llm.provider"); on disk they become nested tables ([llm]).
type ConfigStore struct {
	*memory.ConfigStore
	path string
}

// NewConfigStore opens dir/config.toml, creating dir if needed. An empty
// dir means DefaultDir. A missing file is an empty configuration.
func NewConfigStore(dir string) (*ConfigStore, error) {
	if dir == "" {
		d, err := DefaultDir()
		if err != nil {
			return nil, err
		}
		dir = d
	}
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("create config dir: %w", err)
	}

	s := &ConfigStore{
		ConfigStore: memory.NewConfigStore(),
		path:        filepath.Join(dir, configFileName),
	}
	if err := s.Load(); err != nil {
		return nil, err
	}
	return s, nil
}

// Load replaces the in-memory keys with the file's contents.
func (s *ConfigStore) Load() error {
	raw, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		s.Replace(nil)
		return nil
	}
	if err != nil {
		return err
	}

	var doc map[string]any
	if err := toml.Unmarshal(raw, &doc); err != nil {
		return fmt.Errorf("parse %s: %w", s.path, err)
	}
	flat := make(map[string]any)
	flatten(flat, "", doc)
	s.Replace(flat)
	return nil
}

// Save writes every key back as nested tables. The file holds API keys
// and refresh tokens, so it is owner-only.
func (s *ConfigStore) Save() error {
	raw, err := toml.Marshal(nest(s.Snapshot()))
	if err != nil {
		return err
	}
	return os.WriteFile(s.path, raw, 0o600)
}

// Path returns the TOML file location.
func (s *ConfigStore) Path() string {
	return s.path
}

// flatten copies table into dst with dotted keys: {"a": {"b": 1}} -> {"a.b": 1}.
func flatten(dst map[string]any, prefix string, table map[string]any) {
	for k, v := range table {
		if prefix != "" {
			k = prefix + "." + k
		}
		if sub, ok := v.(map[string]any); ok {
			flatten(dst, k, sub)
			continue
		}
		dst[k] = v
	}
}

// nest is the inverse of flatten. When a key is both a value and a table
// prefix ("a" and "a.b"), the table wins.
func nest(flat map[string]any) map[string]any {
	root := make(map[string]any)
	for key, v := range flat {
		path := strings.Split(key, ".")
		table := root
		for _, name := range path[:len(path)-1] {
			sub, ok := table[name].(map[string]any)
			if !ok {
				sub = make(map[string]any)
				table[name] = sub
			}
			table = sub
		}
		leaf := path[len(path)-1]
		if _, isTable := table[leaf].(map[string]any); !isTable {
			table[leaf] = v
		}
	}
	return root
}
