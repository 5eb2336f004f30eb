package command

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pixil98/go-errors"
	"github.com/pixil98/go-peake/internal/game"
	"github.com/pixil98/go-peake/internal/storage"
)

type StorageConfig struct {
	Players FileConfig `json:"players"`
}

func (c *StorageConfig) validate() error {
	el := errors.NewErrorList()
	el.Add(c.Players.Validate("players"))
	return el.Err()
}

// BuildDirectory loads the player file and wraps it in a directory.
func (c *StorageConfig) BuildDirectory() (*game.PlayerDirectory, error) {
	store, err := storage.NewFileStore[*game.Record](c.Players.Path)
	if err != nil {
		return nil, fmt.Errorf("creating player store: %w", err)
	}
	return game.NewPlayerDirectory(store), nil
}

// FileConfig names a JSON file that is created on first save.
type FileConfig struct {
	Path string `json:"path"`
}

func (c *FileConfig) Validate(name string) error {
	if c.Path == "" {
		return fmt.Errorf("%s: path is required", name)
	}

	dir := filepath.Dir(c.Path)
	info, err := os.Stat(dir)
	if err != nil {
		return fmt.Errorf("%s: invalid directory %q: %w", name, dir, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%s: %q is not a directory", name, dir)
	}

	return nil
}
