// Package vault provides persisted identity storage for the console session
// stores: one slot per role, each store the sole writer and reader of its
// slot.
package vault

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	goerrors "github.com/goliatone/go-errors"

	console "github.com/goliatone/go-console"
)

var _ console.Vault = (*File)(nil)

// File keeps one JSON file per role under a directory, the local-storage
// analog for command-line and desktop shells.
type File struct {
	dir string
	mu  sync.RWMutex
}

// NewFile builds a file vault rooted at dir, creating it when missing.
func NewFile(dir string) (*File, error) {
	if dir == "" {
		return nil, goerrors.New("vault directory is required", goerrors.CategoryBadInput)
	}
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to create vault directory")
	}
	return &File{dir: dir}, nil
}

func (f *File) Load(_ context.Context, role console.Role) (*console.Identity, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()

	raw, err := os.ReadFile(f.path(role))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to read vault slot")
	}
	if len(raw) == 0 {
		return nil, nil
	}

	identity := &console.Identity{}
	if err := json.Unmarshal(raw, identity); err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to decode vault slot")
	}
	return identity, nil
}

func (f *File) Store(_ context.Context, role console.Role, identity *console.Identity) error {
	if identity == nil {
		return f.Clear(context.Background(), role)
	}

	raw, err := json.MarshalIndent(identity, "", "  ")
	if err != nil {
		return goerrors.Wrap(err, goerrors.CategoryInternal, "failed to encode identity")
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	if err := os.WriteFile(f.path(role), raw, 0o600); err != nil {
		return goerrors.Wrap(err, goerrors.CategoryInternal, "failed to write vault slot")
	}
	return nil
}

func (f *File) Clear(_ context.Context, role console.Role) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := os.Remove(f.path(role)); err != nil && !os.IsNotExist(err) {
		return goerrors.Wrap(err, goerrors.CategoryInternal, "failed to clear vault slot")
	}
	return nil
}

func (f *File) path(role console.Role) string {
	return filepath.Join(f.dir, string(role)+".json")
}
