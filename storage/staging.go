package storage

import (
	"context"
	"fmt"
	"io"
	"path"
	"sync"

	"github.com/google/uuid"

	"github.com/kbukum/flairscribe/errors"
)

// Stage holds the files of one request under a prefix no other request
// shares. Call Cleanup when the request is done.
type Stage struct {
	store  Storage
	prefix string

	mu   sync.Mutex
	keys []string
}

// NewStage opens a stage under root/<uuid>.
func NewStage(store Storage, root string) *Stage {
	return &Stage{store: store, prefix: path.Join(root, uuid.NewString())}
}

// Prefix returns the key prefix of this stage.
func (s *Stage) Prefix() string { return s.prefix }

// Put stores the contents of r and returns the key it was stored under.
// Keys are numbered so two uploads with the same name do not collide.
func (s *Stage) Put(ctx context.Context, name string, r io.Reader) (string, error) {
	s.mu.Lock()
	key := path.Join(s.prefix, fmt.Sprintf("%03d_%s", len(s.keys), name))
	s.keys = append(s.keys, key)
	s.mu.Unlock()

	if err := s.store.Upload(ctx, key, r); err != nil {
		return "", errors.StorageError("upload", err)
	}
	return key, nil
}

// Opener returns a function that opens key on each call, so a retried
// read starts from the beginning.
func (s *Stage) Opener(ctx context.Context, key string) func() (io.ReadCloser, error) {
	return func() (io.ReadCloser, error) {
		rc, err := s.store.Download(ctx, key)
		if err != nil {
			return nil, errors.StorageError("download", err)
		}
		return rc, nil
	}
}

// Cleanup deletes everything under the stage prefix. It keeps going after
// a failed delete and returns the first error.
func (s *Stage) Cleanup(ctx context.Context) error {
	files, err := s.store.List(ctx, s.prefix+"/")
	if err != nil {
		return errors.StorageError("list", err)
	}
	var first error
	for _, f := range files {
		if err := s.store.Delete(ctx, f.Path); err != nil && first == nil {
			first = errors.StorageError("delete", err)
		}
	}
	return first
}
