package checkpoint

import (
	"context"
	"fmt"
	"os"

	"lpec/internal/providers"
	"lpec/internal/structures"
)

// Store is the persistence collaborator for the single checkpoint slot.
// Get reports found=false when no record has ever been written.
type Store interface {
	Get(ctx context.Context, key string) (raw []byte, found bool, err error)
	Put(ctx context.Context, key string, raw []byte) error
}

// StoreError wraps a failed checkpoint write or normalization. It is
// propagated to the caller, never retried.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("checkpoint %s failed: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

func NewStore(conf *structures.Config, logger providers.Logger) (Store, error) {
	switch conf.Checkpoint.Backend {
	case "redis":
		logger.Infof(providers.TypeCheckpoint, "Checkpoint backend: redis (%s)", conf.Checkpoint.Redis.Addr)
		return NewRedisStore(conf.Checkpoint.Redis), nil
	case "file":
		logger.Infof(providers.TypeCheckpoint, "Checkpoint backend: file (%s)", conf.Checkpoint.FilePath)
		return NewFileStore(conf.Checkpoint.FilePath), nil
	default:
		return nil, fmt.Errorf("unknown checkpoint backend: %s", conf.Checkpoint.Backend)
	}
}

// FileStore persists the checkpoint slot at a fixed path. The key names the
// record logically; the file backend holds exactly one slot.
type FileStore struct {
	path string
}

func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

func (s *FileStore) Get(_ context.Context, _ string) ([]byte, bool, error) {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, false, nil
		}
		return nil, false, err
	}
	return raw, true, nil
}

func (s *FileStore) Put(_ context.Context, _ string, raw []byte) error {
	tmpFile := s.path + ".tmp"
	file, err := os.Create(tmpFile)
	if err != nil {
		return err
	}

	if _, err = file.Write(raw); err != nil {
		file.Close()
		os.Remove(tmpFile)
		return err
	}

	if err = file.Sync(); err != nil {
		file.Close()
		os.Remove(tmpFile)
		return err
	}

	if err = file.Close(); err != nil {
		os.Remove(tmpFile)
		return err
	}

	return os.Rename(tmpFile, s.path)
}
