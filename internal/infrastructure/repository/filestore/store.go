package filestore

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
)

// Store keeps the whole tournament in one JSON document on disk. Reads are
// served from memory; every write rewrites the document through a temp file
// and rename, so a crash leaves either the old or the new snapshot.
type Store struct {
	mu    sync.RWMutex
	path  string
	state tournamentState
}

// Open loads the snapshot at path. A missing file is an empty tournament.
func Open(path string) (*Store, error) {
	if path == "" {
		return nil, crerr.New("snapshot path is required")
	}

	state, err := readSnapshot(path)
	if err != nil {
		return nil, err
	}

	return &Store{path: path, state: state}, nil
}

func (s *Store) Path() string {
	return s.path
}

func (s *Store) view(fn func(state tournamentState)) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	fn(s.state)
}

// update applies fn to a copy of the state and only keeps it once the
// snapshot is on disk.
func (s *Store) update(fn func(state *tournamentState)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.state.clone()
	fn(&next)
	if err := writeSnapshot(s.path, next); err != nil {
		return err
	}
	s.state = next
	return nil
}

func readSnapshot(path string) (tournamentState, error) {
	raw, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return emptyState(), nil
	}
	if err != nil {
		return tournamentState{}, crerr.Wrapf(err, "read snapshot %s", path)
	}
	if len(raw) == 0 {
		return emptyState(), nil
	}

	var doc snapshotDocument
	if err := sonic.Unmarshal(raw, &doc); err != nil {
		return tournamentState{}, crerr.Wrapf(err, "decode snapshot %s", path)
	}

	return stateFromDocument(doc)
}

func writeSnapshot(path string, state tournamentState) error {
	encoded, err := sonic.ConfigStd.MarshalIndent(state.document(), "", "  ")
	if err != nil {
		return crerr.Wrap(err, "encode snapshot")
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return crerr.Wrapf(err, "create snapshot dir %s", dir)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".*.tmp")
	if err != nil {
		return crerr.Wrap(err, "create snapshot temp file")
	}
	tmpName := tmp.Name()
	defer func() { _ = os.Remove(tmpName) }()

	if _, err := tmp.Write(encoded); err != nil {
		_ = tmp.Close()
		return crerr.Wrap(err, "write snapshot temp file")
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return crerr.Wrap(err, "sync snapshot temp file")
	}
	if err := tmp.Close(); err != nil {
		return crerr.Wrap(err, "close snapshot temp file")
	}
	if err := os.Rename(tmpName, path); err != nil {
		return crerr.Wrapf(err, "replace snapshot %s", path)
	}

	return nil
}
