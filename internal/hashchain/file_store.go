package hashchain

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/osse101/ProvablyFair_Go/internal/domain"
)

// finalHashFile is the layout of finalHash.json
type finalHashFile struct {
	FinalHash string                `json:"finalHash"`
	Segments  []domain.ChainSegment `json:"segments"`
	Next      int64                 `json:"next"`
}

// FileStore keeps the chain as two JSON artifacts in dir: hashChain.json, the
// ordered list of every link, and finalHash.json, the commitments and the
// issued pointer. Every write replaces a file via rename so a crash leaves
// either the old or the new version on disk.
type FileStore struct {
	dir   string
	mu    sync.Mutex
	links []string
	meta  finalHashFile
}

// NewFileStore creates a store rooted at dir, creating it if needed
func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, dirPermissions); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToWriteFile, err)
	}
	return &FileStore{dir: dir}, nil
}

// Load reads both artifacts. It returns nil when no chain has been written.
func (f *FileStore) Load(ctx context.Context) (*domain.ChainState, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var meta finalHashFile
	if err := readJSON(filepath.Join(f.dir, FinalHashFileName), &meta); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}
	var links []string
	if err := readJSON(filepath.Join(f.dir, ChainFileName), &links); err != nil {
		return nil, err
	}

	// hashChain.json is written first; drop links from a segment whose
	// commitment never made it into finalHash.json
	var end int64
	if n := len(meta.Segments); n > 0 {
		end = meta.Segments[n-1].End()
	}
	if int64(len(links)) < end {
		return nil, fmt.Errorf("%w: %s holds %d links, commitments cover %d", domain.ErrChainMismatch, ChainFileName, len(links), end)
	}
	links = links[:end]

	f.links = links
	f.meta = meta
	return &domain.ChainState{
		Links:    append([]string(nil), links...),
		Segments: append([]domain.ChainSegment(nil), meta.Segments...),
		Next:     meta.Next,
	}, nil
}

// AppendSegment writes the extended chain and then its commitment
func (f *FileStore) AppendSegment(ctx context.Context, seg domain.ChainSegment, links []string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if seg.Start != int64(len(f.links)) {
		return fmt.Errorf("%w: %s", domain.ErrConcurrencyConflict, ErrMsgSegmentOverlap)
	}

	all := append(append([]string(nil), f.links...), links...)
	if err := writeJSONAtomic(filepath.Join(f.dir, ChainFileName), all); err != nil {
		return err
	}

	meta := f.meta
	meta.Segments = append(append([]domain.ChainSegment(nil), meta.Segments...), seg)
	meta.FinalHash = seg.FinalHash
	if err := writeJSONAtomic(filepath.Join(f.dir, FinalHashFileName), meta); err != nil {
		return err
	}

	f.links = all
	f.meta = meta
	return nil
}

// SaveNext records the issued pointer
func (f *FileStore) SaveNext(ctx context.Context, next int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	meta := f.meta
	meta.Next = next
	if err := writeJSONAtomic(filepath.Join(f.dir, FinalHashFileName), meta); err != nil {
		return err
	}
	f.meta = meta
	return nil
}

// Checkpoint returns a SaveFunc that writes partial generation progress
func (f *FileStore) Checkpoint() SaveFunc {
	path := filepath.Join(f.dir, CheckpointFileName)
	return func(partial []string, final bool) error {
		if final {
			if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
				return err
			}
			return nil
		}
		return writeJSONAtomic(path, partial)
	}
}

func readJSON(path string, v interface{}) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("%s: %s: %w", ErrMsgFailedToLoadChain, path, err)
	}
	return nil
}

func writeJSONAtomic(path string, v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToWriteFile, err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName) // no-op after a successful rename

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("%s: %w", ErrMsgFailedToWriteFile, err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("%s: %w", ErrMsgFailedToWriteFile, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToWriteFile, err)
	}
	if err := os.Chmod(tmpName, filePermissions); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToWriteFile, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToWriteFile, err)
	}
	return nil
}

// ReadArtifacts loads a chain from a pair of artifact files without a store,
// for offline verification
func ReadArtifacts(chainPath, finalHashPath string) (*domain.ChainState, error) {
	var meta finalHashFile
	if err := readJSON(finalHashPath, &meta); err != nil {
		return nil, err
	}
	var links []string
	if err := readJSON(chainPath, &links); err != nil {
		return nil, err
	}
	return &domain.ChainState{Links: links, Segments: meta.Segments, Next: meta.Next}, nil
}
