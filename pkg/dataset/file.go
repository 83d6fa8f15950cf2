package dataset

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strconv"
	"sync"

	"github.com/matzehuels/stationviz/pkg/errors"
	"github.com/matzehuels/stationviz/pkg/transit"
)

// FileSource reads and writes <Dir>/<station>.json.
type FileSource struct {
	Dir string

	mu sync.Mutex
}

// NewFileSource returns a source rooted at dir.
func NewFileSource(dir string) *FileSource { return &FileSource{Dir: dir} }

func (s *FileSource) path(stationID int) string {
	return filepath.Join(s.Dir, strconv.Itoa(stationID)+".json")
}

func (s *FileSource) Load(_ context.Context, stationID int) (transit.Dataset, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	path := s.path(stationID)
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return transit.Dataset{}, errors.New(errors.ErrCodeNotFound, "station %d not found", stationID)
	}
	return transit.LoadDataset(path)
}

func (s *FileSource) Save(_ context.Context, stationID int, ds transit.Dataset) error {
	if err := ds.Validate(); err != nil {
		return err
	}
	var buf bytes.Buffer
	if err := transit.WriteDataset(ds, &buf); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := os.MkdirAll(s.Dir, 0o755); err != nil {
		return err
	}
	return os.WriteFile(s.path(stationID), buf.Bytes(), 0o644)
}

func (s *FileSource) Close(context.Context) error { return nil }

var _ Source = (*FileSource)(nil)
