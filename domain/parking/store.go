package parking

import (
	"fmt"
	"os"
	"path/filepath"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Store persists an ordered region list as a JSON array of [x,y] pairs.
type Store interface {
	Load() ([]Region, error)
	Save([]Region) error
}

// FileStore is a Store backed by a single file that is rewritten in full on every save.
type FileStore struct {
	path string
}

func NewFileStore(path string) *FileStore { return &FileStore{path: path} }

// Path returns the backing file path.
func (s *FileStore) Path() string { return s.path }

// Load reads the region list. A missing file yields an error wrapping os.ErrNotExist.
func (s *FileStore) Load() ([]Region, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("read regions %s: %w", s.path, err)
	}
	return DecodeRegions(data)
}

// Save overwrites the backing file with regions. The file is replaced atomically
// through a temporary file in the same directory.
func (s *FileStore) Save(regions []Region) error {
	data, err := EncodeRegions(regions)
	if err != nil {
		return err
	}
	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, ".regions-*")
	if err != nil {
		return fmt.Errorf("save regions: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("save regions: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("save regions: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("save regions: %w", err)
	}
	return nil
}

// EncodeRegions renders regions in the persisted format. The encoding is
// deterministic so an unmodified list always produces identical bytes.
func EncodeRegions(regions []Region) ([]byte, error) {
	pairs := make([][2]int, len(regions))
	for i, r := range regions {
		pairs[i] = [2]int{r.X, r.Y}
	}
	data, err := json.Marshal(pairs)
	if err != nil {
		return nil, fmt.Errorf("encode regions: %w", err)
	}
	return append(data, '\n'), nil
}

// DecodeRegions parses the persisted format.
func DecodeRegions(data []byte) ([]Region, error) {
	var pairs [][2]int
	if err := json.Unmarshal(data, &pairs); err != nil {
		return nil, fmt.Errorf("decode regions: %w", err)
	}
	regions := make([]Region, len(pairs))
	for i, p := range pairs {
		regions[i] = Region{X: p[0], Y: p[1]}
	}
	return regions, nil
}
