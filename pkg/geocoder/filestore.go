package geocoder

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/angiepellets-dev/Holz-Markt/pkg"
	"github.com/angiepellets-dev/Holz-Markt/pkg/datastructure"
	"github.com/dsnet/compress/bzip2"
)

// cacheDocument is the on-disk shape: the entry map nested under the fixed
// namespace key, so one file can carry caches of several deployments.
type cacheDocument map[string]map[string]*datastructure.Location

// FileStore keeps the cache as a bzip2-compressed json document on disk.
type FileStore struct {
	path string
}

func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

func (fs *FileStore) Load() (map[string]*datastructure.Location, error) {
	f, err := os.Open(fs.path)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]*datastructure.Location{}, nil
		}
		return nil, err
	}
	defer f.Close()

	zr, err := bzip2.NewReader(f, nil)
	if err != nil {
		return nil, err
	}
	defer zr.Close()

	var doc cacheDocument
	if err := json.NewDecoder(zr).Decode(&doc); err != nil {
		return nil, err
	}

	entries := doc[pkg.GEOCACHE_NAMESPACE]
	if entries == nil {
		entries = map[string]*datastructure.Location{}
	}
	return entries, nil
}

func (fs *FileStore) Save(entries map[string]*datastructure.Location) error {
	if err := os.MkdirAll(filepath.Dir(fs.path), 0o755); err != nil {
		return err
	}

	tmp := fs.path + ".tmp"
	f, err := os.Create(tmp)
	if err != nil {
		return err
	}

	zw, err := bzip2.NewWriter(f, &bzip2.WriterConfig{Level: bzip2.DefaultCompression})
	if err != nil {
		f.Close()
		return err
	}

	doc := cacheDocument{pkg.GEOCACHE_NAMESPACE: entries}
	if err := json.NewEncoder(zw).Encode(doc); err != nil {
		zw.Close()
		f.Close()
		return err
	}
	if err := zw.Close(); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}

	return os.Rename(tmp, fs.path)
}
