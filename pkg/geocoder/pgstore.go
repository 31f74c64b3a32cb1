package geocoder

import (
	"database/sql"
	"encoding/json"
	"errors"

	"github.com/angiepellets-dev/Holz-Markt/pkg"
	"github.com/angiepellets-dev/Holz-Markt/pkg/datastructure"
	_ "github.com/lib/pq"
)

// PGStore keeps the cache as a single namespace row in postgres, for
// deployments where the server has no durable disk.
type PGStore struct {
	db *sql.DB
}

func NewPGStore(dsn string) (*PGStore, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, err
	}

	_, err = db.Exec(`CREATE TABLE IF NOT EXISTS geocache (
		namespace TEXT PRIMARY KEY,
		entries   JSONB NOT NULL
	)`)
	if err != nil {
		db.Close()
		return nil, err
	}

	return &PGStore{db: db}, nil
}

func (ps *PGStore) Load() (map[string]*datastructure.Location, error) {
	var raw []byte
	err := ps.db.QueryRow(`SELECT entries FROM geocache WHERE namespace = $1`,
		pkg.GEOCACHE_NAMESPACE).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return map[string]*datastructure.Location{}, nil
	}
	if err != nil {
		return nil, err
	}

	var entries map[string]*datastructure.Location
	if err := json.Unmarshal(raw, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

func (ps *PGStore) Save(entries map[string]*datastructure.Location) error {
	raw, err := json.Marshal(entries)
	if err != nil {
		return err
	}

	_, err = ps.db.Exec(`INSERT INTO geocache (namespace, entries) VALUES ($1, $2)
		ON CONFLICT (namespace) DO UPDATE SET entries = EXCLUDED.entries`,
		pkg.GEOCACHE_NAMESPACE, raw)
	return err
}

func (ps *PGStore) Close() error {
	return ps.db.Close()
}
