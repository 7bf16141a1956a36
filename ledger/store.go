// Package ledger implements the on-disk registry of declared interfaces the
// transaction compiler introspects: blueprint descriptors keyed by hosting
// package, and component records pointing back at their blueprint. Store
// implements abi.Provider.
package ledger

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	lru "github.com/hashicorp/golang-lru"
	"github.com/syndtr/goleveldb/leveldb"
	"github.com/syndtr/goleveldb/leveldb/storage"

	"github.com/ores-network/gores/abi"
	"github.com/ores-network/gores/common"
)

const blueprintCacheSize = 256

var (
	blueprintKeyPrefix = []byte("bp/")
	componentKeyPrefix = []byte("cp/")
)

// Store is a goleveldb-backed interface registry with an LRU read cache on
// blueprint records. Reads are safe to repeat within a build; the cache keeps
// repeated introspection of the same blueprint off the disk.
type Store struct {
	db    *leveldb.DB
	cache *lru.Cache
	log   *slog.Logger
}

// componentRecord points a component instance back at the blueprint that
// defines its methods.
type componentRecord struct {
	Package   common.Address `json:"package"`
	Blueprint string         `json:"blueprint"`
}

// Open opens or creates a registry at the given path.
func Open(path string) (*Store, error) {
	db, err := leveldb.OpenFile(path, nil)
	if err != nil {
		return nil, fmt.Errorf("ledger: open %s: %w", path, err)
	}
	return newStore(db)
}

// OpenMemory opens an in-memory registry, used by tests and tooling.
func OpenMemory() (*Store, error) {
	db, err := leveldb.Open(storage.NewMemStorage(), nil)
	if err != nil {
		return nil, fmt.Errorf("ledger: open memory storage: %w", err)
	}
	return newStore(db)
}

func newStore(db *leveldb.DB) (*Store, error) {
	cache, err := lru.New(blueprintCacheSize)
	if err != nil {
		return nil, err
	}
	return &Store{db: db, cache: cache, log: slog.Default()}, nil
}

// Close releases the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

func blueprintKey(pkg common.Address, blueprint string) []byte {
	key := append([]byte(nil), blueprintKeyPrefix...)
	key = append(key, pkg.Bytes()...)
	key = append(key, '/')
	return append(key, blueprint...)
}

func componentKey(component common.Address) []byte {
	key := append([]byte(nil), componentKeyPrefix...)
	return append(key, component.Bytes()...)
}

// PutBlueprint registers the blueprint descriptor hosted by a package.
func (s *Store) PutBlueprint(pkg common.Address, bp *abi.Blueprint) error {
	data, err := json.Marshal(bp)
	if err != nil {
		return err
	}
	key := blueprintKey(pkg, bp.Name)
	if err := s.db.Put(key, data, nil); err != nil {
		return err
	}
	s.cache.Remove(string(key))
	return nil
}

// PutComponent registers a component instance against its blueprint.
func (s *Store) PutComponent(component, pkg common.Address, blueprint string) error {
	data, err := json.Marshal(componentRecord{Package: pkg, Blueprint: blueprint})
	if err != nil {
		return err
	}
	return s.db.Put(componentKey(component), data, nil)
}

// ExportFunctionABI implements abi.Provider.
func (s *Store) ExportFunctionABI(pkg common.Address, blueprint string) (*abi.Blueprint, error) {
	return s.loadBlueprint(pkg, blueprint)
}

// ExportMethodABI implements abi.Provider.
func (s *Store) ExportMethodABI(component common.Address) (*abi.Blueprint, error) {
	data, err := s.db.Get(componentKey(component), nil)
	if errors.Is(err, leveldb.ErrNotFound) {
		return nil, fmt.Errorf("%w: component %s", abi.ErrNotFound, component)
	}
	if err != nil {
		return nil, err
	}
	var record componentRecord
	if err := json.Unmarshal(data, &record); err != nil {
		return nil, fmt.Errorf("ledger: corrupt component record for %s: %w", component, err)
	}
	return s.loadBlueprint(record.Package, record.Blueprint)
}

func (s *Store) loadBlueprint(pkg common.Address, blueprint string) (*abi.Blueprint, error) {
	key := blueprintKey(pkg, blueprint)
	if cached, ok := s.cache.Get(string(key)); ok {
		return cached.(*abi.Blueprint), nil
	}
	data, err := s.db.Get(key, nil)
	if errors.Is(err, leveldb.ErrNotFound) {
		return nil, fmt.Errorf("%w: blueprint %q in package %s", abi.ErrNotFound, blueprint, pkg)
	}
	if err != nil {
		return nil, err
	}
	var bp abi.Blueprint
	if err := json.Unmarshal(data, &bp); err != nil {
		return nil, fmt.Errorf("ledger: corrupt blueprint record %q in package %s: %w", blueprint, pkg, err)
	}
	s.log.Debug("blueprint loaded", "package", pkg.String(), "blueprint", blueprint)
	s.cache.Add(string(key), &bp)
	return &bp, nil
}
