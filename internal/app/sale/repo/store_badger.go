package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/dgraph-io/badger/v4"
)

// BadgerStore keeps the preset payload in an embedded Badger database, typically
// one directory per operator profile.
type BadgerStore struct {
	db  *badger.DB
	key []byte
}

// OpenBadger opens (or creates) a Badger database in dir. An empty dir opens an
// in-memory database.
func OpenBadger(dir string) (*badger.DB, error) {
	opts := badger.DefaultOptions(dir).WithLogger(nil)
	if dir == "" {
		opts = opts.WithInMemory(true)
	}
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open badger at %q: %w", dir, err)
	}
	return db, nil
}

func NewBadgerStore(db *badger.DB, key string) *BadgerStore {
	return &BadgerStore{db: db, key: []byte(key)}
}

func (s *BadgerStore) Load(_ context.Context) ([]byte, error) {
	var payload []byte
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(s.key)
		if err != nil {
			if errors.Is(err, badger.ErrKeyNotFound) {
				return nil
			}
			return err
		}
		payload, err = item.ValueCopy(nil)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("badger read %s: %w", s.key, err)
	}
	return payload, nil
}

func (s *BadgerStore) Save(_ context.Context, payload []byte) error {
	err := s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(s.key, payload)
	})
	if err != nil {
		return fmt.Errorf("badger write %s: %w", s.key, err)
	}
	return nil
}
