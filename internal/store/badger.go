package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/dgraph-io/badger/v4"
)

const badgerKeyPrefix = "game:"

// Badger stores records in an embedded BadgerDB.
type Badger struct {
	db *badger.DB
}

// NewBadger opens (or creates) a database in dir. An empty dir opens an
// in-memory database.
func NewBadger(dir string) (*Badger, error) {
	opts := badger.DefaultOptions(dir)
	if dir == "" {
		opts = opts.WithInMemory(true)
	}
	opts.Logger = nil

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("badger store: open %q: %w", dir, err)
	}
	return &Badger{db: db}, nil
}

func badgerKey(gameID string) []byte {
	return []byte(badgerKeyPrefix + gameID)
}

func (s *Badger) Save(_ context.Context, rec Record) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("badger store: encode %s: %w", rec.GameID, err)
	}
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(badgerKey(rec.GameID), data)
	})
}

func (s *Badger) Load(_ context.Context, gameID string) (Record, error) {
	var rec Record
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(badgerKey(gameID))
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &rec)
		})
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return Record{}, ErrNotFound
	}
	if err != nil {
		return Record{}, fmt.Errorf("badger store: load %s: %w", gameID, err)
	}
	return rec, nil
}

func (s *Badger) Delete(_ context.Context, gameID string) error {
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Delete(badgerKey(gameID))
	})
}

func (s *Badger) List(_ context.Context) ([]Record, error) {
	var records []Record
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(badgerKeyPrefix)
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			var rec Record
			if err := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, &rec)
			}); err != nil {
				return err
			}
			records = append(records, rec)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("badger store: list: %w", err)
	}
	return records, nil
}

func (s *Badger) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}
