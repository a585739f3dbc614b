// ABOUTME: Badger RecordStore backend for native embedded-KV persistence.
// ABOUTME: Keys are "<store>:<id>"; values are the raw JSON record bodies.
package store

import (
	"context"
	"fmt"
	"os"

	badger "github.com/dgraph-io/badger/v3"
)

// BadgerStore is the embedded key-value backend. Records of each named
// store share a key prefix so GetAll is a prefix scan.
type BadgerStore struct {
	db *badger.DB
}

// OpenBadger opens or creates the Badger database in the given directory.
func OpenBadger(dir string) (*BadgerStore, error) {
	if err := os.MkdirAll(dir, 0750); err != nil {
		return nil, fmt.Errorf("create data directory: %w", err)
	}
	opts := badger.DefaultOptions(dir).WithLogger(nil)
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open badger database: %w", err)
	}
	return &BadgerStore{db: db}, nil
}

func recordKey(storeName, key string) []byte {
	return []byte(storeName + ":" + key)
}

// Put stores a record, replacing any previous value under the same key.
// The write is committed before Put returns.
func (b *BadgerStore) Put(ctx context.Context, storeName, key string, record []byte) error {
	if err := validStore(storeName); err != nil {
		return err
	}
	err := b.db.Update(func(txn *badger.Txn) error {
		return txn.Set(recordKey(storeName, key), record)
	})
	if err != nil {
		return fmt.Errorf("put %s/%s: %w: %v", storeName, key, ErrPersistence, err)
	}
	return nil
}

// Delete removes a record. Absent keys are ignored.
func (b *BadgerStore) Delete(ctx context.Context, storeName, key string) error {
	if err := validStore(storeName); err != nil {
		return err
	}
	err := b.db.Update(func(txn *badger.Txn) error {
		return txn.Delete(recordKey(storeName, key))
	})
	if err != nil {
		return fmt.Errorf("delete %s/%s: %w: %v", storeName, key, ErrPersistence, err)
	}
	return nil
}

// GetAll returns every record body in the store in key order.
func (b *BadgerStore) GetAll(ctx context.Context, storeName string) ([][]byte, error) {
	if err := validStore(storeName); err != nil {
		return nil, err
	}
	prefix := []byte(storeName + ":")
	var records [][]byte
	err := b.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = prefix
		it := txn.NewIterator(opts)
		defer it.Close()
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			data, err := it.Item().ValueCopy(nil)
			if err != nil {
				return err
			}
			records = append(records, data)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("get all %s: %w: %v", storeName, ErrPersistence, err)
	}
	return records, nil
}

// Close closes the database.
func (b *BadgerStore) Close() error {
	if b.db != nil {
		return b.db.Close()
	}
	return nil
}
