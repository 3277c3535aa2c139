package kvstore

import (
	"errors"
	"fmt"
	"strings"

	"github.com/dgraph-io/badger/v4"
	"github.com/kengiroy2-g/kenobase-sub007/pkg/common/enum"
	"github.com/kengiroy2-g/kenobase-sub007/pkg/infra"
)

type BadgerStore struct {
	db     *badger.DB
	prefix string
	codec  infra.Codec
}

type BadgerOptions struct {
	Directory string
	Prefix    string
	// InMemory keeps everything in RAM; Directory is ignored.
	InMemory bool
	Codec    infra.Codec
}

func NewBadgerStore(o BadgerOptions) (*BadgerStore, error) {
	opts := badger.DefaultOptions(o.Directory).WithLogger(nil)
	if o.InMemory {
		opts = badger.DefaultOptions("").WithInMemory(true).WithLogger(nil)
	}
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open badger: %w", err)
	}
	codec := o.Codec
	if codec == nil {
		codec = infra.JSON
	}
	return &BadgerStore{
		db:     db,
		prefix: o.Prefix,
		codec:  codec,
	}, nil
}

func (b *BadgerStore) fullKey(k string) ([]byte, error) {
	if k == "" {
		return nil, ErrKeyEmpty
	}
	if b.prefix != "" {
		return []byte(b.prefix + "/" + k), nil
	}
	return []byte(k), nil
}

func (b *BadgerStore) GetName() string {
	return string(enum.KVStoreTypeBadger)
}

func (b *BadgerStore) Get(key string) (string, error) {
	val, err := b.get(key)
	return string(val), err
}

func (b *BadgerStore) get(key string) ([]byte, error) {
	k, err := b.fullKey(key)
	if err != nil {
		return nil, err
	}

	var valCopy []byte
	err = b.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(k)
		if err != nil {
			if errors.Is(err, badger.ErrKeyNotFound) {
				return ErrKeyNotFound
			}
			return err
		}
		valCopy, err = item.ValueCopy(nil)
		return err
	})
	return valCopy, err
}

func (b *BadgerStore) Set(key string, value string) error {
	k, err := b.fullKey(key)
	if err != nil {
		return err
	}
	return b.db.Update(func(txn *badger.Txn) error {
		return txn.Set(k, []byte(value))
	})
}

func (b *BadgerStore) SetAny(key string, value any) error {
	if err := checkKeyAndValue(key, value); err != nil {
		return err
	}
	k, err := b.fullKey(key)
	if err != nil {
		return err
	}
	data, err := b.codec.Marshal(value)
	if err != nil {
		return err
	}
	return b.db.Update(func(txn *badger.Txn) error {
		return txn.Set(k, data)
	})
}

// SetManyAny commits kvs through one write batch. Badger may split a large
// batch into several transactions, so a failure can leave part of it written.
func (b *BadgerStore) SetManyAny(kvs map[string]any) error {
	wb := b.db.NewWriteBatch()
	defer wb.Cancel()
	for key, value := range kvs {
		if err := checkKeyAndValue(key, value); err != nil {
			return err
		}
		k, err := b.fullKey(key)
		if err != nil {
			return err
		}
		data, err := b.codec.Marshal(value)
		if err != nil {
			return fmt.Errorf("encode %s: %w", key, err)
		}
		if err := wb.Set(k, data); err != nil {
			return err
		}
	}
	return wb.Flush()
}

func (b *BadgerStore) GetAny(key string, value any) (bool, error) {
	if err := checkKeyAndValue(key, value); err != nil {
		return false, err
	}
	data, err := b.get(key)
	if err != nil {
		if errors.Is(err, ErrKeyNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, b.codec.Unmarshal(data, value)
}

func (b *BadgerStore) List(prefix string) ([]*infra.KVPair, error) {
	if prefix == "" {
		return nil, fmt.Errorf("prefix is empty")
	}
	searchPrefix := prefix
	if b.prefix != "" {
		searchPrefix = b.prefix + "/" + prefix
	}

	result := make([]*infra.KVPair, 0)
	err := b.db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()

		p := []byte(searchPrefix)
		for it.Seek(p); it.ValidForPrefix(p); it.Next() {
			item := it.Item()
			v, err := item.ValueCopy(nil)
			if err != nil {
				return err
			}
			key := string(item.KeyCopy(nil))
			if b.prefix != "" {
				key = strings.TrimPrefix(key, b.prefix+"/")
			}
			result = append(result, &infra.KVPair{Key: key, Value: v})
		}
		return nil
	})
	return result, err
}

func (b *BadgerStore) Delete(key string) error {
	k, err := b.fullKey(key)
	if err != nil {
		return err
	}
	return b.db.Update(func(txn *badger.Txn) error {
		return txn.Delete(k)
	})
}

func (b *BadgerStore) Close() error {
	return b.db.Close()
}
