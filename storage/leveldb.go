package storage

import (
	"path"

	"github.com/op/go-logging"
	"github.com/pkg/errors"
	"github.com/syndtr/goleveldb/leveldb"
	lerrors "github.com/syndtr/goleveldb/leveldb/errors"
	"github.com/syndtr/goleveldb/leveldb/opt"
	"github.com/syndtr/goleveldb/leveldb/storage"
	"github.com/syndtr/goleveldb/leveldb/util"
)

var log = logging.MustGetLogger("storage")

const StorageName = "claimnet"

var (
	NotFoundError     = leveldb.ErrNotFound
	ForeignBatchError = errors.New("batch was not created by this storage")
)

type LevelStorage struct {
	db   *leveldb.DB
	path string
}

// NewStorage opens a leveldb store under p, or an in-memory one when p is empty.
func NewStorage(p string, opts *opt.Options) (Storage, error) {
	var nopts opt.Options
	if opts != nil {
		nopts = *opts
	}

	var err error
	var db *leveldb.DB

	if p == "" {
		db, err = leveldb.Open(storage.NewMemStorage(), &nopts)
	} else {
		p = path.Join(p, StorageName)
		db, err = leveldb.OpenFile(p, &nopts)
		log.Debugf("Created storage at %v", p)
		if lerrors.IsCorrupted(err) && !nopts.GetReadOnly() {
			log.Warningf("Storage at %v is corrupted, recovering", p)
			db, err = leveldb.RecoverFile(p, &nopts)
		}
	}

	if err != nil {
		return nil, errors.Wrap(err, "can't open storage")
	}

	return &LevelStorage{
		db:   db,
		path: p,
	}, nil
}

func prefixed(rtype ResourceType, key []byte) []byte {
	k := make([]byte, 0, len(key)+2)
	k = append(k, 0, byte(rtype))
	return append(k, key...)
}

func (s *LevelStorage) Put(rtype ResourceType, key []byte, value []byte) error {
	return s.db.Put(prefixed(rtype, key), value, &opt.WriteOptions{})
}

func (s *LevelStorage) Get(rtype ResourceType, key []byte) (value []byte, err error) {
	return s.db.Get(prefixed(rtype, key), &opt.ReadOptions{})
}

func (s *LevelStorage) Contains(rtype ResourceType, key []byte) bool {
	b, _ := s.db.Has(prefixed(rtype, key), &opt.ReadOptions{})
	return b
}

func (s *LevelStorage) Delete(rtype ResourceType, key []byte) error {
	return s.db.Delete(prefixed(rtype, key), &opt.WriteOptions{})
}

// Keys returns keys of the given type with the type prefix stripped.
func (s *LevelStorage) Keys(rtype ResourceType, keyPrefix []byte) (keys [][]byte) {
	iter := s.db.NewIterator(util.BytesPrefix(prefixed(rtype, keyPrefix)), nil)

	for iter.Next() {
		key := iter.Key()[2:]
		keyCopy := make([]byte, len(key))
		copy(keyCopy, key)
		keys = append(keys, keyCopy)
	}

	iter.Release()

	return keys
}

type levelBatch struct {
	b *leveldb.Batch
}

func (b *levelBatch) Put(rtype ResourceType, key []byte, value []byte) {
	b.b.Put(prefixed(rtype, key), value)
}

func (b *levelBatch) Delete(rtype ResourceType, key []byte) {
	b.b.Delete(prefixed(rtype, key))
}

func (b *levelBatch) Len() int {
	return b.b.Len()
}

func (s *LevelStorage) NewBatch() Batch {
	return &levelBatch{b: new(leveldb.Batch)}
}

func (s *LevelStorage) Write(batch Batch) error {
	lb, ok := batch.(*levelBatch)
	if !ok {
		return ForeignBatchError
	}
	if lb.b.Len() == 0 {
		return nil
	}
	return s.db.Write(lb.b, &opt.WriteOptions{Sync: s.path != ""})
}

func (s *LevelStorage) Stats() *leveldb.DBStats {
	stats := &leveldb.DBStats{}
	if err := s.db.Stats(stats); err != nil {
		log.Error(err)
		return nil
	}
	return stats
}

func (s *LevelStorage) Close() {
	if err := s.db.Close(); err != nil {
		log.Error("Can't close storage", err)
	}
}
