package storage

import "github.com/syndtr/goleveldb/leveldb"

type ResourceType byte

const Claim = ResourceType(0x0)
const Vote = ResourceType(0x1)
const Settlement = ResourceType(0x2)
const Pool = ResourceType(0x3)
const Slash = ResourceType(0x4)
const Reputation = ResourceType(0x5)
const Dispute = ResourceType(0x6)
const Role = ResourceType(0x7)
const Params = ResourceType(0x8)
const Meta = ResourceType(0x9)

// Batch collects writes that are applied atomically by Storage.Write.
type Batch interface {
	Put(rtype ResourceType, key []byte, value []byte)
	Delete(rtype ResourceType, key []byte)
	Len() int
}

type Storage interface {
	Put(rtype ResourceType, key []byte, value []byte) error
	Get(rtype ResourceType, key []byte) (value []byte, err error)
	Contains(rtype ResourceType, key []byte) bool
	Delete(rtype ResourceType, key []byte) error
	Keys(rtype ResourceType, keyPrefix []byte) (keys [][]byte)
	NewBatch() Batch
	Write(batch Batch) error
	Stats() *leveldb.DBStats
	Close()
}
