package state

import (
	"sync"

	"github.com/emirpasic/gods/maps/treemap"
	"github.com/emirpasic/gods/utils"
	"github.com/gagarinchain/claimnet/common"
	"github.com/gagarinchain/claimnet/params"
	"github.com/gagarinchain/claimnet/permission"
	"github.com/gagarinchain/claimnet/storage"
	"github.com/op/go-logging"
	"github.com/pkg/errors"
)

var (
	log                 = logging.MustGetLogger("state")
	NotEmptyInitDBError = errors.New("can't initialize not empty DB")
)

// DB is the committed protocol state. It is only mutated by committing a Record.
type DB struct {
	storage storage.Storage
	lock    sync.RWMutex

	claims      map[uint64]*Claim
	votes       map[VoteKey]*Vote
	settlements map[uint64]*SettlementResult
	pools       map[common.Address]*StakePool
	slashes     map[common.Address]*SlashAccount
	reputations map[common.Address]*ReputationState
	disputes    map[uint64]*Dispute
	roles       map[common.Address]permission.Capability
	params      *params.Params
	meta        Meta

	//unsettled claim id -> window end, ordered by id
	open *treemap.Map
}

func newDB(s storage.Storage) *DB {
	return &DB{
		storage:     s,
		claims:      make(map[uint64]*Claim),
		votes:       make(map[VoteKey]*Vote),
		settlements: make(map[uint64]*SettlementResult),
		pools:       make(map[common.Address]*StakePool),
		slashes:     make(map[common.Address]*SlashAccount),
		reputations: make(map[common.Address]*ReputationState),
		disputes:    make(map[uint64]*Dispute),
		roles:       make(map[common.Address]permission.Capability),
		open:        treemap.NewWith(utils.UInt64Comparator),
	}
}

// NewStateDB loads every persisted entity from s. Entities that can't be parsed are logged and skipped.
func NewStateDB(s storage.Storage) *DB {
	db := newDB(s)

	for _, key := range s.Keys(storage.Claim, nil) {
		value, e := s.Get(storage.Claim, key)
		if e != nil {
			log.Errorf("Can't find claim with key %x", key)
			continue
		}
		c, e := DeserializeClaim(value)
		if e != nil {
			log.Error("Can't parse claim", e)
			continue
		}
		db.claims[c.ID] = c
		if !c.Settled {
			db.open.Put(c.ID, c.WindowEnd)
		}
	}

	for _, key := range s.Keys(storage.Vote, nil) {
		k, e := VoteKeyFromStorage(key)
		if e != nil {
			log.Error("Can't parse vote key", e)
			continue
		}
		value, e := s.Get(storage.Vote, key)
		if e != nil {
			log.Errorf("Can't find vote with key %x", key)
			continue
		}
		v, e := DeserializeVote(value)
		if e != nil {
			log.Error("Can't parse vote", e)
			continue
		}
		db.votes[k] = v
	}

	for _, key := range s.Keys(storage.Settlement, nil) {
		value, e := s.Get(storage.Settlement, key)
		if e != nil {
			continue
		}
		r, e := DeserializeSettlement(value)
		if e != nil {
			log.Error("Can't parse settlement", e)
			continue
		}
		db.settlements[r.ClaimID] = r
	}

	for _, key := range s.Keys(storage.Dispute, nil) {
		value, e := s.Get(storage.Dispute, key)
		if e != nil {
			continue
		}
		d, e := DeserializeDispute(value)
		if e != nil {
			log.Error("Can't parse dispute", e)
			continue
		}
		db.disputes[d.ClaimID] = d
	}

	db.loadAccounts()

	if value, e := s.Get(storage.Meta, MetaKey); e == nil {
		if m, e := DeserializeMeta(value); e == nil {
			db.meta = m
		} else {
			log.Error("Can't parse meta", e)
		}
	}
	if value, e := s.Get(storage.Params, ParamsKey); e == nil {
		if p, e := DeserializeParams(value); e == nil {
			db.params = p
		} else {
			log.Error("Can't parse params", e)
		}
	}

	log.Infof("Loaded state: %d claims, %d votes, %d pools", len(db.claims), len(db.votes), len(db.pools))
	return db
}

func (db *DB) loadAccounts() {
	s := db.storage
	for _, key := range s.Keys(storage.Pool, nil) {
		a, e := AddressFromKey(key)
		if e != nil {
			continue
		}
		value, _ := s.Get(storage.Pool, key)
		if p, e := DeserializePool(value); e == nil {
			db.pools[a] = p
		} else {
			log.Error("Can't parse pool", e)
		}
	}
	for _, key := range s.Keys(storage.Slash, nil) {
		a, e := AddressFromKey(key)
		if e != nil {
			continue
		}
		value, _ := s.Get(storage.Slash, key)
		if acc, e := DeserializeSlashAccount(value); e == nil {
			db.slashes[a] = acc
		} else {
			log.Error("Can't parse slash account", e)
		}
	}
	for _, key := range s.Keys(storage.Reputation, nil) {
		a, e := AddressFromKey(key)
		if e != nil {
			continue
		}
		value, _ := s.Get(storage.Reputation, key)
		if r, e := DeserializeReputation(value); e == nil {
			db.reputations[a] = r
		} else {
			log.Error("Can't parse reputation", e)
		}
	}
	for _, key := range s.Keys(storage.Role, nil) {
		a, e := AddressFromKey(key)
		if e != nil {
			continue
		}
		value, _ := s.Get(storage.Role, key)
		if c, e := deserializeRole(value); e == nil {
			db.roles[a] = permission.Capability(c)
		} else {
			log.Error("Can't parse role", e)
		}
	}
}

// Init stores the initial parameters and roles. It fails on a store that already holds parameters.
func (db *DB) Init(p *params.Params, roles map[common.Address]permission.Capability) error {
	if db.Initialized() {
		return NotEmptyInitDBError
	}
	if err := p.Validate(); err != nil {
		return err
	}
	r := db.NewRecord()
	r.SetParams(p.Copy())
	for a, c := range roles {
		r.SetRole(a, c)
	}
	_, err := r.Commit()
	return err
}

func (db *DB) Initialized() bool {
	db.lock.RLock()
	defer db.lock.RUnlock()
	return db.params != nil
}

func (db *DB) NewRecord() *Record {
	return newRecord(db)
}

func (db *DB) Params() *params.Params {
	db.lock.RLock()
	defer db.lock.RUnlock()
	if db.params == nil {
		return nil
	}
	return db.params.Copy()
}

func (db *DB) Meta() Meta {
	db.lock.RLock()
	defer db.lock.RUnlock()
	return db.meta
}

func (db *DB) Claim(id uint64) (*Claim, bool) {
	db.lock.RLock()
	defer db.lock.RUnlock()
	c, f := db.claims[id]
	if !f {
		return nil, false
	}
	return c.Copy(), true
}

func (db *DB) Vote(k VoteKey) (*Vote, bool) {
	db.lock.RLock()
	defer db.lock.RUnlock()
	v, f := db.votes[k]
	if !f {
		return nil, false
	}
	return v.Copy(), true
}

// Votes returns all votes cast on a claim.
func (db *DB) Votes(claim uint64) map[common.Address]*Vote {
	db.lock.RLock()
	defer db.lock.RUnlock()
	res := make(map[common.Address]*Vote)
	for k, v := range db.votes {
		if k.Claim == claim {
			res[k.Voter] = v.Copy()
		}
	}
	return res
}

func (db *DB) Settlement(id uint64) (*SettlementResult, bool) {
	db.lock.RLock()
	defer db.lock.RUnlock()
	s, f := db.settlements[id]
	if !f {
		return nil, false
	}
	return s.Copy(), true
}

func (db *DB) Pool(a common.Address) *StakePool {
	db.lock.RLock()
	defer db.lock.RUnlock()
	if p, f := db.pools[a]; f {
		return p.Copy()
	}
	return NewStakePool()
}

func (db *DB) SlashAccount(a common.Address) *SlashAccount {
	db.lock.RLock()
	defer db.lock.RUnlock()
	if acc, f := db.slashes[a]; f {
		return acc.Copy()
	}
	return NewSlashAccount()
}

func (db *DB) Reputation(a common.Address) (*ReputationState, bool) {
	db.lock.RLock()
	defer db.lock.RUnlock()
	r, f := db.reputations[a]
	if !f {
		return nil, false
	}
	return r.Copy(), true
}

func (db *DB) Dispute(id uint64) (*Dispute, bool) {
	db.lock.RLock()
	defer db.lock.RUnlock()
	d, f := db.disputes[id]
	if !f {
		return nil, false
	}
	return d.Copy(), true
}

func (db *DB) Role(a common.Address) permission.Capability {
	db.lock.RLock()
	defer db.lock.RUnlock()
	return db.roles[a]
}

func (db *DB) Admins() (res []common.Address) {
	db.lock.RLock()
	defer db.lock.RUnlock()
	for a, c := range db.roles {
		if c.Has(permission.Administer) {
			res = append(res, a)
		}
	}
	return res
}

// DueClaims returns unsettled claims, in id order, whose voting window plus grace has ended by now.
func (db *DB) DueClaims(now int64, grace int64) (ids []uint64) {
	db.lock.RLock()
	defer db.lock.RUnlock()
	it := db.open.Iterator()
	for it.Next() {
		if it.Value().(int64)+grace <= now {
			ids = append(ids, it.Key().(uint64))
		}
	}
	return ids
}

func (db *DB) OpenClaims() int {
	db.lock.RLock()
	defer db.lock.RUnlock()
	return db.open.Size()
}
