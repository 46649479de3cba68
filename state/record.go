package state

import (
	"math/big"

	"github.com/gagarinchain/claimnet/common"
	"github.com/gagarinchain/claimnet/params"
	"github.com/gagarinchain/claimnet/permission"
	"github.com/gagarinchain/claimnet/storage"
	"github.com/pkg/errors"
)

var (
	TransferQueuedError = common.NewError(common.Internal, "operation already queued a transfer")
	RecordClosedError   = common.NewError(common.Internal, "record is already committed or discarded")
)

type Direction int

const (
	In Direction = iota
	Out
)

// Transfer is an external token movement an operation needs executed before it commits.
type Transfer struct {
	Direction Direction
	Peer      common.Address
	Amount    *big.Int
}

// Record is a pending copy-on-write overlay over DB. Nothing it holds is visible to readers of DB
// until Commit; Discard throws every change away. A Record is used by one goroutine.
type Record struct {
	db *DB

	claims      map[uint64]*Claim
	votes       map[VoteKey]*Vote
	settlements map[uint64]*SettlementResult
	pools       map[common.Address]*StakePool
	slashes     map[common.Address]*SlashAccount
	reputations map[common.Address]*ReputationState
	disputes    map[uint64]*Dispute
	roles       map[common.Address]permission.Capability
	params      *params.Params
	meta        *Meta

	events   []*common.Event
	transfer *Transfer
	closed   bool
}

func newRecord(db *DB) *Record {
	return &Record{
		db:          db,
		claims:      make(map[uint64]*Claim),
		votes:       make(map[VoteKey]*Vote),
		settlements: make(map[uint64]*SettlementResult),
		pools:       make(map[common.Address]*StakePool),
		slashes:     make(map[common.Address]*SlashAccount),
		reputations: make(map[common.Address]*ReputationState),
		disputes:    make(map[uint64]*Dispute),
		roles:       make(map[common.Address]permission.Capability),
	}
}

func (r *Record) Claim(id uint64) (*Claim, bool) {
	if c, f := r.claims[id]; f {
		return c.Copy(), true
	}
	return r.db.Claim(id)
}

// ClaimForUpdate returns the overlay instance of the claim; changes to it are committed with the record.
func (r *Record) ClaimForUpdate(id uint64) (*Claim, bool) {
	if c, f := r.claims[id]; f {
		return c, true
	}
	c, f := r.db.Claim(id)
	if !f {
		return nil, false
	}
	r.claims[id] = c
	return c, true
}

func (r *Record) PutClaim(c *Claim) {
	r.claims[c.ID] = c
}

func (r *Record) Vote(k VoteKey) (*Vote, bool) {
	if v, f := r.votes[k]; f {
		return v.Copy(), true
	}
	return r.db.Vote(k)
}

func (r *Record) VoteForUpdate(k VoteKey) (*Vote, bool) {
	if v, f := r.votes[k]; f {
		return v, true
	}
	v, f := r.db.Vote(k)
	if !f {
		return nil, false
	}
	r.votes[k] = v
	return v, true
}

func (r *Record) PutVote(k VoteKey, v *Vote) {
	r.votes[k] = v
}

func (r *Record) Settlement(id uint64) (*SettlementResult, bool) {
	if s, f := r.settlements[id]; f {
		return s.Copy(), true
	}
	return r.db.Settlement(id)
}

func (r *Record) PutSettlement(s *SettlementResult) {
	r.settlements[s.ClaimID] = s
}

func (r *Record) Pool(a common.Address) *StakePool {
	if p, f := r.pools[a]; f {
		return p.Copy()
	}
	return r.db.Pool(a)
}

// PoolForUpdate always succeeds; an identity without a pool gets an empty one.
func (r *Record) PoolForUpdate(a common.Address) *StakePool {
	if p, f := r.pools[a]; f {
		return p
	}
	p := r.db.Pool(a)
	r.pools[a] = p
	return p
}

func (r *Record) SlashAccount(a common.Address) *SlashAccount {
	if acc, f := r.slashes[a]; f {
		return acc.Copy()
	}
	return r.db.SlashAccount(a)
}

func (r *Record) SlashAccountForUpdate(a common.Address) *SlashAccount {
	if acc, f := r.slashes[a]; f {
		return acc
	}
	acc := r.db.SlashAccount(a)
	r.slashes[a] = acc
	return acc
}

func (r *Record) Reputation(a common.Address) (*ReputationState, bool) {
	if rep, f := r.reputations[a]; f {
		return rep.Copy(), true
	}
	return r.db.Reputation(a)
}

func (r *Record) ReputationForUpdate(a common.Address) (*ReputationState, bool) {
	if rep, f := r.reputations[a]; f {
		return rep, true
	}
	rep, f := r.db.Reputation(a)
	if !f {
		return nil, false
	}
	r.reputations[a] = rep
	return rep, true
}

func (r *Record) PutReputation(a common.Address, rep *ReputationState) {
	r.reputations[a] = rep
}

func (r *Record) Dispute(id uint64) (*Dispute, bool) {
	if d, f := r.disputes[id]; f {
		return d.Copy(), true
	}
	return r.db.Dispute(id)
}

func (r *Record) DisputeForUpdate(id uint64) (*Dispute, bool) {
	if d, f := r.disputes[id]; f {
		return d, true
	}
	d, f := r.db.Dispute(id)
	if !f {
		return nil, false
	}
	r.disputes[id] = d
	return d, true
}

func (r *Record) PutDispute(d *Dispute) {
	r.disputes[d.ClaimID] = d
}

func (r *Record) Role(a common.Address) permission.Capability {
	if c, f := r.roles[a]; f {
		return c
	}
	return r.db.Role(a)
}

// SetRole replaces the capabilities of a; None removes the identity from the role table.
func (r *Record) SetRole(a common.Address, c permission.Capability) {
	r.roles[a] = c
}

// AdminCount counts administrators as seen through the overlay.
func (r *Record) AdminCount() int {
	count := 0
	for _, a := range r.db.Admins() {
		if _, f := r.roles[a]; !f {
			count++
		}
	}
	for _, c := range r.roles {
		if c.Has(permission.Administer) {
			count++
		}
	}
	return count
}

func (r *Record) Params() *params.Params {
	if r.params != nil {
		return r.params.Copy()
	}
	return r.db.Params()
}

func (r *Record) SetParams(p *params.Params) {
	r.params = p
}

func (r *Record) Meta() Meta {
	if r.meta != nil {
		return *r.meta
	}
	return r.db.Meta()
}

func (r *Record) SetMeta(m Meta) {
	r.meta = &m
}

// NextClaimID reserves the next claim id in the overlay.
func (r *Record) NextClaimID() uint64 {
	m := r.Meta()
	m.LastClaimID++
	r.SetMeta(m)
	return m.LastClaimID
}

// AddEvent queues an event that is handed out by Commit.
func (r *Record) AddEvent(t common.EventType, payload common.EventPayload) {
	r.events = append(r.events, &common.Event{T: t, Payload: payload})
}

// QueueTransfer registers the single external transfer of this operation.
func (r *Record) QueueTransfer(t *Transfer) error {
	if r.transfer != nil {
		return TransferQueuedError
	}
	r.transfer = t
	return nil
}

func (r *Record) Transfer() *Transfer {
	return r.transfer
}

func (r *Record) Discard() {
	r.closed = true
	r.events = nil
	r.transfer = nil
}

// Commit makes every overlay change visible in DB, persists it as one storage batch and returns the
// queued events. A failed storage write is logged; in-memory state stays committed.
func (r *Record) Commit() ([]*common.Event, error) {
	if r.closed {
		return nil, RecordClosedError
	}
	r.closed = true

	db := r.db
	batch := db.storage.NewBatch()

	db.lock.Lock()
	for id, c := range r.claims {
		db.claims[id] = c
		if c.Settled {
			db.open.Remove(id)
		} else {
			db.open.Put(id, c.WindowEnd)
		}
		batch.Put(storage.Claim, ClaimKey(id), c.Serialize())
	}
	for k, v := range r.votes {
		db.votes[k] = v
		batch.Put(storage.Vote, VoteStorageKey(k), v.Serialize())
	}
	for id, s := range r.settlements {
		db.settlements[id] = s
		batch.Put(storage.Settlement, ClaimKey(id), s.Serialize())
	}
	for a, p := range r.pools {
		db.pools[a] = p
		batch.Put(storage.Pool, a.Bytes(), p.Serialize())
	}
	for a, acc := range r.slashes {
		db.slashes[a] = acc
		batch.Put(storage.Slash, a.Bytes(), acc.Serialize())
	}
	for a, rep := range r.reputations {
		db.reputations[a] = rep
		batch.Put(storage.Reputation, a.Bytes(), rep.Serialize())
	}
	for id, d := range r.disputes {
		db.disputes[id] = d
		batch.Put(storage.Dispute, ClaimKey(id), d.Serialize())
	}
	for a, c := range r.roles {
		if c == permission.None {
			delete(db.roles, a)
			batch.Delete(storage.Role, a.Bytes())
			continue
		}
		db.roles[a] = c
		batch.Put(storage.Role, a.Bytes(), serializeRole(uint8(c)))
	}
	if r.params != nil {
		db.params = r.params
		batch.Put(storage.Params, ParamsKey, SerializeParams(r.params))
	}
	if r.meta != nil {
		db.meta = *r.meta
		batch.Put(storage.Meta, MetaKey, r.meta.Serialize())
	}
	db.lock.Unlock()

	events := r.events
	r.events = nil
	if batch.Len() == 0 {
		return events, nil
	}
	if err := db.storage.Write(batch); err != nil {
		log.Error("Can't persist state", err)
		return events, errors.Wrap(err, "state committed in memory only")
	}
	return events, nil
}
