package slashing

import (
	"encoding/binary"
	"math/big"

	"github.com/gagarinchain/claimnet/common"
	"github.com/gagarinchain/claimnet/params"
	"github.com/gagarinchain/claimnet/state"
	"github.com/google/uuid"
	"github.com/op/go-logging"
	"github.com/pkg/errors"
)

var log = logging.MustGetLogger("slashing")

var (
	InvalidPercentageError   = common.NewError(common.Validation, "slash percentage out of range")
	SlashAmountTooHighError  = common.NewError(common.Validation, "slash amount rounds to zero")
	MismatchedLengthsError   = common.NewError(common.Validation, "batch arrays differ in length")
	BatchSizeError           = common.NewError(common.Validation, "batch size out of range")
	NoStakeToSlashError      = common.NewError(common.Resource, "no stake to slash")
	SlashingTooFrequentError = common.NewError(common.RateLimit, "identity slashed too recently")
)

var recordSpace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("claimnet/slash"))

// StakeStore is the stake custody the controller reduces.
type StakeStore interface {
	CurrentStake(identity common.Address) *big.Int
	ForceReduce(identity common.Address, amount *big.Int) error
}

type Request struct {
	Identity   common.Address
	Percentage uint64
	Reason     string
}

// Slashed is the payload of a StakeSlashed event.
type Slashed struct {
	Identity common.Address
	Record   *state.SlashRecord
}

// NewRequests zips the three batch arrays.
func NewRequests(identities []common.Address, percentages []uint64, reasons []string) ([]Request, error) {
	if len(identities) != len(percentages) || len(identities) != len(reasons) {
		return nil, MismatchedLengthsError
	}
	reqs := make([]Request, len(identities))
	for i := range identities {
		reqs[i] = Request{Identity: identities[i], Percentage: percentages[i], Reason: reasons[i]}
	}
	return reqs, nil
}

// RecordID derives the audit id of the n-th slash of identity.
func RecordID(identity common.Address, n int) string {
	seq := make([]byte, 8)
	binary.BigEndian.PutUint64(seq, uint64(n))
	return uuid.NewSHA1(recordSpace, append(identity.Bytes(), seq...)).String()
}

// Controller applies percentage penalties to stake, guarded by a per-identity cooldown.
type Controller struct {
	store StakeStore
}

func NewController(store StakeStore) *Controller {
	return &Controller{store: store}
}

func (c *Controller) Slash(r *state.Record, p *params.Params, caller common.Address, req Request, now int64) (*state.SlashRecord, error) {
	if err := common.CheckIdentity(req.Identity); err != nil {
		return nil, err
	}
	if req.Percentage == 0 || req.Percentage > p.MaxSlashPercentage {
		return nil, errors.Wrapf(InvalidPercentageError, "%d not in (0, %d]", req.Percentage, p.MaxSlashPercentage)
	}
	current := c.store.CurrentStake(req.Identity)
	if current.Sign() <= 0 {
		return nil, NoStakeToSlashError
	}
	acc := r.SlashAccountForUpdate(req.Identity)
	if acc.Slashed && now < acc.LastSlash+p.SlashCooldown {
		return nil, errors.Wrapf(SlashingTooFrequentError, "%v can be slashed at %d", req.Identity.Hex(), acc.LastSlash+p.SlashCooldown)
	}
	amount := common.Percent(current, req.Percentage)
	if amount.Sign() == 0 {
		return nil, SlashAmountTooHighError
	}

	rec := &state.SlashRecord{
		ID:         RecordID(req.Identity, len(acc.History)),
		Timestamp:  now,
		Amount:     amount,
		Percentage: req.Percentage,
		Reason:     req.Reason,
		Caller:     caller,
	}
	acc.History = append(acc.History, rec)
	acc.LastSlash = now
	acc.Slashed = true
	acc.Lifetime.Add(acc.Lifetime, amount)

	if err := c.store.ForceReduce(req.Identity, amount); err != nil {
		return nil, err
	}

	r.AddEvent(common.StakeSlashed, &Slashed{Identity: req.Identity, Record: rec.Copy()})
	log.Infof("Slashed %v of %v (%d%%): %v", amount, req.Identity.Hex(), req.Percentage, req.Reason)

	return rec.Copy(), nil
}

// BatchSlash applies every request or none: the first failure is returned and the record must be discarded.
func (c *Controller) BatchSlash(r *state.Record, p *params.Params, caller common.Address, reqs []Request, now int64) ([]*state.SlashRecord, error) {
	if len(reqs) == 0 || len(reqs) > params.MaxBatchSize {
		return nil, errors.Wrapf(BatchSizeError, "%d not in [1, %d]", len(reqs), params.MaxBatchSize)
	}
	res := make([]*state.SlashRecord, 0, len(reqs))
	for i, req := range reqs {
		rec, err := c.Slash(r, p, caller, req, now)
		if err != nil {
			return nil, errors.Wrapf(err, "batch entry %d", i)
		}
		res = append(res, rec)
	}
	return res, nil
}
