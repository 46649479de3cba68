package run

import (
	"context"
	"io/ioutil"
	"math/big"

	"github.com/gagarinchain/claimnet/common"
	"github.com/gagarinchain/claimnet/permission"
	"github.com/gagarinchain/claimnet/protocol"
	"github.com/gagarinchain/claimnet/reputation"
	"github.com/gagarinchain/claimnet/stake"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v2"
)

var NoAdminError = common.NewError(common.Validation, "seed names no administrator")

// Seed is the genesis content of an empty store. Amounts are decimal strings.
type Seed struct {
	Admins      []string          `yaml:"admins"`
	Settlers    []string          `yaml:"settlers"`
	Balances    map[string]string `yaml:"balances"`
	Deposits    map[string]string `yaml:"deposits"`
	Reputations map[string]string `yaml:"reputations"`
}

func SeedFromFile(filePath string) (*Seed, error) {
	data, err := ioutil.ReadFile(filePath)
	if err != nil {
		return nil, errors.Wrap(err, "can't load seed")
	}
	return ParseSeed(data)
}

func ParseSeed(data []byte) (*Seed, error) {
	s := &Seed{}
	if err := yaml.Unmarshal(data, s); err != nil {
		return nil, errors.Wrap(err, "can't unmarshal seed")
	}
	return s, nil
}

// Roles merges admins and settlers into the initial role table.
func (s *Seed) Roles() (map[common.Address]permission.Capability, error) {
	roles := make(map[common.Address]permission.Capability)
	for _, raw := range s.Admins {
		a, err := common.ParseAddress(raw)
		if err != nil {
			return nil, err
		}
		roles[a] = roles[a].With(permission.Administer)
	}
	if len(roles) == 0 {
		return nil, NoAdminError
	}
	for _, raw := range s.Settlers {
		a, err := common.ParseAddress(raw)
		if err != nil {
			return nil, err
		}
		roles[a] = roles[a].With(permission.Settle)
	}
	return roles, nil
}

func parseAmounts(raw map[string]string) (map[common.Address]*big.Int, error) {
	res := make(map[common.Address]*big.Int, len(raw))
	for k, v := range raw {
		a, err := common.ParseAddress(k)
		if err != nil {
			return nil, err
		}
		amount, ok := new(big.Int).SetString(v, 10)
		if !ok || amount.Sign() < 0 {
			return nil, errors.Errorf("bad amount %q for %v", v, k)
		}
		res[a] = amount
	}
	return res, nil
}

// Apply mints balances, makes the initial deposits and rates identities. Scores go to the
// static oracle when there is one, and into the reputation book through the first settler.
func (s *Seed) Apply(ctx context.Context, engine *protocol.Engine, ledger *stake.MemoryLedger, static *reputation.StaticSource) error {
	balances, err := parseAmounts(s.Balances)
	if err != nil {
		return err
	}
	for a, amount := range balances {
		ledger.Mint(a, amount)
	}

	deposits, err := parseAmounts(s.Deposits)
	if err != nil {
		return err
	}
	for a, amount := range deposits {
		if err := engine.Deposit(ctx, a, amount); err != nil {
			return errors.Wrapf(err, "seed deposit of %v", a.Hex())
		}
	}

	scores, err := parseAmounts(s.Reputations)
	if err != nil {
		return err
	}
	if err := s.rate(ctx, engine, static, scores); err != nil {
		return err
	}
	log.Infof("Seed applied: %d balances, %d deposits, %d reputations", len(balances), len(deposits), len(scores))
	return nil
}

func (s *Seed) rate(ctx context.Context, engine *protocol.Engine, static *reputation.StaticSource, scores map[common.Address]*big.Int) error {
	if len(scores) == 0 {
		return nil
	}
	if static != nil {
		for a, score := range scores {
			static.SetScore(a, score)
		}
	}
	if len(s.Settlers) == 0 {
		log.Warning("Seed has reputations but no settler, reputation book stays empty")
		return nil
	}
	settler, err := common.ParseAddress(s.Settlers[0])
	if err != nil {
		return err
	}
	for a, score := range scores {
		if err := engine.SetReputation(ctx, settler, a, score); err != nil {
			return errors.Wrapf(err, "seed reputation of %v", a.Hex())
		}
	}
	return nil
}
