package common

import (
	"crypto/rand"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/op/go-logging"
	"github.com/pkg/errors"
)

var log = logging.MustGetLogger("common")

// Address identifies a participant. The zero address is never a valid identity.
type Address = common.Address

var (
	ZeroIdentityError   = NewError(Validation, "zero identity")
	MalformedIdentError = NewError(Validation, "malformed identity")
)

func IsZero(a Address) bool {
	return a == Address{}
}

func CheckIdentity(a Address) error {
	if IsZero(a) {
		return ZeroIdentityError
	}
	return nil
}

// ParseAddress accepts a 0x-prefixed or bare 40 digit hex string.
func ParseAddress(s string) (Address, error) {
	if !common.IsHexAddress(s) {
		return Address{}, errors.Wrapf(MalformedIdentError, "%q", s)
	}
	return common.HexToAddress(s), nil
}

// GenerateAddress returns a random non-zero identity.
func GenerateAddress() Address {
	for {
		b := make([]byte, common.AddressLength)
		if _, err := rand.Read(b); err != nil {
			log.Error("can't read random bytes", err)
			continue
		}
		if a := common.BytesToAddress(b); !IsZero(a) {
			return a
		}
	}
}

// MulDiv computes a * b / c with full precision, flooring. c must be non-zero.
func MulDiv(a, b, c *big.Int) *big.Int {
	res := new(big.Int).Mul(a, b)
	return res.Quo(res, c)
}

// Percent computes amount * pct / 100, flooring.
func Percent(amount *big.Int, pct uint64) *big.Int {
	return MulDiv(amount, new(big.Int).SetUint64(pct), big.NewInt(100))
}

// Clamp bounds v to [lo, hi]; the result never aliases v.
func Clamp(v, lo, hi *big.Int) *big.Int {
	if v.Cmp(lo) < 0 {
		return new(big.Int).Set(lo)
	}
	if v.Cmp(hi) > 0 {
		return new(big.Int).Set(hi)
	}
	return new(big.Int).Set(v)
}

// SubFloor returns max(a - b, 0).
func SubFloor(a, b *big.Int) *big.Int {
	res := new(big.Int).Sub(a, b)
	if res.Sign() < 0 {
		return new(big.Int)
	}
	return res
}

func Copy(v *big.Int) *big.Int {
	if v == nil {
		return new(big.Int)
	}
	return new(big.Int).Set(v)
}

func IsPositive(v *big.Int) bool {
	return v != nil && v.Sign() > 0
}
