package permission

import (
	"strings"

	"github.com/gagarinchain/claimnet/common"
)

// Capability is a bit set; an identity may hold both.
type Capability uint8

const (
	Administer Capability = 1 << iota
	Settle
)

const None = Capability(0)

var (
	NotAdminError   = common.NewError(common.Authorization, "caller lacks administer capability")
	NotSettlerError = common.NewError(common.Authorization, "caller lacks settle capability")
	LastAdminError  = common.NewError(common.StateConflict, "can't revoke the last administrator")
	UnknownCapError = common.NewError(common.Validation, "unknown capability")
)

func (c Capability) Has(other Capability) bool {
	return other != None && c&other == other
}

func (c Capability) With(other Capability) Capability {
	return c | other
}

func (c Capability) Without(other Capability) Capability {
	return c &^ other
}

func (c Capability) Valid() bool {
	return c != None && c&^(Administer|Settle) == 0
}

func (c Capability) String() string {
	var parts []string
	if c&Administer != 0 {
		parts = append(parts, "administer")
	}
	if c&Settle != 0 {
		parts = append(parts, "settle")
	}
	if len(parts) == 0 {
		return "none"
	}
	return strings.Join(parts, "|")
}

func Parse(s string) (Capability, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "administer", "admin":
		return Administer, nil
	case "settle", "settler":
		return Settle, nil
	}
	return None, UnknownCapError
}

// Require returns the authorization error matching the missing capability, nil if held.
func Require(held Capability, needed Capability) error {
	if held.Has(needed) {
		return nil
	}
	if needed == Administer {
		return NotAdminError
	}
	return NotSettlerError
}
