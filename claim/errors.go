package claim

import (
	"github.com/gagarinchain/claimnet/common"
	"github.com/op/go-logging"
)

var log = logging.MustGetLogger("claim")

var (
	ClaimNotFoundError     = common.NewError(common.NotFound, "claim not found")
	VoteNotFoundError      = common.NewError(common.NotFound, "caller has not voted on claim")
	DisputeNotFoundError   = common.NewError(common.NotFound, "no dispute on claim")
	EmptyContentError      = common.NewError(common.Validation, "claim content is empty")
	StakeBelowMinimumError = common.NewError(common.Validation, "stake below protocol minimum")

	WindowClosedError         = common.NewError(common.Window, "voting window closed")
	WindowOpenError           = common.NewError(common.Window, "voting or dispute window still open")
	DisputeWindowClosedError  = common.NewError(common.Window, "dispute window closed")
	AlreadySettledError       = common.NewError(common.StateConflict, "claim already settled")
	NotSettledError           = common.NewError(common.StateConflict, "claim not settled")
	DuplicateVoteError        = common.NewError(common.StateConflict, "caller already voted on claim")
	NoVotesCastError          = common.NewError(common.StateConflict, "no stake committed to claim")
	ActiveDisputeError        = common.NewError(common.StateConflict, "claim has an active dispute")
	DisputeAlreadyActiveError = common.NewError(common.StateConflict, "dispute already active")
	NoActiveDisputeError      = common.NewError(common.StateConflict, "no active dispute on claim")
	RewardClaimedError        = common.NewError(common.StateConflict, "reward already claimed")
	StakeReturnedError        = common.NewError(common.StateConflict, "stake already returned")
	NoWinnersError            = common.NewError(common.StateConflict, "settlement has no winner weight")
	NotAWinnerError           = common.NewError(common.StateConflict, "vote is not on the winning side")
)
