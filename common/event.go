package common

import "context"

type EventPayload interface{}
type EventType int

const (
	ClaimCreated EventType = iota
	VoteCast
	WeightComputed
	ClaimSettled
	RewardDistributed
	StakeReturned
	StakeSlashed
	StakeDeposited
	StakeWithdrawn
	ParamsUpdated
	RoleGranted
	RoleRevoked
	PauseChanged
	DisputeOpened
	DisputeResolved
	ReputationUpdated
)

var eventNames = [...]string{
	"ClaimCreated",
	"VoteCast",
	"WeightComputed",
	"ClaimSettled",
	"RewardDistributed",
	"StakeReturned",
	"StakeSlashed",
	"StakeDeposited",
	"StakeWithdrawn",
	"ParamsUpdated",
	"RoleGranted",
	"RoleRevoked",
	"PauseChanged",
	"DisputeOpened",
	"DisputeResolved",
	"ReputationUpdated",
}

func (t EventType) String() string {
	if int(t) < 0 || int(t) >= len(eventNames) {
		return "Unknown"
	}
	return eventNames[t]
}

type Event struct {
	T EventType
	//one of the payload structs declared next to the operation that fires it
	Payload EventPayload
}

type EventBus interface {
	FireEvent(event *Event)
	Run(ctx context.Context)
}

type NullBus struct {
}

func (n *NullBus) FireEvent(event *Event) {
}
func (n *NullBus) Run(ctx context.Context) {
}
