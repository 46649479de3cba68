package common

// Settings is the node configuration unmarshalled by viper from settings.yaml.
// Protocol holds the initial protocol parameters; it is only applied to an empty store,
// afterwards parameters live in state and change through admin operations.
type Settings struct {
	Log struct {
		Level string
	}
	Storage struct {
		Dir string
	}
	Rpc struct {
		Address           string
		RequestsPerSecond float64
		Burst             int
	}
	Oracle struct {
		Type          string
		CacheTTL      int
		DefaultActive bool
	}
	Keeper struct {
		Interval int
	}
	Seed struct {
		Path string
	}
	Protocol ProtocolSettings
}

// ProtocolSettings mirrors params.Params with plain types; big amounts are decimal strings.
type ProtocolSettings struct {
	VotingWindow        int64
	DisputeWindow       int64
	MinStake            string
	ThresholdPercent    uint64
	SlashPercent        uint64
	RewardPercent       uint64
	WeightingEnabled    *bool
	MinScore            string
	MaxScore            string
	DefaultScore        string
	MaxSlashPercentage  uint64
	SlashCooldown       int64
	DecayRatePerEpoch   uint64
	EpochDuration       int64
	InactivityThreshold uint64
	MaxDecayPercent     uint64
	SilverThreshold     string
	GoldThreshold       string
}
