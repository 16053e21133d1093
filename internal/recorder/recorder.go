package recorder

// FarmEvent records one farming-cycle outcome.
type FarmEvent struct {
	Strategy      string
	ActivityScore float64
	Peak          bool
	Submitted     bool // false when the cycle skipped below the activity threshold
	OK            bool // the farm call returned a payload
}

// CompoundEvent records one compounding-cycle outcome. ClaimOK and StakeOK
// are kept separate because claim success is assumed, not verified, before
// the stake is submitted.
type CompoundEvent struct {
	Unclaimed float64
	Triggered bool
	ClaimOK   bool
	StakeOK   bool
}

// StakingCheckEvent records one staking-check outcome.
type StakingCheckEvent struct {
	WasStaked      bool
	StakeSubmitted bool
	StakeOK        bool
}

// Recorder persists cycle history for later analysis. The agent only ever
// appends; nothing is read back at runtime.
type Recorder interface {
	RecordFarm(evt *FarmEvent) error
	RecordCompound(evt *CompoundEvent) error
	RecordStakingCheck(evt *StakingCheckEvent) error
	Close() error
}
