package recorder

// NoopRecorder is a no-op implementation used when SQLite is not configured.
type NoopRecorder struct{}

func NewNoopRecorder() *NoopRecorder { return &NoopRecorder{} }

func (n *NoopRecorder) RecordFarm(_ *FarmEvent) error                 { return nil }
func (n *NoopRecorder) RecordCompound(_ *CompoundEvent) error         { return nil }
func (n *NoopRecorder) RecordStakingCheck(_ *StakingCheckEvent) error { return nil }
func (n *NoopRecorder) Close() error                                  { return nil }
