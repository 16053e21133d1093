package model

// Strategy labels accepted by the farm endpoint.
const (
	StrategyStandard = "standard"
	StrategyPeak     = "peak"
)

// StatusSnapshot bundles the four remote signals read in one pass, used for
// on-demand status reports.
type StatusSnapshot struct {
	ActivityScore float64
	IsPeak        bool
	Unclaimed     float64
	IsStaked      bool
}
