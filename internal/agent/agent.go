package agent

import (
	"context"
	"encoding/json"
	"time"

	"TeneoKeeper/internal/logger"
	"TeneoKeeper/internal/model"
	"TeneoKeeper/internal/notifier"
	"TeneoKeeper/internal/recorder"
)

// API is the set of remote operations the cycles consume. Read operations
// degrade to empty values on failure; write operations surface absence.
type API interface {
	ActivityScore(ctx context.Context) float64
	PeakTime(ctx context.Context) bool
	CurrentRewards(ctx context.Context) float64
	StakingStatus(ctx context.Context) bool
	Farm(ctx context.Context, strategy string) (json.RawMessage, error)
	Claim(ctx context.Context) (json.RawMessage, error)
	Stake(ctx context.Context) (json.RawMessage, error)
}

// Config carries the decision thresholds and delays of the cycles.
type Config struct {
	ActivityThreshold float64
	RewardThreshold   float64
	SettleDelay       time.Duration
}

// DefaultConfig matches production behavior.
var DefaultConfig = Config{
	ActivityThreshold: 75,
	RewardThreshold:   1.0,
	SettleDelay:       5 * time.Second,
}

// Agent runs the periodic cycles against one wallet. Each cycle is a
// stateless procedure; everything it branches on is read fresh from the API.
type Agent struct {
	API      API
	Recorder recorder.Recorder
	Notifier *notifier.TelegramNotifier // nil when Telegram is not configured
	Config   Config
	Ctx      context.Context
}

// New creates an Agent.
func New(ctx context.Context, api API, rec recorder.Recorder, tn *notifier.TelegramNotifier, cfg Config) *Agent {
	return &Agent{
		API:      api,
		Recorder: rec,
		Notifier: tn,
		Config:   cfg,
		Ctx:      ctx,
	}
}

// FarmingCycle reads the activity and peak-time signals and submits a farm
// action when the activity score clears the threshold.
func (a *Agent) FarmingCycle() {
	activity := a.API.ActivityScore(a.Ctx)
	peak := a.API.PeakTime(a.Ctx)

	strategy := model.StrategyStandard
	if peak {
		strategy = model.StrategyPeak
	}
	logger.Info("strategy selected: %s | activity: %v", strategy, activity)

	evt := &recorder.FarmEvent{Strategy: strategy, ActivityScore: activity, Peak: peak}
	if activity >= a.Config.ActivityThreshold {
		evt.Submitted = true
		_, err := a.API.Farm(a.Ctx, strategy)
		evt.OK = err == nil
		if err == nil {
			a.trySend(notifier.FormatFarmReport(strategy, activity))
		}
	} else {
		logger.Info("activity too low (%v), skipping farming", activity)
	}
	if err := a.Recorder.RecordFarm(evt); err != nil {
		logger.Error("record farm event: %v", err)
	}
}

// CompoundCycle claims unclaimed rewards and re-stakes them once the balance
// clears the threshold.
func (a *Agent) CompoundCycle() {
	rewards := a.API.CurrentRewards(a.Ctx)

	evt := &recorder.CompoundEvent{Unclaimed: rewards}
	if rewards >= a.Config.RewardThreshold {
		evt.Triggered = true
		_, claimErr := a.API.Claim(a.Ctx)
		evt.ClaimOK = claimErr == nil

		// Fixed settle wait; the claim payload is not checked for
		// confirmation before staking.
		a.wait(a.Config.SettleDelay)

		_, stakeErr := a.API.Stake(a.Ctx)
		evt.StakeOK = stakeErr == nil

		logger.Info("compounded %v TENEO into staking", rewards)
		if evt.ClaimOK && evt.StakeOK {
			a.trySend(notifier.FormatCompoundReport(rewards))
		}
	} else {
		logger.Info("not enough rewards to compound")
	}
	if err := a.Recorder.RecordCompound(evt); err != nil {
		logger.Error("record compound event: %v", err)
	}
}

// CheckStaking verifies the wallet is still staked and re-stakes when not.
func (a *Agent) CheckStaking() {
	staked := a.API.StakingStatus(a.Ctx)

	evt := &recorder.StakingCheckEvent{WasStaked: staked}
	if !staked {
		logger.Info("wallet not staked, attempting to stake...")
		evt.StakeSubmitted = true
		_, err := a.API.Stake(a.Ctx)
		evt.StakeOK = err == nil
	} else {
		logger.Info("wallet staking is active")
	}
	if err := a.Recorder.RecordStakingCheck(evt); err != nil {
		logger.Error("record staking check: %v", err)
	}
}

// Status reads all four remote signals in one pass.
func (a *Agent) Status() model.StatusSnapshot {
	return model.StatusSnapshot{
		ActivityScore: a.API.ActivityScore(a.Ctx),
		IsPeak:        a.API.PeakTime(a.Ctx),
		Unclaimed:     a.API.CurrentRewards(a.Ctx),
		IsStaked:      a.API.StakingStatus(a.Ctx),
	}
}

// HandleCommand processes a user command and returns a reply.
func (a *Agent) HandleCommand(command string) string {
	switch command {
	case "/status":
		snap := a.Status()
		return notifier.FormatStatus(&snap)
	case "/farm":
		a.FarmingCycle()
		return "farming cycle executed"
	case "/compound":
		a.CompoundCycle()
		return "compounding cycle executed"
	default:
		return "Available commands:\n• /status\n• /farm\n• /compound"
	}
}

func (a *Agent) trySend(text string) {
	if a.Notifier == nil {
		return
	}
	if err := a.Notifier.SendWithRetry(a.Ctx, text, 3); err != nil {
		logger.Error("send notification: %v", err)
	}
}

func (a *Agent) wait(d time.Duration) {
	select {
	case <-a.Ctx.Done():
	case <-time.After(d):
	}
}
