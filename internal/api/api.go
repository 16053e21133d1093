package api

import (
	"context"
	"encoding/json"
	"net/http"

	"TeneoKeeper/internal/client"
	"TeneoKeeper/internal/logger"
)

// API exposes the remote reward/staking endpoints as typed operations.
//
// Read operations degrade to their empty value (0 or false) when the call
// fails, so callers proceed on "nothing observed" without special-casing.
// Write operations return the raw payload or the failure unchanged.
type API struct {
	Client *client.Client
	Wallet string
}

// New creates the operation set for a single wallet.
func New(c *client.Client, wallet string) *API {
	return &API{Client: c, Wallet: wallet}
}

type farmRequest struct {
	Wallet   string `json:"wallet"`
	Strategy string `json:"strategy"`
}

type walletRequest struct {
	Wallet string `json:"wallet"`
}

// ActivityScore reads the server-reported engagement score.
func (a *API) ActivityScore(ctx context.Context) float64 {
	body, err := a.Client.Do(ctx, http.MethodGet, "/activity/"+a.Wallet, nil)
	if err != nil {
		return 0
	}
	var result struct {
		ActivityScore float64 `json:"activityScore"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		return 0
	}
	return result.ActivityScore
}

// PeakTime reports whether the server considers this a reward-favorable window.
func (a *API) PeakTime(ctx context.Context) bool {
	body, err := a.Client.Do(ctx, http.MethodGet, "/rewards/peak-times", nil)
	if err != nil {
		return false
	}
	var result struct {
		IsPeak bool `json:"isPeak"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		return false
	}
	return result.IsPeak
}

// CurrentRewards reads the unclaimed reward balance and logs it on every
// call as a standing status report.
func (a *API) CurrentRewards(ctx context.Context) float64 {
	rewards := 0.0
	body, err := a.Client.Do(ctx, http.MethodGet, "/rewards/current/"+a.Wallet, nil)
	if err == nil {
		var result struct {
			Unclaimed float64 `json:"unclaimed"`
		}
		if err := json.Unmarshal(body, &result); err == nil {
			rewards = result.Unclaimed
		}
	}
	logger.Info("current unclaimed rewards: %v TENEO", rewards)
	return rewards
}

// StakingStatus reports whether the wallet's funds are currently staked.
func (a *API) StakingStatus(ctx context.Context) bool {
	body, err := a.Client.Do(ctx, http.MethodGet, "/staking/status/"+a.Wallet, nil)
	if err != nil {
		return false
	}
	var result struct {
		IsStaked bool `json:"isStaked"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		return false
	}
	return result.IsStaked
}

// Farm submits a farming action with the given strategy.
func (a *API) Farm(ctx context.Context, strategy string) (json.RawMessage, error) {
	body, err := a.Client.Do(ctx, http.MethodPost, "/farm", farmRequest{Wallet: a.Wallet, Strategy: strategy})
	if err != nil {
		logger.Error("farming failed")
		return nil, err
	}
	logger.Info("farming performed with strategy: %s", strategy)
	return body, nil
}

// Claim submits a claim for all unclaimed rewards.
func (a *API) Claim(ctx context.Context) (json.RawMessage, error) {
	body, err := a.Client.Do(ctx, http.MethodPost, "/rewards/claim", walletRequest{Wallet: a.Wallet})
	if err != nil {
		logger.Error("claim failed")
		return nil, err
	}
	logger.Info("rewards claimed: %s", string(body))
	return body, nil
}

// Stake submits a stake action for the wallet's balance.
func (a *API) Stake(ctx context.Context) (json.RawMessage, error) {
	body, err := a.Client.Do(ctx, http.MethodPost, "/staking/stake", walletRequest{Wallet: a.Wallet})
	if err != nil {
		logger.Error("re-staking failed")
		return nil, err
	}
	logger.Info("rewards re-staked")
	return body, nil
}
