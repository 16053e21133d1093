package notifier

import (
	"fmt"
	"strings"
	"time"

	"TeneoKeeper/internal/model"
)

// FormatFarmReport formats a completed farming action into a Telegram message.
func FormatFarmReport(strategy string, activity float64) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("🌾 <b>Farming performed</b> | %s\n\n", time.Now().Format("2006-01-02 15:04")))
	b.WriteString(fmt.Sprintf("Strategy: %s\n", strategy))
	b.WriteString(fmt.Sprintf("Activity score: %v\n", activity))
	return b.String()
}

// FormatCompoundReport formats a completed claim-and-restake round.
func FormatCompoundReport(amount float64) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("💰 <b>Rewards compounded</b> | %s\n\n", time.Now().Format("2006-01-02 15:04")))
	b.WriteString(fmt.Sprintf("Claimed and re-staked: %v TENEO\n", amount))
	return b.String()
}

// FormatStatus formats the current account snapshot for display.
func FormatStatus(snap *model.StatusSnapshot) string {
	var b strings.Builder
	b.WriteString("📦 <b>Account status</b>\n\n")
	b.WriteString(fmt.Sprintf("Activity score: %v\n", snap.ActivityScore))
	b.WriteString(fmt.Sprintf("Peak time: %v\n", snap.IsPeak))
	b.WriteString(fmt.Sprintf("Unclaimed rewards: %v TENEO\n", snap.Unclaimed))
	if snap.IsStaked {
		b.WriteString("Staking: active ✅\n")
	} else {
		b.WriteString("Staking: inactive ⚠️\n")
	}
	return b.String()
}
