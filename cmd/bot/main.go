package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"TeneoKeeper/internal/agent"
	"TeneoKeeper/internal/api"
	"TeneoKeeper/internal/client"
	"TeneoKeeper/internal/config"
	"TeneoKeeper/internal/logger"
	"TeneoKeeper/internal/notifier"
	"TeneoKeeper/internal/recorder"
	"TeneoKeeper/internal/scheduler"
)

func main() {
	// Load config
	cfgPath := "configs/config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		cfgPath = v
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("[FATAL] load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("[FATAL] config validation: %v", err)
	}

	// Init log sink (rotating file mirrored to stdout)
	logger.Init(logger.Options{
		Level:       cfg.Log.Level,
		LogFilePath: cfg.Log.FilePath,
		MaxSizeMB:   cfg.Log.MaxSizeMB,
		MaxBackups:  cfg.Log.MaxBackups,
		MaxAgeDays:  cfg.Log.MaxAgeDays,
	})
	logger.Info("TeneoKeeper starting...")

	// Init API operations
	httpClient := client.New(cfg.API.BaseURL, cfg.API.APIKey, cfg.Proxy, client.DefaultRetryConfig)
	ops := api.New(httpClient, cfg.API.Wallet)

	// Init recorder
	var rec recorder.Recorder
	if cfg.Database.SQLitePath != "" {
		sr, err := recorder.NewSQLiteRecorder(cfg.Database.SQLitePath)
		if err != nil {
			logger.Warn("init sqlite recorder failed, using noop: %v", err)
			rec = recorder.NewNoopRecorder()
		} else {
			rec = sr
			defer sr.Close()
		}
	} else {
		rec = recorder.NewNoopRecorder()
	}

	// Init Telegram notifier (optional)
	var tn *notifier.TelegramNotifier
	if cfg.Telegram.BotToken != "" && cfg.Telegram.ChatID != "" {
		tn = notifier.NewTelegramNotifier(cfg.Telegram.BotToken, cfg.Telegram.ChatID, cfg.Proxy)
	}

	// Context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Init agent and register cycles
	ag := agent.New(ctx, ops, rec, tn, agent.Config{
		ActivityThreshold: cfg.Thresholds.Activity,
		RewardThreshold:   cfg.Thresholds.Reward,
		SettleDelay:       agent.DefaultConfig.SettleDelay,
	})

	sched := scheduler.New()
	sched.Register("farming", time.Duration(cfg.Schedule.FarmIntervalMinutes)*time.Minute, ag.FarmingCycle)
	sched.Register("compounding", time.Duration(cfg.Schedule.CompoundIntervalMinutes)*time.Minute, ag.CompoundCycle)
	sched.Register("staking-check", time.Duration(cfg.Schedule.StakingCheckIntervalMinutes)*time.Minute, ag.CheckStaking)
	go sched.Run(ctx)

	// Start Telegram polling
	if tn != nil {
		go tn.StartPolling(ctx, ag.HandleCommand)
		logger.Info("Telegram polling started")
	}

	// Optional: run immediately on start
	if os.Getenv("RUN_ON_START") == "true" {
		logger.Info("RUN_ON_START enabled, executing farming cycle now")
		ag.FarmingCycle()
	}

	logger.Info("TeneoKeeper is running. Press Ctrl+C to stop.")

	// Wait for shutdown signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	logger.Info("shutdown signal received, stopping...")
	cancel()
	logger.Info("TeneoKeeper stopped")
}
