package recorder

import (
	"database/sql"
	"fmt"
	"sync"
	"time"

	_ "modernc.org/sqlite"

	"TeneoKeeper/internal/logger"
)

// SQLiteRecorder persists cycle history to a SQLite database.
type SQLiteRecorder struct {
	db *sql.DB
	mu sync.Mutex
}

// NewSQLiteRecorder opens (or creates) the SQLite database and runs migrations.
func NewSQLiteRecorder(dbPath string) (*SQLiteRecorder, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// WAL mode so external readers don't block the agent's writes.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	r := &SQLiteRecorder{db: db}
	if err := r.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	logger.Info("sqlite recorder opened: %s", dbPath)
	return r, nil
}

func (r *SQLiteRecorder) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS farm_events (
			id             INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp      INTEGER NOT NULL,
			strategy       TEXT,
			activity_score REAL,
			peak           INTEGER,
			submitted      INTEGER,
			ok             INTEGER
		)`,
		`CREATE INDEX IF NOT EXISTS idx_farm_ts ON farm_events(timestamp)`,

		`CREATE TABLE IF NOT EXISTS compound_events (
			id        INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp INTEGER NOT NULL,
			unclaimed REAL,
			triggered INTEGER,
			claim_ok  INTEGER,
			stake_ok  INTEGER
		)`,
		`CREATE INDEX IF NOT EXISTS idx_compound_ts ON compound_events(timestamp)`,

		`CREATE TABLE IF NOT EXISTS staking_checks (
			id              INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp       INTEGER NOT NULL,
			was_staked      INTEGER,
			stake_submitted INTEGER,
			stake_ok        INTEGER
		)`,
		`CREATE INDEX IF NOT EXISTS idx_staking_ts ON staking_checks(timestamp)`,
	}

	for _, s := range stmts {
		if _, err := r.db.Exec(s); err != nil {
			return fmt.Errorf("exec %q: %w", s[:40], err)
		}
	}
	return nil
}

func (r *SQLiteRecorder) RecordFarm(evt *FarmEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, err := r.db.Exec(`INSERT INTO farm_events
		(timestamp, strategy, activity_score, peak, submitted, ok)
		VALUES (?,?,?,?,?,?)`,
		time.Now().Unix(), evt.Strategy, evt.ActivityScore,
		evt.Peak, evt.Submitted, evt.OK,
	)
	return err
}

func (r *SQLiteRecorder) RecordCompound(evt *CompoundEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, err := r.db.Exec(`INSERT INTO compound_events
		(timestamp, unclaimed, triggered, claim_ok, stake_ok)
		VALUES (?,?,?,?,?)`,
		time.Now().Unix(), evt.Unclaimed, evt.Triggered, evt.ClaimOK, evt.StakeOK,
	)
	return err
}

func (r *SQLiteRecorder) RecordStakingCheck(evt *StakingCheckEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, err := r.db.Exec(`INSERT INTO staking_checks
		(timestamp, was_staked, stake_submitted, stake_ok)
		VALUES (?,?,?,?)`,
		time.Now().Unix(), evt.WasStaked, evt.StakeSubmitted, evt.StakeOK,
	)
	return err
}

func (r *SQLiteRecorder) Close() error {
	logger.Info("closing sqlite recorder")
	return r.db.Close()
}
