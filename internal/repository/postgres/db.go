package postgres

import (
	"fmt"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"

	"invoicegen/internal/config"
)

// connMaxLifetime recycles connections so pool members never outlive a
// failover or a pgbouncer restart.
const connMaxLifetime = 30 * time.Minute

// NewDB opens the pgx-backed pool shared by every repository. Connect
// pings once, so a bad DSN fails at startup rather than on first query.
func NewDB(cfg *config.DBConfig) (*sqlx.DB, error) {
	db, err := sqlx.Connect("pgx", cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("postgres.NewDB: %w", err)
	}

	db.SetMaxOpenConns(cfg.MaxOpen)
	db.SetMaxIdleConns(cfg.MaxIdle)
	db.SetConnMaxLifetime(connMaxLifetime)
	return db, nil
}
