package postgres

import (
	"github.com/CEOAlmaloco/Boleta-Detalle-Cliente/internal/config"
	ierr "github.com/CEOAlmaloco/Boleta-Detalle-Cliente/internal/errors"
	"github.com/CEOAlmaloco/Boleta-Detalle-Cliente/internal/logger"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
)

// NewDB opens a PostgreSQL connection pool from configuration
func NewDB(cfg *config.Configuration, log *logger.Logger) (*sqlx.DB, error) {
	db, err := sqlx.Connect("postgres", cfg.Postgres.GetDSN())
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to connect to postgres").
			Mark(ierr.ErrDatabase)
	}

	db.SetMaxOpenConns(cfg.Postgres.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Postgres.MaxIdleConns)

	log.Infow("connected to postgres",
		"host", cfg.Postgres.Host,
		"database", cfg.Postgres.DBName,
	)

	return db, nil
}
