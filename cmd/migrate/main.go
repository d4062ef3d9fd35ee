package main

import (
	"log"

	"github.com/CEOAlmaloco/Boleta-Detalle-Cliente/internal/config"
	"github.com/CEOAlmaloco/Boleta-Detalle-Cliente/internal/logger"
	"github.com/CEOAlmaloco/Boleta-Detalle-Cliente/internal/postgres"
)

const schema = `
CREATE TABLE IF NOT EXISTS line_items (
	id              TEXT PRIMARY KEY,
	invoice_id      TEXT NOT NULL,
	catalog_item_id TEXT NOT NULL,
	quantity        INTEGER NOT NULL,
	unit_price      NUMERIC(20, 8) NOT NULL,
	subtotal        NUMERIC(20, 8) NOT NULL,
	created_at      TIMESTAMPTZ NOT NULL,
	updated_at      TIMESTAMPTZ NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_line_items_invoice_id ON line_items (invoice_id);
`

func main() {
	cfg, err := config.NewConfig()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logg, err := logger.NewLogger(cfg)
	if err != nil {
		log.Fatalf("failed to create logger: %v", err)
	}

	db, err := postgres.NewDB(cfg, logg)
	if err != nil {
		logg.Fatalw("failed to connect to postgres", "error", err)
	}
	defer db.Close()

	if _, err := db.Exec(schema); err != nil {
		logg.Fatalw("failed to apply schema", "error", err)
	}

	logg.Infow("schema applied")
}
