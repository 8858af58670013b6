package repo

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

const schema = `
CREATE TABLE IF NOT EXISTS estimates (
	id               UUID PRIMARY KEY,
	pickup           TEXT NOT NULL,
	destination      TEXT NOT NULL,
	pickup_lat       DOUBLE PRECISION NOT NULL,
	pickup_lon       DOUBLE PRECISION NOT NULL,
	destination_lat  DOUBLE PRECISION NOT NULL,
	destination_lon  DOUBLE PRECISION NOT NULL,
	hour             SMALLINT NOT NULL CHECK (hour BETWEEN 0 AND 23),
	weekday          SMALLINT NOT NULL CHECK (weekday BETWEEN 0 AND 6),
	rain             BOOLEAN NOT NULL DEFAULT FALSE,
	category         TEXT NOT NULL,
	distance_km      DOUBLE PRECISION NOT NULL,
	fare             NUMERIC(10,2) NOT NULL,
	eta_minutes      INTEGER NOT NULL,
	surge_multiplier DOUBLE PRECISION NOT NULL DEFAULT 1.0,
	confidence       TEXT NOT NULL,
	recommended      TEXT,
	request_id       TEXT,
	created_at       TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE INDEX IF NOT EXISTS idx_estimates_created_at ON estimates (created_at);

-- no FK: booking events may arrive before their estimate
CREATE TABLE IF NOT EXISTS bookings (
	id           UUID PRIMARY KEY,
	estimate_id  UUID NOT NULL UNIQUE,
	passenger_id TEXT,
	status       TEXT NOT NULL,
	category     TEXT NOT NULL,
	fare         NUMERIC(10,2) NOT NULL,
	confirmed_at TIMESTAMPTZ NOT NULL
);
`

// EnsureSchema creates the journal tables if they do not exist.
func EnsureSchema(ctx context.Context, db *pgxpool.Pool) error {
	if _, err := db.Exec(ctx, schema); err != nil {
		return fmt.Errorf("journal repo: ensure schema: %w", err)
	}
	return nil
}
