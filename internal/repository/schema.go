package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

var schema = []string{
	`CREATE TABLE IF NOT EXISTS customers (
		id         TEXT PRIMARY KEY,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS couriers (
		id                  TEXT PRIMARY KEY,
		name                TEXT NOT NULL,
		phone               TEXT NOT NULL UNIQUE,
		status              TEXT NOT NULL,
		vehicle_class       TEXT NOT NULL,
		lat                 DOUBLE PRECISION NOT NULL DEFAULT 0,
		lng                 DOUBLE PRECISION NOT NULL DEFAULT 0,
		locked_for_delivery TEXT,
		locked_at           TIMESTAMPTZ,
		rating              DOUBLE PRECISION NOT NULL DEFAULT 0,
		total_deliveries    BIGINT NOT NULL DEFAULT 0,
		last_seen_at        TIMESTAMPTZ,
		created_at          TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at          TIMESTAMPTZ NOT NULL DEFAULT now(),
		CONSTRAINT couriers_lock_fields CHECK ((locked_for_delivery IS NULL) = (locked_at IS NULL))
	)`,
	`CREATE INDEX IF NOT EXISTS couriers_available_idx ON couriers (vehicle_class) WHERE status = 'available'`,
	`CREATE INDEX IF NOT EXISTS couriers_locked_at_idx ON couriers (locked_at) WHERE locked_at IS NOT NULL`,
	`CREATE TABLE IF NOT EXISTS deliveries (
		id              TEXT PRIMARY KEY,
		customer_id     TEXT NOT NULL,
		merchant_ref    TEXT NOT NULL,
		pickup_lat      DOUBLE PRECISION NOT NULL,
		pickup_lng      DOUBLE PRECISION NOT NULL,
		dropoff_lat     DOUBLE PRECISION NOT NULL,
		dropoff_lng     DOUBLE PRECISION NOT NULL,
		vehicle_class   TEXT NOT NULL,
		item_count      INT NOT NULL,
		instructions    TEXT NOT NULL DEFAULT '',
		status          TEXT NOT NULL,
		courier_id      TEXT,
		fare            JSONB NOT NULL,
		cancel_reason   TEXT NOT NULL DEFAULT '',
		proof           JSONB,
		customer_rating INT,
		courier_rating  INT,
		created_at      TIMESTAMPTZ NOT NULL,
		updated_at      TIMESTAMPTZ NOT NULL,
		assigned_at     TIMESTAMPTZ,
		at_merchant_at  TIMESTAMPTZ,
		picked_up_at    TIMESTAMPTZ,
		in_transit_at   TIMESTAMPTZ,
		arrived_at      TIMESTAMPTZ,
		delivered_at    TIMESTAMPTZ,
		cancelled_at    TIMESTAMPTZ
	)`,
	`CREATE UNIQUE INDEX IF NOT EXISTS deliveries_one_active_per_customer ON deliveries (customer_id)
		WHERE status IN ('pending','rider_assigned','at_merchant','picked_up','in_transit','arrived')`,
	`CREATE INDEX IF NOT EXISTS deliveries_active_courier_idx ON deliveries (courier_id)
		WHERE status IN ('rider_assigned','at_merchant','picked_up','in_transit','arrived')`,
	`CREATE INDEX IF NOT EXISTS deliveries_status_created_idx ON deliveries (status, created_at)`,
}

// Migrate creates the tables and indexes if they do not exist.
func Migrate(ctx context.Context, pool *pgxpool.Pool) error {
	for i, stmt := range schema {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("migrate step %d: %w", i, err)
		}
	}
	return nil
}
