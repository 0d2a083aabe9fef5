package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"rider-dispatch/internal/apperr"
	"rider-dispatch/internal/domain"
	"rider-dispatch/internal/ports"
)

// CourierRepo represents courier repository.
type CourierRepo struct{ db *pgxpool.Pool }

// NewCourierRepo creates a new CourierRepo.
func NewCourierRepo(db *pgxpool.Pool) *CourierRepo { return &CourierRepo{db: db} }

var _ ports.CourierStore = (*CourierRepo)(nil)

const courierColumns = `id, name, phone, status, vehicle_class, lat, lng,
	locked_for_delivery, locked_at, rating, total_deliveries, last_seen_at`

// haversineSQL is the great-circle distance in km from ($1, $2) to (lat, lng).
const haversineSQL = `2 * 6371 * asin(sqrt(LEAST(1,
	power(sin(radians(lat - $1) / 2), 2) +
	cos(radians($1)) * cos(radians(lat)) * power(sin(radians(lng - $2) / 2), 2))))`

func scanCourier(row pgx.Row) (*domain.Courier, error) {
	var (
		c      domain.Courier
		locked *string
	)
	err := row.Scan(&c.ID, &c.Name, &c.Phone, &c.Status, &c.VehicleClass, &c.Location.Lat, &c.Location.Lng,
		&locked, &c.LockedAt, &c.Rating, &c.TotalDeliveries, &c.LastSeenAt)
	if err != nil {
		return nil, err
	}
	if locked != nil {
		c.LockedForDelivery = *locked
	}
	return &c, nil
}

// Get - returns courier by its ID.
func (r *CourierRepo) Get(ctx context.Context, id string) (*domain.Courier, error) {
	c, err := scanCourier(r.db.QueryRow(ctx, `SELECT `+courierColumns+` FROM couriers WHERE id=$1`, id))
	if err != nil {
		if IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get courier %s: %w", id, err)
	}
	return c, nil
}

// Create - creates a new courier.
func (r *CourierRepo) Create(ctx context.Context, c *domain.Courier) error {
	_, err := r.db.Exec(ctx, `
        INSERT INTO couriers (id, name, phone, status, vehicle_class, lat, lng, last_seen_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
    `, c.ID, c.Name, c.Phone, c.Status, c.VehicleClass, c.Location.Lat, c.Location.Lng, c.LastSeenAt)
	if err != nil {
		if IsDuplicate(err) {
			return apperr.ErrConflict
		}
		return fmt.Errorf("create courier: %w", err)
	}
	return nil
}

// ApplyHeartbeat stores the reported location. The reported status is applied
// only while the courier holds no lock.
func (r *CourierRepo) ApplyHeartbeat(ctx context.Context, hb domain.Heartbeat) (bool, error) {
	ct, err := r.db.Exec(ctx, `
        UPDATE couriers
        SET lat = $2,
            lng = $3,
            last_seen_at = $4,
            status = CASE
                WHEN $5::text <> '' AND locked_for_delivery IS NULL THEN $5::text
                ELSE status
            END,
            updated_at = now()
        WHERE id = $1
    `, hb.CourierID, hb.Location.Lat, hb.Location.Lng, hb.At, string(hb.Status))
	if err != nil {
		return false, fmt.Errorf("apply heartbeat %s: %w", hb.CourierID, err)
	}
	return ct.RowsAffected() > 0, nil
}

// NearestAvailable returns available couriers within q.RadiusKm of q.Pickup, nearest first.
func (r *CourierRepo) NearestAvailable(ctx context.Context, q ports.CandidateQuery) ([]domain.Candidate, error) {
	rows, err := r.db.Query(ctx, `
        SELECT id, dist FROM (
            SELECT id, `+haversineSQL+` AS dist
            FROM couriers
            WHERE status = 'available'
              AND vehicle_class = $3
              AND NOT (id = ANY($4::text[]))
        ) c
        WHERE dist <= $5
        ORDER BY dist, id
        LIMIT $6
    `, q.Pickup.Lat, q.Pickup.Lng, string(q.VehicleClass), nonNil(q.Excluded), q.RadiusKm, q.Limit)
	if err != nil {
		if isProximityUnsupported(err) {
			return nil, fmt.Errorf("%w: %v", ports.ErrProximityUnavailable, err)
		}
		return nil, fmt.Errorf("nearest available couriers: %w", err)
	}
	return collectCandidates(rows)
}

// AnyAvailable returns available couriers of the class, most recently seen first.
func (r *CourierRepo) AnyAvailable(ctx context.Context, q ports.CandidateQuery) ([]domain.Candidate, error) {
	rows, err := r.db.Query(ctx, `
        SELECT id, 0::double precision
        FROM couriers
        WHERE status = 'available'
          AND vehicle_class = $1
          AND NOT (id = ANY($2::text[]))
        ORDER BY last_seen_at DESC NULLS LAST, id
        LIMIT $3
    `, string(q.VehicleClass), nonNil(q.Excluded), q.Limit)
	if err != nil {
		return nil, fmt.Errorf("any available couriers: %w", err)
	}
	return collectCandidates(rows)
}

func collectCandidates(rows pgx.Rows) ([]domain.Candidate, error) {
	defer rows.Close()
	var out []domain.Candidate
	for rows.Next() {
		var c domain.Candidate
		if err := rows.Scan(&c.CourierID, &c.DistanceKm); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// TryLock - atomically reserves an available courier for a delivery.
func (r *CourierRepo) TryLock(ctx context.Context, courierID, deliveryID string, class domain.VehicleClass, at time.Time) (bool, error) {
	ct, err := r.db.Exec(ctx, `
        UPDATE couriers
        SET status = 'busy',
            locked_for_delivery = $2,
            locked_at = $3,
            updated_at = now()
        WHERE id = $1
          AND status = 'available'
          AND vehicle_class = $4
    `, courierID, deliveryID, at, string(class))
	if err != nil {
		return false, fmt.Errorf("lock courier %s: %w", courierID, err)
	}
	return ct.RowsAffected() == 1, nil
}

// Release - clears the courier lock and makes it available.
func (r *CourierRepo) Release(ctx context.Context, courierID string) error {
	ct, err := r.db.Exec(ctx, `
        UPDATE couriers
        SET status = 'available',
            locked_for_delivery = NULL,
            locked_at = NULL,
            updated_at = now()
        WHERE id = $1
          AND (locked_for_delivery IS NOT NULL OR status = 'busy')
    `, courierID)
	if err != nil {
		return fmt.Errorf("release courier %s: %w", courierID, err)
	}
	if ct.RowsAffected() > 0 {
		return nil
	}
	var exists bool
	if err := r.db.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM couriers WHERE id=$1)`, courierID).Scan(&exists); err != nil {
		return fmt.Errorf("release courier %s: %w", courierID, err)
	}
	if !exists {
		return apperr.ErrNotFound
	}
	return nil
}

// ReleaseFor - releases the courier if it is still locked for the delivery.
func (r *CourierRepo) ReleaseFor(ctx context.Context, courierID, deliveryID string) (bool, error) {
	ct, err := r.db.Exec(ctx, `
        UPDATE couriers
        SET status = 'available',
            locked_for_delivery = NULL,
            locked_at = NULL,
            updated_at = now()
        WHERE id = $1 AND locked_for_delivery = $2
    `, courierID, deliveryID)
	if err != nil {
		return false, fmt.Errorf("release courier %s for %s: %w", courierID, deliveryID, err)
	}
	return ct.RowsAffected() > 0, nil
}

// Touch - refreshes the lock timestamp.
func (r *CourierRepo) Touch(ctx context.Context, courierID, deliveryID string, at time.Time) (bool, error) {
	ct, err := r.db.Exec(ctx, `
        UPDATE couriers
        SET locked_at = $3, updated_at = now()
        WHERE id = $1 AND locked_for_delivery = $2
    `, courierID, deliveryID, at)
	if err != nil {
		return false, fmt.Errorf("touch courier %s: %w", courierID, err)
	}
	return ct.RowsAffected() > 0, nil
}

// ReleaseStale - releases couriers locked before the cutoff.
func (r *CourierRepo) ReleaseStale(ctx context.Context, before time.Time) ([]string, error) {
	rows, err := r.db.Query(ctx, `
        UPDATE couriers
        SET status = 'available',
            locked_for_delivery = NULL,
            locked_at = NULL,
            updated_at = now()
        WHERE locked_at < $1
        RETURNING id
    `, before)
	if err != nil {
		return nil, fmt.Errorf("release stale couriers: %w", err)
	}
	ids, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, fmt.Errorf("release stale couriers: %w", err)
	}
	return ids, nil
}

// IncrementDeliveries - bumps the courier's completed delivery counter.
func (r *CourierRepo) IncrementDeliveries(ctx context.Context, courierID string) error {
	_, err := r.db.Exec(ctx, `
        UPDATE couriers SET total_deliveries = total_deliveries + 1, updated_at = now() WHERE id = $1
    `, courierID)
	if err != nil {
		return fmt.Errorf("increment deliveries %s: %w", courierID, err)
	}
	return nil
}

// RefreshRating - recomputes the courier rating from customer scores.
func (r *CourierRepo) RefreshRating(ctx context.Context, courierID string) error {
	_, err := r.db.Exec(ctx, `
        UPDATE couriers
        SET rating = COALESCE((
                SELECT AVG(customer_rating)::double precision
                FROM deliveries
                WHERE courier_id = $1 AND customer_rating IS NOT NULL
            ), 0),
            updated_at = now()
        WHERE id = $1
    `, courierID)
	if err != nil {
		return fmt.Errorf("refresh rating %s: %w", courierID, err)
	}
	return nil
}

func nonNil(ids []string) []string {
	if ids == nil {
		return []string{}
	}
	return ids
}
