package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"rider-dispatch/internal/apperr"
	"rider-dispatch/internal/domain"
	"rider-dispatch/internal/ports"
)

// DeliveryRepo represents delivery repository.
type DeliveryRepo struct {
	db *pgxpool.Pool
}

// NewDeliveryRepo creates a new DeliveryRepo.
func NewDeliveryRepo(db *pgxpool.Pool) *DeliveryRepo {
	return &DeliveryRepo{db: db}
}

var _ ports.DeliveryStore = (*DeliveryRepo)(nil)

const deliveryColumns = `id, customer_id, merchant_ref, pickup_lat, pickup_lng, dropoff_lat, dropoff_lng,
	vehicle_class, item_count, instructions, status, courier_id, fare, cancel_reason, proof,
	customer_rating, courier_rating, created_at, updated_at, assigned_at, at_merchant_at,
	picked_up_at, in_transit_at, arrived_at, delivered_at, cancelled_at`

// timestampColumn is the column stamped when a delivery enters a status.
var timestampColumn = map[domain.DeliveryStatus]string{
	domain.DeliveryRiderAssigned: "assigned_at",
	domain.DeliveryAtMerchant:    "at_merchant_at",
	domain.DeliveryPickedUp:      "picked_up_at",
	domain.DeliveryInTransit:     "in_transit_at",
	domain.DeliveryArrived:       "arrived_at",
	domain.DeliveryDelivered:     "delivered_at",
	domain.DeliveryCancelled:     "cancelled_at",
}

func activeStatuses() []string {
	out := make([]string, 0, len(domain.ActiveStatuses))
	for _, s := range domain.ActiveStatuses {
		out = append(out, string(s))
	}
	return out
}

func scanDelivery(row pgx.Row) (*domain.Delivery, error) {
	var (
		d       domain.Delivery
		courier *string
	)
	ts := &d.Timestamps
	err := row.Scan(&d.ID, &d.CustomerID, &d.MerchantRef,
		&d.Pickup.Lat, &d.Pickup.Lng, &d.Dropoff.Lat, &d.Dropoff.Lng,
		&d.VehicleClass, &d.ItemCount, &d.Instructions, &d.Status, &courier, &d.Fare,
		&d.CancelReason, &d.Proof, &d.CustomerRating, &d.CourierRating,
		&ts.CreatedAt, &ts.UpdatedAt, &ts.AssignedAt, &ts.AtMerchantAt,
		&ts.PickedUpAt, &ts.InTransitAt, &ts.ArrivedAt, &ts.DeliveredAt, &ts.CancelledAt)
	if err != nil {
		return nil, err
	}
	if courier != nil {
		d.CourierID = *courier
	}
	return &d, nil
}

// Create - inserts a new delivery.
func (r *DeliveryRepo) Create(ctx context.Context, d *domain.Delivery) error {
	_, err := r.db.Exec(ctx, `
        INSERT INTO deliveries (id, customer_id, merchant_ref, pickup_lat, pickup_lng, dropoff_lat, dropoff_lng,
            vehicle_class, item_count, instructions, status, fare, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
    `, d.ID, d.CustomerID, d.MerchantRef, d.Pickup.Lat, d.Pickup.Lng, d.Dropoff.Lat, d.Dropoff.Lng,
		string(d.VehicleClass), d.ItemCount, d.Instructions, string(d.Status), d.Fare,
		d.Timestamps.CreatedAt, d.Timestamps.UpdatedAt)
	if err != nil {
		if IsDuplicate(err) {
			return fmt.Errorf("%w: customer %s already has an active delivery", apperr.ErrConflict, d.CustomerID)
		}
		return fmt.Errorf("insert delivery: %w", err)
	}
	return nil
}

// Get - returns delivery by its ID.
func (r *DeliveryRepo) Get(ctx context.Context, id string) (*domain.Delivery, error) {
	return r.getOne(ctx, `SELECT `+deliveryColumns+` FROM deliveries WHERE id = $1`, id)
}

// ActiveByCustomer - returns the customer's active delivery, if any.
func (r *DeliveryRepo) ActiveByCustomer(ctx context.Context, customerID string) (*domain.Delivery, error) {
	return r.getOne(ctx, `
        SELECT `+deliveryColumns+` FROM deliveries
        WHERE customer_id = $1 AND status = ANY($2)
        ORDER BY created_at DESC LIMIT 1
    `, customerID, activeStatuses())
}

// ActiveByCourier - returns the courier's active delivery, if any.
func (r *DeliveryRepo) ActiveByCourier(ctx context.Context, courierID string) (*domain.Delivery, error) {
	return r.getOne(ctx, `
        SELECT `+deliveryColumns+` FROM deliveries
        WHERE courier_id = $1 AND status = ANY($2)
        ORDER BY created_at DESC LIMIT 1
    `, courierID, activeStatuses())
}

// ActiveByMerchant - returns the merchant's most recent active delivery, if any.
func (r *DeliveryRepo) ActiveByMerchant(ctx context.Context, merchantRef string) (*domain.Delivery, error) {
	return r.getOne(ctx, `
        SELECT `+deliveryColumns+` FROM deliveries
        WHERE merchant_ref = $1 AND status = ANY($2)
        ORDER BY created_at DESC LIMIT 1
    `, merchantRef, activeStatuses())
}

func (r *DeliveryRepo) getOne(ctx context.Context, q string, args ...any) (*domain.Delivery, error) {
	d, err := scanDelivery(r.db.QueryRow(ctx, q, args...))
	if err != nil {
		if IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get delivery: %w", err)
	}
	return d, nil
}

// ListByStatus - returns the oldest deliveries in a status.
func (r *DeliveryRepo) ListByStatus(ctx context.Context, status domain.DeliveryStatus, limit int) ([]domain.Delivery, error) {
	rows, err := r.db.Query(ctx, `
        SELECT `+deliveryColumns+` FROM deliveries
        WHERE status = $1
        ORDER BY created_at
        LIMIT $2
    `, string(status), limit)
	if err != nil {
		return nil, fmt.Errorf("list deliveries by status %s: %w", status, err)
	}
	defer rows.Close()

	var out []domain.Delivery
	for rows.Next() {
		d, err := scanDelivery(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *d)
	}
	return out, rows.Err()
}

// Transition - moves the delivery to t.To if its status still equals t.From.
func (r *DeliveryRepo) Transition(ctx context.Context, t domain.Transition) (bool, error) {
	col, ok := timestampColumn[t.To]
	if !ok {
		return false, fmt.Errorf("transition to %s: no timestamp column", t.To)
	}
	ct, err := r.db.Exec(ctx, `
        UPDATE deliveries
        SET status = $3,
            `+col+` = $4,
            updated_at = $4,
            courier_id = COALESCE(NULLIF($5, ''), courier_id),
            cancel_reason = COALESCE(NULLIF($6, ''), cancel_reason),
            proof = COALESCE($7, proof)
        WHERE id = $1 AND status = $2
    `, t.DeliveryID, string(t.From), string(t.To), t.At, t.CourierID, t.CancelReason, t.Proof)
	if err != nil {
		return false, fmt.Errorf("transition delivery %s %s->%s: %w", t.DeliveryID, t.From, t.To, err)
	}
	return ct.RowsAffected() == 1, nil
}

// Rate - stores a score given by the customer or the courier, once.
func (r *DeliveryRepo) Rate(ctx context.Context, id string, by domain.Role, score int) (bool, error) {
	var col string
	switch by {
	case domain.RoleCustomer:
		col = "customer_rating"
	case domain.RoleCourier:
		col = "courier_rating"
	default:
		return false, fmt.Errorf("%w: role %s cannot rate", apperr.ErrForbidden, by)
	}
	ct, err := r.db.Exec(ctx, `
        UPDATE deliveries
        SET `+col+` = $2, updated_at = now()
        WHERE id = $1 AND status = 'delivered' AND `+col+` IS NULL
    `, id, score)
	if err != nil {
		return false, fmt.Errorf("rate delivery %s: %w", id, err)
	}
	return ct.RowsAffected() == 1, nil
}
