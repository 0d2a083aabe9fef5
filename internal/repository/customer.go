package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// CustomerRepo is the customer directory backed by the customers table.
type CustomerRepo struct{ db *pgxpool.Pool }

// NewCustomerRepo creates a new CustomerRepo.
func NewCustomerRepo(db *pgxpool.Pool) *CustomerRepo { return &CustomerRepo{db: db} }

// Exists reports whether the customer is known.
func (r *CustomerRepo) Exists(ctx context.Context, customerID string) (bool, error) {
	var ok bool
	if err := r.db.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM customers WHERE id = $1)`, customerID).Scan(&ok); err != nil {
		return false, fmt.Errorf("customer exists %s: %w", customerID, err)
	}
	return ok, nil
}

// Upsert registers a customer id.
func (r *CustomerRepo) Upsert(ctx context.Context, customerID string) error {
	if _, err := r.db.Exec(ctx, `INSERT INTO customers (id) VALUES ($1) ON CONFLICT DO NOTHING`, customerID); err != nil {
		return fmt.Errorf("upsert customer %s: %w", customerID, err)
	}
	return nil
}
