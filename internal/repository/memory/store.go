// Package memory is a mutex-guarded implementation of the storage ports.
// Every method takes the store lock, so each call is one atomic
// read-modify-write.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"rider-dispatch/internal/apperr"
	"rider-dispatch/internal/domain"
	"rider-dispatch/internal/ports"
)

// Store holds couriers, deliveries and customers.
type Store struct {
	mu         sync.Mutex
	couriers   map[string]*domain.Courier
	deliveries map[string]*domain.Delivery
	customers  map[string]struct{}
}

// New returns an empty Store.
func New() *Store {
	return &Store{
		couriers:   make(map[string]*domain.Courier),
		deliveries: make(map[string]*domain.Delivery),
		customers:  make(map[string]struct{}),
	}
}

// Couriers returns the courier view of the store.
func (s *Store) Couriers() *CourierStore { return &CourierStore{s: s} }

// Deliveries returns the delivery view of the store.
func (s *Store) Deliveries() *DeliveryStore { return &DeliveryStore{s: s} }

// Customers returns the customer directory view of the store.
func (s *Store) Customers() *CustomerDirectory { return &CustomerDirectory{s: s} }

// CourierStore implements ports.CourierStore.
type CourierStore struct{ s *Store }

var _ ports.CourierStore = (*CourierStore)(nil)

func copyCourier(c *domain.Courier) *domain.Courier {
	cp := *c
	if c.LockedAt != nil {
		t := *c.LockedAt
		cp.LockedAt = &t
	}
	if c.LastSeenAt != nil {
		t := *c.LastSeenAt
		cp.LastSeenAt = &t
	}
	return &cp
}

// Get returns a copy of the courier, or nil when unknown.
func (r *CourierStore) Get(_ context.Context, id string) (*domain.Courier, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c, ok := r.s.couriers[id]
	if !ok {
		return nil, nil
	}
	return copyCourier(c), nil
}

// Create stores a new courier; duplicate id or phone is a conflict.
func (r *CourierStore) Create(_ context.Context, c *domain.Courier) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.couriers[c.ID]; ok {
		return apperr.ErrConflict
	}
	for _, existing := range r.s.couriers {
		if existing.Phone == c.Phone {
			return apperr.ErrConflict
		}
	}
	r.s.couriers[c.ID] = copyCourier(c)
	return nil
}

// ApplyHeartbeat stores the location and, for unlocked couriers, the status.
func (r *CourierStore) ApplyHeartbeat(_ context.Context, hb domain.Heartbeat) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c, ok := r.s.couriers[hb.CourierID]
	if !ok {
		return false, nil
	}
	c.Location = hb.Location
	at := hb.At
	c.LastSeenAt = &at
	if hb.Status != "" && !c.IsLocked() {
		c.Status = hb.Status
	}
	return true, nil
}

func (r *CourierStore) eligible(c *domain.Courier, q ports.CandidateQuery, excluded map[string]struct{}) bool {
	if c.Status != domain.CourierAvailable || c.VehicleClass != q.VehicleClass {
		return false
	}
	_, skip := excluded[c.ID]
	return !skip
}

func toSet(ids []string) map[string]struct{} {
	out := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		out[id] = struct{}{}
	}
	return out
}

// NearestAvailable ranks eligible couriers by haversine distance.
func (r *CourierStore) NearestAvailable(_ context.Context, q ports.CandidateQuery) ([]domain.Candidate, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	excluded := toSet(q.Excluded)
	var out []domain.Candidate
	for _, c := range r.s.couriers {
		if !r.eligible(c, q, excluded) {
			continue
		}
		d := domain.DistanceKm(q.Pickup, c.Location)
		if d > q.RadiusKm {
			continue
		}
		out = append(out, domain.Candidate{CourierID: c.ID, DistanceKm: d})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].DistanceKm != out[j].DistanceKm {
			return out[i].DistanceKm < out[j].DistanceKm
		}
		return out[i].CourierID < out[j].CourierID
	})
	return limit(out, q.Limit), nil
}

// AnyAvailable returns eligible couriers in id order, ignoring distance.
func (r *CourierStore) AnyAvailable(_ context.Context, q ports.CandidateQuery) ([]domain.Candidate, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	excluded := toSet(q.Excluded)
	var out []domain.Candidate
	for _, c := range r.s.couriers {
		if r.eligible(c, q, excluded) {
			out = append(out, domain.Candidate{CourierID: c.ID})
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CourierID < out[j].CourierID })
	return limit(out, q.Limit), nil
}

func limit(in []domain.Candidate, n int) []domain.Candidate {
	if n > 0 && len(in) > n {
		return in[:n]
	}
	return in
}

// TryLock flips an available courier to busy and stamps the lock.
func (r *CourierStore) TryLock(_ context.Context, courierID, deliveryID string, class domain.VehicleClass, at time.Time) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c, ok := r.s.couriers[courierID]
	if !ok || c.Status != domain.CourierAvailable || c.VehicleClass != class {
		return false, nil
	}
	t := at
	c.Status = domain.CourierBusy
	c.LockedForDelivery = deliveryID
	c.LockedAt = &t
	return true, nil
}

func unlock(c *domain.Courier) {
	c.Status = domain.CourierAvailable
	c.LockedForDelivery = ""
	c.LockedAt = nil
}

// Release clears any lock; an offline unlocked courier stays offline.
func (r *CourierStore) Release(_ context.Context, courierID string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c, ok := r.s.couriers[courierID]
	if !ok {
		return apperr.ErrNotFound
	}
	if c.IsLocked() || c.Status == domain.CourierBusy {
		unlock(c)
	}
	return nil
}

// ReleaseFor releases the courier only while it is locked for deliveryID.
func (r *CourierStore) ReleaseFor(_ context.Context, courierID, deliveryID string) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c, ok := r.s.couriers[courierID]
	if !ok || c.LockedForDelivery != deliveryID {
		return false, nil
	}
	unlock(c)
	return true, nil
}

// Touch refreshes locked_at while the courier is locked for deliveryID.
func (r *CourierStore) Touch(_ context.Context, courierID, deliveryID string, at time.Time) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c, ok := r.s.couriers[courierID]
	if !ok || c.LockedForDelivery != deliveryID {
		return false, nil
	}
	t := at
	c.LockedAt = &t
	return true, nil
}

// ReleaseStale releases every lock taken before the cutoff.
func (r *CourierStore) ReleaseStale(_ context.Context, before time.Time) ([]string, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var ids []string
	for id, c := range r.s.couriers {
		if c.LockedAt != nil && c.LockedAt.Before(before) {
			unlock(c)
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)
	return ids, nil
}

// IncrementDeliveries bumps the completed delivery counter.
func (r *CourierStore) IncrementDeliveries(_ context.Context, courierID string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if c, ok := r.s.couriers[courierID]; ok {
		c.TotalDeliveries++
	}
	return nil
}

// RefreshRating averages the customer scores of the courier's deliveries.
func (r *CourierStore) RefreshRating(_ context.Context, courierID string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c, ok := r.s.couriers[courierID]
	if !ok {
		return nil
	}
	var sum, n int
	for _, d := range r.s.deliveries {
		if d.CourierID == courierID && d.CustomerRating != nil {
			sum += *d.CustomerRating
			n++
		}
	}
	if n == 0 {
		c.Rating = 0
		return nil
	}
	c.Rating = float64(sum) / float64(n)
	return nil
}

// DeliveryStore implements ports.DeliveryStore.
type DeliveryStore struct{ s *Store }

var _ ports.DeliveryStore = (*DeliveryStore)(nil)

func copyDelivery(d *domain.Delivery) *domain.Delivery {
	cp := *d
	if d.Proof != nil {
		p := *d.Proof
		cp.Proof = &p
	}
	if d.CustomerRating != nil {
		v := *d.CustomerRating
		cp.CustomerRating = &v
	}
	if d.CourierRating != nil {
		v := *d.CourierRating
		cp.CourierRating = &v
	}
	return &cp
}

// Create stores a pending delivery; a second active delivery for the customer conflicts.
func (r *DeliveryStore) Create(_ context.Context, d *domain.Delivery) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.deliveries[d.ID]; ok {
		return apperr.ErrConflict
	}
	for _, existing := range r.s.deliveries {
		if existing.CustomerID == d.CustomerID && existing.Status.IsActive() {
			return fmt.Errorf("%w: customer %s already has an active delivery", apperr.ErrConflict, d.CustomerID)
		}
	}
	r.s.deliveries[d.ID] = copyDelivery(d)
	return nil
}

// Get returns a copy of the delivery, or nil when unknown.
func (r *DeliveryStore) Get(_ context.Context, id string) (*domain.Delivery, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	d, ok := r.s.deliveries[id]
	if !ok {
		return nil, nil
	}
	return copyDelivery(d), nil
}

func (r *DeliveryStore) latestActive(match func(*domain.Delivery) bool) *domain.Delivery {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var best *domain.Delivery
	for _, d := range r.s.deliveries {
		if !d.Status.IsActive() || !match(d) {
			continue
		}
		if best == nil || d.Timestamps.CreatedAt.After(best.Timestamps.CreatedAt) {
			best = d
		}
	}
	if best == nil {
		return nil
	}
	return copyDelivery(best)
}

// ActiveByCustomer returns the customer's active delivery, if any.
func (r *DeliveryStore) ActiveByCustomer(_ context.Context, customerID string) (*domain.Delivery, error) {
	return r.latestActive(func(d *domain.Delivery) bool { return d.CustomerID == customerID }), nil
}

// ActiveByCourier returns the courier's active delivery, if any.
func (r *DeliveryStore) ActiveByCourier(_ context.Context, courierID string) (*domain.Delivery, error) {
	return r.latestActive(func(d *domain.Delivery) bool { return d.CourierID != "" && d.CourierID == courierID }), nil
}

// ActiveByMerchant returns the merchant's most recent active delivery, if any.
func (r *DeliveryStore) ActiveByMerchant(_ context.Context, merchantRef string) (*domain.Delivery, error) {
	return r.latestActive(func(d *domain.Delivery) bool { return d.MerchantRef == merchantRef }), nil
}

// ListByStatus returns the oldest deliveries in status.
func (r *DeliveryStore) ListByStatus(_ context.Context, status domain.DeliveryStatus, n int) ([]domain.Delivery, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []domain.Delivery
	for _, d := range r.s.deliveries {
		if d.Status == status {
			out = append(out, *copyDelivery(d))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Timestamps.CreatedAt.Before(out[j].Timestamps.CreatedAt) })
	if n > 0 && len(out) > n {
		out = out[:n]
	}
	return out, nil
}

// Transition applies t only while the delivery is still in t.From.
func (r *DeliveryStore) Transition(_ context.Context, t domain.Transition) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	d, ok := r.s.deliveries[t.DeliveryID]
	if !ok || d.Status != t.From {
		return false, nil
	}
	d.Status = t.To
	d.Timestamps.Set(t.To, t.At)
	if t.CourierID != "" {
		d.CourierID = t.CourierID
	}
	if t.CancelReason != "" {
		d.CancelReason = t.CancelReason
	}
	if t.Proof != nil {
		p := *t.Proof
		d.Proof = &p
	}
	return true, nil
}

// Rate stores the score given by role on a delivered delivery, once.
func (r *DeliveryStore) Rate(_ context.Context, id string, by domain.Role, score int) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	d, ok := r.s.deliveries[id]
	if !ok || d.Status != domain.DeliveryDelivered {
		return false, nil
	}
	v := score
	switch by {
	case domain.RoleCustomer:
		if d.CustomerRating != nil {
			return false, nil
		}
		d.CustomerRating = &v
	case domain.RoleCourier:
		if d.CourierRating != nil {
			return false, nil
		}
		d.CourierRating = &v
	default:
		return false, fmt.Errorf("%w: role %s cannot rate", apperr.ErrForbidden, by)
	}
	return true, nil
}

// CustomerDirectory implements ports.CustomerDirectory.
type CustomerDirectory struct{ s *Store }

var _ ports.CustomerDirectory = (*CustomerDirectory)(nil)

// Exists reports whether the customer was added.
func (r *CustomerDirectory) Exists(_ context.Context, customerID string) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	_, ok := r.s.customers[customerID]
	return ok, nil
}

// Upsert registers a customer id.
func (r *CustomerDirectory) Upsert(_ context.Context, customerID string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.customers[customerID] = struct{}{}
	return nil
}
