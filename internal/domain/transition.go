package domain

import (
	"fmt"

	"rider-dispatch/internal/apperr"
)

// Role is the kind of party performing an action.
type Role string

// Actor roles.
const (
	RoleCustomer Role = "customer"
	RoleCourier  Role = "courier"
	RoleMerchant Role = "merchant"
	RoleSystem   Role = "system"
)

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	switch r {
	case RoleCustomer, RoleCourier, RoleMerchant, RoleSystem:
		return true
	}
	return false
}

// Actor identifies who performs an action.
type Actor struct {
	Role Role
	ID   string
}

// SystemActor is used by dispatch for automatic transitions.
var SystemActor = Actor{Role: RoleSystem, ID: "dispatch"}

type edge struct {
	from DeliveryStatus
	to   DeliveryStatus
}

// transitions maps each allowed edge to the roles permitted to take it.
var transitions = map[edge][]Role{
	{DeliveryPending, DeliveryRiderAssigned}:    {RoleSystem, RoleCourier},
	{DeliveryRiderAssigned, DeliveryAtMerchant}: {RoleCourier},
	{DeliveryAtMerchant, DeliveryPickedUp}:      {RoleCourier},
	{DeliveryPickedUp, DeliveryInTransit}:       {RoleCourier},
	{DeliveryInTransit, DeliveryArrived}:        {RoleCourier},
	{DeliveryArrived, DeliveryDelivered}:        {RoleCourier},

	{DeliveryPending, DeliveryCancelled}:       {RoleCustomer, RoleMerchant, RoleSystem},
	{DeliveryRiderAssigned, DeliveryCancelled}: {RoleCustomer, RoleMerchant, RoleSystem},
	{DeliveryAtMerchant, DeliveryCancelled}:    {RoleCustomer, RoleMerchant, RoleSystem},
}

// TransitionError reports a transition absent from the state table,
// or one that lost a race with a concurrent change.
type TransitionError struct {
	Current   DeliveryStatus
	Requested DeliveryStatus
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("invalid transition from %s to %s", e.Current, e.Requested)
}

// Unwrap lets callers match the error with errors.Is(err, apperr.ErrConflict).
func (e *TransitionError) Unwrap() error { return apperr.ErrConflict }

// CheckTransition validates the edge from -> to for role.
func CheckTransition(from, to DeliveryStatus, role Role) error {
	roles, ok := transitions[edge{from: from, to: to}]
	if !ok {
		return &TransitionError{Current: from, Requested: to}
	}
	for _, r := range roles {
		if r == role {
			return nil
		}
	}
	return fmt.Errorf("%w: role %s may not move delivery from %s to %s", apperr.ErrForbidden, role, from, to)
}
