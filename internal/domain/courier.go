package domain

import (
	"regexp"
	"time"
)

// Courier is a registered delivery agent.
type Courier struct {
	ID                string        `json:"id"`
	Name              string        `json:"name"`
	Phone             string        `json:"phone"`
	Status            CourierStatus `json:"status"`
	VehicleClass      VehicleClass  `json:"vehicle_class"`
	Location          Point         `json:"location"`
	LockedForDelivery string        `json:"locked_for_delivery,omitempty"`
	LockedAt          *time.Time    `json:"locked_at,omitempty"`
	Rating            float64       `json:"rating"`
	TotalDeliveries   int64         `json:"total_deliveries"`
	LastSeenAt        *time.Time    `json:"last_seen_at,omitempty"`
}

// IsLocked reports whether the courier is reserved for a delivery.
func (c Courier) IsLocked() bool {
	return c.LockedForDelivery != ""
}

// Candidate is a courier returned by a proximity search.
type Candidate struct {
	CourierID  string
	DistanceKm float64
}

// Heartbeat is a courier's periodic status and location report.
type Heartbeat struct {
	CourierID string
	// Status is optional; empty means location only.
	Status   CourierStatus
	Location Point
	At       time.Time
}

var phoneRe = regexp.MustCompile(`^\+?[0-9]{7,15}$`)

// ValidatePhone reports whether phone looks like an E.164-ish number.
func ValidatePhone(phone string) bool {
	return phoneRe.MatchString(phone)
}
