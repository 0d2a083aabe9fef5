package kafka

import (
	"strings"
	"time"

	"rider-dispatch/internal/domain"
	"rider-dispatch/internal/service/heartbeat"
)

// HeartbeatDTO is the wire form of a courier presence event.
type HeartbeatDTO struct {
	CourierID string    `json:"courier_id"`
	Kind      string    `json:"kind"`
	Lat       *float64  `json:"lat,omitempty"`
	Lng       *float64  `json:"lng,omitempty"`
	At        time.Time `json:"at"`
}

// ToDomain converts HeartbeatDTO to heartbeat.Event. The location is set
// only when both coordinates are present.
func ToDomain(dto HeartbeatDTO) heartbeat.Event {
	ev := heartbeat.Event{
		CourierID: strings.TrimSpace(dto.CourierID),
		Kind:      strings.TrimSpace(dto.Kind),
		At:        dto.At,
	}
	if dto.Lat != nil && dto.Lng != nil {
		ev.Location = &domain.Point{Lat: *dto.Lat, Lng: *dto.Lng}
	}
	return ev
}

// NotificationDTO is the wire form of a party notification.
type NotificationDTO struct {
	TargetType string         `json:"target_type"`
	TargetID   string         `json:"target_id"`
	Message    string         `json:"message"`
	Payload    map[string]any `json:"payload,omitempty"`
	SentAt     time.Time      `json:"sent_at"`
}

// LedgerDTO is the wire form of a completed delivery sent to the ledger.
type LedgerDTO struct {
	DeliveryID  string     `json:"delivery_id"`
	CourierID   string     `json:"courier_id"`
	CustomerID  string     `json:"customer_id"`
	MerchantRef string     `json:"merchant_ref,omitempty"`
	Total       float64    `json:"total"`
	Currency    string     `json:"currency"`
	DistanceKm  float64    `json:"distance_km"`
	DeliveredAt *time.Time `json:"delivered_at,omitempty"`
}

func toLedger(d domain.Delivery) LedgerDTO {
	return LedgerDTO{
		DeliveryID:  d.ID,
		CourierID:   d.CourierID,
		CustomerID:  d.CustomerID,
		MerchantRef: d.MerchantRef,
		Total:       d.Fare.Total,
		Currency:    d.Fare.Currency,
		DistanceKm:  d.Fare.DistanceKm,
		DeliveredAt: d.Timestamps.DeliveredAt,
	}
}
