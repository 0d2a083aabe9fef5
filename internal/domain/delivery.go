package domain

import "time"

// FareQuote is the price quoted to the customer when the delivery is created.
// It is never recomputed afterwards.
type FareQuote struct {
	BaseFee         float64 `json:"base_fee"`
	DistanceKm      float64 `json:"distance_km"`
	DistanceCost    float64 `json:"distance_cost"`
	SurgeMultiplier float64 `json:"surge_multiplier"`
	Total           float64 `json:"total"`
	Currency        string  `json:"currency"`
}

// DeliveryRequest is the customer-supplied part of a new delivery.
type DeliveryRequest struct {
	MerchantRef  string
	Pickup       Point
	Dropoff      Point
	VehicleClass VehicleClass
	ItemCount    int
	Instructions string
}

// Proof is the evidence a courier records when completing a delivery.
type Proof struct {
	RecipientName string `json:"recipient_name"`
	Notes         string `json:"notes,omitempty"`
	PhotoURL      string `json:"photo_url,omitempty"`
	Signature     string `json:"signature,omitempty"`
}

// Timestamps records when each lifecycle state was entered.
type Timestamps struct {
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
	AssignedAt   *time.Time `json:"assigned_at,omitempty"`
	AtMerchantAt *time.Time `json:"at_merchant_at,omitempty"`
	PickedUpAt   *time.Time `json:"picked_up_at,omitempty"`
	InTransitAt  *time.Time `json:"in_transit_at,omitempty"`
	ArrivedAt    *time.Time `json:"arrived_at,omitempty"`
	DeliveredAt  *time.Time `json:"delivered_at,omitempty"`
	CancelledAt  *time.Time `json:"cancelled_at,omitempty"`
}

// Set stores t as the entry time of status.
func (ts *Timestamps) Set(status DeliveryStatus, t time.Time) {
	v := t
	switch status {
	case DeliveryPending:
		ts.CreatedAt = t
	case DeliveryRiderAssigned:
		ts.AssignedAt = &v
	case DeliveryAtMerchant:
		ts.AtMerchantAt = &v
	case DeliveryPickedUp:
		ts.PickedUpAt = &v
	case DeliveryInTransit:
		ts.InTransitAt = &v
	case DeliveryArrived:
		ts.ArrivedAt = &v
	case DeliveryDelivered:
		ts.DeliveredAt = &v
	case DeliveryCancelled:
		ts.CancelledAt = &v
	}
	ts.UpdatedAt = t
}

// CancelReasonNoRiders is recorded when dispatch exhausts its attempts.
const CancelReasonNoRiders = "no_riders_available"

// Delivery is one customer's delivery request.
type Delivery struct {
	ID             string         `json:"id"`
	CustomerID     string         `json:"customer_id"`
	MerchantRef    string         `json:"merchant_ref"`
	Pickup         Point          `json:"pickup"`
	Dropoff        Point          `json:"dropoff"`
	VehicleClass   VehicleClass   `json:"vehicle_class"`
	ItemCount      int            `json:"item_count"`
	Instructions   string         `json:"instructions,omitempty"`
	Status         DeliveryStatus `json:"status"`
	CourierID      string         `json:"courier_id,omitempty"`
	Fare           FareQuote      `json:"fare"`
	Timestamps     Timestamps     `json:"timestamps"`
	CancelReason   string         `json:"cancel_reason,omitempty"`
	Proof          *Proof         `json:"proof,omitempty"`
	CustomerRating *int           `json:"customer_rating,omitempty"`
	CourierRating  *int           `json:"courier_rating,omitempty"`
}

// Transition is a conditional status change applied by a delivery store.
// It only takes effect while the stored status still equals From.
type Transition struct {
	DeliveryID   string
	From         DeliveryStatus
	To           DeliveryStatus
	At           time.Time
	CourierID    string
	CancelReason string
	Proof        *Proof
}

// Notification is a message for a customer, courier or merchant.
type Notification struct {
	TargetType Role           `json:"target_type"`
	TargetID   string         `json:"target_id"`
	Message    string         `json:"message"`
	Payload    map[string]any `json:"payload,omitempty"`
}
