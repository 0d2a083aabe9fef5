package domain

// CourierStatus is the availability status of a courier.
type CourierStatus string

// Courier statuses.
const (
	CourierAvailable CourierStatus = "available"
	CourierBusy      CourierStatus = "busy"
	CourierOffline   CourierStatus = "offline"
)

var allowedCourierStatuses = [...]CourierStatus{
	CourierAvailable,
	CourierBusy,
	CourierOffline,
}

// Valid reports whether s is a known courier status.
func (s CourierStatus) Valid() bool {
	for _, v := range allowedCourierStatuses {
		if s == v {
			return true
		}
	}
	return false
}

// VehicleClass is the kind of vehicle a courier rides and a delivery requests.
type VehicleClass string

// Vehicle classes, most expensive first.
const (
	VehicleCar        VehicleClass = "car"
	VehicleMotorcycle VehicleClass = "motorcycle"
	VehicleBicycle    VehicleClass = "bicycle"
	VehicleOnFoot     VehicleClass = "on_foot"
)

var allowedVehicleClasses = [...]VehicleClass{
	VehicleCar,
	VehicleMotorcycle,
	VehicleBicycle,
	VehicleOnFoot,
}

// Valid reports whether v is a known vehicle class.
func (v VehicleClass) Valid() bool {
	for _, c := range allowedVehicleClasses {
		if v == c {
			return true
		}
	}
	return false
}

// VehicleClasses returns all known vehicle classes.
func VehicleClasses() []VehicleClass {
	out := make([]VehicleClass, len(allowedVehicleClasses))
	copy(out, allowedVehicleClasses[:])
	return out
}

// DeliveryStatus is a state of the delivery lifecycle.
type DeliveryStatus string

// Delivery lifecycle states.
const (
	DeliveryPending       DeliveryStatus = "pending"
	DeliveryRiderAssigned DeliveryStatus = "rider_assigned"
	DeliveryAtMerchant    DeliveryStatus = "at_merchant"
	DeliveryPickedUp      DeliveryStatus = "picked_up"
	DeliveryInTransit     DeliveryStatus = "in_transit"
	DeliveryArrived       DeliveryStatus = "arrived"
	DeliveryDelivered     DeliveryStatus = "delivered"
	DeliveryCancelled     DeliveryStatus = "cancelled"
)

// ActiveStatuses lists every non-terminal delivery status.
var ActiveStatuses = []DeliveryStatus{
	DeliveryPending,
	DeliveryRiderAssigned,
	DeliveryAtMerchant,
	DeliveryPickedUp,
	DeliveryInTransit,
	DeliveryArrived,
}

// Valid reports whether s is a known delivery status.
func (s DeliveryStatus) Valid() bool {
	return s.IsActive() || s.IsTerminal()
}

// IsActive reports whether s has not reached a terminal state.
func (s DeliveryStatus) IsActive() bool {
	for _, a := range ActiveStatuses {
		if s == a {
			return true
		}
	}
	return false
}

// IsTerminal reports whether s is delivered or cancelled.
func (s DeliveryStatus) IsTerminal() bool {
	return s == DeliveryDelivered || s == DeliveryCancelled
}
