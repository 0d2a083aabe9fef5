package delivery

import "rider-dispatch/internal/domain"

// Notification texts.
const (
	MsgCourierOffer     = "New delivery request nearby!"
	MsgRiderAssigned    = "A rider has been assigned to your delivery."
	MsgNoRiders         = "No riders available. Please try again."
	MsgMerchantAssigned = "A rider is on the way to collect the order."
	MsgAtMerchant       = "Your rider has arrived at the merchant."
	MsgMerchantArrival  = "The rider has arrived to collect the order."
	MsgPickedUp         = "Your order has been picked up."
	MsgInTransit        = "Your order is on the way."
	MsgArrived          = "Your rider has arrived at the drop-off point."
	MsgDelivered        = "Your order has been delivered."
	MsgMerchantDone     = "The order was delivered."
	MsgCancelled        = "The delivery was cancelled."
)

// notificationsFor lists who hears about d entering its current status.
// The actor never notifies itself.
func notificationsFor(d domain.Delivery, actor domain.Actor) []domain.Notification {
	var out []domain.Notification
	add := func(role domain.Role, id, msg string) {
		if id == "" || (actor.Role == role && actor.ID == id) {
			return
		}
		out = append(out, domain.Notification{
			TargetType: role,
			TargetID:   id,
			Message:    msg,
			Payload: map[string]any{
				"delivery_id": d.ID,
				"status":      string(d.Status),
			},
		})
	}

	switch d.Status {
	case domain.DeliveryRiderAssigned:
		add(domain.RoleCourier, d.CourierID, MsgCourierOffer)
		add(domain.RoleCustomer, d.CustomerID, MsgRiderAssigned)
		add(domain.RoleMerchant, d.MerchantRef, MsgMerchantAssigned)
	case domain.DeliveryAtMerchant:
		add(domain.RoleCustomer, d.CustomerID, MsgAtMerchant)
		add(domain.RoleMerchant, d.MerchantRef, MsgMerchantArrival)
	case domain.DeliveryPickedUp:
		add(domain.RoleCustomer, d.CustomerID, MsgPickedUp)
	case domain.DeliveryInTransit:
		add(domain.RoleCustomer, d.CustomerID, MsgInTransit)
	case domain.DeliveryArrived:
		add(domain.RoleCustomer, d.CustomerID, MsgArrived)
	case domain.DeliveryDelivered:
		add(domain.RoleCustomer, d.CustomerID, MsgDelivered)
		add(domain.RoleMerchant, d.MerchantRef, MsgMerchantDone)
	case domain.DeliveryCancelled:
		if d.CancelReason == domain.CancelReasonNoRiders {
			add(domain.RoleCustomer, d.CustomerID, MsgNoRiders)
			break
		}
		add(domain.RoleCustomer, d.CustomerID, MsgCancelled)
		add(domain.RoleCourier, d.CourierID, MsgCancelled)
		add(domain.RoleMerchant, d.MerchantRef, MsgCancelled)
	}
	return out
}
