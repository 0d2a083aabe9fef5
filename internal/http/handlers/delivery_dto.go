package handlers

import "rider-dispatch/internal/domain"

type deliveryRequestDTO struct {
	MerchantRef  string   `json:"merchant_ref" validate:"omitempty,max=64"`
	Pickup       pointDTO `json:"pickup" validate:"required"`
	Dropoff      pointDTO `json:"dropoff" validate:"required"`
	VehicleClass string   `json:"vehicle_class" validate:"omitempty,oneof=car motorcycle bicycle on_foot"`
	ItemCount    int      `json:"item_count" validate:"gte=0,lte=100"`
	Instructions string   `json:"instructions" validate:"max=500"`
}

type receiptDTO struct {
	DeliveryID string           `json:"delivery_id"`
	Status     string           `json:"status"`
	Fare       domain.FareQuote `json:"fare"`
}

type quoteDTO struct {
	Fare domain.FareQuote `json:"fare"`
}

type completeRequest struct {
	RecipientName string `json:"recipient_name" validate:"required,max=120"`
	Notes         string `json:"notes" validate:"max=500"`
	PhotoURL      string `json:"photo_url" validate:"omitempty,url"`
	Signature     string `json:"signature" validate:"max=4096"`
}

type cancelRequest struct {
	Reason string `json:"reason" validate:"max=200"`
}

type rateRequest struct {
	Score int `json:"score" validate:"required,min=1,max=5"`
}
