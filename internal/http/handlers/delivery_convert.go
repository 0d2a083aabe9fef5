package handlers

import (
	"rider-dispatch/internal/domain"
	"rider-dispatch/internal/service/dispatch"
)

func deliveryRequestToModel(req deliveryRequestDTO) domain.DeliveryRequest {
	return domain.DeliveryRequest{
		MerchantRef:  req.MerchantRef,
		Pickup:       req.Pickup.toDomain(),
		Dropoff:      req.Dropoff.toDomain(),
		VehicleClass: domain.VehicleClass(req.VehicleClass),
		ItemCount:    req.ItemCount,
		Instructions: req.Instructions,
	}
}

func receiptToDTO(r dispatch.Receipt) receiptDTO {
	return receiptDTO{
		DeliveryID: r.DeliveryID,
		Status:     string(r.Status),
		Fare:       r.Fare,
	}
}

func completeRequestToProof(req completeRequest) domain.Proof {
	return domain.Proof{
		RecipientName: req.RecipientName,
		Notes:         req.Notes,
		PhotoURL:      req.PhotoURL,
		Signature:     req.Signature,
	}
}
