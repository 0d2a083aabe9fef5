package handlers

import (
	"strings"

	"rider-dispatch/internal/domain"
)

func registerRequestToModel(req registerCourierRequest) domain.Courier {
	c := domain.Courier{
		ID:           strings.TrimSpace(req.ID),
		Name:         req.Name,
		Phone:        strings.TrimSpace(req.Phone),
		Status:       domain.CourierStatus(req.Status),
		VehicleClass: domain.VehicleClass(req.VehicleClass),
	}
	if req.Location != nil {
		c.Location = req.Location.toDomain()
	}
	return c
}

func heartbeatRequestToModel(courierID string, req heartbeatRequest) domain.Heartbeat {
	return domain.Heartbeat{
		CourierID: courierID,
		Status:    domain.CourierStatus(req.Status),
		Location:  req.Location.toDomain(),
	}
}

func courierToDTO(c domain.Courier) courierDTO {
	return courierDTO{
		ID:                c.ID,
		Name:              c.Name,
		Phone:             c.Phone,
		Status:            string(c.Status),
		VehicleClass:      string(c.VehicleClass),
		Location:          pointToView(c.Location),
		LockedForDelivery: c.LockedForDelivery,
		Rating:            c.Rating,
		TotalDeliveries:   c.TotalDeliveries,
		LastSeenAt:        c.LastSeenAt,
	}
}
