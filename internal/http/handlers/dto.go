package handlers

import "time"

type pointDTO struct {
	Lat *float64 `json:"lat" validate:"required,latitude"`
	Lng *float64 `json:"lng" validate:"required,longitude"`
}

type registerCourierRequest struct {
	ID           string    `json:"id" validate:"omitempty,max=64"`
	Name         string    `json:"name" validate:"required,max=100"`
	Phone        string    `json:"phone" validate:"required"`
	Status       string    `json:"status" validate:"omitempty,oneof=available busy offline"`
	VehicleClass string    `json:"vehicle_class" validate:"required,oneof=car motorcycle bicycle on_foot"`
	Location     *pointDTO `json:"location" validate:"omitempty"`
}

type heartbeatRequest struct {
	Status   string   `json:"status" validate:"omitempty,oneof=available busy offline"`
	Location pointDTO `json:"location" validate:"required"`
}

type courierDTO struct {
	ID                string     `json:"id"`
	Name              string     `json:"name"`
	Phone             string     `json:"phone"`
	Status            string     `json:"status"`
	VehicleClass      string     `json:"vehicle_class"`
	Location          pointView  `json:"location"`
	LockedForDelivery string     `json:"locked_for_delivery,omitempty"`
	Rating            float64    `json:"rating"`
	TotalDeliveries   int64      `json:"total_deliveries"`
	LastSeenAt        *time.Time `json:"last_seen_at,omitempty"`
}

type pointView struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}
