package handlers

import (
	"context"

	"rider-dispatch/internal/domain"
	"rider-dispatch/internal/service/dispatch"
)

type courierUsecase interface {
	Register(ctx context.Context, c domain.Courier) (*domain.Courier, error)
	Get(ctx context.Context, id string) (*domain.Courier, error)
	Heartbeat(ctx context.Context, hb domain.Heartbeat) (*domain.Courier, error)
}

type dispatcher interface {
	Quote(req domain.DeliveryRequest) (domain.FareQuote, error)
	RequestDelivery(ctx context.Context, customerID string, req domain.DeliveryRequest) (dispatch.Receipt, error)
}

type deliveryUsecase interface {
	Get(ctx context.Context, actor domain.Actor, id string) (*domain.Delivery, error)
	Active(ctx context.Context, partyID string) (*domain.Delivery, error)
	Accept(ctx context.Context, actor domain.Actor, id string) (*domain.Delivery, error)
	ArriveAtMerchant(ctx context.Context, actor domain.Actor, id string) (*domain.Delivery, error)
	MarkPickedUp(ctx context.Context, actor domain.Actor, id string) (*domain.Delivery, error)
	StartTransit(ctx context.Context, actor domain.Actor, id string) (*domain.Delivery, error)
	MarkArrived(ctx context.Context, actor domain.Actor, id string) (*domain.Delivery, error)
	Complete(ctx context.Context, actor domain.Actor, id string, proof domain.Proof) (*domain.Delivery, error)
	Cancel(ctx context.Context, actor domain.Actor, id, reason string) (*domain.Delivery, error)
	Rate(ctx context.Context, actor domain.Actor, id string, score int) (*domain.Delivery, error)
}
