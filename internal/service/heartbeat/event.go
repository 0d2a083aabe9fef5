package heartbeat

import (
	"time"

	"rider-dispatch/internal/domain"
)

// Event kinds understood by the Processor.
const (
	KindOnline    = "online"
	KindAvailable = "available"
	KindOffline   = "offline"
	KindBusy      = "busy"
	KindLocation  = "location"
)

// Event is a single courier presence report.
type Event struct {
	CourierID string
	Kind      string
	Location  *domain.Point
	At        time.Time
}
