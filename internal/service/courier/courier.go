package courier

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"rider-dispatch/internal/apperr"
	"rider-dispatch/internal/domain"
	"rider-dispatch/internal/logx"
)

// Service coordinates courier registration and presence reporting.
type Service struct {
	repo             courierRepository
	operationTimeout time.Duration
	logger           logx.Logger
	now              func() time.Time
	newID            func() string
}

// NewService creates and configures a courier Service.
func NewService(r courierRepository, timeout time.Duration, logger logx.Logger) *Service {
	if timeout <= 0 {
		timeout = 3 * time.Second
	}
	if logger == nil {
		logger = logx.Nop()
	}
	return &Service{
		repo:             r,
		operationTimeout: timeout,
		logger:           logger,
		now:              func() time.Time { return time.Now().UTC() },
		newID:            uuid.NewString,
	}
}

func (s *Service) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, s.operationTimeout)
}

// validateCreate validates a courier for registration and fills defaults.
func validateCreate(c *domain.Courier) error {
	if c == nil {
		return fmt.Errorf("%w: empty courier", apperr.ErrInvalid)
	}
	c.Name = strings.TrimSpace(c.Name)
	if c.Name == "" {
		return fmt.Errorf("%w: name is required", apperr.ErrInvalid)
	}
	if !domain.ValidatePhone(c.Phone) {
		return fmt.Errorf("%w: phone %q", apperr.ErrInvalid, c.Phone)
	}
	if c.Status == "" {
		c.Status = domain.CourierOffline
	}
	if !c.Status.Valid() {
		return fmt.Errorf("%w: status %q", apperr.ErrInvalid, c.Status)
	}
	if !c.VehicleClass.Valid() {
		return fmt.Errorf("%w: vehicle class %q", apperr.ErrInvalid, c.VehicleClass)
	}
	if err := c.Location.Validate(); err != nil {
		return fmt.Errorf("%w: location: %v", apperr.ErrInvalid, err)
	}
	return nil
}

func validateHeartbeat(hb *domain.Heartbeat) error {
	hb.CourierID = strings.TrimSpace(hb.CourierID)
	if hb.CourierID == "" {
		return fmt.Errorf("%w: courier id is required", apperr.ErrInvalid)
	}
	if hb.Status != "" && !hb.Status.Valid() {
		return fmt.Errorf("%w: status %q", apperr.ErrInvalid, hb.Status)
	}
	if err := hb.Location.Validate(); err != nil {
		return fmt.Errorf("%w: location: %v", apperr.ErrInvalid, err)
	}
	return nil
}

// Register persists a new courier. A missing ID is generated and a missing
// status defaults to offline.
func (s *Service) Register(ctx context.Context, c domain.Courier) (*domain.Courier, error) {
	if err := validateCreate(&c); err != nil {
		return nil, err
	}
	if c.ID == "" {
		c.ID = s.newID()
	}
	c.LockedForDelivery = ""
	c.LockedAt = nil
	c.Rating = 0
	c.TotalDeliveries = 0
	now := s.now()
	c.LastSeenAt = &now

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	if err := s.repo.Create(ctx, &c); err != nil {
		return nil, err
	}
	s.logger.Info("courier registered",
		logx.String("courier_id", c.ID),
		logx.String("vehicle_class", string(c.VehicleClass)),
		logx.String("status", string(c.Status)),
	)
	return &c, nil
}

// Get retrieves a courier by its ID.
func (s *Service) Get(ctx context.Context, id string) (*domain.Courier, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, fmt.Errorf("%w: courier id is required", apperr.ErrInvalid)
	}
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	c, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, fmt.Errorf("%w: courier %s", apperr.ErrNotFound, id)
	}
	return c, nil
}

// Heartbeat records a courier's location and, when the courier holds no
// delivery lock, its reported status. It returns the courier as stored.
func (s *Service) Heartbeat(ctx context.Context, hb domain.Heartbeat) (*domain.Courier, error) {
	if err := validateHeartbeat(&hb); err != nil {
		return nil, err
	}
	if hb.At.IsZero() {
		hb.At = s.now()
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	ok, err := s.repo.ApplyHeartbeat(ctx, hb)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("%w: courier %s", apperr.ErrNotFound, hb.CourierID)
	}
	c, err := s.repo.Get(ctx, hb.CourierID)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, fmt.Errorf("%w: courier %s", apperr.ErrNotFound, hb.CourierID)
	}
	if hb.Status != "" && c.Status != hb.Status {
		s.logger.Debug("heartbeat status ignored while locked",
			logx.String("courier_id", c.ID),
			logx.String("reported", string(hb.Status)),
			logx.String("delivery_id", c.LockedForDelivery),
		)
	}
	return c, nil
}
