package fare

import (
	"fmt"
	"math"
	"time"

	"rider-dispatch/internal/apperr"
	"rider-dispatch/internal/domain"
)

// Window is a half-open local time-of-day range [Start, End). A window whose
// End is before its Start wraps midnight.
type Window struct {
	Start time.Duration
	End   time.Duration
}

func (w Window) contains(tod time.Duration) bool {
	if w.Start <= w.End {
		return tod >= w.Start && tod < w.End
	}
	return tod >= w.Start || tod < w.End
}

// Tariff holds the pricing constants.
type Tariff struct {
	Currency         string
	BaseFees         map[domain.VehicleClass]float64
	PerKmRate        float64
	LongDistanceKm   float64
	LongDistanceRate float64
	MinFee           float64
	MaxFee           float64
	SurgeMultiplier  float64
	PeakWindows      []Window
}

// Calculator prices deliveries. It has no state besides its tariff and is safe
// for concurrent use.
type Calculator struct {
	tariff Tariff
	loc    *time.Location
}

// NewCalculator creates a Calculator evaluating peak windows in loc.
func NewCalculator(t Tariff, loc *time.Location) (*Calculator, error) {
	if loc == nil {
		return nil, fmt.Errorf("fare: nil location")
	}
	for _, class := range domain.VehicleClasses() {
		if _, ok := t.BaseFees[class]; !ok {
			return nil, fmt.Errorf("fare: no base fee for %s", class)
		}
	}
	if t.MaxFee < t.MinFee {
		return nil, fmt.Errorf("fare: max fee %v below min fee %v", t.MaxFee, t.MinFee)
	}
	if t.SurgeMultiplier < 1 {
		t.SurgeMultiplier = 1
	}
	return &Calculator{tariff: t, loc: loc}, nil
}

// Quote prices a delivery from pickup to dropoff for class at now.
func (c *Calculator) Quote(pickup, dropoff domain.Point, class domain.VehicleClass, now time.Time) (domain.FareQuote, error) {
	if err := pickup.Validate(); err != nil {
		return domain.FareQuote{}, fmt.Errorf("%w: pickup: %v", apperr.ErrInvalid, err)
	}
	if err := dropoff.Validate(); err != nil {
		return domain.FareQuote{}, fmt.Errorf("%w: dropoff: %v", apperr.ErrInvalid, err)
	}
	base, ok := c.tariff.BaseFees[class]
	if !ok {
		return domain.FareQuote{}, fmt.Errorf("%w: unknown vehicle class %q", apperr.ErrInvalid, class)
	}

	distance := domain.DistanceKm(pickup, dropoff)
	distanceCost := c.distanceCost(distance)
	surge := c.Surge(now)

	total := (base + distanceCost) * surge
	total = math.Max(c.tariff.MinFee, math.Min(c.tariff.MaxFee, total))

	return domain.FareQuote{
		BaseFee:         round2(base),
		DistanceKm:      round2(distance),
		DistanceCost:    round2(distanceCost),
		SurgeMultiplier: surge,
		Total:           round2(total),
		Currency:        c.tariff.Currency,
	}, nil
}

// Surge returns the multiplier in effect at now, evaluated in the service's
// civil time zone.
func (c *Calculator) Surge(now time.Time) float64 {
	local := now.In(c.loc)
	tod := time.Duration(local.Hour())*time.Hour +
		time.Duration(local.Minute())*time.Minute +
		time.Duration(local.Second())*time.Second
	for _, w := range c.tariff.PeakWindows {
		if w.contains(tod) {
			return c.tariff.SurgeMultiplier
		}
	}
	return 1.0
}

func (c *Calculator) distanceCost(km float64) float64 {
	t := c.tariff
	if km <= t.LongDistanceKm {
		return km * t.PerKmRate
	}
	return t.LongDistanceKm*t.PerKmRate + (km-t.LongDistanceKm)*t.LongDistanceRate
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
