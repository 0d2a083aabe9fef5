package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Tariff is the fare table. It can be overridden from a file.
type Tariff struct {
	Currency         string             `mapstructure:"currency"`
	BaseFees         map[string]float64 `mapstructure:"base_fees"`
	PerKmRate        float64            `mapstructure:"per_km_rate"`
	LongDistanceKm   float64            `mapstructure:"long_distance_km"`
	LongDistanceRate float64            `mapstructure:"long_distance_rate"`
	MinFee           float64            `mapstructure:"min_fee"`
	MaxFee           float64            `mapstructure:"max_fee"`
	SurgeMultiplier  float64            `mapstructure:"surge_multiplier"`
	PeakWindows      []PeakWindow       `mapstructure:"peak_windows"`
}

// PeakWindow is a local time-of-day range "HH:MM"-"HH:MM", end exclusive.
type PeakWindow struct {
	Start string `mapstructure:"start"`
	End   string `mapstructure:"end"`
}

// DefaultTariff returns the built-in ZAR tariff.
func DefaultTariff() Tariff {
	return Tariff{
		Currency: "ZAR",
		BaseFees: map[string]float64{
			"car":        30,
			"motorcycle": 20,
			"bicycle":    15,
			"on_foot":    12,
		},
		PerKmRate:        5,
		LongDistanceKm:   15,
		LongDistanceRate: 7,
		MinFee:           15,
		MaxFee:           200,
		SurgeMultiplier:  1.3,
		PeakWindows: []PeakWindow{
			{Start: "07:00", End: "09:00"},
			{Start: "17:00", End: "20:00"},
		},
	}
}

// LoadTariff reads a tariff file on top of the defaults. An empty path
// returns the defaults.
func LoadTariff(path string) (Tariff, error) {
	t := DefaultTariff()
	if path == "" {
		return t, nil
	}

	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return Tariff{}, fmt.Errorf("read tariff %s: %w", path, err)
	}
	if err := v.Unmarshal(&t); err != nil {
		return Tariff{}, fmt.Errorf("decode tariff %s: %w", path, err)
	}
	if err := t.Validate(); err != nil {
		return Tariff{}, fmt.Errorf("tariff %s: %w", path, err)
	}
	return t, nil
}

// Validate checks tariff consistency.
func (t Tariff) Validate() error {
	if t.Currency == "" {
		return fmt.Errorf("currency is empty")
	}
	if len(t.BaseFees) == 0 {
		return fmt.Errorf("base fees are empty")
	}
	for class, fee := range t.BaseFees {
		if fee < 0 {
			return fmt.Errorf("negative base fee for %s", class)
		}
	}
	if t.PerKmRate < 0 || t.LongDistanceRate < 0 || t.LongDistanceKm < 0 {
		return fmt.Errorf("rates and threshold must not be negative")
	}
	if t.MinFee < 0 || t.MaxFee < t.MinFee {
		return fmt.Errorf("invalid fee bounds [%v, %v]", t.MinFee, t.MaxFee)
	}
	if t.SurgeMultiplier < 1 {
		return fmt.Errorf("surge multiplier %v below 1", t.SurgeMultiplier)
	}
	for _, w := range t.PeakWindows {
		if _, err := ParseClock(w.Start); err != nil {
			return err
		}
		if _, err := ParseClock(w.End); err != nil {
			return err
		}
	}
	return nil
}

// ParseClock parses "HH:MM" into an offset from midnight.
func ParseClock(s string) (time.Duration, error) {
	t, err := time.Parse("15:04", s)
	if err != nil {
		return 0, fmt.Errorf("invalid time of day %q: %w", s, err)
	}
	return time.Duration(t.Hour())*time.Hour + time.Duration(t.Minute())*time.Minute, nil
}
