package domain_test

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"rider-dispatch/internal/apperr"
	"rider-dispatch/internal/domain"
)

func TestDistanceKm(t *testing.T) {
	t.Parallel()

	jhb := domain.Point{Lat: -26.2041, Lng: 28.0473}
	pta := domain.Point{Lat: -25.7479, Lng: 28.2293}
	cpt := domain.Point{Lat: -33.9249, Lng: 18.4241}

	require.InDelta(t, 53.89, domain.DistanceKm(jhb, pta), 0.01)
	require.InDelta(t, 1261.58, domain.DistanceKm(cpt, jhb), 0.01)
	require.InDelta(t, 111.19, domain.DistanceKm(domain.Point{}, domain.Point{Lng: 1}), 0.01)
	require.Zero(t, domain.DistanceKm(jhb, jhb))
	require.InDelta(t, domain.DistanceKm(jhb, pta), domain.DistanceKm(pta, jhb), 1e-9)
}

func TestPoint_Validate(t *testing.T) {
	t.Parallel()

	require.NoError(t, domain.Point{Lat: -90, Lng: 180}.Validate())
	require.Error(t, domain.Point{Lat: 90.1}.Validate())
	require.Error(t, domain.Point{Lng: -180.5}.Validate())
	require.Error(t, domain.Point{Lat: math.NaN()}.Validate())
	require.Error(t, domain.Point{Lng: math.Inf(1)}.Validate())
}

func TestStatuses(t *testing.T) {
	t.Parallel()

	require.True(t, domain.CourierAvailable.Valid())
	require.False(t, domain.CourierStatus("paused").Valid())
	require.True(t, domain.VehicleOnFoot.Valid())
	require.False(t, domain.VehicleClass("scooter").Valid())

	for _, s := range domain.ActiveStatuses {
		require.True(t, s.IsActive(), s)
		require.False(t, s.IsTerminal(), s)
	}
	require.True(t, domain.DeliveryDelivered.IsTerminal())
	require.True(t, domain.DeliveryCancelled.IsTerminal())
	require.False(t, domain.DeliveryStatus("lost").Valid())
}

func TestCheckTransition(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		from domain.DeliveryStatus
		to   domain.DeliveryStatus
		role domain.Role
		want error
	}{
		{"system assigns", domain.DeliveryPending, domain.DeliveryRiderAssigned, domain.RoleSystem, nil},
		{"courier accepts", domain.DeliveryPending, domain.DeliveryRiderAssigned, domain.RoleCourier, nil},
		{"courier completes", domain.DeliveryArrived, domain.DeliveryDelivered, domain.RoleCourier, nil},
		{"customer cancels at merchant", domain.DeliveryAtMerchant, domain.DeliveryCancelled, domain.RoleCustomer, nil},
		{"skip to delivered", domain.DeliveryPending, domain.DeliveryDelivered, domain.RoleCourier, apperr.ErrConflict},
		{"cancel after pickup", domain.DeliveryPickedUp, domain.DeliveryCancelled, domain.RoleCustomer, apperr.ErrConflict},
		{"leave terminal", domain.DeliveryDelivered, domain.DeliveryArrived, domain.RoleCourier, apperr.ErrConflict},
		{"customer picks up", domain.DeliveryAtMerchant, domain.DeliveryPickedUp, domain.RoleCustomer, apperr.ErrForbidden},
		{"courier cancels", domain.DeliveryRiderAssigned, domain.DeliveryCancelled, domain.RoleCourier, apperr.ErrForbidden},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			err := domain.CheckTransition(tc.from, tc.to, tc.role)
			if tc.want == nil {
				require.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, tc.want)
		})
	}
}

func TestTransitionError_NamesStates(t *testing.T) {
	t.Parallel()

	err := domain.CheckTransition(domain.DeliveryPending, domain.DeliveryDelivered, domain.RoleCourier)
	var te *domain.TransitionError
	require.True(t, errors.As(err, &te))
	require.Equal(t, domain.DeliveryPending, te.Current)
	require.Equal(t, domain.DeliveryDelivered, te.Requested)
	require.Contains(t, err.Error(), "pending")
	require.Contains(t, err.Error(), "delivered")
}

func TestTimestamps_Set(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	var ts domain.Timestamps
	ts.Set(domain.DeliveryPending, now)
	ts.Set(domain.DeliveryPickedUp, now.Add(time.Minute))

	require.Equal(t, now, ts.CreatedAt)
	require.NotNil(t, ts.PickedUpAt)
	require.Equal(t, now.Add(time.Minute), *ts.PickedUpAt)
	require.Equal(t, now.Add(time.Minute), ts.UpdatedAt)
	require.Nil(t, ts.DeliveredAt)
}

func TestValidatePhone(t *testing.T) {
	t.Parallel()

	require.True(t, domain.ValidatePhone("+27821234567"))
	require.False(t, domain.ValidatePhone("call me"))
}
