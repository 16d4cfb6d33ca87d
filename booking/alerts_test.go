package booking_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robbyrobaz/campsite-crm/booking"
)

func TestNormalizeContact(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"  Guest@Example.COM ", "guest@example.com"},
		{"(650) 253-0000", "+16502530000"},
		{"+1 650-253-0000", "+16502530000"},
		{"call the office", "call the office"},
		{"   ", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, booking.NormalizeContact(tt.in), tt.in)
	}
}

func TestNewAvailabilityAlert_Validates(t *testing.T) {
	now := time.Date(2024, time.May, 20, 9, 0, 0, 0, time.UTC)

	_, err := booking.NewAvailabilityAlert("a1", " ", "guest@example.com", booking.AreaCabin, june(10), 2, 2, now)
	assert.ErrorIs(t, err, booking.ErrAlertIncomplete)

	_, err = booking.NewAvailabilityAlert("a1", "Pat", "", booking.AreaCabin, june(10), 2, 2, now)
	assert.ErrorIs(t, err, booking.ErrAlertIncomplete)

	alert, err := booking.NewAvailabilityAlert("a1", " Pat ", "PAT@EXAMPLE.COM", "", june(10), 0, -1, now)
	require.NoError(t, err)
	assert.Equal(t, "Pat", alert.GuestName)
	assert.Equal(t, "pat@example.com", alert.Contact)
	assert.Equal(t, booking.AreaMixed, alert.PreferredArea)
	assert.Equal(t, 1, alert.Nights)
	assert.Equal(t, 1, alert.PartySize)
	assert.Equal(t, booking.AlertActive, alert.Status)
	assert.Equal(t, now, alert.CreatedAt)
}

func TestAlertMatches_PreferredAreaOnly(t *testing.T) {
	now := time.Date(2024, time.May, 20, 9, 0, 0, 0, time.UTC)
	alert, err := booking.NewAvailabilityAlert("a1", "Pat", "pat@example.com", booking.AreaKitchen, june(10), 2, 6, now)
	require.NoError(t, err)

	catalog := booking.DefaultCatalog()
	full := []booking.StayRecord{stay(booking.AreaKitchen, june(9), 3)}

	assert.False(t, booking.AlertMatches(catalog, full, alert), "kitchen is taken even though other areas are open")
	assert.True(t, booking.AlertMatches(catalog, nil, alert))
}

func TestParseAlertStatus(t *testing.T) {
	assert.Equal(t, booking.AlertMatched, booking.ParseAlertStatus(" Matched "))
	assert.Equal(t, booking.AlertClosed, booking.ParseAlertStatus("closed"))
	assert.Equal(t, booking.AlertActive, booking.ParseAlertStatus("whatever"))
}
