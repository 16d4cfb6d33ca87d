/*
alerts.go - Availability alert subscriptions

PURPOSE:
  A guest who could not find space leaves a contact and the stay they want.
  A periodic sweep re-checks each active alert and marks it matched once the
  preferred area opens up. Notifying the guest is left to staff.

CONTACT NORMALIZATION:
  Emails are lowercased. Anything else is tried as a phone number
  (default region US) and stored in E.164 form when valid; otherwise the
  trimmed text is kept as entered.

SEE ALSO:
  - engine.go: SweepAlerts
  - api/scheduler.go: Periodic sweep
  - store/sqlite/sqlite.go: Alert persistence
*/
package booking

import (
	"errors"
	"strings"
	"time"

	"github.com/nyaruka/phonenumbers"

	"github.com/robbyrobaz/campsite-crm/generic"
)

// ErrAlertIncomplete is returned when an alert lacks a guest name or contact.
var ErrAlertIncomplete = errors.New("guest_name and contact are required")

// DefaultPhoneRegion is the region assumed for phone numbers without a
// country code.
const DefaultPhoneRegion = "US"

type AlertStatus string

const (
	AlertActive  AlertStatus = "active"
	AlertMatched AlertStatus = "matched"
	AlertClosed  AlertStatus = "closed"
)

// ParseAlertStatus normalizes a stored alert status; unknown values are active.
func ParseAlertStatus(raw string) AlertStatus {
	switch s := AlertStatus(strings.ToLower(strings.TrimSpace(raw))); s {
	case AlertActive, AlertMatched, AlertClosed:
		return s
	}
	return AlertActive
}

// AvailabilityAlert is a guest's request to hear about openings.
type AvailabilityAlert struct {
	ID             string
	GuestName      string
	Contact        string
	PreferredArea  AreaKey
	RequestedStart generic.TimePoint
	Nights         int
	PartySize      int
	Status         AlertStatus
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// NewAvailabilityAlert validates and normalizes a new alert.
func NewAvailabilityAlert(id, guestName, contact string, area AreaKey, start generic.TimePoint, nights, partySize int, now time.Time) (AvailabilityAlert, error) {
	guestName = strings.TrimSpace(guestName)
	contact = NormalizeContact(contact)
	if guestName == "" || contact == "" {
		return AvailabilityAlert{}, ErrAlertIncomplete
	}
	if area == "" {
		area = AreaMixed
	}
	if nights < 1 {
		nights = 1
	}
	if partySize < 1 {
		partySize = 1
	}
	return AvailabilityAlert{
		ID:             id,
		GuestName:      guestName,
		Contact:        contact,
		PreferredArea:  area,
		RequestedStart: start,
		Nights:         nights,
		PartySize:      partySize,
		Status:         AlertActive,
		CreatedAt:      now,
		UpdatedAt:      now,
	}, nil
}

// NormalizeContact canonicalizes an email address or phone number.
func NormalizeContact(raw string) string {
	contact := strings.TrimSpace(raw)
	if contact == "" {
		return ""
	}
	if strings.Contains(contact, "@") {
		return strings.ToLower(contact)
	}
	num, err := phonenumbers.Parse(contact, DefaultPhoneRegion)
	if err != nil || !phonenumbers.IsValidNumber(num) {
		return contact
	}
	return phonenumbers.Format(num, phonenumbers.E164)
}

// Query returns the stay the alert is waiting for.
func (a AvailabilityAlert) Query() StayQuery {
	return StayQuery{
		Start:      a.RequestedStart,
		Nights:     a.Nights,
		PartySize:  a.PartySize,
		Preference: a.PreferredArea,
	}
}

// AlertMatches reports whether the alert's preferred area can take its stay.
func AlertMatches(catalog *Catalog, stays []StayRecord, a AvailabilityAlert) bool {
	for _, row := range BuildSnapshot(catalog, stays, a.Query()) {
		if row.AreaKey == a.PreferredArea {
			return row.Available
		}
	}
	return false
}
