/*
Package store defines the persistence contract behind the booking API.

PURPOSE:
  The engine itself only needs booking.StayReader. The HTTP layer also
  subscribes guests to availability alerts and seeds demo bookings, so it
  depends on the wider Store interface declared here.

IMPLEMENTATIONS:
  - store/sqlite/sqlite.go: SQLite, used in production
  - store/memory/memory.go: In-memory, for tests and throwaway runs

EXAMPLE:
  var s store.Store = memory.New(catalog)
  engine := booking.NewEngine(catalog, policy, s, clock)

SEE ALSO:
  - booking/engine.go: StayReader and AlertStore
*/
package store

import (
	"context"

	"github.com/robbyrobaz/campsite-crm/booking"
	"github.com/robbyrobaz/campsite-crm/generic"
)

// Booking is a reservation row. AreaRented is the free text the front desk
// typed; readers fold it onto an area key.
type Booking struct {
	ID          string
	BookingDate generic.TimePoint
	GuestName   string
	GuestType   string
	Nights      int
	AreaRented  string
	Revenue     generic.Money
	Status      string
	Notes       string
}

// Store is everything the API persists or reads.
type Store interface {
	booking.StayReader
	booking.AlertStore

	// SaveBooking inserts or replaces a booking.
	SaveBooking(ctx context.Context, b Booking) error

	// GetBooking returns a booking or an error matching generic.ErrNotFound.
	GetBooking(ctx context.Context, id string) (*Booking, error)

	// CountBookingsWithPrefix and DeleteBookingsWithPrefix address the demo
	// rows, which all share an id prefix.
	CountBookingsWithPrefix(ctx context.Context, prefix string) (int, error)
	DeleteBookingsWithPrefix(ctx context.Context, prefix string) (int64, error)

	SaveAlert(ctx context.Context, a booking.AvailabilityAlert) error

	Ping(ctx context.Context) error
	Close() error
}
