// Package memory provides an in-memory store.Store.
package memory

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/robbyrobaz/campsite-crm/booking"
	"github.com/robbyrobaz/campsite-crm/generic"
	"github.com/robbyrobaz/campsite-crm/store"
)

// =============================================================================
// MEMORY STORE - In-memory implementation (for testing/dev)
// =============================================================================

var _ store.Store = (*Memory)(nil)

type Memory struct {
	mu       sync.RWMutex
	catalog  *booking.Catalog
	bookings map[string]store.Booking
	alerts   map[string]booking.AvailabilityAlert
	failWith error
}

// New creates an empty store. A nil catalog uses the default catalog.
func New(catalog *booking.Catalog) *Memory {
	if catalog == nil {
		catalog = booking.DefaultCatalog()
	}
	return &Memory{
		catalog:  catalog,
		bookings: make(map[string]store.Booking),
		alerts:   make(map[string]booking.AvailabilityAlert),
	}
}

// FailWith makes every subsequent read and write fail with err. Pass nil to
// recover.
func (m *Memory) FailWith(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failWith = err
}

// =============================================================================
// BOOKINGS
// =============================================================================

func (m *Memory) SaveBooking(_ context.Context, b store.Booking) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failWith != nil {
		return m.failWith
	}
	m.bookings[b.ID] = b
	return nil
}

func (m *Memory) GetBooking(_ context.Context, id string) (*store.Booking, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.failWith != nil {
		return nil, m.failWith
	}
	b, ok := m.bookings[id]
	if !ok {
		return nil, fmt.Errorf("booking %s: %w", id, generic.ErrNotFound)
	}
	return &b, nil
}

// ListStaysOverlapping returns stays sharing a night with window, ordered by
// arrival date then id.
func (m *Memory) ListStaysOverlapping(_ context.Context, window generic.Interval) ([]booking.StayRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.failWith != nil {
		return nil, m.failWith
	}

	var stays []booking.StayRecord
	for _, b := range m.bookings {
		rec := booking.NewStayRecord(m.catalog, b.ID, b.AreaRented, b.BookingDate, b.Nights, b.Status)
		if rec.Start.IsZero() || !rec.Interval().Overlaps(window) {
			continue
		}
		stays = append(stays, rec)
	}
	sort.Slice(stays, func(i, j int) bool {
		if !stays[i].Start.Equal(stays[j].Start) {
			return stays[i].Start.Before(stays[j].Start)
		}
		return stays[i].ID < stays[j].ID
	})
	return stays, nil
}

func (m *Memory) CountBookingsWithPrefix(_ context.Context, prefix string) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.failWith != nil {
		return 0, m.failWith
	}
	n := 0
	for id := range m.bookings {
		if strings.HasPrefix(id, prefix) {
			n++
		}
	}
	return n, nil
}

func (m *Memory) DeleteBookingsWithPrefix(_ context.Context, prefix string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failWith != nil {
		return 0, m.failWith
	}
	var n int64
	for id := range m.bookings {
		if strings.HasPrefix(id, prefix) {
			delete(m.bookings, id)
			n++
		}
	}
	return n, nil
}

// =============================================================================
// ALERTS
// =============================================================================

func (m *Memory) SaveAlert(_ context.Context, a booking.AvailabilityAlert) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failWith != nil {
		return m.failWith
	}
	m.alerts[a.ID] = a
	return nil
}

// ListAlerts returns alerts with status, oldest first. Empty status lists all.
func (m *Memory) ListAlerts(_ context.Context, status booking.AlertStatus) ([]booking.AvailabilityAlert, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.failWith != nil {
		return nil, m.failWith
	}

	out := []booking.AvailabilityAlert{}
	for _, a := range m.alerts {
		if status == "" || a.Status == status {
			out = append(out, a)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (m *Memory) UpdateAlertStatus(_ context.Context, id string, status booking.AlertStatus, at time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failWith != nil {
		return m.failWith
	}
	a, ok := m.alerts[id]
	if !ok {
		return fmt.Errorf("alert %s: %w", id, generic.ErrNotFound)
	}
	a.Status = status
	a.UpdatedAt = at
	m.alerts[id] = a
	return nil
}

// =============================================================================
// LIFECYCLE
// =============================================================================

func (m *Memory) Ping(context.Context) error {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.failWith
}

func (m *Memory) Close() error { return nil }
