/*
Package sqlite provides the SQLite-backed booking store.

PURPOSE:
  Holds the bookings the engine reads occupancy from, plus the availability
  alerts guests leave when nothing fits. The engine only ever READS bookings;
  writes here come from demo seeding and alert subscriptions.

INTERFACES IMPLEMENTED:
  store.Store:         Everything the API persists
  booking.StayReader:  Overlap query over existing bookings
  booking.AlertStore:  Alert listing and status updates for the sweep

KEY TABLES:
  bookings:            One row per reservation (date, nights, area, status)
  availability_alerts: Guest requests to hear about openings

OVERLAP QUERY:
  A stay [booking_date, booking_date + nights) overlaps the window
  [start, end) iff booking_date < end AND booking_date + nights > start.
  Rows whose booking_date isn't YYYY-MM-DD make date() return NULL and drop
  out of the result.

CONCURRENCY:
  Uses sync.RWMutex around statements. An in-memory database is pinned to a
  single connection so every statement sees the same data.

USAGE:
  store, err := sqlite.New("./data/campsite.db", booking.DefaultCatalog())
  if err != nil {
      log.Fatal().Err(err).Msg("open store")
  }
  defer store.Close()

  engine := booking.NewEngine(catalog, policy, store, clock)

MIGRATION:
  Schema is auto-migrated on New().

SEE ALSO:
  - booking/engine.go: StayReader and AlertStore
  - store/memory/memory.go: In-memory implementation for testing
*/
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/robbyrobaz/campsite-crm/booking"
	"github.com/robbyrobaz/campsite-crm/generic"
	"github.com/robbyrobaz/campsite-crm/store"
)

var _ store.Store = (*Store)(nil)

// Store implements the booking store using SQLite.
type Store struct {
	db      *sql.DB
	mu      sync.RWMutex
	catalog *booking.Catalog
}

// New creates a new SQLite store with the given database path.
// Use ":memory:" for an in-memory database. The catalog folds free-text area
// names onto area keys; nil uses the default catalog.
func New(dbPath string, catalog *booking.Catalog) (*Store, error) {
	if catalog == nil {
		catalog = booking.DefaultCatalog()
	}

	dsn := dbPath + "?_foreign_keys=on&_journal_mode=WAL"
	if dbPath == ":memory:" {
		dsn = dbPath
	}
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if dbPath == ":memory:" {
		db.SetMaxOpenConns(1)
	}

	s := &Store{db: db, catalog: catalog}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Ping checks the database is reachable.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// migrate creates the database schema.
func (s *Store) migrate() error {
	schema := `
	-- Bookings
	CREATE TABLE IF NOT EXISTS bookings (
		id TEXT PRIMARY KEY,
		booking_date TEXT NOT NULL,
		guest_name TEXT NOT NULL,
		guest_type TEXT NOT NULL DEFAULT 'individual',
		nights INTEGER NOT NULL DEFAULT 1,
		area_rented TEXT NOT NULL,
		revenue TEXT NOT NULL DEFAULT '0',
		status TEXT DEFAULT 'active',
		notes TEXT,
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	);

	-- Overlap queries scan by arrival date
	CREATE INDEX IF NOT EXISTS idx_bookings_date
		ON bookings(booking_date);

	-- Availability alerts
	CREATE TABLE IF NOT EXISTS availability_alerts (
		id TEXT PRIMARY KEY,
		guest_name TEXT NOT NULL,
		contact TEXT NOT NULL,
		preferred_area TEXT,
		requested_start_date TEXT,
		nights INTEGER DEFAULT 1,
		party_size INTEGER DEFAULT 1,
		status TEXT DEFAULT 'active',
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_alerts_status
		ON availability_alerts(status);
	`

	_, err := s.db.Exec(schema)
	return err
}

// =============================================================================
// BOOKINGS (booking.StayReader)
// =============================================================================

// SaveBooking inserts or replaces a booking.
func (s *Store) SaveBooking(ctx context.Context, b store.Booking) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	guestType := b.GuestType
	if guestType == "" {
		guestType = "individual"
	}
	status := b.Status
	if status == "" {
		status = string(booking.StatusActive)
	}
	date := ""
	if !b.BookingDate.IsZero() {
		date = b.BookingDate.String()
	}
	now := time.Now().UTC().Format(time.RFC3339)

	_, err := s.db.ExecContext(ctx, `
		INSERT OR REPLACE INTO bookings
		(id, booking_date, guest_name, guest_type, nights, area_rented, revenue, status, notes, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		b.ID,
		date,
		b.GuestName,
		guestType,
		b.Nights,
		b.AreaRented,
		b.Revenue.Value.String(),
		status,
		nullString(b.Notes),
		now,
		now,
	)
	if err != nil {
		return fmt.Errorf("failed to save booking: %w", err)
	}
	return nil
}

// ListStaysOverlapping returns every booking sharing at least one night with
// window, normalized through the catalog.
func (s *Store) ListStaysOverlapping(ctx context.Context, window generic.Interval) ([]booking.StayRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	query := `
		SELECT id, booking_date, nights, area_rented, status
		FROM bookings
		WHERE booking_date < ?
		  AND date(booking_date, '+' || MAX(COALESCE(nights, 1), 1) || ' days') > ?
		ORDER BY booking_date ASC, id ASC
	`

	rows, err := s.db.QueryContext(ctx, query, window.End.String(), window.Start.String())
	if err != nil {
		return nil, fmt.Errorf("failed to query bookings: %w", err)
	}
	defer rows.Close()

	var stays []booking.StayRecord
	for rows.Next() {
		var (
			id, date, area string
			nights         sql.NullInt64
			status         sql.NullString
		)
		if err := rows.Scan(&id, &date, &nights, &area, &status); err != nil {
			return nil, fmt.Errorf("failed to scan booking: %w", err)
		}
		start, err := generic.ParseDate(date)
		if err != nil {
			log.Warn().Str("booking_id", id).Str("booking_date", date).Msg("Skipping booking with unparsable date")
			continue
		}
		stays = append(stays, booking.NewStayRecord(s.catalog, id, area, start, int(nights.Int64), status.String))
	}
	return stays, rows.Err()
}

// GetBooking returns one booking or generic.ErrNotFound.
func (s *Store) GetBooking(ctx context.Context, id string) (*store.Booking, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var (
		b             store.Booking
		date, revenue string
		status, notes sql.NullString
	)
	err := s.db.QueryRowContext(ctx, `
		SELECT id, booking_date, guest_name, guest_type, nights, area_rented, revenue, status, notes
		FROM bookings WHERE id = ?
	`, id).Scan(&b.ID, &date, &b.GuestName, &b.GuestType, &b.Nights, &b.AreaRented, &revenue, &status, &notes)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("booking %s: %w", id, generic.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get booking: %w", err)
	}

	b.BookingDate, _ = generic.ParseDate(date)
	b.Revenue = parseRevenue(revenue)
	b.Status = status.String
	b.Notes = notes.String
	return &b, nil
}

// CountBookingsWithPrefix counts bookings whose id starts with prefix.
func (s *Store) CountBookingsWithPrefix(ctx context.Context, prefix string) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var count int
	err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM bookings WHERE id LIKE ? ESCAPE '\\'",
		likePrefix(prefix),
	).Scan(&count)
	return count, err
}

// DeleteBookingsWithPrefix removes bookings whose id starts with prefix and
// returns how many were removed.
func (s *Store) DeleteBookingsWithPrefix(ctx context.Context, prefix string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.ExecContext(ctx, "DELETE FROM bookings WHERE id LIKE ? ESCAPE '\\'", likePrefix(prefix))
	if err != nil {
		return 0, fmt.Errorf("failed to delete bookings: %w", err)
	}
	return res.RowsAffected()
}

// =============================================================================
// AVAILABILITY ALERTS (booking.AlertStore)
// =============================================================================

// SaveAlert inserts or replaces an alert.
func (s *Store) SaveAlert(ctx context.Context, a booking.AvailabilityAlert) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx, `
		INSERT OR REPLACE INTO availability_alerts
		(id, guest_name, contact, preferred_area, requested_start_date, nights, party_size, status, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		a.ID,
		a.GuestName,
		a.Contact,
		string(a.PreferredArea),
		a.RequestedStart.String(),
		a.Nights,
		a.PartySize,
		string(a.Status),
		a.CreatedAt.UTC().Format(time.RFC3339),
		a.UpdatedAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("failed to save alert: %w", err)
	}
	return nil
}

// GetAlert returns one alert or generic.ErrNotFound.
func (s *Store) GetAlert(ctx context.Context, id string) (*booking.AvailabilityAlert, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	alerts, err := s.queryAlerts(ctx, alertSelect+" WHERE id = ?", id)
	if err != nil {
		return nil, err
	}
	if len(alerts) == 0 {
		return nil, fmt.Errorf("alert %s: %w", id, generic.ErrNotFound)
	}
	return &alerts[0], nil
}

// ListAlerts returns alerts with the given status, oldest first. An empty
// status lists every alert.
func (s *Store) ListAlerts(ctx context.Context, status booking.AlertStatus) ([]booking.AvailabilityAlert, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if status == "" {
		return s.queryAlerts(ctx, alertSelect+" ORDER BY created_at ASC, id ASC")
	}
	return s.queryAlerts(ctx, alertSelect+" WHERE status = ? ORDER BY created_at ASC, id ASC", string(status))
}

// UpdateAlertStatus sets an alert's status.
func (s *Store) UpdateAlertStatus(ctx context.Context, id string, status booking.AlertStatus, at time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.ExecContext(ctx,
		"UPDATE availability_alerts SET status = ?, updated_at = ? WHERE id = ?",
		string(status), at.UTC().Format(time.RFC3339), id,
	)
	if err != nil {
		return fmt.Errorf("failed to update alert: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to update alert: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("alert %s: %w", id, generic.ErrNotFound)
	}
	return nil
}

const alertSelect = `
	SELECT id, guest_name, contact, preferred_area, requested_start_date, nights, party_size, status, created_at, updated_at
	FROM availability_alerts`

func (s *Store) queryAlerts(ctx context.Context, query string, args ...any) ([]booking.AvailabilityAlert, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query alerts: %w", err)
	}
	defer rows.Close()

	alerts := []booking.AvailabilityAlert{}
	for rows.Next() {
		var (
			a                    booking.AvailabilityAlert
			area, start, status  sql.NullString
			nights, party        sql.NullInt64
			createdAt, updatedAt string
		)
		if err := rows.Scan(&a.ID, &a.GuestName, &a.Contact, &area, &start, &nights, &party, &status, &createdAt, &updatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan alert: %w", err)
		}

		a.PreferredArea = s.catalog.NormalizeAreaKey(area.String)
		a.RequestedStart, err = generic.ParseDate(start.String)
		if err != nil {
			log.Warn().Str("alert_id", a.ID).Str("requested_start_date", start.String).Msg("Alert has unparsable start date")
		}
		a.Nights = max(int(nights.Int64), 1)
		a.PartySize = max(int(party.Int64), 1)
		a.Status = booking.ParseAlertStatus(status.String)
		a.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
		a.UpdatedAt, _ = time.Parse(time.RFC3339, updatedAt)
		alerts = append(alerts, a)
	}
	return alerts, rows.Err()
}

// =============================================================================
// RESET
// =============================================================================

// Reset clears all data (for testing/demo).
func (s *Store) Reset(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tables := []string{"bookings", "availability_alerts"}
	for _, table := range tables {
		if _, err := s.db.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return err
		}
	}
	return nil
}

// =============================================================================
// HELPERS
// =============================================================================

func nullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

// likePrefix escapes LIKE wildcards in prefix and appends %.
func likePrefix(prefix string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(prefix) + "%"
}

// parseRevenue reads a stored decimal, treating garbage as zero.
func parseRevenue(value string) generic.Money {
	d, err := decimal.NewFromString(value)
	if err != nil {
		return generic.ZeroMoney()
	}
	return generic.NewMoneyFromDecimal(d)
}
