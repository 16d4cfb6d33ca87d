package api

import (
	"bytes"
	"encoding/json"
	"io"
	"math"
	"net/http"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/robbyrobaz/campsite-crm/booking"
	"github.com/robbyrobaz/campsite-crm/generic"
)

// =============================================================================
// INPUT NORMALIZATION
//
// Booking assistant inputs never produce a 4xx: malformed counts become 1,
// malformed dates become today and malformed totals become 0.
// =============================================================================

// atLeastOne parses a leading integer the way a form field is read: "3",
// "3.7" and "3 nights" are all 3. Anything else, or a value below 1, is 1.
func atLeastOne(raw string) int {
	n, ok := leadingInt(raw)
	if !ok || n < 1 {
		return 1
	}
	return n
}

func leadingInt(raw string) (int, bool) {
	s := strings.TrimSpace(raw)
	end := 0
	for end < len(s) && (s[end] >= '0' && s[end] <= '9' || end == 0 && (s[end] == '-' || s[end] == '+')) {
		end++
	}
	n, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0, false
	}
	return n, true
}

// nonNegativeMoney parses an amount; malformed or negative values are zero.
func nonNegativeMoney(raw string) generic.Money {
	d, err := decimal.NewFromString(strings.TrimSpace(raw))
	if err != nil {
		return generic.ZeroMoney()
	}
	return generic.NewMoneyFromDecimal(d).NonNegative()
}

// dateOr parses YYYY-MM-DD, falling back to today.
func dateOr(raw string, today generic.TimePoint) generic.TimePoint {
	return generic.ParseDateOr(raw, today)
}

// areaPreference is empty when raw is blank; otherwise the normalized key.
func areaPreference(catalog *booking.Catalog, raw string) booking.AreaKey {
	if strings.TrimSpace(raw) == "" {
		return ""
	}
	return catalog.NormalizeAreaKey(raw)
}

// stayQueryFromURL reads startDate, nights, partySize, amenities and area.
// amenities may repeat or be comma separated.
func stayQueryFromURL(r *http.Request, catalog *booking.Catalog, today generic.TimePoint) booking.StayQuery {
	q := r.URL.Query()
	return booking.StayQuery{
		Start:      dateOr(q.Get("startDate"), today),
		Nights:     atLeastOne(q.Get("nights")),
		PartySize:  atLeastOne(q.Get("partySize")),
		Amenities:  booking.ParseAmenities(q["amenities"]...),
		Preference: areaPreference(catalog, q.Get("area")),
	}
}

// decodeLenient decodes a JSON body into dst. A missing or malformed body
// leaves dst at its zero value.
func decodeLenient(r *http.Request, dst any) {
	if r.Body == nil {
		return
	}
	data, err := io.ReadAll(io.LimitReader(r.Body, 1<<20))
	if err != nil || len(bytes.TrimSpace(data)) == 0 {
		return
	}
	_ = json.Unmarshal(data, dst)
}

// =============================================================================
// LENIENT JSON TYPES
// =============================================================================

// looseInt accepts a JSON number or a numeric string. Anything else decodes
// as unset.
type looseInt struct {
	Value int
	Set   bool
}

func (l *looseInt) UnmarshalJSON(data []byte) error {
	*l = looseInt{}
	raw := unquote(data)
	if n, ok := leadingInt(raw); ok {
		*l = looseInt{Value: n, Set: true}
		return nil
	}
	if f, err := strconv.ParseFloat(raw, 64); err == nil && !math.IsNaN(f) && !math.IsInf(f, 0) {
		*l = looseInt{Value: int(f), Set: true}
	}
	return nil
}

// OrAtLeastOne returns the value clamped to 1, or fallback when unset.
func (l looseInt) OrAtLeastOne(fallback int) int {
	if !l.Set || l.Value < 1 {
		if fallback < 1 {
			return 1
		}
		return fallback
	}
	return l.Value
}

// OrDefault returns fallback when unset or zero. Any other value is clamped to
// at least 1, so a negative count does not inherit the fallback.
func (l looseInt) OrDefault(fallback int) int {
	n := l.Value
	if !l.Set || n == 0 {
		n = fallback
	}
	if n < 1 {
		return 1
	}
	return n
}

// looseFloat accepts a JSON number or a numeric string as money.
type looseFloat struct {
	Raw string
}

func (l *looseFloat) UnmarshalJSON(data []byte) error {
	l.Raw = unquote(data)
	return nil
}

func (l looseFloat) Money() generic.Money { return nonNegativeMoney(l.Raw) }

// strictTrue is true only for the JSON literal true.
type strictTrue bool

func (s *strictTrue) UnmarshalJSON(data []byte) error {
	*s = strictTrue(bytes.Equal(bytes.TrimSpace(data), []byte("true")))
	return nil
}

// looseAddOns accepts an array of add-ons or a string holding one.
type looseAddOns []booking.AddOnLine

type addOnInput struct {
	Name     any        `json:"name"`
	Price    looseFloat `json:"price"`
	Quantity looseInt   `json:"quantity"`
}

func (a *looseAddOns) UnmarshalJSON(data []byte) error {
	*a = nil
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return nil
		}
		data = []byte(strings.TrimSpace(s))
	}

	var items []json.RawMessage
	if err := json.Unmarshal(data, &items); err != nil {
		return nil
	}
	for _, raw := range items {
		var in addOnInput
		if err := json.Unmarshal(raw, &in); err != nil {
			continue
		}
		name, _ := in.Name.(string)
		line, ok := booking.NewAddOnLine(name, in.Price.Money(), in.Quantity.OrAtLeastOne(1))
		if ok {
			*a = append(*a, line)
		}
	}
	return nil
}

func unquote(data []byte) string {
	s := strings.TrimSpace(string(data))
	if unq, err := strconv.Unquote(s); err == nil {
		return strings.TrimSpace(unq)
	}
	return s
}
