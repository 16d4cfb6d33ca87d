/*
catalog.go - Lodging area configuration

PURPOSE:
  The Catalog is the immutable table of area types: how many units each has,
  what a night costs, who fits, and which amenities it offers. It is built
  once at startup (DefaultCatalog or factory.LoadFile) and injected into the
  engine. Requests never mutate it.

CAPACITY VS PARTY SIZE:
  CapacityUnits is how many separate bookings an area can hold on one night.
  MaxPartySize is how many guests one booking may bring. The two are
  configured independently.

ALIASES:
  Booking records carry free-text area names. NormalizeAreaKey folds them
  onto a key: exact key match, then aliases ("tent site"), then "mixed".

SEE ALSO:
  - types.go: AreaKey
  - factory/policy.go: YAML/JSON catalog documents
*/
package booking

import (
	"strings"

	"github.com/robbyrobaz/campsite-crm/generic"
)

// AreaConfig is the configuration of one area type.
type AreaConfig struct {
	Key              AreaKey
	Label            string
	CapacityUnits    int
	BaseRatePerNight generic.Money
	MaxPartySize     int
	IncludedGuests   int
	CleaningFee      generic.Money
	Amenities        []string
	Aliases          []string
}

// HasAmenity reports whether the area offers amenity (case-insensitive).
func (a AreaConfig) HasAmenity(amenity string) bool {
	for _, have := range a.Amenities {
		if strings.EqualFold(have, amenity) {
			return true
		}
	}
	return false
}

// Catalog is the ordered, read-only set of area configurations.
type Catalog struct {
	areas   []AreaConfig
	byKey   map[AreaKey]int
	aliases map[string]AreaKey
}

// NewCatalog builds a catalog. Order is preserved; it is the tie-break order
// of availability snapshots.
func NewCatalog(areas []AreaConfig) *Catalog {
	c := &Catalog{
		areas:   make([]AreaConfig, len(areas)),
		byKey:   make(map[AreaKey]int, len(areas)),
		aliases: make(map[string]AreaKey),
	}
	for i, a := range areas {
		a.Amenities = append([]string(nil), a.Amenities...)
		a.Aliases = append([]string(nil), a.Aliases...)
		c.areas[i] = a
		c.byKey[a.Key] = i
		for _, alias := range a.Aliases {
			c.aliases[strings.ToLower(strings.TrimSpace(alias))] = a.Key
		}
	}
	return c
}

// Areas returns a copy of the configured areas in catalog order.
func (c *Catalog) Areas() []AreaConfig {
	out := make([]AreaConfig, len(c.areas))
	copy(out, c.areas)
	return out
}

// Len returns the number of areas.
func (c *Catalog) Len() int { return len(c.areas) }

// Lookup returns the area for key.
func (c *Catalog) Lookup(key AreaKey) (AreaConfig, bool) {
	i, ok := c.byKey[key]
	if !ok {
		return AreaConfig{}, false
	}
	return c.areas[i], true
}

// Area returns the area for key, falling back to the mixed area.
func (c *Catalog) Area(key AreaKey) AreaConfig {
	if a, ok := c.Lookup(key); ok {
		return a
	}
	a, _ := c.Lookup(AreaMixed)
	return a
}

// NormalizeAreaKey maps a free-text area name onto a configured key.
// Unrecognized names fold to mixed.
func (c *Catalog) NormalizeAreaKey(raw string) AreaKey {
	name := strings.ToLower(strings.TrimSpace(raw))
	if name == "" {
		return AreaMixed
	}
	if _, ok := c.byKey[AreaKey(name)]; ok {
		return AreaKey(name)
	}
	if key, ok := c.aliases[name]; ok {
		return key
	}
	return AreaMixed
}

// =============================================================================
// DEFAULT CATALOG
// =============================================================================

// DefaultCatalog returns the standard campground configuration.
func DefaultCatalog() *Catalog {
	return NewCatalog([]AreaConfig{
		{
			Key: AreaCabin, Label: "Cabin", CapacityUnits: 8,
			BaseRatePerNight: generic.NewMoneyFromInt(110), MaxPartySize: 8, IncludedGuests: 4,
			CleaningFee: generic.NewMoneyFromInt(20),
			Amenities:   []string{"heating", "private restroom", "power", "pet-friendly"},
		},
		{
			Key: AreaTent, Label: "Tent Site", CapacityUnits: 20,
			BaseRatePerNight: generic.NewMoneyFromInt(45), MaxPartySize: 6, IncludedGuests: 2,
			CleaningFee: generic.ZeroMoney(),
			Amenities:   []string{"fire ring", "picnic table", "pet-friendly", "shade"},
			Aliases:     []string{"tent site"},
		},
		{
			Key: AreaKitchen, Label: "Kitchen Area", CapacityUnits: 1,
			BaseRatePerNight: generic.NewMoneyFromInt(80), MaxPartySize: 14, IncludedGuests: 8,
			CleaningFee: generic.NewMoneyFromInt(12),
			Amenities:   []string{"covered shelter", "prep station", "lighting", "group-friendly"},
		},
		{
			Key: AreaBarn, Label: "Horse Barn", CapacityUnits: 2,
			BaseRatePerNight: generic.NewMoneyFromInt(95), MaxPartySize: 10, IncludedGuests: 4,
			CleaningFee: generic.NewMoneyFromInt(18),
			Amenities:   []string{"horse stalls", "water access", "lighting", "trailer space"},
		},
		{
			Key: AreaPavilion, Label: "Pavilion", CapacityUnits: 1,
			BaseRatePerNight: generic.NewMoneyFromInt(70), MaxPartySize: 20, IncludedGuests: 10,
			CleaningFee: generic.NewMoneyFromInt(10),
			Amenities:   []string{"covered shelter", "group seating", "power", "near restrooms"},
		},
		{
			Key: AreaMixed, Label: "Mixed Areas", CapacityUnits: 4,
			BaseRatePerNight: generic.NewMoneyFromInt(88), MaxPartySize: 12, IncludedGuests: 6,
			CleaningFee: generic.NewMoneyFromInt(14),
			Amenities:   []string{"custom layout", "group-friendly", "flexible setup"},
		},
	})
}
