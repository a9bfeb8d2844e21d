// Package domain provides the faceted catalog query engine.
// It contains the catalog value objects and the pure filter, facet,
// sort and pagination stages that derive a view from a snapshot.
package domain

import (
	"fmt"
	"math"
	"strings"
)

// Availability represents the stock state of a catalog item.
type Availability string

const (
	AvailabilityInStock    Availability = "in-stock"
	AvailabilityLowStock   Availability = "low-stock"
	AvailabilityOutOfStock Availability = "out-of-stock"
)

// Availabilities lists every availability value in display order.
func Availabilities() []Availability {
	return []Availability{AvailabilityInStock, AvailabilityLowStock, AvailabilityOutOfStock}
}

// IsValid checks if the availability is valid.
func (a Availability) IsValid() bool {
	switch a {
	case AvailabilityInStock, AvailabilityLowStock, AvailabilityOutOfStock:
		return true
	default:
		return false
	}
}

// String returns the string representation of the availability.
func (a Availability) String() string {
	return string(a)
}

// ParseAvailability parses a string into an Availability.
// Underscores and mixed case are accepted ("IN_STOCK" -> "in-stock").
func ParseAvailability(value string) (Availability, error) {
	normalized := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(value)), "_", "-")
	a := Availability(normalized)
	if !a.IsValid() {
		return "", fmt.Errorf("invalid availability: %s", value)
	}
	return a, nil
}

// Item is one catalog entry. The engine treats items as read-only for
// the duration of a query cycle.
type Item struct {
	ID           string       `json:"id" yaml:"id" toml:"id"`
	Name         string       `json:"name" yaml:"name" toml:"name"`
	Category     string       `json:"category" yaml:"category" toml:"category"`
	Brand        string       `json:"brand" yaml:"brand" toml:"brand"`
	Tags         []string     `json:"tags,omitempty" yaml:"tags,omitempty" toml:"tags,omitempty"`
	Price        float64      `json:"price" yaml:"price" toml:"price"`
	Availability Availability `json:"availability" yaml:"availability" toml:"availability"`
	// Rating is display-only; nil sorts below every rated item.
	Rating     *float64 `json:"rating,omitempty" yaml:"rating,omitempty" toml:"rating,omitempty"`
	IsNew      bool     `json:"isNew" yaml:"isNew" toml:"isNew"`
	IsFeatured bool     `json:"isFeatured" yaml:"isFeatured" toml:"isFeatured"`
	IsOnSale   bool     `json:"isOnSale" yaml:"isOnSale" toml:"isOnSale"`
}

// Validate validates the item and returns an error if invalid.
func (it Item) Validate() error {
	if strings.TrimSpace(it.ID) == "" {
		return fmt.Errorf("item id cannot be empty")
	}
	if math.IsNaN(it.Price) || math.IsInf(it.Price, 0) {
		return fmt.Errorf("item %s: price must be a finite number: %v", it.ID, it.Price)
	}
	if it.Price < 0 {
		return fmt.Errorf("item %s: price cannot be negative: %v", it.ID, it.Price)
	}
	if it.Rating != nil && (math.IsNaN(*it.Rating) || math.IsInf(*it.Rating, 0)) {
		return fmt.Errorf("item %s: rating must be a finite number: %v", it.ID, *it.Rating)
	}
	if !it.Availability.IsValid() {
		return fmt.Errorf("item %s: invalid availability: %q", it.ID, it.Availability)
	}
	return nil
}

// HasTag reports whether the item carries the given tag.
func (it Item) HasTag(tag string) bool {
	for _, t := range it.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// CategorySlug returns the canonical slug of the item's category.
func (it Item) CategorySlug() string {
	return Slug(it.Category)
}

// InStock reports whether the item can currently be bought.
func (it Item) InStock() bool {
	return it.Availability != AvailabilityOutOfStock
}

// Slug converts a display value into its canonical slug form:
// lower-cased, trimmed, with runs of spaces, underscores and hyphens
// collapsed into a single hyphen.
func Slug(value string) string {
	var b strings.Builder
	b.Grow(len(value))
	pendingSep := false
	for _, r := range strings.ToLower(strings.TrimSpace(value)) {
		switch r {
		case ' ', '\t', '\n', '_', '-':
			pendingSep = true
			continue
		}
		if pendingSep && b.Len() > 0 {
			b.WriteByte('-')
		}
		pendingSep = false
		b.WriteRune(r)
	}
	return b.String()
}

// ObservedPriceRange returns the min and max price in the collection.
// The boolean is false for an empty collection.
func ObservedPriceRange(items []Item) (PriceRange, bool) {
	if len(items) == 0 {
		return PriceRange{}, false
	}
	r := PriceRange{Min: items[0].Price, Max: items[0].Price}
	for _, it := range items[1:] {
		if it.Price < r.Min {
			r.Min = it.Price
		}
		if it.Price > r.Max {
			r.Max = it.Price
		}
	}
	return r, true
}
