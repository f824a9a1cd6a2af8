// Package bookings resolves a guest's most recent booking for answer
// personalization.
package bookings

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned when no booking matches a guest.
var ErrNotFound = errors.New("booking not found")

// Booking is one row of the booking export.
type Booking struct {
	ID        string    `json:"id"`
	GuestName string    `json:"guest_name"`
	CheckIn   time.Time `json:"check_in"`
	CheckOut  time.Time `json:"check_out"`
	Amount    float64   `json:"amount"`
	Collector string    `json:"collector,omitempty"`
}

// Nights returns the length of stay, or 0 when either date is missing.
func (b Booking) Nights() int {
	if b.CheckIn.IsZero() || b.CheckOut.IsZero() || !b.CheckOut.After(b.CheckIn) {
		return 0
	}
	return int(b.CheckOut.Sub(b.CheckIn).Hours() / 24)
}

// Lookup finds bookings by guest name.
type Lookup interface {
	// LatestByName returns the booking with the latest check-in whose guest
	// name contains name, case-insensitively. It returns ErrNotFound when
	// nothing matches.
	LatestByName(ctx context.Context, name string) (*Booking, error)
}

// None is a Lookup with no bookings.
type None struct{}

func (None) LatestByName(context.Context, string) (*Booking, error) {
	return nil, ErrNotFound
}
