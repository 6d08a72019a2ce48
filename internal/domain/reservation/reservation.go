package reservation

import (
	"context"
	"time"

	"github.com/example/hotel-booking/internal/domain/calendar"
)

type Guest struct {
	Name   string `json:"guest_name"`
	Gender string `json:"gender"`
}

// Reservation owns its guests. HotelName is free text and is not checked
// against the catalog; neither is checkin/checkout ordering.
type Reservation struct {
	ConfirmationNumber string        `json:"confirmation_number"`
	HotelName          string        `json:"hotel_name"`
	Checkin            calendar.Date `json:"checkin"`
	Checkout           calendar.Date `json:"checkout"`
	Guests             []Guest       `json:"guests"`
	CreatedAt          time.Time     `json:"-"`
}

// Store persists reservations together with their guests.
type Store interface {
	// Insert writes the header and every guest in one transaction. A taken
	// confirmation number is reported as internaltypes.ErrConflict and
	// leaves nothing behind.
	Insert(ctx context.Context, r Reservation) error
	Get(ctx context.Context, confirmationNumber string) (Reservation, error)
	// List returns reservations oldest first.
	List(ctx context.Context) ([]Reservation, error)
}
