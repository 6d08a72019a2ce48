package reservation

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/example/hotel-booking/internal/domain/calendar"
	"github.com/example/hotel-booking/internal/internaltypes"
)

// MaxConfirmationAttempts bounds regeneration after confirmation number collisions.
const MaxConfirmationAttempts = 5

// Ledger creates reservations and issues their confirmation numbers.
type Ledger struct {
	Store Store
	Log   logrus.FieldLogger

	// NewConfirmationNumber defaults to a random UUID.
	NewConfirmationNumber func() string
	// Now defaults to time.Now.
	Now func() time.Time
	// OnCollision is called once per regenerated number.
	OnCollision func()
}

func (l Ledger) Create(ctx context.Context, hotelName string, checkin, checkout calendar.Date, guests []Guest) (string, error) {
	if l.Store == nil {
		return "", fmt.Errorf("ledger: store is nil")
	}
	if len(guests) == 0 {
		return "", internaltypes.FieldError{Field: "guests_list", Reason: "at least one guest is required", Err: internaltypes.ErrValidation}
	}

	r := Reservation{
		HotelName: hotelName,
		Checkin:   checkin,
		Checkout:  checkout,
		Guests:    append([]Guest(nil), guests...),
		CreatedAt: l.now().UTC(),
	}

	for attempt := 1; attempt <= MaxConfirmationAttempts; attempt++ {
		r.ConfirmationNumber = l.newNumber()
		err := l.Store.Insert(ctx, r)
		if err == nil {
			return r.ConfirmationNumber, nil
		}
		if !errors.Is(err, internaltypes.ErrConflict) {
			return "", err
		}
		if l.OnCollision != nil {
			l.OnCollision()
		}
		if l.Log != nil {
			l.Log.WithFields(logrus.Fields{
				"attempt":             attempt,
				"confirmation_number": r.ConfirmationNumber,
			}).Warn("confirmation number collision, regenerating")
		}
	}
	return "", fmt.Errorf("%w: no free confirmation number after %d attempts", internaltypes.ErrStorageUnavailable, MaxConfirmationAttempts)
}

func (l Ledger) newNumber() string {
	if l.NewConfirmationNumber != nil {
		return l.NewConfirmationNumber()
	}
	return uuid.NewString()
}

func (l Ledger) now() time.Time {
	if l.Now != nil {
		return l.Now()
	}
	return time.Now()
}
