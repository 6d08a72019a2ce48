package usecases

import (
	"context"
	"fmt"
	"strings"

	"github.com/example/hotel-booking/internal/domain/calendar"
	"github.com/example/hotel-booking/internal/domain/reservation"
	"github.com/example/hotel-booking/internal/internaltypes"
)

type GuestInput struct {
	GuestName string `json:"guest_name" validate:"required"`
	Gender    string `json:"gender" validate:"required"`
}

// ReservationInput is the booking request body.
type ReservationInput struct {
	HotelName  string       `json:"hotel_name" validate:"required,max=100"`
	Checkin    string       `json:"checkin" validate:"required"`
	Checkout   string       `json:"checkout" validate:"required"`
	GuestsList []GuestInput `json:"guests_list" validate:"required,min=1,dive"`
}

func (in *ReservationInput) trim() {
	in.HotelName = strings.TrimSpace(in.HotelName)
	in.Checkin = strings.TrimSpace(in.Checkin)
	in.Checkout = strings.TrimSpace(in.Checkout)
	for i := range in.GuestsList {
		in.GuestsList[i].GuestName = strings.TrimSpace(in.GuestsList[i].GuestName)
		in.GuestsList[i].Gender = strings.TrimSpace(in.GuestsList[i].Gender)
	}
}

type SubmitReservation struct {
	Ledger reservation.Ledger
}

// Execute validates the request and books it. Validation problems come back
// as internaltypes.FieldErrors; ledger failures are returned unchanged.
func (u SubmitReservation) Execute(ctx context.Context, in ReservationInput) (string, error) {
	in.trim()
	errs := validateStruct(in)

	checkin, checkinErr := normalizeField("checkin", in.Checkin, errs)
	checkout, checkoutErr := normalizeField("checkout", in.Checkout, errs)
	if checkinErr != nil {
		errs = append(errs, *checkinErr)
	}
	if checkoutErr != nil {
		errs = append(errs, *checkoutErr)
	}
	if err := errs.OrNil(); err != nil {
		return "", err
	}

	guests := make([]reservation.Guest, 0, len(in.GuestsList))
	for _, g := range in.GuestsList {
		guests = append(guests, reservation.Guest{Name: g.GuestName, Gender: g.Gender})
	}

	number, err := u.Ledger.Create(ctx, in.HotelName, checkin, checkout, guests)
	if err != nil {
		return "", fmt.Errorf("create reservation: %w", err)
	}
	return number, nil
}

// normalizeField parses a date field unless it already failed validation.
func normalizeField(field, text string, prior internaltypes.FieldErrors) (calendar.Date, *internaltypes.FieldError) {
	for _, e := range prior {
		if e.Field == field {
			return calendar.Date{}, nil
		}
	}
	d, err := calendar.Normalize(text)
	if err != nil {
		return calendar.Date{}, &internaltypes.FieldError{
			Field:  field,
			Reason: "date has wrong format, use MM/DD/YYYY or YYYY-MM-DD",
			Err:    internaltypes.ErrInvalidDateFormat,
		}
	}
	return d, nil
}
