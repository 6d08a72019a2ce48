package usecases

import (
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/example/hotel-booking/internal/domain/hotel"
	"github.com/example/hotel-booking/internal/internaltypes"
)

// HotelInput is the hotel creation body. Pointers tell "missing" from zero.
type HotelInput struct {
	ID             *int     `json:"id" validate:"required"`
	Name           string   `json:"name" validate:"required,max=100"`
	Address        string   `json:"address"`
	Rating         *float64 `json:"rating" validate:"required,gt=-100,lt=100"`
	Price          *int     `json:"price" validate:"required"`
	AvailableUntil string   `json:"available_until" validate:"required"`
	Available      *bool    `json:"available"`
}

type RegisterHotel struct {
	Hotels hotel.Catalog
}

func (u RegisterHotel) Execute(ctx context.Context, in HotelInput) (hotel.Hotel, error) {
	h, err := in.toHotel()
	if err != nil {
		return hotel.Hotel{}, err
	}
	created, err := u.Hotels.Insert(ctx, h)
	if err != nil {
		return hotel.Hotel{}, fmt.Errorf("register hotel %d: %w", h.ID, err)
	}
	return created, nil
}

func (in HotelInput) toHotel() (hotel.Hotel, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Address = strings.TrimSpace(in.Address)
	in.AvailableUntil = strings.TrimSpace(in.AvailableUntil)
	errs := validateStruct(in)

	if in.Rating != nil && !oneDecimal(*in.Rating) {
		errs = append(errs, internaltypes.FieldError{
			Field:  "rating",
			Reason: "must have at most one decimal place",
			Err:    internaltypes.ErrValidation,
		})
	}
	until, ferr := normalizeField("available_until", in.AvailableUntil, errs)
	if ferr != nil {
		errs = append(errs, *ferr)
	}
	if err := errs.OrNil(); err != nil {
		return hotel.Hotel{}, err
	}

	return hotel.Hotel{
		ID:             *in.ID,
		Name:           in.Name,
		Address:        in.Address,
		Rating:         math.Round(*in.Rating*10) / 10,
		Price:          *in.Price,
		AvailableUntil: until,
		Available:      in.Available,
	}, nil
}

func oneDecimal(f float64) bool {
	scaled := f * 10
	return math.Abs(scaled-math.Round(scaled)) < 1e-9
}
