package usecases

import (
	"context"
	"fmt"

	"github.com/example/hotel-booking/internal/domain/hotel"
	"github.com/example/hotel-booking/internal/domain/reservation"
)

// BrowseHotels is the read side of the catalog.
type BrowseHotels struct {
	Hotels hotel.Catalog
}

func (u BrowseHotels) List(ctx context.Context) ([]hotel.Hotel, error) {
	hs, err := u.Hotels.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list hotels: %w", err)
	}
	return hs, nil
}

func (u BrowseHotels) Get(ctx context.Context, id int) (hotel.Hotel, error) {
	h, err := u.Hotels.GetByID(ctx, id)
	if err != nil {
		return hotel.Hotel{}, fmt.Errorf("get hotel %d: %w", id, err)
	}
	return h, nil
}

type LookupReservations struct {
	Store reservation.Store
}

func (u LookupReservations) List(ctx context.Context) ([]reservation.Reservation, error) {
	rs, err := u.Store.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list reservations: %w", err)
	}
	return rs, nil
}

func (u LookupReservations) Get(ctx context.Context, confirmationNumber string) (reservation.Reservation, error) {
	r, err := u.Store.Get(ctx, confirmationNumber)
	if err != nil {
		return reservation.Reservation{}, fmt.Errorf("get reservation %q: %w", confirmationNumber, err)
	}
	return r, nil
}
