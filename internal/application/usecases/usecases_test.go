package usecases

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/hotel-booking/internal/domain/calendar"
	"github.com/example/hotel-booking/internal/domain/hotel"
	"github.com/example/hotel-booking/internal/domain/reservation"
	"github.com/example/hotel-booking/internal/infrastructure/memory"
	"github.com/example/hotel-booking/internal/internaltypes"
)

var today = calendar.Today(time.Now(), time.UTC)

func seededCatalog(t *testing.T) *memory.HotelCatalog {
	t.Helper()
	c := memory.NewHotelCatalog()
	for _, h := range []hotel.Hotel{
		{ID: 1, Name: "Test Hotel 1", Rating: 4.5, Price: 150, AvailableUntil: today.AddDays(30), Available: hotel.Bool(true)},
		{ID: 2, Name: "Test Hotel 2", Rating: 3.5, Price: 100, AvailableUntil: today.AddDays(10), Available: hotel.Bool(true)},
		{ID: 3, Name: "Test Hotel 3", Rating: 5.0, Price: 200, AvailableUntil: today.AddDays(-5), Available: hotel.Bool(true)},
		{ID: 4, Name: "Test Hotel 4", Rating: 4.0, Price: 120, AvailableUntil: today.AddDays(20), Available: hotel.Bool(false)},
	} {
		_, err := c.Insert(context.Background(), h)
		require.NoError(t, err)
	}
	return c
}

func fieldNames(t *testing.T, err error) []string {
	t.Helper()
	var fe internaltypes.FieldErrors
	require.True(t, errors.As(err, &fe), "expected FieldErrors, got %v", err)
	return fe.Names()
}

func TestQueryAvailabilityScenario(t *testing.T) {
	u := QueryAvailability{Hotels: seededCatalog(t)}

	got, err := u.Execute(context.Background(), today.AddDays(1).String(), today.AddDays(7).String())
	require.NoError(t, err)

	var ids []int
	for _, h := range got {
		ids = append(ids, h.ID)
	}
	assert.ElementsMatch(t, []int{1, 2}, ids)
}

func TestQueryAvailabilityAcceptsSlashDates(t *testing.T) {
	u := QueryAvailability{Hotels: seededCatalog(t)}
	checkout := today.AddDays(15).Time().Format("01/02/2006")

	got, err := u.Execute(context.Background(), "anything", checkout)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, 1, got[0].ID)
}

func TestQueryAvailabilityIgnoresCheckinValue(t *testing.T) {
	u := QueryAvailability{Hotels: seededCatalog(t)}
	checkout := today.AddDays(7).String()

	a, err := u.Execute(context.Background(), today.AddDays(1).String(), checkout)
	require.NoError(t, err)
	// checkin is never parsed, so even garbage is accepted
	b, err := u.Execute(context.Background(), "not-a-date", checkout)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestQueryAvailabilityMissingParameters(t *testing.T) {
	u := QueryAvailability{Hotels: seededCatalog(t)}

	_, err := u.Execute(context.Background(), "", today.AddDays(7).String())
	assert.ErrorIs(t, err, internaltypes.ErrMissingParameter)
	assert.ErrorIs(t, err, internaltypes.ErrValidation)
	assert.Equal(t, []string{"checkin"}, fieldNames(t, err))

	_, err = u.Execute(context.Background(), "", "  ")
	assert.Equal(t, []string{"checkin", "checkout"}, fieldNames(t, err))
}

func TestQueryAvailabilityInvalidCheckout(t *testing.T) {
	u := QueryAvailability{Hotels: seededCatalog(t)}

	_, err := u.Execute(context.Background(), today.String(), "invalid-date")
	assert.ErrorIs(t, err, internaltypes.ErrInvalidDateFormat)
	assert.Equal(t, []string{"checkout"}, fieldNames(t, err))
}

type failingCatalog struct{ hotel.Catalog }

func (failingCatalog) FindAvailableThrough(context.Context, calendar.Date) ([]hotel.Hotel, error) {
	return nil, fmt.Errorf("find: %w", internaltypes.ErrStorageUnavailable)
}

func TestQueryAvailabilityStorageFailureIsNotClientError(t *testing.T) {
	u := QueryAvailability{Hotels: failingCatalog{}}
	_, err := u.Execute(context.Background(), today.String(), today.String())
	assert.ErrorIs(t, err, internaltypes.ErrStorageUnavailable)
	assert.False(t, internaltypes.IsClientError(err))
}

func newSubmit() (SubmitReservation, *memory.ReservationStore) {
	store := memory.NewReservationStore()
	return SubmitReservation{Ledger: reservation.Ledger{Store: store}}, store
}

func validInput() ReservationInput {
	return ReservationInput{
		HotelName: "Test Hotel 1",
		Checkin:   today.AddDays(1).String(),
		Checkout:  today.AddDays(3).String(),
		GuestsList: []GuestInput{
			{GuestName: "John Doe", Gender: "Male"},
			{GuestName: "Jane Doe", Gender: "Female"},
		},
	}
}

func TestSubmitReservationCreatesReservation(t *testing.T) {
	u, store := newSubmit()
	ctx := context.Background()

	number, err := u.Execute(ctx, validInput())
	require.NoError(t, err)
	require.NotEmpty(t, number)

	r, err := store.Get(ctx, number)
	require.NoError(t, err)
	assert.Equal(t, "Test Hotel 1", r.HotelName)
	assert.Equal(t, today.AddDays(1), r.Checkin)
	assert.Equal(t, today.AddDays(3), r.Checkout)
	assert.ElementsMatch(t, []reservation.Guest{
		{Name: "Jane Doe", Gender: "Female"},
		{Name: "John Doe", Gender: "Male"},
	}, r.Guests)
}

func TestSubmitReservationWithSlashDates(t *testing.T) {
	u, store := newSubmit()
	in := validInput()
	in.Checkin = today.AddDays(1).Time().Format("01/02/2006")
	in.Checkout = today.AddDays(3).Time().Format("01/02/2006")
	in.GuestsList = []GuestInput{{GuestName: "Bob Smith", Gender: "Male"}}

	number, err := u.Execute(context.Background(), in)
	require.NoError(t, err)

	r, err := store.Get(context.Background(), number)
	require.NoError(t, err)
	assert.Equal(t, today.AddDays(1), r.Checkin)
	assert.Equal(t, today.AddDays(3), r.Checkout)
}

func TestSubmitReservationEmptyGuestList(t *testing.T) {
	for name, guests := range map[string][]GuestInput{"nil": nil, "empty": {}} {
		t.Run(name, func(t *testing.T) {
			u, store := newSubmit()
			in := validInput()
			in.GuestsList = guests

			_, err := u.Execute(context.Background(), in)
			assert.ErrorIs(t, err, internaltypes.ErrValidation)
			assert.Equal(t, []string{"guests_list"}, fieldNames(t, err))

			all, lerr := store.List(context.Background())
			require.NoError(t, lerr)
			assert.Empty(t, all)
			assert.Zero(t, store.GuestCount())
		})
	}
}

func TestSubmitReservationGuestFieldsRequired(t *testing.T) {
	u, store := newSubmit()
	in := validInput()
	in.GuestsList = []GuestInput{{GuestName: "John Doe"}, {GuestName: "  ", Gender: "Female"}}

	_, err := u.Execute(context.Background(), in)
	assert.ErrorIs(t, err, internaltypes.ErrValidation)
	assert.Equal(t, []string{"guests_list[0].gender", "guests_list[1].guest_name"}, fieldNames(t, err))
	assert.Zero(t, store.GuestCount())
}

func TestSubmitReservationInvalidDateNamesField(t *testing.T) {
	u, _ := newSubmit()

	in := validInput()
	in.Checkin = "invalid-date"
	_, err := u.Execute(context.Background(), in)
	assert.ErrorIs(t, err, internaltypes.ErrInvalidDateFormat)
	assert.Equal(t, []string{"checkin"}, fieldNames(t, err))

	in = validInput()
	in.Checkout = "2025/13/01"
	_, err = u.Execute(context.Background(), in)
	assert.ErrorIs(t, err, internaltypes.ErrInvalidDateFormat)
	assert.Equal(t, []string{"checkout"}, fieldNames(t, err))
}

func TestSubmitReservationMissingFields(t *testing.T) {
	u, _ := newSubmit()
	_, err := u.Execute(context.Background(), ReservationInput{})
	assert.ErrorIs(t, err, internaltypes.ErrValidation)
	assert.NotErrorIs(t, err, internaltypes.ErrInvalidDateFormat)
	assert.Equal(t, []string{"checkin", "checkout", "guests_list", "hotel_name"}, fieldNames(t, err))
}

func TestSubmitReservationKeepsObservedQuirks(t *testing.T) {
	u, store := newSubmit()
	in := validInput()
	in.HotelName = "No Such Hotel"
	in.Checkin, in.Checkout = in.Checkout, in.Checkin

	number, err := u.Execute(context.Background(), in)
	require.NoError(t, err)
	r, err := store.Get(context.Background(), number)
	require.NoError(t, err)
	assert.True(t, r.Checkout.Before(r.Checkin))
}

type brokenStore struct{ reservation.Store }

func (brokenStore) Insert(context.Context, reservation.Reservation) error {
	return fmt.Errorf("insert: %w", internaltypes.ErrStorageUnavailable)
}

func TestSubmitReservationStorageFailureIsServerError(t *testing.T) {
	u := SubmitReservation{Ledger: reservation.Ledger{Store: brokenStore{}}}
	_, err := u.Execute(context.Background(), validInput())
	assert.ErrorIs(t, err, internaltypes.ErrStorageUnavailable)
	assert.False(t, internaltypes.IsClientError(err))
}

func intp(i int) *int { return &i }
func floatp(f float64) *float64 { return &f }

func TestRegisterHotel(t *testing.T) {
	catalog := memory.NewHotelCatalog()
	u := RegisterHotel{Hotels: catalog}
	ctx := context.Background()

	in := HotelInput{
		ID:             intp(5),
		Name:           "New Test Hotel",
		Rating:         floatp(4.2),
		Price:          intp(130),
		AvailableUntil: today.AddDays(15).String(),
		Available:      hotel.Bool(true),
	}
	h, err := u.Execute(ctx, in)
	require.NoError(t, err)
	assert.Equal(t, 5, h.ID)
	assert.Equal(t, 4.2, h.Rating)
	assert.Equal(t, today.AddDays(15), h.AvailableUntil)

	stored, err := catalog.GetByID(ctx, 5)
	require.NoError(t, err)
	assert.Equal(t, "New Test Hotel", stored.Name)
	assert.Empty(t, stored.Address)
	assert.Equal(t, 130, stored.Price)

	_, err = u.Execute(ctx, in)
	assert.ErrorIs(t, err, internaltypes.ErrConflict)
}

func TestRegisterHotelKeepsUnsetAvailability(t *testing.T) {
	u := RegisterHotel{Hotels: memory.NewHotelCatalog()}
	h, err := u.Execute(context.Background(), HotelInput{
		ID: intp(0), Name: "Zero", Rating: floatp(0), Price: intp(0), AvailableUntil: "01/31/2027",
	})
	require.NoError(t, err)
	assert.Nil(t, h.Available)
	assert.Equal(t, "2027-01-31", h.AvailableUntil.String())
}

func TestRegisterHotelValidation(t *testing.T) {
	u := RegisterHotel{Hotels: memory.NewHotelCatalog()}

	_, err := u.Execute(context.Background(), HotelInput{})
	assert.ErrorIs(t, err, internaltypes.ErrValidation)
	assert.Equal(t, []string{"available_until", "id", "name", "price", "rating"}, fieldNames(t, err))

	_, err = u.Execute(context.Background(), HotelInput{
		ID: intp(1), Name: "x", Rating: floatp(4.25), Price: intp(1), AvailableUntil: "tomorrow",
	})
	assert.ErrorIs(t, err, internaltypes.ErrInvalidDateFormat)
	assert.Equal(t, []string{"available_until", "rating"}, fieldNames(t, err))

	_, err = u.Execute(context.Background(), HotelInput{
		ID: intp(1), Name: "x", Rating: floatp(100), Price: intp(1), AvailableUntil: today.String(),
	})
	assert.Equal(t, []string{"rating"}, fieldNames(t, err))
}

func TestBrowseHotels(t *testing.T) {
	u := BrowseHotels{Hotels: seededCatalog(t)}
	ctx := context.Background()

	all, err := u.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 4)

	h, err := u.Get(ctx, 3)
	require.NoError(t, err)
	assert.Equal(t, "Test Hotel 3", h.Name)

	_, err = u.Get(ctx, 42)
	assert.ErrorIs(t, err, internaltypes.ErrNotFound)
}

func TestLookupReservations(t *testing.T) {
	submit, store := newSubmit()
	ctx := context.Background()
	first, err := submit.Execute(ctx, validInput())
	require.NoError(t, err)
	second, err := submit.Execute(ctx, validInput())
	require.NoError(t, err)
	require.NotEqual(t, first, second)

	u := LookupReservations{Store: store}
	rs, err := u.List(ctx)
	require.NoError(t, err)
	require.Len(t, rs, 2)
	assert.Equal(t, first, rs[0].ConfirmationNumber)
	assert.Equal(t, second, rs[1].ConfirmationNumber)

	_, err = u.Get(ctx, "missing")
	assert.ErrorIs(t, err, internaltypes.ErrNotFound)
}
