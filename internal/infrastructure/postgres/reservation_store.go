package postgres

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/example/hotel-booking/internal/domain/calendar"
	"github.com/example/hotel-booking/internal/domain/reservation"
)

type ReservationStore struct{ pool *pgxpool.Pool }

func NewReservationStore(pool *pgxpool.Pool) *ReservationStore {
	return &ReservationStore{pool: pool}
}

// Insert writes the reservation header and copies its guests in one
// transaction; any failure rolls both back.
func (s *ReservationStore) Insert(ctx context.Context, r reservation.Reservation) error {
	err := pgx.BeginFunc(ctx, s.pool, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `
			INSERT INTO reservations (confirmation_number, hotel_name, checkin, checkout, created_at)
			VALUES ($1, $2, $3, $4, $5)`,
			r.ConfirmationNumber, r.HotelName, r.Checkin.Time(), r.Checkout.Time(), r.CreatedAt,
		); err != nil {
			return err
		}

		_, err := tx.CopyFrom(ctx,
			pgx.Identifier{"guests"},
			[]string{"confirmation_number", "guest_name", "gender"},
			pgx.CopyFromSlice(len(r.Guests), func(i int) ([]any, error) {
				return []any{r.ConfirmationNumber, r.Guests[i].Name, r.Guests[i].Gender}, nil
			}),
		)
		return err
	})
	return classify("insert reservation", err)
}

func (s *ReservationStore) Get(ctx context.Context, confirmationNumber string) (reservation.Reservation, error) {
	var (
		r                 reservation.Reservation
		checkin, checkout time.Time
	)
	err := s.pool.QueryRow(ctx, `
		SELECT confirmation_number, hotel_name, checkin, checkout, created_at
		FROM reservations WHERE confirmation_number=$1`, confirmationNumber,
	).Scan(&r.ConfirmationNumber, &r.HotelName, &checkin, &checkout, &r.CreatedAt)
	if err != nil {
		return reservation.Reservation{}, classify("get reservation", err)
	}
	r.Checkin, r.Checkout = calendar.FromTime(checkin), calendar.FromTime(checkout)

	guests, err := s.guestsFor(ctx, []string{r.ConfirmationNumber})
	if err != nil {
		return reservation.Reservation{}, err
	}
	r.Guests = guests[r.ConfirmationNumber]
	return r, nil
}

func (s *ReservationStore) List(ctx context.Context) ([]reservation.Reservation, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT confirmation_number, hotel_name, checkin, checkout, created_at
		FROM reservations
		ORDER BY created_at, confirmation_number`)
	if err != nil {
		return nil, classify("list reservations", err)
	}
	defer rows.Close()

	out := []reservation.Reservation{}
	var numbers []string
	for rows.Next() {
		var (
			r                 reservation.Reservation
			checkin, checkout time.Time
		)
		if err := rows.Scan(&r.ConfirmationNumber, &r.HotelName, &checkin, &checkout, &r.CreatedAt); err != nil {
			return nil, classify("list reservations", err)
		}
		r.Checkin, r.Checkout = calendar.FromTime(checkin), calendar.FromTime(checkout)
		out = append(out, r)
		numbers = append(numbers, r.ConfirmationNumber)
	}
	if err := rows.Err(); err != nil {
		return nil, classify("list reservations", err)
	}
	if len(out) == 0 {
		return out, nil
	}

	guests, err := s.guestsFor(ctx, numbers)
	if err != nil {
		return nil, err
	}
	for i := range out {
		out[i].Guests = guests[out[i].ConfirmationNumber]
	}
	return out, nil
}

func (s *ReservationStore) guestsFor(ctx context.Context, numbers []string) (map[string][]reservation.Guest, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT confirmation_number, guest_name, gender
		FROM guests
		WHERE confirmation_number = ANY($1)
		ORDER BY id`, numbers)
	if err != nil {
		return nil, classify("list guests", err)
	}
	defer rows.Close()

	out := make(map[string][]reservation.Guest, len(numbers))
	for rows.Next() {
		var (
			number string
			g      reservation.Guest
		)
		if err := rows.Scan(&number, &g.Name, &g.Gender); err != nil {
			return nil, classify("list guests", err)
		}
		out[number] = append(out[number], g)
	}
	if err := rows.Err(); err != nil {
		return nil, classify("list guests", err)
	}
	return out, nil
}
