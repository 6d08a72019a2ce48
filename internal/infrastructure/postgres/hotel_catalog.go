package postgres

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/example/hotel-booking/internal/domain/calendar"
	"github.com/example/hotel-booking/internal/domain/hotel"
)

const hotelColumns = `id, name, address, rating::float8, price, available_until, available`

type HotelCatalog struct{ pool *pgxpool.Pool }

func NewHotelCatalog(pool *pgxpool.Pool) *HotelCatalog { return &HotelCatalog{pool: pool} }

func (c *HotelCatalog) ListAll(ctx context.Context) ([]hotel.Hotel, error) {
	rows, err := c.pool.Query(ctx, `SELECT `+hotelColumns+` FROM hotels ORDER BY id`)
	if err != nil {
		return nil, classify("list hotels", err)
	}
	return collectHotels("list hotels", rows)
}

func (c *HotelCatalog) Insert(ctx context.Context, h hotel.Hotel) (hotel.Hotel, error) {
	row := c.pool.QueryRow(ctx, `
		INSERT INTO hotels (id, name, address, rating, price, available_until, available)
		VALUES ($1, $2, $3, $4::float8, $5, $6, $7)
		RETURNING `+hotelColumns,
		h.ID, h.Name, h.Address, h.Rating, h.Price, h.AvailableUntil.Time(), h.Available,
	)
	out, err := scanHotel(row)
	if err != nil {
		return hotel.Hotel{}, classify("insert hotel", err)
	}
	return out, nil
}

func (c *HotelCatalog) GetByID(ctx context.Context, id int) (hotel.Hotel, error) {
	row := c.pool.QueryRow(ctx, `SELECT `+hotelColumns+` FROM hotels WHERE id=$1`, id)
	h, err := scanHotel(row)
	if err != nil {
		return hotel.Hotel{}, classify("get hotel", err)
	}
	return h, nil
}

// FindAvailableThrough must agree with hotel.Hotel.AvailableThrough.
func (c *HotelCatalog) FindAvailableThrough(ctx context.Context, d calendar.Date) ([]hotel.Hotel, error) {
	rows, err := c.pool.Query(ctx, `
		SELECT `+hotelColumns+`
		FROM hotels
		WHERE available IS TRUE AND available_until >= $1
		ORDER BY id`, d.Time())
	if err != nil {
		return nil, classify("find available hotels", err)
	}
	return collectHotels("find available hotels", rows)
}

func scanHotel(row pgx.Row) (hotel.Hotel, error) {
	var (
		h     hotel.Hotel
		until time.Time
	)
	if err := row.Scan(&h.ID, &h.Name, &h.Address, &h.Rating, &h.Price, &until, &h.Available); err != nil {
		return hotel.Hotel{}, err
	}
	h.AvailableUntil = calendar.FromTime(until)
	return h, nil
}

func collectHotels(op string, rows pgx.Rows) ([]hotel.Hotel, error) {
	defer rows.Close()
	out := []hotel.Hotel{}
	for rows.Next() {
		h, err := scanHotel(rows)
		if err != nil {
			return nil, classify(op, err)
		}
		out = append(out, h)
	}
	if err := rows.Err(); err != nil {
		return nil, classify(op, err)
	}
	return out, nil
}
