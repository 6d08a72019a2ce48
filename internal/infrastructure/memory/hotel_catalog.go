package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/example/hotel-booking/internal/domain/calendar"
	"github.com/example/hotel-booking/internal/domain/hotel"
	"github.com/example/hotel-booking/internal/internaltypes"
)

// HotelCatalog keeps hotels in process memory. Used by tests and by
// `serve --store=memory`.
type HotelCatalog struct {
	mu     sync.RWMutex
	hotels map[int]hotel.Hotel
}

func NewHotelCatalog() *HotelCatalog {
	return &HotelCatalog{hotels: make(map[int]hotel.Hotel)}
}

func (c *HotelCatalog) ListAll(ctx context.Context) ([]hotel.Hotel, error) {
	return c.filter(func(hotel.Hotel) bool { return true }), nil
}

func (c *HotelCatalog) Insert(ctx context.Context, h hotel.Hotel) (hotel.Hotel, error) {
	h = clone(h)

	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.hotels[h.ID]; ok {
		return hotel.Hotel{}, fmt.Errorf("insert hotel %d: %w", h.ID, internaltypes.ErrConflict)
	}
	c.hotels[h.ID] = h
	return clone(h), nil
}

func (c *HotelCatalog) GetByID(ctx context.Context, id int) (hotel.Hotel, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	h, ok := c.hotels[id]
	if !ok {
		return hotel.Hotel{}, fmt.Errorf("hotel %d: %w", id, internaltypes.ErrNotFound)
	}
	return clone(h), nil
}

func (c *HotelCatalog) FindAvailableThrough(ctx context.Context, d calendar.Date) ([]hotel.Hotel, error) {
	return c.filter(func(h hotel.Hotel) bool { return h.AvailableThrough(d) }), nil
}

// filter returns matches ordered by id so listings are stable.
func (c *HotelCatalog) filter(keep func(hotel.Hotel) bool) []hotel.Hotel {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]hotel.Hotel, 0, len(c.hotels))
	for _, h := range c.hotels {
		if keep(h) {
			out = append(out, clone(h))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func clone(h hotel.Hotel) hotel.Hotel {
	if h.Available != nil {
		h.Available = hotel.Bool(*h.Available)
	}
	return h
}
