package hotel

import (
	"context"

	"github.com/example/hotel-booking/internal/domain/calendar"
)

type Hotel struct {
	ID             int           `json:"id"`
	Name           string        `json:"name"`
	Address        string        `json:"address"`
	Rating         float64       `json:"rating"`
	Price          int           `json:"price"`
	AvailableUntil calendar.Date `json:"available_until"`
	// Available is tri-state; nil means the flag was never set.
	Available *bool `json:"available"`
}

// AvailableThrough reports whether the hotel accepts stays through d.
// Only the stored fields matter; the wall clock plays no part.
func (h Hotel) AvailableThrough(d calendar.Date) bool {
	if h.Available == nil || !*h.Available {
		return false
	}
	return !h.AvailableUntil.Before(d)
}

// Catalog is the hotel inventory.
type Catalog interface {
	ListAll(ctx context.Context) ([]Hotel, error)
	// Insert fails with internaltypes.ErrConflict when the id is taken.
	Insert(ctx context.Context, h Hotel) (Hotel, error)
	// GetByID fails with internaltypes.ErrNotFound.
	GetByID(ctx context.Context, id int) (Hotel, error)
	FindAvailableThrough(ctx context.Context, d calendar.Date) ([]Hotel, error)
}

func Bool(b bool) *bool { return &b }
