package usecases

import (
	"context"
	"fmt"
	"strings"

	"github.com/example/hotel-booking/internal/domain/hotel"
	"github.com/example/hotel-booking/internal/internaltypes"
)

type QueryAvailability struct {
	Hotels hotel.Catalog
}

// Execute lists hotels open through checkout. checkin is required but does
// not take part in filtering; existing callers depend on that.
func (u QueryAvailability) Execute(ctx context.Context, checkin, checkout string) ([]hotel.Hotel, error) {
	if u.Hotels == nil {
		return nil, fmt.Errorf("hotel catalog is nil")
	}
	checkin, checkout = strings.TrimSpace(checkin), strings.TrimSpace(checkout)

	var errs internaltypes.FieldErrors
	for _, p := range []struct{ name, value string }{{"checkin", checkin}, {"checkout", checkout}} {
		if p.value == "" {
			errs = append(errs, internaltypes.FieldError{
				Field:  p.name,
				Reason: "query parameter is required",
				Err:    internaltypes.ErrMissingParameter,
			})
		}
	}
	if err := errs.OrNil(); err != nil {
		return nil, err
	}

	through, ferr := normalizeField("checkout", checkout, nil)
	if ferr != nil {
		return nil, internaltypes.FieldErrors{*ferr}
	}

	hotels, err := u.Hotels.FindAvailableThrough(ctx, through)
	if err != nil {
		return nil, fmt.Errorf("find available hotels: %w", err)
	}
	return hotels, nil
}
