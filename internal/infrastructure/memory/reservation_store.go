package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/example/hotel-booking/internal/domain/reservation"
	"github.com/example/hotel-booking/internal/internaltypes"
)

type ReservationStore struct {
	mu           sync.RWMutex
	reservations map[string]reservation.Reservation
	seq          map[string]int
	next         int
}

func NewReservationStore() *ReservationStore {
	return &ReservationStore{
		reservations: make(map[string]reservation.Reservation),
		seq:          make(map[string]int),
	}
}

// Insert stores the reservation and its guests under one lock hold.
func (s *ReservationStore) Insert(ctx context.Context, r reservation.Reservation) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("insert reservation: %w: %v", internaltypes.ErrStorageUnavailable, err)
	}
	r = cloneReservation(r)

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.reservations[r.ConfirmationNumber]; ok {
		return fmt.Errorf("insert reservation %s: %w", r.ConfirmationNumber, internaltypes.ErrConflict)
	}
	s.reservations[r.ConfirmationNumber] = r
	s.seq[r.ConfirmationNumber] = s.next
	s.next++
	return nil
}

func (s *ReservationStore) Get(ctx context.Context, confirmationNumber string) (reservation.Reservation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.reservations[confirmationNumber]
	if !ok {
		return reservation.Reservation{}, fmt.Errorf("reservation %s: %w", confirmationNumber, internaltypes.ErrNotFound)
	}
	return cloneReservation(r), nil
}

func (s *ReservationStore) List(ctx context.Context) ([]reservation.Reservation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]reservation.Reservation, 0, len(s.reservations))
	for _, r := range s.reservations {
		out = append(out, cloneReservation(r))
	}
	sort.Slice(out, func(i, j int) bool {
		return s.seq[out[i].ConfirmationNumber] < s.seq[out[j].ConfirmationNumber]
	})
	return out, nil
}

// GuestCount is the number of guest records across all reservations.
func (s *ReservationStore) GuestCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	n := 0
	for _, r := range s.reservations {
		n += len(r.Guests)
	}
	return n
}

func cloneReservation(r reservation.Reservation) reservation.Reservation {
	r.Guests = append([]reservation.Guest(nil), r.Guests...)
	return r
}
