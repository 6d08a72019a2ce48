package web

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/example/hotel-booking/internal/application/usecases"
	"github.com/example/hotel-booking/internal/infrastructure/metrics"
	"github.com/example/hotel-booking/internal/internaltypes"
)

type errorBody struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields,omitempty"`
}

type confirmationBody struct {
	ConfirmationNumber string `json:"confirmation_number"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeErr maps an error onto a status code. notFound overrides the 404
// message for resources with a fixed wording.
func (s *Server) writeErr(w http.ResponseWriter, r *http.Request, err error, notFound string) {
	var fields internaltypes.FieldErrors
	switch {
	case errors.As(err, &fields):
		writeJSON(w, http.StatusBadRequest, errorBody{Error: "validation failed", Fields: fields.Fields()})
	case errors.Is(err, internaltypes.ErrValidation):
		writeJSON(w, http.StatusBadRequest, errorBody{Error: err.Error()})
	case errors.Is(err, internaltypes.ErrNotFound):
		writeJSON(w, http.StatusNotFound, errorBody{Error: notFound})
	case errors.Is(err, internaltypes.ErrConflict):
		writeJSON(w, http.StatusConflict, errorBody{Error: "already exists"})
	case errors.Is(err, internaltypes.ErrStorageUnavailable):
		s.log().WithError(err).WithField("path", r.URL.Path).Error("storage failure")
		writeJSON(w, http.StatusServiceUnavailable, errorBody{Error: "storage unavailable"})
	default:
		s.log().WithError(err).WithField("path", r.URL.Path).Error("unhandled error")
		writeJSON(w, http.StatusInternalServerError, errorBody{Error: "internal error"})
	}
}

func decodeBody(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return internaltypes.FieldErrors{{Field: "body", Reason: "invalid JSON: " + err.Error(), Err: internaltypes.ErrValidation}}
	}
	return nil
}

func (s *Server) handleListHotels(w http.ResponseWriter, r *http.Request) {
	hs, err := usecases.BrowseHotels{Hotels: s.Hotels}.List(r.Context())
	if err != nil {
		s.writeErr(w, r, err, "")
		return
	}
	writeJSON(w, http.StatusOK, hs)
}

func (s *Server) handleCreateHotel(w http.ResponseWriter, r *http.Request) {
	var in usecases.HotelInput
	if err := decodeBody(r, &in); err != nil {
		s.writeErr(w, r, err, "")
		return
	}
	h, err := usecases.RegisterHotel{Hotels: s.Hotels}.Execute(r.Context(), in)
	if err != nil {
		s.writeErr(w, r, err, "")
		return
	}
	metrics.HotelsRegistered.Inc()
	writeJSON(w, http.StatusCreated, h)
}

func (s *Server) handleGetHotel(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		writeJSON(w, http.StatusNotFound, errorBody{Error: "Hotel not found"})
		return
	}
	h, err := usecases.BrowseHotels{Hotels: s.Hotels}.Get(r.Context(), id)
	if err != nil {
		s.writeErr(w, r, err, "Hotel not found")
		return
	}
	writeJSON(w, http.StatusOK, h)
}

func (s *Server) handleAvailableHotels(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	hs, err := usecases.QueryAvailability{Hotels: s.Hotels}.Execute(r.Context(), q.Get("checkin"), q.Get("checkout"))
	if err != nil {
		s.writeErr(w, r, err, "")
		return
	}
	writeJSON(w, http.StatusOK, hs)
}

func (s *Server) handleReservationConfirmation(w http.ResponseWriter, r *http.Request) {
	var in usecases.ReservationInput
	if err := decodeBody(r, &in); err != nil {
		s.writeErr(w, r, err, "")
		return
	}
	number, err := s.submitReservation().Execute(r.Context(), in)
	if err != nil {
		s.writeErr(w, r, err, "")
		return
	}
	metrics.ReservationsCreated.Inc()
	s.log().WithField("confirmation_number", number).Info("reservation created")
	writeJSON(w, http.StatusCreated, confirmationBody{ConfirmationNumber: number})
}

func (s *Server) handleListReservations(w http.ResponseWriter, r *http.Request) {
	rs, err := usecases.LookupReservations{Store: s.Reservations}.List(r.Context())
	if err != nil {
		s.writeErr(w, r, err, "")
		return
	}
	writeJSON(w, http.StatusOK, rs)
}

func (s *Server) handleGetReservation(w http.ResponseWriter, r *http.Request) {
	number := mux.Vars(r)["confirmation_number"]
	res, err := usecases.LookupReservations{Store: s.Reservations}.Get(r.Context(), number)
	if err != nil {
		s.writeErr(w, r, err, "Reservation not found")
		return
	}
	writeJSON(w, http.StatusOK, res)
}
