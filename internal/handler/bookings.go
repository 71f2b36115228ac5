package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/julnac/salon-manager/backend/internal/repository"
)

func (h *Handler) GetAllBookings(w http.ResponseWriter, r *http.Request) {
	filter := repository.BookingFilter{}

	if v := r.URL.Query().Get("staffId"); v != "" {
		staffID, err := strconv.ParseInt(v, 10, 64)
		if err != nil || staffID <= 0 {
			h.errorResponse(w, r, http.StatusBadRequest, "invalid staffId")
			return
		}
		filter.StaffID = staffID
	}

	if v := r.URL.Query().Get("date"); v != "" {
		date, err := time.ParseInLocation(time.DateOnly, v, time.UTC)
		if err != nil {
			h.errorResponse(w, r, http.StatusBadRequest, "date must use the YYYY-MM-DD format")
			return
		}
		filter.Date = date
	}

	bookings, err := h.repository.GetBookings(r.Context(), filter)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "bookings listed", bookings)
}
