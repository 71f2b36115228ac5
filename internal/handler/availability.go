package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/julnac/salon-manager/backend/internal/availability"
)

// slotLayout is how start times are presented to clients.
const slotLayout = "15:04"

type staffAvailabilityResponse struct {
	StaffID        int64    `json:"staffId"`
	FirstName      string   `json:"firstName"`
	LastName       string   `json:"lastName"`
	Email          string   `json:"email"`
	AvailableSlots []string `json:"availableSlots"`
}

type availabilityResponse struct {
	Date                 string                      `json:"date"`
	TotalDurationMinutes int                         `json:"totalDurationMinutes"`
	Staff                []staffAvailabilityResponse `json:"staff"`
}

func newAvailabilityResponse(result *availability.Result) *availabilityResponse {
	resp := &availabilityResponse{
		Date:                 result.Date.Format(time.DateOnly),
		TotalDurationMinutes: result.TotalDurationMinutes,
		Staff:                make([]staffAvailabilityResponse, 0, len(result.Staff)),
	}

	for _, s := range result.Staff {
		slots := make([]string, 0, len(s.Slots))
		for _, slot := range s.Slots {
			slots = append(slots, slot.Format(slotLayout))
		}
		resp.Staff = append(resp.Staff, staffAvailabilityResponse{
			StaffID:        s.StaffID,
			FirstName:      s.FirstName,
			LastName:       s.LastName,
			Email:          s.Email,
			AvailableSlots: slots,
		})
	}

	return resp
}

// parseIDList accepts both serviceIds=1,2 and serviceIds=1&serviceIds=2.
func parseIDList(values []string) ([]int64, error) {
	ids := make([]int64, 0, len(values))
	for _, value := range values {
		for _, part := range strings.Split(value, ",") {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			id, err := strconv.ParseInt(part, 10, 64)
			if err != nil {
				return nil, fmt.Errorf("invalid service id %q", part)
			}
			ids = append(ids, id)
		}
	}
	return ids, nil
}

func (h *Handler) GetAvailability(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Date       string  `validate:"required,datetime=2006-01-02"`
		ServiceIDs []int64 `validate:"required,min=1,dive,gt=0"`
	}

	query := r.URL.Query()
	req.Date = query.Get("date")

	ids, err := parseIDList(query["serviceIds"])
	if err != nil {
		h.badRequest(w, r, err)
		return
	}
	req.ServiceIDs = ids

	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	// validated above
	date, _ := time.ParseInLocation(time.DateOnly, req.Date, time.UTC)

	result, err := h.finder.FindAvailableSlots(r.Context(), date, req.ServiceIDs)
	if err != nil {
		switch {
		case errors.Is(err, availability.ErrInvalidRequest):
			h.badRequest(w, r, err)
		case errors.Is(err, availability.ErrServiceNotFound):
			h.notFound(w, r, err.Error())
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "available slots", newAvailabilityResponse(result))
}
