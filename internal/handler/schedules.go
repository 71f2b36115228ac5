package handler

import (
	"database/sql"
	"errors"
	"net/http"

	"github.com/julnac/salon-manager/backend/internal/domain"
	"github.com/julnac/salon-manager/backend/internal/utils"
)

func (h *Handler) GetStaffSchedules(w http.ResponseWriter, r *http.Request) {
	member := r.Context().Value(StaffCtx).(*domain.Staff)

	schedules, err := h.repository.GetWorkSchedulesByStaffID(r.Context(), member.ID)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "work schedules listed", schedules)
}

func (h *Handler) PutStaffSchedule(w http.ResponseWriter, r *http.Request) {
	var req struct {
		StartTime    string `json:"startTime" validate:"required,datetime=15:04:05"`
		EndTime      string `json:"endTime" validate:"required,datetime=15:04:05"`
		IsWorkingDay *bool  `json:"isWorkingDay" validate:"required"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	member := r.Context().Value(StaffCtx).(*domain.Staff)
	day := r.Context().Value(ScheduleDayCtx).(int32)

	ws := &domain.WorkSchedule{
		StaffID:      member.ID,
		DayOfWeek:    day,
		StartTime:    req.StartTime,
		EndTime:      req.EndTime,
		IsWorkingDay: *req.IsWorkingDay,
	}

	if err := utils.ValidateWorkSchedule(ws); err != nil {
		h.badRequest(w, r, err)
		return
	}

	if err := h.repository.UpsertWorkSchedule(r.Context(), ws); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.catalog.Invalidate(r.Context())
	h.successResponse(w, r, "work schedule saved", ws)
}

func (h *Handler) DeleteStaffSchedule(w http.ResponseWriter, r *http.Request) {
	member := r.Context().Value(StaffCtx).(*domain.Staff)
	day := r.Context().Value(ScheduleDayCtx).(int32)

	if err := h.repository.DeleteWorkSchedule(r.Context(), member.ID, day); err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.notFound(w, r, "no work schedule for this day")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.catalog.Invalidate(r.Context())
	h.successResponse(w, r, "work schedule deleted", nil)
}
