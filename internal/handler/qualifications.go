package handler

import (
	"database/sql"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/julnac/salon-manager/backend/internal/domain"
)

func (h *Handler) GetStaffQualifications(w http.ResponseWriter, r *http.Request) {
	member := r.Context().Value(StaffCtx).(*domain.Staff)

	quals, err := h.repository.GetQualificationsByStaffID(r.Context(), member.ID)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "qualifications listed", quals)
}

func (h *Handler) AddStaffQualification(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ServiceID       int64 `json:"serviceId" validate:"required,gt=0"`
		ExperienceYears int32 `json:"experienceYears" validate:"gte=0,lte=80"`
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

	q := &domain.Qualification{
		StaffID:         member.ID,
		StaffName:       member.FullName(),
		ServiceID:       req.ServiceID,
		ExperienceYears: req.ExperienceYears,
	}

	if err := h.repository.CreateQualification(r.Context(), q); err != nil {
		var pgErr *pgconn.PgError
		switch {
		case errors.As(err, &pgErr) && pgErr.ConstraintName == "staff_qualifications_staff_service_key":
			h.conflict(w, r, "the staff member already has this qualification")
		case errors.As(err, &pgErr) && pgErr.ConstraintName == "staff_qualifications_service_offer_id_fkey":
			h.notFound(w, r, "service not found")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.catalog.Invalidate(r.Context())
	h.createdResponse(w, r, "qualification added", q)
}

func (h *Handler) RemoveStaffQualification(w http.ResponseWriter, r *http.Request) {
	serviceID, err := strconv.ParseInt(chi.URLParam(r, "serviceID"), 10, 64)
	if err != nil || serviceID <= 0 {
		h.errorResponse(w, r, http.StatusBadRequest, "invalid service id")
		return
	}

	member := r.Context().Value(StaffCtx).(*domain.Staff)

	if err := h.repository.DeleteQualification(r.Context(), member.ID, serviceID); err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.notFound(w, r, "qualification not found")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.catalog.Invalidate(r.Context())
	h.successResponse(w, r, "qualification removed", nil)
}
