package handler

import (
	"database/sql"
	"errors"
	"net/http"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/julnac/salon-manager/backend/internal/domain"
)

func (h *Handler) GetAllStaff(w http.ResponseWriter, r *http.Request) {
	staff, err := h.repository.GetAllStaff(r.Context())
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "staff listed", staff)
}

func (h *Handler) GetStaff(w http.ResponseWriter, r *http.Request) {
	member := r.Context().Value(StaffCtx).(*domain.Staff)
	h.successResponse(w, r, "staff member found", member)
}

func (h *Handler) CreateStaff(w http.ResponseWriter, r *http.Request) {
	var req struct {
		FirstName string `json:"firstName" validate:"required,max=50"`
		LastName  string `json:"lastName" validate:"required,max=50"`
		Email     string `json:"email" validate:"required,email"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	member := &domain.Staff{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
	}

	if err := h.repository.CreateStaff(r.Context(), member); err != nil {
		var pgErr *pgconn.PgError
		switch {
		case errors.As(err, &pgErr) && pgErr.ConstraintName == "staff_email_key":
			h.conflict(w, r, "a staff member with this e-mail already exists")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.createdResponse(w, r, "staff member created", member)
}

func (h *Handler) UpdateStaff(w http.ResponseWriter, r *http.Request) {
	var req struct {
		FirstName *string `json:"firstName" validate:"omitempty,min=1,max=50"`
		LastName  *string `json:"lastName" validate:"omitempty,min=1,max=50"`
		Email     *string `json:"email" validate:"omitempty,email"`
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

	if req.FirstName != nil {
		member.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		member.LastName = *req.LastName
	}
	if req.Email != nil {
		member.Email = *req.Email
	}

	if err := h.repository.UpdateStaff(r.Context(), member); err != nil {
		var pgErr *pgconn.PgError
		switch {
		case errors.As(err, &pgErr) && pgErr.ConstraintName == "staff_email_key":
			h.conflict(w, r, "a staff member with this e-mail already exists")
		case errors.Is(err, sql.ErrNoRows):
			h.conflict(w, r, "the staff member was modified concurrently, please retry")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	// names and e-mails are cached with the qualified staff
	h.catalog.Invalidate(r.Context())
	h.successResponse(w, r, "staff member updated", member)
}

func (h *Handler) DeleteStaff(w http.ResponseWriter, r *http.Request) {
	member := r.Context().Value(StaffCtx).(*domain.Staff)

	if err := h.repository.DeleteStaff(r.Context(), member.ID); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.catalog.Invalidate(r.Context())
	h.successResponse(w, r, "staff member deleted", nil)
}
