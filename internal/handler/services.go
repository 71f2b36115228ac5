package handler

import (
	"database/sql"
	"errors"
	"net/http"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/julnac/salon-manager/backend/internal/domain"
)

func (h *Handler) GetAllServiceOffers(w http.ResponseWriter, r *http.Request) {
	services, err := h.repository.GetAllServiceOffers(r.Context())
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "services listed", services)
}

func (h *Handler) GetServiceOffer(w http.ResponseWriter, r *http.Request) {
	svc := r.Context().Value(ServiceOfferCtx).(*domain.ServiceOffer)
	h.successResponse(w, r, "service found", svc)
}

func (h *Handler) CreateServiceOffer(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name            string  `json:"name" validate:"required,max=100"`
		Price           float64 `json:"price" validate:"gte=0"`
		DurationMinutes int32   `json:"durationMinutes" validate:"required,gt=0,lte=600"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	svc := &domain.ServiceOffer{
		Name:            req.Name,
		Price:           req.Price,
		DurationMinutes: req.DurationMinutes,
	}

	if err := h.repository.CreateServiceOffer(r.Context(), svc); err != nil {
		var pgErr *pgconn.PgError
		switch {
		case errors.As(err, &pgErr) && pgErr.ConstraintName == "service_offers_name_key":
			h.conflict(w, r, "a service with this name already exists")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.catalog.Invalidate(r.Context())
	h.createdResponse(w, r, "service created", svc)
}

func (h *Handler) UpdateServiceOffer(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name            *string  `json:"name" validate:"omitempty,min=1,max=100"`
		Price           *float64 `json:"price" validate:"omitempty,gte=0"`
		DurationMinutes *int32   `json:"durationMinutes" validate:"omitempty,gt=0,lte=600"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	svc := r.Context().Value(ServiceOfferCtx).(*domain.ServiceOffer)

	if req.Name != nil {
		svc.Name = *req.Name
	}
	if req.Price != nil {
		svc.Price = *req.Price
	}
	if req.DurationMinutes != nil {
		svc.DurationMinutes = *req.DurationMinutes
	}

	if err := h.repository.UpdateServiceOffer(r.Context(), svc); err != nil {
		var pgErr *pgconn.PgError
		switch {
		case errors.As(err, &pgErr) && pgErr.ConstraintName == "service_offers_name_key":
			h.conflict(w, r, "a service with this name already exists")
		case errors.Is(err, sql.ErrNoRows):
			h.conflict(w, r, "the service was modified concurrently, please retry")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.catalog.Invalidate(r.Context())
	h.successResponse(w, r, "service updated", svc)
}

func (h *Handler) DeleteServiceOffer(w http.ResponseWriter, r *http.Request) {
	svc := r.Context().Value(ServiceOfferCtx).(*domain.ServiceOffer)

	if err := h.repository.DeleteServiceOffer(r.Context(), svc.ID); err != nil {
		var pgErr *pgconn.PgError
		switch {
		case errors.As(err, &pgErr) && pgErr.ConstraintName == "booking_services_service_offer_id_fkey":
			h.conflict(w, r, "the service is part of existing bookings")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.catalog.Invalidate(r.Context())
	h.successResponse(w, r, "service deleted", nil)
}
