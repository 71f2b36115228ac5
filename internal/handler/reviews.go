package handler

import (
	"database/sql"
	"errors"
	"net/http"
	"strconv"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/julnac/salon-manager/backend/internal/domain"
)

func (h *Handler) GetAllReviews(w http.ResponseWriter, r *http.Request) {
	reviews, err := h.repository.GetAllReviews(r.Context())
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "reviews listed", reviews)
}

func (h *Handler) GetReview(w http.ResponseWriter, r *http.Request) {
	review := r.Context().Value(ReviewCtx).(*domain.Review)
	h.successResponse(w, r, "review found", review)
}

// CreateReview posts a review as the logged-in user.
func (h *Handler) CreateReview(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Content string `json:"content" validate:"required,max=2000"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	sub, _ := r.Context().Value(SubCtxKey).(string)
	userID, err := strconv.ParseInt(sub, 10, 64)
	if err != nil {
		h.errorResponse(w, r, http.StatusUnauthorized, "invalid token")
		return
	}

	review := &domain.Review{
		Content: req.Content,
		UserID:  userID,
	}

	if err := h.repository.CreateReview(r.Context(), review); err != nil {
		var pgErr *pgconn.PgError
		switch {
		case errors.As(err, &pgErr) && pgErr.ConstraintName == "reviews_user_id_fkey":
			h.notFound(w, r, "user not found")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.createdResponse(w, r, "review created", review)
}

// DeleteReview is allowed to admins and to the author of the review.
func (h *Handler) DeleteReview(w http.ResponseWriter, r *http.Request) {
	review := r.Context().Value(ReviewCtx).(*domain.Review)

	role, _ := r.Context().Value(RoleCtxKey).(string)
	sub, _ := r.Context().Value(SubCtxKey).(string)
	if domain.Role(role) != domain.RoleAdmin && sub != strconv.FormatInt(review.UserID, 10) {
		h.errorResponse(w, r, http.StatusForbidden, "insufficient permissions")
		return
	}

	if err := h.repository.DeleteReview(r.Context(), review.ID); err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.notFound(w, r, "review not found")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "review deleted", nil)
}
