package handler

import (
	"net/http"

	"github.com/julnac/salon-manager/backend/internal/domain"
)

func (h *Handler) GetSalonInfo(w http.ResponseWriter, r *http.Request) {
	salon := h.config.Salon
	h.successResponse(w, r, "salon information", domain.SalonInfo{
		Name:                salon.Name,
		Address:             salon.Address,
		Phone:               salon.Phone,
		Email:               salon.Email,
		OpeningTime:         salon.OpeningTime,
		ClosingTime:         salon.ClosingTime,
		SlotDurationMinutes: salon.SlotDurationMinutes,
		Timezone:            h.config.SalonLocation().String(),
	})
}
