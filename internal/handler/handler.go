package handler

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
	"github.com/julnac/salon-manager/backend/internal/availability"
	"github.com/julnac/salon-manager/backend/internal/cache"
	"github.com/julnac/salon-manager/backend/internal/config"
	"github.com/julnac/salon-manager/backend/internal/domain"
	"github.com/julnac/salon-manager/backend/internal/repository"
)

type Handler struct {
	validate   *validator.Validate
	config     *config.Config
	repository *repository.Repository
	translator ut.Translator
	finder     *availability.Finder
	catalog    *cache.Store

	Mux *chi.Mux
}

// NewHandler wires the HTTP layer. catalog is the cache in front of the finder's store and is
// invalidated after every catalog mutation. It may be nil.
func NewHandler(cfg *config.Config, repo *repository.Repository, finder *availability.Finder, catalog *cache.Store) (*Handler, error) {
	validate := validator.New(validator.WithRequiredStructEnabled())
	en := en.New()
	uni := ut.New(en, en)
	trans, _ := uni.GetTranslator("en")
	if err := en_translations.RegisterDefaultTranslations(validate, trans); err != nil {
		return nil, err
	}
	if err := registerStrongPassword(validate, trans); err != nil {
		return nil, err
	}

	return &Handler{
		validate:   validate,
		config:     cfg,
		repository: repo,
		translator: trans,
		finder:     finder,
		catalog:    catalog,

		Mux: chi.NewRouter(),
	}, nil
}

func (h *Handler) RegisterRoutes() {
	h.Mux.Use(h.logger)
	h.Mux.Use(h.recoverer)

	adminOnly := h.RequiredRole([]domain.Role{domain.RoleAdmin})

	h.Mux.Route("/auth", func(r chi.Router) {
		r.Post("/register", h.Register)
		r.Post("/login", h.Login)
		r.Post("/logout", h.Logout)
	})

	h.Mux.Get("/salon", h.GetSalonInfo)

	h.Mux.Route("/services", func(r chi.Router) {
		r.Get("/", h.GetAllServiceOffers)
		r.With(h.auth, adminOnly).Post("/", h.CreateServiceOffer)
		r.Route("/{id}", func(r chi.Router) {
			r.Use(h.serviceOffer)
			r.Get("/", h.GetServiceOffer)
			r.With(h.auth, adminOnly).Patch("/", h.UpdateServiceOffer)
			r.With(h.auth, adminOnly).Delete("/", h.DeleteServiceOffer)
		})
	})

	h.Mux.Route("/staff", func(r chi.Router) {
		r.Get("/", h.GetAllStaff)
		r.With(h.auth, adminOnly).Post("/", h.CreateStaff)
		r.Route("/{id}", func(r chi.Router) {
			r.Use(h.staffMember)
			r.Get("/", h.GetStaff)
			r.With(h.auth, adminOnly).Patch("/", h.UpdateStaff)
			r.With(h.auth, adminOnly).Delete("/", h.DeleteStaff)

			r.Route("/qualifications", func(r chi.Router) {
				r.Get("/", h.GetStaffQualifications)
				r.With(h.auth, adminOnly).Post("/", h.AddStaffQualification)
				r.With(h.auth, adminOnly).Delete("/{serviceID}", h.RemoveStaffQualification)
			})

			r.Route("/schedules", func(r chi.Router) {
				r.Get("/", h.GetStaffSchedules)
				r.Route("/{day}", func(r chi.Router) {
					r.Use(h.auth, adminOnly, h.scheduleDay)
					r.Put("/", h.PutStaffSchedule)
					r.Delete("/", h.DeleteStaffSchedule)
				})
			})
		})
	})

	h.Mux.Route("/reviews", func(r chi.Router) {
		r.Get("/", h.GetAllReviews)
		r.With(h.auth).Post("/", h.CreateReview)
		r.Route("/{id}", func(r chi.Router) {
			r.Use(h.review)
			r.Get("/", h.GetReview)
			r.With(h.auth).Delete("/", h.DeleteReview)
		})
	})

	h.Mux.Route("/reservations", func(r chi.Router) {
		r.Get("/availability", h.GetAvailability)
		r.With(h.auth, adminOnly).Get("/", h.GetAllBookings)
	})
}
