package web

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"realestate-marketplace/internal/domain/model"
	"realestate-marketplace/internal/infra/logging"
	"realestate-marketplace/internal/infra/metrics"
	"realestate-marketplace/internal/usecase"
)

type Server struct {
	planUC        usecase.PlanLifecycleUseCase
	userUC        usecase.UserUseCase
	propertyUC    usecase.PropertyUseCase
	blogUC        usecase.BlogUseCase
	testimonialUC usecase.TestimonialUseCase
	statsUC       usecase.StatsUseCase
	catalog       model.Catalog
	auth          *AuthManager
	validate      *validator.Validate
	log           *zerolog.Logger
}

func NewServer(
	planUC usecase.PlanLifecycleUseCase,
	userUC usecase.UserUseCase,
	propertyUC usecase.PropertyUseCase,
	blogUC usecase.BlogUseCase,
	testimonialUC usecase.TestimonialUseCase,
	statsUC usecase.StatsUseCase,
	catalog model.Catalog,
	auth *AuthManager,
	logger *zerolog.Logger,
) *Server {
	l := logger.With().Str("component", "WebServer").Logger()
	return &Server{
		planUC:        planUC,
		userUC:        userUC,
		propertyUC:    propertyUC,
		blogUC:        blogUC,
		testimonialUC: testimonialUC,
		statsUC:       statsUC,
		catalog:       catalog,
		auth:          auth,
		validate:      validator.New(),
		log:           &l,
	}
}

// Routes builds the full router: public catalog/content endpoints, the
// authenticated payment and listing surface, and the ops endpoints.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(s.requestLogger)
	r.Use(metrics.HTTPMiddleware)

	r.Get("/health", s.handleHealth)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/auth/register", s.handleRegister)
		r.Post("/auth/login", s.handleLogin)

		r.Get("/plans", s.handlePlansList)

		r.Get("/properties", s.handlePropertyList)
		r.Get("/properties/{id}", s.handlePropertyGet)

		r.Get("/blog", s.handleBlogList)
		r.Get("/blog/{id}", s.handleBlogGet)
		r.Get("/testimonials", s.handleTestimonialList)

		// Everything below requires a session.
		r.Group(func(r chi.Router) {
			r.Use(s.auth.Middleware)

			r.Post("/payment/orders", s.handleCreateOrder)
			r.Post("/payment/confirm-purchase", s.handleConfirmPurchase)
			r.Post("/payment/renew", s.handleRenew)

			r.Post("/properties", s.handlePropertyCreate)
			r.Put("/properties/{id}", s.handlePropertyUpdate)
			r.Delete("/properties/{id}", s.handlePropertyDelete)

			r.Post("/blog", s.handleBlogPublish)
			r.Delete("/blog/{id}", s.handleBlogDelete)
			r.Post("/testimonials", s.handleTestimonialSubmit)

			r.Get("/me", s.handleMe)
			r.Get("/stats", s.handleStats)
		})
	})

	return r
}

// requestLogger threads the chi request id into the logging context and logs
// each request at debug level once it completes.
func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := logging.WithRequestID(r.Context(), middleware.GetReqID(r.Context()))
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		defer logging.TraceDuration(logging.With(ctx, s.log), r.Method+" "+r.URL.Path)()

		next.ServeHTTP(ww, r.WithContext(ctx))

		logging.With(ctx, s.log).Debug().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Msg("request handled")
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handlePlansList(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"data": s.catalog.Tiers()})
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	if resolveRole(r) != model.RoleAdmin {
		writeError(w, http.StatusForbidden, "Forbidden")
		return
	}
	users, byTier, err := s.statsUC.Totals(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"totalUsers":  users,
		"plansByTier": byTier,
	})
}

func (s *Server) handleMe(w http.ResponseWriter, r *http.Request) {
	user, err := s.userUC.FindByID(r.Context(), ResolveUserID(r))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	user.PasswordHash = ""
	writeJSON(w, http.StatusOK, user)
}
