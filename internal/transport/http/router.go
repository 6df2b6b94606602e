package http

import (
	"net/http"

	"github.com/KaneTraylor/empowertreatment-sub000/internal/admin"
	"github.com/KaneTraylor/empowertreatment-sub000/internal/config"
	jwtinfra "github.com/KaneTraylor/empowertreatment-sub000/internal/infrastructure/jwt"
	"github.com/KaneTraylor/empowertreatment-sub000/internal/intake"
	"github.com/KaneTraylor/empowertreatment-sub000/internal/notify"
	"github.com/KaneTraylor/empowertreatment-sub000/internal/otp"
	"github.com/KaneTraylor/empowertreatment-sub000/internal/ratelimit"
	"github.com/KaneTraylor/empowertreatment-sub000/internal/transport/http/handler"
	appmiddleware "github.com/KaneTraylor/empowertreatment-sub000/internal/transport/http/middleware"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"golang.org/x/time/rate"
)

// Deps holds all infrastructure dependencies for the router.
type Deps struct {
	SubmissionRepo   SubmissionRepository
	PassRepo         PassRepository
	VerificationRepo VerificationRepository
	HandbookRepo     HandbookRepository
	ExportArchive    admin.ExportArchiver
	Mailer           notify.Mailer
	SMSSender        notify.SMSSender
	RateLimitStore   ratelimit.Store
	JWTProvider      *jwtinfra.Provider
}

// NewRouter builds and returns the application router.
func NewRouter(cfg *config.Config, deps *Deps) http.Handler {
	r := chi.NewRouter()
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.RequestID)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	var authMw func(http.Handler) http.Handler
	if deps.JWTProvider != nil {
		authMw = appmiddleware.Auth(deps.JWTProvider)
	} else {
		// Without keys the admin surface is closed, not open.
		authMw = func(http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				http.Error(w, `{"success":false,"message":"admin auth not configured"}`, http.StatusServiceUnavailable)
			})
		}
	}

	// 5 requests/second, burst of 10 — applied to the public form endpoints.
	sensitiveRL := appmiddleware.NewRateLimiter(rate.Limit(5), 10)

	dispatcher := notify.NewDispatcher(deps.Mailer, deps.SMSSender, cfg.DispatchTimeout)
	otpLimiter := ratelimit.NewLimiter(deps.RateLimitStore, cfg.OTPMaxAttempts, cfg.OTPWindow)
	otpLimiter.StartSweep(cfg.OTPWindow)

	otpSvc := otp.NewService(deps.VerificationRepo, otpLimiter, dispatcher, cfg.OTPCodeTTL)
	pipelineSvc := intake.NewService(deps.SubmissionRepo, deps.PassRepo, deps.HandbookRepo, dispatcher, intake.StaffDirectory{
		Emails: cfg.StaffEmails,
		Phones: cfg.StaffPhones,
	})
	adminSvc := admin.NewService(deps.SubmissionRepo, deps.PassRepo, deps.HandbookRepo, deps.ExportArchive)

	healthH := handler.NewHealthHandler()
	otpH := handler.NewOTPHandler(otpSvc)
	formsH := handler.NewFormsHandler(pipelineSvc)
	adminH := handler.NewAdminHandler(adminSvc)
	authH := handler.NewAuthHandler(deps.JWTProvider)

	r.Route("/v1", func(r chi.Router) {
		// ── Public routes (no auth) ──────────────────────────────────────────
		r.Get("/health-check/{action}", healthH.Ping)
		r.Post("/health-check/{action}", healthH.Ping)
		r.Get("/auth/verify", authH.Verify)
		r.With(sensitiveRL.Limit).Post("/otp/request", otpH.Request)
		r.With(sensitiveRL.Limit).Post("/otp/verify", otpH.Verify)
		r.With(sensitiveRL.Limit).Post("/forms/{formType}", formsH.Submit)

		// ── Admin routes ─────────────────────────────────────────────────────
		r.Group(func(r chi.Router) {
			r.Use(authMw)

			r.Get("/admin/submissions", adminH.Submissions)
			r.Get("/admin/weekend-passes", adminH.ListPasses)
			r.Post("/admin/weekend-passes", adminH.DecidePass)
			r.Get("/admin/handbook-acknowledgments", adminH.HandbookAcks)
		})
	})

	return r
}
