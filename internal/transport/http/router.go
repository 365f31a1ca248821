package http

import (
	"net/http"

	"github.com/egotransfert/auth-api/internal/application/auth"
	"github.com/egotransfert/auth-api/internal/application/user"
	"github.com/egotransfert/auth-api/internal/config"
	jwtinfra "github.com/egotransfert/auth-api/internal/infrastructure/jwt"
	"github.com/egotransfert/auth-api/internal/infrastructure/smtp"
	"github.com/egotransfert/auth-api/internal/infrastructure/sns"
	"github.com/egotransfert/auth-api/internal/transport/http/handler"
	appmiddleware "github.com/egotransfert/auth-api/internal/transport/http/middleware"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"golang.org/x/time/rate"
)

// Deps holds all infrastructure dependencies for the router. Everything is an
// interface so tests can swap in doubles without touching DynamoDB or AWS.
type Deps struct {
	UserRepo    UserRepository
	OTPRepo     OTPRepository
	RefreshRepo RefreshTokenRepository
	TxRepo      TxRepository
	PhotoStore  PhotoStore
	Mailer      smtp.Mailer
	SMSSender   sns.SMSSender
	JWTProvider *jwtinfra.Provider
}

// NewRouter builds and returns the application router.
func NewRouter(cfg *config.Config, deps *Deps) http.Handler {
	r := chi.NewRouter()
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.RequestID)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	authMw := appmiddleware.Auth(deps.JWTProvider)

	// 5 requests/second, burst of 10 — applied to sensitive public endpoints.
	sensitiveRL := appmiddleware.NewRateLimiter(rate.Limit(5), 10)

	authSvc := auth.NewService(auth.ServiceDeps{
		UserRepo:     deps.UserRepo,
		OTPRepo:      deps.OTPRepo,
		TxRepo:       deps.TxRepo,
		RefreshRepo:  deps.RefreshRepo,
		Mailer:       deps.Mailer,
		SMSSender:    deps.SMSSender,
		Tokens:       deps.JWTProvider,
		OTPTTL:       cfg.OTPTTL,
		ResetURLBase: cfg.ResetURLBase,
	})
	userSvc := user.NewService(user.ServiceDeps{
		UserRepo:    deps.UserRepo,
		RefreshRepo: deps.RefreshRepo,
		Photos:      deps.PhotoStore,
	})

	healthH := handler.NewHealthHandler()
	authH := handler.NewAuthHandler(authSvc)
	userH := handler.NewUserHandler(userSvc)
	superadminH := handler.NewSuperAdminHandler(authSvc)

	r.Get("/health-check", healthH.Ping)

	r.Route("/api/v1/users", func(r chi.Router) {
		// ── Public routes (no auth) ──────────────────────────────────────────
		r.With(sensitiveRL.Limit).Post("/register", authH.Register)
		r.With(sensitiveRL.Limit).Post("/verify-otp", authH.VerifyOTP)
		r.With(sensitiveRL.Limit).Post("/resend-otp", authH.ResendOTP)
		r.With(sensitiveRL.Limit).Post("/login", authH.Login)
		r.With(sensitiveRL.Limit).Post("/request-reset-password", authH.RequestResetPassword)
		r.With(sensitiveRL.Limit).Post("/reset-password", authH.ResetPassword)
		r.With(sensitiveRL.Limit).Post("/ad-login", superadminH.Login)

		// ── Authenticated routes ─────────────────────────────────────────────
		r.Group(func(r chi.Router) {
			r.Use(authMw)

			r.Get("/profile", userH.Profile)
			r.Get("/all", userH.List)
			r.Put("/update", userH.Update)
			r.Put("/update-password", userH.UpdatePassword)
			r.Put("/photo-profile", userH.PhotoProfile)
			r.Delete("/delete", userH.Delete)
			r.Post("/logout", userH.Logout)

			// Superadmin-only routes
			r.Group(func(r chi.Router) {
				r.Use(appmiddleware.RequireSuperAdmin)

				r.Post("/superadmin", superadminH.Gate)
				r.Post("/superadmin/create-admin", superadminH.CreateAdmin)
			})
		})
	})

	return r
}
