package httpapi

import (
	"net/http"
	"time"

	"gym-backend-go/internal/config"
	"gym-backend-go/internal/services"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/jmoiron/sqlx"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Server struct {
	DB       *sqlx.DB
	Config   config.Config
	Tokens   services.TokenService
	Sessions *services.SessionStore
}

func NewServer(db *sqlx.DB, cfg config.Config) *Server {
	tokens := services.TokenService{
		Secret: []byte(cfg.SessionSecret),
		Issuer: cfg.SessionIssuer,
		TTL:    time.Duration(cfg.SessionTTLSeconds) * time.Second,
	}
	return &Server{
		DB:       db,
		Config:   cfg,
		Tokens:   tokens,
		Sessions: services.NewSessionStore(db, tokens),
	}
}

func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(RequestLogger)
	r.Use(Prometheus)
	r.Use(middleware.Recoverer)
	if len(s.Config.CorsOrigins) > 0 {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins:   s.Config.CorsOrigins,
			AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Content-Type"},
			AllowCredentials: true,
			MaxAge:           300,
		}))
	}

	r.Get("/", s.Index)
	r.Get("/login", s.LoginForm)
	r.Post("/login", s.Login)
	r.Handle("/metrics", promhttp.Handler())

	r.Group(func(authed chi.Router) {
		authed.Use(WithSession(s.Sessions))
		authed.Get("/logout", s.Logout)

		authed.With(RequireRole(services.RoleAdmin)).Get("/admin_dashboard", s.AdminDashboard)
		authed.With(RequireRole(services.RoleUser)).Get("/user_dashboard", s.UserDashboard)
		authed.With(RequireRole(services.RoleAdmin)).Get("/admin/system", s.SystemStatus)

		authed.Get("/table/{entity}", s.TableView)
		authed.Post("/table/{entity}", s.TableView)
		authed.Get("/add_{singular}", s.AddEntry)
		authed.Post("/add_{singular}", s.AddEntry)
		authed.Get("/edit_{singular}/{id}", s.EditEntry)
		authed.Post("/edit_{singular}/{id}", s.EditEntry)
		authed.Post("/delete_{singular}/{id}", s.DeleteEntry)
	})
	return r
}
