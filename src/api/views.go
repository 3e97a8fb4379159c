package api

import (
	"net/http"
	"time"

	"securities/src/api/handlers"
	"securities/src/config"
	"securities/src/sessions"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type Server struct {
	Router  *chi.Mux
	Handler *handlers.Handler
	Port    string
}

func NewServer(cfg *config.Config, db *gorm.DB, store sessions.Store, logger *logrus.Logger) *Server {
	server := &Server{
		Router:  chi.NewRouter(),
		Handler: handlers.NewHandler(db, store, cfg, logger),
		Port:    cfg.Service.Port,
	}
	server.InitRoutes()
	return server
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.Router.ServeHTTP(w, r)
}

func (s *Server) InitRoutes() {
	s.Router.Use(s.Handler.LoggerToContext)
	s.Router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: true,
	}))

	s.Router.Get("/alive", handlers.Healthcheck)

	s.Router.Route("/auth", func(r chi.Router) {
		r.Post("/login", s.Handler.Login)

		r.Group(func(r chi.Router) {
			r.Use(s.Handler.AuthRequired)
			r.Get("/me", s.Handler.Me)
			r.Post("/logout", s.Handler.Logout)
			r.Get("/sessions", s.Handler.ListSessions)
		})
	})

	// Telemetry ingest is the only model write open to anonymous clients.
	s.Router.Post("/api/stats/update", s.Handler.RecordClientUpdate)

	s.Router.Route("/api", func(r chi.Router) {
		r.Use(s.Handler.AuthRequired)

		r.Route("/securities", func(r chi.Router) {
			r.Get("/", s.Handler.GetAllSecurities)
			r.Post("/", s.Handler.CreateSecurity)
			r.Get("/{id}", s.Handler.GetSecurityByID)
			r.Put("/{id}", s.Handler.UpdateSecurity)
			r.Delete("/{id}", s.Handler.DeleteSecurity)
			r.Post("/{id}/markets", s.Handler.CreateMarket)
			r.Post("/{id}/events", s.Handler.CreateEvent)
		})

		r.Route("/markets", func(r chi.Router) {
			r.Get("/{id}", s.Handler.GetMarketByID)
			r.Delete("/{id}", s.Handler.DeleteMarket)
			r.Post("/{id}/prices", s.Handler.AppendPrices)
		})

		r.Delete("/events/{id}", s.Handler.DeleteEvent)

		r.Route("/exchangerates", func(r chi.Router) {
			r.Get("/", s.Handler.GetAllExchangeRates)
			r.Post("/", s.Handler.CreateExchangeRate)
			r.Get("/{id}", s.Handler.GetExchangeRateByID)
			r.Delete("/{id}", s.Handler.DeleteExchangeRate)
			r.Post("/{id}/prices", s.Handler.AppendExchangeRatePrices)
		})

		r.Get("/stats/updates", s.Handler.ListClientUpdates)
		r.Delete("/stats/updates/{id}", s.Handler.DeleteClientUpdate)
	})
}

func NewHTTPServer(server *Server) *http.Server {
	httpServer := &http.Server{
		Addr:         ":" + server.Port,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		Handler:      server,
	}
	return httpServer
}
