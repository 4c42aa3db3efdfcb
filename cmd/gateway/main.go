package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"

	api "github.com/mind-engage/quizhub/internal/api/http"
	"github.com/mind-engage/quizhub/internal/audit"
	auth "github.com/mind-engage/quizhub/internal/auth/middleware"
	"github.com/mind-engage/quizhub/internal/config"
	"github.com/mind-engage/quizhub/internal/db"
	"github.com/mind-engage/quizhub/internal/grading"
	"github.com/mind-engage/quizhub/internal/rbac"
	"github.com/mind-engage/quizhub/internal/store"
)

func main() {
	_ = godotenv.Load()
	cfg := config.FromEnv()

	// --- DB ---
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	dbh, err := db.Open(ctx, db.Driver(cfg.DBDriver), cfg.DBDSN)
	if err != nil {
		log.Fatalf("db open failed: %v", err)
	}
	st := audit.Wrap(store.NewSQLStore(dbh, cfg.DBDriver), audit.NewSQLRecorder(dbh))

	// Seed the admin account from env so a fresh database is usable.
	if err := st.PutAdmin(ctx, store.Admin{
		Username:     cfg.AdminUser,
		PasswordHash: cfg.AdminPassHash,
		Role:         "admin",
	}); err != nil {
		log.Fatalf("seed admin: %v", err)
	}

	authSvc := auth.NewAuthService(cfg.AuthSecret)
	grader := grading.NewDefaultGrader()

	// --- Router ---
	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RealIP, middleware.Logger, middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Student surface, no auth: code validation and submission.
	r.Get("/api/validate_test", api.ValidateTestHandler(st))
	r.Post("/api/submit_test", api.SubmitTestHandler(st, grader))
	r.Get("/api/user", api.GetUserHandler(st))

	r.Post("/admin/login", auth.LoginHandler(authSvc, st))

	// Admin surface (JWT → role in context → RBAC)
	r.Group(func(pr chi.Router) {
		pr.Use(auth.JWTMiddleware(authSvc))

		pr.With(rbac.Require("stats:view")).
			Get("/admin/api/stats", api.StatsHandler(st))
		pr.With(rbac.Require("stats:view")).
			Get("/admin/api/dashboard", api.DashboardHandler(st))

		pr.With(rbac.Require("tests:view")).
			Get("/admin/tests", api.ListTestsHandler(st))
		pr.With(rbac.Require("tests:view")).
			Get("/admin/tests/{code}", api.GetTestHandler(st))
		pr.With(rbac.Require("tests:manage")).
			Post("/admin/tests/create", api.CreateTestHandler(st))
		pr.With(rbac.Require("tests:manage")).
			Post("/admin/tests/{code}/toggle", api.ToggleTestHandler(st))
		pr.With(rbac.Require("tests:manage")).
			Post("/admin/tests/{code}/delete", api.DeleteTestHandler(st))

		pr.With(rbac.Require("results:view")).
			Get("/admin/api/results", api.ListResultsHandler(st))
		pr.With(rbac.Require("results:view")).
			Get("/admin/api/result/{id}", api.GetResultHandler(st))
		pr.With(rbac.Require("results:export")).
			Get("/admin/api/export/{code}", api.ExportResultsHandler(st))
	})

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200) })
	r.Get("/readyz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200) })

	log.Printf("listening on %s (db=%s)", cfg.HTTPAddr, cfg.DBDriver)
	log.Fatal(http.ListenAndServe(cfg.HTTPAddr, r))
}
