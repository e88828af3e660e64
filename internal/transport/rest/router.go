package rest

import (
	"database/sql"
	"log/slog"
	"net/http"
	"path/filepath"

	"github.com/go-chi/chi"

	"github.com/dfquintero/plan-seguimiento/internal"
	"github.com/dfquintero/plan-seguimiento/internal/auth"
	"github.com/dfquintero/plan-seguimiento/internal/files"
	"github.com/dfquintero/plan-seguimiento/internal/habilidad"
	"github.com/dfquintero/plan-seguimiento/internal/plan"
	"github.com/dfquintero/plan-seguimiento/internal/pqrd"
	"github.com/dfquintero/plan-seguimiento/internal/reporte"
	"github.com/dfquintero/plan-seguimiento/internal/transport/middleware"
	"github.com/dfquintero/plan-seguimiento/internal/transport/swagger"
	"github.com/dfquintero/plan-seguimiento/internal/user"
)

// Handlers groups everything the router mounts.
type Handlers struct {
	Auth      *auth.Handler
	User      *user.Handler
	Plan      *plan.Handler
	Reporte   *reporte.Handler
	Pqrd      *pqrd.Handler
	Habilidad *habilidad.Handler
	Files     *files.Handler
}

// RegisterAllRoutes mounts the API. Paths match the legacy frontend contract,
// including the /seguimiento prefix for plans and the trailing-slash-free
// style chi enforces.
func RegisterAllRoutes(router *chi.Mux, db *sql.DB, cfg *internal.Config, h Handlers, logger *slog.Logger) {
	healthHandler := NewHealthHandler(db)
	rbac := auth.NewRBACAuthorization(logger)

	router.Use(middleware.CORS(cfg.Server.Origins()))
	router.Use(middleware.RequestID)
	router.Use(middleware.Recovery(logger))
	router.Use(middleware.Logging(logger))

	// OpenAPI document and Swagger UI at root, like the health probes.
	router.Get("/openapi.yml", func(w http.ResponseWriter, r *http.Request) {
		http.ServeFile(w, r, "./api/openapi.yml")
	})
	router.Handle("/swagger/*", swagger.Handler())

	router.Get("/health", healthHandler.healthCheckHandler)
	router.Get("/ping", healthHandler.pingHandler)

	// Locally stored evidence is served straight off disk.
	uploadsDir := http.Dir(filepath.Clean(cfg.Uploads.Dir))
	router.Handle("/uploads/*", http.StripPrefix("/uploads/", http.FileServer(uploadsDir)))

	router.Post("/auth/token", h.Auth.Login)

	// Everything below resolves the bearer token first.
	router.Group(func(pr chi.Router) {
		pr.Use(h.Auth.AuthMiddleware)

		pr.Get("/auth/me", h.Auth.Me)

		pr.Route("/seguimiento", func(sr chi.Router) {
			sr.Get("/indicadores_usados", h.Plan.UsedIndicators)

			sr.Get("/", h.Plan.ListPlans)
			sr.Get("/{plan_id}", h.Plan.GetPlan)
			sr.Put("/{plan_id}", h.Plan.UpdatePlan)

			sr.Group(func(er chi.Router) {
				er.Use(rbac.RequireRoles(auth.RoleEntidad, auth.RoleAdmin))
				er.Post("/", h.Plan.CreatePlan)
				er.Post("/{plan_id}/enviar_revision", h.Plan.SubmitForReview)
				er.Delete("/{plan_id}", h.Plan.DeletePlan)
			})

			sr.Group(func(ar chi.Router) {
				ar.Use(rbac.RequireRoles(auth.RoleAuditor, auth.RoleAdmin))
				ar.Post("/{plan_id}/observacion", h.Plan.AddObservation)
				ar.Post("/{plan_id}/estado", h.Plan.SetStatus)
			})

			sr.Get("/{plan_id}/seguimiento", h.Plan.ListFollowUps)
			sr.Post("/{plan_id}/seguimiento", h.Plan.CreateFollowUp)
			sr.Put("/{plan_id}/seguimiento/{seg_id}", h.Plan.UpdateFollowUp)
			sr.Delete("/{plan_id}/seguimiento/{seg_id}", h.Plan.DeleteFollowUp)
		})

		pr.Route("/users", func(ur chi.Router) {
			ur.Use(rbac.RequireAdmin())
			ur.Get("/", h.User.ListUsers)
			ur.Post("/", h.User.CreateUser)
			ur.Patch("/{id}/password", h.User.ResetPassword)
			ur.Patch("/{id}/role", h.User.UpdateRole)
			ur.Patch("/{id}/perm", h.User.UpdatePerm)
			ur.Patch("/{id}/auditor", h.User.UpdateAuditorFlag)
			ur.Delete("/{id}", h.User.DeleteUser)
		})

		pr.Route("/reports", func(rr chi.Router) {
			rr.Get("/", h.Reporte.List)
			rr.Post("/", h.Reporte.BulkLoad)
			rr.Delete("/", h.Reporte.DeleteAll)
			rr.Get("/{nombre_entidad}", h.Reporte.GetByEntidad)
		})

		pr.Route("/pqrds", func(qr chi.Router) {
			qr.Get("/", h.Pqrd.List)
			qr.Get("/count", h.Pqrd.Count)
			qr.Get("/by/{label_pqrd}", h.Pqrd.GetByLabel)
			qr.Post("/", h.Pqrd.BulkLoad)
			qr.Delete("/", h.Pqrd.DeleteAll)
		})

		pr.Route("/habilidades", func(hr chi.Router) {
			hr.Get("/", h.Habilidad.List)
			hr.Post("/", h.Habilidad.BulkLoad)
			hr.Delete("/{habilidad_id}", h.Habilidad.Delete)
			hr.Delete("/", h.Habilidad.DeleteAll)
		})

		pr.Post("/files/upload", h.Files.Upload)
	})
}
