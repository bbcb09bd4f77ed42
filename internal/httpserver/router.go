package httpserver

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"jobsite/internal/auth"
	"jobsite/internal/cache"
	"jobsite/internal/httpserver/handlers"
)

func NewRouter(db *gorm.DB, lg *zap.SugaredLogger) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RealIP, middleware.Recoverer, middleware.Logger)

	marker := cache.NewMarker()
	r.Use(marker.Middleware)

	r.Get("/", handlers.Index())
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) })
	r.Post("/login", handlers.Login(db, lg))
	r.Post("/signup", handlers.Signup(db, lg))
	r.Post("/signup/invite", handlers.SignupInvite(db, lg))

	r.Group(func(protected chi.Router) {
		protected.Use(auth.EnsureAuth(db, lg))
		owner := auth.RequireJobOwner(db, lg)

		protected.Get("/cache/status", handlers.CacheStatus(marker))

		protected.Route("/users", func(ur chi.Router) {
			ur.Get("/me", handlers.Me(db, lg))
			ur.Get("/", handlers.ListUsers(db, lg))
			ur.Put("/{user_id}", handlers.UpdateUser(db, lg))
		})

		protected.Route("/clients", func(cr chi.Router) {
			cr.Get("/", handlers.ListClients(db, lg))
			cr.Post("/", handlers.CreateClient(db, lg))
			cr.Get("/{client_id}", handlers.GetClient(db, lg))
			cr.Put("/{client_id}", handlers.UpdateClient(db, lg))
			cr.Delete("/{client_id}", handlers.DeleteClient(db, lg))
		})

		protected.Route("/jobs", func(jr chi.Router) {
			jr.Get("/", handlers.ListJobs(db, lg))
			jr.Post("/", handlers.CreateJob(db, lg))
			jr.Get("/{status:[a-zA-Z][a-zA-Z_-]*}", handlers.ListJobsByStatus(db, lg))

			jr.Route("/{job_id:[0-9]+}", func(job chi.Router) {
				job.Get("/", handlers.GetJob(db, lg))
				job.Put("/", handlers.UpdateJob(db, lg))
				job.Delete("/", handlers.DeleteJob(db, lg))

				job.Route("/estimates", func(er chi.Router) {
					er.Get("/", handlers.ListEstimates(db, lg))
					er.Post("/", handlers.CreateEstimate(db, lg))
					er.Route("/{estimate_id:[0-9]+}", func(est chi.Router) {
						est.Get("/", handlers.GetEstimate(db, lg))
						est.Delete("/", handlers.DeleteEstimate(db, lg))
						est.Get("/total_cost", handlers.EstimateTotalCost(db, lg))
						est.Get("/trades", handlers.ListTrades(db, lg))
						est.Post("/trades", handlers.CreateTrade(db, lg))
						est.Delete("/trades/{trade_id}", handlers.DeleteTrade(db, lg))
						est.Get("/services", handlers.ListEstimateServices(db, lg))
					})
				})

				job.Route("/orders", func(or chi.Router) {
					or.Get("/", handlers.ListOrders(db, lg))
					or.Post("/", handlers.CreateOrder(db, lg))
					or.Delete("/{order_id}", handlers.DeleteOrder(db, lg))
				})

				job.Route("/services", func(sr chi.Router) {
					sr.Post("/", handlers.CreateService(db, lg))
					sr.Route("/{service_id:[0-9]+}", func(svc chi.Router) {
						svc.With(owner).Put("/", handlers.UpdateService(db, lg))
						svc.Delete("/", handlers.DeleteService(db, lg))
						svc.With(owner).Get("/materials", handlers.ListMaterials(db, lg))
						svc.With(owner).Post("/materials", handlers.CreateMaterial(db, lg))
						svc.With(owner).Put("/materials/{material_id}", handlers.UpdateMaterial(db, lg))
						svc.With(owner).Get("/labor", handlers.ListLabor(db, lg))
						svc.With(owner).Post("/labor", handlers.CreateLabor(db, lg))
					})
				})

				job.With(owner).Delete("/materials/{material_id}", handlers.DeleteMaterial(db, lg))
				job.With(owner).Put("/labor/{labor_id}", handlers.UpdateLabor(db, lg))
				job.With(owner).Delete("/labor/{labor_id}", handlers.DeleteLabor(db, lg))

				job.Route("/files", func(fr chi.Router) {
					fr.Get("/", handlers.ListJobFiles(db, lg))
					fr.Post("/", handlers.CreateJobFile(db, lg))
					fr.Put("/{file_id}", handlers.UpdateJobFile(db, lg))
					fr.Delete("/{file_id}", handlers.DeleteJobFile(db, lg))
				})
			})
		})

		protected.Route("/workfiles/{workfile_id}", func(wr chi.Router) {
			wr.Get("/reports", handlers.ListReports(db, lg))
			wr.Post("/reports", handlers.SaveReport(db, lg))
		})

		protected.Get("/upload", handlers.Upload(lg))
		protected.Get("/pdf/{workfile_id}", handlers.RenderPDF(lg))
	})

	return r
}
