package routes

import (
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/httprate"
	"github.com/vidflow/vidflow_server/internal/app"
)

func SetupRoutes(app *app.Application) *chi.Mux {
	r := chi.NewRouter()

	r.Use(httprate.LimitAll(200, time.Minute))
	r.Use(app.MiddlewareHandler.RequestLogger)
	r.Use(app.MiddlewareHandler.Security)

	r.Route("/auth", func(r chi.Router) {
		r.Use(httprate.LimitAll(30, time.Minute))
		r.Use(app.MiddlewareHandler.Cors)

		r.Post("/login", app.Auth.HandlerLogin)
		r.Post("/logout", app.Auth.HandlerLogout)
		r.Get("/session", app.Auth.HandlerSession)
		r.Post("/password-reset", app.Auth.HandlerRequestPasswordReset)
		r.Post("/password-reset/confirm", app.Auth.HandlerConfirmPasswordReset)

		r.Post("/admin/login", app.Auth.HandlerAdminLogin)
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(httprate.LimitAll(100, time.Minute))
		r.Use(app.MiddlewareHandler.Cors)

		// company-scoped routes behind the session
		r.Group(func(r chi.Router) {
			r.Use(app.MiddlewareHandler.Authenticate)

			r.Route("/dashboard", func(r chi.Router) {
				r.Get("/metrics", app.DashboardHandler.HandlerGetDashboardMetrics)
			})

			r.Route("/analytics", func(r chi.Router) {
				r.Get("/stages", app.ProductionHandler.HandlerGetStageDurations)
				r.Get("/throughput", app.ProductionHandler.HandlerGetPublishThroughput)
			})

			r.Route("/videos", func(r chi.Router) {
				r.Get("/", app.VideoHandler.HandlerGetVideos)
				r.Post("/", app.VideoHandler.HandlerCreateVideo)
				r.Get("/{id}", app.VideoHandler.HandlerGetVideoByID)
				r.Patch("/{id}", app.VideoHandler.HandlerUpdateVideo)
				r.Delete("/{id}", app.VideoHandler.HandlerDeleteVideo)

				r.Patch("/{id}/status", app.VideoHandler.HandlerUpdateVideoStatus)

				r.Post("/{id}/freelancers", app.VideoHandler.HandlerAssignFreelancer)
				r.Delete("/{id}/freelancers/{role}", app.VideoHandler.HandlerUnassignFreelancer)
			})

			r.Route("/channels", func(r chi.Router) {
				r.Get("/", app.ChannelHandler.HandlerGetChannels)
				r.Post("/", app.ChannelHandler.HandlerCreateChannel)
				r.Delete("/{id}", app.ChannelHandler.HandlerDeleteChannel)
			})

			r.Route("/freelancers", func(r chi.Router) {
				r.Get("/", app.FreelancerHandler.HandlerGetFreelancers)
				r.Post("/", app.FreelancerHandler.HandlerCreateFreelancer)
				r.Delete("/{id}", app.FreelancerHandler.HandlerDeleteFreelancer)

				r.Group(func(r chi.Router) {
					r.Use(app.MiddlewareHandler.RequireAdminRole)
					r.Post("/{id}/token", app.FreelancerHandler.HandlerIssueFreelancerToken)
				})
			})

			r.Route("/users", func(r chi.Router) {
				r.Use(app.MiddlewareHandler.RequireAdminRole)
				r.Get("/", app.UserHandler.HandlerGetUsers)
				r.Post("/", app.UserHandler.HandlerCreateUser)
				r.Delete("/{id}", app.UserHandler.HandlerDeleteUser)
			})

			r.Route("/logs", func(r chi.Router) {
				r.Get("/", app.VideoLogHandler.HandlerGetVideoLogs)
			})

			r.Route("/reports", func(r chi.Router) {
				r.Get("/videos.xlsx", app.ExportHandler.HandlerExportVideoLogsExcel)
				r.Get("/videos.pdf", app.ExportHandler.HandlerExportVideoLogsPDF)
			})

			r.Route("/settings", func(r chi.Router) {
				r.Get("/", app.SettingsHandler.HandlerGetSettings)
				r.Put("/", app.SettingsHandler.HandlerUpdateSettings)
			})

			r.Route("/subscription", func(r chi.Router) {
				r.Get("/", app.SubscriptionHandler.HandlerGetSubscription)
				r.Post("/charge", app.SubscriptionHandler.HandlerCreateCharge)
			})
		})

		// freelancer panel, token-authenticated
		r.Route("/freelancer", func(r chi.Router) {
			r.Use(app.MiddlewareHandler.AuthenticateFreelancer)

			r.Get("/videos", app.FreelancerPanelHandler.HandlerGetAssignedVideos)
			r.Patch("/videos/{id}/status", app.FreelancerPanelHandler.HandlerUpdateAssignedVideoStatus)
		})
	})

	r.Route("/webhooks", func(r chi.Router) {
		r.Use(httprate.LimitAll(60, time.Minute))

		r.Post("/pix", app.SubscriptionHandler.HandlerPixWebhook)
	})

	r.Route("/admin", func(r chi.Router) {
		r.Use(httprate.LimitAll(100, time.Minute))
		r.Use(app.MiddlewareHandler.Cors)
		r.Use(app.MiddlewareHandler.AuthenticateAdmin)

		r.Route("/companies", func(r chi.Router) {
			r.Get("/", app.AdminHandler.HandlerGetCompanies)
			r.Post("/", app.AdminHandler.HandlerCreateCompany)
			r.Patch("/{id}", app.AdminHandler.HandlerPatchCompany)
		})
	})

	return r
}
