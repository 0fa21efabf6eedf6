package routes

import (
	"github.com/go-chi/chi/v5"

	"skybound/flightline/internal/api"
	"skybound/flightline/internal/metrics"
	"skybound/flightline/internal/middleware"
)

// RegisterAPIRoutes registers all API v1 routes and handlers
// This keeps API route registration separate from the main router setup
func RegisterAPIRoutes(r chi.Router, metricsReg *metrics.MetricsRegistry, deps *api.Dependencies, handlers *api.Handlers) {

	// Public: emailed statement links carry their own token, no API key.
	r.Group(func(public chi.Router) {
		public.Use(middleware.MetricsMiddleware(metricsReg))
		public.Get("/api/v1/statements/shared", handlers.SharedStatement())
	})

	// API v1 routes
	r.Route("/api/v1", func(v1 chi.Router) {
		v1.Use(middleware.MetricsMiddleware(metricsReg))
		v1.Use(middleware.AuthMiddleware(deps.Repo.Members, deps.Repo.Keys)) // global: all routes must present a valid key

		// Read surface: any authenticated member.
		v1.Get("/aircraft", handlers.ListAircraft())
		v1.Get("/aircraft/{aircraft_id}", handlers.GetAircraft())
		v1.Get("/aircraft/{aircraft_id}/components", handlers.ListComponents())
		v1.Get("/aircraft/{aircraft_id}/visits", handlers.ListVisits())
		v1.Get("/fleet/status", handlers.FleetStatus())
		v1.Get("/components/{component_id}", handlers.GetComponent())
		v1.Get("/components/{component_id}/next-due", handlers.PreviewNextDue())

		// Staff group: front desk and instructors running the operation.
		v1.Group(func(staff chi.Router) {
			staff.Use(middleware.IsStaffMiddleware())

			staff.Post("/aircraft", handlers.CreateAircraft())
			staff.Patch("/aircraft/{aircraft_id}/hours", handlers.UpdateAircraftHours())

			staff.Post("/components", handlers.CreateComponent())
			staff.Patch("/components/{component_id}", handlers.UpdateComponent())
			staff.Patch("/components/{component_id}/extension", handlers.SetExtension())

			staff.Post("/visits", handlers.LogVisit())

			staff.Get("/members", handlers.ListMembers())
			staff.Get("/members/{member_id}", handlers.GetMemberProfile())
			staff.Post("/members", handlers.CreateMember())
			staff.Patch("/members/{member_id}", handlers.UpdateMember())

			staff.Get("/memberships", api.ListMembershipsHandler(deps))
			staff.Post("/memberships", api.AddMembershipHandler(deps))
			staff.Patch("/memberships/{membership_id}", api.UpdateMembershipHandler(deps))

			staff.Get("/members/{member_id}/credentials", api.ListCredentialsHandler(deps))
			staff.Post("/credentials", api.AddCredentialHandler(deps))
			staff.Patch("/credentials/{credential_id}", api.UpdateCredentialHandler(deps))

			staff.Get("/enrollments", api.ListEnrollmentsHandler(deps))
			staff.Post("/enrollments", api.AddEnrollmentHandler(deps))
			staff.Patch("/enrollments/{enrollment_id}", api.UpdateEnrollmentHandler(deps))

			staff.Get("/members/{member_id}/statement", handlers.GetStatement())
			staff.Post("/statements/share", handlers.ShareStatement())

			staff.Get("/school/configs", handlers.GetSchoolConfigs())
			staff.Get("/school/configs/keys", api.ListSchoolConfigKeysHandler(deps))

			// Admin group: destructive and school-wide settings.
			staff.Group(func(admin chi.Router) {
				admin.Use(middleware.IsAdminMiddleware())

				admin.Delete("/components/{component_id}", handlers.DeleteComponent())
				admin.Post("/school/configs", handlers.SetSchoolConfigs())
				admin.Post("/statements/revoke", handlers.RevokeShareLink())
			})
		})
	})
}
