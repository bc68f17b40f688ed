package api

import (
	"github.com/go-chi/chi/v5"
)

// setupPublicRoutes sets up routes reachable without a token
func setupPublicRoutes(r chi.Router, handlers *routeHandlers) {
	r.Get("/", handlers.healthHandler.root())
	r.Get("/health", handlers.healthHandler.health())

	r.Route("/auth", func(r chi.Router) {
		r.Post("/register", handlers.authHandler.register())
		r.Post("/login", handlers.authHandler.login())
	})
}

// setupAuthenticatedRoutes sets up all routes that require a bearer token
func setupAuthenticatedRoutes(r chi.Router, handlers *routeHandlers, authMiddleware authMiddleware) {
	r.Group(func(r chi.Router) {
		r.Use(authMiddleware.authenticate)

		r.Route("/projects", func(r chi.Router) {
			// Project Handler endpoints
			r.Get("/", handlers.projectHandler.getProjects())
			r.Post("/", handlers.projectHandler.createProject())
			r.Patch("/", handlers.projectHandler.editProject())
			r.Get("/my", handlers.projectHandler.getMyProjects())
			r.Get("/byTag", handlers.projectHandler.getProjectsByTag())
			r.Get("/getProject/{id}", handlers.projectHandler.getProject())
			r.Get("/recommendations", handlers.projectHandler.getRecommendations())
			r.Get("/getCategories", handlers.projectHandler.getCategories())
			r.Get("/getProjectChoices", handlers.projectHandler.getProjectChoices())

			// Application Handler endpoints
			r.Get("/getSentApplications", handlers.applicationHandler.getSentApplications())
			r.Get("/getIncomingApplications", handlers.applicationHandler.getIncomingApplications())
			r.Post("/apply", handlers.applicationHandler.apply())
			r.Post("/processApplication", handlers.applicationHandler.processApplication())
		})

		r.Route("/account", func(r chi.Router) {
			r.Get("/profile", handlers.accountHandler.getProfile())
			r.Patch("/profile", handlers.accountHandler.updateProfile())
			r.Get("/faculties", handlers.accountHandler.getFaculties())
			r.Get("/categories", handlers.accountHandler.getCategories())
			r.Post("/setCategories", handlers.accountHandler.setCategories())
			r.Post("/setFaculty", handlers.accountHandler.setFaculty())
		})
	})
}
