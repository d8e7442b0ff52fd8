package http

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/finflow/finflow/internal/middleware"
)

// NewRouter constructs and returns the HTTP handler serving the finflow
// API. It applies JSON content-type enforcement and request logging
// router-wide, and bearer-token authentication on every route except
// signup, login, and the health check.
//
// Routes:
//
//	POST   /users/signup               → authHandler.Signup
//	POST   /users/login                → authHandler.Login
//	GET    /users/me                   → authHandler.Me          (protected)
//	PATCH  /users/{userID}             → authHandler.Update      (protected)
//	DELETE /users/{userID}             → authHandler.Delete      (protected)
//	GET    /portfolio                  → portfolioHandler.List   (protected)
//	POST   /portfolio                  → portfolioHandler.Create (protected)
//	PATCH  /portfolio/{portfolioID}    → portfolioHandler.Rename (protected)
//	DELETE /portfolio/{portfolioID}    → portfolioHandler.Delete (protected)
//	GET    /assets                     → assetHandler.List       (protected)
//	POST   /assets                     → assetHandler.Create     (protected)
//	PATCH  /assets                     → assetHandler.Update     (protected)
//	DELETE /assets                     → assetHandler.Delete     (protected)
//	GET    /transactions               → transactionHandler.List (protected)
//	POST   /transactions               → transactionHandler.Create (protected)
//	DELETE /transactions               → transactionHandler.Delete (protected)
//	GET    /health                     → liveness probe
func NewRouter(
	authHandler *AuthHandler,
	portfolioHandler *PortfolioHandler,
	assetHandler *AssetHandler,
	transactionHandler *TransactionHandler,
	auth middleware.Authenticator,
	logger *zap.Logger,
) http.Handler {
	r := chi.NewRouter()

	// Only allow requests with Content-Type: application/json
	r.Use(chiMiddleware.AllowContentType("application/json"))

	// Log each request and its metadata
	r.Use(middleware.WithRequestLogging(logger))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/users", func(r chi.Router) {
		// Public endpoints
		r.Post("/signup", authHandler.Signup)
		r.Post("/login", authHandler.Login)

		// Protected group: requires a valid bearer token
		r.Group(func(r chi.Router) {
			r.Use(middleware.BearerAuth(auth))
			r.Get("/me", authHandler.Me)
			r.Patch("/{userID}", authHandler.Update)
			r.Delete("/{userID}", authHandler.Delete)
		})
	})

	// Protected domain routes
	r.Group(func(r chi.Router) {
		r.Use(middleware.BearerAuth(auth))

		r.Route("/portfolio", func(r chi.Router) {
			r.Get("/", portfolioHandler.List)
			r.Post("/", portfolioHandler.Create)
			r.Patch("/{portfolioID}", portfolioHandler.Rename)
			r.Delete("/{portfolioID}", portfolioHandler.Delete)
		})

		r.Route("/assets", func(r chi.Router) {
			r.Get("/", assetHandler.List)
			r.Post("/", assetHandler.Create)
			r.Patch("/", assetHandler.Update)
			r.Delete("/", assetHandler.Delete)
		})

		r.Route("/transactions", func(r chi.Router) {
			r.Get("/", transactionHandler.List)
			r.Post("/", transactionHandler.Create)
			r.Delete("/", transactionHandler.Delete)
		})
	})

	return r
}
