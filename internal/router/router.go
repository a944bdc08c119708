// Package router configures all HTTP routes.
package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/dempa-dev/dempa/internal/setup"
	mw "github.com/dempa-dev/dempa/shared/middleware"
	"github.com/dempa-dev/dempa/shared/middleware/metrics"
	rl "github.com/dempa-dev/dempa/shared/middleware/ratelimiter"
)

// New creates and configures the router.
// IMPORTANT! ratelimiters set with .Use limit requests for all endpoints combined in that subrouter
func New(deps *setup.Dependencies) chi.Router {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.Recoverer)
	r.Use(chimw.Compress(5))
	r.Use(metrics.Middleware)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   deps.Config.Public.CorsOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
	}))

	// JSON API only, no scripts/styles needed
	r.Use(mw.SecurityHeadersWithCSP(false, "default-src 'none'; frame-ancestors 'none'"))

	h := deps.Handler
	authMw := deps.AuthMiddleware

	r.Get("/health", h.Health)
	r.Method(http.MethodGet, "/metrics", metrics.Handler())

	r.Route("/v1", func(v1 chi.Router) {
		v1.Route("/auth", func(auth chi.Router) {
			auth.With(
				mw.RateLimit(rl.OnceInSecond(), mw.GetIP),
				mw.GlobalRateLimit(rl.Rps100()),
			).Get("/challenge", h.Challenge)
			auth.With(
				mw.RateLimit(rl.OnceInSecond(), mw.GetPubkeyFromBody),
				mw.RateLimit(rl.OnceInSecond(), mw.GetIP),
				mw.GlobalRateLimit(rl.Rps1000()),
			).Post("/login", h.Login)
			auth.Post("/logout", h.Logout)
		})

		// Read endpoints are public: everything served here is public
		// relay data anyway.
		v1.Group(func(public chi.Router) {
			public.Use(mw.GlobalRateLimit(rl.Rps1000()))

			public.Get("/boards", h.GetBoards)
			public.Get("/boards/{board}", h.GetBoard)
			public.Get("/boards/{board}/approvers", h.GetApprovers)
			public.Get("/boards/{board}/threads", h.GetThreads)
			public.Get("/threads/{thread}", h.GetThread)
			public.Get("/threads/{thread}/comments", h.GetComments)
			public.Get("/users/{pubkey}", h.GetUser)
		})

		// Everything that publishes records needs a session.
		v1.Group(func(loggedIn chi.Router) {
			loggedIn.Use(authMw.NeedAuth())
			loggedIn.Use(mw.RateLimit(rl.Rps100(), mw.GetPubkeyFromRequestContext))

			loggedIn.Post("/boards", h.CreateBoard)
			loggedIn.Put("/boards/{board}", h.UpdateBoard)
			loggedIn.Post("/boards/{board}/threads", h.CreateThread)
			loggedIn.Delete("/threads/{thread}", h.DeleteThread)
			loggedIn.Post("/threads/{thread}/comments", h.CreateComment)
			loggedIn.Delete("/comments/{comment}", h.DeleteComment)

			loggedIn.Post("/users", h.RegisterUser)
			loggedIn.Get("/users/me", h.GetCurrentUser)
			loggedIn.Put("/users/me", h.UpdateUser)
			loggedIn.Post("/users/me/boards", h.JoinBoard)
			loggedIn.Get("/users/me/boards", h.GetJoinedBoards)

			loggedIn.Post("/boards/{board}/thread-requests", h.CreateThreadRequest)
			loggedIn.Get("/boards/{board}/thread-requests", h.GetThreadRequests)
			loggedIn.Post("/thread-requests/{request}/approve", h.ApproveThreadRequest)
			loggedIn.Post("/thread-requests/{request}/reject", h.RejectThreadRequest)

			loggedIn.Post("/threads/{thread}/comment-requests", h.CreateCommentRequest)
			loggedIn.Get("/threads/{thread}/comment-requests", h.GetCommentRequests)
			loggedIn.Post("/comment-requests/{request}/approve", h.ApproveCommentRequest)
			loggedIn.Post("/comment-requests/{request}/reject", h.RejectCommentRequest)
		})
	})

	return r
}
