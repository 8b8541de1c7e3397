package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/EzraElette/contacts-server/internal/api/http/handler"
	"github.com/EzraElette/contacts-server/internal/api/http/middleware"
	"github.com/EzraElette/contacts-server/internal/logger"
	"github.com/EzraElette/contacts-server/internal/model"
)

// Router wires handlers and middleware into the HTTP route tree.
type Router struct {
	authService    handler.AuthService
	contactService handler.ContactService
	tokenService   middleware.TokenService
	contextManager model.ContextManager
	logger         *logger.Logger
	requestTimeout time.Duration
}

// New creates a new Router instance. requestTimeout bounds how long one
// request may run before its context is cancelled.
func New(
	authService handler.AuthService,
	contactService handler.ContactService,
	tokenService middleware.TokenService,
	contextManager model.ContextManager,
	logger *logger.Logger,
	requestTimeout time.Duration,
) *Router {
	return &Router{
		authService:    authService,
		contactService: contactService,
		tokenService:   tokenService,
		contextManager: contextManager,
		logger:         logger,
		requestTimeout: requestTimeout,
	}
}

// Register builds the route tree: public auth endpoints, a health probe, and
// authenticated contact endpoints.
func (r *Router) Register() http.Handler {
	logging := middleware.NewLogging(r.logger)
	authenticate := middleware.NewAuthenticate(r.tokenService, r.contextManager, r.logger)

	authHandler := handler.NewAuth(r.authService, r.logger)
	contactHandler := handler.NewContact(r.contactService, r.contextManager, r.logger)

	mux := chi.NewRouter()
	mux.Use(logging.Handle)
	mux.Use(chimiddleware.Recoverer)
	mux.Use(chimiddleware.Timeout(r.requestTimeout))

	mux.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	})

	mux.Route("/api", func(api chi.Router) {
		api.Post("/signup", authHandler.SignUp)
		api.Post("/login", authHandler.Login)

		api.Route("/contacts", func(contacts chi.Router) {
			contacts.Use(authenticate.Handle)
			contacts.Get("/", contactHandler.List)
			contacts.Post("/", contactHandler.Add)
			contacts.Get("/{slug}", contactHandler.Get)
			contacts.Put("/{slug}", contactHandler.Update)
			contacts.Delete("/{slug}", contactHandler.Delete)
		})
	})

	return mux
}
