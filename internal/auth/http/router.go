package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/salescrm/auth/internal/auth/service"
	"github.com/salescrm/auth/internal/auth/store"
	"github.com/salescrm/auth/pkg/httpx"
	"github.com/salescrm/auth/pkg/jwtx"
	"github.com/salescrm/auth/pkg/slogx"
)

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	verifier     jwtx.Verifier
	buildVersion string
	startTime    time.Time
	logger       *slog.Logger

	store       store.Store
	AuthService *service.AuthService
	UserService *service.UserService
}

func NewRouter(
	verifier jwtx.Verifier,
	buildVersion string,
	st store.Store,
	logger *slog.Logger,
) *Router {
	r := &Router{
		Mux:          http.NewServeMux(),
		verifier:     verifier,
		buildVersion: buildVersion,
		startTime:    time.Now(),
		store:        st,
		logger:       logger,
	}

	// Default middleware chain: request logging with contextual logger.
	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
	}

	return r
}

func (r *Router) ApplyRoutes() {
	r.registerAuth()
	r.registerProfile()
	r.registerSystem()
}

// ServeHTTP implements http.Handler for Router and applies the global
// middleware chain.
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

func (r *Router) registerAuth() {
	r.Mux.Handle("POST /auth/register", &RegisterHandler{AuthService: r.AuthService})
	r.Mux.Handle("POST /auth/login", &LoginHandler{AuthService: r.AuthService})

	r.Mux.Handle("POST /auth/password",
		httpx.Chain(&PasswordHandler{AuthService: r.AuthService},
			httpx.AuthnMiddleware(r.verifier),
		),
	)
}

func (r *Router) registerProfile() {
	h := &ProfileHandler{UserService: r.UserService}

	r.Mux.Handle("GET /profile",
		httpx.Chain(h,
			httpx.AuthnMiddleware(r.verifier), // verify bearer token
		),
	)
}

func (r *Router) registerSystem() {
	r.Mux.Handle("GET /livez", LivezHandler(r.startTime, r.buildVersion))
	r.Mux.Handle("GET /readyz", ReadyzHandler(r.startTime, r.buildVersion, r.store))
}
