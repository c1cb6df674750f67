package portalsim

import (
	"context"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"net/http"
)

// Account represents a portal account known to the simulator
type Account struct {
	Username  string
	Password  string
	CardToken string
}

// Service represents the simulated portal HTTP service.
// It replays the login/profile contract the real portal is assumed to implement:
// a logon form carrying a one-time verification token, a form POST answered with
// a redirect plus auth cookie, and a profile page embedding the card token.
type Service struct {
	server *http.Server
	store  *store
}

// New creates a new portal simulator seeded with the given accounts
func New(accounts []Account) (*Service, error) {
	store, err := newStore(accounts)
	if err != nil {
		return nil, err
	}
	return &Service{store: store}, nil
}

// Router assembles the simulator's HTTP routes.
// It is exposed separately so that tests can serve the simulator through httptest.
func (service *Service) Router() http.Handler {
	router := chi.NewRouter()
	router.Use(middleware.RedirectSlashes)
	router.Get("/Home/Logon", service.handleLogonPage)
	router.Post("/Home/Logon", service.handleLogon)
	router.Get("/Home/Index", service.handleProfile)
	return router
}

// Startup starts up the simulated portal on the given listen address.
// It blocks until the server terminates.
func (service *Service) Startup(address string) error {
	service.server = &http.Server{
		Addr:    address,
		Handler: service.Router(),
	}
	return service.server.ListenAndServe()
}

// Shutdown shuts down the simulated portal
func (service *Service) Shutdown() error {
	if service.server == nil {
		return nil
	}
	return service.server.Shutdown(context.Background())
}
