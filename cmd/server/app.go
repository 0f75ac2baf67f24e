package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	_ "github.com/danielgtaylor/huma/v2/formats/cbor"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/janisto/little-lemon/internal/config"
	"github.com/janisto/little-lemon/internal/http/health"
	"github.com/janisto/little-lemon/internal/http/v1/routes"
	"github.com/janisto/little-lemon/internal/platform/auth"
	"github.com/janisto/little-lemon/internal/platform/firebase"
	applog "github.com/janisto/little-lemon/internal/platform/logging"
	appmiddleware "github.com/janisto/little-lemon/internal/platform/middleware"
	"github.com/janisto/little-lemon/internal/platform/respond"
	"github.com/janisto/little-lemon/internal/service/kvstore"
	menusvc "github.com/janisto/little-lemon/internal/service/menu"
	sessionsvc "github.com/janisto/little-lemon/internal/service/session"
)

const (
	apiPrefix = "/v1"
	docsPath  = "/api-docs"
)

// app holds the long-lived dependencies the router is built from.
type app struct {
	backend      string
	provider     kvstore.Provider
	verifier     auth.Verifier
	catalog      *menusvc.Catalog
	storeTimeout time.Duration
	closers      []func() error
}

// newApp connects the configured backends.
func newApp(ctx context.Context, cfg *config.Config) (*app, error) {
	a := &app{
		backend:      cfg.Store.Backend,
		catalog:      menusvc.DefaultCatalog(),
		storeTimeout: cfg.Store.Timeout,
		verifier:     auth.InstallationVerifier{},
	}

	var clients *firebase.Clients
	if cfg.NeedsFirebase() {
		var err error
		clients, err = firebase.InitializeClients(ctx, firebase.Config{
			ProjectID:                    cfg.Firebase.ProjectID,
			GoogleApplicationCredentials: cfg.Firebase.Credentials,
			EnableAuth:                   cfg.Auth.Mode == config.AuthFirebase,
			EnableFirestore:              cfg.Store.Backend == config.BackendFirestore,
		})
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, clients.Close)
	}

	if cfg.Auth.Mode == config.AuthFirebase {
		a.verifier = auth.NewFirebaseVerifier(clients.Auth)
	}

	switch cfg.Store.Backend {
	case config.BackendMemory:
		a.provider = kvstore.NewMemoryProvider()
	case config.BackendFirestore:
		a.provider = kvstore.NewFirestoreProvider(clients.Firestore)
	case config.BackendSQLite:
		p, err := kvstore.OpenSQLite(cfg.Store.SQLitePath)
		if err != nil {
			_ = a.Close()
			return nil, fmt.Errorf("open sqlite: %w", err)
		}
		a.provider = p
		a.closers = append(a.closers, p.Close)
	default:
		_ = a.Close()
		return nil, fmt.Errorf("unsupported store backend %q", cfg.Store.Backend)
	}

	applog.LogInfo(ctx, "dependencies ready")
	return a, nil
}

// Close releases backend connections in reverse order.
func (a *app) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		errs = append(errs, a.closers[i]())
	}
	a.closers = nil
	return errors.Join(errs...)
}

// router builds the HTTP handler tree.
func (a *app) router() chi.Router {
	respond.Install()

	router := chi.NewRouter()
	router.NotFound(respond.NotFoundHandler())
	router.MethodNotAllowed(respond.MethodNotAllowedHandler())

	// Base middleware stack
	router.Use(
		appmiddleware.Security(apiPrefix+docsPath),
		appmiddleware.Vary("Accept", "Authorization"),
		appmiddleware.CORS(),
		appmiddleware.RequestID(),
		// RealIP extracts client IP from X-Real-IP or X-Forwarded-For headers.
		// SECURITY: Only use behind a trusted reverse proxy (e.g., Cloud Run, nginx).
		chimiddleware.RealIP,
		chimiddleware.RequestSize(1<<20), // 1 MB limit
		applog.RequestLogger(),
		applog.AccessLogger(),
		respond.Recoverer(),
	)

	router.Get("/health", health.Handler(a.backend, a.provider))
	router.Get("/", func(w http.ResponseWriter, r *http.Request) {
		respond.WriteRedirect(w, r, apiPrefix+docsPath, http.StatusFound)
	})

	router.Route(apiPrefix, func(r chi.Router) {
		cfg := huma.DefaultConfig("Little Lemon API", Version)
		cfg.DocsPath = docsPath
		cfg.Servers = []*huma.Server{{URL: apiPrefix}}
		api := humachi.New(r, cfg)
		addCBORContent(api.OpenAPI())

		routes.Register(api, routes.Dependencies{
			Verifier:     a.verifier,
			Gates:        sessionsvc.NewGates(a.provider),
			Catalog:      a.catalog,
			StoreTimeout: a.storeTimeout,
		})
	})

	return router
}

// addCBORContent documents application/cbor next to every JSON body.
func addCBORContent(oapi *huma.OpenAPI) {
	oapi.OnAddOperation = append(oapi.OnAddOperation,
		func(_ *huma.OpenAPI, op *huma.Operation) {
			if op.RequestBody != nil && op.RequestBody.Content != nil {
				if jsonContent, ok := op.RequestBody.Content["application/json"]; ok {
					op.RequestBody.Content["application/cbor"] = jsonContent
				}
			}
			for _, resp := range op.Responses {
				if resp.Content == nil {
					continue
				}
				if jsonContent, ok := resp.Content["application/json"]; ok {
					resp.Content["application/cbor"] = jsonContent
				}
			}
		},
	)
}
