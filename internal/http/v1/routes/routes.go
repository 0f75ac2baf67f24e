package routes

import (
	"context"
	"net/url"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"github.com/janisto/little-lemon/internal/http/v1/menu"
	"github.com/janisto/little-lemon/internal/http/v1/profile"
	"github.com/janisto/little-lemon/internal/http/v1/session"
	"github.com/janisto/little-lemon/internal/platform/auth"
	menusvc "github.com/janisto/little-lemon/internal/service/menu"
	sessionsvc "github.com/janisto/little-lemon/internal/service/session"
)

// Dependencies are the services the v1 routes are built on.
type Dependencies struct {
	Verifier     auth.Verifier
	Gates        *sessionsvc.Gates
	Catalog      *menusvc.Catalog
	StoreTimeout time.Duration
}

// Register wires all HTTP routes into the provided API router.
func Register(api huma.API, deps Dependencies) {
	prefix := apiPrefix(api)

	registerSecurityScheme(api.OpenAPI())

	// Apply auth middleware for protected endpoints
	api.UseMiddleware(auth.NewAuthMiddleware(api, deps.Verifier))
	api.UseMiddleware(storeDeadline(deps.StoreTimeout))

	menu.Register(api, deps.Catalog, prefix)
	session.Register(api, deps.Gates)
	profile.Register(api, deps.Gates)
}

// storeDeadline bounds the store work of authenticated operations. Only
// those touch the key-value store.
func storeDeadline(d time.Duration) func(huma.Context, func(huma.Context)) {
	return func(ctx huma.Context, next func(huma.Context)) {
		if d <= 0 || len(ctx.Operation().Security) == 0 {
			next(ctx)
			return
		}
		c, cancel := context.WithTimeout(ctx.Context(), d)
		defer cancel()
		next(huma.WithContext(ctx, c))
	}
}

func registerSecurityScheme(oapi *huma.OpenAPI) {
	if oapi.Components == nil {
		oapi.Components = &huma.Components{}
	}
	if oapi.Components.SecuritySchemes == nil {
		oapi.Components.SecuritySchemes = map[string]*huma.SecurityScheme{}
	}
	oapi.Components.SecuritySchemes["bearerAuth"] = &huma.SecurityScheme{
		Type:         "http",
		Scheme:       "bearer",
		BearerFormat: "Firebase ID token or installation UUID",
	}
}

func apiPrefix(api huma.API) string {
	for _, s := range api.OpenAPI().Servers {
		if u, err := url.Parse(s.URL); err == nil && u.Path != "" {
			return u.Path
		}
	}
	return ""
}
