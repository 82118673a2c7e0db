package console

import (
	"net/http"
	"time"

	"github.com/goliatone/go-router"
)

// RouteGuard redirects navigations based on identity presence. It holds no
// state of its own: every request re-evaluates the store, so an identity
// change takes effect on the next navigation.
type RouteGuard struct {
	presence         IdentityPresence
	loginRoute       string
	landingRoute     string
	rejectedRouteKey string
	Logger           Logger
}

type RouteGuardOption func(*RouteGuard)

// WithGuardLoginRoute sets the route name anonymous visitors of a protected
// route are sent to.
func WithGuardLoginRoute(name string) RouteGuardOption {
	return func(g *RouteGuard) {
		if name != "" {
			g.loginRoute = name
		}
	}
}

// WithGuardLandingRoute sets the route name authenticated visitors of an
// anonymous-only route are sent to.
func WithGuardLandingRoute(name string) RouteGuardOption {
	return func(g *RouteGuard) {
		if name != "" {
			g.landingRoute = name
		}
	}
}

// WithGuardRejectedRouteKey overrides the cookie used to remember the route
// a redirect bounced away from.
func WithGuardRejectedRouteKey(key string) RouteGuardOption {
	return func(g *RouteGuard) {
		if key != "" {
			g.rejectedRouteKey = key
		}
	}
}

// WithGuardLogger overrides the guard logger.
func WithGuardLogger(l Logger) RouteGuardOption {
	return func(g *RouteGuard) {
		if l != nil {
			g.Logger = l
		}
	}
}

// NewRouteGuard builds both guard variants over one identity source: use
// Protected for authenticated-only routes and AnonymousOnly for login and
// signup style pages.
func NewRouteGuard(presence IdentityPresence, opts ...RouteGuardOption) *RouteGuard {
	if presence == nil {
		panic("Missing identity presence in route guard...")
	}

	g := &RouteGuard{
		presence:         presence,
		loginRoute:       "sign-in.get",
		landingRoute:     "home.get",
		rejectedRouteKey: "rejected_route",
		Logger:           defLogger{},
	}

	for _, opt := range opts {
		if opt != nil {
			opt(g)
		}
	}

	return g
}

// Protected renders the requested view only when an identity is present;
// otherwise the navigation is redirected to the login route, remembering the
// rejected route so a successful login can return to it.
func (g *RouteGuard) Protected() router.MiddlewareFunc {
	return func(hf router.HandlerFunc) router.HandlerFunc {
		return func(c router.Context) error {
			if g.presence.Authenticated() {
				return hf(c)
			}

			g.Logger.Info("guard: anonymous navigation rejected: %s", c.OriginalURL())
			g.SetRedirect(c)
			return c.RedirectToRoute(g.loginRoute, router.ViewContext{}, redirectStatus(c))
		}
	}
}

// AnonymousOnly renders the requested view only when no identity is present;
// an authenticated visitor is sent to the landing route instead.
func (g *RouteGuard) AnonymousOnly() router.MiddlewareFunc {
	return func(hf router.HandlerFunc) router.HandlerFunc {
		return func(c router.Context) error {
			if !g.presence.Authenticated() {
				return hf(c)
			}
			return c.RedirectToRoute(g.landingRoute, router.ViewContext{}, redirectStatus(c))
		}
	}
}

// SetRedirect remembers the route the visitor was bounced away from.
func (g *RouteGuard) SetRedirect(c router.Context) {
	c.Cookie(&router.Cookie{
		Name:     g.rejectedRouteKey,
		Value:    c.OriginalURL(),
		Expires:  time.Now().Add(time.Minute * 5),
		HTTPOnly: true,
		Secure:   true,
		SameSite: "Lax",
	})
}

// GetRedirect returns the remembered rejected route, or def when none is
// set, clearing the cookie either way.
func (g *RouteGuard) GetRedirect(c router.Context, def string) string {
	r := c.Cookies(g.rejectedRouteKey)
	if r == "" {
		return def
	}
	g.cookieDel(c, g.rejectedRouteKey)
	return r
}

func (g *RouteGuard) cookieDel(c router.Context, name string) {
	c.Cookie(&router.Cookie{
		Name:     name,
		Value:    "",
		Expires:  time.Now().Add(-time.Hour * (24 * 365)),
		HTTPOnly: true,
		Secure:   true,
		SameSite: "Lax",
	})
}

func redirectStatus(c router.Context) int {
	if c.Method() == string(router.GET) {
		return http.StatusFound
	}
	return http.StatusSeeOther
}
