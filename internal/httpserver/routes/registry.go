package routes

import (
	"net/http"
	"slices"

	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/archivetag/internal/httpserver/deps"
	"github.com/MrSnakeDoc/archivetag/internal/httpserver/mw"
	"github.com/MrSnakeDoc/archivetag/internal/logger"
)

type (
	Registrar  func(r chi.Router, d deps.Deps)
	Middleware = func(http.Handler) http.Handler
	// Guard builds a middleware from the server deps when routes are mounted.
	Guard func(d deps.Deps) Middleware
)

type group struct {
	name   string
	reg    Registrar
	guards []Guard
}

var groups []group

// Register adds a named route group, wrapped in guards applied in order.
// Route files call it from init(); a name can only be registered once.
func Register(name string, reg Registrar, guards ...Guard) {
	if slices.ContainsFunc(groups, func(g group) bool { return g.name == name }) {
		panic("routes: group registered twice: " + name)
	}
	groups = append(groups, group{name: name, reg: reg, guards: guards})
}

// Groups lists the registered group names in registration order.
func Groups() []string {
	names := make([]string, 0, len(groups))
	for _, g := range groups {
		names = append(names, g.name)
	}
	return names
}

// Called once from server.NewRouter()
func RegisterAll(r chi.Router, d deps.Deps) {
	for _, g := range groups {
		sub := r
		if len(g.guards) > 0 {
			mws := make([]Middleware, 0, len(g.guards))
			for _, guard := range g.guards {
				mws = append(mws, guard(d))
			}
			sub = r.With(mws...)
		}
		g.reg(sub, d)
		d.Logger.Debug("routes mounted",
			logger.String("group", g.name),
			logger.Int("guards", len(g.guards)))
	}
}

// Host restricts a group to the allowed Host headers.
func Host(d deps.Deps) Middleware { return mw.EnforceHost(d.AllowedHosts, d.Logger) }

// CIDR restricts a group to the allowed client networks.
func CIDR(d deps.Deps) Middleware {
	return mw.AllowOnlyCIDRS(d.AllowedCIDRS, d.TrustProxy, d.Logger)
}

// MutationBudget applies the per-client tag mutation budget.
func MutationBudget(d deps.Deps) Middleware {
	return mw.LimitMutations(mw.MutationLimit{
		Burst:      d.RateBurst,
		PerMinute:  d.RatePerMin,
		TrustProxy: d.TrustProxy,
		Now:        d.TimeNow,
		Logger:     d.Logger,
	})
}
