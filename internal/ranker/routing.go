package ranker

import (
	"context"

	"github.com/Junyu06/DynamicDo-Backend/internal/models"
	"github.com/Junyu06/DynamicDo-Backend/internal/ranking"
)

// Routing dispatches each ranking request to a provider adapter chosen by the
// model router, threading the routed model through the request.
type Routing struct {
	router   *models.Router
	adapters map[string]ranking.Ranker
}

func NewRouting(router *models.Router, adapters map[string]ranking.Ranker) *Routing {
	return &Routing{router: router, adapters: adapters}
}

func (r *Routing) Rank(ctx context.Context, req ranking.Request) ([]ranking.Entry, error) {
	decision := r.router.Route(models.RouteInput{Debug: req.Mode == ranking.ModeDebug})
	adapter, ok := r.adapters[decision.Provider]
	if !ok {
		return nil, gatewayErr(decision.Provider, "no adapter configured for provider")
	}
	if decision.Model != "" {
		req.Model = decision.Model
	}
	return adapter.Rank(ctx, req)
}
