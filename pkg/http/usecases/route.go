package usecases

import (
	"context"

	"github.com/angiepellets-dev/Holz-Markt/pkg/datastructure"
	"github.com/angiepellets-dev/Holz-Markt/pkg/routing"
	"go.uber.org/zap"
)

type RouteService struct {
	log    *zap.Logger
	engine *routing.Engine
}

func NewRouteService(log *zap.Logger, engine *routing.Engine) *RouteService {
	return &RouteService{log: log, engine: engine}
}

func (rs *RouteService) Route(ctx context.Context, a, b routing.SelectedPoint,
	mode datastructure.PriceMode) (*routing.RouteResult, error) {
	return rs.engine.ComputeRoute(ctx, a, b, mode)
}
