package routerhelper

import (
	"path"

	"github.com/julienschmidt/httprouter"
)

// RouteGroup registers handlers under a shared path prefix.
type RouteGroup struct {
	router *httprouter.Router
	prefix string
}

func NewRouteGroup(router *httprouter.Router, prefix string) *RouteGroup {
	return &RouteGroup{router: router, prefix: prefix}
}

func (g *RouteGroup) GET(subpath string, handle httprouter.Handle) {
	g.router.GET(path.Join(g.prefix, subpath), handle)
}

func (g *RouteGroup) POST(subpath string, handle httprouter.Handle) {
	g.router.POST(path.Join(g.prefix, subpath), handle)
}

func (g *RouteGroup) DELETE(subpath string, handle httprouter.Handle) {
	g.router.DELETE(path.Join(g.prefix, subpath), handle)
}
