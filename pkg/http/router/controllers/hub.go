package controllers

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"sync"
	"time"

	"github.com/angiepellets-dev/Holz-Markt/pkg/concurrent"
	"github.com/angiepellets-dev/Holz-Markt/pkg/datastructure"
	"github.com/angiepellets-dev/Holz-Markt/pkg/geo"
	"github.com/angiepellets-dev/Holz-Markt/pkg/routing"
	"github.com/gobwas/ws/wsutil"
	"go.uber.org/zap"
)

// radius for resolving a bare map click to the nearest catalog entity
const selectRadiusKm = 25.0

const routeTimeout = 30 * time.Second

// sessionCommand is one client frame of the interactive map session.
type sessionCommand struct {
	Action string `json:"action"` // filters | select | clear

	// filters
	Filters *datastructure.FilterConfiguration `json:"filters,omitempty"`
	Mode    string                             `json:"mode,omitempty"`

	// select
	Label string  `json:"label,omitempty"`
	Lat   float64 `json:"lat,omitempty"`
	Lon   float64 `json:"lon,omitempty"`
}

type sessionEvent struct {
	Event string      `json:"event"`
	Data  interface{} `json:"data,omitempty"`
	Error string      `json:"error,omitempty"`
}

// Hub tracks the connected websocket users.
type Hub struct {
	mu    sync.Mutex
	users map[*User]struct{}

	pool         *concurrent.WorkerPool
	mapService   MapService
	routeService RouteService
	log          *zap.Logger
}

func NewHub(pool *concurrent.WorkerPool, mapService MapService,
	routeService RouteService, log *zap.Logger) *Hub {
	return &Hub{
		users:        make(map[*User]struct{}),
		pool:         pool,
		mapService:   mapService,
		routeService: routeService,
		log:          log,
	}
}

func (h *Hub) Register(conn net.Conn) *User {
	user := &User{
		conn:      conn,
		hub:       h,
		selection: routing.NewSelection(),
		filters:   DefaultFilters(),
		mode:      datastructure.PriceModeUnit,
	}

	h.mu.Lock()
	h.users[user] = struct{}{}
	h.mu.Unlock()

	// the session opens with the full marker set under default filters
	h.pool.Schedule(func() {
		if err := user.pushMarkers(); err != nil {
			h.log.Warn("initial marker push failed", zap.Error(err))
		}
	})
	return user
}

func (h *Hub) Remove(u *User) {
	h.mu.Lock()
	_, ok := h.users[u]
	delete(h.users, u)
	h.mu.Unlock()

	if ok {
		u.conn.Close()
	}
}

func (h *Hub) RemoveAllUser() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for u := range h.users {
		u.conn.Close()
		delete(h.users, u)
	}
}

// DefaultFilters is the toggle state a fresh session starts with, every
// dimension enabled.
func DefaultFilters() datastructure.FilterConfiguration {
	return datastructure.FilterConfiguration{
		ShowPellets:        true,
		ShowResidualWood:   true,
		ShowPlainCustomers: true,
		ShowBagCustomers:   true,
		Certificates:       []string{"enplus", "dinplus"},
		AllowNoCertificate: true,
		Tiers: []datastructure.PriceTier{
			datastructure.TierNeutral, datastructure.TierLow,
			datastructure.TierMedium, datastructure.TierHigh,
		},
	}
}

// User is one websocket session. Filter state and the two-point route
// selection live per connection.
type User struct {
	io   sync.Mutex
	conn net.Conn
	hub  *Hub

	selection *routing.Selection
	filters   datastructure.FilterConfiguration
	mode      datastructure.PriceMode
}

// HandleCommand reads and answers a single client frame. A returned error
// means the connection is unusable and the caller must remove the user.
func (u *User) HandleCommand() error {
	data, err := wsutil.ReadClientText(u.conn)
	if err != nil {
		return err
	}

	var cmd sessionCommand
	if err := json.Unmarshal(data, &cmd); err != nil {
		return u.writeError(fmt.Sprintf("bad command: %v", err))
	}

	switch cmd.Action {
	case "filters":
		if cmd.Filters != nil {
			u.filters = *cmd.Filters
		}
		if cmd.Mode != "" {
			u.mode = priceMode(cmd.Mode)
		}
		return u.pushMarkers()
	case "select":
		return u.handleSelect(cmd)
	case "clear":
		u.selection.Clear()
		return u.writeEvent(sessionEvent{Event: "cleared"})
	default:
		return u.writeError(fmt.Sprintf("unknown action %q", cmd.Action))
	}
}

// handleSelect records a click. A click with a label selects that entity
// directly; a bare coordinate click selects the nearest positioned entity,
// and counts as a background click (clearing any pending selection) when
// nothing is near. The second selected point triggers the route.
func (u *User) handleSelect(cmd sessionCommand) error {
	label := cmd.Label
	position := geo.NewCoordinate(cmd.Lat, cmd.Lon)

	if label == "" {
		nearest, pos, ok := u.hub.mapService.NearestEntity(cmd.Lat, cmd.Lon, selectRadiusKm)
		if !ok {
			u.selection.Clear()
			return u.writeEvent(sessionEvent{Event: "cleared"})
		}
		label, position = nearest, pos
	}

	a, b, ready := u.selection.Add(routing.SelectedPoint{Label: label, Position: position})
	if !ready {
		return u.writeEvent(sessionEvent{Event: "selected", Data: envelope{"label": label}})
	}

	ctx, cancel := context.WithTimeout(context.Background(), routeTimeout)
	defer cancel()

	result, err := u.hub.routeService.Route(ctx, a, b, u.mode)
	u.selection.Clear()
	if err != nil {
		u.hub.log.Warn("route over websocket failed", zap.Error(err))
		return u.writeError(err.Error())
	}
	return u.writeEvent(sessionEvent{Event: "route", Data: result})
}

func (u *User) pushMarkers() error {
	markers, viewport := u.hub.mapService.VisibleMarkers(u.filters, u.mode)
	return u.writeEvent(sessionEvent{Event: "markers", Data: envelope{
		"markers":  markers,
		"viewport": viewport,
	}})
}

func (u *User) writeError(message string) error {
	return u.writeEvent(sessionEvent{Event: "error", Error: message})
}

func (u *User) writeEvent(ev sessionEvent) error {
	js, err := json.Marshal(ev)
	if err != nil {
		return err
	}

	u.io.Lock()
	defer u.io.Unlock()
	return wsutil.WriteServerText(u.conn, js)
}
