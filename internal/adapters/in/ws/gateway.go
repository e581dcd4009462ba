package ws

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"broker/internal/core/application/usecases/queries"
	"broker/internal/core/domain/model/kernel"
	"broker/internal/core/ports"
	"broker/internal/pkg/errs"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
)

const (
	writeTimeout = 10 * time.Second
	pingInterval = 30 * time.Second
	pongTimeout  = 60 * time.Second
)

// Snapshots bundles the read-model handlers the gateway uses for the initial
// push after a successful join.
type Snapshots struct {
	PendingQuotes   queries.GetPendingQuotesQueryHandler
	QuoteWithOffers queries.GetQuoteWithOffersQueryHandler
	UserQuotes      queries.GetUserQuotesQueryHandler
	UserDeliveries  queries.GetUserDeliveriesQueryHandler
	CourierStats    queries.GetCourierStatsQueryHandler
}

// groupKind is the per-path-segment behavior of a subscription: how to name
// the group, whether the principal may join it, and what to push first. The
// variant is selected once at connect time.
type groupKind struct {
	needsID   bool
	group     func(id kernel.UUID) string
	authorize func(principal ports.Principal, id kernel.UUID) error
	snapshot  func(ctx context.Context, id kernel.UUID) (*ports.Event, error)
}

// Gateway upgrades authenticated HTTP requests to websocket subscriptions.
// Connect flow: authenticate, resolve the group kind from the path, authorize,
// upgrade, join the hub, push the kind's snapshot, then pump events until the
// peer goes away.
type Gateway struct {
	hub       *Hub
	identity  ports.IdentityProvider
	snapshots Snapshots
	logger    *slog.Logger
	upgrader  websocket.Upgrader
}

// NewGateway creates a subscription gateway backed by the given hub.
func NewGateway(
	hub *Hub,
	identity ports.IdentityProvider,
	snapshots Snapshots,
	logger *slog.Logger,
) *Gateway {
	return &Gateway{
		hub:       hub,
		identity:  identity,
		snapshots: snapshots,
		logger:    logger.With("component", "ws_gateway"),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(*http.Request) bool { return true },
		},
	}
}

func ownerOnly(principal ports.Principal, id kernel.UUID) error {
	if principal.IsAdmin() || principal.ID.IsEqual(id) {
		return nil
	}
	return errs.NewUnauthorizedError("subscription is restricted to the feed owner")
}

func anyPrincipal(ports.Principal, kernel.UUID) error {
	return nil
}

func (g *Gateway) kinds() map[string]groupKind {
	return map[string]groupKind{
		"new_quotes": {
			group:     func(kernel.UUID) string { return ports.GroupNewQuotes },
			authorize: anyPrincipal,
			snapshot: func(ctx context.Context, _ kernel.UUID) (*ports.Event, error) {
				quotes, err := g.snapshots.PendingQuotes.Handle(ctx, queries.NewGetPendingQuotesQuery())
				if err != nil {
					return nil, err
				}
				return &ports.Event{Type: ports.EventInitialQuotes, Data: quotes}, nil
			},
		},
		"quote": {
			needsID:   true,
			group:     ports.GroupQuote,
			authorize: anyPrincipal,
			snapshot: func(ctx context.Context, id kernel.UUID) (*ports.Event, error) {
				query, err := queries.NewGetQuoteWithOffersQuery(id)
				if err != nil {
					return nil, err
				}
				view, err := g.snapshots.QuoteWithOffers.Handle(ctx, query)
				if err != nil {
					return nil, err
				}
				return &ports.Event{Type: ports.EventInitialQuotes, Data: view}, nil
			},
		},
		"delivery": {
			needsID:   true,
			group:     ports.GroupDelivery,
			authorize: anyPrincipal,
		},
		"user_quotes": {
			needsID:   true,
			group:     ports.GroupUserQuotes,
			authorize: ownerOnly,
			snapshot: func(ctx context.Context, id kernel.UUID) (*ports.Event, error) {
				query, err := queries.NewGetUserQuotesQuery(id)
				if err != nil {
					return nil, err
				}
				quotes, err := g.snapshots.UserQuotes.Handle(ctx, query)
				if err != nil {
					return nil, err
				}
				return &ports.Event{Type: ports.EventInitialQuotes, Data: quotes}, nil
			},
		},
		"user_deliveries": {
			needsID:   true,
			group:     ports.GroupUserDeliveries,
			authorize: ownerOnly,
			snapshot: func(ctx context.Context, id kernel.UUID) (*ports.Event, error) {
				query, err := queries.NewGetUserDeliveriesQuery(id)
				if err != nil {
					return nil, err
				}
				deliveries, err := g.snapshots.UserDeliveries.Handle(ctx, query)
				if err != nil {
					return nil, err
				}
				return &ports.Event{Type: ports.EventDeliveryAssigned, Data: deliveries}, nil
			},
		},
		"courier_stats": {
			needsID:   true,
			group:     ports.GroupCourierStats,
			authorize: ownerOnly,
			snapshot: func(ctx context.Context, id kernel.UUID) (*ports.Event, error) {
				query, err := queries.NewGetCourierStatsQuery(id)
				if err != nil {
					return nil, err
				}
				stats, err := g.snapshots.CourierStats.Handle(ctx, query)
				if err != nil {
					return nil, err
				}
				return &ports.Event{Type: ports.EventPersonStats, Data: stats}, nil
			},
		},
	}
}

// credentials pulls the bearer token from the query string or the
// Authorization header; browsers cannot set headers on websocket dials, so
// the query parameter is the primary channel.
func credentials(c echo.Context) string {
	if token := c.QueryParam("token"); token != "" {
		return token
	}
	return c.Request().Header.Get("Authorization")
}

// Handle is the echo endpoint for GET /ws/:kind and GET /ws/:kind/:id.
func (g *Gateway) Handle(c echo.Context) error {
	ctx := c.Request().Context()

	principal, err := g.identity.Authenticate(ctx, credentials(c))
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "authentication failed")
	}

	kind, ok := g.kinds()[c.Param("kind")]
	if !ok {
		return echo.NewHTTPError(http.StatusNotFound, "unknown subscription kind")
	}

	var id kernel.UUID
	if kind.needsID {
		id, err = kernel.UUIDFromString(c.Param("id"))
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
		}
	}

	if err = kind.authorize(principal, id); err != nil {
		return echo.NewHTTPError(http.StatusForbidden, "subscription not allowed")
	}

	conn, err := g.upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		return err
	}
	defer conn.Close()

	group := kind.group(id)
	subscription := g.hub.Join(group)
	defer subscription.Close()

	g.logger.Info("subscriber joined", "group", group, "principal", principal.ID.String())

	// The snapshot goes out before any live event; a failed snapshot is
	// logged but does not tear down the live stream.
	if kind.snapshot != nil {
		event, snapErr := kind.snapshot(ctx, id)
		if snapErr != nil {
			g.logger.Error("snapshot failed", "group", group, "error", snapErr)
		} else if writeErr := g.write(conn, *event); writeErr != nil {
			return nil
		}
	}

	done := make(chan struct{})
	go g.readUntilClose(conn, done)
	g.writePump(conn, subscription, done)

	g.logger.Info("subscriber left", "group", group, "principal", principal.ID.String())
	return nil
}

// readUntilClose drains inbound frames so pongs and close frames are
// processed, and signals when the peer goes away.
func (g *Gateway) readUntilClose(conn *websocket.Conn, done chan<- struct{}) {
	defer close(done)

	_ = conn.SetReadDeadline(time.Now().Add(pongTimeout))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongTimeout))
	})

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}

// writePump forwards hub events to the peer and keeps the connection alive
// with pings. Returns when the peer disconnects or a write fails.
func (g *Gateway) writePump(conn *websocket.Conn, subscription *Subscription, done <-chan struct{}) {
	pings := time.NewTicker(pingInterval)
	defer pings.Stop()

	for {
		select {
		case <-done:
			return
		case event := <-subscription.Events():
			if err := g.write(conn, event); err != nil {
				return
			}
		case <-pings.C:
			_ = conn.SetWriteDeadline(time.Now().Add(writeTimeout))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func (g *Gateway) write(conn *websocket.Conn, event ports.Event) error {
	_ = conn.SetWriteDeadline(time.Now().Add(writeTimeout))
	return conn.WriteJSON(event)
}
