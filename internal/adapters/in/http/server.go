// Package http exposes the brokerage over a JSON REST API. Handlers are thin:
// they parse and authenticate, build a command or query value object, invoke
// the use case, and translate errors to status codes.
package http

import (
	"net/http"
	"time"

	"broker/internal/core/application/usecases/commands"
	"broker/internal/core/application/usecases/queries"
	"broker/internal/core/domain/model/delivery"
	"broker/internal/core/domain/model/kernel"
	"broker/internal/core/domain/model/offer"
	"broker/internal/core/domain/model/quote"
	"broker/internal/core/ports"
	"broker/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

const principalContextKey = "principal"

// Handlers bundles every use case the server fronts.
type Handlers struct {
	CreateQuote       commands.CreateQuoteCommandHandler
	ExtendQuote       commands.ExtendQuoteCommandHandler
	CancelQuote       commands.CancelQuoteCommandHandler
	ExpireQuote       commands.ExpireQuoteCommandHandler
	SubmitOffer       commands.SubmitOfferCommandHandler
	ExtendOffer       commands.ExtendOfferCommandHandler
	RejectOffer       commands.RejectOfferCommandHandler
	AcceptOffer       commands.AcceptOfferCommandHandler
	AdvanceDelivery   commands.AdvanceDeliveryCommandHandler
	SetDeliveryStatus commands.SetDeliveryStatusCommandHandler
	CancelDelivery    commands.CancelDeliveryCommandHandler

	PendingQuotes   queries.GetPendingQuotesQueryHandler
	QuoteWithOffers queries.GetQuoteWithOffersQueryHandler
	ListOffers      queries.ListOffersQueryHandler
	UserQuotes      queries.GetUserQuotesQueryHandler
	UserDeliveries  queries.GetUserDeliveriesQueryHandler
	CourierStats    queries.GetCourierStatsQueryHandler
	DeliveryHistory queries.GetDeliveryHistoryQueryHandler
	GetDelivery     queries.GetDeliveryQueryHandler
}

// Server wires the REST routes to the application layer.
type Server struct {
	handlers Handlers
	identity ports.IdentityProvider
}

// NewServer creates the REST server.
func NewServer(handlers Handlers, identity ports.IdentityProvider) *Server {
	return &Server{
		handlers: handlers,
		identity: identity,
	}
}

// RegisterRoutes mounts every route under /api/v1 behind the authentication
// middleware.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	api := e.Group("/api/v1", s.authenticate)

	api.POST("/quotes", s.createQuote)
	api.GET("/quotes", s.getPendingQuotes)
	api.GET("/quotes/:id", s.getQuote)
	api.DELETE("/quotes/:id", s.cancelQuote)
	api.POST("/quotes/:id/extend", s.extendQuote)
	api.POST("/quotes/:id/expire", s.expireQuote)
	api.GET("/quotes/:id/offers", s.listOffers)
	api.POST("/quotes/:id/offers", s.submitOffer)

	api.POST("/offers/:id/extend", s.extendOffer)
	api.POST("/offers/:id/reject", s.rejectOffer)
	api.POST("/offers/:id/accept", s.acceptOffer)

	api.GET("/deliveries/:id", s.getDelivery)
	api.POST("/deliveries/:id/advance", s.advanceDelivery)
	api.PUT("/deliveries/:id/status", s.setDeliveryStatus)
	api.POST("/deliveries/:id/cancel", s.cancelDelivery)

	api.GET("/users/:id/quotes", s.getUserQuotes)
	api.GET("/users/:id/deliveries", s.getUserDeliveries)
	api.GET("/couriers/:id/stats", s.getCourierStats)
	api.GET("/history/:id", s.getHistory)
}

// authenticate resolves the caller to a principal or refuses with 401.
func (s *Server) authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		principal, err := s.identity.Authenticate(
			c.Request().Context(), c.Request().Header.Get("Authorization"))
		if err != nil {
			return c.JSON(http.StatusUnauthorized, ErrorResponse{
				Code:    "unauthorized",
				Message: "authentication failed",
			})
		}
		c.Set(principalContextKey, principal)
		return next(c)
	}
}

func principalFrom(c echo.Context) ports.Principal {
	principal, _ := c.Get(principalContextKey).(ports.Principal)
	return principal
}

func pathID(c echo.Context) (kernel.UUID, error) {
	return kernel.UUIDFromString(c.Param("id"))
}

type createQuoteRequest struct {
	PickupAddress   string   `json:"pickup_address"`
	DeliveryAddress string   `json:"delivery_address"`
	CategoryID      string   `json:"category_id"`
	Description     string   `json:"description"`
	Observations    []string `json:"observations"`
	VehicleTypeID   *string  `json:"vehicle_type_id"`
	EstimatedWeight *float64 `json:"estimated_weight"`
	EstimatedSize   *string  `json:"estimated_size"`
	ClientPrice     int64    `json:"client_price"`
	PaymentMethod   string   `json:"payment_method"`
}

func (s *Server) createQuote(c echo.Context) error {
	var req createQuoteRequest
	if err := c.Bind(&req); err != nil {
		return respondError(c, errs.NewValueIsInvalidErrorWithCause("body", err))
	}

	categoryID, err := kernel.UUIDFromString(req.CategoryID)
	if err != nil {
		return respondError(c, errs.NewValueIsInvalidErrorWithCause("categoryID", err))
	}

	var vehicleTypeID *kernel.UUID
	if req.VehicleTypeID != nil {
		id, parseErr := kernel.UUIDFromString(*req.VehicleTypeID)
		if parseErr != nil {
			return respondError(c, errs.NewValueIsInvalidErrorWithCause("vehicleTypeID", parseErr))
		}
		vehicleTypeID = &id
	}

	price, err := kernel.NewPrice(req.ClientPrice)
	if err != nil {
		return respondError(c, err)
	}

	paymentMethod, err := quote.PaymentMethodFromString(req.PaymentMethod)
	if err != nil {
		return respondError(c, err)
	}

	quoteID := kernel.NewUUID()
	cmd, err := commands.NewCreateQuoteCommand(
		quoteID,
		principalFrom(c).ID,
		quote.Details{
			PickupAddress:   req.PickupAddress,
			DeliveryAddress: req.DeliveryAddress,
			CategoryID:      categoryID,
			Description:     req.Description,
			Observations:    req.Observations,
			VehicleTypeID:   vehicleTypeID,
			EstimatedWeight: req.EstimatedWeight,
			EstimatedSize:   req.EstimatedSize,
		},
		price,
		paymentMethod,
	)
	if err != nil {
		return respondError(c, err)
	}

	if err = s.handlers.CreateQuote.Handle(c.Request().Context(), cmd); err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusCreated, map[string]string{"id": quoteID.String()})
}

func (s *Server) getPendingQuotes(c echo.Context) error {
	quotes, err := s.handlers.PendingQuotes.Handle(c.Request().Context(), queries.NewGetPendingQuotesQuery())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, quotes)
}

func (s *Server) getQuote(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return respondError(c, errs.NewValueIsInvalidErrorWithCause("id", err))
	}

	query, err := queries.NewGetQuoteWithOffersQuery(id)
	if err != nil {
		return respondError(c, err)
	}

	view, err := s.handlers.QuoteWithOffers.Handle(c.Request().Context(), query)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, view)
}

type extendRequest struct {
	Minutes int `json:"minutes"`
}

func (s *Server) extendQuote(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return respondError(c, errs.NewValueIsInvalidErrorWithCause("id", err))
	}

	var req extendRequest
	if err = c.Bind(&req); err != nil {
		return respondError(c, errs.NewValueIsInvalidErrorWithCause("body", err))
	}

	cmd, err := commands.NewExtendQuoteCommand(id, req.Minutes)
	if err != nil {
		return respondError(c, err)
	}

	if err = s.handlers.ExtendQuote.Handle(c.Request().Context(), cmd); err != nil {
		return respondError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (s *Server) cancelQuote(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return respondError(c, errs.NewValueIsInvalidErrorWithCause("id", err))
	}

	cmd, err := commands.NewCancelQuoteCommand(id, principalFrom(c).ID)
	if err != nil {
		return respondError(c, err)
	}

	if err = s.handlers.CancelQuote.Handle(c.Request().Context(), cmd); err != nil {
		return respondError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (s *Server) expireQuote(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return respondError(c, errs.NewValueIsInvalidErrorWithCause("id", err))
	}

	cmd, err := commands.NewExpireQuoteCommand(id, principalFrom(c))
	if err != nil {
		return respondError(c, err)
	}

	if err = s.handlers.ExpireQuote.Handle(c.Request().Context(), cmd); err != nil {
		return respondError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (s *Server) listOffers(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return respondError(c, errs.NewValueIsInvalidErrorWithCause("id", err))
	}

	var statusFilter *offer.Status
	if raw := c.QueryParam("status"); raw != "" {
		parsed, ok := offerStatusFromString(raw)
		if !ok {
			return respondError(c, errs.NewValueIsInvalidError("status"))
		}
		statusFilter = &parsed
	}

	query, err := queries.NewListOffersQuery(id, statusFilter)
	if err != nil {
		return respondError(c, err)
	}

	offers, err := s.handlers.ListOffers.Handle(c.Request().Context(), query)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, offers)
}

func offerStatusFromString(raw string) (offer.Status, bool) {
	for _, status := range []offer.Status{offer.Pending, offer.Accepted, offer.Rejected, offer.Expired} {
		if status.String() == raw {
			return status, true
		}
	}
	return offer.Unknown, false
}

type submitOfferRequest struct {
	ProposedPrice            int64   `json:"proposed_price"`
	EstimatedDurationSeconds *int64  `json:"estimated_duration_seconds"`
	VehicleID                *string `json:"vehicle_id"`
}

func (s *Server) submitOffer(c echo.Context) error {
	quoteID, err := pathID(c)
	if err != nil {
		return respondError(c, errs.NewValueIsInvalidErrorWithCause("id", err))
	}

	var req submitOfferRequest
	if err = c.Bind(&req); err != nil {
		return respondError(c, errs.NewValueIsInvalidErrorWithCause("body", err))
	}

	price, err := kernel.NewPrice(req.ProposedPrice)
	if err != nil {
		return respondError(c, err)
	}

	var estimatedDuration *time.Duration
	if req.EstimatedDurationSeconds != nil {
		d := time.Duration(*req.EstimatedDurationSeconds) * time.Second
		estimatedDuration = &d
	}

	var vehicleID *kernel.UUID
	if req.VehicleID != nil {
		id, parseErr := kernel.UUIDFromString(*req.VehicleID)
		if parseErr != nil {
			return respondError(c, errs.NewValueIsInvalidErrorWithCause("vehicleID", parseErr))
		}
		vehicleID = &id
	}

	offerID := kernel.NewUUID()
	cmd, err := commands.NewSubmitOfferCommand(
		offerID, principalFrom(c).ID, quoteID, price, estimatedDuration, vehicleID)
	if err != nil {
		return respondError(c, err)
	}

	if err = s.handlers.SubmitOffer.Handle(c.Request().Context(), cmd); err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusCreated, map[string]string{"id": offerID.String()})
}

func (s *Server) extendOffer(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return respondError(c, errs.NewValueIsInvalidErrorWithCause("id", err))
	}

	var req extendRequest
	if err = c.Bind(&req); err != nil {
		return respondError(c, errs.NewValueIsInvalidErrorWithCause("body", err))
	}

	cmd, err := commands.NewExtendOfferCommand(id, req.Minutes)
	if err != nil {
		return respondError(c, err)
	}

	if err = s.handlers.ExtendOffer.Handle(c.Request().Context(), cmd); err != nil {
		return respondError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (s *Server) rejectOffer(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return respondError(c, errs.NewValueIsInvalidErrorWithCause("id", err))
	}

	cmd, err := commands.NewRejectOfferCommand(id, principalFrom(c).ID)
	if err != nil {
		return respondError(c, err)
	}

	if err = s.handlers.RejectOffer.Handle(c.Request().Context(), cmd); err != nil {
		return respondError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (s *Server) acceptOffer(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return respondError(c, errs.NewValueIsInvalidErrorWithCause("id", err))
	}

	cmd, err := commands.NewAcceptOfferCommand(id, principalFrom(c).ID)
	if err != nil {
		return respondError(c, err)
	}

	if err = s.handlers.AcceptOffer.Handle(c.Request().Context(), cmd); err != nil {
		return respondError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (s *Server) getDelivery(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return respondError(c, errs.NewValueIsInvalidErrorWithCause("id", err))
	}

	query, err := queries.NewGetDeliveryQuery(id)
	if err != nil {
		return respondError(c, err)
	}

	view, err := s.handlers.GetDelivery.Handle(c.Request().Context(), query)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, view)
}

func (s *Server) advanceDelivery(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return respondError(c, errs.NewValueIsInvalidErrorWithCause("id", err))
	}

	cmd, err := commands.NewAdvanceDeliveryCommand(id, principalFrom(c).ID)
	if err != nil {
		return respondError(c, err)
	}

	if err = s.handlers.AdvanceDelivery.Handle(c.Request().Context(), cmd); err != nil {
		return respondError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

type setStatusRequest struct {
	Status string `json:"status"`
}

func (s *Server) setDeliveryStatus(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return respondError(c, errs.NewValueIsInvalidErrorWithCause("id", err))
	}

	var req setStatusRequest
	if err = c.Bind(&req); err != nil {
		return respondError(c, errs.NewValueIsInvalidErrorWithCause("body", err))
	}

	status, err := delivery.StatusFromString(req.Status)
	if err != nil {
		return respondError(c, err)
	}

	cmd, err := commands.NewSetDeliveryStatusCommand(id, status, principalFrom(c).ID)
	if err != nil {
		return respondError(c, err)
	}

	if err = s.handlers.SetDeliveryStatus.Handle(c.Request().Context(), cmd); err != nil {
		return respondError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (s *Server) cancelDelivery(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return respondError(c, errs.NewValueIsInvalidErrorWithCause("id", err))
	}

	cmd, err := commands.NewCancelDeliveryCommand(id, principalFrom(c).ID)
	if err != nil {
		return respondError(c, err)
	}

	if err = s.handlers.CancelDelivery.Handle(c.Request().Context(), cmd); err != nil {
		return respondError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// requireOwner guards the private per-user resources: only the owner or an
// admin may read them.
func requireOwner(c echo.Context, id kernel.UUID) error {
	principal := principalFrom(c)
	if principal.IsAdmin() || principal.ID.IsEqual(id) {
		return nil
	}
	return errs.NewUnauthorizedError("resource is restricted to its owner")
}

func (s *Server) getUserQuotes(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return respondError(c, errs.NewValueIsInvalidErrorWithCause("id", err))
	}
	if err = requireOwner(c, id); err != nil {
		return respondError(c, err)
	}

	query, err := queries.NewGetUserQuotesQuery(id)
	if err != nil {
		return respondError(c, err)
	}

	quotes, err := s.handlers.UserQuotes.Handle(c.Request().Context(), query)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, quotes)
}

func (s *Server) getUserDeliveries(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return respondError(c, errs.NewValueIsInvalidErrorWithCause("id", err))
	}
	if err = requireOwner(c, id); err != nil {
		return respondError(c, err)
	}

	query, err := queries.NewGetUserDeliveriesQuery(id)
	if err != nil {
		return respondError(c, err)
	}

	deliveries, err := s.handlers.UserDeliveries.Handle(c.Request().Context(), query)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, deliveries)
}

func (s *Server) getCourierStats(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return respondError(c, errs.NewValueIsInvalidErrorWithCause("id", err))
	}
	if err = requireOwner(c, id); err != nil {
		return respondError(c, err)
	}

	query, err := queries.NewGetCourierStatsQuery(id)
	if err != nil {
		return respondError(c, err)
	}

	stats, err := s.handlers.CourierStats.Handle(c.Request().Context(), query)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, stats)
}

func (s *Server) getHistory(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return respondError(c, errs.NewValueIsInvalidErrorWithCause("id", err))
	}

	query, err := queries.NewGetDeliveryHistoryQuery(id)
	if err != nil {
		return respondError(c, err)
	}

	events, err := s.handlers.DeliveryHistory.Handle(c.Request().Context(), query)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, events)
}
