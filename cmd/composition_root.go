package cmd

import (
	"log/slog"
	"time"

	httpadapter "broker/internal/adapters/in/http"
	"broker/internal/adapters/in/identity"
	"broker/internal/adapters/in/ws"
	"broker/internal/adapters/out/postgres"
	"broker/internal/core/application/usecases/commands"
	"broker/internal/core/application/usecases/queries"
	"broker/internal/core/domain/model/kernel"
	"broker/internal/core/ports"
	"broker/internal/jobs"

	"gorm.io/gorm"
)

type CompositionRoot struct {
	gormDB     *gorm.DB
	uowFactory postgres.GormUnitOfWorkFactory
	hub        *ws.Hub
	ttl        kernel.TTLPolicy
	logger     *slog.Logger
}

func NewCompositionRoot(configs Config, gormDB *gorm.DB, logger *slog.Logger) CompositionRoot {
	ttl, err := kernel.NewTTLPolicy(configs.QuoteTTLMinutes, configs.OfferTTLMinutes)
	if err != nil {
		ttl = kernel.DefaultTTLPolicy()
		logger.Warn("invalid TTL configuration, falling back to defaults",
			"quote_ttl_minutes", configs.QuoteTTLMinutes,
			"offer_ttl_minutes", configs.OfferTTLMinutes)
	}

	return CompositionRoot{
		gormDB:     gormDB,
		uowFactory: *postgres.NewGormUnitOfWorkFactory(gormDB),
		hub:        ws.NewHub(logger),
		ttl:        ttl,
		logger:     logger,
	}
}

func (c *CompositionRoot) Broadcaster() ports.Broadcaster {
	return c.hub
}

func (c *CompositionRoot) quoteUoWFactory() commands.QuoteUoWFactory {
	return FuncQuoteUoWFactory(func() commands.QuoteUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) deliveryUoWFactory() commands.DeliveryUoWFactory {
	return FuncDeliveryUoWFactory(func() commands.DeliveryUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) fullUoWFactory() commands.UoWFactory {
	return FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) CreateSweepExpiredCommandHandler() commands.SweepExpiredCommandHandler {
	return commands.NewSweepExpiredCommandHandler(c.fullUoWFactory(), c.hub)
}

func (c *CompositionRoot) createCommandHandlers() httpadapter.Handlers {
	return httpadapter.Handlers{
		CreateQuote:       commands.NewCreateQuoteCommandHandler(c.quoteUoWFactory(), c.hub, c.ttl),
		ExtendQuote:       commands.NewExtendQuoteCommandHandler(c.quoteUoWFactory()),
		CancelQuote:       commands.NewCancelQuoteCommandHandler(c.quoteUoWFactory(), c.hub),
		ExpireQuote:       commands.NewExpireQuoteCommandHandler(c.quoteUoWFactory(), c.hub),
		SubmitOffer:       commands.NewSubmitOfferCommandHandler(c.quoteUoWFactory(), c.hub, c.ttl),
		ExtendOffer:       commands.NewExtendOfferCommandHandler(c.quoteUoWFactory()),
		RejectOffer:       commands.NewRejectOfferCommandHandler(c.quoteUoWFactory(), c.hub),
		AcceptOffer:       commands.NewAcceptOfferCommandHandler(c.fullUoWFactory(), c.hub),
		AdvanceDelivery:   commands.NewAdvanceDeliveryCommandHandler(c.deliveryUoWFactory(), c.hub),
		SetDeliveryStatus: commands.NewSetDeliveryStatusCommandHandler(c.deliveryUoWFactory(), c.hub),
		CancelDelivery:    commands.NewCancelDeliveryCommandHandler(c.deliveryUoWFactory(), c.hub),

		PendingQuotes:   queries.NewGetPendingQuotesQueryHandler(c.gormDB),
		QuoteWithOffers: queries.NewGetQuoteWithOffersQueryHandler(c.gormDB),
		ListOffers:      queries.NewListOffersQueryHandler(c.gormDB),
		UserQuotes:      queries.NewGetUserQuotesQueryHandler(c.gormDB),
		UserDeliveries:  queries.NewGetUserDeliveriesQueryHandler(c.gormDB),
		CourierStats:    queries.NewGetCourierStatsQueryHandler(c.gormDB),
		DeliveryHistory: queries.NewGetDeliveryHistoryQueryHandler(c.gormDB),
		GetDelivery:     queries.NewGetDeliveryQueryHandler(c.gormDB),
	}
}

// CreateHTTPServer assembles the REST server with every handler wired.
func (c *CompositionRoot) CreateHTTPServer() *httpadapter.Server {
	return httpadapter.NewServer(c.createCommandHandlers(), identity.NewStaticProvider())
}

// CreateWSGateway assembles the websocket gateway with the snapshot queries.
func (c *CompositionRoot) CreateWSGateway() *ws.Gateway {
	snapshots := ws.Snapshots{
		PendingQuotes:   queries.NewGetPendingQuotesQueryHandler(c.gormDB),
		QuoteWithOffers: queries.NewGetQuoteWithOffersQueryHandler(c.gormDB),
		UserQuotes:      queries.NewGetUserQuotesQueryHandler(c.gormDB),
		UserDeliveries:  queries.NewGetUserDeliveriesQueryHandler(c.gormDB),
		CourierStats:    queries.NewGetCourierStatsQueryHandler(c.gormDB),
	}
	return ws.NewGateway(c.hub, identity.NewStaticProvider(), snapshots, c.logger)
}

// CreateJobManager assembles the background job scheduler.
func (c *CompositionRoot) CreateJobManager(sweepInterval time.Duration) *jobs.JobManager {
	return jobs.NewJobManager(c.CreateSweepExpiredCommandHandler(), sweepInterval, c.logger)
}

type FuncQuoteUoWFactory func() commands.QuoteUoW

func (f FuncQuoteUoWFactory) Create() commands.QuoteUoW {
	return f()
}

type FuncDeliveryUoWFactory func() commands.DeliveryUoW

func (f FuncDeliveryUoWFactory) Create() commands.DeliveryUoW {
	return f()
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}
