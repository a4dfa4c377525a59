package main

import (
	"log"

	"codgate/internal/api"
	"codgate/internal/cache"
	"codgate/internal/config"
	"codgate/internal/database"
	"codgate/internal/events"
	"codgate/internal/identity"
	"codgate/internal/intake"
	"codgate/internal/metrics"
	"codgate/internal/model"
	"codgate/internal/platform"
	"codgate/internal/sequence"
	"codgate/internal/settlement"
	"codgate/internal/tracing"
)

func main() {
	cfg := config.Get()

	shutdownTracing := tracing.InitTracerProvider("codgate")
	defer shutdownTracing()
	metrics.Init()

	storage, err := database.New(cfg.Postgres.URL, "./internal/database/migrations")
	if err != nil {
		log.Fatalf("failed to initialize storage: %v", err)
	}
	defer storage.Close()

	lookupCache := cache.NewLRUCache(cfg.Cache.Size)

	publisher := events.NewPublisher(cfg.Kafka)
	defer publisher.Close()

	defaults := model.RegionDefaults{
		City:       cfg.Region.DefaultCity,
		Province:   cfg.Region.DefaultProvince,
		PostalCode: cfg.Region.DefaultPostalCode,
	}

	sequencer := sequence.New(storage)
	intakeSvc := intake.NewService(storage, sequencer, lookupCache, publisher, defaults, cfg.Region.Currency)
	settlementSvc := settlement.NewService(
		platform.NewClient(cfg.Platform.APIVersion),
		intakeSvc,
		cfg.Platform.ProxyToken,
		cfg.Platform.AdminToken,
		defaults,
		cfg.Region.Currency,
	)
	resolver := identity.New(storage, lookupCache)

	handler := api.NewOrderHandler(intakeSvc, settlementSvc, resolver)
	server := api.NewServer(cfg.HTTP.Port, handler)
	if err := server.Run(); err != nil {
		log.Fatalf("HTTP server failed: %v", err)
	}
}
