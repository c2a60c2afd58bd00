package main

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/samber/do"

	"github.com/zhouzirui/campaign-concierge/backend/internal/config"
	"github.com/zhouzirui/campaign-concierge/backend/internal/handler"
	"github.com/zhouzirui/campaign-concierge/backend/internal/model/rules"
	"github.com/zhouzirui/campaign-concierge/backend/internal/service/agent"
	"github.com/zhouzirui/campaign-concierge/backend/internal/service/chat"
	"github.com/zhouzirui/campaign-concierge/backend/internal/service/delivery"
)

// newContainer registers every service the API needs. Services are built
// lazily on first invoke.
func newContainer(ctx context.Context, cfg *config.Config) *do.Injector {
	di := do.New()
	do.ProvideValue(di, cfg)

	do.Provide(di, provideRules)
	do.Provide(di, func(i *do.Injector) (*agent.Responder, error) {
		return agent.NewResponder(do.MustInvoke[*rules.MemoryStore](i).Catalog()), nil
	})
	do.Provide(di, func(i *do.Injector) (*agent.Pipeline, error) {
		return agent.NewPipeline(ctx, do.MustInvoke[*agent.Responder](i))
	})
	do.Provide(di, func(i *do.Injector) (*chat.Service, error) {
		return chat.NewService(do.MustInvoke[*agent.Pipeline](i)), nil
	})
	do.Provide(di, func(i *do.Injector) (*delivery.Scheduler, error) {
		typing := do.MustInvoke[*config.Config](i).Typing
		return delivery.NewScheduler(delivery.Config{
			MinDelay: typing.MinDelay,
			MaxDelay: typing.MaxDelay,
			PerChar:  typing.PerChar,
		}), nil
	})
	do.Provide(di, provideRouter)

	return di
}

func provideRules(i *do.Injector) (*rules.MemoryStore, error) {
	cfg := do.MustInvoke[*config.Config](i)

	catalog := rules.Seed()
	if cfg.Rules.Path != "" {
		var err error
		catalog, err = rules.LoadFile(cfg.Rules.Path, catalog)
		if err != nil {
			return nil, err
		}
		slog.Info("rules file merged", "path", cfg.Rules.Path)
	}
	return rules.NewMemoryStore(catalog), nil
}

func provideRouter(i *do.Injector) (http.Handler, error) {
	cfg := do.MustInvoke[*config.Config](i)

	return handler.NewRouter(handler.Options{
		Rules:           do.MustInvoke[*rules.MemoryStore](i),
		Responder:       do.MustInvoke[*agent.Responder](i),
		Chat:            do.MustInvoke[*chat.Service](i),
		Scheduler:       do.MustInvoke[*delivery.Scheduler](i),
		AllowedOrigins:  cfg.Server.AllowedOrigins,
		MaxMessageBytes: cfg.Server.MaxMessageBytes,
	}), nil
}
