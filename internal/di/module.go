package di

import (
	"go.uber.org/fx"

	"github.com/wambui/florax/internal/adapter/pesapal"
	"github.com/wambui/florax/internal/app"
	"github.com/wambui/florax/internal/config"
	"github.com/wambui/florax/internal/logger"
	"github.com/wambui/florax/internal/pkg/auth"
	"github.com/wambui/florax/internal/pkg/upload"
	"github.com/wambui/florax/internal/server/http/handlers"
	"github.com/wambui/florax/internal/server/http/router"
	"github.com/wambui/florax/internal/storage/postgres"
	"github.com/wambui/florax/internal/usecase"
)

func Module(opts ...fx.Option) fx.Option {
	modules := []fx.Option{
		config.Module,
		logger.Module,
		auth.Module,
		upload.Module,
		postgres.Module,
		pesapal.Module,
		usecase.Module,
		fx.Provide(func(f *app.MarketplaceFacade) handlers.MarketplaceFacade { return f }),
		router.Module,
		app.Module,
	}
	modules = append(modules, opts...)
	return fx.Options(modules...)
}
