package pesapal

import (
	"log/slog"

	"go.uber.org/fx"

	"github.com/wambui/florax/internal/config"
)

// Module exposes the gateway client implementation to the fx graph.
var Module = fx.Provide(newClient)

type clientParams struct {
	fx.In

	Config *config.Config
	Logger *slog.Logger
}

func newClient(p clientParams) (Client, error) {
	return NewHTTPClient(
		p.Config.PesapalBaseURL,
		p.Config.PesapalConsumerKey,
		p.Config.PesapalConsumerSecret,
		p.Config.PesapalCallbackURL,
		p.Logger,
	)
}
