package upload

import (
	"github.com/wambui/florax/internal/config"
	"go.uber.org/fx"
)

// Module wires the image store for dependency injection.
var Module = fx.Provide(newStore)

type storeParams struct {
	fx.In

	Config *config.Config
}

func newStore(p storeParams) (*Store, error) {
	return New(p.Config.UploadDir)
}
