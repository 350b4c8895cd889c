package config

import "go.uber.org/fx"

// Module loads configuration once for the whole fx graph.
var Module = fx.Provide(Load)
