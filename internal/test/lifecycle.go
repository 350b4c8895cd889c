package test

import (
	"go.uber.org/fx"
)

// LifecycleRecorder collects hooks registered by fx components so tests
// can run OnStart/OnStop by hand.
type LifecycleRecorder struct {
	Hooks []fx.Hook
}

// Append records the hook without executing it.
func (l *LifecycleRecorder) Append(h fx.Hook) {
	l.Hooks = append(l.Hooks, h)
}

// ShutdownerStub signals on Called whenever the app asks to shut down.
type ShutdownerStub struct {
	Called chan struct{}
}

// Shutdown implements fx.Shutdowner. The notification is non-blocking
// so repeated shutdowns never hang a test.
func (s *ShutdownerStub) Shutdown(...fx.ShutdownOption) error {
	if s.Called != nil {
		select {
		case s.Called <- struct{}{}:
		default:
		}
	}
	return nil
}
