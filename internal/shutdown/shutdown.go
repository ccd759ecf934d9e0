package shutdown

import (
	"context"
	"log/slog"
	"sync"
)

type handler struct {
	name string
	fn   func(context.Context) error
}

// Manager runs registered cleanup handlers once, newest first. A failing
// handler is logged and the rest still run.
type Manager struct {
	mu       sync.Mutex
	handlers []handler
	done     bool
	log      *slog.Logger
}

func New(log *slog.Logger) *Manager {
	if log == nil {
		log = slog.Default()
	}
	return &Manager{log: log}
}

func (m *Manager) Register(name string, fn func(context.Context) error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.handlers = append(m.handlers, handler{name: name, fn: fn})
}

// Shutdown is safe to call more than once; only the first call runs handlers.
func (m *Manager) Shutdown(ctx context.Context) {
	m.mu.Lock()
	if m.done {
		m.mu.Unlock()
		return
	}
	m.done = true
	hs := m.handlers
	m.handlers = nil
	m.mu.Unlock()

	for i := len(hs) - 1; i >= 0; i-- {
		if err := hs[i].fn(ctx); err != nil {
			m.log.Error("shutdown handler failed", "handler", hs[i].name, "err", err)
		}
	}
}
