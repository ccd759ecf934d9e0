package shutdown

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestShutdownRunsNewestFirstOnce(t *testing.T) {
	var buf bytes.Buffer
	m := New(slog.New(slog.NewTextHandler(&buf, nil)))
	var order []string
	m.Register("pool", func(context.Context) error { order = append(order, "pool"); return nil })
	m.Register("tracer", func(context.Context) error { order = append(order, "tracer"); return errors.New("flush failed") })
	m.Register("server", func(context.Context) error { order = append(order, "server"); return nil })

	m.Shutdown(context.Background())
	m.Shutdown(context.Background())

	assert.Equal(t, []string{"server", "tracer", "pool"}, order)
	assert.Contains(t, buf.String(), "handler=tracer")
	assert.Contains(t, buf.String(), "flush failed")
}

func TestShutdownWithoutHandlers(t *testing.T) {
	assert.NotPanics(t, func() { New(nil).Shutdown(context.Background()) })
}
