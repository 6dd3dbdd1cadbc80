package main

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/aipilotbyjd/n8njdfront/pkg/notify"
)

func TestNotifyCtxInstallsBus(t *testing.T) {
	a := &app{bus: notify.NewBus(slog.Default())}
	t.Cleanup(func() { _ = a.bus.Close() })

	ctx := a.notifyCtx(context.Background())

	assert.Same(t, a.bus, notify.FromContext(ctx))
}
