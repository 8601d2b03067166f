package dispatcher

import (
	"context"

	"github.com/ssrfm/indent-service/internal/domain/event"
)

// Handler processes domain events
type Handler func(ctx context.Context, evt *event.Event) error

// handlerInfo pairs a handler with its registration name for logging
type handlerInfo struct {
	name    string
	handler Handler
}
