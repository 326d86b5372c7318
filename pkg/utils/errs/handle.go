package errs

import (
	"context"
	"log/slog"

	"github.com/getsentry/sentry-go"
	"github.com/m-mizutani/ctxlog"
)

// Handle logs an error that is not returned to the caller and sends it to
// Sentry when a Sentry client is configured.
func Handle(ctx context.Context, err error) {
	if err == nil {
		return
	}

	logger := ctxlog.From(ctx)

	hub := sentry.GetHubFromContext(ctx)
	if hub == nil {
		hub = sentry.CurrentHub()
	}

	if hub.Client() != nil {
		if evID := hub.CaptureException(err); evID != nil {
			logger = logger.With(slog.String("sentry.event_id", string(*evID)))
		}
	}

	logger.Error(err.Error(), slog.Any("error", err))
}
