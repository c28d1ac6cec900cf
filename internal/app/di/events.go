package di

import (
	"io"
	"log/slog"

	"catalog_backend/internal/feature/catalog/usecase"
	"catalog_backend/internal/platform/events"
)

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// NewEventPublisher connects to RabbitMQ when url is set.
// If the broker is unset or unreachable, events are dropped and the server still starts.
func NewEventPublisher(url, queue string) (usecase.EventPublisher, io.Closer) {
	if url == "" {
		slog.Info("AMQP_URL not set; catalog events are disabled")
		return events.Noop{}, nopCloser{}
	}
	p, err := events.NewAMQPPublisher(url, queue)
	if err != nil {
		slog.Warn("RabbitMQ unavailable; catalog events are disabled", "error", err)
		return events.Noop{}, nopCloser{}
	}
	return p, p
}
