package notification

import (
	"context"
	"log/slog"
)

const (
	// KindWizardComplete signals a flow finished and its record was created.
	KindWizardComplete = "wizard_complete"
	// KindSubmitFailed signals a terminal action failure surfaced to the user
	// as a transient retry prompt.
	KindSubmitFailed = "wizard_submit_failed"
	// KindBookingCreated signals a new booking on one of the owner's listings.
	KindBookingCreated = "booking_created"
)

// Message describes a notification payload.
type Message struct {
	Kind        string
	Destination string
	Body        string
}

// Notifier delivers notifications to downstream systems. Real delivery
// (push/email) belongs to an external service; this boundary only hands the
// message over.
type Notifier interface {
	Send(ctx context.Context, message Message) error
}

// LoggerNotifier is a stub implementation that writes notifications to the logger.
type LoggerNotifier struct {
	logger *slog.Logger
}

// NewLoggerNotifier constructs a logging notifier stub.
func NewLoggerNotifier(logger *slog.Logger) *LoggerNotifier {
	return &LoggerNotifier{logger: logger}
}

// Send writes the message to the structured logger.
func (n *LoggerNotifier) Send(_ context.Context, message Message) error {
	if n == nil || n.logger == nil {
		return nil
	}
	n.logger.Info("notification", "kind", message.Kind, "destination", message.Destination, "body", message.Body)
	return nil
}
