// File: services/notification/notification.go
package notification

import (
	"context"

	"go.uber.org/zap"

	"detailify/utils"
)

// Notifier delivers an appointment reminder to a tenant's client. Delivery
// mechanics (email, SMS, push) are pluggable behind this interface.
type Notifier interface {
	SendReminder(ctx context.Context, tenantID, bookingID, title, body string) error
}

// LogNotifier writes reminders to the application log. It is the default
// until a delivery channel is configured.
type LogNotifier struct{}

func (LogNotifier) SendReminder(ctx context.Context, tenantID, bookingID, title, body string) error {
	utils.GetLogger().Info("booking reminder",
		zap.String("tenantID", tenantID),
		zap.String("bookingID", bookingID),
		zap.String("title", title),
		zap.String("body", body),
	)
	return nil
}
