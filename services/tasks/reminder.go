package tasks

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/hibiken/asynq"

	"detailify/config"
	"detailify/models"
)

const TypeSendReminder = "reminder:send"

// NewReminderTask builds an asynq task that fires at the given time.
func NewReminderTask(payload models.ReminderPayload, fireAt time.Time) (*asynq.Task, []asynq.Option, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, nil, err
	}
	task := asynq.NewTask(TypeSendReminder, b)
	opts := []asynq.Option{asynq.ProcessAt(fireAt)}

	return task, opts, nil
}

// AsynqReminderScheduler enqueues booking reminders on the asynq queue. It
// implements booking.ReminderScheduler.
type AsynqReminderScheduler struct {
	Client *asynq.Client
	Lead   time.Duration // how long before the appointment the reminder fires
}

// NewAsynqReminderScheduler builds a scheduler from the application config.
func NewAsynqReminderScheduler() *AsynqReminderScheduler {
	client := asynq.NewClient(asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisReminderQueueDB,
	})
	return &AsynqReminderScheduler{
		Client: client,
		Lead:   time.Duration(config.AppConfig.ReminderLeadMinutes) * time.Minute,
	}
}

func (s *AsynqReminderScheduler) ScheduleReminder(ctx context.Context, b *models.Booking) error {
	fireAt := b.DateTime.Add(-s.Lead)
	if !fireAt.After(time.Now()) {
		// Appointment is too soon for a reminder.
		return nil
	}

	payload := models.ReminderPayload{
		BookingID: b.ID,
		TenantID:  b.TenantID,
		Title:     "Upcoming appointment",
		Body:      fmt.Sprintf("%s at %s", b.Service, b.DateTime.Format("Mon Jan 2 15:04")),
		FireDate:  fireAt.Format(time.RFC3339),
	}
	task, opts, err := NewReminderTask(payload, fireAt)
	if err != nil {
		return err
	}
	if _, err := s.Client.EnqueueContext(ctx, task, opts...); err != nil {
		return fmt.Errorf("failed to enqueue reminder for booking %s: %w", b.ID, err)
	}
	return nil
}
