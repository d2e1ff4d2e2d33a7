// File: services/assistant/assistant.go
package assistant

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"detailify/models"
	"detailify/services/availability"
	"detailify/services/booking"
	"detailify/services/catalog"
	"detailify/utils"
)

// AssistantService drives the booking chat widget: it parses customer
// messages into intents, answers availability questions through the engine,
// and places bookings through the booking service.
type AssistantService interface {
	HandleMessage(ctx context.Context, tenantID, sessionID, message string) (reply string, sid string, err error)
	EndSession(ctx context.Context, sessionID string) error
}

// DefaultAssistantService is the production AssistantService.
type DefaultAssistantService struct {
	Sessions SessionStore
	Parser   IntentParser
	Engine   *availability.Engine
	Bookings booking.BookingService
	Catalog  catalog.CatalogService
}

const (
	fallbackReply = "I can check availability or book a detailing appointment for you. " +
		"Tell me the service you want and a date, e.g. \"Is Basic Wash available on Friday?\""
	parserDownReply = "Sorry, I didn't catch that. Could you rephrase?"
)

func (s *DefaultAssistantService) HandleMessage(ctx context.Context, tenantID, sessionID, message string) (string, string, error) {
	logger := utils.GetLogger()

	if tenantID == "" {
		return "", "", fmt.Errorf("%w: tenant id is required", availability.ErrInvalidInput)
	}
	if strings.TrimSpace(message) == "" {
		return "", "", fmt.Errorf("%w: message is required", availability.ErrInvalidInput)
	}

	session, err := s.loadOrCreateSession(ctx, tenantID, sessionID)
	if err != nil {
		return "", "", err
	}
	session.Messages = append(session.Messages, models.ChatMessage{Role: "user", Content: message})

	intent, err := s.Parser.ParseIntent(ctx, message)
	var reply string
	if err != nil {
		logger.Warn("assistant: intent parsing failed",
			zap.String("sessionID", session.ID), zap.Error(err))
		reply = parserDownReply
	} else {
		reply = s.respond(ctx, session.TenantID, intent)
	}

	session.Messages = append(session.Messages, models.ChatMessage{Role: "assistant", Content: reply})
	if err := s.Sessions.Set(ctx, session); err != nil {
		logger.Warn("assistant: failed to persist session",
			zap.String("sessionID", session.ID), zap.Error(err))
	}
	return reply, session.ID, nil
}

func (s *DefaultAssistantService) EndSession(ctx context.Context, sessionID string) error {
	return s.Sessions.Clear(ctx, sessionID)
}

func (s *DefaultAssistantService) loadOrCreateSession(ctx context.Context, tenantID, sessionID string) (*models.ChatSession, error) {
	if sessionID != "" {
		session, err := s.Sessions.Get(ctx, sessionID)
		if err != nil {
			return nil, fmt.Errorf("failed to load chat session: %w", err)
		}
		if session != nil && session.TenantID == tenantID {
			return session, nil
		}
	}
	return &models.ChatSession{
		ID:        uuid.New().String(),
		TenantID:  tenantID,
		CreatedAt: time.Now().UTC(),
	}, nil
}

func (s *DefaultAssistantService) respond(ctx context.Context, tenantID string, intent *models.BookingIntent) string {
	switch intent.Action {
	case "check_availability":
		return s.respondAvailability(ctx, tenantID, intent)
	case "book":
		return s.respondBook(ctx, tenantID, intent)
	default:
		return fallbackReply
	}
}

func (s *DefaultAssistantService) respondAvailability(ctx context.Context, tenantID string, intent *models.BookingIntent) string {
	if intent.Service == "" {
		return "Which service would you like? " + s.serviceMenu(ctx, tenantID)
	}
	if intent.Date == "" {
		return fmt.Sprintf("What date should I check for %s?", intent.Service)
	}

	slots, err := s.Engine.AvailableTimeSlots(ctx, tenantID, intent.Date, intent.Service)
	if err != nil {
		if errors.Is(err, availability.ErrServiceNotFound) {
			return fmt.Sprintf("We don't offer %q. %s", intent.Service, s.serviceMenu(ctx, tenantID))
		}
		return "I couldn't check availability right now, please try again in a moment."
	}

	var open []string
	for _, slot := range slots {
		if slot.Available {
			open = append(open, slot.Time)
		}
	}
	if len(open) == 0 {
		return fmt.Sprintf("There are no open times for %s on %s. Would you like to try another day?",
			intent.Service, intent.Date)
	}
	return fmt.Sprintf("Open times for %s on %s: %s. Which one works for you?",
		intent.Service, intent.Date, strings.Join(open, ", "))
}

func (s *DefaultAssistantService) respondBook(ctx context.Context, tenantID string, intent *models.BookingIntent) string {
	switch {
	case intent.Service == "":
		return "Which service would you like to book? " + s.serviceMenu(ctx, tenantID)
	case intent.Date == "" || intent.Time == "":
		return fmt.Sprintf("When should I book the %s? Give me a date and time.", intent.Service)
	case intent.ClientName == "":
		return "Almost there. What name should the booking be under?"
	}

	loc, err := s.Catalog.Location(ctx, tenantID)
	if err != nil {
		return "I couldn't place the booking right now, please try again in a moment."
	}
	dateTime, err := time.ParseInLocation("2006-01-02 15:04", intent.Date+" "+intent.Time, loc)
	if err != nil {
		return fmt.Sprintf("I couldn't make sense of %s %s as a date and time, could you restate it?",
			intent.Date, intent.Time)
	}

	b, err := s.Bookings.Create(ctx, models.BookingInput{
		TenantID:    tenantID,
		ClientName:  intent.ClientName,
		ClientEmail: intent.Email,
		ClientPhone: intent.Phone,
		DateTime:    dateTime,
		Service:     intent.Service,
	})
	if err != nil {
		var conflict *booking.ConflictError
		if errors.As(err, &conflict) {
			return conflict.Message + " " + s.alternativeTimes(ctx, tenantID, intent)
		}
		if errors.Is(err, availability.ErrServiceNotFound) {
			return fmt.Sprintf("We don't offer %q. %s", intent.Service, s.serviceMenu(ctx, tenantID))
		}
		utils.GetLogger().Warn("assistant: booking failed", zap.Error(err))
		return "I couldn't place the booking right now, please try again in a moment."
	}

	return fmt.Sprintf("You're booked! %s on %s under %s. See you then.",
		b.Service, b.DateTime.In(loc).Format("Mon Jan 2 at 15:04"), b.ClientName)
}

func (s *DefaultAssistantService) serviceMenu(ctx context.Context, tenantID string) string {
	services, err := s.Catalog.ListServices(ctx, tenantID)
	if err != nil || len(services) == 0 {
		return ""
	}
	names := make([]string, len(services))
	for i, svc := range services {
		names[i] = svc.Name
	}
	return "We offer: " + strings.Join(names, ", ") + "."
}

func (s *DefaultAssistantService) alternativeTimes(ctx context.Context, tenantID string, intent *models.BookingIntent) string {
	if intent.Date == "" {
		return ""
	}
	slots, err := s.Engine.AvailableTimeSlots(ctx, tenantID, intent.Date, intent.Service)
	if err != nil {
		return ""
	}
	var open []string
	for _, slot := range slots {
		if slot.Available {
			open = append(open, slot.Time)
			if len(open) == 3 {
				break
			}
		}
	}
	if len(open) == 0 {
		return ""
	}
	return "Nearby open times: " + strings.Join(open, ", ") + "."
}
