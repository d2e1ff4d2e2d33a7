package assistant

import "context"

// Disabled is the AssistantService used when no intent parser is configured.
type Disabled struct{}

func (Disabled) HandleMessage(ctx context.Context, tenantID, sessionID, message string) (string, string, error) {
	return "The booking assistant is not available right now. " +
		"You can still book through the regular booking form.", sessionID, nil
}

func (Disabled) EndSession(ctx context.Context, sessionID string) error {
	return nil
}
