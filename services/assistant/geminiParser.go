// File: services/assistant/geminiParser.go
package assistant

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	genai "github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"detailify/models"
)

// IntentParser extracts a structured booking intent from a free-text chat
// message. The parsing itself happens in an external model; this package
// treats it as opaque.
type IntentParser interface {
	ParseIntent(ctx context.Context, message string) (*models.BookingIntent, error)
}

const intentPrompt = `You are the booking assistant for an auto-detailing shop.
Extract the intent from the customer message below. Respond with only a JSON
object with the fields: action ("check_availability", "book", or "other"),
service, date (YYYY-MM-DD), time (HH:MM, 24h), clientName, email, phone.
Omit fields you cannot determine.

Customer message: %s`

// GeminiParser is the production IntentParser.
type GeminiParser struct {
	model *genai.GenerativeModel
}

func NewGeminiParser(apiKey string) (*GeminiParser, error) {
	ctx := context.Background()
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	model := client.GenerativeModel("models/gemini-1.5-pro")
	return &GeminiParser{model: model}, nil
}

func (g *GeminiParser) ParseIntent(ctx context.Context, message string) (*models.BookingIntent, error) {
	resp, err := g.model.GenerateContent(ctx, genai.Text(fmt.Sprintf(intentPrompt, message)))
	if err != nil {
		return nil, fmt.Errorf("gemini generate error: %w", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return nil, fmt.Errorf("gemini returned no candidates")
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if textPart, ok := part.(genai.Text); ok {
			sb.WriteString(string(textPart))
		}
	}

	raw := strings.TrimSpace(sb.String())
	raw = strings.TrimPrefix(raw, "```json")
	raw = strings.TrimPrefix(raw, "```")
	raw = strings.TrimSuffix(raw, "```")

	var intent models.BookingIntent
	if err := json.Unmarshal([]byte(strings.TrimSpace(raw)), &intent); err != nil {
		return nil, fmt.Errorf("failed to decode intent: %w", err)
	}
	return &intent, nil
}
