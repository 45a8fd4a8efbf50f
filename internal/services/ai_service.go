package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/edibulb/glucocoach/internal/apperrors"
	"github.com/edibulb/glucocoach/internal/config"
	"github.com/edibulb/glucocoach/internal/domain"
	"github.com/edibulb/glucocoach/internal/glucose"
	"github.com/edibulb/glucocoach/internal/logger"
	"github.com/google/generative-ai-go/genai"
	"github.com/sashabaranov/go-openai"
	"google.golang.org/api/option"
)

const (
	geminiModel = "gemini-1.5-flash"
	openAIModel = "gpt-4o-mini"
)

// AIService turns structured glucose facts into coaching prose. Gemini is
// the primary provider, OpenAI the fallback; either may be absent. Every
// failure surfaces as SummaryUnavailable and no call is retried.
type AIService struct {
	geminiClient *genai.Client
	openaiClient *openai.Client
	timeout      time.Duration
}

// NewAIService builds clients for whichever providers are configured.
func NewAIService(cfg config.AIConfig) (*AIService, error) {
	s := &AIService{timeout: cfg.Timeout}

	if cfg.GeminiAPIKey != "" {
		client, err := genai.NewClient(context.Background(), option.WithAPIKey(cfg.GeminiAPIKey))
		if err != nil {
			return nil, fmt.Errorf("failed to create Gemini client: %w", err)
		}
		s.geminiClient = client
	}
	if cfg.OpenAIAPIKey != "" {
		s.openaiClient = openai.NewClient(cfg.OpenAIAPIKey)
	}

	return s, nil
}

// WeeklyReport generates the coaching message for a weekly summary.
func (s *AIService) WeeklyReport(ctx context.Context, payload domain.SummaryPayload) (string, error) {
	items, err := json.Marshal(payload.Items)
	if err != nil {
		return "", apperrors.SummaryUnavailable(err)
	}

	spikeFrom, spikeTo, spikeWhen := "-", "-", "-"
	if payload.Spike.From != nil && payload.Spike.To != nil {
		spikeFrom = fmt.Sprintf("%d", payload.Spike.From.Value)
		spikeTo = fmt.Sprintf("%d", payload.Spike.To.Value)
		spikeWhen = fmt.Sprintf("%s %s", payload.Spike.To.Date, payload.Spike.To.TimeSlot)
	}

	prompt := fmt.Sprintf(`You are a supportive diabetes coach. Create a brief weekly report (3-5 sentences).
Data (last 7 days):
Average mg/dL: %d
Largest spike: %d (from %s to %s), around %s.
Logs (JSON): %s
User profile:
- Goals: %s
- Diet: %s
- Exercise: %s
- Target range: %d-%d mg/dL

Instructions:
- Hypothesize likely causes using notes (meal/exercise/fasting).
- Give 1-2 concrete tips tailored to the user's profile and target range.
- Avoid medical diagnosis; give general, safe lifestyle coaching.
- Keep it concise.`,
		payload.Average,
		payload.Spike.Delta, spikeFrom, spikeTo, spikeWhen,
		string(items),
		payload.Profile.Goals, payload.Profile.Diet, payload.Profile.Exercise,
		payload.Profile.TargetMin, payload.Profile.TargetMax)

	return s.generate(ctx, prompt, 0.6)
}

// CoachTip generates a short tip for a single reading, using the profile
// and the few most recent readings as context.
func (s *AIService) CoachTip(ctx context.Context, req domain.CoachRequest, profile domain.Profile, recent []domain.Reading) (string, error) {
	logs, err := json.Marshal(recent)
	if err != nil {
		return "", apperrors.SummaryUnavailable(err)
	}

	state := req.MealState
	if state == "" {
		state = domain.MealFasting
	}

	prompt := fmt.Sprintf(`Act as a concise diabetes lifestyle coach (1-2 sentences).
Current reading: %d mg/dL (%.1f mmol/L) at %s (%s).
User profile: goals=%s; diet=%s; exercise=%s; target=%d-%d.
Recent logs: %s
Give one encouraging, practical tip aligned with target range and profile. No diagnosis.`,
		req.Value, glucose.FromCanonical(req.Value), req.TimeSlot, state,
		profile.Goals, profile.Diet, profile.Exercise,
		profile.TargetMin, profile.TargetMax,
		string(logs))

	return s.generate(ctx, prompt, 0.7)
}

// generate tries Gemini first, then OpenAI. The call is bounded by the
// configured timeout; a timeout is a SummaryUnavailable like any other
// provider failure.
func (s *AIService) generate(ctx context.Context, prompt string, temperature float32) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	if s.geminiClient != nil {
		msg, err := s.generateWithGemini(ctx, prompt, temperature)
		if err == nil {
			return msg, nil
		}
		if s.openaiClient == nil {
			return "", apperrors.SummaryUnavailable(err)
		}
		logger.Warn("Gemini generation failed, falling back to OpenAI", "error", err)
	}
	if s.openaiClient != nil {
		msg, err := s.generateWithOpenAI(ctx, prompt, temperature)
		if err != nil {
			return "", apperrors.SummaryUnavailable(err)
		}
		return msg, nil
	}
	return "", apperrors.SummaryUnavailable(fmt.Errorf("no text generation provider configured"))
}

func (s *AIService) generateWithGemini(ctx context.Context, prompt string, temperature float32) (string, error) {
	model := s.geminiClient.GenerativeModel(geminiModel)
	model.SetTemperature(temperature)
	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("failed to generate content: %w", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("empty response from Gemini")
	}
	text, ok := resp.Candidates[0].Content.Parts[0].(genai.Text)
	if !ok {
		return "", fmt.Errorf("unexpected response part type from Gemini")
	}
	return strings.TrimSpace(string(text)), nil
}

func (s *AIService) generateWithOpenAI(ctx context.Context, prompt string, temperature float32) (string, error) {
	resp, err := s.openaiClient.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       openAIModel,
		Temperature: temperature,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
	})
	if err != nil {
		return "", fmt.Errorf("failed to create chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("empty response from OpenAI")
	}
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}
