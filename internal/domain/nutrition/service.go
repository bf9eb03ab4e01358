package nutrition

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/sashabaranov/go-openai"

	"nutrition-bot/internal/domain/chat"
	"nutrition-bot/internal/domain/coercion"
	"nutrition-bot/internal/domain/prompt"
	"nutrition-bot/internal/utils/platformerrors"
	"nutrition-bot/internal/utils/redact"
)

// Operation names used in logs and metrics.
const (
	OperationCountCalories = "count_calories"
	OperationDiet          = "diet"
	OperationAnalyzePhoto  = "analyze_photo"
)

// Service runs the three nutrition use cases. Each one makes exactly one
// chat-completion call and coerces the reply into a mapping.
type Service interface {
	CountCalories(ctx context.Context, text string) (coercion.Result, error)
	PlanDiet(ctx context.Context, profile json.RawMessage) (coercion.Result, error)
	AnalyzePhoto(ctx context.Context, imageURL string) (coercion.Result, error)
}

type service struct {
	completer    chat.Completer
	prompts      *prompt.Catalog
	reportFormat *openai.ChatCompletionResponseFormat
	planFormat   *openai.ChatCompletionResponseFormat
	redactor     *redact.Redactor
	log          zerolog.Logger
}

// NewService wires the use cases to a chat backend. format is one of the
// Format* modes and controls the structured-output hint sent upstream.
// redactor masks model replies that get logged.
func NewService(completer chat.Completer, prompts *prompt.Catalog, format string, redactor *redact.Redactor, log zerolog.Logger) (Service, error) {
	if completer == nil {
		return nil, fmt.Errorf("nutrition: completer is required")
	}
	if prompts == nil {
		return nil, fmt.Errorf("nutrition: prompt catalog is required")
	}
	if redactor == nil {
		redactor = redact.New(redact.LevelHashed, "")
	}

	reportFormat, err := responseFormat(format, "nutrition_report", &NutritionReport{})
	if err != nil {
		return nil, err
	}
	planFormat, err := responseFormat(format, "meal_plan", &MealPlan{})
	if err != nil {
		return nil, err
	}

	return &service{
		completer:    completer,
		prompts:      prompts,
		reportFormat: reportFormat,
		planFormat:   planFormat,
		redactor:     redactor,
		log:          log.With().Str("component", "nutrition").Logger(),
	}, nil
}

func (s *service) CountCalories(ctx context.Context, text string) (coercion.Result, error) {
	return s.run(ctx, OperationCountCalories, chat.Request{
		Messages: []openai.ChatCompletionMessage{
			chat.SystemMessage(s.prompts.CountCaloriesSystem),
			chat.UserMessage(text),
		},
		ResponseFormat: s.reportFormat,
	})
}

func (s *service) PlanDiet(ctx context.Context, profile json.RawMessage) (coercion.Result, error) {
	compact, err := compactObject(profile)
	if err != nil {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeValidation,
			"request body must be a JSON object", err, "5b0c7a1e-3f2d-4c8e-9a61-0d4e2f7b8c13")
	}

	return s.run(ctx, OperationDiet, chat.Request{
		Messages: []openai.ChatCompletionMessage{
			chat.SystemMessage(s.prompts.DietSystem),
			chat.UserMessage(compact),
		},
		ResponseFormat: s.planFormat,
	})
}

func (s *service) AnalyzePhoto(ctx context.Context, imageURL string) (coercion.Result, error) {
	if imageURL == "" {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeValidation,
			"image_url required", nil, "c9e41d52-7a08-4b6f-8d3e-1f2a5b6c7d80")
	}

	return s.run(ctx, OperationAnalyzePhoto, chat.Request{
		Messages: []openai.ChatCompletionMessage{
			chat.SystemMessage(s.prompts.AnalyzePhotoSystem),
			chat.UserImageMessage(s.prompts.AnalyzePhotoUser, imageURL),
		},
		ResponseFormat: s.reportFormat,
	})
}

func (s *service) run(ctx context.Context, operation string, req chat.Request) (coercion.Result, error) {
	content, err := s.completer.CompleteChat(ctx, req)
	if err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, operation+" failed")
	}

	result := coercion.Coerce(content)
	if result.Kind() == coercion.KindFallback {
		s.log.Warn().
			Str("operation", operation).
			Str("request_id", platformerrors.RequestIDFromContext(ctx)).
			Int("reply_len", len(content)).
			Str("reply", s.redactor.Snippet(content)).
			Msg("model reply was not JSON, returning raw text")
	}
	return result, nil
}

// compactObject checks that raw is a single JSON object and returns it with
// insignificant whitespace removed.
func compactObject(raw json.RawMessage) (string, error) {
	var probe map[string]json.RawMessage
	if err := json.Unmarshal(raw, &probe); err != nil {
		return "", err
	}
	if probe == nil {
		return "", fmt.Errorf("expected a JSON object, got null")
	}

	var buf bytes.Buffer
	if err := json.Compact(&buf, raw); err != nil {
		return "", err
	}
	return buf.String(), nil
}
