package chatclient

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/sashabaranov/go-openai"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"resty.dev/v3"

	"nutrition-bot/internal/config"
	"nutrition-bot/internal/domain/chat"
	"nutrition-bot/internal/infrastructure/metrics"
	"nutrition-bot/internal/utils/httpclients"
	"nutrition-bot/internal/utils/platformerrors"
)

const (
	clientName          = "chat-completions"
	maxErrorBodyInError = 512
)

// Client calls an OpenAI-compatible /chat/completions endpoint. Each call is a
// single POST: no retries, no streaming.
type Client struct {
	client        *resty.Client
	baseURL       string
	apiKey        string
	defaultModel  string
	textTimeout   time.Duration
	visionTimeout time.Duration
	log           zerolog.Logger
	tracer        trace.Tracer
}

// New creates a Resty-backed client from configuration.
func New(cfg *config.Config, log zerolog.Logger) *Client {
	return &Client{
		client:        httpclients.NewClient(clientName),
		baseURL:       strings.TrimRight(cfg.OpenAIBaseURL, "/"),
		apiKey:        cfg.OpenAIAPIKey,
		defaultModel:  cfg.ChatModel,
		textTimeout:   cfg.ChatTextTimeout,
		visionTimeout: cfg.ChatVisionTimeout,
		log:           log.With().Str("component", "chat-client").Logger(),
		tracer:        otel.Tracer(clientName),
	}
}

// Ensure interface compliance.
var _ chat.Completer = (*Client)(nil)

// CompleteChat sends the conversation and returns the first choice's content.
func (c *Client) CompleteChat(ctx context.Context, req chat.Request) (string, error) {
	if len(req.Messages) == 0 {
		return "", platformerrors.NewError(ctx, platformerrors.LayerInfrastructure, platformerrors.ErrorTypeValidation,
			"chat completion requires at least one message", nil, "079233c6-a17e-49e8-b995-d18b78530585")
	}

	model := req.Model
	if model == "" {
		model = c.defaultModel
	}
	multimodal := req.HasImage()

	ctx, cancel := context.WithTimeout(ctx, c.timeoutFor(multimodal))
	defer cancel()

	ctx, span := c.tracer.Start(ctx, "chat.completions",
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("llm.model", model),
			attribute.Bool("llm.multimodal", multimodal),
			attribute.Int("llm.messages", len(req.Messages)),
		),
	)
	defer span.End()

	body := openai.ChatCompletionRequest{
		Model:          model,
		Messages:       req.Messages,
		ResponseFormat: req.ResponseFormat,
	}

	var completion openai.ChatCompletionResponse
	start := time.Now()
	resp, err := c.prepareRequest(ctx).
		SetBody(body).
		SetResult(&completion).
		Post(c.baseURL + "/chat/completions")
	elapsed := time.Since(start).Seconds()

	if err != nil {
		metrics.RecordChatCompletion(model, "transport_error", elapsed)
		span.RecordError(err)
		span.SetStatus(codes.Error, "transport error")
		return "", platformerrors.NewError(ctx, platformerrors.LayerInfrastructure, platformerrors.ErrorTypeExternal,
			"chat completion request failed", err, "6ff3c4f6-8953-49d6-b49f-02461d75deff")
	}

	span.SetAttributes(attribute.Int("http.status_code", resp.StatusCode()))
	if resp.IsError() {
		metrics.RecordChatCompletion(model, "http_error", elapsed)
		span.SetStatus(codes.Error, resp.Status())
		return "", platformerrors.NewErrorWithContext(ctx, platformerrors.LayerInfrastructure, platformerrors.ErrorTypeExternal,
			fmt.Sprintf("chat completion returned status %d", resp.StatusCode()), nil, "036b6931-ada1-49f6-b7c6-1c930037d7c9",
			map[string]any{"upstream_body": truncate(resp.String(), maxErrorBodyInError)})
	}

	if len(completion.Choices) == 0 {
		metrics.RecordChatCompletion(model, "empty", elapsed)
		span.SetStatus(codes.Error, "no choices")
		return "", platformerrors.NewError(ctx, platformerrors.LayerInfrastructure, platformerrors.ErrorTypeExternal,
			"chat completion returned no choices", nil, "34ad98fd-def9-411e-a937-ba9eb772653c")
	}

	metrics.RecordChatCompletion(model, "success", elapsed)
	span.SetStatus(codes.Ok, "")
	c.log.Debug().
		Str("model", model).
		Bool("multimodal", multimodal).
		Int("completion_tokens", completion.Usage.CompletionTokens).
		Int("prompt_tokens", completion.Usage.PromptTokens).
		Msg("chat completion finished")

	return completion.Choices[0].Message.Content, nil
}

func (c *Client) prepareRequest(ctx context.Context) *resty.Request {
	req := c.client.R().SetContext(ctx)
	req.SetHeader("Content-Type", "application/json")
	if strings.TrimSpace(c.apiKey) != "" {
		req.SetHeader("Authorization", fmt.Sprintf("Bearer %s", c.apiKey))
	}
	return req
}

func (c *Client) timeoutFor(multimodal bool) time.Duration {
	if multimodal {
		return c.visionTimeout
	}
	return c.textTimeout
}

func truncate(s string, limit int) string {
	s = strings.TrimSpace(s)
	if len(s) <= limit {
		return s
	}
	return s[:limit] + "..."
}
