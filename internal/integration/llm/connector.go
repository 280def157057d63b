package llm

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/futig/interview-cases/internal/config"
	"github.com/futig/interview-cases/internal/entity"
	"github.com/futig/interview-cases/internal/integration/common"
	pkghttp "github.com/futig/interview-cases/pkg/http"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

const (
	stageRequest = "generator_request"
	stageDecode  = "generator_decode"
	stageParse   = "generator_parse"
)

// Connector talks to an OpenAI-compatible chat completions API
type Connector struct {
	config    config.LLMConnectorConfig
	connector *pkghttp.Connector
	logger    *zap.Logger
}

func NewConnector(
	cfg config.LLMConnectorConfig,
	logger *zap.Logger,
) *Connector {
	return &Connector{
		connector: common.NewBaseConnector(cfg.HTTPClientConfig, logger),
		config:    cfg,
		logger:    logger,
	}
}

// Configured reports whether the generator credential is set
func (c *Connector) Configured() bool {
	return c.config.Token != ""
}

// GenerateQuestions asks the model for process questions with nested considerations
func (c *Connector) GenerateQuestions(ctx context.Context, req *entity.GenerateQuestionsRequest) (
	*entity.GeneratedQuestionSet, error,
) {
	if !c.Configured() {
		return nil, entity.ErrGeneratorNotConfigured
	}

	ctxzap.Info(ctx, "generating questions via LLM service",
		zap.String("model", c.config.Model),
		zap.String("case_name", req.CaseName),
	)

	chatReq := &entity.ChatCompletionRequest{
		Model:          c.config.Model,
		Messages:       buildQuestionMessages(req),
		Temperature:    c.config.Temperature,
		MaxTokens:      c.config.MaxTokens,
		ResponseFormat: &entity.ChatResponseFormat{Type: "json_object"},
	}

	var resp entity.ChatCompletionResponse
	err := c.connector.DoRequest(ctx, http.MethodPost, c.config.ChatEndpoint, chatReq, &resp)
	if err != nil {
		var decodeErr *pkghttp.DecodeError
		if errors.As(err, &decodeErr) {
			return nil, &entity.GenerationError{
				Stage:      stageDecode,
				RawPayload: string(decodeErr.Body),
				Err:        fmt.Errorf("%w: %w", entity.ErrMalformedGeneration, err),
			}
		}
		return nil, &entity.GenerationError{
			Stage: stageRequest,
			Err:   fmt.Errorf("%w: %w", entity.ErrGeneratorFailed, err),
		}
	}

	if resp.Error != nil {
		return nil, &entity.GenerationError{
			Stage: stageRequest,
			Err:   fmt.Errorf("%w: %s", entity.ErrGeneratorFailed, resp.Error.Message),
		}
	}

	if len(resp.Choices) == 0 {
		return nil, &entity.GenerationError{
			Stage: stageDecode,
			Err:   fmt.Errorf("%w: response has no choices", entity.ErrMalformedGeneration),
		}
	}

	content := resp.Choices[0].Message.Content
	set, err := ParseQuestionSet(content)
	if err != nil {
		return nil, &entity.GenerationError{
			Stage:      stageParse,
			RawPayload: content,
			Err:        err,
		}
	}
	set.Model = resp.Model

	ctxzap.Info(ctx, "questions generated successfully",
		zap.Int("question_count", len(set.Questions)),
		zap.String("model", resp.Model),
	)

	return set, nil
}

// Ping sends a minimal completion request and reports latency
func (c *Connector) Ping(ctx context.Context) (*entity.GeneratorProbe, error) {
	probe := &entity.GeneratorProbe{
		Configured: c.Configured(),
		Model:      c.config.Model,
		BaseURL:    c.connector.BaseURL(),
	}
	if !probe.Configured {
		return probe, entity.ErrGeneratorNotConfigured
	}

	chatReq := &entity.ChatCompletionRequest{
		Model: c.config.Model,
		Messages: []entity.ChatMessage{
			{Role: "user", Content: "Reply with the single word OK."},
		},
		MaxTokens: 5,
	}

	start := time.Now()
	var resp entity.ChatCompletionResponse
	err := c.connector.DoRequest(ctx, http.MethodPost, c.config.ChatEndpoint, chatReq, &resp)
	probe.LatencyMS = time.Since(start).Milliseconds()
	if err != nil {
		return probe, fmt.Errorf("%w: %w", entity.ErrGeneratorFailed, err)
	}
	if resp.Error != nil {
		return probe, fmt.Errorf("%w: %s", entity.ErrGeneratorFailed, resp.Error.Message)
	}

	if len(resp.Choices) > 0 {
		probe.Sample = resp.Choices[0].Message.Content
	}
	if resp.Model != "" {
		probe.Model = resp.Model
	}

	return probe, nil
}
