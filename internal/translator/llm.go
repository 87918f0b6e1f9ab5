package translator

import (
	"context"
	"fmt"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"github.com/dverbin/doctran/internal"
	"github.com/dverbin/doctran/internal/postprocess"
	"github.com/dverbin/doctran/internal/prompt"
)

// DefaultLLMModel is used when neither the service nor the per-call config
// names a model. Any OpenAI-compatible endpoint works, including
// self-hosted ones.
const DefaultLLMModel = "gpt-4o-mini"

// LLMService translates through an OpenAI-compatible chat completion
// endpoint, rendering the full expert-translator instruction payload for
// every unit. It owns the wrapper-tag contract: the model is told to
// enclose its answer in a wrapper, and the service strips it again.
type LLMService struct {
	client *openai.Client
	model  string
}

func NewLLMService(apiKey, baseURL, model string) *LLMService {
	config := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		config.BaseURL = baseURL
	}
	if model == "" {
		model = DefaultLLMModel
	}
	return &LLMService{
		client: openai.NewClientWithConfig(config),
		model:  model,
	}
}

func (s *LLMService) Name() string {
	return "llm"
}

func (s *LLMService) Translate(ctx context.Context, cfg ServiceConfig, req TranslateRequest) (*ServiceResult, error) {
	result := &ServiceResult{ServiceName: s.Name()}
	start := time.Now()
	defer func() { result.Latency = time.Since(start) }()

	model := cfg.Model
	if model == "" {
		model = s.model
	}

	payload := prompt.Build(req.Text, internal.TranslationConfig{
		SourceLang:      req.SourceLang,
		TargetLang:      req.TargetLang,
		Tone:            req.Tone,
		Domain:          req.Domain,
		Glossary:        req.Glossary,
		Context:         req.Context,
		PreserveMarkers: req.PreserveMarkers,
	})

	resp, err := s.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: payload},
		},
		Temperature: 0,
	})
	if err != nil {
		result.Error = fmt.Sprintf("chat completion failed: %v", err)
		return result, fmt.Errorf("chat completion failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		result.Error = "empty response from API"
		return result, fmt.Errorf("empty response from API")
	}

	text := strings.TrimSpace(resp.Choices[0].Message.Content)
	text = postprocess.ExtractWrapped(text, prompt.WrapperTag)
	text = postprocess.Clean(text)

	result.TranslatedText = text
	result.Metadata = map[string]string{
		"model":             model,
		"prompt_tokens":     fmt.Sprintf("%d", resp.Usage.PromptTokens),
		"completion_tokens": fmt.Sprintf("%d", resp.Usage.CompletionTokens),
	}
	return result, nil
}

func (s *LLMService) IsAvailable(ctx context.Context) error {
	if _, err := s.client.ListModels(ctx); err != nil {
		return fmt.Errorf("LLM endpoint not reachable: %w", err)
	}
	return nil
}
