package probe

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/sashabaranov/go-openai"

	"attest-hq/attest/pkg/config"
	"attest-hq/attest/pkg/probe/cache"
	"attest-hq/attest/pkg/telemetry/metrics"
)

// judgeSystemPrompt constrains the model to an answer the probe can parse.
const judgeSystemPrompt = "You are a verification assistant. Answer the question " +
	"with a single line starting with YES or NO, followed by a brief justification."

// OpenAIJudge answers prompts through an OpenAI-compatible chat API, with
// an optional on-disk response cache.
type OpenAIJudge struct {
	client    *openai.Client
	model     string
	cache     *cache.Cache
	collector *metrics.Collector
	logger    *slog.Logger
}

// NewOpenAIJudge creates a judge from the llm configuration. The cache and
// collector may be nil.
func NewOpenAIJudge(cfg config.LLMConfig, responseCache *cache.Cache, collector *metrics.Collector, logger *slog.Logger) *OpenAIJudge {
	if logger == nil {
		logger = slog.Default()
	}

	clientConfig := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientConfig.BaseURL = cfg.BaseURL
	}

	return &OpenAIJudge{
		client:    openai.NewClientWithConfig(clientConfig),
		model:     cfg.Model,
		cache:     responseCache,
		collector: collector,
		logger:    logger.With("component", "llm_judge"),
	}
}

// Judge answers a prompt, consulting the cache first when one is
// configured. Cache read and write failures are logged and ignored so a
// broken cache file never blocks verification.
func (j *OpenAIJudge) Judge(ctx context.Context, prompt string) (Judgment, error) {
	key := cache.Key(j.model, prompt)

	if j.cache != nil {
		answer, ok, err := j.cache.Get(ctx, key)
		if err != nil {
			j.logger.Warn("llm cache read failed", "error", err)
		}
		if ok {
			if j.collector != nil {
				j.collector.RecordCacheHit()
			}
			return parseJudgment(answer, j.model)
		}
		if j.collector != nil {
			j.collector.RecordCacheMiss()
		}
	}

	resp, err := j.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: j.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: judgeSystemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
	})
	if err != nil {
		return Judgment{}, fmt.Errorf("chat completion failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return Judgment{}, fmt.Errorf("model returned no choices")
	}

	answer := resp.Choices[0].Message.Content
	judgment, err := parseJudgment(answer, j.model)
	if err != nil {
		return Judgment{}, err
	}

	if j.cache != nil {
		if err := j.cache.Put(ctx, key, answer); err != nil {
			j.logger.Warn("llm cache write failed", "error", err)
		}
	}

	return judgment, nil
}

// parseJudgment extracts the yes/no verdict from a model answer.
func parseJudgment(answer, model string) (Judgment, error) {
	trimmed := strings.TrimSpace(answer)
	upper := strings.ToUpper(trimmed)

	switch {
	case strings.HasPrefix(upper, "YES"):
		return Judgment{Verdict: true, Answer: trimmed, Model: model}, nil
	case strings.HasPrefix(upper, "NO"):
		return Judgment{Verdict: false, Answer: trimmed, Model: model}, nil
	default:
		return Judgment{}, fmt.Errorf("model answer does not start with YES or NO: %q", truncate(trimmed, 80))
	}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
