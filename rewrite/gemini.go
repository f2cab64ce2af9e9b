package rewrite

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/generative-ai-go/genai"
	"github.com/rs/zerolog"
	"google.golang.org/api/option"
)

const (
	maxRetries     = 3
	initialBackoff = 500 * time.Millisecond
	// maxQueryRunes bounds the rewritten query; longer output is treated as chatter
	maxQueryRunes = 200
)

var ErrEmptyRewrite = errors.New("model returned no query")

// GeminiRewriter turns a free-form question into a compact keyword query
// suitable for the trigram index
type GeminiRewriter struct {
	client *genai.Client
	model  string
	logger *zerolog.Logger
}

// NewClient creates a Gemini client authenticated with apiKey
func NewClient(ctx context.Context, apiKey string) (*genai.Client, error) {
	if apiKey == "" {
		return nil, errors.New("gemini api key not set")
	}
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}
	return client, nil
}

// NewGeminiRewriter creates a new rewriter using model
func NewGeminiRewriter(client *genai.Client, model string, logger *zerolog.Logger) *GeminiRewriter {
	return &GeminiRewriter{
		client: client,
		model:  model,
		logger: logger,
	}
}

// Rewrite asks the model for a search query. Transient failures are retried.
func (r *GeminiRewriter) Rewrite(ctx context.Context, query string) (string, error) {
	if r.client == nil {
		return "", errors.New("gemini client not set")
	}

	model := r.client.GenerativeModel(r.model)
	model.SetTemperature(0)

	prompt := buildPrompt(query)

	var lastErr error
	backoff := initialBackoff
	for attempt := range maxRetries {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return "", ctx.Err()
			case <-time.After(backoff):
			}
			backoff *= 2
		}

		resp, err := model.GenerateContent(ctx, genai.Text(prompt))
		if err != nil {
			lastErr = err
			r.logger.Warn().Err(err).Int("attempt", attempt+1).Msg("query rewrite failed")
			continue
		}

		rewritten := cleanQuery(responseText(resp))
		if rewritten == "" {
			return "", ErrEmptyRewrite
		}
		r.logger.Debug().Str("query", query).Str("rewritten", rewritten).Msg("query rewritten")
		return rewritten, nil
	}

	return "", fmt.Errorf("failed to rewrite query after %d attempts: %w", maxRetries, lastErr)
}

func buildPrompt(query string) string {
	return fmt.Sprintf(`あなたは日本の法令・判例検索の補助者です。
次の利用者の質問から、法令名・条文・判例の本文に現れる語句だけを抜き出し、検索語として一行で出力してください。

制約:
- 説明や前置きは書かない
- 語句は全角スペースで区切る
- 質問に法令名が含まれる場合は正式名称で書く

質問: %s
検索語:`, query)
}

func responseText(resp *genai.GenerateContentResponse) string {
	if resp == nil {
		return ""
	}
	var sb strings.Builder
	for _, cand := range resp.Candidates {
		if cand.Content == nil {
			continue
		}
		for _, part := range cand.Content.Parts {
			if text, ok := part.(genai.Text); ok {
				sb.WriteString(string(text))
			}
		}
		// first candidate only
		break
	}
	return sb.String()
}

// cleanQuery keeps the first non-empty line of the model output and strips
// quoting and labels
func cleanQuery(s string) string {
	var line string
	for _, l := range strings.Split(s, "\n") {
		if l = strings.TrimSpace(l); l != "" {
			line = l
			break
		}
	}

	line = strings.TrimPrefix(line, "検索語:")
	line = strings.TrimPrefix(line, "検索語：")
	line = strings.Trim(line, " \t`\"'「」『』")
	line = strings.TrimSpace(line)

	if runes := []rune(line); len(runes) > maxQueryRunes {
		line = string(runes[:maxQueryRunes])
	}
	return line
}
