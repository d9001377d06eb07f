package llm

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"

	"github.com/finance-tracker/ledgerd/internal/application/adapter"
)

const claudeLikeDefaultBaseURL = "https://api.anthropic.com/v1/messages"

// ClaudeLikeProvider implements adapter.LLMProvider against an
// Anthropic-Messages-shaped HTTP API, selected by the "claude_like"
// provider tag. There is no pack-provided client library for this wire
// format, so this is a hand-written net/http JSON client.
type ClaudeLikeProvider struct {
	apiKey     string
	model      string
	baseURL    string
	httpClient *http.Client
}

// NewClaudeLikeProvider creates a new ClaudeLikeProvider instance.
func NewClaudeLikeProvider(apiKey, model string) *ClaudeLikeProvider {
	if model == "" {
		model = "claude-3-5-haiku-latest"
	}
	return &ClaudeLikeProvider{
		apiKey:     apiKey,
		model:      model,
		baseURL:    claudeLikeDefaultBaseURL,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

type claudeMessageRequest struct {
	Model     string          `json:"model"`
	MaxTokens int             `json:"max_tokens"`
	Messages  []claudeMessage `json:"messages"`
}

type claudeMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type claudeMessageResponse struct {
	Content []struct {
		Text string `json:"text"`
	} `json:"content"`
}

func (p *ClaudeLikeProvider) complete(ctx context.Context, prompt string) (string, error) {
	body, err := json.Marshal(claudeMessageRequest{
		Model:     p.model,
		MaxTokens: 1024,
		Messages:  []claudeMessage{{Role: "user", Content: prompt}},
	})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-api-key", p.apiKey)
	req.Header.Set("anthropic-version", "2023-06-01")

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("llm: claude_like provider returned status %d: %s", resp.StatusCode, string(respBody))
	}

	var parsed claudeMessageResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return "", fmt.Errorf("llm: failed to decode claude_like response: %w", err)
	}
	if len(parsed.Content) == 0 {
		return "", fmt.Errorf("llm: empty claude_like response")
	}
	return parsed.Content[0].Text, nil
}

// ClassifyTransaction asks the model to choose one of categories for the
// given transaction. Any provider error yields a zero-confidence result
// rather than propagating (spec §4.C).
func (p *ClaudeLikeProvider) ClassifyTransaction(ctx context.Context, input adapter.ClassifyInput, categories []adapter.LLMCategory) adapter.ClassifyResult {
	text, err := p.complete(ctx, classifyPrompt(input, categories))
	if err != nil {
		return adapter.ClassifyResult{Reasoning: err.Error()}
	}

	var parsed struct {
		CategoryID string  `json:"category_id"`
		Confidence float64 `json:"confidence"`
		Reasoning  string  `json:"reasoning"`
	}
	if err := unmarshalJSON(text, &parsed); err != nil {
		return adapter.ClassifyResult{Reasoning: fmt.Sprintf("failed to parse claude_like response: %v", err)}
	}

	result := adapter.ClassifyResult{Confidence: coerceConfidence(parsed.Confidence), Reasoning: parsed.Reasoning}
	if id, err := uuid.Parse(parsed.CategoryID); err == nil {
		result.CategoryID = &id
	}
	return result
}

// ClassifyBatch runs ClassifyTransaction with a bounded concurrency of 5,
// merging results keyed by transaction id regardless of individual
// failures (spec §4.C).
func (p *ClaudeLikeProvider) ClassifyBatch(ctx context.Context, inputs []adapter.ClassifyInput, categories []adapter.LLMCategory) map[uuid.UUID]adapter.ClassifyResult {
	results := make(map[uuid.UUID]adapter.ClassifyResult, len(inputs))
	var mu sync.Mutex
	sem := semaphore.NewWeighted(maxBatchConcurrency)
	g, gctx := errgroup.WithContext(ctx)

	for _, input := range inputs {
		input := input
		if err := sem.Acquire(ctx, 1); err != nil {
			mu.Lock()
			results[input.TxID] = adapter.ClassifyResult{Reasoning: err.Error()}
			mu.Unlock()
			continue
		}
		g.Go(func() error {
			defer sem.Release(1)
			result := p.ClassifyTransaction(gctx, input, categories)
			mu.Lock()
			results[input.TxID] = result
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()

	return results
}

// ParseDocument asks the model to extract transactions from text content.
// claude_like has no native image-input path in this client, so image
// documents are sent as base64 text inline with the prompt.
func (p *ClaudeLikeProvider) ParseDocument(ctx context.Context, content []byte, kind adapter.DocumentKind, mimeType string) (*adapter.ParseResult, error) {
	body := string(content)
	if kind == adapter.DocumentKindImage {
		body = base64.StdEncoding.EncodeToString(content)
	}
	prompt := parseDocumentPrompt(kind) + "\n\n" + body
	text, err := p.complete(ctx, prompt)
	if err != nil {
		return nil, err
	}

	var parsed struct {
		Transactions []adapter.ParsedTransaction `json:"transactions"`
		Receipt      *struct {
			LineItems []adapter.ParsedReceiptLineItem `json:"lineItems"`
		} `json:"receipt"`
	}
	if err := unmarshalJSON(text, &parsed); err != nil {
		return nil, fmt.Errorf("llm: failed to parse claude_like parseDocument response: %w", err)
	}

	result := &adapter.ParseResult{Transactions: parsed.Transactions}
	if kind == adapter.DocumentKindImage && parsed.Receipt != nil {
		result.Receipt = &struct {
			LineItems []adapter.ParsedReceiptLineItem
		}{LineItems: parsed.Receipt.LineItems}
	}
	return result, nil
}

// NormalizeMerchant asks the model for a cleaned-up merchant name when the
// deterministic normalizer fails (spec §4.D step 5).
func (p *ClaudeLikeProvider) NormalizeMerchant(ctx context.Context, rawMerchant string) (string, error) {
	text, err := p.complete(ctx, fmt.Sprintf("Return only the cleaned merchant name, no punctuation or extra words, for: %q", rawMerchant))
	if err != nil {
		return "", err
	}
	return strings.ToUpper(strings.TrimSpace(stripCodeFence(text))), nil
}
