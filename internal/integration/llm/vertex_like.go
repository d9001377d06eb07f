package llm

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/google/generative-ai-go/genai"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"
	"google.golang.org/api/option"

	"github.com/finance-tracker/ledgerd/internal/application/adapter"
)

// maxBatchConcurrency bounds ClassifyBatch's outstanding calls (spec §4.C).
const maxBatchConcurrency = 5

// VertexLikeProvider implements adapter.LLMProvider against the Gemini
// generative API, selected by the "vertex_like" provider tag. The
// project/location fields are carried for configuration parity with the
// spec's closed provider config even though this client authenticates by
// API key rather than a full Vertex AI service account (see DESIGN.md).
type VertexLikeProvider struct {
	apiKey    string
	projectID string
	location  string
	modelName string

	mu     sync.Mutex
	client *genai.Client
}

// NewVertexLikeProvider creates a new VertexLikeProvider instance.
func NewVertexLikeProvider(apiKey, projectID, location, modelName string) *VertexLikeProvider {
	if modelName == "" {
		modelName = "gemini-2.5-flash-lite"
	}
	return &VertexLikeProvider{apiKey: apiKey, projectID: projectID, location: location, modelName: modelName}
}

func (p *VertexLikeProvider) getClient(ctx context.Context) (*genai.Client, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.client != nil {
		return p.client, nil
	}
	client, err := genai.NewClient(ctx, option.WithAPIKey(p.apiKey))
	if err != nil {
		return nil, fmt.Errorf("llm: failed to create vertex_like client: %w", err)
	}
	p.client = client
	return client, nil
}

// ClassifyTransaction asks the model to choose one of categories for the
// given transaction. Any provider error yields a zero-confidence result
// rather than propagating (spec §4.C).
func (p *VertexLikeProvider) ClassifyTransaction(ctx context.Context, input adapter.ClassifyInput, categories []adapter.LLMCategory) adapter.ClassifyResult {
	client, err := p.getClient(ctx)
	if err != nil {
		return adapter.ClassifyResult{Reasoning: err.Error()}
	}

	model := client.GenerativeModel(p.modelName)
	model.SetTemperature(0.2)
	model.ResponseMIMEType = "application/json"

	resp, err := model.GenerateContent(ctx, genai.Text(classifyPrompt(input, categories)))
	if err != nil {
		return adapter.ClassifyResult{Reasoning: err.Error()}
	}

	text, ok := firstResponseText(resp)
	if !ok {
		return adapter.ClassifyResult{Reasoning: "empty response from vertex_like provider"}
	}

	var parsed struct {
		CategoryID string  `json:"category_id"`
		Confidence float64 `json:"confidence"`
		Reasoning  string  `json:"reasoning"`
	}
	if err := unmarshalJSON(text, &parsed); err != nil {
		return adapter.ClassifyResult{Reasoning: fmt.Sprintf("failed to parse vertex_like response: %v", err)}
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
func (p *VertexLikeProvider) ClassifyBatch(ctx context.Context, inputs []adapter.ClassifyInput, categories []adapter.LLMCategory) map[uuid.UUID]adapter.ClassifyResult {
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
	// per-entry failures are already captured into results by
	// ClassifyTransaction; Wait only propagates context cancellation.
	_ = g.Wait()

	return results
}

// ParseDocument delegates PDF/image/CSV-fallback extraction to the model,
// multimodally for image input.
func (p *VertexLikeProvider) ParseDocument(ctx context.Context, content []byte, kind adapter.DocumentKind, mimeType string) (*adapter.ParseResult, error) {
	client, err := p.getClient(ctx)
	if err != nil {
		return nil, err
	}

	model := client.GenerativeModel(p.modelName)
	model.ResponseMIMEType = "application/json"

	parts := []genai.Part{genai.Text(parseDocumentPrompt(kind))}
	if mimeType != "" {
		parts = append(parts, genai.Blob{MIMEType: mimeType, Data: content})
	} else {
		parts = append(parts, genai.Text(string(content)))
	}

	resp, err := model.GenerateContent(ctx, parts...)
	if err != nil {
		return nil, fmt.Errorf("llm: vertex_like parseDocument failed: %w", err)
	}

	text, ok := firstResponseText(resp)
	if !ok {
		return nil, fmt.Errorf("llm: empty parseDocument response")
	}

	var parsed struct {
		Transactions []adapter.ParsedTransaction `json:"transactions"`
		Receipt      *struct {
			LineItems []adapter.ParsedReceiptLineItem `json:"lineItems"`
		} `json:"receipt"`
	}
	if err := unmarshalJSON(text, &parsed); err != nil {
		return nil, fmt.Errorf("llm: failed to parse vertex_like parseDocument response: %w", err)
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
func (p *VertexLikeProvider) NormalizeMerchant(ctx context.Context, rawMerchant string) (string, error) {
	client, err := p.getClient(ctx)
	if err != nil {
		return "", err
	}

	model := client.GenerativeModel(p.modelName)
	resp, err := model.GenerateContent(ctx, genai.Text(
		fmt.Sprintf("Return only the cleaned merchant name, no punctuation or extra words, for: %q", rawMerchant)))
	if err != nil {
		return "", err
	}

	text, ok := firstResponseText(resp)
	if !ok {
		return "", fmt.Errorf("llm: empty normalizeMerchant response")
	}
	return strings.ToUpper(strings.TrimSpace(stripCodeFence(text))), nil
}

func firstResponseText(resp *genai.GenerateContentResponse) (string, bool) {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", false
	}
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			return string(text), true
		}
	}
	return "", false
}

func classifyPrompt(input adapter.ClassifyInput, categories []adapter.LLMCategory) string {
	var sb strings.Builder
	sb.WriteString("Classify this transaction into one of the given categories. Respond with JSON {\"category_id\": \"<uuid or empty>\", \"confidence\": 0-1, \"reasoning\": \"...\"}.\n\n")
	fmt.Fprintf(&sb, "Transaction: description=%q merchant=%q amountCents=%d\n", input.Description, input.MerchantRaw, input.Amount)
	sb.WriteString("Categories:\n")
	for _, c := range categories {
		fmt.Fprintf(&sb, "- %s: %s\n", c.ID, c.Name)
	}
	return sb.String()
}

func parseDocumentPrompt(kind adapter.DocumentKind) string {
	return fmt.Sprintf(
		`Extract every transaction from this %s document as JSON {"transactions":[{"postedAt":"YYYY-MM-DD","amount":<cents,int>,"description":"...","merchantRaw":"..."}], "receipt": null or {"lineItems":[{"name":"...","quantity":1,"unitPrice":<cents>,"totalPrice":<cents>,"category":"..."}]} }. `+
			`Only set "receipt" for photographed receipts. Amount is a signed integer number of cents; expenses negative, income positive.`, kind)
}
