package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/arcturus-labs/morph-trad-search-into-ai-search/internal/config"
	"github.com/arcturus-labs/morph-trad-search-into-ai-search/internal/model"
	"github.com/arcturus-labs/morph-trad-search-into-ai-search/internal/utils"
)

// OpenAIClient talks to an OpenAI-compatible chat completions API.
type OpenAIClient struct {
	config     *config.OpenAIConfig
	httpClient *http.Client
	logger     *zap.Logger
}

// NewOpenAIClient creates a client from the configured API settings.
func NewOpenAIClient(cfg *config.OpenAIConfig, logger *zap.Logger) *OpenAIClient {
	return &OpenAIClient{
		config: cfg,
		logger: logger,
		httpClient: &http.Client{
			Timeout: time.Duration(cfg.Timeout) * time.Second,
		},
	}
}

// Enabled returns whether the client is configured and ready.
func (c *OpenAIClient) Enabled() bool {
	return c.config.Enabled
}

// ChatCompletionRequest represents a chat completion request
type ChatCompletionRequest struct {
	Model          string          `json:"model"`
	Messages       []ChatMessage   `json:"messages"`
	Temperature    float64         `json:"temperature,omitempty"`
	TopP           float64         `json:"top_p,omitempty"`
	MaxTokens      int             `json:"max_tokens,omitempty"`
	ResponseFormat *ResponseFormat `json:"response_format,omitempty"`
}

// ChatMessage represents a single message in the conversation
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ResponseFormat specifies the format of the response
type ResponseFormat struct {
	Type string `json:"type"` // "json_object" or "text"
}

// ChatCompletionResponse represents the API response
type ChatCompletionResponse struct {
	ID      string `json:"id"`
	Object  string `json:"object"`
	Created int64  `json:"created"`
	Model   string `json:"model"`
	Choices []struct {
		Index        int         `json:"index"`
		Message      ChatMessage `json:"message"`
		FinishReason string      `json:"finish_reason"`
	} `json:"choices"`
	Usage struct {
		PromptTokens     int `json:"prompt_tokens"`
		CompletionTokens int `json:"completion_tokens"`
		TotalTokens      int `json:"total_tokens"`
	} `json:"usage"`
}

// ChatCompletion performs a chat completion request
func (c *OpenAIClient) ChatCompletion(ctx context.Context, req ChatCompletionRequest) (*ChatCompletionResponse, error) {
	if !c.config.Enabled {
		return nil, fmt.Errorf("OpenAI API is not enabled (missing API key)")
	}

	// Use configured model if not specified
	if req.Model == "" {
		req.Model = c.config.ChatModel
	}

	// Apply default parameters from config
	if req.Temperature == 0 && c.config.ChatTemperature > 0 {
		req.Temperature = c.config.ChatTemperature
	}
	if req.TopP == 0 && c.config.ChatTopP > 0 {
		req.TopP = c.config.ChatTopP
	}
	if req.MaxTokens == 0 && c.config.ChatMaxTokens > 0 {
		req.MaxTokens = c.config.ChatMaxTokens
	}

	reqBody, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/chat/completions", c.config.APIBase)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(reqBody))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", fmt.Sprintf("Bearer %s", c.config.APIKey))

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("API request failed with status %d: %s", resp.StatusCode, string(body))
	}

	var result ChatCompletionResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}

	return &result, nil
}

const interpretSystemPrompt = `You are an assistant that converts natural language real estate search queries into structured search parameters. Extract structured data from the user's query and decide what text should remain for keyword search.

Extract the following fields if present:
- property_type: array drawn from "house", "condo", "apartment", "townhouse". Map synonyms: "home"/"homes" mean "house"; "family home" covers ["house", "townhouse"]; "studio" means "apartment" with bedrooms ["1"].
- bedrooms: array of strings "0" through "5". Explicit counts win. Semantic terms: "family" means ["3", "4", "5"]; "big family"/"large family" mean ["4", "5"]; "studio"/"cozy" mean ["1"]; "small" means ["1", "2"]. If an explicit bedroom count is present, ignore the semantic bedroom terms entirely, including their square footage effects.
- min_price / max_price: integers in dollars. "under"/"below"/"less than" set max_price; "over"/"above"/"more than"/"at least" set min_price; "X to Y" and "between X and Y" set both. Convert "800k" to 800000 and "1.5m"/"1.5 million" to 1500000. "affordable" means max_price 500000; "luxury" and "expensive" mean min_price 1000000.
- min_sqft / max_sqft: integers. "spacious"/"large"/"big" mean min_sqft 1000; "very spacious"/"huge" mean min_sqft 2500; "compact"/"small"/"cozy" mean max_sqft 1200. A bare "N sqft" sets min_sqft.
- sort: one of "relevance", "price_asc", "price_desc", "newest". "new listing"/"just listed"/"recent" mean "newest"; "cheapest"/"affordable" mean "price_asc"; "most expensive"/"highest price"/"luxury" mean "price_desc". Default "relevance".
- title / description: ONLY the text not captured by the structured fields above, with filler words removed. title in title case, description in lowercase. Both are empty strings when every word mapped to a structured field.

Examples:
Query: "Family home under 800k"
Response: {"bedrooms": ["3", "4", "5"], "property_type": ["house", "townhouse"], "max_price": 800000, "title": "Family", "description": "family", "sort": "relevance"}

Query: "Affordable apartment"
Response: {"property_type": ["apartment"], "max_price": 500000, "sort": "price_asc"}

Query: "New listing downtown condo"
Response: {"property_type": ["condo"], "sort": "newest", "title": "Downtown", "description": "downtown"}

Query: "Beautiful 5 bedroom townhouse with HOA"
Response: {"bedrooms": ["5"], "property_type": ["townhouse"], "title": "Beautiful HOA", "description": "beautiful hoa", "sort": "relevance"}

Respond ONLY with a valid JSON object. Omit fields that do not apply.`

// InterpretQuery uses the model to parse a natural language query into
// structured search parameters.
func (c *OpenAIClient) InterpretQuery(ctx context.Context, query string) (*model.QueryParameters, error) {
	if !c.config.Enabled {
		return nil, fmt.Errorf("OpenAI API is not enabled")
	}

	req := ChatCompletionRequest{
		Messages: []ChatMessage{
			{Role: "system", Content: interpretSystemPrompt},
			{Role: "user", Content: fmt.Sprintf("User search query: %q", query)},
		},
		ResponseFormat: &ResponseFormat{Type: "json_object"},
	}

	resp, err := c.ChatCompletion(ctx, req)
	if err != nil {
		return nil, err
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("no response choices")
	}

	// Use robust JSON parser to handle various model output formats
	content := resp.Choices[0].Message.Content
	var result model.QueryParameters
	if err := utils.ParseAIJSON(content, &result); err != nil {
		c.logger.Warn("failed to parse interpretation output", zap.String("content", content))
		return nil, fmt.Errorf("failed to parse interpretation response: %w", err)
	}

	if err := validateInterpretation(&result); err != nil {
		return nil, fmt.Errorf("interpretation validation failed: %w", err)
	}
	return &result, nil
}

// validateInterpretation enforces the interpretation output contract before
// model output is allowed to drive a search.
func validateInterpretation(qp *model.QueryParameters) error {
	for _, pt := range qp.PropertyType {
		if _, ok := model.ParsePropertyType(string(pt)); !ok {
			return fmt.Errorf("invalid property_type %q", pt)
		}
	}
	for _, b := range qp.Bedrooms {
		if len(b) != 1 || b[0] < '0' || b[0] > '5' {
			return fmt.Errorf("invalid bedrooms value %q", b)
		}
	}
	if qp.MinPrice != nil && *qp.MinPrice < 0 {
		return fmt.Errorf("negative min_price %d", *qp.MinPrice)
	}
	if qp.MaxPrice != nil && *qp.MaxPrice < 0 {
		return fmt.Errorf("negative max_price %d", *qp.MaxPrice)
	}
	if qp.MinPrice != nil && qp.MaxPrice != nil && *qp.MinPrice > *qp.MaxPrice {
		return fmt.Errorf("min_price %d greater than max_price %d", *qp.MinPrice, *qp.MaxPrice)
	}
	if qp.MinSqft != nil && *qp.MinSqft < 0 {
		return fmt.Errorf("negative min_sqft %d", *qp.MinSqft)
	}
	if qp.MaxSqft != nil && *qp.MaxSqft < 0 {
		return fmt.Errorf("negative max_sqft %d", *qp.MaxSqft)
	}
	if qp.MinSqft != nil && qp.MaxSqft != nil && *qp.MinSqft > *qp.MaxSqft {
		return fmt.Errorf("min_sqft %d greater than max_sqft %d", *qp.MinSqft, *qp.MaxSqft)
	}
	switch qp.Sort {
	case "", model.SortRelevance, model.SortPriceAsc, model.SortPriceDesc, model.SortNewest:
	default:
		return fmt.Errorf("invalid sort %q", qp.Sort)
	}
	return nil
}

const summarySystemPrompt = `You are an assistant that helps users understand their real estate search results and discover new searches.

Given the current search parameters, the total match count, and the matching properties as JSON, you will:
1. Write a short summary (2-3 sentences) that analyzes what was actually found: patterns in price, location, size, and features, tied back to what the user searched for. Do not simply restate the query.
2. Suggest 2-3 related searches as natural language queries the user could type next.

Respond ONLY with a valid JSON object of the form:
{"summary": "...", "search_ideas": ["...", "..."]}`

// summaryResultsLimit bounds how many matches are inlined into the prompt.
const summaryResultsLimit = 10

// SummarizeResults uses the model to narrate a result set and propose
// follow-up searches.
func (c *OpenAIClient) SummarizeResults(ctx context.Context, req *model.SummaryRequest) (*model.SearchSummary, error) {
	if !c.config.Enabled {
		return nil, fmt.Errorf("OpenAI API is not enabled")
	}

	userMsg, err := summaryContext(req)
	if err != nil {
		return nil, err
	}

	chatReq := ChatCompletionRequest{
		Messages: []ChatMessage{
			{Role: "system", Content: summarySystemPrompt},
			{Role: "user", Content: userMsg},
		},
		ResponseFormat: &ResponseFormat{Type: "json_object"},
	}

	resp, err := c.ChatCompletion(ctx, chatReq)
	if err != nil {
		return nil, err
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("no response choices")
	}

	content := resp.Choices[0].Message.Content
	var result model.SearchSummary
	if err := utils.ParseAIJSON(content, &result); err != nil {
		c.logger.Warn("failed to parse summary output", zap.String("content", content))
		return nil, fmt.Errorf("failed to parse summary response: %w", err)
	}
	if strings.TrimSpace(result.Summary) == "" {
		return nil, fmt.Errorf("summary response missing summary text")
	}
	if result.SearchIdeas == nil {
		result.SearchIdeas = []string{}
	}
	return &result, nil
}

// summaryContext renders the active criteria and a bounded sample of matches
// into the user message.
func summaryContext(req *model.SummaryRequest) (string, error) {
	var parts []string
	if req.Q != "" {
		parts = append(parts, fmt.Sprintf("Query: %q", req.Q))
	}
	if req.Title != "" {
		parts = append(parts, "Title search: "+req.Title)
	}
	if req.Description != "" {
		parts = append(parts, "Description search: "+req.Description)
	}
	if len(req.PropertyType) > 0 {
		names := make([]string, len(req.PropertyType))
		for i, t := range req.PropertyType {
			names[i] = string(t)
		}
		parts = append(parts, "Property types: "+strings.Join(names, ", "))
	}
	if len(req.Bedrooms) > 0 {
		parts = append(parts, "Bedrooms: "+strings.Join(req.Bedrooms, ", "))
	}
	if req.MinPrice != nil {
		parts = append(parts, fmt.Sprintf("Min price: $%d", *req.MinPrice))
	}
	if req.MaxPrice != nil {
		parts = append(parts, fmt.Sprintf("Max price: $%d", *req.MaxPrice))
	}
	if req.MinSqft != nil {
		parts = append(parts, fmt.Sprintf("Min square feet: %d", *req.MinSqft))
	}
	if req.MaxSqft != nil {
		parts = append(parts, fmt.Sprintf("Max square feet: %d", *req.MaxSqft))
	}
	parts = append(parts, fmt.Sprintf("Total results: %d", req.Total))

	msg := "Current search parameters:\n" + strings.Join(parts, "\n")

	sample := req.Results
	if len(sample) > summaryResultsLimit {
		sample = sample[:summaryResultsLimit]
	}
	if len(sample) > 0 {
		data, err := json.Marshal(sample)
		if err != nil {
			return "", fmt.Errorf("failed to marshal results: %w", err)
		}
		msg += "\n\nMatching properties:\n" + string(data)
	}
	return msg, nil
}
