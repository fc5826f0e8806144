package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/sashabaranov/go-openai"

	"vouch/internal/model"
)

// OpenAI analyzes search evidence with the Chat Completions API. The
// model is instructed to answer as strict JSON; anything else is an
// error the pipeline degrades on.
type OpenAI struct {
	client *openai.Client
	cfg    model.AIConfig
}

// NewOpenAI creates the OpenAI-backed analyzer.
func NewOpenAI(cfg model.AIConfig) (*OpenAI, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("OpenAI API key is required")
	}
	clientConfig := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientConfig.BaseURL = cfg.BaseURL
	}
	return &OpenAI{client: openai.NewClientWithConfig(clientConfig), cfg: cfg}, nil
}

func (o *OpenAI) Name() string { return "openai" }

// Analyze sends the search results and parses the model's JSON verdict.
func (o *OpenAI) Analyze(ctx context.Context, businessName string, results []model.SearchResult) (*model.CredibilityAnalysis, error) {
	if o.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, o.cfg.Timeout)
		defer cancel()
	}

	chatModel := o.cfg.Model
	if chatModel == "" {
		chatModel = openai.GPT4oMini
	}
	maxTokens := o.cfg.MaxTokens
	if maxTokens == 0 {
		maxTokens = 1000
	}

	resp, err := o.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:     chatModel,
		MaxTokens: maxTokens,
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: BuildPrompt(businessName, results)},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("openai analysis: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("openai analysis: empty response")
	}

	return ParseAnalysis(resp.Choices[0].Message.Content)
}

const systemPrompt = `You assess the credibility of a business from public search results.
You never assert legal conclusions; you summarize what the evidence supports.
Respond with a single JSON object and nothing else, using exactly these keys:
{"score": 0-100, "sentiment": "positive"|"neutral"|"negative",
 "insights": [], "red_flags": [], "strengths": [], "concerns": []}`

// BuildPrompt renders the search evidence for the model. Only gathered
// results go into the prompt: the model must not cite anything else.
func BuildPrompt(businessName string, results []model.SearchResult) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Business: %s\n\nSearch results (%d):\n", businessName, len(results))
	for i, r := range results {
		fmt.Fprintf(&b, "%d. [%s] %s\n   %s\n   %s\n", i+1, r.Source, r.Title, r.Link, r.Snippet)
	}
	b.WriteString("\nAssess credibility based only on the results above.")
	return b.String()
}

// ParseAnalysis decodes the model's JSON verdict and clamps the score.
func ParseAnalysis(content string) (*model.CredibilityAnalysis, error) {
	var payload struct {
		Score     int      `json:"score"`
		Sentiment string   `json:"sentiment"`
		Insights  []string `json:"insights"`
		RedFlags  []string `json:"red_flags"`
		Strengths []string `json:"strengths"`
		Concerns  []string `json:"concerns"`
	}
	if err := json.Unmarshal([]byte(content), &payload); err != nil {
		return nil, fmt.Errorf("parse analysis: %w", err)
	}

	if payload.Score < 0 {
		payload.Score = 0
	}
	if payload.Score > 100 {
		payload.Score = 100
	}
	sentiment := model.Sentiment(payload.Sentiment)
	switch sentiment {
	case model.SentimentPositive, model.SentimentNeutral, model.SentimentNegative:
	default:
		sentiment = model.SentimentNeutral
	}

	return &model.CredibilityAnalysis{
		Score:     payload.Score,
		Sentiment: sentiment,
		Insights:  payload.Insights,
		RedFlags:  payload.RedFlags,
		Strengths: payload.Strengths,
		Concerns:  payload.Concerns,
	}, nil
}
