package gemini

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"github.com/mikey/job-contact-extractor/internal/core"
	"github.com/mikey/job-contact-extractor/internal/utils"
	"go.uber.org/zap"
)

// generator is satisfied by *genai.GenerativeModel
type generator interface {
	GenerateContent(ctx context.Context, parts ...genai.Part) (*genai.GenerateContentResponse, error)
}

// GeminiClient is an implementation of the ContactAssistant interface using Google Gemini
type GeminiClient struct {
	client        *genai.Client
	model         generator
	modelName     string
	maxBodySize   int
	logger        *zap.Logger
	textProcessor *utils.TextProcessor
}

// Close closes the Gemini client
func (c *GeminiClient) Close() error {
	if c.client != nil {
		return c.client.Close()
	}
	return nil
}

// SuggestContacts asks the model for the contact addresses of a posting
func (c *GeminiClient) SuggestContacts(ctx context.Context, posting *core.JobPosting) ([]string, error) {
	prompt := c.textProcessor.PostingPrompt(posting.Employer, posting.SourceURL, posting.HTML, c.maxBodySize)

	resp, err := c.model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return nil, fmt.Errorf("failed to generate content with Gemini: %w", err)
	}

	responseText := responseText(resp)
	if responseText == "" {
		return nil, fmt.Errorf("empty response from Gemini")
	}

	emails, err := utils.ParseContactResponse(responseText)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Gemini response: %w", err)
	}

	c.logger.Debug("Gemini suggested contacts",
		zap.String("reference", posting.Reference),
		zap.String("model", c.modelName),
		zap.Strings("emails", emails))

	return emails, nil
}

// responseText joins the text parts of the first candidate
func responseText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return ""
	}

	var b strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			b.WriteString(string(text))
		}
	}
	return b.String()
}
