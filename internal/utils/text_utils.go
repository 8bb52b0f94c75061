package utils

import (
	"strings"
	"unicode/utf8"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"
	"go.uber.org/zap"
)

const truncationMarker = "\n[... Posting truncated due to size limits ...]"

// TextProcessor prepares posting text for the contact assistants
type TextProcessor struct {
	logger *zap.Logger
}

// NewTextProcessor creates a new TextProcessor
func NewTextProcessor(logger *zap.Logger) *TextProcessor {
	return &TextProcessor{
		logger: logger,
	}
}

// TruncateText safely truncates text to the specified maximum size
// and ensures the result is valid UTF-8
func (tp *TextProcessor) TruncateText(text string, maxSize int) string {
	if maxSize <= 0 || len(text) <= maxSize {
		return text
	}

	truncated := text[:maxSize]

	// Drop a rune cut in half by the byte limit
	for !utf8.ValidString(truncated) && len(truncated) > 0 {
		truncated = truncated[:len(truncated)-1]
	}

	tp.logger.Debug("Text truncated",
		zap.Int("original_size", len(text)),
		zap.Int("truncated_size", len(truncated)),
		zap.Int("max_size", maxSize))

	return truncated + truncationMarker
}

// SanitizeUTF8 drops invalid UTF-8 bytes from text
func (tp *TextProcessor) SanitizeUTF8(text string) string {
	if utf8.ValidString(text) {
		return text
	}

	sanitized := strings.ToValidUTF8(text, "")

	tp.logger.Debug("Text sanitized",
		zap.Int("original_size", len(text)),
		zap.Int("sanitized_size", len(sanitized)))

	return sanitized
}

// ProcessText sanitizes and truncates text in one operation
func (tp *TextProcessor) ProcessText(text string, maxSize int) string {
	return tp.TruncateText(tp.SanitizeUTF8(text), maxSize)
}

// HTMLToMarkdown converts a job-detail page into markdown. Links keep their
// href so mailto: targets stay visible. On conversion failure the input is
// returned unchanged.
func (tp *TextProcessor) HTMLToMarkdown(html string) string {
	if strings.TrimSpace(html) == "" {
		return ""
	}

	markdown, err := htmltomarkdown.ConvertString(html)
	if err != nil {
		tp.logger.Debug("Failed to convert posting to markdown", zap.Error(err))
		return html
	}

	return strings.TrimSpace(markdown)
}

// PostingPrompt renders the assistant prompt for a posting, converting its
// HTML to markdown and limiting the body to maxSize bytes
func (tp *TextProcessor) PostingPrompt(employer, sourceURL, html string, maxSize int) string {
	body := tp.ProcessText(tp.HTMLToMarkdown(html), maxSize)
	return ContactPrompt(employer, sourceURL, body)
}
