package utils

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/kaptinlin/jsonrepair"
)

type contactResponse struct {
	Emails []string `json:"emails"`
}

// ParseContactResponse reads the e-mail list from an assistant answer. The
// answer may be wrapped in a code fence or surrounded by prose, and
// malformed JSON is repaired before giving up. A bare JSON array is
// accepted as well.
func ParseContactResponse(content string) ([]string, error) {
	payload := extractJSON(content)
	if payload == "" {
		return nil, fmt.Errorf("no JSON found in response")
	}

	emails, err := decodeEmails(payload)
	if err != nil {
		repaired, repairErr := jsonrepair.JSONRepair(payload)
		if repairErr != nil {
			return nil, fmt.Errorf("failed to parse response: unmarshal error: %w, repair error: %v", err, repairErr)
		}
		emails, err = decodeEmails(repaired)
		if err != nil {
			return nil, fmt.Errorf("failed to parse repaired response: %w", err)
		}
	}

	out := make([]string, 0, len(emails))
	for _, email := range emails {
		if email = strings.TrimSpace(email); email != "" {
			out = append(out, email)
		}
	}
	return out, nil
}

func decodeEmails(payload string) ([]string, error) {
	if strings.HasPrefix(payload, "[") {
		var emails []string
		if err := json.Unmarshal([]byte(payload), &emails); err != nil {
			return nil, err
		}
		return emails, nil
	}

	var resp contactResponse
	if err := json.Unmarshal([]byte(payload), &resp); err != nil {
		return nil, err
	}
	return resp.Emails, nil
}

// extractJSON cuts the outermost object or array out of content
func extractJSON(content string) string {
	content = strings.TrimSpace(content)
	content = strings.TrimPrefix(content, "```json")
	content = strings.TrimPrefix(content, "```")
	content = strings.TrimSuffix(content, "```")
	content = strings.TrimSpace(content)

	start := strings.IndexAny(content, "{[")
	if start < 0 {
		return ""
	}

	closer := "}"
	if content[start] == '[' {
		closer = "]"
	}
	end := strings.LastIndex(content, closer)
	if end < start {
		// Unterminated, leave it to the repair step
		return content[start:]
	}
	return content[start : end+1]
}
